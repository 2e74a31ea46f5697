package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/boolean-maybe/navideck/internal/config"
	"github.com/boolean-maybe/navideck/loaders"
	"github.com/boolean-maybe/navideck/navideck"
	tviewAdapter "github.com/boolean-maybe/navideck/navideck/tview"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading config: %v\n", err)
		os.Exit(1)
	}

	// parse arguments; flags override config values
	black := flag.Bool("black", cfg.Presentation.BlackOnEnd, "add a black slide after the last slide")
	skipFile := flag.String("skip", cfg.Presentation.SkipFile, "skip list location (default: <deck>.skip)")
	style := flag.String("style", cfg.UI.Style, "slide style: dark, light or auto")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <deck.md|url>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	logger, closeLog, err := openLogger(cfg.Log.File)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error opening log: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	provider := &loaders.FileHTTP{}

	// load the deck
	deckPath := deckLocation(flag.Arg(0))
	source, err := provider.Fetch(deckPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading deck: %v\n", err)
		os.Exit(1)
	}
	deck := navideck.ParseDeck(source, deckPath)

	// the skip list is optional
	skipPath, err := navideck.ResolveSkipListPath(*skipFile, deckPath, []string{"."})
	if err != nil {
		logger.Printf("skip list: %v, showing every slide", err)
	}
	skip := loadSkipList(provider, skipPath, deck.SlideCount(), logger)

	ctrl := navideck.NewFromProvider(deck, skip, navideck.Options{
		BlackOnEnd: *black,
		JumpSize:   cfg.Presentation.JumpSize,
		HistoryMax: cfg.Presentation.HistoryMax,
		Logger:     logger,
	})

	app := tview.NewApplication()
	pages := tview.NewPages()

	renderer := navideck.NewANSIRenderer(*style).WithWordWrap(cfg.UI.WordWrap)
	slideView := tviewAdapter.NewSlideView(ctrl, deck, renderer)
	// glamour output assumes the terminal's own background
	slideView.SetBackgroundColor(tcell.ColorDefault)
	statusBar := tviewAdapter.NewStatusBar(ctrl, deck, slideView)

	slideView.SetStateChangedHandler(func(*tviewAdapter.SlideView) {
		statusBar.Refresh()
	})
	slideView.SetAskGotoHandler(func(v *tviewAdapter.SlideView) {
		showGotoPrompt(app, pages, v)
	})
	slideView.SetEditNoteHandler(func(v *tviewAdapter.SlideView, slide navideck.Slide) {
		showNotes(app, pages, v, slide)
	})

	layout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(slideView, 0, 1, true).
		AddItem(statusBar, 1, 0, false)
	pages.AddPage("main", layout, true, true)

	// reload the skip list while presenting
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if watchPath := skipWatchPath(*skipFile, deckPath, skipPath); cfg.Presentation.WatchSkipFile && watchPath != "" {
		go func() {
			err := loaders.WatchFile(ctx, watchPath, func() {
				// a removed skip list reloads as an empty skip set
				skip := loadSkipList(provider, watchPath, deck.SlideCount(), logger)
				app.QueueUpdateDraw(func() {
					ctrl.Rebuild(deck.SlideCount(), skip)
				})
			}, logger)
			if err != nil {
				logger.Printf("skip list watcher stopped: %v", err)
			}
		}()
	}

	// set up quit handler
	app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Rune() == 'q' && !pages.HasPage("goto") {
			app.Stop()
			return nil
		}
		return event
	})

	// run application
	if err := app.SetRoot(pages, true).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error running application: %v\n", err)
		os.Exit(1)
	}
}

// deckLocation returns URLs unchanged and local paths made absolute.
func deckLocation(arg string) string {
	if strings.HasPrefix(arg, "http://") || strings.HasPrefix(arg, "https://") {
		return arg
	}
	if abs, err := filepath.Abs(arg); err == nil {
		return abs
	}
	return arg
}

// skipWatchPath returns the local skip list location to watch, even when the
// file does not exist yet, or "" for remote decks and skip lists.
func skipWatchPath(explicit, deckPath, resolved string) string {
	switch {
	case strings.HasPrefix(deckPath, "http://") || strings.HasPrefix(deckPath, "https://"):
		return ""
	case resolved != "":
		if strings.HasPrefix(resolved, "http://") || strings.HasPrefix(resolved, "https://") {
			return ""
		}
		return resolved
	case explicit == "":
		return navideck.SidecarPath(deckPath)
	case strings.HasPrefix(explicit, "http://") || strings.HasPrefix(explicit, "https://"):
		return ""
	case strings.Contains(filepath.ToSlash(filepath.Clean(explicit)), ".."):
		return ""
	case filepath.IsAbs(explicit):
		return explicit
	default:
		return filepath.Join(filepath.Dir(deckPath), explicit)
	}
}

// loadSkipList fetches and parses the skip list. Problems are logged and never
// fatal: the result is always usable.
func loadSkipList(provider *loaders.FileHTTP, location string, nSlides int, logger *log.Logger) []int {
	if location == "" {
		return nil
	}
	content, err := provider.Fetch(location)
	if errors.Is(err, loaders.ErrNotFound) {
		logger.Printf("skip list %s not found, showing every slide", location)
		return nil
	}
	if err != nil {
		logger.Printf("skip list %s: %v", location, err)
		return nil
	}

	skip, err := navideck.ParseSkipList(bytes.NewReader(content), nSlides)
	if err != nil {
		logger.Printf("skip list %s: ignored entries:\n%v", location, err)
	}
	logger.Printf("skip list %s: skipping %d of %d slides", location, len(skip), nSlides)
	return skip
}

func openLogger(path string) (*log.Logger, func(), error) {
	if path == "" {
		return log.New(io.Discard, "", 0), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return log.New(f, "navideck: ", log.LstdFlags), func() { _ = f.Close() }, nil
}

// showGotoPrompt asks for a 1-based page number and jumps there.
func showGotoPrompt(app *tview.Application, pages *tview.Pages, v *tviewAdapter.SlideView) {
	ctrl := v.Controller()
	input := tview.NewInputField().
		SetLabel(fmt.Sprintf("Go to slide (1-%d): ", ctrl.UserSlideCount())).
		SetFieldWidth(6).
		SetAcceptanceFunc(tview.InputFieldInteger)

	input.SetDoneFunc(func(key tcell.Key) {
		if key == tcell.KeyEnter {
			if page, err := strconv.Atoi(input.GetText()); err == nil {
				ctrl.GotoUserPage(page)
			}
		}
		pages.RemovePage("goto")
		app.SetFocus(v)
	})
	input.SetBorder(true)

	pages.AddPage("goto", centered(input, 34, 3), true, true)
	app.SetFocus(input)
}

// showNotes displays the presenter notes of the current slide.
func showNotes(app *tview.Application, pages *tview.Pages, v *tviewAdapter.SlideView, slide navideck.Slide) {
	notes := slide.Notes
	if notes == "" {
		notes = "(no notes)"
	}
	view := tview.NewTextView().SetText(notes).SetWordWrap(true)
	view.SetBorder(true).SetTitle(" Notes ")
	view.SetDoneFunc(func(tcell.Key) {
		pages.RemovePage("notes")
		app.SetFocus(v)
	})

	pages.AddPage("notes", centered(view, 60, 12), true, true)
	app.SetFocus(view)
}

func centered(p tview.Primitive, width, height int) tview.Primitive {
	return tview.NewFlex().
		AddItem(nil, 0, 1, false).
		AddItem(tview.NewFlex().SetDirection(tview.FlexRow).
			AddItem(nil, 0, 1, false).
			AddItem(p, height, 1, true).
			AddItem(nil, 0, 1, false), width, 1, true).
		AddItem(nil, 0, 1, false)
}
