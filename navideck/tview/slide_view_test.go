package tview

import (
	"strings"
	"testing"

	nav "github.com/boolean-maybe/navideck/navideck"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

const testDeck = "# A\n\n---\n\n# B\n\n<!-- notes: say hi -->\n\n---\n\n# C\n\n---\n\n# D\n"

// echoRenderer renders each slide as its markdown, so tests can read it back.
var echoRenderer = nav.RendererFunc(func(md string) ([]string, error) {
	return strings.Split(md, "\n"), nil
})

func newTestView(t *testing.T, skip []int, opts nav.Options) (*SlideView, *nav.Controller) {
	t.Helper()
	deck := nav.ParseDeck([]byte(testDeck), "test.md")
	ctrl := nav.NewFromProvider(deck, skip, opts)
	return NewSlideView(ctrl, deck, echoRenderer), ctrl
}

func press(v *SlideView, key tcell.Key, r rune) {
	v.InputHandler()(tcell.NewEventKey(key, r, tcell.ModNone), func(tview.Primitive) {})
}

func TestDecodeKey(t *testing.T) {
	tests := []struct {
		name string
		key  tcell.Key
		r    rune
		mod  tcell.ModMask
		want Command
	}{
		{"right", tcell.KeyRight, 0, tcell.ModNone, CommandNext},
		{"space", tcell.KeyRune, ' ', tcell.ModNone, CommandNext},
		{"page down", tcell.KeyPgDn, 0, tcell.ModNone, CommandNext},
		{"left", tcell.KeyLeft, 0, tcell.ModNone, CommandPrevious},
		{"p", tcell.KeyRune, 'p', tcell.ModNone, CommandPrevious},
		{"down", tcell.KeyDown, 0, tcell.ModNone, CommandJumpForward},
		{"up", tcell.KeyUp, 0, tcell.ModNone, CommandJumpBackward},
		{"home", tcell.KeyHome, 0, tcell.ModNone, CommandReset},
		{"b", tcell.KeyRune, 'b', tcell.ModNone, CommandFadeToBlack},
		{"g", tcell.KeyRune, 'g', tcell.ModNone, CommandAskGoto},
		{"e", tcell.KeyRune, 'e', tcell.ModNone, CommandEditNote},
		{"i", tcell.KeyRune, 'i', tcell.ModNone, CommandToggleIgnore},
		{"alt left", tcell.KeyLeft, 0, tcell.ModAlt, CommandHistoryBack},
		{"alt right", tcell.KeyRight, 0, tcell.ModAlt, CommandHistoryForward},
		{"unbound rune", tcell.KeyRune, 'z', tcell.ModNone, CommandNone},
		{"unbound key", tcell.KeyF5, 0, tcell.ModNone, CommandNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DecodeKey(tcell.NewEventKey(tt.key, tt.r, tt.mod)); got != tt.want {
				t.Errorf("DecodeKey = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSlideView_RendersCurrentSlide(t *testing.T) {
	v, ctrl := newTestView(t, nil, nav.Options{})

	if got := v.GetText(true); !strings.Contains(got, "# A") {
		t.Fatalf("initial text = %q", got)
	}

	press(v, tcell.KeyRight, 0)
	if ctrl.CurrentUserIndex() != 1 {
		t.Fatalf("user = %d, want 1", ctrl.CurrentUserIndex())
	}
	got := v.GetText(true)
	if !strings.Contains(got, "# B") || strings.Contains(got, "notes") {
		t.Fatalf("slide B text = %q", got)
	}
}

func TestSlideView_SkippedSlidesAndJumps(t *testing.T) {
	v, ctrl := newTestView(t, []int{1}, nav.Options{})

	press(v, tcell.KeyDown, 0)
	if ctrl.CurrentRealIndex() != 3 || ctrl.CurrentUserIndex() != 2 {
		t.Fatalf("after jump: (%d, %d)", ctrl.CurrentRealIndex(), ctrl.CurrentUserIndex())
	}
	if !strings.Contains(v.GetText(true), "# D") {
		t.Fatalf("text = %q", v.GetText(true))
	}

	press(v, tcell.KeyHome, 0)
	if ctrl.CurrentRealIndex() != 0 || !strings.Contains(v.GetText(true), "# A") {
		t.Fatalf("after reset: real %d text %q", ctrl.CurrentRealIndex(), v.GetText(true))
	}
}

func TestSlideView_BlackSlideIsEmpty(t *testing.T) {
	v, ctrl := newTestView(t, nil, nav.Options{BlackOnEnd: true})

	ctrl.SetRealPage(4)
	if !ctrl.IsBlack() {
		t.Fatal("expected black slide")
	}
	if got := v.GetText(true); got != "" {
		t.Fatalf("black slide text = %q", got)
	}
	if _, ok := v.CurrentSlide(); ok {
		t.Fatal("CurrentSlide should report no slide on black")
	}
}

func TestSlideView_FadeToBlackToggles(t *testing.T) {
	v, ctrl := newTestView(t, nil, nav.Options{})

	press(v, tcell.KeyRune, 'b')
	if !v.Faded() || v.GetText(true) != "" {
		t.Fatalf("fade: faded=%v text=%q", v.Faded(), v.GetText(true))
	}
	press(v, tcell.KeyRune, 'b')
	if v.Faded() || !strings.Contains(v.GetText(true), "# A") {
		t.Fatalf("unfade: faded=%v text=%q", v.Faded(), v.GetText(true))
	}

	// navigating clears the fade
	ctrl.FadeToBlack()
	ctrl.NextPage()
	if v.Faded() {
		t.Fatal("navigation should clear the fade")
	}
}

func TestSlideView_IgnoreInputGate(t *testing.T) {
	v, ctrl := newTestView(t, nil, nav.Options{})

	press(v, tcell.KeyRune, 'i')
	if !v.IgnoringInput() {
		t.Fatal("expected input to be ignored")
	}
	press(v, tcell.KeyRight, 0)
	press(v, tcell.KeyRune, 'b')
	if ctrl.CurrentRealIndex() != 0 || v.Faded() {
		t.Fatalf("gated input reached the controller: real %d faded %v", ctrl.CurrentRealIndex(), v.Faded())
	}

	press(v, tcell.KeyRune, 'i')
	press(v, tcell.KeyRight, 0)
	if ctrl.CurrentRealIndex() != 1 {
		t.Fatalf("real = %d, want 1 after re-enabling input", ctrl.CurrentRealIndex())
	}
}

func TestSlideView_GotoAndNoteHandlers(t *testing.T) {
	v, ctrl := newTestView(t, nil, nav.Options{})

	v.SetAskGotoHandler(func(sv *SlideView) {
		sv.Controller().GotoUserPage(2)
	})
	var note string
	v.SetEditNoteHandler(func(_ *SlideView, slide nav.Slide) {
		note = slide.Notes
	})

	press(v, tcell.KeyRune, 'g')
	if ctrl.CurrentUserIndex() != 1 {
		t.Fatalf("goto: user = %d, want 1", ctrl.CurrentUserIndex())
	}

	press(v, tcell.KeyRune, 'e')
	if note != "say hi" {
		t.Fatalf("note = %q", note)
	}

	altPress := func(key tcell.Key) {
		v.InputHandler()(tcell.NewEventKey(key, 0, tcell.ModAlt), func(tview.Primitive) {})
	}
	altPress(tcell.KeyLeft)
	if ctrl.CurrentUserIndex() != 0 {
		t.Fatalf("history back: user = %d, want 0", ctrl.CurrentUserIndex())
	}
	altPress(tcell.KeyRight)
	if ctrl.CurrentUserIndex() != 1 {
		t.Fatalf("history forward: user = %d, want 1", ctrl.CurrentUserIndex())
	}
}

func TestStatusBar_ShowsPositions(t *testing.T) {
	v, ctrl := newTestView(t, []int{2}, nav.Options{BlackOnEnd: true})
	bar := NewStatusBar(ctrl, nav.ParseDeck([]byte(testDeck), ""), v)

	ctrl.NextPage()
	text := bar.GetText(true)
	if !strings.Contains(text, "2/3") || !strings.Contains(text, "real 2/4") || !strings.Contains(text, "B") {
		t.Fatalf("status = %q", text)
	}

	ctrl.SetRealPage(4)
	if text := bar.GetText(true); !strings.Contains(text, "end") || !strings.Contains(text, "real end/4") {
		t.Fatalf("black status = %q", text)
	}

	ctrl.FadeToBlack()
	if text := bar.GetText(true); !strings.Contains(text, "BLACK") {
		t.Fatalf("faded status = %q", text)
	}
}

func TestStatusBar_EmptyDeckShowsFallbackSlide(t *testing.T) {
	deck := nav.ParseDeck(nil, "")
	ctrl := nav.NewFromProvider(staticCount(0), nil, nav.Options{BlackOnEnd: true})
	bar := NewStatusBar(ctrl, deck, nil)

	if text := bar.GetText(true); !strings.Contains(text, "1/1") || !strings.Contains(text, "real 1/1") {
		t.Fatalf("empty deck status = %q", text)
	}

	ctrl.NextPage()
	text := bar.GetText(true)
	if !strings.Contains(text, "real end/1") || strings.Contains(text, "/0") {
		t.Fatalf("empty deck black status = %q", text)
	}
}

type staticCount int

func (n staticCount) SlideCount() int { return int(n) }
