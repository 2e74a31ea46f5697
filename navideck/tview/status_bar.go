package tview

import (
	"fmt"

	nav "github.com/boolean-maybe/navideck/navideck"
	"github.com/rivo/tview"
)

// StatusBar is a one-line observer showing cursor positions and hints.
type StatusBar struct {
	*tview.TextView
	nav.BaseControllable

	ctrl *nav.Controller
	deck *nav.Deck
	view *SlideView
}

// NewStatusBar creates a status bar and registers it with ctrl. view may be
// nil; when set, its fade and ignore-input state is shown.
func NewStatusBar(ctrl *nav.Controller, deck *nav.Deck, view *SlideView) *StatusBar {
	textView := tview.NewTextView()
	textView.SetDynamicColors(true)
	textView.SetTextAlign(tview.AlignLeft)

	s := &StatusBar{TextView: textView, ctrl: ctrl, deck: deck, view: view}
	ctrl.Register(s)
	s.Refresh()
	return s
}

// Update refreshes the status line.
func (s *StatusBar) Update() { s.Refresh() }

// Reset refreshes the status line.
func (s *StatusBar) Reset() { s.Refresh() }

// FadeToBlack refreshes the status line after the view toggled its blank frame.
func (s *StatusBar) FadeToBlack() { s.Refresh() }

// Refresh redraws the status line from the controller state.
func (s *StatusBar) Refresh() {
	s.SetText(s.Text())
}

// Text returns the status line with tview color tags.
func (s *StatusBar) Text() string {
	c := s.ctrl
	title := ""
	if slide, ok := s.deck.Slide(c.CurrentRealIndex()); ok && slide.Title != "" {
		title = " " + tview.Escape(slide.Title) + " |"
	}

	// an empty deck still shows its single fallback slide
	realCount := max(c.RealSlideCount(), 1)
	position := fmt.Sprintf("[yellow]%d/%d[-]", c.CurrentUserIndex()+1, c.UserSlideCount())
	realPosition := fmt.Sprintf("%d/%d", min(c.CurrentRealIndex()+1, realCount), realCount)
	if c.IsBlack() {
		position = "[yellow]end[-]"
		realPosition = fmt.Sprintf("end/%d", realCount)
	}

	status := fmt.Sprintf("%s %s [gray](real %s)[-] |", title, position, realPosition)
	if s.view != nil && s.view.Faded() {
		status += " [white]BLACK[-] |"
	}
	if s.view != nil && s.view.IgnoringInput() {
		status += " [red]INPUT IGNORED[-] |"
	}
	if c.CanGoBack() {
		status += " Back:[white]◀[-]"
	} else {
		status += " Back:[gray]◀[-]"
	}
	status += " Next:[gray]→/Space[-] Prev:[gray]←[-] Jump:[gray]↑/↓[-] Goto:[gray]g[-] Black:[gray]b[-] Quit:[gray]q[-]"
	return status
}
