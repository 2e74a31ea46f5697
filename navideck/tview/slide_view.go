package tview

import (
	"strings"

	nav "github.com/boolean-maybe/navideck/navideck"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// SlideView is a TextView-based presenter screen. It is a Controllable: the
// controller tells it when to redraw, blank, prompt or edit notes.
type SlideView struct {
	*tview.TextView

	ctrl     *nav.Controller
	deck     *nav.Deck
	renderer nav.Renderer

	// rendered caches converted lines per real slide.
	rendered map[int]string

	faded       bool
	ignoreInput bool

	onAskGoto      func(*SlideView)
	onEditNote     func(*SlideView, nav.Slide)
	onStateChanged func(*SlideView)
}

// NewSlideView creates a view over deck and registers it with ctrl.
func NewSlideView(ctrl *nav.Controller, deck *nav.Deck, renderer nav.Renderer) *SlideView {
	textView := tview.NewTextView()
	textView.SetBorder(false)
	textView.SetDynamicColors(true)
	textView.SetWrap(false)
	textView.SetWordWrap(false)

	if renderer == nil {
		renderer = nav.NewANSIRenderer("dark")
	}

	v := &SlideView{
		TextView: textView,
		ctrl:     ctrl,
		deck:     deck,
		renderer: renderer,
		rendered: make(map[int]string),
	}
	ctrl.Register(v)
	v.refresh()
	return v
}

// Controller exposes the navigation state machine driving this view.
func (v *SlideView) Controller() *nav.Controller { return v.ctrl }

// SetBackgroundColor sets the fill color of the slide area.
func (v *SlideView) SetBackgroundColor(color tcell.Color) *SlideView {
	v.TextView.SetBackgroundColor(color)
	return v
}

// SetAskGotoHandler sets the callback that prompts for a page number.
func (v *SlideView) SetAskGotoHandler(handler func(*SlideView)) *SlideView {
	v.onAskGoto = handler
	return v
}

// SetEditNoteHandler sets the callback that edits the current slide's note.
func (v *SlideView) SetEditNoteHandler(handler func(*SlideView, nav.Slide)) *SlideView {
	v.onEditNote = handler
	return v
}

// SetStateChangedHandler sets a callback fired after every redraw.
func (v *SlideView) SetStateChangedHandler(handler func(*SlideView)) *SlideView {
	v.onStateChanged = handler
	return v
}

// Faded reports whether the view is showing a blank frame.
func (v *SlideView) Faded() bool { return v.faded }

// IgnoringInput reports whether key commands are currently suppressed.
func (v *SlideView) IgnoringInput() bool { return v.ignoreInput }

// SetIgnoreInput gates every key command except the toggle itself.
func (v *SlideView) SetIgnoreInput(ignore bool) {
	v.ignoreInput = ignore
	v.fireStateChanged()
}

// CurrentSlide returns the slide under the real cursor, false on the black slide.
func (v *SlideView) CurrentSlide() (nav.Slide, bool) {
	return v.deck.Slide(v.ctrl.CurrentRealIndex())
}

// Update redraws the slide under the cursor.
func (v *SlideView) Update() {
	v.faded = false
	v.refresh()
}

// Reset redraws the first slide.
func (v *SlideView) Reset() {
	v.faded = false
	v.refresh()
}

// FadeToBlack toggles a blank frame over the current slide.
func (v *SlideView) FadeToBlack() {
	v.faded = !v.faded
	v.refresh()
}

// EditNote hands the current slide to the note editor, if any.
func (v *SlideView) EditNote() {
	slide, ok := v.CurrentSlide()
	if !ok || v.onEditNote == nil {
		return
	}
	v.onEditNote(v, slide)
}

// AskGotoPage hands control to the goto prompt, if any.
func (v *SlideView) AskGotoPage() {
	if v.onAskGoto != nil {
		v.onAskGoto(v)
	}
}

func (v *SlideView) refresh() {
	slide, ok := v.CurrentSlide()
	if v.faded || !ok {
		v.SetText("")
		v.fireStateChanged()
		return
	}

	idx := v.ctrl.CurrentRealIndex()
	text, cached := v.rendered[idx]
	if !cached {
		// a render error still yields the raw markdown lines
		lines, _ := v.renderer.Render(slide.Markdown)
		text = tview.TranslateANSI(strings.Join(lines, "\n"))
		v.rendered[idx] = text
	}

	v.SetText(text)
	v.ScrollToBeginning()
	v.fireStateChanged()
}

func (v *SlideView) fireStateChanged() {
	if v.onStateChanged != nil {
		v.onStateChanged(v)
	}
}
