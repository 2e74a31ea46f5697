package navideck

// Controllable is notified of navigation changes and can be commanded by the
// controller. Every registered observer receives each event synchronously, in
// registration order. Observers are identified by ==, so implementations are
// normally pointers; the controller refuses non-comparable ones.
type Controllable interface {
	// Update is called after the cursor reached a new consistent position.
	Update()
	// Reset is called after the cursor returned to the first slide.
	Reset()
	// FadeToBlack asks the observer to display a blank frame.
	FadeToBlack()
	// EditNote asks the observer to enter note editing for the current real slide.
	EditNote()
	// AskGotoPage asks the observer to prompt for a page and call GotoUserPage.
	AskGotoPage()
}

// BaseControllable implements Controllable with no-ops. Embed it in observers
// that only care about a subset of events.
type BaseControllable struct{}

func (BaseControllable) Update()      {}
func (BaseControllable) Reset()       {}
func (BaseControllable) FadeToBlack() {}
func (BaseControllable) EditNote()    {}
func (BaseControllable) AskGotoPage() {}

// MetadataProvider supplies the number of physical slides of a presentation.
type MetadataProvider interface {
	SlideCount() int
}
