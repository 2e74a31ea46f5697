package navideck

import (
	"fmt"
	"io"
	"log"
	"reflect"
	"sort"
)

// DefaultJumpSize is the number of user slides moved by a jump.
const DefaultJumpSize = 10

// Cursor is the pair of synchronized slide positions.
type Cursor struct {
	Real int
	User int
}

// Options configures a Controller.
type Options struct {
	// BlackOnEnd adds a virtual black slide after the last real slide.
	BlackOnEnd bool
	// JumpSize is used by JumpForward/JumpBackward when n <= 0. Defaults to 10.
	JumpSize int
	// HistoryMax bounds the position history. Defaults to 50.
	HistoryMax int
	// Logger receives diagnostics. Defaults to a discarding logger.
	Logger *log.Logger
}

// Controller is the navigation state machine. It owns the real and user
// cursors and is the only component that mutates them.
//
// Controller is not safe for concurrent use; all calls are expected on the
// goroutine that runs the UI event loop.
type Controller struct {
	mapping    SlideMapping
	slideLimit int
	blackOnEnd bool
	jumpSize   int

	cursor  Cursor
	history *PositionHistory[Cursor]

	observers []Controllable
	notifying bool

	logger *log.Logger
}

// New creates a controller for nSlides real slides with the given 0-based
// skip set. The cursor starts at (0, 0).
func New(nSlides int, skip []int, opts Options) *Controller {
	jump := opts.JumpSize
	if jump <= 0 {
		jump = DefaultJumpSize
	}
	hmax := opts.HistoryMax
	if hmax <= 0 {
		hmax = 50
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	c := &Controller{
		blackOnEnd: opts.BlackOnEnd,
		jumpSize:   jump,
		history:    NewPositionHistory[Cursor](hmax),
		logger:     logger,
	}
	c.install(BuildMapping(nSlides, skip))
	return c
}

// NewFromProvider creates a controller sized by the metadata provider.
func NewFromProvider(meta MetadataProvider, skip []int, opts Options) *Controller {
	return New(meta.SlideCount(), skip, opts)
}

func (c *Controller) install(m SlideMapping) {
	if m.UserCount() == 0 {
		c.logger.Printf("navideck: all %d slides skipped, falling back to a single slide", m.RealCount())
	}
	m = m.withFallback()
	m.mustValidate()

	limit := m.RealCount()
	if limit < 1 {
		limit = 1
	}
	if c.blackOnEnd {
		limit++
	}

	c.mapping = m
	c.slideLimit = limit
}

// Register adds an observer. It returns false if the observer is already
// registered or is not comparable (for example a struct value holding a
// slice); register such observers by pointer.
func (c *Controller) Register(o Controllable) bool {
	if !comparableObserver(o) {
		c.logger.Printf("navideck: cannot register observer of non-comparable type %T", o)
		return false
	}
	for _, existing := range c.observers {
		if existing == o {
			return false
		}
	}
	c.observers = append(c.observers, o)
	return true
}

// Unregister removes an observer. It returns false if it was not registered.
func (c *Controller) Unregister(o Controllable) bool {
	if !comparableObserver(o) {
		return false
	}
	for i, existing := range c.observers {
		if existing == o {
			c.observers = append(c.observers[:i:i], c.observers[i+1:]...)
			return true
		}
	}
	return false
}

// CurrentRealIndex returns the 0-based real slide index.
func (c *Controller) CurrentRealIndex() int { return c.cursor.Real }

// CurrentUserIndex returns the 0-based user slide index.
func (c *Controller) CurrentUserIndex() int { return c.cursor.User }

// Cursor returns the current cursor pair.
func (c *Controller) Cursor() Cursor { return c.cursor }

// RealSlideCount returns the number of physical slides.
func (c *Controller) RealSlideCount() int { return c.mapping.RealCount() }

// UserSlideCount returns the number of navigable slides (at least 1).
func (c *Controller) UserSlideCount() int { return c.mapping.UserCount() }

// SlideLimit returns the exclusive upper bound of the real cursor.
func (c *Controller) SlideLimit() int { return c.slideLimit }

// Mapping returns the active mapping table.
func (c *Controller) Mapping() SlideMapping { return c.mapping }

// IsBlack reports whether the cursor is on the virtual black slide.
func (c *Controller) IsBlack() bool {
	return c.blackOnEnd && c.cursor.Real == c.slideLimit-1
}

// CanGoBack reports whether there is a recorded position to return to.
func (c *Controller) CanGoBack() bool { return c.history.CanGoBack() }

// CanGoForward reports whether there is a position to go forward to.
func (c *Controller) CanGoForward() bool { return c.history.CanGoForward() }

// NextPage advances the real cursor by one slide. The user cursor follows
// only when the new real slide starts the next user slide.
func (c *Controller) NextPage() {
	c.begin()
	if c.cursor.Real < c.slideLimit-1 {
		c.cursor.Real++
		next := c.cursor.User + 1
		// past the last user slide the user cursor stays pinned
		if next < c.mapping.UserCount() && c.cursor.Real == c.mapping.UserToReal(next) {
			c.cursor.User = next
		}
	}
	c.commitUpdate()
}

// PreviousPage steps the real cursor back by one slide. Inside a skipped run
// only the real cursor moves; at the start of a user slide both cursors move
// to the previous user slide.
func (c *Controller) PreviousPage() {
	c.begin()
	if c.cursor.Real > 0 {
		start := c.mapping.UserToReal(c.cursor.User)
		switch {
		case c.cursor.Real != start || c.cursor.User == 0:
			c.cursor.Real--
			if c.cursor.Real < c.mapping.UserToReal(c.cursor.User) {
				c.cursor.User = c.floorUser(c.cursor.Real)
			}
		default:
			c.cursor.User--
			c.cursor.Real = c.mapping.UserToReal(c.cursor.User)
		}
	}
	c.commitUpdate()
}

// JumpForward moves n user slides forward, clamped to the last user slide.
// n <= 0 uses the configured jump size.
func (c *Controller) JumpForward(n int) {
	if n <= 0 {
		n = c.jumpSize
	}
	c.begin()
	prev := c.cursor
	c.moveToUser(min(c.cursor.User+n, c.mapping.UserCount()-1))
	c.recordMove(prev)
	c.commitUpdate()
}

// JumpBackward moves n user slides back, clamped to the first user slide.
// n <= 0 uses the configured jump size.
func (c *Controller) JumpBackward(n int) {
	if n <= 0 {
		n = c.jumpSize
	}
	c.begin()
	prev := c.cursor
	c.moveToUser(max(c.cursor.User-n, 0))
	c.recordMove(prev)
	c.commitUpdate()
}

// GotoUserPage moves to a 1-based user page number, clamped to the deck.
func (c *Controller) GotoUserPage(page int) {
	c.begin()
	prev := c.cursor
	c.moveToUser(clamp(page-1, 0, c.mapping.UserCount()-1))
	c.recordMove(prev)
	c.commitUpdate()
}

// SetRealPage sets the real cursor directly. The user cursor becomes the
// first user slide at or after realPage, or the last one when realPage lies
// beyond every mapped slide (for example the black slide).
func (c *Controller) SetRealPage(realPage int) {
	c.begin()
	prev := c.cursor
	c.placeReal(clamp(realPage, 0, c.slideLimit-1))
	c.recordMove(prev)
	c.commitUpdate()
}

// Reset returns the cursor to (0, 0) and clears the position history.
func (c *Controller) Reset() {
	c.begin()
	c.cursor = Cursor{}
	c.history.Clear()
	c.mustBeConsistent()
	c.notify(Controllable.Reset)
}

// GoBack restores the position recorded before the last absolute move.
func (c *Controller) GoBack() bool {
	c.begin()
	pos, ok := c.history.Back(c.cursor)
	if !ok {
		return false
	}
	c.restore(pos)
	c.commitUpdate()
	return true
}

// GoForward undoes the last GoBack.
func (c *Controller) GoForward() bool {
	c.begin()
	pos, ok := c.history.Forward(c.cursor)
	if !ok {
		return false
	}
	c.restore(pos)
	c.commitUpdate()
	return true
}

// Rebuild replaces the mapping for a new slide count and skip set. The real
// cursor is clamped into the new range and the user cursor re-derived when it
// no longer fits.
func (c *Controller) Rebuild(nSlides int, skip []int) {
	c.begin()
	c.install(BuildMapping(nSlides, skip))
	c.logger.Printf("navideck: mapping rebuilt: %d real slides, %d user slides, skipped %v", c.mapping.RealCount(), c.mapping.UserCount(), c.mapping.Skipped())
	c.restore(c.cursor)
	c.commitUpdate()
}

// FadeToBlack asks every observer to blank the display.
func (c *Controller) FadeToBlack() { c.broadcast(Controllable.FadeToBlack) }

// EditNote asks every observer to start editing the current slide's note.
func (c *Controller) EditNote() { c.broadcast(Controllable.EditNote) }

// AskGotoPage asks every observer to prompt for a page number. Observers may
// call GotoUserPage from this callback.
func (c *Controller) AskGotoPage() { c.broadcast(Controllable.AskGotoPage) }

// recordMove remembers prev for GoBack when the cursor actually moved.
func (c *Controller) recordMove(prev Cursor) {
	if c.cursor != prev {
		c.history.Record(prev)
	}
}

func (c *Controller) moveToUser(u int) {
	c.cursor.User = u
	c.cursor.Real = c.mapping.UserToReal(u)
}

func (c *Controller) placeReal(realPage int) {
	u, ok := c.mapping.UserIndexFor(realPage)
	if !ok {
		u = c.mapping.UserCount() - 1
	}
	c.cursor = Cursor{Real: realPage, User: u}
}

// restore moves to pos, keeping its user index when still consistent with
// the active mapping.
func (c *Controller) restore(pos Cursor) {
	pos.Real = clamp(pos.Real, 0, c.slideLimit-1)
	if c.consistent(pos) {
		c.cursor = pos
		return
	}
	c.placeReal(pos.Real)
}

// floorUser returns the last user slide starting at or before realPage, or 0.
func (c *Controller) floorUser(realPage int) int {
	return max(sort.SearchInts(c.mapping.userToReal, realPage+1)-1, 0)
}

// consistent reports whether pos is a valid cursor for the active mapping.
// Inside a skipped run the user cursor may name either the user slide the run
// follows or the one it precedes.
func (c *Controller) consistent(pos Cursor) bool {
	last := c.mapping.UserCount() - 1
	if pos.Real < 0 || pos.Real >= c.slideLimit || pos.User < 0 || pos.User > last {
		return false
	}
	if pos.Real >= c.mapping.UserToReal(last) {
		return pos.User == last
	}
	floor := c.floorUser(pos.Real)
	ceil, _ := c.mapping.UserIndexFor(pos.Real)
	return pos.User == floor || pos.User == ceil
}

func (c *Controller) mustBeConsistent() {
	if !c.consistent(c.cursor) {
		panic(fmt.Sprintf("navideck: inconsistent cursor %+v for mapping %v (limit %d)", c.cursor, c.mapping.userToReal, c.slideLimit))
	}
}

// begin guards against observers mutating the cursor from a notification.
func (c *Controller) begin() {
	if c.notifying {
		panic("navideck: navigation operation called from an observer notification")
	}
}

func (c *Controller) commitUpdate() {
	c.mustBeConsistent()
	c.notify(Controllable.Update)
}

func (c *Controller) notify(event func(Controllable)) {
	c.notifying = true
	defer func() { c.notifying = false }()
	c.broadcast(event)
}

func (c *Controller) broadcast(event func(Controllable)) {
	observers := make([]Controllable, len(c.observers))
	copy(observers, c.observers)
	for _, o := range observers {
		event(o)
	}
}

func comparableObserver(o Controllable) bool {
	t := reflect.TypeOf(o)
	return t != nil && t.Comparable()
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
