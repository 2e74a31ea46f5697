package navideck

// PositionHistory is a bounded browser-like back/forward history.
//
// Record stores a position on the back side and drops anything on the forward
// side. Back and Forward take the caller's current position so it can be
// restored from the opposite direction.
type PositionHistory[T any] struct {
	back    []T
	forward []T
	limit   int
}

// NewPositionHistory creates a history keeping at most limit entries per side.
// A limit <= 0 means unbounded.
func NewPositionHistory[T any](limit int) *PositionHistory[T] {
	return &PositionHistory[T]{limit: limit}
}

func (h *PositionHistory[T]) push(stack []T, entry T) []T {
	stack = append(stack, entry)
	if h.limit > 0 && len(stack) > h.limit {
		// oldest entries go first
		stack = append(stack[:0], stack[len(stack)-h.limit:]...)
	}
	return stack
}

func pop[T any](stack []T) ([]T, T) {
	last := len(stack) - 1
	entry := stack[last]
	return stack[:last], entry
}

// Record pushes a position onto the back side and clears the forward side.
func (h *PositionHistory[T]) Record(pos T) {
	h.back = h.push(h.back, pos)
	h.forward = nil
}

// Back returns the most recent back position, saving current for Forward.
func (h *PositionHistory[T]) Back(current T) (T, bool) {
	if len(h.back) == 0 {
		var zero T
		return zero, false
	}
	var pos T
	h.back, pos = pop(h.back)
	h.forward = h.push(h.forward, current)
	return pos, true
}

// Forward returns the most recent forward position, saving current for Back.
func (h *PositionHistory[T]) Forward(current T) (T, bool) {
	if len(h.forward) == 0 {
		var zero T
		return zero, false
	}
	var pos T
	h.forward, pos = pop(h.forward)
	h.back = h.push(h.back, current)
	return pos, true
}

// CanGoBack reports whether Back would succeed.
func (h *PositionHistory[T]) CanGoBack() bool { return len(h.back) > 0 }

// CanGoForward reports whether Forward would succeed.
func (h *PositionHistory[T]) CanGoForward() bool { return len(h.forward) > 0 }

// Clear drops all entries.
func (h *PositionHistory[T]) Clear() {
	h.back = nil
	h.forward = nil
}

// Len returns the number of back and forward entries.
func (h *PositionHistory[T]) Len() (back, forward int) {
	return len(h.back), len(h.forward)
}
