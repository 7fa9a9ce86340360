package nav

// History is a back/forward stack of visited routes.
type History struct {
	current Route
	back    []Route
	forward []Route
}

// NewHistory starts a history at route.
func NewHistory(start Route) *History {
	return &History{current: start}
}

// Current returns the route on screen.
func (h *History) Current() Route {
	return h.current
}

// Push records a navigation to r. Pushing the current route is a no-op;
// any other push clears the forward stack.
func (h *History) Push(r Route) {
	if r == h.current {
		return
	}
	h.back = append(h.back, h.current)
	h.current = r
	h.forward = nil
}

// Back steps one route back.
func (h *History) Back() (Route, bool) {
	if len(h.back) == 0 {
		return h.current, false
	}
	h.forward = append(h.forward, h.current)
	h.current = h.back[len(h.back)-1]
	h.back = h.back[:len(h.back)-1]
	return h.current, true
}

// Forward re-applies the last route undone by Back.
func (h *History) Forward() (Route, bool) {
	if len(h.forward) == 0 {
		return h.current, false
	}
	h.back = append(h.back, h.current)
	h.current = h.forward[len(h.forward)-1]
	h.forward = h.forward[:len(h.forward)-1]
	return h.current, true
}

// CanBack reports whether Back would move.
func (h *History) CanBack() bool {
	return len(h.back) > 0
}

// CanForward reports whether Forward would move.
func (h *History) CanForward() bool {
	return len(h.forward) > 0
}
