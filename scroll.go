package openrealm

// ScrollState tracks a scrollable container's current offset and
// pending scroll-to request.
type ScrollState struct {
	OffsetX, OffsetY float64

	pendingTarget string
	lastFired     string
}

// ScrollToEvent is emitted once a requested named scroll target has been
// brought into view.
type ScrollToEvent struct {
	Target string
}

// RequestScrollTo queues a scroll to bring the child UiNode named target
// into view. Calling it again with the same target before it fires is a
// no-op; a different target replaces the pending one.
func (s *ScrollState) RequestScrollTo(target string) {
	s.pendingTarget = target
}

// Resolve checks the pending scroll target against positions (child name
// -> computed Y offset within the scroll container) and, if found,
// updates OffsetY and returns a [ScrollToEvent]. A target fires its event
// once: after it resolves, requesting the same target again fires
// nothing; only a request for a different target fires a new event, so
// the event is not repeated every frame while sitting at the target.
func (s *ScrollState) Resolve(positions map[string]float64) (ScrollToEvent, bool) {
	if s.pendingTarget == "" || s.pendingTarget == s.lastFired {
		return ScrollToEvent{}, false
	}
	y, ok := positions[s.pendingTarget]
	if !ok {
		return ScrollToEvent{}, false
	}
	s.OffsetY = y
	s.lastFired = s.pendingTarget
	return ScrollToEvent{Target: s.pendingTarget}, true
}
