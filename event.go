package headless

import "fmt"

// EventKind identifies a synthesized window event.
type EventKind uint8

const (
	// EventResize reports that the surface was resized (or a redraw was
	// requested through Resize) since the previous poll.
	EventResize EventKind = iota + 1
)

// String implements fmt.Stringer.
func (k EventKind) String() string {
	switch k {
	case EventResize:
		return "resize"
	default:
		return fmt.Sprintf("EventKind(%d)", k)
	}
}

// Event is a window event synthesized by the host.
type Event struct {
	Kind EventKind
}

// AnimationState is the compositor's animation state as reported to the host.
type AnimationState uint8

const (
	// AnimationIdle means no animation is running.
	AnimationIdle AnimationState = iota

	// AnimationAnimating means an animation is running and the compositor
	// wants frames scheduled continuously.
	AnimationAnimating
)

// String implements fmt.Stringer.
func (s AnimationState) String() string {
	switch s {
	case AnimationIdle:
		return "idle"
	case AnimationAnimating:
		return "animating"
	default:
		return fmt.Sprintf("AnimationState(%d)", s)
	}
}

// WindowID identifies a window. Headless sessions have exactly one host,
// which always reports DummyWindowID.
type WindowID uint64

// DummyWindowID is the id of every headless host.
const DummyWindowID WindowID = 0
