package headless

import "errors"

var (
	// ErrUnavailable is returned by capability accessors for subsystems that
	// do not exist in headless mode (media, XR).
	ErrUnavailable = errors.New("headless: unavailable in headless mode")

	// ErrClosed is returned when a closed host is used.
	ErrClosed = errors.New("headless: host is closed")

	// ErrInvalidDevicePixelRatio is returned by New for a non-positive or
	// non-finite device pixel ratio.
	ErrInvalidDevicePixelRatio = errors.New("headless: invalid device pixel ratio")
)

// FatalError reports a surface provider failure the session cannot
// recover from: connecting, selecting an adapter, creating or resizing the
// surface. Callers must abort the session (or the resize request) rather
// than retry or continue with a degraded surface.
type FatalError struct {
	// Op is the failed operation ("connect", "adapter", "create", "resize").
	Op string

	// Err is the underlying provider error.
	Err error
}

func (e *FatalError) Error() string {
	return "headless: " + e.Op + ": " + e.Err.Error()
}

// Unwrap returns the underlying provider error.
func (e *FatalError) Unwrap() error {
	return e.Err
}

// IsFatal reports whether err is or wraps a *FatalError.
func IsFatal(err error) bool {
	var fe *FatalError
	return errors.As(err, &fe)
}
