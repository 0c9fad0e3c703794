package headless

import (
	"fmt"
	"sync/atomic"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/headless/surface"
)

// Provider is the surface provider a Host drives. *surface.Manager is the
// production implementation.
type Provider interface {
	// Resize resizes the surface in place.
	Resize(size surface.Size) error

	// ContextSurfaceInfo returns the live info of the surface.
	ContextSurfaceInfo() (*surface.Info, error)

	// Destroy releases the surface.
	Destroy() error
}

// sharer is implemented by providers that expose their device to
// rendering consumers.
type sharer interface {
	Shared() surface.SharedDevice
}

// Host is a window-less display host.
//
// It is created once per headless session and lives until Close; a
// resize mutates it in place. A Host is driven by one compositor goroutine
// and is NOT safe for concurrent mutation.
type Host struct {
	provider Provider
	conn     *surface.Connection // nil when the provider was supplied

	size          Size
	resizePending atomic.Bool
	fullscreen    bool
	animation     AnimationState

	// devicePixelRatio is nil when not overridden.
	devicePixelRatio *float32

	closed bool
}

// New creates a Host with a generic off-screen surface of the given size.
//
// New connects to the surface backend (WithBackend, or the best available
// one), selects a software-capable adapter and creates the surface. Any
// provider failure is returned as a *FatalError: a headless session
// without a surface has no purpose, so there is no fallback.
//
// Dimensions below 1 are raised to 1.
func New(size Size, opts ...Option) (*Host, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.devicePixelRatio != nil && !validRatio(*o.devicePixelRatio) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDevicePixelRatio, *o.devicePixelRatio)
	}

	var (
		conn *surface.Connection
		err  error
	)
	if o.backend == "" {
		conn, err = o.registry.ConnectBest()
	} else {
		conn, err = o.registry.Connect(o.backend)
	}
	if err != nil {
		return nil, &FatalError{Op: "connect", Err: err}
	}

	adapter, err := conn.SoftwareAdapter()
	if err != nil {
		conn.Close()
		return nil, &FatalError{Op: "adapter", Err: err}
	}

	size = size.clamp()
	m, err := surface.Create(conn, adapter, surface.Generic(size.untyped()))
	if err != nil {
		conn.Close()
		return nil, &FatalError{Op: "create", Err: err}
	}

	h := newHost(size, m, o)
	h.conn = conn
	Logger().Info("headless: host created",
		"backend", conn.Backend(),
		"size", size.String(),
		"dpr", h.HiDPIFactor().Get())
	return h, nil
}

// NewWithProvider creates a Host over an existing provider whose surface
// already has the given size. The host takes ownership of p.
func NewWithProvider(size Size, p Provider, opts ...Option) (*Host, error) {
	if p == nil {
		return nil, &FatalError{Op: "create", Err: surface.ErrNoSurface}
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.devicePixelRatio != nil && !validRatio(*o.devicePixelRatio) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDevicePixelRatio, *o.devicePixelRatio)
	}
	return newHost(size.clamp(), p, o), nil
}

func newHost(size Size, p Provider, o hostOptions) *Host {
	return &Host{
		provider:         p,
		size:             size,
		animation:        AnimationIdle,
		devicePixelRatio: o.devicePixelRatio,
	}
}

// Size returns the current logical size. Both dimensions are at least 1.
func (h *Host) Size() Size {
	return h.size
}

// Resize requests a new logical size.
//
// Each dimension is clamped to at least 1. The provider is asked to
// resize only when the clamped size differs from the current one, but a
// resize event is queued either way, so a same-size Resize acts as a
// redraw request. A provider failure returns a *FatalError, leaves the
// size unchanged and queues no event.
func (h *Host) Resize(requested Size) error {
	if h.closed {
		return ErrClosed
	}

	size := requested.clamp()
	if size != h.size {
		if err := h.provider.Resize(size.untyped()); err != nil {
			return &FatalError{Op: "resize", Err: err}
		}
		Logger().Debug("headless: surface resized", "from", h.size.String(), "to", size.String())
		h.size = size
	}
	h.resizePending.Store(true)
	return nil
}

// PollEvents returns the events synthesized since the previous poll.
//
// It never blocks. At most one EventResize is returned, however many
// resizes happened; the pending flag is cleared in the same step. Returns
// nil when idle.
func (h *Host) PollEvents() []Event {
	if !h.resizePending.Swap(false) {
		return nil
	}
	Logger().Debug("headless: resize event delivered", "size", h.size.String())
	return []Event{{Kind: EventResize}}
}

// HasPendingEvents reports whether the next PollEvents would return
// events. It has no side effects.
func (h *Host) HasPendingEvents() bool {
	return h.resizePending.Load()
}

// HiDPIFactor returns the device pixel ratio, or 1.0 when not overridden.
func (h *Host) HiDPIFactor() Scale {
	if h.devicePixelRatio != nil {
		return Scale(*h.devicePixelRatio)
	}
	return 1
}

// surfaceSize returns the realized surface size reported by the provider,
// or a zero size when the info is unavailable. Geometry queries never fail.
func (h *Host) surfaceSize() surface.Size {
	if h.closed {
		return surface.Size{}
	}
	info, err := h.provider.ContextSurfaceInfo()
	if err != nil || info == nil {
		Logger().Warn("headless: surface info unavailable, using zero size", "err", err)
		return surface.Size{}
	}
	return info.Size
}

// Coordinates returns the geometry of the realized surface.
// The provider is the source of truth for the surface size.
func (h *Host) Coordinates() Coordinates {
	return coordinatesFor(h.surfaceSize(), h.HiDPIFactor())
}

// PageHeight returns the realized surface height scaled by the device
// pixel ratio, or 0 when the surface info is unavailable.
func (h *Host) PageHeight() float32 {
	return h.HiDPIFactor().Transform(float32(h.surfaceSize().Height))
}

// SetAnimationState records the compositor's animation state.
// Any state may replace any other.
func (h *Host) SetAnimationState(state AnimationState) {
	h.animation = state
}

// AnimationState returns the recorded animation state.
func (h *Host) AnimationState() AnimationState {
	return h.animation
}

// IsAnimating reports whether the recorded state is AnimationAnimating.
func (h *Host) IsAnimating() bool {
	return h.animation == AnimationAnimating
}

// SetFullscreen records the fullscreen flag. Headless mode has no real
// fullscreen transition; the surface is not touched.
func (h *Host) SetFullscreen(fullscreen bool) {
	h.fullscreen = fullscreen
}

// Fullscreen returns the recorded fullscreen flag.
func (h *Host) Fullscreen() bool {
	return h.fullscreen
}

// ID returns DummyWindowID.
func (h *Host) ID() WindowID {
	return DummyWindowID
}

// DeviceProvider returns a shared, read-only reference to the surface
// provider's device for rendering consumers, or nil if the provider does
// not expose one. The reference may be copied; mutation goes through the
// host.
func (h *Host) DeviceProvider() gpucontext.DeviceProvider {
	if s, ok := h.provider.(sharer); ok {
		return s.Shared()
	}
	return nil
}

// Provider returns the surface provider owned by the host.
func (h *Host) Provider() Provider {
	return h.provider
}

// Close destroys the surface and closes the backend connection.
// Close is idempotent.
func (h *Host) Close() error {
	if h.closed {
		return nil
	}
	h.closed = true

	err := h.provider.Destroy()
	if h.conn != nil {
		h.conn.Close()
	}
	if err != nil {
		return fmt.Errorf("headless: close: %w", err)
	}
	Logger().Debug("headless: host closed")
	return nil
}
