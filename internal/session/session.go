// Package session drives a headless compositor session: it owns the host,
// runs a cooperative frame loop and captures the composited framebuffer.
package session

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"log/slog"

	"golang.org/x/image/draw"

	"github.com/gogpu/headless"
	"github.com/gogpu/headless/internal/config"
	"github.com/gogpu/headless/render"
	"github.com/gogpu/headless/surface"
)

// Stats summarizes a run.
type Stats struct {
	// Frames is the number of frames composited.
	Frames int

	// ResizeEvents is the number of resize events the loop observed.
	ResizeEvents int

	// Framebuffer is the framebuffer size after the last frame.
	Framebuffer surface.Size
}

// Session owns one Host for its whole lifetime.
type Session struct {
	cfg        config.Config
	host       *headless.Host
	logger     *slog.Logger
	background color.RGBA

	pixmap *render.PixmapTarget
	gpu    *render.SurfaceTarget // nil when the provider has no texture view
	device render.DeviceHandle

	stats Stats
}

// New validates cfg and creates the session's host. A host construction
// failure is returned unchanged (a *headless.FatalError): the caller must
// abort.
func New(cfg config.Config, logger *slog.Logger) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}

	var opts []headless.Option
	if cfg.DevicePixelRatio > 0 {
		opts = append(opts, headless.WithDevicePixelRatio(cfg.DevicePixelRatio))
	}
	if cfg.Backend != "" {
		opts = append(opts, headless.WithBackend(cfg.Backend))
	}

	host, err := headless.New(headless.Sz(cfg.Width, cfg.Height), opts...)
	if err != nil {
		return nil, err
	}
	s, err := NewWithHost(cfg, host, logger)
	if err != nil {
		_ = host.Close()
		return nil, err
	}
	return s, nil
}

// NewWithHost creates a session over an existing host. The session takes
// ownership of host.
func NewWithHost(cfg config.Config, host *headless.Host, logger *slog.Logger) (*Session, error) {
	bg, err := config.ParseColor(cfg.Background)
	if err != nil {
		return nil, fmt.Errorf("session: background: %w", err)
	}
	if logger == nil {
		logger = headless.Logger()
	}

	host.SetFullscreen(cfg.Fullscreen)

	s := &Session{
		cfg:        cfg,
		host:       host,
		logger:     logger,
		background: bg,
		device:     render.NullDeviceHandle{},
	}
	if dp := host.DeviceProvider(); dp != nil {
		s.device = dp
	}

	fb := host.Coordinates().Framebuffer
	s.pixmap = render.NewPixmapTarget(fb)
	s.rebindSurface()

	logger.Info("session: started",
		"size", host.Size().String(),
		"framebuffer", fb.String(),
		"dpr", host.HiDPIFactor().Get(),
		"gpu", render.HasHAL(s.device))
	return s, nil
}

// Host returns the session's host.
func (s *Session) Host() *headless.Host {
	return s.host
}

// Device returns the device handle rendering consumers should use.
func (s *Session) Device() render.DeviceHandle {
	return s.device
}

// SurfaceTarget returns the target of the realized GPU surface, or nil.
func (s *Session) SurfaceTarget() *render.SurfaceTarget {
	return s.gpu
}

// Run composites cfg.Frames frames. Cancellation is checked between frames.
// A resize failure ends the run with the host's *headless.FatalError.
func (s *Session) Run(ctx context.Context) error {
	s.host.SetAnimationState(headless.AnimationAnimating)
	defer s.host.SetAnimationState(headless.AnimationIdle)

	for frame := 0; frame < s.cfg.Frames; frame++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.frame(frame); err != nil {
			return err
		}
	}
	s.logger.Info("session: finished",
		"frames", s.stats.Frames,
		"resize_events", s.stats.ResizeEvents,
		"framebuffer", s.stats.Framebuffer.String())
	return nil
}

func (s *Session) frame(n int) error {
	for _, step := range s.cfg.ResizesAt(n) {
		if err := s.host.Resize(headless.Sz(step.Width, step.Height)); err != nil {
			return fmt.Errorf("session: frame %d: %w", n, err)
		}
	}

	if s.host.HasPendingEvents() {
		for _, ev := range s.host.PollEvents() {
			if ev.Kind == headless.EventResize {
				s.handleResize()
			}
		}
	}

	s.pixmap.Clear(s.background)
	s.stats.Frames++
	s.stats.Framebuffer = s.pixmap.Size()
	return nil
}

func (s *Session) handleResize() {
	s.stats.ResizeEvents++
	fb := s.host.Coordinates().Framebuffer
	realloc := s.pixmap.Resize(fb)
	s.rebindSurface()
	s.logger.Debug("session: resize", "framebuffer", fb.String(), "realloc", realloc)
}

// rebindSurface refreshes the GPU target when the realized surface changed.
func (s *Session) rebindSurface() {
	m, ok := s.host.Provider().(*surface.Manager)
	if !ok {
		return
	}
	info, err := m.ContextSurfaceInfo()
	if err != nil {
		s.gpu = nil
		return
	}
	if s.gpu != nil && !s.gpu.Stale(*info) {
		return
	}
	if view := m.TextureView(); view != nil {
		s.gpu = render.NewSurfaceTarget(*info, view)
	}
}

// Stats returns counters for the frames run so far.
func (s *Session) Stats() Stats {
	return s.stats
}

// Snapshot returns a copy of the framebuffer.
func (s *Session) Snapshot() *image.RGBA {
	src := s.pixmap.Image()
	dst := image.NewRGBA(src.Bounds())
	copy(dst.Pix, src.Pix)
	return dst
}

// Thumbnail returns the framebuffer scaled to the host's logical size.
// When the framebuffer already has that size it is the same as Snapshot.
func (s *Session) Thumbnail() *image.RGBA {
	logical := s.host.Size()
	src := s.pixmap.Image()
	b := src.Bounds()
	if b.Dx() == logical.Width && b.Dy() == logical.Height {
		return s.Snapshot()
	}
	dst := image.NewRGBA(image.Rect(0, 0, logical.Width, logical.Height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}

// Close ends the session and releases the host.
func (s *Session) Close() error {
	s.gpu = nil
	return s.host.Close()
}
