package session

import (
	"context"
	"errors"
	"image/color"
	"testing"

	"github.com/gogpu/headless"
	"github.com/gogpu/headless/internal/config"
	"github.com/gogpu/headless/render"
	"github.com/gogpu/headless/surface"
)

func testConfig(w, h, frames int) config.Config {
	cfg := config.DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	cfg.Frames = frames
	cfg.Backend = surface.BackendNoop
	cfg.Background = "#336699"
	cfg.Output = ""
	return cfg
}

func newSession(t *testing.T, cfg config.Config) *Session {
	t.Helper()
	s, err := New(cfg, nil)
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// resizeFailer is a provider whose resizes always fail.
type resizeFailer struct {
	size surface.Size
}

func (p *resizeFailer) Resize(surface.Size) error { return errors.New("device lost") }

func (p *resizeFailer) ContextSurfaceInfo() (*surface.Info, error) {
	return &surface.Info{ID: 1, Size: p.size, Format: surface.DefaultFormat}, nil
}

func (p *resizeFailer) Destroy() error { return nil }

func TestRunWithoutResizes(t *testing.T) {
	s := newSession(t, testConfig(320, 240, 3))
	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run() = %v", err)
	}

	st := s.Stats()
	if st.Frames != 3 {
		t.Errorf("Frames = %d, want 3", st.Frames)
	}
	if st.ResizeEvents != 0 {
		t.Errorf("ResizeEvents = %d, want 0", st.ResizeEvents)
	}
	if st.Framebuffer != surface.Sz(320, 240) {
		t.Errorf("Framebuffer = %v, want 320x240", st.Framebuffer)
	}
	if s.Host().IsAnimating() {
		t.Error("host still animating after Run")
	}
}

func TestRunAppliesScriptedResize(t *testing.T) {
	cfg := testConfig(320, 240, 3)
	cfg.Resizes = []config.ResizeStep{{Frame: 1, Width: 640, Height: 480}}
	s := newSession(t, cfg)

	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run() = %v", err)
	}
	st := s.Stats()
	if st.ResizeEvents != 1 {
		t.Errorf("ResizeEvents = %d, want 1", st.ResizeEvents)
	}
	if st.Framebuffer != surface.Sz(640, 480) {
		t.Errorf("Framebuffer = %v, want 640x480", st.Framebuffer)
	}
	if got := s.Host().Size(); got != headless.Sz(640, 480) {
		t.Errorf("host size = %v, want 640x480", got)
	}
	if gpu := s.SurfaceTarget(); gpu != nil && gpu.Size() != surface.Sz(640, 480) {
		t.Errorf("surface target = %v, want 640x480", gpu.Size())
	}
}

func TestRunCoalescesResizesInOneFrame(t *testing.T) {
	cfg := testConfig(100, 100, 2)
	cfg.Resizes = []config.ResizeStep{
		{Frame: 1, Width: 200, Height: 200},
		{Frame: 1, Width: 300, Height: 150},
	}
	s := newSession(t, cfg)

	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run() = %v", err)
	}
	if got := s.Stats().ResizeEvents; got != 1 {
		t.Errorf("ResizeEvents = %d, want 1", got)
	}
	if got := s.Stats().Framebuffer; got != surface.Sz(300, 150) {
		t.Errorf("Framebuffer = %v, want 300x150", got)
	}
}

func TestRunSameSizeResizeStillNotifies(t *testing.T) {
	cfg := testConfig(100, 100, 2)
	cfg.Resizes = []config.ResizeStep{{Frame: 0, Width: 100, Height: 100}}
	s := newSession(t, cfg)

	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run() = %v", err)
	}
	if got := s.Stats().ResizeEvents; got != 1 {
		t.Errorf("ResizeEvents = %d, want 1", got)
	}
}

func TestRunCancelled(t *testing.T) {
	s := newSession(t, testConfig(10, 10, 5))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() = %v, want context.Canceled", err)
	}
	if got := s.Stats().Frames; got != 0 {
		t.Errorf("Frames = %d, want 0", got)
	}
}

func TestRunResizeFailureIsFatal(t *testing.T) {
	cfg := testConfig(50, 50, 2)
	cfg.Resizes = []config.ResizeStep{{Frame: 1, Width: 80, Height: 80}}

	host, err := headless.NewWithProvider(headless.Sz(50, 50), &resizeFailer{size: surface.Sz(50, 50)})
	if err != nil {
		t.Fatalf("NewWithProvider() = %v", err)
	}
	s, err := NewWithHost(cfg, host, nil)
	if err != nil {
		t.Fatalf("NewWithHost() = %v", err)
	}
	defer s.Close()

	err = s.Run(context.Background())
	if !headless.IsFatal(err) {
		t.Fatalf("Run() = %v, want fatal error", err)
	}
	if got := s.Stats().Frames; got != 1 {
		t.Errorf("Frames = %d, want 1", got)
	}
}

func TestNewUnknownBackendIsFatal(t *testing.T) {
	cfg := testConfig(10, 10, 1)
	cfg.Backend = "does-not-exist"

	_, err := New(cfg, nil)
	var fe *headless.FatalError
	if !errors.As(err, &fe) {
		t.Fatalf("New() = %v, want *FatalError", err)
	}
	var nf *surface.BackendNotFoundError
	if !errors.As(err, &nf) {
		t.Errorf("New() = %v, want BackendNotFoundError", err)
	}
}

func TestNewInvalidConfig(t *testing.T) {
	cfg := testConfig(10, 10, 0)
	if _, err := New(cfg, nil); err == nil {
		t.Fatal("New() accepted frames: 0")
	}
}

func TestSnapshotIsBackgroundCopy(t *testing.T) {
	s := newSession(t, testConfig(8, 4, 1))
	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run() = %v", err)
	}

	img := s.Snapshot()
	if img.Bounds().Dx() != 8 || img.Bounds().Dy() != 4 {
		t.Fatalf("Snapshot bounds = %v, want 8x4", img.Bounds())
	}
	want := color.RGBA{0x33, 0x66, 0x99, 0xff}
	if got := img.RGBAAt(7, 3); got != want {
		t.Errorf("pixel = %v, want %v", got, want)
	}

	img.SetRGBA(0, 0, color.RGBA{})
	if got := s.Snapshot().RGBAAt(0, 0); got != want {
		t.Error("Snapshot shares pixels with the framebuffer")
	}
}

func TestThumbnailIsLogicalSize(t *testing.T) {
	for _, dpr := range []float32{0, 1, 2, 0.5} {
		cfg := testConfig(320, 240, 1)
		cfg.DevicePixelRatio = dpr
		s := newSession(t, cfg)
		if err := s.Run(context.Background()); err != nil {
			t.Fatalf("dpr %v: Run() = %v", dpr, err)
		}
		logical := s.Host().Size()
		b := s.Thumbnail().Bounds()
		if b.Dx() != logical.Width || b.Dy() != logical.Height {
			t.Errorf("dpr %v: Thumbnail = %dx%d, want logical %v", dpr, b.Dx(), b.Dy(), logical)
		}
	}
}

// deviceSurface realizes its surface at device resolution.
type deviceSurface struct {
	size surface.Size
}

func (p *deviceSurface) Resize(size surface.Size) error {
	p.size = surface.Sz(size.Width*2, size.Height*2)
	return nil
}

func (p *deviceSurface) ContextSurfaceInfo() (*surface.Info, error) {
	return &surface.Info{ID: 1, Size: p.size, Format: surface.DefaultFormat}, nil
}

func (p *deviceSurface) Destroy() error { return nil }

func TestThumbnailScalesDeviceFramebuffer(t *testing.T) {
	host, err := headless.NewWithProvider(headless.Sz(160, 120),
		&deviceSurface{size: surface.Sz(320, 240)},
		headless.WithDevicePixelRatio(2))
	if err != nil {
		t.Fatalf("NewWithProvider() = %v", err)
	}
	s, err := NewWithHost(testConfig(160, 120, 1), host, nil)
	if err != nil {
		t.Fatalf("NewWithHost() = %v", err)
	}
	defer s.Close()

	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run() = %v", err)
	}
	if b := s.Snapshot().Bounds(); b.Dx() != 320 || b.Dy() != 240 {
		t.Fatalf("Snapshot = %v, want 320x240", b)
	}
	thumb := s.Thumbnail()
	if b := thumb.Bounds(); b.Dx() != 160 || b.Dy() != 120 {
		t.Fatalf("Thumbnail = %v, want 160x120", b)
	}
	want := color.RGBA{0x33, 0x66, 0x99, 0xff}
	if got := thumb.RGBAAt(80, 60); got != want {
		t.Errorf("Thumbnail pixel = %v, want %v", got, want)
	}
}

func TestSessionDevice(t *testing.T) {
	s := newSession(t, testConfig(16, 16, 1))
	if !render.HasHAL(s.Device()) {
		t.Error("noop session device is not HAL-backed")
	}

	host, err := headless.NewWithProvider(headless.Sz(4, 4), &resizeFailer{size: surface.Sz(4, 4)})
	if err != nil {
		t.Fatalf("NewWithProvider() = %v", err)
	}
	fake, err := NewWithHost(testConfig(4, 4, 1), host, nil)
	if err != nil {
		t.Fatalf("NewWithHost() = %v", err)
	}
	defer fake.Close()
	if _, ok := fake.Device().(render.NullDeviceHandle); !ok {
		t.Errorf("Device() = %T, want NullDeviceHandle", fake.Device())
	}
	if fake.SurfaceTarget() != nil {
		t.Error("SurfaceTarget() non-nil without a surface manager")
	}
}

func TestFullscreenFromConfig(t *testing.T) {
	cfg := testConfig(16, 16, 1)
	cfg.Fullscreen = true
	s := newSession(t, cfg)
	if !s.Host().Fullscreen() {
		t.Error("Fullscreen() = false, want true")
	}
}
