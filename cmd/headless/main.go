// Command headless runs a headless compositor session and writes the
// composited framebuffer as a PNG.
package main

import (
	"context"
	"flag"
	"image"
	"image/png"
	"log"
	"log/slog"
	"os"
	"os/signal"

	"github.com/gogpu/headless"
	"github.com/gogpu/headless/internal/config"
	"github.com/gogpu/headless/internal/session"

	// Register the Vulkan HAL backend; without a driver the noop backend is used.
	_ "github.com/gogpu/wgpu/hal/vulkan"
)

func main() {
	var (
		configPath = flag.String("config", "", "session config file (YAML)")
		width      = flag.Int("width", 0, "surface width in logical pixels")
		height     = flag.Int("height", 0, "surface height in logical pixels")
		dpr        = flag.Float64("dpr", 0, "device pixel ratio override")
		backend    = flag.String("backend", "", "surface backend (default: best available)")
		frames     = flag.Int("frames", 0, "number of frames to composite")
		output     = flag.String("output", "", "output PNG file")
		verbose    = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "width":
			cfg.Width = *width
		case "height":
			cfg.Height = *height
		case "dpr":
			cfg.DevicePixelRatio = float32(*dpr)
		case "backend":
			cfg.Backend = *backend
		case "frames":
			cfg.Frames = *frames
		case "output":
			cfg.Output = *output
		case "v":
			if *verbose {
				cfg.LogLevel = "debug"
			}
		}
	})
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid options: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Level()}))
	headless.SetLogger(logger)

	s, err := session.New(*cfg, logger)
	if err != nil {
		log.Fatalf("Failed to create headless host: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	runErr := s.Run(ctx)
	stop()
	if runErr != nil {
		_ = s.Close()
		log.Fatalf("Session failed: %v", runErr)
	}

	if cfg.Output != "" {
		if err := savePNG(cfg.Output, s.Snapshot()); err != nil {
			_ = s.Close()
			log.Fatalf("Failed to save: %v", err)
		}
	}
	if cfg.Thumbnail != "" {
		if err := savePNG(cfg.Thumbnail, s.Thumbnail()); err != nil {
			_ = s.Close()
			log.Fatalf("Failed to save thumbnail: %v", err)
		}
	}

	st := s.Stats()
	if err := s.Close(); err != nil {
		log.Printf("Close: %v", err)
	}
	log.Printf("Composited %d frames (%d resizes), framebuffer %s\n",
		st.Frames, st.ResizeEvents, st.Framebuffer)
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
