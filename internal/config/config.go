// Package config loads headless session configuration from YAML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"io"
	"log/slog"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ResizeStep is a scripted resize applied before the given frame.
type ResizeStep struct {
	Frame  int `yaml:"frame"`
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Config describes one headless session.
type Config struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	// DevicePixelRatio overrides the density scale. Zero means unset (1.0).
	DevicePixelRatio float32 `yaml:"device_pixel_ratio"`

	// Backend names the surface backend. Empty selects the best available.
	Backend string `yaml:"backend"`

	Frames     int          `yaml:"frames"`
	Fullscreen bool         `yaml:"fullscreen"`
	Background string       `yaml:"background"` // "#rrggbb" or "#rrggbbaa"
	Resizes    []ResizeStep `yaml:"resizes"`

	Output    string `yaml:"output"`    // PNG of the framebuffer; empty disables
	Thumbnail string `yaml:"thumbnail"` // PNG at logical size; empty disables

	LogLevel string `yaml:"log_level"` // debug, info, warn, error
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Width:      800,
		Height:     600,
		Frames:     1,
		Background: "#ffffff",
		Output:     "headless.png",
		LogLevel:   "info",
	}
}

// Load reads path and merges it over DefaultConfig. A missing file yields
// the defaults. Unknown keys are rejected.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	exists, err := pathExists(path)
	if err != nil {
		return nil, err
	}
	if exists {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %q: %w", path, err)
		}
		if err := decodeStrictYAML(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %q: %w", path, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %q: %w", path, err)
	}
	cfg.sortResizes()
	return &cfg, nil
}

// Validate checks the configuration for values the session cannot use.
// Sizes are not required to be positive: the host clamps them.
func (c *Config) Validate() error {
	var errs []error
	if r := float64(c.DevicePixelRatio); r < 0 || math.IsNaN(r) || math.IsInf(r, 0) {
		errs = append(errs, fmt.Errorf("device_pixel_ratio must be zero or a positive finite number, got %v", c.DevicePixelRatio))
	}
	if c.Frames < 1 {
		errs = append(errs, fmt.Errorf("frames must be at least 1, got %d", c.Frames))
	}
	if _, err := ParseColor(c.Background); err != nil {
		errs = append(errs, fmt.Errorf("background: %w", err))
	}
	for i, r := range c.Resizes {
		if r.Frame < 0 || r.Frame >= c.Frames {
			errs = append(errs, fmt.Errorf("resizes[%d]: frame %d outside [0, %d)", i, r.Frame, c.Frames))
		}
	}
	if _, ok := levels[strings.ToLower(c.LogLevel)]; !ok {
		errs = append(errs, fmt.Errorf("unknown log_level %q", c.LogLevel))
	}
	return errors.Join(errs...)
}

// ResizesAt returns the scripted resizes for frame, in file order.
func (c *Config) ResizesAt(frame int) []ResizeStep {
	var out []ResizeStep
	for _, r := range c.Resizes {
		if r.Frame == frame {
			out = append(out, r)
		}
	}
	return out
}

func (c *Config) sortResizes() {
	sort.SliceStable(c.Resizes, func(i, j int) bool {
		return c.Resizes[i].Frame < c.Resizes[j].Frame
	})
}

var levels = map[string]struct{}{
	"debug": {}, "info": {}, "warn": {}, "error": {},
}

// ParseColor parses "#rrggbb" or "#rrggbbaa".
func ParseColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.RGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}

func decodeStrictYAML(data []byte, out any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	return nil
}

func pathExists(path string) (bool, error) {
	if path == "" {
		return false, nil
	}
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// Level returns the slog level named by LogLevel. Unknown names map to Info.
func (c *Config) Level() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
