package headless

import (
	"fmt"
	"math"

	"github.com/gogpu/headless/surface"
)

// Size is a size in density-independent (logical) pixels.
type Size struct {
	Width  int
	Height int
}

// Sz creates a Size from width and height.
func Sz(width, height int) Size {
	return Size{Width: width, Height: height}
}

// clamp raises each dimension to at least 1.
func (s Size) clamp() Size {
	if s.Width <= 0 {
		s.Width = 1
	}
	if s.Height <= 0 {
		s.Height = 1
	}
	return s
}

// untyped returns the size with the same numeric values as a surface size.
// Headless surfaces are allocated at the logical size; the device pixel
// ratio only affects reported geometry.
func (s Size) untyped() surface.Size {
	return surface.Size{Width: s.Width, Height: s.Height}
}

// String implements fmt.Stringer.
func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// Scale is a density scale factor: device pixels per logical pixel.
type Scale float32

// Get returns the factor as a float32.
func (s Scale) Get() float32 {
	return float32(s)
}

// Transform scales a logical length to device pixels.
func (s Scale) Transform(v float32) float32 {
	return v * float32(s)
}

// validRatio reports whether r is a usable device pixel ratio.
func validRatio(r float32) bool {
	f := float64(r)
	return r > 0 && !math.IsInf(f, 0) && !math.IsNaN(f)
}
