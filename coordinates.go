package headless

import (
	"image"

	"github.com/gogpu/headless/surface"
)

// WindowGeometry is the size and position of a window in device pixels.
type WindowGeometry struct {
	Size   surface.Size
	Origin image.Point
}

// Coordinates is the geometry a compositor needs every frame.
//
// A headless host has no window chrome, screen or monitor layout, so every
// rectangle equals the realized surface size in device pixels, anchored at
// the origin.
type Coordinates struct {
	// Viewport is the area the compositor renders into.
	Viewport image.Rectangle

	// Framebuffer is the size of the rendering surface.
	Framebuffer surface.Size

	// Window is the outer window geometry.
	Window WindowGeometry

	// Screen is the size of the screen holding the window.
	Screen surface.Size

	// ScreenAvail is the screen size minus system decorations.
	ScreenAvail surface.Size

	// HiDPIFactor converts logical pixels to device pixels.
	HiDPIFactor Scale
}

// coordinatesFor builds placeholder coordinates for a surface of size.
func coordinatesFor(size surface.Size, dpr Scale) Coordinates {
	return Coordinates{
		Viewport:    image.Rect(0, 0, size.Width, size.Height),
		Framebuffer: size,
		Window:      WindowGeometry{Size: size},
		Screen:      size,
		ScreenAvail: size,
		HiDPIFactor: dpr,
	}
}
