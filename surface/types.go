// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// Size is a surface size in device pixels.
type Size struct {
	Width  int
	Height int
}

// Sz creates a Size from width and height.
func Sz(width, height int) Size {
	return Size{Width: width, Height: height}
}

// Clamp returns a copy with each dimension raised to at least 1.
// Providers reject zero-area surfaces.
func (s Size) Clamp() Size {
	if s.Width <= 0 {
		s.Width = 1
	}
	if s.Height <= 0 {
		s.Height = 1
	}
	return s
}

// String implements fmt.Stringer.
func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// extent converts a clamped size to a HAL extent.
func (s Size) extent() hal.Extent3D {
	s = s.Clamp()
	return hal.Extent3D{
		//nolint:gosec // G115: Clamp guarantees positive values
		Width: uint32(s.Width),
		//nolint:gosec // G115: Clamp guarantees positive values
		Height:             uint32(s.Height),
		DepthOrArrayLayers: 1,
	}
}

// TypeKind identifies the kind of surface to create.
type TypeKind uint8

const (
	// TypeGeneric is an off-screen surface not bound to any native widget.
	TypeGeneric TypeKind = iota

	// TypeWidget is a surface bound to a native widget. Headless providers
	// never create these.
	TypeWidget
)

// String implements fmt.Stringer.
func (k TypeKind) String() string {
	switch k {
	case TypeGeneric:
		return "generic"
	case TypeWidget:
		return "widget"
	default:
		return fmt.Sprintf("TypeKind(%d)", k)
	}
}

// Type describes the surface to create.
type Type struct {
	// Kind is the surface kind.
	Kind TypeKind

	// Size is the initial size in device pixels.
	Size Size
}

// Generic returns a generic off-screen surface type of the given size.
func Generic(size Size) Type {
	return Type{Kind: TypeGeneric, Size: size}
}

// DefaultFormat is the pixel format of surfaces created by this package.
const DefaultFormat = gputypes.TextureFormatRGBA8Unorm

// Info describes the surface currently bound to a Manager.
type Info struct {
	// ID identifies the realized surface. It changes every time the
	// backing texture is recreated.
	ID uint64

	// Size is the realized size in device pixels.
	Size Size

	// Format is the pixel format.
	Format gputypes.TextureFormat
}
