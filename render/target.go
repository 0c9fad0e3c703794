// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/headless/surface"
	"github.com/gogpu/wgpu/hal"
)

// TextureView is a view into a GPU texture.
type TextureView = hal.TextureView

// RenderTarget is what a compositor draws one frame into.
type RenderTarget interface {
	// Size returns the target size in device pixels.
	Size() surface.Size

	// Format returns the pixel format.
	Format() gputypes.TextureFormat

	// TextureView returns the GPU view, or nil for CPU targets.
	TextureView() TextureView
}

// PixmapTarget is a CPU framebuffer. It follows the host's framebuffer
// size through Resize and is what frame capture reads from.
type PixmapTarget struct {
	img *image.RGBA
}

// NewPixmapTarget allocates a framebuffer. Dimensions below 1 are raised to 1.
func NewPixmapTarget(size surface.Size) *PixmapTarget {
	return &PixmapTarget{img: newRGBA(size)}
}

func newRGBA(size surface.Size) *image.RGBA {
	size = size.Clamp()
	return image.NewRGBA(image.Rect(0, 0, size.Width, size.Height))
}

// Size returns the framebuffer size.
func (t *PixmapTarget) Size() surface.Size {
	b := t.img.Bounds()
	return surface.Sz(b.Dx(), b.Dy())
}

// Format returns RGBA8Unorm, the layout of *image.RGBA.
func (t *PixmapTarget) Format() gputypes.TextureFormat {
	return gputypes.TextureFormatRGBA8Unorm
}

// TextureView returns nil.
func (t *PixmapTarget) TextureView() TextureView { return nil }

// Image returns the framebuffer. It is replaced, not mutated, by Resize.
func (t *PixmapTarget) Image() *image.RGBA {
	return t.img
}

// Clear fills the framebuffer with c.
func (t *PixmapTarget) Clear(c color.Color) {
	draw.Draw(t.img, t.img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

// Resize reallocates the framebuffer when size differs from the current
// one and reports whether it did. Contents are discarded.
func (t *PixmapTarget) Resize(size surface.Size) bool {
	if size.Clamp() == t.Size() {
		return false
	}
	t.img = newRGBA(size)
	return true
}

var _ RenderTarget = (*PixmapTarget)(nil)

// SurfaceTarget is the host's realized GPU surface. A resize realizes a
// new surface, so a target goes stale and must be rebuilt from fresh info.
type SurfaceTarget struct {
	info surface.Info
	view TextureView
}

// NewSurfaceTarget builds a target from live surface info and the view
// of the bound surface.
func NewSurfaceTarget(info surface.Info, view TextureView) *SurfaceTarget {
	return &SurfaceTarget{info: info, view: view}
}

// ID returns the id of the realized surface.
func (t *SurfaceTarget) ID() uint64 { return t.info.ID }

// Size returns the surface size.
func (t *SurfaceTarget) Size() surface.Size { return t.info.Size }

// Format returns the surface format.
func (t *SurfaceTarget) Format() gputypes.TextureFormat { return t.info.Format }

// TextureView returns the surface view.
func (t *SurfaceTarget) TextureView() TextureView { return t.view }

// Stale reports whether info describes a different realized surface.
func (t *SurfaceTarget) Stale(info surface.Info) bool {
	return info.ID != t.info.ID
}

var _ RenderTarget = (*SurfaceTarget)(nil)
