// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render provides the render targets a compositor draws into when
// it runs on a headless host.
//
// # Key Principle
//
// The rendering pipeline RECEIVES its device from the host, it does NOT
// create one. [headless.Host.DeviceProvider] hands out a shared, read-only
// [DeviceHandle]; only the host resizes the surface behind it.
//
// # RenderTarget Implementations
//
//   - PixmapTarget: CPU-backed *image.RGBA target for software compositing
//     and frame capture
//   - SurfaceTarget: the host's off-screen GPU surface, built from live
//     surface info
//
// # Usage
//
//	host, _ := headless.New(headless.Sz(800, 600))
//	coords := host.Coordinates()
//	target := render.NewPixmapTarget(coords.Framebuffer)
//
//	for _, ev := range host.PollEvents() {
//	    if ev.Kind == headless.EventResize {
//	        target.Resize(host.Coordinates().Framebuffer)
//	    }
//	}
package render
