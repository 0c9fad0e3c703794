// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package surface provides the off-screen surface provider used by headless
// sessions.
//
// The provider owns the GPU objects that back a window-less rendering
// surface: a HAL instance (the connection), an adapter, an open device and
// the texture that receives rendered frames. Callers only see three
// operations, mirroring what a windowing host needs:
//
//   - Create a surface of a given type and size
//   - Resize it in place
//   - Query the live surface info (size, format, id)
//
// # Backends
//
// Backends are selected through a priority registry. Two are built in:
//
//   - "vulkan" (priority 100): available when the wgpu Vulkan HAL is linked
//     and a loader is present
//   - "noop" (priority 10): the wgpu no-op HAL, always available
//
// Third-party backends register themselves the same way:
//
//	surface.Register("metal", 100, metalBackend, metalAvailable)
//
// # Usage
//
//	conn, err := surface.ConnectBest()
//	if err != nil {
//	    return err
//	}
//	adapter, err := conn.SoftwareAdapter()
//	if err != nil {
//	    return err
//	}
//	m, err := surface.Create(conn, adapter, surface.Generic(surface.Size{Width: 800, Height: 600}))
//	if err != nil {
//	    return err
//	}
//	defer m.Destroy()
//
//	info, err := m.ContextSurfaceInfo()
//
// Surfaces are NOT thread-safe. A Manager is mutated only by its owner;
// other consumers read the device through [Manager.Shared].
package surface
