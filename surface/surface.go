// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

var (
	// ErrNoSurface is returned when the manager has no bound surface.
	ErrNoSurface = errors.New("surface: no surface bound")

	// ErrUnsupportedType is returned for surface types the provider cannot create.
	ErrUnsupportedType = errors.New("surface: unsupported surface type")
)

// Manager owns one off-screen surface and the device it lives on.
//
// A Manager is created once per session and resized in place. It is NOT
// thread-safe; other consumers should use [Manager.Shared].
type Manager struct {
	backend string
	adapter *Adapter
	device  hal.Device
	queue   hal.Queue

	texture hal.Texture
	view    hal.TextureView
	info    Info

	// nextID is the id given to the next realized surface.
	nextID    uint64
	destroyed bool
}

// Create opens a device on adapter and creates a surface of the given type.
//
// Only generic surfaces are supported. The size is clamped to at least
// 1x1 because zero-area textures are rejected by every backend.
func Create(conn *Connection, adapter *Adapter, typ Type) (*Manager, error) {
	if conn == nil || conn.closed {
		return nil, ErrConnectionClosed
	}
	if adapter == nil {
		return nil, ErrNoAdapter
	}
	if typ.Kind != TypeGeneric {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, typ.Kind)
	}

	device, queue, err := adapter.open()
	if err != nil {
		return nil, fmt.Errorf("surface: %w", err)
	}

	m := &Manager{
		backend: conn.backend,
		adapter: adapter,
		device:  device,
		queue:   queue,
		nextID:  1,
	}
	if err := m.bind(typ.Size); err != nil {
		device.Destroy()
		return nil, err
	}

	slogger().Info("surface: created",
		"backend", m.backend,
		"adapter", adapter.Name(),
		"size", m.info.Size.String())
	return m, nil
}

// Resize replaces the bound surface with one of the given size.
// On failure the previous surface stays bound.
func (m *Manager) Resize(size Size) error {
	if m.destroyed {
		return ErrNoSurface
	}
	if err := m.bind(size); err != nil {
		return err
	}
	slogger().Debug("surface: resized", "size", m.info.Size.String(), "id", m.info.ID)
	return nil
}

// ContextSurfaceInfo returns the live info of the bound surface.
func (m *Manager) ContextSurfaceInfo() (*Info, error) {
	if m.destroyed || m.texture == nil {
		return nil, ErrNoSurface
	}
	info := m.info
	return &info, nil
}

// TextureView returns the view of the bound surface, or nil once destroyed.
func (m *Manager) TextureView() hal.TextureView {
	if m.destroyed {
		return nil
	}
	return m.view
}

// Shared returns a read-only reference to the manager's device.
// The value may be copied freely; it stays valid until Destroy.
func (m *Manager) Shared() SharedDevice {
	return SharedDevice{
		device:  m.device,
		queue:   m.queue,
		format:  m.info.Format,
		adapter: m.adapter.info(),
	}
}

// Destroy releases the surface and the device. Destroy is idempotent.
func (m *Manager) Destroy() error {
	if m.destroyed {
		return nil
	}
	m.destroyed = true
	m.unbind()
	if m.device != nil {
		m.device.Destroy()
	}
	slogger().Debug("surface: destroyed", "backend", m.backend)
	return nil
}

// bind creates a texture and view of size and swaps them in.
func (m *Manager) bind(size Size) error {
	size = size.Clamp()

	tex, err := m.device.CreateTexture(&hal.TextureDescriptor{
		Label:         "headless_surface",
		Size:          size.extent(),
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        DefaultFormat,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		return fmt.Errorf("surface: create texture %s: %w", size, err)
	}

	view, err := m.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label: "headless_surface_view",
	})
	if err != nil {
		m.device.DestroyTexture(tex)
		return fmt.Errorf("surface: create texture view %s: %w", size, err)
	}

	m.unbind()
	m.texture = tex
	m.view = view
	m.info = Info{
		ID:     m.nextID,
		Size:   size,
		Format: DefaultFormat,
	}
	m.nextID++
	return nil
}

// unbind destroys the bound texture and view, if any.
func (m *Manager) unbind() {
	if m.view != nil {
		m.device.DestroyTextureView(m.view)
		m.view = nil
	}
	if m.texture != nil {
		m.device.DestroyTexture(m.texture)
		m.texture = nil
	}
}

// SharedDevice is a copyable, read-only reference to a Manager's device.
//
// It implements gpucontext.DeviceProvider for rendering consumers. The
// headless provider works at the HAL level, so the device is exposed
// through HalDevice and HalQueue; the WebGPU-level accessors return nil.
type SharedDevice struct {
	device  hal.Device
	queue   hal.Queue
	format  gputypes.TextureFormat
	adapter gpucontext.AdapterInfo
}

// Device returns nil; use HalDevice.
func (SharedDevice) Device() gpucontext.Device { return nil }

// Queue returns nil; use HalQueue.
func (SharedDevice) Queue() gpucontext.Queue { return nil }

// Adapter returns nil.
func (SharedDevice) Adapter() gpucontext.Adapter { return nil }

// SurfaceFormat returns the format of the managed surface.
func (s SharedDevice) SurfaceFormat() gputypes.TextureFormat { return s.format }

// AdapterInfo describes the adapter the device was opened on.
func (s SharedDevice) AdapterInfo() gpucontext.AdapterInfo { return s.adapter }

// HalDevice returns the hal.Device.
func (s SharedDevice) HalDevice() any { return s.device }

// HalQueue returns the hal.Queue.
func (s SharedDevice) HalQueue() any { return s.queue }

// Ensure SharedDevice implements gpucontext.DeviceProvider.
var _ gpucontext.DeviceProvider = SharedDevice{}
