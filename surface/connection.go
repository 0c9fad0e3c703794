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
	// ErrNoAdapter is returned when a connection exposes no adapters.
	ErrNoAdapter = errors.New("surface: no adapter found")

	// ErrConnectionClosed is returned when a closed connection is used.
	ErrConnectionClosed = errors.New("surface: connection is closed")
)

// Connection is an open HAL instance of one backend.
type Connection struct {
	backend  string
	instance hal.Instance
	closed   bool
}

// Backend returns the name of the backend the connection was opened with.
func (c *Connection) Backend() string {
	return c.backend
}

// Adapters returns every adapter exposed by the connection.
func (c *Connection) Adapters() ([]*Adapter, error) {
	if c.closed {
		return nil, ErrConnectionClosed
	}

	exposed := c.instance.EnumerateAdapters(nil)
	adapters := make([]*Adapter, len(exposed))
	for i := range exposed {
		adapters[i] = &Adapter{exposed: exposed[i]}
	}
	return adapters, nil
}

// SoftwareAdapter selects an adapter suitable for off-screen rendering.
//
// Adapters that are neither discrete nor integrated GPUs (CPU, virtual and
// unknown device types) are preferred. If none exists, the first adapter
// is used.
func (c *Connection) SoftwareAdapter() (*Adapter, error) {
	adapters, err := c.Adapters()
	if err != nil {
		return nil, err
	}
	if len(adapters) == 0 {
		return nil, fmt.Errorf("%w: backend %s", ErrNoAdapter, c.backend)
	}

	selected := adapters[0]
	for _, a := range adapters {
		if a.IsSoftware() {
			selected = a
			break
		}
	}

	slogger().Info("surface: adapter selected",
		"backend", c.backend,
		"adapter", selected.Name(),
		"software", selected.IsSoftware())
	return selected, nil
}

// Close destroys the HAL instance. Close is idempotent.
// Managers created from the connection must be destroyed first.
func (c *Connection) Close() {
	if c.closed {
		return
	}
	c.closed = true
	if c.instance != nil {
		c.instance.Destroy()
	}
}

// Adapter is a physical or software adapter exposed by a Connection.
type Adapter struct {
	exposed hal.ExposedAdapter
}

// Name returns the adapter name reported by the driver.
func (a *Adapter) Name() string {
	return a.exposed.Info.Name
}

// IsSoftware reports whether the adapter is not a hardware GPU.
func (a *Adapter) IsSoftware() bool {
	dt := a.exposed.Info.DeviceType
	return dt != gputypes.DeviceTypeDiscreteGPU && dt != gputypes.DeviceTypeIntegratedGPU
}

// Type classifies the adapter for rendering consumers.
func (a *Adapter) Type() gpucontext.AdapterType {
	switch a.exposed.Info.DeviceType {
	case gputypes.DeviceTypeDiscreteGPU:
		return gpucontext.AdapterTypeDiscrete
	case gputypes.DeviceTypeIntegratedGPU:
		return gpucontext.AdapterTypeIntegrated
	default:
		return gpucontext.AdapterTypeSoftware
	}
}

func (a *Adapter) info() gpucontext.AdapterInfo {
	if a == nil {
		return gpucontext.AdapterInfo{Type: gpucontext.AdapterTypeUnknown}
	}
	return gpucontext.AdapterInfo{Name: a.Name(), Type: a.Type()}
}

// String implements fmt.Stringer.
func (a *Adapter) String() string {
	return fmt.Sprintf("%s (%v)", a.Name(), a.exposed.Info.DeviceType)
}

// open opens a logical device on the adapter.
func (a *Adapter) open() (hal.Device, hal.Queue, error) {
	openDev, err := a.exposed.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		return nil, nil, fmt.Errorf("open device: %w", err)
	}
	return openDev.Device, openDev.Queue, nil
}
