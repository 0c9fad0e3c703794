// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// DeviceHandle is the device a compositor receives from the host.
type DeviceHandle = gpucontext.DeviceProvider

// HasHAL reports whether handle carries a HAL device, i.e. whether GPU
// compositing into a SurfaceTarget is possible.
func HasHAL(handle DeviceHandle) bool {
	hp, ok := handle.(interface{ HalDevice() any })
	return ok && hp.HalDevice() != nil
}

// NullDeviceHandle stands in when the host's provider exposes no device.
// Compositing then happens on PixmapTarget only.
type NullDeviceHandle struct{}

func (NullDeviceHandle) Device() gpucontext.Device   { return nil }
func (NullDeviceHandle) Queue() gpucontext.Queue     { return nil }
func (NullDeviceHandle) Adapter() gpucontext.Adapter { return nil }

// AdapterInfo reports an unknown adapter.
func (NullDeviceHandle) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{Type: gpucontext.AdapterTypeUnknown}
}

// SurfaceFormat returns TextureFormatUndefined.
func (NullDeviceHandle) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatUndefined
}

var _ DeviceHandle = NullDeviceHandle{}
