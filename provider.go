// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package voxel

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// ErrNoHALDevice is returned when a provider does not expose HAL types.
var ErrNoHALDevice = errors.New("voxel: provider does not expose a HAL device")

// DeviceHandle provides GPU device access from the host application.
//
// The host (e.g. a gogpu.App) owns the device; the renderer borrows it and
// never destroys it. DeviceHandle is an alias for gpucontext.DeviceProvider.
type DeviceHandle = gpucontext.DeviceProvider

// halProvider is implemented by hosts whose Device and Queue wrap HAL objects.
type halProvider interface {
	HalDevice() any
	HalQueue() any
}

// NewRendererFromProvider creates a renderer on the host's device. The color
// format is the provider's surface format unless opts set one explicitly,
// through WithColorFormat or a config color_format.
func NewRendererFromProvider(p DeviceHandle, opts ...Option) (*Renderer, error) {
	if p == nil {
		return nil, fmt.Errorf("%w: nil provider", ErrNoHALDevice)
	}
	device, queue, err := halDevice(p)
	if err != nil {
		return nil, err
	}
	o := applyOptions(opts)
	if f := p.SurfaceFormat(); f != gputypes.TextureFormatUndefined && !o.colorSet {
		o.gpu.ColorFormat = f
	}
	info := p.AdapterInfo()
	Logger().Info("using host device", "adapter", info.Name, "type", info.Type.String(),
		"color_format", o.gpu.ColorFormat.String())
	return newRenderer(device, queue, o)
}

func halDevice(p DeviceHandle) (hal.Device, hal.Queue, error) {
	var dev, q any
	if hp, ok := p.(halProvider); ok {
		dev, q = hp.HalDevice(), hp.HalQueue()
	} else {
		dev, q = p.Device(), p.Queue()
	}
	device, ok := dev.(hal.Device)
	if !ok || device == nil {
		return nil, nil, fmt.Errorf("%w: device is %T", ErrNoHALDevice, dev)
	}
	queue, ok := q.(hal.Queue)
	if !ok || queue == nil {
		return nil, nil, fmt.Errorf("%w: queue is %T", ErrNoHALDevice, q)
	}
	return device, queue, nil
}
