// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package voxel

import (
	"errors"
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// testProvider hands out HAL objects directly from Device and Queue.
type testProvider struct {
	device, queue any
	format        gputypes.TextureFormat
}

func (p *testProvider) Device() gpucontext.Device             { return p.device }
func (p *testProvider) Queue() gpucontext.Queue               { return p.queue }
func (p *testProvider) SurfaceFormat() gputypes.TextureFormat { return p.format }
func (p *testProvider) Adapter() gpucontext.Adapter           { return nil }
func (p *testProvider) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{Name: "noop", Type: gpucontext.AdapterTypeSoftware}
}

// wrappedProvider hides the HAL objects behind HalDevice and HalQueue.
type wrappedProvider struct {
	testProvider
}

func (p *wrappedProvider) Device() gpucontext.Device { return struct{}{} }
func (p *wrappedProvider) Queue() gpucontext.Queue   { return struct{}{} }
func (p *wrappedProvider) HalDevice() any            { return p.device }
func (p *wrappedProvider) HalQueue() any             { return p.queue }

func TestNewRendererFromProvider(t *testing.T) {
	device, queue := noopDevice(t)

	defaults := DefaultConfig()
	explicit := DefaultConfig()
	explicit.Renderer.ColorFormat = "bgra8unorm"

	tests := []struct {
		name       string
		provider   DeviceHandle
		opts       []Option
		wantFormat gputypes.TextureFormat
	}{
		{
			name:       "surface format",
			provider:   &testProvider{device: device, queue: queue, format: gputypes.TextureFormatRGBA8Unorm},
			wantFormat: gputypes.TextureFormatRGBA8Unorm,
		},
		{
			name:       "headless keeps default",
			provider:   &testProvider{device: device, queue: queue},
			wantFormat: gputypes.TextureFormatBGRA8Unorm,
		},
		{
			name:       "option overrides surface",
			provider:   &wrappedProvider{testProvider{device: device, queue: queue, format: gputypes.TextureFormatRGBA8Unorm}},
			opts:       []Option{WithColorFormat(gputypes.TextureFormatBGRA8UnormSrgb)},
			wantFormat: gputypes.TextureFormatBGRA8UnormSrgb,
		},
		{
			name:       "default config keeps surface",
			provider:   &testProvider{device: device, queue: queue, format: gputypes.TextureFormatRGBA8UnormSrgb},
			opts:       []Option{WithConfig(&defaults)},
			wantFormat: gputypes.TextureFormatRGBA8UnormSrgb,
		},
		{
			name:       "config color format overrides surface",
			provider:   &testProvider{device: device, queue: queue, format: gputypes.TextureFormatRGBA8UnormSrgb},
			opts:       []Option{WithConfig(&explicit)},
			wantFormat: gputypes.TextureFormatBGRA8Unorm,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := append(tt.opts, WithSampleCount(1))
			r, err := NewRendererFromProvider(tt.provider, opts...)
			if err != nil {
				t.Fatalf("NewRendererFromProvider() = %v", err)
			}
			defer r.Close()
			if got := r.Config().ColorFormat; got != tt.wantFormat {
				t.Errorf("ColorFormat = %v, want %v", got, tt.wantFormat)
			}
		})
	}
}

func TestNewRendererFromProviderErrors(t *testing.T) {
	device, _ := noopDevice(t)
	tests := []struct {
		name     string
		provider DeviceHandle
	}{
		{"nil", nil},
		{"not hal", &testProvider{device: "device", queue: "queue"}},
		{"missing queue", &testProvider{device: device}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRendererFromProvider(tt.provider)
			if !errors.Is(err, ErrNoHALDevice) {
				t.Errorf("error = %v, want ErrNoHALDevice", err)
			}
		})
	}
}
