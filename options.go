// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package voxel

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/voxel/internal/gpu"
)

// Option configures a Renderer during creation.
//
// Example:
//
//	// 4x MSAA, WGSL, embedded shaders
//	r, err := voxel.NewRenderer(device, queue)
//
//	// Single-sampled, shaders precompiled to SPIR-V
//	r, err := voxel.NewRenderer(device, queue,
//	    voxel.WithSampleCount(1),
//	    voxel.WithShaderFormat(voxel.ShaderSPIRV))
type Option func(*options)

// options holds optional configuration for Renderer creation.
type options struct {
	gpu gpu.Config
	sun *mgl32.Vec3

	// colorSet records an explicit color format, which wins over the
	// host surface format.
	colorSet bool
}

// defaultOptions returns the default renderer options.
func defaultOptions() options {
	return options{gpu: gpu.DefaultConfig()}
}

// WithSampleCount sets the MSAA sample count, 1 or 4.
func WithSampleCount(n uint32) Option {
	return func(o *options) {
		o.gpu.SampleCount = n
	}
}

// WithColorFormat sets the color attachment format.
func WithColorFormat(f gputypes.TextureFormat) Option {
	return func(o *options) {
		o.gpu.ColorFormat = f
		o.colorSet = true
	}
}

// WithDepthFormat sets the depth/stencil attachment format.
func WithDepthFormat(f gputypes.TextureFormat) Option {
	return func(o *options) {
		o.gpu.DepthFormat = f
	}
}

// WithUniformAlignment sets the device's minimum uniform buffer offset
// alignment. It must be a power of two.
func WithUniformAlignment(n uint64) Option {
	return func(o *options) {
		o.gpu.UniformAlignment = n
	}
}

// WithShaderFormat selects how shaders reach the device.
func WithShaderFormat(f ShaderFormat) Option {
	return func(o *options) {
		o.gpu.ShaderFormat = f
	}
}

// WithShaderDir loads shaders from dir, falling back to the embedded
// sources for files it does not contain. With watch set, edits reload
// the affected pipelines at the next frame.
func WithShaderDir(dir string, watch bool) Option {
	return func(o *options) {
		o.gpu.ShaderDir = dir
		o.gpu.WatchShaders = watch
	}
}

// WithDrawSlotsPerPage sizes the pages of the per-draw uniform ring.
func WithDrawSlotsPerPage(n int) Option {
	return func(o *options) {
		o.gpu.DrawSlotsPerPage = n
	}
}

// WithConfig applies the renderer and lighting sections of a file config.
// Options after it override individual fields. An empty color_format keeps
// the color format chosen so far, or the host surface format.
func WithConfig(c *Config) Option {
	return func(o *options) {
		slots, color := o.gpu.DrawSlotsPerPage, o.gpu.ColorFormat
		o.gpu = c.GPUConfig()
		o.gpu.DrawSlotsPerPage = slots
		if f, ok := c.colorFormat(); ok {
			o.gpu.ColorFormat = f
			o.colorSet = true
		} else {
			o.gpu.ColorFormat = color
		}
		sun := mgl32.Vec3(c.Lighting.SunDirection)
		o.sun = &sun
	}
}
