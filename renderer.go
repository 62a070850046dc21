// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package voxel

import (
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/voxel/internal/gpu"
)

// GPU types re-exported from the renderer implementation.
type (
	// ChunkMesh is an uploaded chunk mesh. The caller must Destroy it.
	ChunkMesh = gpu.ChunkMesh

	// Material is an uploaded texture array.
	Material = gpu.Material

	// Target is an offscreen color and depth target.
	Target = gpu.Target

	// ChunkPass records chunk draws.
	ChunkPass = gpu.ChunkPass

	// OverlayPass records screen-space draws.
	OverlayPass = gpu.OverlayPass

	// OutlinePass records block outlines.
	OutlinePass = gpu.OutlinePass

	// OverlayVertex is a screen-space vertex.
	OverlayVertex = gpu.OverlayVertex

	// OverlayMesh is an uploaded overlay vertex buffer.
	OverlayMesh = gpu.OverlayMesh

	// FrameState holds the world uniforms.
	FrameState = gpu.FrameState

	// ShaderFormat selects WGSL or SPIR-V shader modules.
	ShaderFormat = gpu.ShaderFormat
)

// Shader formats.
const (
	ShaderWGSL  = gpu.ShaderWGSL
	ShaderSPIRV = gpu.ShaderSPIRV
)

// OverlayQuad returns two triangles covering a rectangle in normalized
// device coordinates.
func OverlayQuad(x0, y0, x1, y1 float32, layer uint32) []OverlayVertex {
	return gpu.OverlayQuad(x0, y0, x1, y1, layer)
}

// Renderer draws chunks on a HAL device it does not own.
type Renderer struct {
	*gpu.Renderer
}

// NewRenderer creates a renderer on device and queue.
func NewRenderer(device hal.Device, queue hal.Queue, opts ...Option) (*Renderer, error) {
	return newRenderer(device, queue, applyOptions(opts))
}

func applyOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func newRenderer(device hal.Device, queue hal.Queue, o options) (*Renderer, error) {
	r, err := gpu.NewRenderer(device, queue, o.gpu)
	if err != nil {
		return nil, err
	}
	if o.sun != nil {
		if err := r.Frame().SetSun(*o.sun); err != nil {
			r.Close()
			return nil, err
		}
	}
	Logger().Debug("voxel renderer ready", "samples", o.gpu.SampleCount)
	return &Renderer{Renderer: r}, nil
}

// SetCamera stages c's view-projection for the next frame.
func (r *Renderer) SetCamera(c *Camera, aspect float32) {
	r.Frame().SetCamera(c.ViewProjection(aspect))
}
