// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"fmt"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/voxel/pipeline"
)

// FrameState is the world group: the camera and lighting uniforms read by
// every draw of a frame.
//
// Setters stage values. The staged values reach the GPU only when the
// renderer commits them at BeginFrame, so a frame never sees a
// half-updated camera.
type FrameState struct {
	mu        sync.Mutex
	layout    pipeline.WorldLayout
	staged    pipeline.FrameUniforms
	committed pipeline.FrameUniforms
	version   uint64

	buf   hal.Buffer
	group hal.BindGroup
}

func newFrameState(device hal.Device, layouts *Layouts, layout pipeline.WorldLayout) (*FrameState, error) {
	buf, err := device.CreateBuffer(&hal.BufferDescriptor{
		Label: "voxel_world_uniforms",
		Size:  layout.Size(),
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create world uniform buffer: %w", err)
	}
	group, err := device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "voxel_world_group",
		Layout: layouts.World,
		Entries: []gputypes.BindGroupEntry{
			{Binding: pipeline.BindingCamera, Resource: gputypes.BufferBinding{
				Buffer: buf.NativeHandle(), Offset: layout.CameraOffset(), Size: pipeline.CameraUniformSize,
			}},
			{Binding: pipeline.BindingLighting, Resource: gputypes.BufferBinding{
				Buffer: buf.NativeHandle(), Offset: layout.LightingOffset(), Size: pipeline.LightingUniformSize,
			}},
		},
	})
	if err != nil {
		device.DestroyBuffer(buf)
		return nil, fmt.Errorf("create world bind group: %w", err)
	}
	defaults := pipeline.DefaultFrameUniforms()
	return &FrameState{
		layout:    layout,
		staged:    defaults,
		committed: defaults,
		buf:       buf,
		group:     group,
	}, nil
}

// SetCamera stages the view-projection matrix.
func (f *FrameState) SetCamera(viewProj mgl32.Mat4) {
	f.mu.Lock()
	f.staged.Camera = viewProj
	f.mu.Unlock()
}

// SetSun stages the sun direction. Only xyz is meaningful; a zero or
// non-finite direction is rejected and leaves the staged value unchanged.
func (f *FrameState) SetSun(dir mgl32.Vec3) error {
	n, err := pipeline.NormalizeSun(dir)
	if err != nil {
		return err
	}
	f.mu.Lock()
	f.staged.Sun = n
	f.mu.Unlock()
	return nil
}

// Staged returns the values the next frame will commit.
func (f *FrameState) Staged() pipeline.FrameUniforms {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.staged
}

// Committed returns the values of the current frame.
func (f *FrameState) Committed() pipeline.FrameUniforms {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.committed
}

// Version counts commits. It starts at zero and grows by one per frame.
func (f *FrameState) Version() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.version
}

// Layout returns the placement of the uniforms in the world buffer.
func (f *FrameState) Layout() pipeline.WorldLayout { return f.layout }

// commit uploads the staged values and bumps the version.
func (f *FrameState) commit(queue hal.Queue) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := queue.WriteBuffer(f.buf, 0, f.layout.Encode(f.staged)); err != nil {
		return fmt.Errorf("write world uniforms: %w", err)
	}
	f.committed = f.staged
	f.version++
	return nil
}

func (f *FrameState) destroy(device hal.Device) {
	if f.group != nil {
		device.DestroyBindGroup(f.group)
		f.group = nil
	}
	if f.buf != nil {
		device.DestroyBuffer(f.buf)
		f.buf = nil
	}
}
