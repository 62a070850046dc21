// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/voxel/pipeline"
)

// Layouts holds the bind group layouts of the world, material and draw
// groups, and the one pipeline layout every pipeline is built with.
type Layouts struct {
	World    hal.BindGroupLayout
	Material hal.BindGroupLayout
	Draw     hal.BindGroupLayout
	Pipeline hal.PipelineLayout
}

func newLayouts(device hal.Device) (*Layouts, error) {
	l := &Layouts{}
	var err error

	// Group 0: camera for the vertex stage, lighting for the fragment stage.
	l.World, err = device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "voxel_world_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    pipeline.BindingCamera,
				Visibility: gputypes.ShaderStageVertex,
				Buffer: &gputypes.BufferBindingLayout{
					Type:           gputypes.BufferBindingTypeUniform,
					MinBindingSize: pipeline.CameraUniformSize,
				},
			},
			{
				Binding:    pipeline.BindingLighting,
				Visibility: gputypes.ShaderStageFragment,
				Buffer: &gputypes.BufferBindingLayout{
					Type:           gputypes.BufferBindingTypeUniform,
					MinBindingSize: pipeline.LightingUniformSize,
				},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create world layout: %w", err)
	}

	l.Material, err = device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "voxel_material_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    pipeline.BindingTextures,
				Visibility: gputypes.ShaderStageFragment,
				Texture: &gputypes.TextureBindingLayout{
					SampleType:    gputypes.TextureSampleTypeFloat,
					ViewDimension: gputypes.TextureViewDimension2DArray,
				},
			},
			{
				Binding:    pipeline.BindingSampler,
				Visibility: gputypes.ShaderStageFragment,
				Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
			},
		},
	})
	if err != nil {
		l.destroy(device)
		return nil, fmt.Errorf("create material layout: %w", err)
	}

	l.Draw, err = device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "voxel_draw_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    pipeline.BindingPushData,
				Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
				Buffer: &gputypes.BufferBindingLayout{
					Type:           gputypes.BufferBindingTypeUniform,
					MinBindingSize: pipeline.PushDataSize,
				},
			},
		},
	})
	if err != nil {
		l.destroy(device)
		return nil, fmt.Errorf("create draw layout: %w", err)
	}

	l.Pipeline, err = device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "voxel_pipeline_layout",
		BindGroupLayouts: []hal.BindGroupLayout{l.World, l.Material, l.Draw},
	})
	if err != nil {
		l.destroy(device)
		return nil, fmt.Errorf("create pipeline layout: %w", err)
	}
	return l, nil
}

// destroy releases the layouts in reverse creation order.
func (l *Layouts) destroy(device hal.Device) {
	if l.Pipeline != nil {
		device.DestroyPipelineLayout(l.Pipeline)
		l.Pipeline = nil
	}
	for _, bgl := range []*hal.BindGroupLayout{&l.Draw, &l.Material, &l.World} {
		if *bgl != nil {
			device.DestroyBindGroupLayout(*bgl)
			*bgl = nil
		}
	}
}
