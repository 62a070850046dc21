// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/google/uuid"

	"github.com/gogpu/voxel/pipeline"
	"github.com/gogpu/voxel/texarray"
)

// MaterialFormat is the texel format of material texture arrays. Block
// textures are authored in sRGB, so sampling decodes them to linear.
const MaterialFormat = gputypes.TextureFormatRGBA8UnormSrgb

// Material is the material group: a texture array with one layer per block
// texture and the sampler used to read it.
type Material struct {
	ID     uuid.UUID
	Label  string
	Width  uint32
	Height uint32
	Layers uint32

	tex     hal.Texture
	view    hal.TextureView
	sampler hal.Sampler
	group   hal.BindGroup
}

func newMaterial(device hal.Device, queue hal.Queue, layouts *Layouts, arr *texarray.Array, label string) (*Material, error) {
	if arr == nil || arr.LayerCount() == 0 {
		return nil, texarray.ErrEmptyArray
	}
	m := &Material{
		ID:     uuid.New(),
		Label:  label,
		Width:  arr.Width,
		Height: arr.Height,
		Layers: arr.LayerCount(),
	}
	if m.Label == "" {
		m.Label = "material_" + m.ID.String()[:8]
	}
	size := hal.Extent3D{Width: m.Width, Height: m.Height, DepthOrArrayLayers: m.Layers}

	var err error
	m.tex, err = device.CreateTexture(&hal.TextureDescriptor{
		Label:         m.Label,
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        MaterialFormat,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create texture array %s: %w", m.Label, err)
	}

	m.view, err = device.CreateTextureView(m.tex, &hal.TextureViewDescriptor{
		Label:           m.Label + "_view",
		Format:          MaterialFormat,
		Dimension:       gputypes.TextureViewDimension2DArray,
		Aspect:          gputypes.TextureAspectAll,
		MipLevelCount:   1,
		ArrayLayerCount: m.Layers,
	})
	if err != nil {
		m.destroy(device)
		return nil, fmt.Errorf("create texture array view %s: %w", m.Label, err)
	}

	m.sampler, err = device.CreateSampler(&hal.SamplerDescriptor{
		Label:        m.Label + "_sampler",
		AddressModeU: gputypes.AddressModeClampToEdge,
		AddressModeV: gputypes.AddressModeClampToEdge,
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    gputypes.FilterModeNearest,
		MinFilter:    gputypes.FilterModeNearest,
		MipmapFilter: gputypes.FilterModeNearest,
	})
	if err != nil {
		m.destroy(device)
		return nil, fmt.Errorf("create sampler %s: %w", m.Label, err)
	}

	m.group, err = device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  m.Label + "_group",
		Layout: layouts.Material,
		Entries: []gputypes.BindGroupEntry{
			{Binding: pipeline.BindingTextures, Resource: gputypes.TextureViewBinding{TextureView: m.view.NativeHandle()}},
			{Binding: pipeline.BindingSampler, Resource: gputypes.SamplerBinding{Sampler: m.sampler.NativeHandle()}},
		},
	})
	if err != nil {
		m.destroy(device)
		return nil, fmt.Errorf("create material bind group %s: %w", m.Label, err)
	}

	// One write covers every layer; layers are stored back to back.
	err = queue.WriteTexture(
		&hal.ImageCopyTexture{Texture: m.tex, Aspect: gputypes.TextureAspectAll},
		arr.Bytes(),
		&hal.ImageDataLayout{BytesPerRow: arr.BytesPerRow(), RowsPerImage: arr.Height},
		&size,
	)
	if err != nil {
		m.destroy(device)
		return nil, fmt.Errorf("upload texture array %s: %w", m.Label, err)
	}

	slogger().Debug("material created",
		"label", m.Label, "width", m.Width, "height", m.Height, "layers", m.Layers)
	return m, nil
}

// destroy releases the material's GPU objects in reverse creation order.
func (m *Material) destroy(device hal.Device) {
	if m.group != nil {
		device.DestroyBindGroup(m.group)
		m.group = nil
	}
	if m.sampler != nil {
		device.DestroySampler(m.sampler)
		m.sampler = nil
	}
	if m.view != nil {
		device.DestroyTextureView(m.view)
		m.view = nil
	}
	if m.tex != nil {
		device.DestroyTexture(m.tex)
		m.tex = nil
	}
}

// destroyed reports whether the material has been released.
func (m *Material) destroyed() bool { return m.group == nil }
