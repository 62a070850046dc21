// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package voxel renders block worlds on a gogpu/wgpu HAL device.
//
// # Overview
//
// A world is split into chunks of 32x32x32 blocks. Each chunk is meshed on
// the CPU into packed 8-byte vertices (see package vertex) and drawn with a
// per-draw chunk origin, so one vertex format covers every chunk in the
// world. Ambient occlusion is quantized per corner at mesh time and blended
// bilinearly in the fragment stage.
//
// # Quick Start
//
//	r, err := voxel.NewRenderer(device, queue, voxel.WithSampleCount(4))
//	if err != nil {
//	    return err
//	}
//	defer r.Close()
//
//	set, _ := texarray.Load(ctx, "textures/blocks.toml")
//	mat, _ := r.NewMaterial(set.Array, "blocks")
//	m, _ := mesh.NewBuilder(set.Palette(ids), set.Array.LayerCount()).Build(chunk)
//	cm, _ := r.UploadMesh(m, "chunk_0_0_0")
//
//	r.SetCamera(cam, aspect)
//	r.BeginFrame()
//	r.Render(target, sky, func(rp hal.RenderPassEncoder) error {
//	    cp, err := r.ChunkPass(rp, pipeline.VariantTextured)
//	    if err != nil {
//	        return err
//	    }
//	    cp.SetMaterial(mat)
//	    return cp.DrawChunk(cm, coord.Origin())
//	})
//	r.EndFrame()
//
// # Architecture
//
// The library is organized into:
//   - vertex: the packed vertex codec and ambient occlusion blend
//   - mesh: chunk storage and the mesher producing packed vertices
//   - texarray: texture manifests and the layer array uploaded as a material
//   - pipeline: bind group layout, push data shapes and pipeline variants
//   - shaders: embedded WGSL with include and specialization support
//   - internal/gpu: HAL resources, pipelines and draw recording
//
// # Coordinate System
//
// Right-handed, Y up. Block coordinates are integers; a block at (x, y, z)
// spans the unit cube centered on that point. Clip space depth is [0, 1].
package voxel

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
