// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package gpu records voxel chunk draws on a HAL device.
//
// It owns every GPU object the renderer needs: the three bind group layouts
// and the pipeline layout shared by all pipelines, the world uniform buffer,
// material texture arrays, the per-draw uniform ring that stands in for push
// constants, chunk vertex and index buffers, and the pipelines themselves.
//
// # Bind groups
//
//	group 0 (world)     binding 0 camera mat4x4<f32>, binding 1 sun vec4<f32>
//	group 1 (material)  binding 0 texture_2d_array<f32>, binding 1 sampler
//	group 2 (draw)      binding 0 per-draw data (tint or chunk origin)
//
// # Frames
//
// Uniform values are staged on FrameState at any time and committed by
// BeginFrame. Draws are recorded through ChunkPass and OverlayPass between
// BeginFrame and EndFrame:
//
//	if err := r.BeginFrame(); err != nil {
//	    return err
//	}
//	err := r.Render(target, clear, func(rp hal.RenderPassEncoder) error {
//	    pass, err := r.ChunkPass(rp, pipeline.VariantTextured)
//	    if err != nil {
//	        return err
//	    }
//	    if err := pass.SetMaterial(mat); err != nil {
//	        return err
//	    }
//	    return pass.DrawChunk(chunk, origin)
//	})
//	r.EndFrame()
//
// # Thread Safety
//
// Frame transitions, material release and shader reloads are serialized by
// the Renderer's mutex. Recording into a pass is single-goroutine, following
// command encoder semantics.
package gpu
