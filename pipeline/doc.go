// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package pipeline describes the resource-binding contract between the host
// and the block shaders, independent of any GPU device.
//
// Three bind groups feed every world draw:
//
//	group 0 "world"    binding 0: camera     mat4x4<f32>   (vertex)
//	                   binding 1: sun_dir    vec4<f32>     (fragment)
//	group 1 "material" binding 0: textures   texture_2d_array<f32>
//	                   binding 1: sampler    sampler (filtering)
//	group 2 "draw"     binding 0: push data  Tint or ChunkOrigin
//
// A pipeline is built for exactly one [Variant] and one [PushShape].
// [Descriptor.Validate] rejects combinations a shader cannot serve, so a
// mismatch surfaces when the pipeline is created, never while drawing.
//
// [Reference] evaluates the shader stages on the CPU. It is used by tests
// and tools to check GPU output against known values.
package pipeline
