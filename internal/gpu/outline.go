// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/voxel/pipeline"
)

// OutlineStride is the size of one outline corner in the vertex buffer.
const OutlineStride = 12

// outlineEdges returns the 12 edges of a unit cube centered on the origin,
// two corners per edge.
func outlineEdges() [][3]float32 {
	const h = 0.5
	corner := func(i int) [3]float32 {
		c := [3]float32{-h, -h, -h}
		for axis := range 3 {
			if i&(1<<axis) != 0 {
				c[axis] = h
			}
		}
		return c
	}
	edges := make([][3]float32, 0, 24)
	for i := range 8 {
		for axis := range 3 {
			if i&(1<<axis) == 0 {
				edges = append(edges, corner(i), corner(i|1<<axis))
			}
		}
	}
	return edges
}

func outlineBytes(corners [][3]float32) []byte {
	out := make([]byte, 0, len(corners)*OutlineStride)
	for _, c := range corners {
		for _, f := range c {
			out = binary.LittleEndian.AppendUint32(out, math.Float32bits(f))
		}
	}
	return out
}

func outlineVertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: OutlineStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
			},
		},
	}
}

// OutlinePass records wireframe cubes around single blocks, such as the
// block under the cursor.
type OutlinePass struct {
	r     *Renderer
	rp    hal.RenderPassEncoder
	frame uint64
	draws int
}

// Draws returns the number of draws recorded.
func (p *OutlinePass) Draws() int { return p.draws }

// Draw outlines the block centered on pos.
func (p *OutlinePass) Draw(pos pipeline.Position) error {
	if err := p.r.writeDraw(p.rp, p.frame, pos); err != nil {
		return err
	}
	p.rp.SetVertexBuffer(0, p.r.outline, 0)
	p.rp.Draw(p.r.outlineCount, 1, 0, 0)
	p.draws++
	return nil
}
