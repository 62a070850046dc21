// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/voxel/pipeline"
)

// ChunkPass records world draws. Each draw carries a chunk origin; the
// draw path cannot write any other push shape.
type ChunkPass struct {
	r        *Renderer
	rp       hal.RenderPassEncoder
	variant  pipeline.Variant
	frame    uint64
	material *Material
	draws    int
}

// Variant returns the pass's pipeline variant.
func (p *ChunkPass) Variant() pipeline.Variant { return p.variant }

// Draws returns the number of draws recorded.
func (p *ChunkPass) Draws() int { return p.draws }

// SetMaterial binds the texture array used by subsequent draws.
func (p *ChunkPass) SetMaterial(m *Material) error {
	if err := p.r.bindMaterial(p.rp, m); err != nil {
		return err
	}
	p.material = m
	return nil
}

// DrawChunk draws m offset by origin. The textured variant draws the
// triangles; the flat variant draws the quad edges. Empty meshes are
// skipped without using a draw slot.
func (p *ChunkPass) DrawChunk(m *ChunkMesh, origin pipeline.ChunkOrigin) error {
	if p.material == nil {
		return ErrNoMaterial
	}
	if m == nil || m.Empty() {
		return nil
	}
	indices, count := m.indices, m.IndexCount
	if p.variant.IsBlack() {
		indices, count = m.lines, m.LineCount
		if indices == nil {
			return nil
		}
	}
	if err := p.r.writeDraw(p.rp, p.frame, origin); err != nil {
		return err
	}
	p.rp.SetVertexBuffer(0, m.vertices, 0)
	p.rp.SetIndexBuffer(indices, gputypes.IndexFormatUint32, 0)
	p.rp.DrawIndexed(count, 1, 0, 0, 0)
	p.draws++
	return nil
}

// OverlayPass records screen-space draws tinted per draw.
type OverlayPass struct {
	r     *Renderer
	rp    hal.RenderPassEncoder
	frame uint64
	draws int
}

// Draws returns the number of draws recorded.
func (p *OverlayPass) Draws() int { return p.draws }

// Draw draws m multiplied by tint. Use pipeline.TintNone for the plain texture.
func (p *OverlayPass) Draw(m *OverlayMesh, tint pipeline.Tint) error {
	if m == nil || m.VertexCount == 0 {
		return nil
	}
	if err := p.r.writeDraw(p.rp, p.frame, tint); err != nil {
		return err
	}
	p.rp.SetVertexBuffer(0, m.buf, 0)
	p.rp.Draw(m.VertexCount, 1, 0, 0)
	p.draws++
	return nil
}
