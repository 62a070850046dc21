// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// OverlayStride is the size of an OverlayVertex in a vertex buffer.
const OverlayStride = 20

// OverlayVertex is a screen-space vertex sampled from a material layer.
// Position is in normalized device coordinates.
type OverlayVertex struct {
	Position [2]float32
	UV       [2]float32
	Layer    uint32
}

// OverlayQuad returns two triangles covering the rectangle (x0, y0)-(x1, y1)
// with the full texture of layer.
func OverlayQuad(x0, y0, x1, y1 float32, layer uint32) []OverlayVertex {
	tl := OverlayVertex{Position: [2]float32{x0, y1}, UV: [2]float32{0, 0}, Layer: layer}
	tr := OverlayVertex{Position: [2]float32{x1, y1}, UV: [2]float32{1, 0}, Layer: layer}
	br := OverlayVertex{Position: [2]float32{x1, y0}, UV: [2]float32{1, 1}, Layer: layer}
	bl := OverlayVertex{Position: [2]float32{x0, y0}, UV: [2]float32{0, 1}, Layer: layer}
	return []OverlayVertex{tl, bl, br, br, tr, tl}
}

func overlayBytes(verts []OverlayVertex) []byte {
	out := make([]byte, 0, len(verts)*OverlayStride)
	for _, v := range verts {
		out = binary.LittleEndian.AppendUint32(out, math.Float32bits(v.Position[0]))
		out = binary.LittleEndian.AppendUint32(out, math.Float32bits(v.Position[1]))
		out = binary.LittleEndian.AppendUint32(out, math.Float32bits(v.UV[0]))
		out = binary.LittleEndian.AppendUint32(out, math.Float32bits(v.UV[1]))
		out = binary.LittleEndian.AppendUint32(out, v.Layer)
	}
	return out
}

// OverlayMesh is a vertex buffer of overlay triangles.
type OverlayMesh struct {
	VertexCount uint32

	device hal.Device
	buf    hal.Buffer
}

func uploadOverlay(device hal.Device, queue hal.Queue, verts []OverlayVertex, label string) (*OverlayMesh, error) {
	m := &OverlayMesh{VertexCount: uint32(len(verts)), device: device} //nolint:gosec // overlay vertex count fits uint32
	if len(verts) == 0 {
		return m, nil
	}
	buf, err := createAndUpload(device, queue, label, overlayBytes(verts),
		gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
	if err != nil {
		return nil, err
	}
	m.buf = buf
	return m, nil
}

// Destroy releases the vertex buffer and leaves the mesh empty. It is safe
// to call more than once.
func (m *OverlayMesh) Destroy() {
	if m.buf != nil {
		m.device.DestroyBuffer(m.buf)
		m.buf = nil
	}
	m.VertexCount = 0
}
