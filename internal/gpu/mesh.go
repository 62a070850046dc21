// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"encoding/binary"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/voxel/mesh"
	"github.com/gogpu/voxel/vertex"
)

// ChunkMesh is a chunk's geometry on the GPU: packed vertices, triangle
// indices for the textured variant and line indices for the flat one.
// The caller owns it and must call Destroy.
type ChunkMesh struct {
	VertexCount uint32
	IndexCount  uint32
	LineCount   uint32

	device   hal.Device
	vertices hal.Buffer
	indices  hal.Buffer
	lines    hal.Buffer
}

func uploadMesh(device hal.Device, queue hal.Queue, m *mesh.Mesh, label string) (*ChunkMesh, error) {
	cm := &ChunkMesh{
		VertexCount: uint32(len(m.Vertices)),    //nolint:gosec // chunk vertex count fits uint32
		IndexCount:  uint32(len(m.Indices)),     //nolint:gosec // chunk index count fits uint32
		LineCount:   uint32(len(m.LineIndices)), //nolint:gosec // chunk index count fits uint32
		device:      device,
	}
	if m.Empty() {
		return cm, nil
	}
	var err error
	if cm.vertices, err = createAndUpload(device, queue, label+"_vertices",
		vertex.Bytes(m.Vertices), gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst); err != nil {
		return nil, err
	}
	if cm.indices, err = createAndUpload(device, queue, label+"_indices",
		indexBytes(m.Indices), gputypes.BufferUsageIndex|gputypes.BufferUsageCopyDst); err != nil {
		cm.Destroy()
		return nil, err
	}
	if len(m.LineIndices) > 0 {
		if cm.lines, err = createAndUpload(device, queue, label+"_lines",
			indexBytes(m.LineIndices), gputypes.BufferUsageIndex|gputypes.BufferUsageCopyDst); err != nil {
			cm.Destroy()
			return nil, err
		}
	}
	slogger().Debug("chunk mesh uploaded", "label", label,
		"vertices", cm.VertexCount, "indices", cm.IndexCount, "lines", cm.LineCount)
	return cm, nil
}

// Empty reports whether the mesh has nothing to draw.
func (m *ChunkMesh) Empty() bool { return m.IndexCount == 0 }

// Destroy releases the mesh buffers and leaves the mesh empty. It is safe
// to call more than once.
func (m *ChunkMesh) Destroy() {
	for _, b := range []*hal.Buffer{&m.lines, &m.indices, &m.vertices} {
		if *b != nil {
			m.device.DestroyBuffer(*b)
			*b = nil
		}
	}
	m.VertexCount, m.IndexCount, m.LineCount = 0, 0, 0
}

// createAndUpload creates a GPU buffer and uploads data.
func createAndUpload(device hal.Device, queue hal.Queue, label string, data []byte, usage gputypes.BufferUsage) (hal.Buffer, error) {
	buf, err := device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  uint64(len(data)),
		Usage: usage,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", label, err)
	}
	if err := queue.WriteBuffer(buf, 0, data); err != nil {
		device.DestroyBuffer(buf)
		return nil, fmt.Errorf("write %s: %w", label, err)
	}
	return buf, nil
}

func indexBytes(indices []uint32) []byte {
	out := make([]byte, 0, len(indices)*4)
	for _, i := range indices {
		out = binary.LittleEndian.AppendUint32(out, i)
	}
	return out
}
