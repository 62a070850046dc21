// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package mesh

import "github.com/gogpu/voxel/pipeline"

// ChunkSize is the edge length of a chunk, in blocks.
const ChunkSize = 32

// BlockID identifies a block type. Zero is air.
type BlockID uint16

// Air is the empty block.
const Air BlockID = 0

// BlockSource gives the mesher access to a chunk and its immediate
// surroundings. Coordinates are chunk-local and may lie one block outside
// [0, ChunkSize) on any axis. ok is false where no data is loaded.
type BlockSource interface {
	Block(x, y, z int) (id BlockID, ok bool)
}

// Chunk is dense block storage for one chunk.
type Chunk struct {
	blocks [ChunkSize * ChunkSize * ChunkSize]BlockID
}

func inChunk(x, y, z int) bool {
	return x >= 0 && y >= 0 && z >= 0 && x < ChunkSize && y < ChunkSize && z < ChunkSize
}

func chunkOffset(x, y, z int) int {
	return (y*ChunkSize+z)*ChunkSize + x
}

// At returns the block at a local position, or Air outside the chunk.
func (c *Chunk) At(x, y, z int) BlockID {
	if !inChunk(x, y, z) {
		return Air
	}
	return c.blocks[chunkOffset(x, y, z)]
}

// Set stores a block. Positions outside the chunk are ignored.
func (c *Chunk) Set(x, y, z int, id BlockID) {
	if inChunk(x, y, z) {
		c.blocks[chunkOffset(x, y, z)] = id
	}
}

// Fill sets every block of the chunk.
func (c *Chunk) Fill(id BlockID) {
	for i := range c.blocks {
		c.blocks[i] = id
	}
}

// Block implements BlockSource for an isolated chunk: everything outside
// is unloaded.
func (c *Chunk) Block(x, y, z int) (BlockID, bool) {
	if !inChunk(x, y, z) {
		return Air, false
	}
	return c.blocks[chunkOffset(x, y, z)], true
}

// Neighborhood is a chunk with its six face neighbors, indexed by Face. A
// nil neighbor is unloaded.
type Neighborhood struct {
	Center    *Chunk
	Neighbors [FaceCount]*Chunk
}

// Block implements BlockSource. Positions outside the center along a single
// axis read the face neighbor; edge and corner positions are unloaded.
func (n *Neighborhood) Block(x, y, z int) (BlockID, bool) {
	if inChunk(x, y, z) {
		return n.Center.blocks[chunkOffset(x, y, z)], true
	}
	p := [3]int{x, y, z}
	face, outside := Face(0), 0
	for axis, v := range p {
		switch {
		case v < 0:
			face, outside = Face(axis*2+1), outside+1
			p[axis] = v + ChunkSize
		case v >= ChunkSize:
			face, outside = Face(axis*2), outside+1
			p[axis] = v - ChunkSize
		}
	}
	if outside != 1 {
		return Air, false
	}
	nb := n.Neighbors[face]
	if nb == nil {
		return Air, false
	}
	return nb.Block(p[0], p[1], p[2])
}

// ChunkCoord is the position of a chunk in chunk units.
type ChunkCoord [3]int32

// Origin returns the world position of the chunk's first block.
func (c ChunkCoord) Origin() pipeline.ChunkOrigin {
	return pipeline.ChunkOrigin{c[0] * ChunkSize, c[1] * ChunkSize, c[2] * ChunkSize}
}

// Neighbor returns the coordinate of the adjacent chunk across f.
func (c ChunkCoord) Neighbor(f Face) ChunkCoord {
	n := f.Normal()
	return ChunkCoord{c[0] + int32(n[0]), c[1] + int32(n[1]), c[2] + int32(n[2])}
}

// FloorDiv divides rounding toward negative infinity.
func FloorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// FloorMod returns a modulo b with the sign of b.
func FloorMod(a, b int) int {
	m := a % b
	if m != 0 && ((m < 0) != (b < 0)) {
		m += b
	}
	return m
}

// WorldToChunk splits a world block position into its chunk and the local
// position inside that chunk.
func WorldToChunk(x, y, z int) (ChunkCoord, [3]int) {
	c := ChunkCoord{
		int32(FloorDiv(x, ChunkSize)),
		int32(FloorDiv(y, ChunkSize)),
		int32(FloorDiv(z, ChunkSize)),
	}
	return c, [3]int{FloorMod(x, ChunkSize), FloorMod(y, ChunkSize), FloorMod(z, ChunkSize)}
}
