// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package mesh turns chunk block data into packed vertex meshes.
//
// Every visible block face becomes one quad of four packed vertices and six
// indices. A face is visible when the neighboring block is loaded and not
// solid. Each vertex carries the AO codes of all four corners of its quad so
// the fragment stage can blend them bilinearly.
package mesh

import (
	"fmt"

	"github.com/gogpu/voxel/vertex"
)

// Palette describes block types to the mesher.
type Palette interface {
	Solid(id BlockID) bool
	FaceTexture(id BlockID, f Face) uint32
}

// Mesh is the output of a build. The caller owns it.
type Mesh struct {
	Vertices []vertex.Packed

	// Indices form a triangle list, two triangles per face.
	Indices []uint32

	// LineIndices form a line list, the four edges of every face.
	LineIndices []uint32
}

// Empty reports whether the mesh has no faces.
func (m *Mesh) Empty() bool { return len(m.Indices) == 0 }

// Faces returns the number of quads in the mesh.
func (m *Mesh) Faces() int { return len(m.Vertices) / 4 }

// Builder meshes chunks against a palette and a texture array size.
type Builder struct {
	palette Palette
	layers  uint32
}

// NewBuilder returns a builder. layers is the number of texture-array layers
// the mesh will be drawn with; every emitted texture index must be below it.
func NewBuilder(p Palette, layers uint32) *Builder {
	return &Builder{palette: p, layers: layers}
}

// Build meshes the chunk at local coordinates [0, ChunkSize) of src.
func (b *Builder) Build(src BlockSource) (*Mesh, error) {
	m := &Mesh{}
	for y := 0; y < ChunkSize; y++ {
		for z := 0; z < ChunkSize; z++ {
			for x := 0; x < ChunkSize; x++ {
				id, ok := src.Block(x, y, z)
				if !ok || id == Air {
					continue
				}
				for f := Face(0); f < FaceCount; f++ {
					if err := b.emitFace(m, src, id, x, y, z, f); err != nil {
						return nil, err
					}
				}
			}
		}
	}
	return m, nil
}

func (b *Builder) solidAt(src BlockSource, x, y, z int) (solid, loaded bool) {
	id, ok := src.Block(x, y, z)
	if !ok {
		return false, false
	}
	return id != Air && b.palette.Solid(id), true
}

func (b *Builder) emitFace(m *Mesh, src BlockSource, id BlockID, x, y, z int, f Face) error {
	n := f.Normal()
	nx, ny, nz := x+n[0], y+n[1], z+n[2]
	solid, loaded := b.solidAt(src, nx, ny, nz)
	if solid || !loaded {
		return nil
	}

	tex := b.palette.FaceTexture(id, f)
	if tex >= b.layers || tex > vertex.MaxTextureIndex {
		return fmt.Errorf("%w: block %d face %s uses layer %d of %d",
			vertex.ErrTextureIndexOutOfRange, id, f, tex, b.layers)
	}

	var ao [4]vertex.AOCode
	for corner, ci := range faceCorners[f] {
		ao[vertex.AOSlot(uint8(corner))] = b.cornerAO(src, f, [3]int{nx, ny, nz}, cubeCorners[ci])
	}

	start := uint32(len(m.Vertices))
	pos := [3]int32{int32(x) * 2, int32(y) * 2, int32(z) * 2}
	for corner, ci := range faceCorners[f] {
		c := cubeCorners[ci]
		m.Vertices = append(m.Vertices, vertex.Pack(
			pos[0]+c[0], pos[1]+c[1], pos[2]+c[2],
			uint8(corner), tex, ao))
	}
	for _, i := range quadIndices {
		m.Indices = append(m.Indices, start+i)
	}
	for _, i := range edgeIndices {
		m.LineIndices = append(m.LineIndices, start+i)
	}
	return nil
}

// cornerAO samples the layer of blocks in front of a face around one
// corner. front is the block the face looks into; corner is the cube corner
// in half-block units.
func (b *Builder) cornerAO(src BlockSource, f Face, front [3]int, corner [3]int32) vertex.AOCode {
	axis := f.Axis()
	var step [2][3]int
	k := 0
	for a := 0; a < 3; a++ {
		if a == axis {
			continue
		}
		if corner[a] > 0 {
			step[k][a] = 1
		} else {
			step[k][a] = -1
		}
		k++
	}

	at := func(d ...[3]int) bool {
		p := front
		for _, s := range d {
			p[0], p[1], p[2] = p[0]+s[0], p[1]+s[1], p[2]+s[2]
		}
		solid, _ := b.solidAt(src, p[0], p[1], p[2])
		return solid
	}
	side1 := at(step[0])
	side2 := at(step[1])
	diag := at(step[0], step[1])
	return OcclusionCode(side1, side2, diag)
}

// OcclusionCode maps the three occluders around a corner to an AO code.
// Two solid sides fully occlude the corner regardless of the diagonal.
func OcclusionCode(side1, side2, corner bool) vertex.AOCode {
	if side1 && side2 {
		return 0
	}
	level := 0
	for _, s := range [3]bool{side1, side2, corner} {
		if s {
			level++
		}
	}
	return vertex.AOCode(3 - level)
}
