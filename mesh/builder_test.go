// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package mesh

import (
	"errors"
	"testing"

	"github.com/gogpu/voxel/vertex"
)

const (
	stone BlockID = 1
	grass BlockID = 2
	glass BlockID = 3
)

func testPalette() *StaticPalette {
	p := NewStaticPalette()
	p.Register(stone, SameTextures(0))
	p.Register(grass, TopBottomSides(1, 2, 3))
	p.Register(glass, SameTextures(4))
	p.SetTransparent(glass, true)
	return p
}

func build(t *testing.T, c BlockSource) *Mesh {
	t.Helper()
	m, err := NewBuilder(testPalette(), 8).Build(c)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return m
}

func TestBuildSingleBlock(t *testing.T) {
	var c Chunk
	c.Set(5, 5, 5, stone)
	m := build(t, &c)

	if m.Faces() != 6 {
		t.Fatalf("Faces() = %d, want 6", m.Faces())
	}
	if len(m.Indices) != 36 || len(m.LineIndices) != 48 {
		t.Errorf("indices = %d/%d, want 36/48", len(m.Indices), len(m.LineIndices))
	}
	for i, v := range m.Vertices {
		d := vertex.Decode(v)
		if d.AO != [4]vertex.AOCode{3, 3, 3, 3} {
			t.Errorf("vertex %d AO = %v, want all open", i, d.AO)
		}
		for axis, p := range d.Position {
			if p != 4.5 && p != 5.5 {
				t.Errorf("vertex %d axis %d = %v, want 4.5 or 5.5", i, axis, p)
			}
		}
		if int(v.Corner()) != i%4 {
			t.Errorf("vertex %d corner = %d, want %d", i, v.Corner(), i%4)
		}
	}
	if m.Indices[6] != 4 || m.Indices[11] != 4 {
		t.Errorf("second face indices start at %d, want 4", m.Indices[6])
	}
}

func TestBuildFaceCorners(t *testing.T) {
	var c Chunk
	c.Set(5, 5, 5, stone)
	m := build(t, &c)

	// +Y face is the third face of the block.
	top := m.Vertices[8:12]
	want := [4][3]float32{
		{4.5, 5.5, 5.5},
		{4.5, 5.5, 4.5},
		{5.5, 5.5, 4.5},
		{5.5, 5.5, 5.5},
	}
	for i, v := range top {
		if got := vertex.Decode(v).Position; got != want[i] {
			t.Errorf("top corner %d = %v, want %v", i, got, want[i])
		}
	}
}

func TestBuildCullsSharedFaces(t *testing.T) {
	var c Chunk
	c.Set(5, 5, 5, stone)
	c.Set(6, 5, 5, stone)
	if m := build(t, &c); m.Faces() != 10 {
		t.Errorf("Faces() = %d, want 10", m.Faces())
	}

	// A transparent neighbor does not hide the stone's face, but the glass
	// face toward the stone is culled.
	c.Set(6, 5, 5, glass)
	m := build(t, &c)
	if m.Faces() != 11 {
		t.Errorf("Faces() with glass = %d, want 11", m.Faces())
	}
	var stonePX, glassNX bool
	for f := 0; f < m.Faces(); f++ {
		quad := m.Vertices[f*4 : f*4+4]
		allX := func(x float32) bool {
			for _, v := range quad {
				if vertex.Decode(v).Position[0] != x {
					return false
				}
			}
			return true
		}
		// The shared face lies on x = 5.5.
		if !allX(5.5) {
			continue
		}
		switch quad[0].Texture() {
		case 0:
			stonePX = true
		case 4:
			glassNX = true
		}
	}
	if !stonePX {
		t.Error("stone +X face toward glass not emitted")
	}
	if glassNX {
		t.Error("glass -X face toward stone emitted")
	}
}

func TestBuildSkipsUnloadedNeighbors(t *testing.T) {
	var c Chunk
	c.Set(0, 5, 5, stone)
	if m := build(t, &c); m.Faces() != 5 {
		t.Errorf("isolated chunk Faces() = %d, want 5", m.Faces())
	}

	n := &Neighborhood{Center: &c}
	if m := build(t, n); m.Faces() != 5 {
		t.Errorf("nil neighbor Faces() = %d, want 5", m.Faces())
	}

	n.Neighbors[FaceNX] = &Chunk{}
	if m := build(t, n); m.Faces() != 6 {
		t.Errorf("empty neighbor Faces() = %d, want 6", m.Faces())
	}

	solid := &Chunk{}
	solid.Fill(stone)
	n.Neighbors[FaceNX] = solid
	if m := build(t, n); m.Faces() != 5 {
		t.Errorf("solid neighbor Faces() = %d, want 5", m.Faces())
	}
}

func TestBuildTextures(t *testing.T) {
	var c Chunk
	c.Set(5, 5, 5, grass)
	m := build(t, &c)

	want := [FaceCount]uint32{3, 3, 1, 2, 3, 3}
	for f := Face(0); f < FaceCount; f++ {
		if got := m.Vertices[int(f)*4].Texture(); got != want[f] {
			t.Errorf("face %s texture = %d, want %d", f, got, want[f])
		}
	}
}

func TestBuildTextureOutOfRange(t *testing.T) {
	p := testPalette()
	p.Register(stone, SameTextures(8))
	var c Chunk
	c.Set(5, 5, 5, stone)
	if _, err := NewBuilder(p, 8).Build(&c); !errors.Is(err, vertex.ErrTextureIndexOutOfRange) {
		t.Errorf("Build() error = %v, want ErrTextureIndexOutOfRange", err)
	}
}

func TestBuildAmbientOcclusion(t *testing.T) {
	var c Chunk
	c.Set(5, 5, 5, stone)
	c.Set(6, 6, 5, stone) // above and to the +X side of the top face
	m := build(t, &c)

	top := m.Vertices[8:12]
	ao := vertex.Decode(top[0]).AO
	for _, v := range top[1:] {
		if vertex.Decode(v).AO != ao {
			t.Fatal("vertices of one face carry different AO fields")
		}
	}

	// Corners 2 and 3 sit on the +X edge and are occluded.
	wantCode := [4]vertex.AOCode{3, 3, 2, 2}
	for corner := uint8(0); corner < 4; corner++ {
		if got := ao[vertex.AOSlot(corner)]; got != wantCode[corner] {
			t.Errorf("corner %d code = %d, want %d", corner, got, wantCode[corner])
		}
	}

	// The blend at each corner's own UV reproduces that corner's weight.
	d := vertex.Decode(top[0])
	for corner := uint8(0); corner < 4; corner++ {
		uv := vertex.UV(corner)
		if got, want := d.Shade(uv[0], uv[1]), wantCode[corner].Weight(); got != want {
			t.Errorf("corner %d shade = %v, want %v", corner, got, want)
		}
	}
}

func TestOcclusionCode(t *testing.T) {
	tests := []struct {
		side1, side2, corner bool
		want                 vertex.AOCode
	}{
		{false, false, false, 3},
		{true, false, false, 2},
		{false, true, false, 2},
		{false, false, true, 2},
		{true, false, true, 1},
		{false, true, true, 1},
		{true, true, false, 0},
		{true, true, true, 0},
	}
	for _, tt := range tests {
		if got := OcclusionCode(tt.side1, tt.side2, tt.corner); got != tt.want {
			t.Errorf("OcclusionCode(%v, %v, %v) = %d, want %d", tt.side1, tt.side2, tt.corner, got, tt.want)
		}
	}
}

func TestBuildEmpty(t *testing.T) {
	m := build(t, &Chunk{})
	if !m.Empty() {
		t.Errorf("empty chunk produced %d faces", m.Faces())
	}
}
