// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package mesh

// FaceTextures holds a texture-array layer per face, indexed by Face.
type FaceTextures [FaceCount]uint32

// SameTextures returns textures using one layer on every face.
func SameTextures(layer uint32) FaceTextures {
	return FaceTextures{layer, layer, layer, layer, layer, layer}
}

// TopBottomSides returns textures with distinct top and bottom layers.
func TopBottomSides(top, bottom, sides uint32) FaceTextures {
	t := SameTextures(sides)
	t[FacePY] = top
	t[FaceNY] = bottom
	return t
}

// StaticPalette is a map-backed Palette. Registered blocks are solid.
// Unregistered non-air blocks are solid and use Fallback on every face.
type StaticPalette struct {
	Fallback uint32

	textures map[BlockID]FaceTextures
	clear    map[BlockID]bool
}

// NewStaticPalette returns an empty palette.
func NewStaticPalette() *StaticPalette {
	return &StaticPalette{
		textures: make(map[BlockID]FaceTextures),
		clear:    make(map[BlockID]bool),
	}
}

// Register sets the face textures of id.
func (p *StaticPalette) Register(id BlockID, t FaceTextures) {
	p.textures[id] = t
}

// SetTransparent marks id as not occluding its neighbors.
func (p *StaticPalette) SetTransparent(id BlockID, transparent bool) {
	if transparent {
		p.clear[id] = true
		return
	}
	delete(p.clear, id)
}

// Solid implements Palette.
func (p *StaticPalette) Solid(id BlockID) bool {
	return id != Air && !p.clear[id]
}

// FaceTexture implements Palette.
func (p *StaticPalette) FaceTexture(id BlockID, f Face) uint32 {
	if t, ok := p.textures[id]; ok {
		return t[f]
	}
	return p.Fallback
}
