// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package vertex

import (
	"errors"
	"fmt"
	"math"
)

// Field offsets and widths of the packed layout.
const (
	CoordBits   = 10
	CoordMask   = 1<<CoordBits - 1 // 0x3FF
	CoordSign   = 1 << (CoordBits - 1)
	CoordBias   = 512
	XShift      = 0
	YShift      = 10
	ZShift      = 20
	CornerShift = 30
	CornerMask  = 0x3

	AOBits      = 2
	AOMask      = 0x3
	AOFieldMask = 0xFF
	TexShift    = 8
	TexMask     = 1<<24 - 1
)

// Scale converts a raw coordinate to block units.
const Scale = 0.5

// Coordinate range in raw (half-block) units.
const (
	MinRaw = -512
	MaxRaw = 511
)

// Coordinate range in block units.
const (
	MinCoord float32 = MinRaw * Scale
	MaxCoord float32 = MaxRaw * Scale
)

// MaxTextureIndex is the largest texture index the layout can carry.
const MaxTextureIndex = TexMask

// Stride is the size of a packed vertex in a vertex buffer, in bytes.
const Stride = 8

// Encoder errors.
var (
	// ErrPositionOutOfRange is returned when a coordinate falls outside
	// [MinCoord, MaxCoord].
	ErrPositionOutOfRange = errors.New("vertex: position out of range")

	// ErrPositionNotAligned is returned when a coordinate is not a multiple of 0.5.
	ErrPositionNotAligned = errors.New("vertex: position not on half-block grid")

	// ErrInvalidCorner is returned for a corner index outside 0..3.
	ErrInvalidCorner = errors.New("vertex: corner index out of range")

	// ErrTextureIndexOverflow is returned when a texture index needs more than 24 bits.
	ErrTextureIndexOverflow = errors.New("vertex: texture index overflow")

	// ErrInvalidAOCode is returned for an AO code outside 0..3.
	ErrInvalidAOCode = errors.New("vertex: ambient occlusion code out of range")
)

// Packed is the wire form of one vertex.
type Packed struct {
	Word0 uint32
	Word1 uint32
}

// Vertex is the decoded form of one vertex.
type Vertex struct {
	Position [3]float32
	Corner   uint8
	Texture  uint32
	AO       [4]AOCode
}

// Decoded is what the vertex stage derives from a packed vertex.
type Decoded struct {
	Position [3]float32
	UV       [2]float32
	Texture  uint32
	AO       [4]AOCode
}

// Weights returns the AO weight of each slot.
func (d Decoded) Weights() [4]float32 {
	return [4]float32{d.AO[0].Weight(), d.AO[1].Weight(), d.AO[2].Weight(), d.AO[3].Weight()}
}

// uvTable holds the canonical quad corners. The order is part of the format.
var uvTable = [4][2]float32{
	{0, 1},
	{1, 1},
	{1, 0},
	{0, 0},
}

// UV returns the texture coordinate of a corner index. Only the low two bits
// of corner are used.
func UV(corner uint8) [2]float32 {
	return uvTable[corner&CornerMask]
}

// SignExtend interprets the low 10 bits of field as a two's-complement value.
// Flipping the sign bit turns the field into a value biased by 512.
func SignExtend(field uint32) int32 {
	return int32((field&CoordMask)^CoordSign) - CoordBias
}

// Decode unpacks a vertex. It never fails.
func Decode(p Packed) Decoded {
	return Decoded{
		Position: [3]float32{
			float32(SignExtend(p.Word0>>XShift)) * Scale,
			float32(SignExtend(p.Word0>>YShift)) * Scale,
			float32(SignExtend(p.Word0>>ZShift)) * Scale,
		},
		UV:      UV(uint8(p.Word0 >> CornerShift)),
		Texture: p.Word1 >> TexShift,
		AO:      DecodeAO(p.Word1),
	}
}

// Corner returns the raw corner index of a packed vertex.
func (p Packed) Corner() uint8 { return uint8(p.Word0 >> CornerShift) }

// Texture returns the texture-array layer of a packed vertex.
func (p Packed) Texture() uint32 { return p.Word1 >> TexShift }

// DecodeAO extracts the four AO codes from word1.
func DecodeAO(word1 uint32) [4]AOCode {
	var codes [4]AOCode
	for i := range codes {
		codes[i] = AOCode(word1 >> (i * AOBits) & AOMask)
	}
	return codes
}

// Pack assembles a vertex from raw fields without validation. Coordinates are
// in half-block units and every field is masked to its width, so overflow in
// one field never reaches another.
func Pack(x, y, z int32, corner uint8, texture uint32, ao [4]AOCode) Packed {
	w0 := uint32(x)&CoordMask<<XShift |
		uint32(y)&CoordMask<<YShift |
		uint32(z)&CoordMask<<ZShift |
		uint32(corner)&CornerMask<<CornerShift
	return Packed{Word0: w0, Word1: PackWord1(texture, ao)}
}

// PackWord1 assembles the texture/AO word.
func PackWord1(texture uint32, ao [4]AOCode) uint32 {
	w1 := (texture & TexMask) << TexShift
	for i, c := range ao {
		w1 |= uint32(c) & AOMask << (i * AOBits)
	}
	return w1
}

// Encode validates v and packs it.
func Encode(v Vertex) (Packed, error) {
	var raw [3]int32
	for i, c := range v.Position {
		r, err := RawCoord(c)
		if err != nil {
			return Packed{}, fmt.Errorf("axis %d: %w", i, err)
		}
		raw[i] = r
	}
	if v.Corner > CornerMask {
		return Packed{}, fmt.Errorf("%w: %d", ErrInvalidCorner, v.Corner)
	}
	if v.Texture > MaxTextureIndex {
		return Packed{}, fmt.Errorf("%w: %d", ErrTextureIndexOverflow, v.Texture)
	}
	for i, c := range v.AO {
		if c > AOMask {
			return Packed{}, fmt.Errorf("corner %d: %w: %d", i, ErrInvalidAOCode, c)
		}
	}
	return Pack(raw[0], raw[1], raw[2], v.Corner, v.Texture, v.AO), nil
}

// MustEncode is like Encode but panics on error.
func MustEncode(v Vertex) Packed {
	p, err := Encode(v)
	if err != nil {
		panic(err)
	}
	return p
}

// RawCoord converts a block-unit coordinate to its raw half-block value.
func RawCoord(c float32) (int32, error) {
	if math.IsNaN(float64(c)) || c < MinCoord || c > MaxCoord {
		return 0, fmt.Errorf("%w: %v", ErrPositionOutOfRange, c)
	}
	doubled := c * 2
	r := int32(doubled)
	if float32(r) != doubled {
		return 0, fmt.Errorf("%w: %v", ErrPositionNotAligned, c)
	}
	return r, nil
}
