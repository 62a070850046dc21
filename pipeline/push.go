// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package pipeline

import (
	"encoding/binary"
	"math"
)

// PushShape identifies the per-draw data a pipeline consumes.
type PushShape uint8

const (
	// PushNone is the zero value and is never valid for a pipeline.
	PushNone PushShape = iota

	// PushTint is a 4-float multiply color, for overlay draws.
	PushTint

	// PushChunkOrigin is a 3-int world offset, for chunk draws.
	PushChunkOrigin

	// PushPosition is a 3-float world position, for the block outline.
	PushPosition
)

// PushDataSize is the uniform size of every push shape. ChunkOrigin and
// Position are padded from 12 to 16 bytes to match vec4 alignment.
const PushDataSize = 16

// String returns the shape name.
func (s PushShape) String() string {
	switch s {
	case PushNone:
		return "None"
	case PushTint:
		return "Tint"
	case PushChunkOrigin:
		return "ChunkOrigin"
	case PushPosition:
		return "Position"
	default:
		return "Unknown"
	}
}

// Size returns the meaningful byte size of the shape.
func (s PushShape) Size() int {
	switch s {
	case PushTint:
		return 16
	case PushChunkOrigin, PushPosition:
		return 12
	default:
		return 0
	}
}

// PushData is implemented by the push shapes.
type PushData interface {
	Shape() PushShape
	AppendBytes(dst []byte) []byte
}

// Tint multiplies a draw's output color.
type Tint [4]float32

// Common tints.
var (
	TintNone  = Tint{1, 1, 1, 1}
	TintBlack = Tint{0, 0, 0, 1}
)

// Shape implements PushData.
func (Tint) Shape() PushShape { return PushTint }

// AppendBytes implements PushData.
func (t Tint) AppendBytes(dst []byte) []byte {
	for _, c := range t {
		dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(c))
	}
	return dst
}

// ChunkOrigin is the world-space offset of a chunk, in blocks.
type ChunkOrigin [3]int32

// Shape implements PushData.
func (ChunkOrigin) Shape() PushShape { return PushChunkOrigin }

// AppendBytes implements PushData. The fourth word is padding.
func (o ChunkOrigin) AppendBytes(dst []byte) []byte {
	for _, c := range o {
		dst = binary.LittleEndian.AppendUint32(dst, uint32(c))
	}
	return binary.LittleEndian.AppendUint32(dst, 0)
}

// Position is a world-space position, in blocks.
type Position [3]float32

// Shape implements PushData.
func (Position) Shape() PushShape { return PushPosition }

// AppendBytes implements PushData. The fourth word is padding.
func (p Position) AppendBytes(dst []byte) []byte {
	for _, c := range p {
		dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(c))
	}
	return binary.LittleEndian.AppendUint32(dst, 0)
}

// PushBytes encodes d into a PushDataSize buffer.
func PushBytes(d PushData) []byte {
	return d.AppendBytes(make([]byte, 0, PushDataSize))
}
