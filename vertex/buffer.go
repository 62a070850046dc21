// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package vertex

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrTextureIndexOutOfRange is returned when a vertex addresses a layer the
// material does not have.
var ErrTextureIndexOutOfRange = errors.New("vertex: texture index out of range")

// AppendBytes appends the little-endian encoding of verts to dst.
func AppendBytes(dst []byte, verts []Packed) []byte {
	for _, v := range verts {
		dst = binary.LittleEndian.AppendUint32(dst, v.Word0)
		dst = binary.LittleEndian.AppendUint32(dst, v.Word1)
	}
	return dst
}

// Bytes returns verts as a vertex buffer payload.
func Bytes(verts []Packed) []byte {
	return AppendBytes(make([]byte, 0, len(verts)*Stride), verts)
}

// FromBytes parses a vertex buffer payload. Trailing bytes that do not form
// a whole vertex are an error.
func FromBytes(b []byte) ([]Packed, error) {
	if len(b)%Stride != 0 {
		return nil, fmt.Errorf("vertex: buffer length %d is not a multiple of %d", len(b), Stride)
	}
	out := make([]Packed, len(b)/Stride)
	for i := range out {
		off := i * Stride
		out[i] = Packed{
			Word0: binary.LittleEndian.Uint32(b[off:]),
			Word1: binary.LittleEndian.Uint32(b[off+4:]),
		}
	}
	return out, nil
}

// ValidateLayers checks that every vertex addresses a layer below layers.
// It returns the index of the first offending vertex with the error.
func ValidateLayers(verts []Packed, layers uint32) (int, error) {
	for i, v := range verts {
		if t := v.Texture(); t >= layers {
			return i, fmt.Errorf("%w: vertex %d uses layer %d of %d", ErrTextureIndexOutOfRange, i, t, layers)
		}
	}
	return -1, nil
}
