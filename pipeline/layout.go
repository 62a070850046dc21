// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package pipeline

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Bind group indices.
const (
	GroupWorld    = 0
	GroupMaterial = 1
	GroupDraw     = 2
)

// Bindings within the world group.
const (
	BindingCamera   = 0
	BindingLighting = 1
)

// Bindings within the material group.
const (
	BindingTextures = 0
	BindingSampler  = 1
)

// BindingPushData is the only binding of the draw group.
const BindingPushData = 0

// Uniform sizes in bytes.
const (
	CameraUniformSize   = 64
	LightingUniformSize = 16
)

// DefaultUniformAlignment is the WebGPU default for
// minUniformBufferOffsetAlignment.
const DefaultUniformAlignment = 256

// ErrInvalidLightDirection is returned for a zero-length or non-finite sun direction.
var ErrInvalidLightDirection = errors.New("pipeline: invalid light direction")

// ErrInvalidAlignment is returned for an alignment that is not a power of two.
var ErrInvalidAlignment = errors.New("pipeline: uniform alignment must be a power of two")

// DefaultSunDirection is the unnormalized default sun direction.
var DefaultSunDirection = mgl32.Vec3{4, -5, 5}

// AlignUp rounds n up to a multiple of align, which must be a power of two.
func AlignUp(n, align uint64) uint64 {
	return (n + align - 1) &^ (align - 1)
}

// FrameUniforms is the per-frame state read by every world draw. It is
// immutable once committed for a frame.
type FrameUniforms struct {
	Camera mgl32.Mat4
	Sun    mgl32.Vec3
}

// DefaultFrameUniforms returns identity camera and the default sun.
func DefaultFrameUniforms() FrameUniforms {
	return FrameUniforms{Camera: mgl32.Ident4(), Sun: DefaultSunDirection.Normalize()}
}

// NormalizeSun validates and normalizes a sun direction.
func NormalizeSun(dir mgl32.Vec3) (mgl32.Vec3, error) {
	for _, c := range dir {
		if math.IsNaN(float64(c)) || math.IsInf(float64(c), 0) {
			return mgl32.Vec3{}, fmt.Errorf("%w: %v", ErrInvalidLightDirection, dir)
		}
	}
	if dir.Len() == 0 {
		return mgl32.Vec3{}, fmt.Errorf("%w: zero length", ErrInvalidLightDirection)
	}
	return dir.Normalize(), nil
}

// SunFromVec4 takes the direction from the xyz of v. The w component is
// ignored whatever its value.
func SunFromVec4(v mgl32.Vec4) (mgl32.Vec3, error) {
	return NormalizeSun(v.Vec3())
}

// Lighting returns the lighting uniform: normalized xyz and w = 0.
func (f FrameUniforms) Lighting() mgl32.Vec4 {
	return f.Sun.Vec4(0)
}

// WorldLayout places the camera and lighting uniforms in one buffer, each
// part at an offset aligned for dynamic binding.
type WorldLayout struct {
	Alignment uint64
}

// NewWorldLayout returns a layout for the given alignment.
func NewWorldLayout(alignment uint64) (WorldLayout, error) {
	if alignment == 0 || alignment&(alignment-1) != 0 {
		return WorldLayout{}, fmt.Errorf("%w: %d", ErrInvalidAlignment, alignment)
	}
	return WorldLayout{Alignment: alignment}, nil
}

// CameraOffset returns the byte offset of the camera uniform.
func (l WorldLayout) CameraOffset() uint64 { return 0 }

// LightingOffset returns the byte offset of the lighting uniform.
func (l WorldLayout) LightingOffset() uint64 {
	return AlignUp(CameraUniformSize, l.Alignment)
}

// Size returns the total buffer size.
func (l WorldLayout) Size() uint64 {
	return l.LightingOffset() + LightingUniformSize
}

// Encode serializes f into a buffer of l.Size() bytes.
func (l WorldLayout) Encode(f FrameUniforms) []byte {
	buf := make([]byte, l.Size())
	putFloats(buf[l.CameraOffset():], f.Camera[:])
	lighting := f.Lighting()
	putFloats(buf[l.LightingOffset():], lighting[:])
	return buf
}

func putFloats(dst []byte, src []float32) {
	for i, v := range src {
		binary.LittleEndian.PutUint32(dst[i*4:], math.Float32bits(v))
	}
}
