// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package pipeline

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/voxel/vertex"
)

// Sampler reads a texel from a texture array.
type Sampler interface {
	Sample(uv [2]float32, layer uint32) [4]float32
}

// SamplerFunc adapts a function to Sampler.
type SamplerFunc func(uv [2]float32, layer uint32) [4]float32

// Sample implements Sampler.
func (f SamplerFunc) Sample(uv [2]float32, layer uint32) [4]float32 { return f(uv, layer) }

// Varyings are the vertex stage outputs consumed by the fragment stage.
// Layer and AO are flat-interpolated; UV is interpolated across the quad.
type Varyings struct {
	UV    [2]float32
	Layer uint32
	AO    [4]float32
}

type fragmentFunc func(in Varyings, s Sampler) [4]float32

// Reference evaluates the block shader on the CPU for one variant.
type Reference struct {
	frame    FrameUniforms
	variant  Variant
	fragment fragmentFunc
}

// NewReference returns a reference shader for the given frame state and
// variant. The fragment program is chosen here, once.
func NewReference(frame FrameUniforms, variant Variant) (*Reference, error) {
	r := &Reference{frame: frame, variant: variant}
	switch variant {
	case VariantTextured:
		r.fragment = shadeTextured
	case VariantFlat:
		r.fragment = shadeFlat
	default:
		return nil, fmt.Errorf("%w: %d", ErrInvalidVariant, variant)
	}
	return r, nil
}

// Variant returns the variant r was built for.
func (r *Reference) Variant() Variant { return r.variant }

// Vertex runs the vertex stage: it decodes p, offsets it by origin and
// projects it with the frame camera.
func (r *Reference) Vertex(p vertex.Packed, origin ChunkOrigin) (mgl32.Vec4, Varyings) {
	d := vertex.Decode(p)
	world := mgl32.Vec3{
		d.Position[0] + float32(origin[0]),
		d.Position[1] + float32(origin[1]),
		d.Position[2] + float32(origin[2]),
	}
	clip := r.frame.Camera.Mul4x1(world.Vec4(1))
	return clip, Varyings{UV: d.UV, Layer: d.Texture, AO: d.Weights()}
}

// Fragment runs the fragment stage.
func (r *Reference) Fragment(in Varyings, s Sampler) [4]float32 {
	return r.fragment(in, s)
}

func shadeTextured(in Varyings, s Sampler) [4]float32 {
	c := s.Sample(in.UV, in.Layer)
	ao := vertex.Blend(in.AO, in.UV[0], in.UV[1])
	return [4]float32{c[0] * ao, c[1] * ao, c[2] * ao, c[3]}
}

func shadeFlat(Varyings, Sampler) [4]float32 {
	return [4]float32{0, 0, 0, 1}
}

// OverlayFragment evaluates the overlay shader: the sampled texel times tint.
func OverlayFragment(uv [2]float32, layer uint32, tint Tint, s Sampler) [4]float32 {
	c := s.Sample(uv, layer)
	return [4]float32{c[0] * tint[0], c[1] * tint[1], c[2] * tint[2], c[3] * tint[3]}
}
