// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package vertex

import "golang.org/x/exp/constraints"

// AOCode is a 2-bit ambient occlusion code. Higher codes are brighter.
type AOCode uint8

// Weight values. Codes 0..2 share the occluded weight.
const (
	OccludedWeight   float32 = 0.75
	UnoccludedWeight float32 = 1.0
)

// aoWeights maps a code to its shading weight.
var aoWeights = [4]float32{OccludedWeight, OccludedWeight, OccludedWeight, UnoccludedWeight}

// Weight returns the shading weight of c.
func (c AOCode) Weight() float32 {
	return aoWeights[c&AOMask]
}

// aoSlot maps a corner index to the AO slot the blend reads at that
// corner's UV. Corners 2 and 3 are crossed because the blend pairs
// (x,y) along v=1 and (z,w) along v=0.
var aoSlot = [4]int{0, 1, 3, 2}

// AOSlot returns the slot of word1's AO field that shades the given corner.
// A mesher stores the code for corner c at AOSlot(c).
func AOSlot(corner uint8) int {
	return aoSlot[corner&CornerMask]
}

// Lerp interpolates linearly between a and b.
func Lerp[T constraints.Float](a, b, t T) T {
	return a + (b-a)*t
}

// Blend computes the bilinear AO factor for weights w at (u, v):
//
//	lerp(lerp(w2, w3, u), lerp(w0, w1, u), v)
func Blend(w [4]float32, u, v float32) float32 {
	ao0 := Lerp(w[0], w[1], u)
	ao1 := Lerp(w[2], w[3], u)
	return Lerp(ao1, ao0, v)
}

// Shade returns the AO factor at the given UV for a decoded vertex.
func (d Decoded) Shade(u, v float32) float32 {
	return Blend(d.Weights(), u, v)
}
