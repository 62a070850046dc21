// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package voxel

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// MaxPitch keeps the camera just short of looking straight up or down,
// where the look-at basis degenerates.
const MaxPitch = math.Pi/2 - 0.01

// depthCorrection maps OpenGL clip depth [-1, 1] to WebGPU's [0, 1].
var depthCorrection = mgl32.Mat4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 0.5, 0,
	0, 0, 0.5, 1,
}

// Camera is a yaw/pitch perspective camera. Angles are in radians, FovY in
// degrees.
type Camera struct {
	Position   mgl32.Vec3
	Yaw, Pitch float32
	FovY       float32
	Near, Far  float32
}

// NewCamera returns the camera of DefaultConfig.
func NewCamera() *Camera {
	cfg := DefaultConfig()
	return cfg.NewCamera()
}

// Direction returns the unit view direction.
func (c *Camera) Direction() mgl32.Vec3 {
	yaw, pitch := float64(c.Yaw), float64(c.Pitch)
	return mgl32.Vec3{
		float32(math.Cos(yaw) * math.Cos(pitch)),
		float32(math.Sin(pitch)),
		float32(math.Sin(yaw) * math.Cos(pitch)),
	}
}

// Rotate turns the camera, clamping pitch to ±MaxPitch.
func (c *Camera) Rotate(dyaw, dpitch float32) {
	c.Yaw += dyaw
	c.Pitch = mgl32.Clamp(c.Pitch+dpitch, -MaxPitch, MaxPitch)
}

// View returns the right-handed view matrix with Y up.
func (c *Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.Direction()), mgl32.Vec3{0, 1, 0})
}

// Projection returns the perspective projection with depth in [0, 1].
func (c *Camera) Projection(aspect float32) mgl32.Mat4 {
	return depthCorrection.Mul4(mgl32.Perspective(mgl32.DegToRad(c.FovY), aspect, c.Near, c.Far))
}

// ViewProjection returns Projection(aspect) * View().
func (c *Camera) ViewProjection(aspect float32) mgl32.Mat4 {
	return c.Projection(aspect).Mul4(c.View())
}
