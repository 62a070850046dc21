// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package voxel

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestCameraDirection(t *testing.T) {
	tests := []struct {
		yaw, pitch float32
		want       mgl32.Vec3
	}{
		{0, 0, mgl32.Vec3{1, 0, 0}},
		{math.Pi / 2, 0, mgl32.Vec3{0, 0, 1}},
		{math.Pi, 0, mgl32.Vec3{-1, 0, 0}},
		{0, math.Pi / 2, mgl32.Vec3{0, 1, 0}},
	}
	for _, tt := range tests {
		c := &Camera{Yaw: tt.yaw, Pitch: tt.pitch}
		if got := c.Direction(); !vecNear(got, tt.want) {
			t.Errorf("Direction(yaw=%v, pitch=%v) = %v, want %v", tt.yaw, tt.pitch, got, tt.want)
		}
	}
}

// vecNear reports whether a and b lie within an absolute distance of 1e-6.
func vecNear(a, b mgl32.Vec3) bool {
	return a.Sub(b).Len() < 1e-6
}

func TestCameraRotateClampsPitch(t *testing.T) {
	c := NewCamera()
	c.Rotate(0.5, 10)
	if c.Pitch != MaxPitch {
		t.Errorf("Pitch = %v, want %v", c.Pitch, float32(MaxPitch))
	}
	c.Rotate(0, -20)
	if c.Pitch != -MaxPitch {
		t.Errorf("Pitch = %v, want %v", c.Pitch, float32(-MaxPitch))
	}
}

func TestCameraProjectionDepthRange(t *testing.T) {
	c := &Camera{FovY: 60, Near: 0.5, Far: 100}
	proj := c.Projection(1)

	depth := func(z float32) float32 {
		clip := proj.Mul4x1(mgl32.Vec4{0, 0, -z, 1})
		return clip.Z() / clip.W()
	}
	if d := depth(0.5); math.Abs(float64(d)) > 1e-5 {
		t.Errorf("near plane depth = %v, want 0", d)
	}
	if d := depth(100); math.Abs(float64(d-1)) > 1e-4 {
		t.Errorf("far plane depth = %v, want 1", d)
	}
	if d := depth(10); d <= 0 || d >= 1 {
		t.Errorf("mid depth = %v, want in (0, 1)", d)
	}
}

func TestCameraViewProjectionCentersTarget(t *testing.T) {
	c := NewCamera()
	c.Position = mgl32.Vec3{0, 0, 0}
	c.Yaw, c.Pitch = math.Pi/2, 0

	clip := c.ViewProjection(1).Mul4x1(mgl32.Vec4{0, 0, 10, 1})
	ndc := clip.Vec3().Mul(1 / clip.W())
	if math.Abs(float64(ndc.X())) > 1e-5 || math.Abs(float64(ndc.Y())) > 1e-5 {
		t.Errorf("point ahead projects to %v, want screen center", ndc)
	}
	if ndc.Z() <= 0 || ndc.Z() >= 1 {
		t.Errorf("depth = %v, want in (0, 1)", ndc.Z())
	}
}
