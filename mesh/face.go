// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package mesh

// Face is one of the six axis-aligned faces of a block.
type Face uint8

// Faces in table order.
const (
	FacePX Face = iota // +X, right
	FaceNX             // -X, left
	FacePY             // +Y, top
	FaceNY             // -Y, bottom
	FacePZ             // +Z, front
	FaceNZ             // -Z, back
)

// FaceCount is the number of faces of a block.
const FaceCount = 6

var faceNames = [FaceCount]string{"+X", "-X", "+Y", "-Y", "+Z", "-Z"}

// String returns the signed axis name.
func (f Face) String() string {
	if f >= FaceCount {
		return "Unknown"
	}
	return faceNames[f]
}

var faceNormals = [FaceCount][3]int{
	{1, 0, 0},
	{-1, 0, 0},
	{0, 1, 0},
	{0, -1, 0},
	{0, 0, 1},
	{0, 0, -1},
}

// Normal returns the outward unit normal of f.
func (f Face) Normal() [3]int { return faceNormals[f] }

// Axis returns the index of the axis f is perpendicular to.
func (f Face) Axis() int { return int(f) / 2 }

// Opposite returns the face pointing the other way.
func (f Face) Opposite() Face { return f ^ 1 }

// cubeCorners are the corners of a unit block centered on its position, in
// doubled (half-block) units.
var cubeCorners = [8][3]int32{
	{1, 1, 1},
	{1, 1, -1},
	{-1, 1, -1},
	{-1, 1, 1},
	{1, -1, 1},
	{1, -1, -1},
	{-1, -1, -1},
	{-1, -1, 1},
}

// faceCorners lists each face's cube corners in vertex order. The position
// in the list is the vertex's corner index and therefore its UV.
var faceCorners = [FaceCount][4]int{
	FacePX: {5, 4, 0, 1},
	FaceNX: {7, 6, 2, 3},
	FacePY: {3, 2, 1, 0},
	FaceNY: {4, 5, 6, 7},
	FacePZ: {4, 7, 3, 0},
	FaceNZ: {6, 5, 1, 2},
}

// Per-face index patterns, relative to the face's first vertex.
var (
	quadIndices = [6]uint32{0, 1, 2, 2, 3, 0}
	edgeIndices = [8]uint32{0, 1, 1, 2, 2, 3, 3, 0}
)
