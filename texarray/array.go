// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package texarray

import (
	"errors"
	"fmt"
	"image"

	"golang.org/x/image/draw"

	"github.com/gogpu/voxel/pipeline"
)

// BytesPerPixel is the size of an RGBA8 texel.
const BytesPerPixel = 4

// ErrEmptyArray is returned when an array would have no layers.
var ErrEmptyArray = errors.New("texarray: no layers")

// Array is the CPU side of a 2D texture array: equally sized RGBA8 layers.
type Array struct {
	Width, Height uint32
	Layers        [][]byte
}

// FromImages converts images to array layers. The first image sets the
// layer size; others are scaled to it with nearest-neighbor sampling.
func FromImages(imgs []image.Image) (*Array, error) {
	if len(imgs) == 0 {
		return nil, ErrEmptyArray
	}
	size := imgs[0].Bounds().Size()
	if size.X <= 0 || size.Y <= 0 {
		return nil, fmt.Errorf("texarray: first image is empty")
	}
	a := &Array{Width: uint32(size.X), Height: uint32(size.Y), Layers: make([][]byte, len(imgs))}
	for i, img := range imgs {
		a.Layers[i] = toRGBA(img, size).Pix
	}
	return a, nil
}

func toRGBA(img image.Image, size image.Point) *image.RGBA {
	dst := image.NewRGBA(image.Rectangle{Max: size})
	b := img.Bounds()
	if b.Size() == size {
		draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
		return dst
	}
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// LayerCount returns the number of layers.
func (a *Array) LayerCount() uint32 { return uint32(len(a.Layers)) }

// LayerSize returns the byte size of one layer.
func (a *Array) LayerSize() int { return int(a.Width*a.Height) * BytesPerPixel }

// BytesPerRow returns the row pitch of a layer.
func (a *Array) BytesPerRow() uint32 { return a.Width * BytesPerPixel }

// Bytes returns all layers back to back, the layout expected by a single
// texture upload covering every layer.
func (a *Array) Bytes() []byte {
	out := make([]byte, 0, a.LayerSize()*len(a.Layers))
	for _, l := range a.Layers {
		out = append(out, l...)
	}
	return out
}

// Texel returns the RGBA8 value at (x, y) of layer, clamped to the edges.
func (a *Array) Texel(layer uint32, x, y int) [4]uint8 {
	if len(a.Layers) == 0 {
		return [4]uint8{}
	}
	layer = min(layer, a.LayerCount()-1)
	x = max(0, min(x, int(a.Width)-1))
	y = max(0, min(y, int(a.Height)-1))
	off := (y*int(a.Width) + x) * BytesPerPixel
	p := a.Layers[layer][off : off+4]
	return [4]uint8{p[0], p[1], p[2], p[3]}
}

// Sample reads the array the way the block sampler does: nearest filtering
// with coordinates clamped to the edge. It implements pipeline.Sampler.
func (a *Array) Sample(uv [2]float32, layer uint32) [4]float32 {
	x := int(uv[0] * float32(a.Width))
	y := int(uv[1] * float32(a.Height))
	t := a.Texel(layer, x, y)
	return [4]float32{
		float32(t[0]) / 255,
		float32(t[1]) / 255,
		float32(t[2]) / 255,
		float32(t[3]) / 255,
	}
}

var _ pipeline.Sampler = (*Array)(nil)
