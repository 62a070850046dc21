// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// ErrInvalidTargetSize is returned for a zero-sized render target.
var ErrInvalidTargetSize = errors.New("gpu: invalid target size")

// Target is an offscreen render target: a color attachment (multisampled
// when the renderer is), its resolve texture and a depth/stencil attachment.
type Target struct {
	Width, Height uint32

	device      hal.Device
	msaaTex     hal.Texture
	msaaView    hal.TextureView
	resolveTex  hal.Texture
	resolveView hal.TextureView
	depthTex    hal.Texture
	depthView   hal.TextureView
}

func newTarget(device hal.Device, cfg Config, width, height uint32) (*Target, error) {
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidTargetSize, width, height)
	}
	t := &Target{Width: width, Height: height, device: device}
	size := hal.Extent3D{Width: width, Height: height, DepthOrArrayLayers: 1}
	var err error

	t.resolveTex, t.resolveView, err = createAttachment(device, "voxel_target_color", size, 1,
		cfg.ColorFormat, gputypes.TextureUsageRenderAttachment|gputypes.TextureUsageCopySrc)
	if err != nil {
		return nil, err
	}
	if cfg.SampleCount > 1 {
		t.msaaTex, t.msaaView, err = createAttachment(device, "voxel_target_msaa", size, cfg.SampleCount,
			cfg.ColorFormat, gputypes.TextureUsageRenderAttachment)
		if err != nil {
			t.Destroy()
			return nil, err
		}
	}
	t.depthTex, t.depthView, err = createAttachment(device, "voxel_target_depth", size, cfg.SampleCount,
		cfg.DepthFormat, gputypes.TextureUsageRenderAttachment)
	if err != nil {
		t.Destroy()
		return nil, err
	}
	return t, nil
}

func createAttachment(device hal.Device, label string, size hal.Extent3D, samples uint32,
	format gputypes.TextureFormat, usage gputypes.TextureUsage,
) (hal.Texture, hal.TextureView, error) {
	tex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         label,
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   samples,
		Dimension:     gputypes.TextureDimension2D,
		Format:        format,
		Usage:         usage,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("create %s: %w", label, err)
	}
	view, err := device.CreateTextureView(tex, &hal.TextureViewDescriptor{Label: label + "_view"})
	if err != nil {
		device.DestroyTexture(tex)
		return nil, nil, fmt.Errorf("create %s view: %w", label, err)
	}
	return tex, view, nil
}

// Texture returns the single-sampled color texture holding the final image.
func (t *Target) Texture() hal.Texture { return t.resolveTex }

// PassDescriptor returns a render pass that clears color to clear and depth
// to 1. With multisampling the color attachment resolves into Texture.
func (t *Target) PassDescriptor(clear gputypes.Color) *hal.RenderPassDescriptor {
	color := hal.RenderPassColorAttachment{
		View:       t.resolveView,
		LoadOp:     gputypes.LoadOpClear,
		StoreOp:    gputypes.StoreOpStore,
		ClearValue: clear,
	}
	if t.msaaView != nil {
		color.View = t.msaaView
		color.ResolveTarget = t.resolveView
	}
	return &hal.RenderPassDescriptor{
		Label:            "voxel_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{color},
		DepthStencilAttachment: &hal.RenderPassDepthStencilAttachment{
			View:              t.depthView,
			DepthLoadOp:       gputypes.LoadOpClear,
			DepthStoreOp:      gputypes.StoreOpDiscard,
			DepthClearValue:   1.0,
			StencilLoadOp:     gputypes.LoadOpClear,
			StencilStoreOp:    gputypes.StoreOpDiscard,
			StencilClearValue: 0,
		},
	}
}

// Destroy releases the target's textures. It is safe to call more than once.
func (t *Target) Destroy() {
	pairs := []struct {
		tex  *hal.Texture
		view *hal.TextureView
	}{
		{&t.depthTex, &t.depthView},
		{&t.msaaTex, &t.msaaView},
		{&t.resolveTex, &t.resolveView},
	}
	for _, p := range pairs {
		if *p.view != nil {
			t.device.DestroyTextureView(*p.view)
			*p.view = nil
		}
		if *p.tex != nil {
			t.device.DestroyTexture(*p.tex)
			*p.tex = nil
		}
	}
}
