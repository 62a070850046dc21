// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"

	"github.com/gogpu/voxel"
	"github.com/gogpu/voxel/mesh"
	"github.com/gogpu/voxel/pipeline"
	"github.com/gogpu/voxel/texarray"
)

// openNoop opens the noop HAL device. close releases it.
func openNoop() (device hal.Device, queue hal.Queue, closeFn func(), err error) {
	instance, err := noop.API{}.CreateInstance(nil)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("create instance: %w", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, nil, nil, errors.New("no adapters")
	}
	open, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, nil, nil, fmt.Errorf("open device: %w", err)
	}
	return open.Device, open.Queue, func() {
		open.Device.Destroy()
		instance.Destroy()
	}, nil
}

// builtinTextures returns a solid color per terrain layer.
func builtinTextures() (*texarray.Array, *mesh.StaticPalette, error) {
	colors := [layerCount]color.RGBA{
		layerStone:     {0x80, 0x80, 0x80, 0xff},
		layerDirt:      {0x86, 0x60, 0x43, 0xff},
		layerGrassTop:  {0x5b, 0x9e, 0x3a, 0xff},
		layerGrassSide: {0x72, 0x7f, 0x3e, 0xff},
	}
	imgs := make([]image.Image, len(colors))
	for i, c := range colors {
		img := image.NewRGBA(image.Rect(0, 0, 16, 16))
		for p := 0; p < len(img.Pix); p += 4 {
			img.Pix[p], img.Pix[p+1], img.Pix[p+2], img.Pix[p+3] = c.R, c.G, c.B, c.A
		}
		imgs[i] = img
	}
	arr, err := texarray.FromImages(imgs)
	if err != nil {
		return nil, nil, err
	}
	return arr, terrainPalette(), nil
}

type frameStats struct {
	chunks, chunkDraws, wireDraws, overlayDraws, outlineDraws int
}

func runRender(ctx context.Context, args []string, out io.Writer) error {
	fs := newFlagSet("render")
	cfgPath := fs.String("config", "", "TOML config file (defaults when empty)")
	width := fs.Uint("width", 1280, "target width")
	height := fs.Uint("height", 720, "target height")
	chunks := fs.Int("chunks", 2, "terrain grid size in chunks per side")
	seed := fs.Uint64("seed", 1, "terrain seed")
	if err := parseFlags(fs, args, 0); err != nil {
		return err
	}

	cfg := voxel.DefaultConfig()
	if *cfgPath != "" {
		c, err := voxel.LoadConfig(*cfgPath)
		if err != nil {
			return err
		}
		cfg = *c
	}

	arr, palette, err := builtinTextures()
	if err != nil {
		return err
	}
	if cfg.Textures.Manifest != "" {
		set, err := texarray.Load(ctx, cfg.Textures.Manifest)
		if err != nil {
			return err
		}
		arr, palette = set.Array, set.Palette(blockNames)
	}

	device, queue, closeDevice, err := openNoop()
	if err != nil {
		return err
	}
	defer closeDevice()

	r, err := voxel.NewRenderer(device, queue, voxel.WithConfig(&cfg))
	if err != nil {
		return err
	}
	defer r.Close()
	if err := r.Prepare(pipeline.VariantTextured, pipeline.VariantFlat); err != nil {
		return err
	}

	mat, err := r.NewMaterial(arr, "terrain")
	if err != nil {
		return err
	}
	land := newTerrain(*seed)
	results, err := mesh.NewBuilder(palette, arr.LayerCount()).BuildAll(ctx, land.jobs(*chunks), 0)
	if err != nil {
		return err
	}
	type uploaded struct {
		mesh   *voxel.ChunkMesh
		origin pipeline.ChunkOrigin
	}
	meshes := make([]uploaded, 0, len(results))
	defer func() {
		for _, m := range meshes {
			m.mesh.Destroy()
		}
	}()
	for _, res := range results {
		cm, err := r.UploadMesh(res.Mesh, fmt.Sprintf("chunk_%d_%d_%d", res.Coord[0], res.Coord[1], res.Coord[2]))
		if err != nil {
			return err
		}
		meshes = append(meshes, uploaded{mesh: cm, origin: res.Coord.Origin()})
	}

	crosshair, err := r.UploadOverlay(voxel.OverlayQuad(-0.01, -0.01, 0.01, 0.01, layerStone), "crosshair")
	if err != nil {
		return err
	}
	defer crosshair.Destroy()

	target, err := r.NewTarget(uint32(*width), uint32(*height)) //nolint:gosec // flag values are small
	if err != nil {
		return err
	}
	defer target.Destroy()

	r.SetCamera(cfg.NewCamera(), float32(*width)/float32(*height))
	if err := r.BeginFrame(); err != nil {
		return err
	}
	var st frameStats
	sky := gputypes.Color{R: 0.53, G: 0.81, B: 0.92, A: 1}
	err = r.Render(target, sky, func(rp hal.RenderPassEncoder) error {
		for _, variant := range []pipeline.Variant{pipeline.VariantTextured, pipeline.VariantFlat} {
			cp, err := r.ChunkPass(rp, variant)
			if err != nil {
				return err
			}
			if err := cp.SetMaterial(mat); err != nil {
				return err
			}
			for _, m := range meshes {
				if err := cp.DrawChunk(m.mesh, m.origin); err != nil {
					return err
				}
			}
			if variant == pipeline.VariantFlat {
				st.wireDraws = cp.Draws()
			} else {
				st.chunkDraws = cp.Draws()
			}
		}
		op, err := r.Overlay(rp, mat)
		if err != nil {
			return err
		}
		if err := op.Draw(crosshair, pipeline.TintNone); err != nil {
			return err
		}
		st.overlayDraws = op.Draws()

		// Highlight the surface block at the world origin.
		ol, err := r.Outline(rp)
		if err != nil {
			return err
		}
		if err := ol.Draw(pipeline.Position{0, float32(land.height(0, 0) - 1), 0}); err != nil {
			return err
		}
		st.outlineDraws = ol.Draws()
		return nil
	})
	if endErr := r.EndFrame(); err == nil {
		err = endErr
	}
	if err != nil {
		return err
	}
	st.chunks = len(meshes)

	c := r.Config()
	fmt.Fprintf(out, "target    %dx%d, %d samples\n", target.Width, target.Height, c.SampleCount)
	fmt.Fprintf(out, "shaders   %s\n", c.ShaderFormat)
	fmt.Fprintf(out, "material  %s, %d layers of %dx%d\n", mat.Label, mat.Layers, mat.Width, mat.Height)
	fmt.Fprintf(out, "chunks    %d\n", st.chunks)
	fmt.Fprintf(out, "draws     %d textured, %d wireframe, %d overlay, %d outline\n",
		st.chunkDraws, st.wireDraws, st.overlayDraws, st.outlineDraws)
	fmt.Fprintf(out, "frame     %d (uniforms v%d)\n", r.FrameIndex(), r.Frame().Version())
	return nil
}
