// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/voxel/pipeline"
	"github.com/gogpu/voxel/shaders"
	"github.com/gogpu/voxel/vertex"
)

// ShaderFormat selects how specialized WGSL reaches the device.
type ShaderFormat uint8

const (
	// ShaderWGSL hands WGSL source to the device.
	ShaderWGSL ShaderFormat = iota

	// ShaderSPIRV compiles WGSL to SPIR-V with naga first.
	ShaderSPIRV
)

// String returns "wgsl" or "spirv".
func (f ShaderFormat) String() string {
	switch f {
	case ShaderWGSL:
		return "wgsl"
	case ShaderSPIRV:
		return "spirv"
	default:
		return "unknown"
	}
}

// ErrUnknownShaderFormat is returned for a ShaderFormat outside the defined set.
var ErrUnknownShaderFormat = errors.New("gpu: unknown shader format")

// program is the fixed-function state that goes with a shader. The draw
// path that uses a program decides the push shape it writes.
type program struct {
	shader  string
	push    pipeline.PushShape
	buffers []gputypes.VertexBufferLayout
	state   func(v pipeline.Variant) programState
}

type programState struct {
	primitive    gputypes.PrimitiveState
	depthWrite   bool
	depthCompare gputypes.CompareFunction
	blend        *gputypes.BlendState
}

// blockVertexLayout is the packed vertex: two u32 words at locations 0 and 1.
func blockVertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: vertex.Stride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatUint32, Offset: 0, ShaderLocation: 0}, // word0
				{Format: gputypes.VertexFormatUint32, Offset: 4, ShaderLocation: 1}, // word1
			},
		},
	}
}

func overlayVertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: OverlayStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0}, // position
				{Format: gputypes.VertexFormatFloat32x2, Offset: 8, ShaderLocation: 1}, // uv
				{Format: gputypes.VertexFormatUint32, Offset: 16, ShaderLocation: 2},   // layer
			},
		},
	}
}

var blockProgram = &program{
	shader:  shaders.Block,
	push:    pipeline.PushChunkOrigin,
	buffers: blockVertexLayout(),
	state: func(v pipeline.Variant) programState {
		if v.IsBlack() {
			// Wireframe overlay on top of the textured pass.
			return programState{
				primitive:    gputypes.PrimitiveState{Topology: gputypes.PrimitiveTopologyLineList, CullMode: gputypes.CullModeNone},
				depthCompare: gputypes.CompareFunctionLessEqual,
			}
		}
		return programState{
			primitive: gputypes.PrimitiveState{
				Topology:  gputypes.PrimitiveTopologyTriangleList,
				FrontFace: gputypes.FrontFaceCW,
				CullMode:  gputypes.CullModeBack,
			},
			depthWrite:   true,
			depthCompare: gputypes.CompareFunctionLessEqual,
		}
	},
}

var overlayProgram = &program{
	shader:  shaders.Overlay,
	push:    pipeline.PushTint,
	buffers: overlayVertexLayout(),
	state: func(pipeline.Variant) programState {
		blend := gputypes.BlendStateAlpha()
		return programState{
			primitive:    gputypes.PrimitiveState{Topology: gputypes.PrimitiveTopologyTriangleList, CullMode: gputypes.CullModeNone},
			depthCompare: gputypes.CompareFunctionAlways,
			blend:        &blend,
		}
	},
}

var outlineProgram = &program{
	shader:  shaders.Outline,
	push:    pipeline.PushPosition,
	buffers: outlineVertexLayout(),
	state: func(pipeline.Variant) programState {
		return programState{
			primitive:    gputypes.PrimitiveState{Topology: gputypes.PrimitiveTopologyLineList, CullMode: gputypes.CullModeNone},
			depthCompare: gputypes.CompareFunctionLess,
		}
	},
}

// builtPipeline is one compiled (shader, variant) pair.
type builtPipeline struct {
	desc   pipeline.Descriptor
	source *shaders.Source
	module hal.ShaderModule
	pipe   hal.RenderPipeline
}

type retired struct {
	p     *builtPipeline
	frame uint64
}

// pipelineCache builds pipelines on first use, keyed by shader and variant,
// and rebuilds them when their sources change.
type pipelineCache struct {
	device  hal.Device
	layouts *Layouts
	lib     *shaders.Library
	cfg     Config

	entries  map[pipeline.Key]*builtPipeline
	programs map[pipeline.Key]*program
	retired  []retired
}

func newPipelineCache(device hal.Device, layouts *Layouts, lib *shaders.Library, cfg Config) *pipelineCache {
	return &pipelineCache{
		device:   device,
		layouts:  layouts,
		lib:      lib,
		cfg:      cfg,
		entries:  make(map[pipeline.Key]*builtPipeline),
		programs: make(map[pipeline.Key]*program),
	}
}

// get returns the pipeline for prog and v, building it if needed.
func (c *pipelineCache) get(prog *program, v pipeline.Variant) (*builtPipeline, error) {
	key := pipeline.Key{Shader: prog.shader, Variant: v}
	if p, ok := c.entries[key]; ok {
		return p, nil
	}
	p, err := c.build(prog, v)
	if err != nil {
		return nil, err
	}
	c.entries[key] = p
	c.programs[key] = prog
	return p, nil
}

func (c *pipelineCache) build(prog *program, v pipeline.Variant) (*builtPipeline, error) {
	src, err := c.lib.Load(prog.shader)
	if err != nil {
		return nil, err
	}
	desc := pipeline.Descriptor{
		Shader:      src.Info,
		Variant:     v,
		Push:        prog.push,
		SampleCount: c.cfg.SampleCount,
	}
	if err := desc.Validate(); err != nil {
		return nil, err
	}
	wgsl, err := src.Specialize(v)
	if err != nil {
		return nil, err
	}
	label := "voxel_" + desc.Key().String()

	var source hal.ShaderSource
	switch c.cfg.ShaderFormat {
	case ShaderWGSL:
		source.WGSL = wgsl
	case ShaderSPIRV:
		words, err := shaders.CompileSPIRV(wgsl)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", label, err)
		}
		source.SPIRV = words
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownShaderFormat, c.cfg.ShaderFormat)
	}

	module, err := c.device.CreateShaderModule(&hal.ShaderModuleDescriptor{Label: label, Source: source})
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", label, err)
	}

	st := prog.state(v)
	pipe, err := c.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  label,
		Layout: c.layouts.Pipeline,
		Vertex: hal.VertexState{
			Module:     module,
			EntryPoint: "vs_main",
			Buffers:    prog.buffers,
		},
		Fragment: &hal.FragmentState{
			Module:     module,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    c.cfg.ColorFormat,
					Blend:     st.blend,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		DepthStencil: &hal.DepthStencilState{
			Format:            c.cfg.DepthFormat,
			DepthWriteEnabled: st.depthWrite,
			DepthCompare:      st.depthCompare,
			StencilFront:      keepStencil,
			StencilBack:       keepStencil,
		},
		Primitive: st.primitive,
		Multisample: gputypes.MultisampleState{
			Count: c.cfg.SampleCount,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		c.device.DestroyShaderModule(module)
		return nil, fmt.Errorf("create %s: %w", label, err)
	}

	slogger().Info("pipeline built", "key", desc.Key().String(), "format", c.cfg.ShaderFormat.String())
	return &builtPipeline{desc: desc, source: src, module: module, pipe: pipe}, nil
}

var keepStencil = hal.StencilFaceState{
	Compare:     gputypes.CompareFunctionAlways,
	FailOp:      hal.StencilOperationKeep,
	DepthFailOp: hal.StencilOperationKeep,
	PassOp:      hal.StencilOperationKeep,
}

// reload rebuilds every pipeline whose source is or includes one of names.
// A pipeline that fails to rebuild keeps its previous version. Replaced
// pipelines are retired at frame and destroyed by collect one frame later.
func (c *pipelineCache) reload(names []string, frame uint64) int {
	rebuilt := 0
	for key, old := range c.entries {
		if !dependsOnAny(old.source, names) {
			continue
		}
		p, err := c.build(c.programs[key], key.Variant)
		if err != nil {
			slogger().Warn("shader reload failed, keeping previous pipeline",
				"key", key.String(), "err", err)
			continue
		}
		c.entries[key] = p
		c.retired = append(c.retired, retired{p: old, frame: frame})
		rebuilt++
	}
	if rebuilt > 0 {
		slogger().Info("shaders reloaded", "names", names, "pipelines", rebuilt)
	}
	return rebuilt
}

func dependsOnAny(src *shaders.Source, names []string) bool {
	for _, n := range names {
		if src.DependsOn(n) {
			return true
		}
	}
	return false
}

// collect destroys pipelines retired before frame.
func (c *pipelineCache) collect(frame uint64) {
	keep := c.retired[:0]
	for _, r := range c.retired {
		if r.frame < frame {
			r.p.destroy(c.device)
			continue
		}
		keep = append(keep, r)
	}
	c.retired = keep
}

func (p *builtPipeline) destroy(device hal.Device) {
	if p.pipe != nil {
		device.DestroyRenderPipeline(p.pipe)
		p.pipe = nil
	}
	if p.module != nil {
		device.DestroyShaderModule(p.module)
		p.module = nil
	}
}

func (c *pipelineCache) destroy() {
	for _, r := range c.retired {
		r.p.destroy(c.device)
	}
	c.retired = nil
	for key, p := range c.entries {
		p.destroy(c.device)
		delete(c.entries, key)
	}
}
