// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/google/uuid"

	"github.com/gogpu/voxel/mesh"
	"github.com/gogpu/voxel/pipeline"
	"github.com/gogpu/voxel/shaders"
	"github.com/gogpu/voxel/texarray"
)

// Renderer errors.
var (
	// ErrRendererClosed is returned when operating on a closed renderer.
	ErrRendererClosed = errors.New("gpu: renderer closed")

	// ErrNoActiveFrame is returned when recording outside BeginFrame/EndFrame.
	ErrNoActiveFrame = errors.New("gpu: no active frame")

	// ErrFrameActive is returned by BeginFrame when a frame is already open.
	ErrFrameActive = errors.New("gpu: frame already active")

	// ErrNoMaterial is returned when drawing before a material is bound.
	ErrNoMaterial = errors.New("gpu: no material bound")

	// ErrMaterialReleased is returned when binding a released material.
	ErrMaterialReleased = errors.New("gpu: material released")
)

// Config holds the renderer's device-facing settings.
type Config struct {
	ColorFormat      gputypes.TextureFormat
	DepthFormat      gputypes.TextureFormat
	SampleCount      uint32
	UniformAlignment uint64
	ShaderFormat     ShaderFormat

	// ShaderDir overrides embedded shaders with files from a directory.
	ShaderDir string

	// WatchShaders reloads pipelines when files in ShaderDir change.
	WatchShaders bool

	// DrawSlotsPerPage sizes the pages of the per-draw uniform ring.
	DrawSlotsPerPage int
}

// DefaultConfig returns 4x MSAA into BGRA8 with a 24-bit depth, 8-bit
// stencil attachment.
func DefaultConfig() Config {
	return Config{
		ColorFormat:      gputypes.TextureFormatBGRA8Unorm,
		DepthFormat:      gputypes.TextureFormatDepth24PlusStencil8,
		SampleCount:      4,
		UniformAlignment: pipeline.DefaultUniformAlignment,
		ShaderFormat:     ShaderWGSL,
		DrawSlotsPerPage: DefaultSlotsPerPage,
	}
}

// Renderer draws voxel chunks on a HAL device. The device and queue belong
// to the caller and are not destroyed by Close.
type Renderer struct {
	mu     sync.Mutex
	device hal.Device
	queue  hal.Queue
	cfg    Config

	layouts   *Layouts
	frame     *FrameState
	ring      *drawRing
	pipelines *pipelineCache
	watcher   *shaders.Watcher

	outline      hal.Buffer
	outlineCount uint32

	inFrame    bool
	frameIndex uint64
	used       map[uuid.UUID]bool
	materials  map[uuid.UUID]*Material
	released   []*Material
	reloads    []string
	closed     bool
}

// NewRenderer creates the layouts, the world uniforms and the draw ring.
// Pipelines are built on first use.
func NewRenderer(device hal.Device, queue hal.Queue, cfg Config) (*Renderer, error) {
	if device == nil || queue == nil {
		return nil, errors.New("gpu: nil device or queue")
	}
	worldLayout, err := pipeline.NewWorldLayout(cfg.UniformAlignment)
	if err != nil {
		return nil, err
	}
	if cfg.SampleCount != 1 && cfg.SampleCount != 4 {
		return nil, fmt.Errorf("%w: %d", pipeline.ErrInvalidSampleCount, cfg.SampleCount)
	}

	r := &Renderer{
		device:    device,
		queue:     queue,
		cfg:       cfg,
		used:      make(map[uuid.UUID]bool),
		materials: make(map[uuid.UUID]*Material),
	}
	if r.layouts, err = newLayouts(device); err != nil {
		return nil, err
	}
	if r.frame, err = newFrameState(device, r.layouts, worldLayout); err != nil {
		r.layouts.destroy(device)
		return nil, err
	}
	edges := outlineEdges()
	if r.outline, err = createAndUpload(device, queue, "voxel_outline", outlineBytes(edges),
		gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst); err != nil {
		r.frame.destroy(device)
		r.layouts.destroy(device)
		return nil, err
	}
	r.outlineCount = uint32(len(edges)) //nolint:gosec // 24 corners
	r.ring = newDrawRing(device, queue, r.layouts.Draw, cfg.UniformAlignment, cfg.DrawSlotsPerPage)
	r.pipelines = newPipelineCache(device, r.layouts, shaders.NewLibrary(cfg.ShaderDir), cfg)

	if cfg.WatchShaders && cfg.ShaderDir != "" {
		w, err := shaders.NewWatcher(cfg.ShaderDir)
		if err != nil {
			r.Close()
			return nil, err
		}
		r.watcher = w
	}

	slogger().Info("renderer created",
		"samples", cfg.SampleCount, "shaders", cfg.ShaderFormat.String(), "shader_dir", cfg.ShaderDir)
	return r, nil
}

// Config returns the renderer's configuration.
func (r *Renderer) Config() Config { return r.cfg }

// Frame returns the world uniforms.
func (r *Renderer) Frame() *FrameState { return r.frame }

// Layouts returns the bind group and pipeline layouts.
func (r *Renderer) Layouts() *Layouts { return r.layouts }

// FrameIndex returns the number of frames begun.
func (r *Renderer) FrameIndex() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frameIndex
}

// BeginFrame opens a frame. It commits the staged uniforms, destroys
// resources retired by the previous frame, applies pending shader reloads
// and recycles the draw ring. A failed commit leaves the renderer as it was.
func (r *Renderer) BeginFrame() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrRendererClosed
	}
	if r.inFrame {
		return ErrFrameActive
	}
	if err := r.frame.commit(r.queue); err != nil {
		return err
	}

	r.frameIndex++
	r.pipelines.collect(r.frameIndex)
	for _, m := range r.released {
		m.destroy(r.device)
	}
	r.released = nil
	clear(r.used)

	names := r.reloads
	r.reloads = nil
	if r.watcher != nil {
		names = append(names, r.watcher.Drain()...)
	}
	if len(names) > 0 {
		r.pipelines.reload(names, r.frameIndex)
	}

	r.ring.reset()
	r.inFrame = true
	return nil
}

// EndFrame closes the frame opened by BeginFrame.
func (r *Renderer) EndFrame() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.inFrame {
		return ErrNoActiveFrame
	}
	r.inFrame = false
	slogger().Debug("frame ended", "frame", r.frameIndex, "draws", r.ring.used(), "slots", r.ring.capacity())
	return nil
}

// ReloadShaders schedules a rebuild of every pipeline that uses one of the
// named shaders. It takes effect at the next BeginFrame.
func (r *Renderer) ReloadShaders(names ...string) {
	r.mu.Lock()
	r.reloads = append(r.reloads, names...)
	r.mu.Unlock()
}

// Prepare builds the pipelines for the given variants of the block shader
// and the overlay and outline pipelines, so the first frame does not stall
// on them.
func (r *Renderer) Prepare(variants ...pipeline.Variant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrRendererClosed
	}
	for _, v := range variants {
		if _, err := r.pipelines.get(blockProgram, v); err != nil {
			return err
		}
	}
	for _, prog := range []*program{overlayProgram, outlineProgram} {
		if _, err := r.pipelines.get(prog, pipeline.VariantTextured); err != nil {
			return err
		}
	}
	return nil
}

// NewMaterial uploads a texture array.
func (r *Renderer) NewMaterial(arr *texarray.Array, label string) (*Material, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil, ErrRendererClosed
	}
	m, err := newMaterial(r.device, r.queue, r.layouts, arr, label)
	if err != nil {
		return nil, err
	}
	r.materials[m.ID] = m
	return m, nil
}

// ReleaseMaterial destroys m. If the open frame has bound m, destruction
// waits for the next BeginFrame.
func (r *Renderer) ReleaseMaterial(m *Material) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m == nil || m.destroyed() {
		return
	}
	delete(r.materials, m.ID)
	if r.inFrame && r.used[m.ID] {
		r.released = append(r.released, m)
		return
	}
	m.destroy(r.device)
}

// UploadMesh copies a chunk mesh to the GPU.
func (r *Renderer) UploadMesh(m *mesh.Mesh, label string) (*ChunkMesh, error) {
	if r.isClosed() {
		return nil, ErrRendererClosed
	}
	if label == "" {
		label = "chunk"
	}
	return uploadMesh(r.device, r.queue, m, label)
}

// UploadOverlay copies overlay triangles to the GPU.
func (r *Renderer) UploadOverlay(verts []OverlayVertex, label string) (*OverlayMesh, error) {
	if r.isClosed() {
		return nil, ErrRendererClosed
	}
	if label == "" {
		label = "overlay"
	}
	return uploadOverlay(r.device, r.queue, verts, label)
}

// NewTarget creates an offscreen target matching the renderer's formats.
func (r *Renderer) NewTarget(width, height uint32) (*Target, error) {
	if r.isClosed() {
		return nil, ErrRendererClosed
	}
	return newTarget(r.device, r.cfg, width, height)
}

// Render records one render pass into target and submits it. record
// receives the open pass and may open chunk and overlay passes on it.
func (r *Renderer) Render(target *Target, clearColor gputypes.Color, record func(rp hal.RenderPassEncoder) error) error {
	if r.isClosed() {
		return ErrRendererClosed
	}
	encoder, err := r.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "voxel_encoder"})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("voxel_frame"); err != nil {
		return fmt.Errorf("begin encoding: %w", err)
	}

	rp := encoder.BeginRenderPass(target.PassDescriptor(clearColor))
	recErr := record(rp)
	rp.End()
	if recErr != nil {
		encoder.DiscardEncoding()
		return recErr
	}

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("end encoding: %w", err)
	}
	defer r.device.FreeCommandBuffer(cmdBuf)

	if _, err := r.queue.Submit([]hal.CommandBuffer{cmdBuf}); err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	return nil
}

// ChunkPass binds the block pipeline for variant and the world group on rp.
func (r *Renderer) ChunkPass(rp hal.RenderPassEncoder, variant pipeline.Variant) (*ChunkPass, error) {
	p, frame, err := r.pass(blockProgram, variant)
	if err != nil {
		return nil, err
	}
	rp.SetPipeline(p.pipe)
	rp.SetBindGroup(pipeline.GroupWorld, r.frame.group, nil)
	return &ChunkPass{r: r, rp: rp, variant: variant, frame: frame}, nil
}

// Overlay binds the overlay pipeline, the world group and mat on rp.
func (r *Renderer) Overlay(rp hal.RenderPassEncoder, mat *Material) (*OverlayPass, error) {
	p, frame, err := r.pass(overlayProgram, pipeline.VariantTextured)
	if err != nil {
		return nil, err
	}
	rp.SetPipeline(p.pipe)
	rp.SetBindGroup(pipeline.GroupWorld, r.frame.group, nil)
	if err := r.bindMaterial(rp, mat); err != nil {
		return nil, err
	}
	return &OverlayPass{r: r, rp: rp, frame: frame}, nil
}

// Outline binds the outline pipeline and the world group on rp.
func (r *Renderer) Outline(rp hal.RenderPassEncoder) (*OutlinePass, error) {
	p, frame, err := r.pass(outlineProgram, pipeline.VariantTextured)
	if err != nil {
		return nil, err
	}
	rp.SetPipeline(p.pipe)
	rp.SetBindGroup(pipeline.GroupWorld, r.frame.group, nil)
	return &OutlinePass{r: r, rp: rp, frame: frame}, nil
}

func (r *Renderer) pass(prog *program, v pipeline.Variant) (*builtPipeline, uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil, 0, ErrRendererClosed
	}
	if !r.inFrame {
		return nil, 0, ErrNoActiveFrame
	}
	p, err := r.pipelines.get(prog, v)
	if err != nil {
		return nil, 0, err
	}
	return p, r.frameIndex, nil
}

// bindMaterial sets group 1 and marks mat as used by the open frame.
func (r *Renderer) bindMaterial(rp hal.RenderPassEncoder, mat *Material) error {
	if mat == nil {
		return ErrNoMaterial
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if mat.destroyed() {
		return fmt.Errorf("%w: %s", ErrMaterialReleased, mat.Label)
	}
	r.used[mat.ID] = true
	rp.SetBindGroup(pipeline.GroupMaterial, mat.group, nil)
	return nil
}

// writeDraw writes d to a fresh draw slot and binds it as group 2.
func (r *Renderer) writeDraw(rp hal.RenderPassEncoder, frame uint64, d pipeline.PushData) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.inFrame || r.frameIndex != frame {
		return ErrNoActiveFrame
	}
	group, err := r.ring.write(d)
	if err != nil {
		return err
	}
	rp.SetBindGroup(pipeline.GroupDraw, group, nil)
	return nil
}

func (r *Renderer) isClosed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}

// Close destroys everything the renderer created, in reverse creation
// order. Materials still held by the caller are released too.
func (r *Renderer) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.closed = true
	r.inFrame = false

	if r.watcher != nil {
		_ = r.watcher.Close()
		r.watcher = nil
	}
	for _, m := range r.released {
		m.destroy(r.device)
	}
	r.released = nil
	for id, m := range r.materials {
		m.destroy(r.device)
		delete(r.materials, id)
	}
	if r.pipelines != nil {
		r.pipelines.destroy()
	}
	if r.ring != nil {
		r.ring.destroy()
	}
	if r.outline != nil {
		r.device.DestroyBuffer(r.outline)
		r.outline = nil
	}
	if r.frame != nil {
		r.frame.destroy(r.device)
	}
	if r.layouts != nil {
		r.layouts.destroy(r.device)
	}
	slogger().Debug("renderer closed", "frames", r.frameIndex)
}
