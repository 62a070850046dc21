// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"image"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"

	"github.com/gogpu/voxel/mesh"
	"github.com/gogpu/voxel/texarray"
)

// createNoopDevice opens the noop HAL backend.
func createNoopDevice(t *testing.T) (hal.Device, hal.Queue, func()) {
	t.Helper()
	api := noop.API{}
	instance, err := api.CreateInstance(nil)
	if err != nil {
		t.Fatalf("CreateInstance failed: %v", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		t.Fatalf("Open failed: %v", err)
	}
	cleanup := func() {
		openDev.Device.Destroy()
		instance.Destroy()
	}
	return openDev.Device, openDev.Queue, cleanup
}

type bufferWrite struct {
	buf    hal.Buffer
	offset uint64
	data   []byte
}

// recordingQueue records buffer writes and submissions. Buffer writes fail
// with writeErr when it is set.
type recordingQueue struct {
	hal.Queue
	writes   []bufferWrite
	submits  int
	writeErr error
}

func (q *recordingQueue) WriteBuffer(buf hal.Buffer, offset uint64, data []byte) error {
	if q.writeErr != nil {
		return q.writeErr
	}
	q.writes = append(q.writes, bufferWrite{buf: buf, offset: offset, data: append([]byte(nil), data...)})
	return q.Queue.WriteBuffer(buf, offset, data)
}

func (q *recordingQueue) Submit(cmds []hal.CommandBuffer) (uint64, error) {
	q.submits++
	return q.Queue.Submit(cmds)
}

// last returns the latest write to buf.
func (q *recordingQueue) last(buf hal.Buffer) (bufferWrite, bool) {
	for i := len(q.writes) - 1; i >= 0; i-- {
		if q.writes[i].buf == buf {
			return q.writes[i], true
		}
	}
	return bufferWrite{}, false
}

// recordingDevice records the formats of the textures and views it creates.
type recordingDevice struct {
	hal.Device
	textures []gputypes.TextureFormat
	views    []gputypes.TextureFormat
}

func (d *recordingDevice) CreateTexture(desc *hal.TextureDescriptor) (hal.Texture, error) {
	d.textures = append(d.textures, desc.Format)
	return d.Device.CreateTexture(desc)
}

func (d *recordingDevice) CreateTextureView(tex hal.Texture, desc *hal.TextureViewDescriptor) (hal.TextureView, error) {
	d.views = append(d.views, desc.Format)
	return d.Device.CreateTextureView(tex, desc)
}

type indexedDraw struct {
	buffer hal.Buffer
	format gputypes.IndexFormat
	count  uint32
}

// recordingPass records the commands the renderer issues on a pass.
type recordingPass struct {
	hal.RenderPassEncoder
	pipeline hal.RenderPipeline
	groups   map[uint32]hal.BindGroup
	binds    int
	vertex   hal.Buffer
	index    hal.Buffer
	format   gputypes.IndexFormat
	indexed  []indexedDraw
	draws    []uint32
	ended    bool
}

func newRecordingPass() *recordingPass {
	return &recordingPass{RenderPassEncoder: &noop.RenderPassEncoder{}, groups: make(map[uint32]hal.BindGroup)}
}

func (p *recordingPass) SetPipeline(pipe hal.RenderPipeline) { p.pipeline = pipe }

func (p *recordingPass) SetBindGroup(index uint32, group hal.BindGroup, _ []uint32) {
	p.groups[index] = group
	p.binds++
}

func (p *recordingPass) SetVertexBuffer(_ uint32, buf hal.Buffer, _ uint64) { p.vertex = buf }

func (p *recordingPass) SetIndexBuffer(buf hal.Buffer, format gputypes.IndexFormat, _ uint64) {
	p.index, p.format = buf, format
}

func (p *recordingPass) DrawIndexed(count, _, _ uint32, _ int32, _ uint32) {
	p.indexed = append(p.indexed, indexedDraw{buffer: p.index, format: p.format, count: count})
}

func (p *recordingPass) Draw(count, _, _, _ uint32) { p.draws = append(p.draws, count) }

func (p *recordingPass) End() { p.ended = true }

// newTestRenderer returns a single-sampled renderer on the noop device and
// the queue recording its writes.
func newTestRenderer(t *testing.T, edit func(*Config)) (*Renderer, *recordingQueue) {
	t.Helper()
	device, queue, cleanup := createNoopDevice(t)
	t.Cleanup(cleanup)
	rq := &recordingQueue{Queue: queue}
	cfg := DefaultConfig()
	cfg.SampleCount = 1
	if edit != nil {
		edit(&cfg)
	}
	r, err := NewRenderer(device, rq, cfg)
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}
	t.Cleanup(r.Close)
	return r, rq
}

func testMaterial(t *testing.T, r *Renderer) *Material {
	t.Helper()
	arr, err := texarray.FromImages([]image.Image{
		image.NewRGBA(image.Rect(0, 0, 4, 4)),
		image.NewRGBA(image.Rect(0, 0, 4, 4)),
	})
	if err != nil {
		t.Fatalf("FromImages failed: %v", err)
	}
	m, err := r.NewMaterial(arr, "test")
	if err != nil {
		t.Fatalf("NewMaterial failed: %v", err)
	}
	return m
}

// singleBlockMesh uploads a mesh of one stone block away from the chunk
// border: six faces, 36 triangle indices, 48 line indices.
func singleBlockMesh(t *testing.T, r *Renderer) *ChunkMesh {
	t.Helper()
	pal := mesh.NewStaticPalette()
	pal.Register(1, mesh.SameTextures(1))
	var c mesh.Chunk
	c.Set(3, 3, 3, 1)
	m, err := mesh.NewBuilder(pal, 2).Build(&c)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	cm, err := r.UploadMesh(m, "block")
	if err != nil {
		t.Fatalf("UploadMesh failed: %v", err)
	}
	t.Cleanup(cm.Destroy)
	return cm
}
