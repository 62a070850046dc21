// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/voxel/pipeline"
)

// DefaultSlotsPerPage is the number of draw slots in one ring page.
const DefaultSlotsPerPage = 256

// drawRing emulates push constants. Every draw writes its data into the
// next free slot and binds that slot's bind group as the draw group. Slots
// are handed out in order and recycled when a new frame begins. A page is
// added whenever the ring runs out.
type drawRing struct {
	device       hal.Device
	queue        hal.Queue
	layout       hal.BindGroupLayout
	slotSize     uint64
	slotsPerPage int

	pages []*drawPage
	next  int
}

type drawPage struct {
	buf    hal.Buffer
	groups []hal.BindGroup
}

func newDrawRing(device hal.Device, queue hal.Queue, layout hal.BindGroupLayout, alignment uint64, slotsPerPage int) *drawRing {
	if slotsPerPage <= 0 {
		slotsPerPage = DefaultSlotsPerPage
	}
	return &drawRing{
		device:       device,
		queue:        queue,
		layout:       layout,
		slotSize:     pipeline.AlignUp(pipeline.PushDataSize, alignment),
		slotsPerPage: slotsPerPage,
	}
}

// reset makes every slot available again.
func (r *drawRing) reset() { r.next = 0 }

// used returns the number of slots written since the last reset.
func (r *drawRing) used() int { return r.next }

// capacity returns the number of slots allocated.
func (r *drawRing) capacity() int { return len(r.pages) * r.slotsPerPage }

// write stores d in a fresh slot and returns the bind group exposing it.
func (r *drawRing) write(d pipeline.PushData) (hal.BindGroup, error) {
	page, slot := r.next/r.slotsPerPage, r.next%r.slotsPerPage
	if page == len(r.pages) {
		p, err := r.addPage()
		if err != nil {
			return nil, err
		}
		r.pages = append(r.pages, p)
		slogger().Debug("draw ring grown", "pages", len(r.pages), "slots", r.capacity())
	}
	p := r.pages[page]
	if err := r.queue.WriteBuffer(p.buf, uint64(slot)*r.slotSize, pipeline.PushBytes(d)); err != nil {
		return nil, fmt.Errorf("write draw slot %d: %w", r.next, err)
	}
	r.next++
	return p.groups[slot], nil
}

func (r *drawRing) addPage() (*drawPage, error) {
	n := len(r.pages)
	buf, err := r.device.CreateBuffer(&hal.BufferDescriptor{
		Label: fmt.Sprintf("voxel_draw_ring_%d", n),
		Size:  r.slotSize * uint64(r.slotsPerPage),
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create draw ring page %d: %w", n, err)
	}
	p := &drawPage{buf: buf, groups: make([]hal.BindGroup, 0, r.slotsPerPage)}
	for i := 0; i < r.slotsPerPage; i++ {
		g, err := r.device.CreateBindGroup(&hal.BindGroupDescriptor{
			Label:  fmt.Sprintf("voxel_draw_ring_%d_%d", n, i),
			Layout: r.layout,
			Entries: []gputypes.BindGroupEntry{
				{Binding: pipeline.BindingPushData, Resource: gputypes.BufferBinding{
					Buffer: buf.NativeHandle(), Offset: uint64(i) * r.slotSize, Size: pipeline.PushDataSize,
				}},
			},
		})
		if err != nil {
			p.destroy(r.device)
			return nil, fmt.Errorf("create draw slot group %d/%d: %w", n, i, err)
		}
		p.groups = append(p.groups, g)
	}
	return p, nil
}

func (p *drawPage) destroy(device hal.Device) {
	for i := len(p.groups) - 1; i >= 0; i-- {
		device.DestroyBindGroup(p.groups[i])
	}
	p.groups = nil
	if p.buf != nil {
		device.DestroyBuffer(p.buf)
		p.buf = nil
	}
}

func (r *drawRing) destroy() {
	for i := len(r.pages) - 1; i >= 0; i-- {
		r.pages[i].destroy(r.device)
	}
	r.pages = nil
	r.next = 0
}
