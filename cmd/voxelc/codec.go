// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/gogpu/voxel/vertex"
)

func runDecode(_ context.Context, args []string, out io.Writer) error {
	fs := newFlagSet("decode")
	if err := parseFlags(fs, args, 2); err != nil {
		return err
	}
	var words [2]uint32
	for i := range words {
		w, err := strconv.ParseUint(fs.Arg(i), 0, 32)
		if err != nil {
			return fmt.Errorf("word %d: %w", i, err)
		}
		words[i] = uint32(w)
	}
	p := vertex.Packed{Word0: words[0], Word1: words[1]}
	d := vertex.Decode(p)

	fmt.Fprintf(out, "position (%g, %g, %g)\n", d.Position[0], d.Position[1], d.Position[2])
	fmt.Fprintf(out, "corner   %d\n", p.Corner())
	fmt.Fprintf(out, "uv       (%g, %g)\n", d.UV[0], d.UV[1])
	fmt.Fprintf(out, "texture  %d\n", d.Texture)
	fmt.Fprintf(out, "ao       %v\n", d.AO)
	fmt.Fprintf(out, "weights  %v\n", d.Weights())
	fmt.Fprintf(out, "shade    %g\n", d.Shade(d.UV[0], d.UV[1]))
	return nil
}

func runEncode(_ context.Context, args []string, out io.Writer) error {
	fs := newFlagSet("encode")
	if err := parseFlags(fs, args, 9); err != nil {
		return err
	}
	var v vertex.Vertex
	for i := range v.Position {
		f, err := strconv.ParseFloat(fs.Arg(i), 32)
		if err != nil {
			return fmt.Errorf("coordinate %d: %w", i, err)
		}
		v.Position[i] = float32(f)
	}
	corner, err := strconv.ParseUint(fs.Arg(3), 10, 8)
	if err != nil {
		return fmt.Errorf("corner: %w", err)
	}
	v.Corner = uint8(corner)
	tex, err := strconv.ParseUint(fs.Arg(4), 0, 32)
	if err != nil {
		return fmt.Errorf("texture: %w", err)
	}
	v.Texture = uint32(tex)
	for i := range v.AO {
		c, err := strconv.ParseUint(fs.Arg(5+i), 10, 8)
		if err != nil {
			return fmt.Errorf("ao %d: %w", i, err)
		}
		v.AO[i] = vertex.AOCode(c)
	}

	p, err := vertex.Encode(v)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "word0 0x%08X\nword1 0x%08X\n", p.Word0, p.Word1)
	return nil
}
