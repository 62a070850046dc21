// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/voxel"
	"github.com/gogpu/voxel/mesh"
	"github.com/gogpu/voxel/vertex"
)

// meshStats summarizes a set of chunk meshes.
type meshStats struct {
	Chunks, Empty      int
	Faces, Vertices    int
	Indices, Lines     int
	VertexBytes, Bytes int
	Elapsed            time.Duration
}

func collectStats(results []mesh.Result) meshStats {
	var s meshStats
	for _, r := range results {
		s.Chunks++
		if r.Mesh.Empty() {
			s.Empty++
			continue
		}
		s.Faces += r.Mesh.Faces()
		s.Vertices += len(r.Mesh.Vertices)
		s.Indices += len(r.Mesh.Indices)
		s.Lines += len(r.Mesh.LineIndices)
	}
	s.VertexBytes = s.Vertices * vertex.Stride
	s.Bytes = s.VertexBytes + 4*(s.Indices+s.Lines)
	return s
}

func (s meshStats) print(out io.Writer) {
	p := message.NewPrinter(language.English)
	p.Fprintf(out, "chunks    %d (%d empty)\n", s.Chunks, s.Empty)
	p.Fprintf(out, "faces     %d\n", s.Faces)
	p.Fprintf(out, "vertices  %d (%d bytes)\n", s.Vertices, s.VertexBytes)
	p.Fprintf(out, "indices   %d triangle, %d line\n", s.Indices, s.Lines)
	p.Fprintf(out, "gpu bytes %d\n", s.Bytes)
	p.Fprintf(out, "elapsed   %v\n", s.Elapsed.Round(time.Microsecond))
}

func runMesh(ctx context.Context, args []string, out io.Writer) error {
	fs := newFlagSet("mesh")
	seed := fs.Uint64("seed", 1, "terrain seed")
	chunks := fs.Int("chunks", 4, "grid size in chunks per side")
	workers := fs.Int("workers", 0, "mesher goroutines (0 = GOMAXPROCS)")
	if err := parseFlags(fs, args, 0); err != nil {
		return err
	}
	if *chunks <= 0 {
		return fmt.Errorf("%w: -chunks must be positive", errUsage)
	}

	jobs := newTerrain(*seed).jobs(*chunks)
	start := time.Now()
	results, err := mesh.NewBuilder(terrainPalette(), layerCount).BuildAll(ctx, jobs, *workers)
	if err != nil {
		return err
	}
	s := collectStats(results)
	s.Elapsed = time.Since(start)
	voxel.Logger().Debug("terrain meshed", "seed", *seed, "chunks", len(jobs), "elapsed", s.Elapsed)
	s.print(out)
	return nil
}
