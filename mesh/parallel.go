// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package mesh

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Job is one chunk to mesh.
type Job struct {
	Coord  ChunkCoord
	Source BlockSource
}

// Result is the mesh of one job.
type Result struct {
	Coord ChunkCoord
	Mesh  *Mesh
}

// BuildAll meshes jobs concurrently on at most workers goroutines
// (GOMAXPROCS when workers <= 0). Results keep the order of jobs. The first
// error cancels the remaining work.
func (b *Builder) BuildAll(ctx context.Context, jobs []Job, workers int) ([]Result, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	results := make([]Result, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, job := range jobs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			m, err := b.Build(job.Source)
			if err != nil {
				return fmt.Errorf("chunk %v: %w", job.Coord, err)
			}
			results[i] = Result{Coord: job.Coord, Mesh: m}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
