// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"math"
	"math/rand/v2"

	"github.com/gogpu/voxel/mesh"
)

// Terrain block ids and the layers of the built-in texture set.
const (
	blockStone mesh.BlockID = 1
	blockDirt  mesh.BlockID = 2
	blockGrass mesh.BlockID = 3

	layerStone     = 0
	layerDirt      = 1
	layerGrassTop  = 2
	layerGrassSide = 3
	layerCount     = 4
)

// blockNames maps manifest names to terrain block ids.
var blockNames = map[string]mesh.BlockID{
	"stone": blockStone,
	"dirt":  blockDirt,
	"grass": blockGrass,
}

func terrainPalette() *mesh.StaticPalette {
	p := mesh.NewStaticPalette()
	p.Register(blockStone, mesh.SameTextures(layerStone))
	p.Register(blockDirt, mesh.SameTextures(layerDirt))
	p.Register(blockGrass, mesh.TopBottomSides(layerGrassTop, layerDirt, layerGrassSide))
	return p
}

// terrain is a seeded heightmap of rolling hills within one chunk layer.
type terrain struct {
	phase [3]float64
}

func newTerrain(seed uint64) *terrain {
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	var t terrain
	for i := range t.phase {
		t.phase[i] = r.Float64() * 2 * math.Pi
	}
	return &t
}

// height returns the number of solid blocks in the column at world (x, z),
// between 1 and ChunkSize-1.
func (t *terrain) height(x, z int) int {
	fx, fz := float64(x), float64(z)
	h := 12 +
		5*math.Sin(fx*0.11+t.phase[0]) +
		4*math.Cos(fz*0.13+t.phase[1]) +
		3*math.Sin((fx+fz)*0.05+t.phase[2])
	return max(1, min(mesh.ChunkSize-1, int(h)))
}

// chunk fills the chunk at (cx, 0, cz).
func (t *terrain) chunk(cx, cz int) *mesh.Chunk {
	c := &mesh.Chunk{}
	for z := 0; z < mesh.ChunkSize; z++ {
		for x := 0; x < mesh.ChunkSize; x++ {
			h := t.height(cx*mesh.ChunkSize+x, cz*mesh.ChunkSize+z)
			for y := 0; y < h; y++ {
				id := blockStone
				switch {
				case y == h-1:
					id = blockGrass
				case y >= h-4:
					id = blockDirt
				}
				c.Set(x, y, z, id)
			}
		}
	}
	return c
}

// jobs generates an n x n grid of chunks and wires each to its loaded
// horizontal neighbors.
func (t *terrain) jobs(n int) []mesh.Job {
	chunks := make([][]*mesh.Chunk, n)
	for cx := range chunks {
		chunks[cx] = make([]*mesh.Chunk, n)
		for cz := range chunks[cx] {
			chunks[cx][cz] = t.chunk(cx, cz)
		}
	}
	at := func(cx, cz int) *mesh.Chunk {
		if cx < 0 || cz < 0 || cx >= n || cz >= n {
			return nil
		}
		return chunks[cx][cz]
	}

	jobs := make([]mesh.Job, 0, n*n)
	for cx := 0; cx < n; cx++ {
		for cz := 0; cz < n; cz++ {
			nb := &mesh.Neighborhood{Center: chunks[cx][cz]}
			nb.Neighbors[mesh.FacePX] = at(cx+1, cz)
			nb.Neighbors[mesh.FaceNX] = at(cx-1, cz)
			nb.Neighbors[mesh.FacePZ] = at(cx, cz+1)
			nb.Neighbors[mesh.FaceNZ] = at(cx, cz-1)
			jobs = append(jobs, mesh.Job{
				Coord:  mesh.ChunkCoord{int32(cx), 0, int32(cz)}, //nolint:gosec // grid size is small
				Source: nb,
			})
		}
	}
	return jobs
}
