// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package texarray builds the block texture array from a manifest of image
// files and maps block faces to array layers.
//
// A manifest is TOML:
//
//	[[block]]
//	name = "stone"
//	textures = ["stone.png"]
//
//	[[block]]
//	name = "grass"
//	textures = ["grass_top.png", "dirt.png", "grass_side.png"]
//
// One texture covers every face. Three are top, bottom and sides. Six are
// top, bottom, left (-X), right (+X), front (+Z) and back (-Z). Paths are
// relative to the manifest, and a path used by several blocks becomes a
// single layer.
package texarray

import (
	"errors"
	"fmt"

	"github.com/pelletier/go-toml/v2"

	"github.com/gogpu/voxel/mesh"
)

// Manifest errors.
var (
	// ErrInvalidManifest wraps every manifest validation failure.
	ErrInvalidManifest = errors.New("texarray: invalid manifest")
)

// Manifest lists the textures of every block.
type Manifest struct {
	Blocks []Entry `toml:"block"`
}

// Entry is one block of a manifest.
type Entry struct {
	Name     string   `toml:"name"`
	Textures []string `toml:"textures"`
}

// ParseManifest decodes and validates a manifest.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidManifest, err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks names and texture counts.
func (m *Manifest) Validate() error {
	if len(m.Blocks) == 0 {
		return fmt.Errorf("%w: no blocks", ErrInvalidManifest)
	}
	seen := make(map[string]bool, len(m.Blocks))
	for i, b := range m.Blocks {
		if b.Name == "" {
			return fmt.Errorf("%w: block %d has no name", ErrInvalidManifest, i)
		}
		if seen[b.Name] {
			return fmt.Errorf("%w: duplicate block %q", ErrInvalidManifest, b.Name)
		}
		seen[b.Name] = true
		switch len(b.Textures) {
		case 1, 3, 6:
		default:
			return fmt.Errorf("%w: block %q lists %d textures, want 1, 3 or 6",
				ErrInvalidManifest, b.Name, len(b.Textures))
		}
		for _, p := range b.Textures {
			if p == "" {
				return fmt.Errorf("%w: block %q has an empty texture path", ErrInvalidManifest, b.Name)
			}
		}
	}
	return nil
}

// faces maps texture position to faces for each supported count.
var faces = map[int][][]mesh.Face{
	1: {{mesh.FacePX, mesh.FaceNX, mesh.FacePY, mesh.FaceNY, mesh.FacePZ, mesh.FaceNZ}},
	3: {{mesh.FacePY}, {mesh.FaceNY}, {mesh.FacePX, mesh.FaceNX, mesh.FacePZ, mesh.FaceNZ}},
	6: {{mesh.FacePY}, {mesh.FaceNY}, {mesh.FaceNX}, {mesh.FacePX}, {mesh.FacePZ}, {mesh.FaceNZ}},
}

// faceTextures assigns layers to faces given the layer of each listed texture.
func faceTextures(layers []uint32) mesh.FaceTextures {
	var t mesh.FaceTextures
	for i, fs := range faces[len(layers)] {
		for _, f := range fs {
			t[f] = layers[i]
		}
	}
	return t
}
