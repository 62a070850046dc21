// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package texarray

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"  // register decoder
	_ "image/jpeg" // register decoder
	_ "image/png"  // register decoder
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"

	_ "golang.org/x/image/bmp"  // register decoder
	_ "golang.org/x/image/webp" // register decoder
	"golang.org/x/sync/errgroup"

	"github.com/gogpu/voxel/mesh"
)

// Set is a loaded texture array with the face layers of every block.
type Set struct {
	Array  *Array
	Paths  []string
	blocks map[string]mesh.FaceTextures
}

// Load reads the manifest at file and every image it references.
func Load(ctx context.Context, file string) (*Set, error) {
	dir, name := filepath.Split(file)
	if dir == "" {
		dir = "."
	}
	return LoadFS(ctx, os.DirFS(dir), name)
}

// LoadFS reads a manifest and its images from fsys. Image paths resolve
// relative to the manifest's directory. Images decode concurrently.
func LoadFS(ctx context.Context, fsys fs.FS, manifest string) (*Set, error) {
	data, err := fs.ReadFile(fsys, manifest)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	m, err := ParseManifest(data)
	if err != nil {
		return nil, err
	}

	base := path.Dir(manifest)
	s := &Set{blocks: make(map[string]mesh.FaceTextures, len(m.Blocks))}
	layerOf := make(map[string]uint32)
	for _, b := range m.Blocks {
		layers := make([]uint32, len(b.Textures))
		for i, p := range b.Textures {
			full := path.Join(base, p)
			l, ok := layerOf[full]
			if !ok {
				l = uint32(len(s.Paths))
				layerOf[full] = l
				s.Paths = append(s.Paths, full)
			}
			layers[i] = l
		}
		s.blocks[b.Name] = faceTextures(layers)
	}

	imgs := make([]image.Image, len(s.Paths))
	g, ctx := errgroup.WithContext(ctx)
	for i, p := range s.Paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			img, err := decodeFile(fsys, p)
			if err != nil {
				return err
			}
			imgs[i] = img
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.Array, err = FromImages(imgs)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func decodeFile(fsys fs.FS, p string) (image.Image, error) {
	data, err := fs.ReadFile(fsys, p)
	if err != nil {
		return nil, fmt.Errorf("read texture: %w", err)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode texture %s: %w", p, err)
	}
	return img, nil
}

// Textures returns the face layers of a block.
func (s *Set) Textures(name string) (mesh.FaceTextures, bool) {
	t, ok := s.blocks[name]
	return t, ok
}

// Names returns the block names in sorted order.
func (s *Set) Names() []string {
	names := make([]string, 0, len(s.blocks))
	for n := range s.blocks {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Palette builds a mesher palette from block ids keyed by name. Names with
// no manifest entry fall back to layer 0.
func (s *Set) Palette(ids map[string]mesh.BlockID) *mesh.StaticPalette {
	p := mesh.NewStaticPalette()
	for name, id := range ids {
		if t, ok := s.blocks[name]; ok {
			p.Register(id, t)
		}
	}
	return p
}
