// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package voxel

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/voxel/internal/gpu"
)

func TestDefaultConfigValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() = %v", err)
	}
	g := cfg.GPUConfig()
	if g != gpu.DefaultConfig() {
		t.Errorf("GPUConfig() = %+v, want gpu.DefaultConfig()", g)
	}
	if cfg.Renderer.ColorFormat != "" {
		t.Errorf("default color_format = %q, want unset so the surface format applies", cfg.Renderer.ColorFormat)
	}
	cam := cfg.NewCamera()
	if cam.Position != (mgl32.Vec3{0, 128.5, -2}) || cam.FovY != 60 || cam.Near != 0.01 || cam.Far != 1000 {
		t.Errorf("camera = %+v", cam)
	}
}

func TestParseConfig(t *testing.T) {
	data := []byte(`
[renderer]
sample_count = 1
color_format = "RGBA8Unorm-srgb"
depth_format = "depth32float"
shader_format = "spirv"

[camera]
fov_y = 75.0
position = [1.0, 2.0, 3.0]
yaw = 90.0

[lighting]
sun_direction = [0.0, -1.0, 0.0]

[textures]
manifest = "blocks.toml"
`)
	cfg, err := ParseConfig(data)
	if err != nil {
		t.Fatalf("ParseConfig() = %v", err)
	}
	g := cfg.GPUConfig()
	if g.SampleCount != 1 || g.ColorFormat != gputypes.TextureFormatRGBA8UnormSrgb ||
		g.DepthFormat != gputypes.TextureFormatDepth32Float || g.ShaderFormat != gpu.ShaderSPIRV {
		t.Errorf("GPUConfig() = %+v", g)
	}
	if cfg.Camera.FovY != 75 || cfg.Camera.ZFar != 1000 {
		t.Errorf("camera = %+v, want fov 75 and default far plane", cfg.Camera)
	}
	if cfg.Camera.Position != [3]float32{1, 2, 3} {
		t.Errorf("position = %v", cfg.Camera.Position)
	}
	cam := cfg.NewCamera()
	if d := cam.Direction(); !vecNear(d, mgl32.Vec3{0, 0, 1}) {
		t.Errorf("yaw 90 direction = %v, want +Z", d)
	}
	if cfg.Textures.Manifest != "blocks.toml" {
		t.Errorf("manifest = %q", cfg.Textures.Manifest)
	}
}

func TestParseConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"syntax", "[renderer\n"},
		{"unknown key", "[renderer]\nmsaa = 4\n"},
		{"sample count", "[renderer]\nsample_count = 2\n"},
		{"color format", "[renderer]\ncolor_format = \"r8unorm\"\n"},
		{"depth format", "[renderer]\ndepth_format = \"stencil8\"\n"},
		{"shader format", "[renderer]\nshader_format = \"glsl\"\n"},
		{"alignment", "[renderer]\nuniform_alignment = 100\n"},
		{"watch without dir", "[renderer]\nwatch_shaders = true\n"},
		{"fov", "[camera]\nfov_y = 180.0\n"},
		{"planes", "[camera]\nz_near = 10.0\nz_far = 1.0\n"},
		{"zero sun", "[lighting]\nsun_direction = [0.0, 0.0, 0.0]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.data))
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("ParseConfig() error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestLoadConfigResolvesPaths(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "voxel.toml")
	data := "[renderer]\nshader_dir = \"shaders\"\n\n[textures]\nmanifest = \"tex/blocks.toml\"\n"
	if err := os.WriteFile(file, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(file)
	if err != nil {
		t.Fatalf("LoadConfig() = %v", err)
	}
	if want := filepath.Join(dir, "shaders"); cfg.Renderer.ShaderDir != want {
		t.Errorf("ShaderDir = %q, want %q", cfg.Renderer.ShaderDir, want)
	}
	if want := filepath.Join(dir, "tex", "blocks.toml"); cfg.Textures.Manifest != want {
		t.Errorf("Manifest = %q, want %q", cfg.Textures.Manifest, want)
	}

	if _, err := LoadConfig(filepath.Join(dir, "missing.toml")); err == nil {
		t.Error("LoadConfig(missing) should fail")
	}
}
