// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package voxel

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"
	"github.com/pelletier/go-toml/v2"

	"github.com/gogpu/voxel/internal/gpu"
	"github.com/gogpu/voxel/pipeline"
)

// ErrInvalidConfig wraps every configuration validation failure.
var ErrInvalidConfig = errors.New("voxel: invalid config")

// Config is the file configuration of a renderer and its scene.
//
//	[renderer]
//	sample_count = 4
//	color_format = "bgra8unorm"
//	depth_format = "depth24plus-stencil8"
//	shader_format = "wgsl"
//	shader_dir = "shaders"
//	watch_shaders = true
//	uniform_alignment = 256
//
//	[camera]
//	fov_y = 60.0
//	z_near = 0.01
//	z_far = 1000.0
//	position = [0.0, 128.5, -2.0]
//	yaw = 135.0
//	pitch = 0.0
//
//	[lighting]
//	sun_direction = [4.0, -5.0, 5.0]
//
//	[textures]
//	manifest = "textures/blocks.toml"
//
// Every key is optional; missing keys keep their DefaultConfig value.
// An unset color_format follows the host surface, or bgra8unorm when headless.
// Relative paths are resolved against the config file by LoadConfig.
type Config struct {
	Renderer RendererConfig `toml:"renderer"`
	Camera   CameraConfig   `toml:"camera"`
	Lighting LightingConfig `toml:"lighting"`
	Textures TexturesConfig `toml:"textures"`
}

// RendererConfig selects formats and shader handling.
type RendererConfig struct {
	SampleCount      uint32 `toml:"sample_count"`
	ColorFormat      string `toml:"color_format"`
	DepthFormat      string `toml:"depth_format"`
	ShaderFormat     string `toml:"shader_format"`
	ShaderDir        string `toml:"shader_dir"`
	WatchShaders     bool   `toml:"watch_shaders"`
	UniformAlignment uint64 `toml:"uniform_alignment"`
}

// CameraConfig is the initial camera. Angles are in degrees.
type CameraConfig struct {
	FovY     float32    `toml:"fov_y"`
	ZNear    float32    `toml:"z_near"`
	ZFar     float32    `toml:"z_far"`
	Position [3]float32 `toml:"position"`
	Yaw      float32    `toml:"yaw"`
	Pitch    float32    `toml:"pitch"`
}

// LightingConfig holds the directional light.
type LightingConfig struct {
	SunDirection [3]float32 `toml:"sun_direction"`
}

// TexturesConfig points at the texture manifest.
type TexturesConfig struct {
	Manifest string `toml:"manifest"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		Renderer: RendererConfig{
			SampleCount:      4,
			DepthFormat:      "depth24plus-stencil8",
			ShaderFormat:     "wgsl",
			UniformAlignment: pipeline.DefaultUniformAlignment,
		},
		Camera: CameraConfig{
			FovY:     60,
			ZNear:    0.01,
			ZFar:     1000,
			Position: [3]float32{0, 128.5, -2},
			Yaw:      135,
		},
		Lighting: LightingConfig{
			SunDirection: pipeline.DefaultSunDirection,
		},
	}
}

// ParseConfig decodes TOML over DefaultConfig and validates the result.
// Unknown keys are rejected.
func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadConfig reads and parses the config file at path. Relative shader and
// manifest paths become relative to the file's directory.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	dir := filepath.Dir(path)
	cfg.Renderer.ShaderDir = resolvePath(dir, cfg.Renderer.ShaderDir)
	cfg.Textures.Manifest = resolvePath(dir, cfg.Textures.Manifest)
	return cfg, nil
}

func resolvePath(dir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}

var colorFormats = map[string]gputypes.TextureFormat{
	"bgra8unorm":      gputypes.TextureFormatBGRA8Unorm,
	"bgra8unorm-srgb": gputypes.TextureFormatBGRA8UnormSrgb,
	"rgba8unorm":      gputypes.TextureFormatRGBA8Unorm,
	"rgba8unorm-srgb": gputypes.TextureFormatRGBA8UnormSrgb,
}

var depthFormats = map[string]gputypes.TextureFormat{
	"depth24plus-stencil8": gputypes.TextureFormatDepth24PlusStencil8,
	"depth24plus":          gputypes.TextureFormatDepth24Plus,
	"depth32float":         gputypes.TextureFormatDepth32Float,
}

var shaderFormats = map[string]gpu.ShaderFormat{
	"wgsl":  gpu.ShaderWGSL,
	"spirv": gpu.ShaderSPIRV,
}

// Validate checks every field.
func (c *Config) Validate() error {
	r := c.Renderer
	if r.SampleCount != 1 && r.SampleCount != 4 {
		return fmt.Errorf("%w: renderer.sample_count %d, want 1 or 4", ErrInvalidConfig, r.SampleCount)
	}
	if _, ok := colorFormats[strings.ToLower(r.ColorFormat)]; !ok && r.ColorFormat != "" {
		return fmt.Errorf("%w: renderer.color_format %q", ErrInvalidConfig, r.ColorFormat)
	}
	if _, ok := depthFormats[strings.ToLower(r.DepthFormat)]; !ok {
		return fmt.Errorf("%w: renderer.depth_format %q", ErrInvalidConfig, r.DepthFormat)
	}
	if _, ok := shaderFormats[strings.ToLower(r.ShaderFormat)]; !ok {
		return fmt.Errorf("%w: renderer.shader_format %q", ErrInvalidConfig, r.ShaderFormat)
	}
	if _, err := pipeline.NewWorldLayout(r.UniformAlignment); err != nil {
		return fmt.Errorf("%w: renderer.uniform_alignment: %w", ErrInvalidConfig, err)
	}
	if r.WatchShaders && r.ShaderDir == "" {
		return fmt.Errorf("%w: renderer.watch_shaders needs renderer.shader_dir", ErrInvalidConfig)
	}

	cam := c.Camera
	if !(cam.FovY > 0 && cam.FovY < 180) {
		return fmt.Errorf("%w: camera.fov_y %v", ErrInvalidConfig, cam.FovY)
	}
	if !(cam.ZNear > 0 && cam.ZFar > cam.ZNear) || math.IsInf(float64(cam.ZFar), 0) {
		return fmt.Errorf("%w: camera planes %v..%v", ErrInvalidConfig, cam.ZNear, cam.ZFar)
	}
	if _, err := pipeline.NormalizeSun(c.Lighting.SunDirection); err != nil {
		return fmt.Errorf("%w: lighting.sun_direction: %w", ErrInvalidConfig, err)
	}
	return nil
}

// GPUConfig converts the renderer section. The config must be valid.
func (c *Config) GPUConfig() gpu.Config {
	cfg := gpu.DefaultConfig()
	cfg.SampleCount = c.Renderer.SampleCount
	if f, ok := c.colorFormat(); ok {
		cfg.ColorFormat = f
	}
	cfg.DepthFormat = depthFormats[strings.ToLower(c.Renderer.DepthFormat)]
	cfg.ShaderFormat = shaderFormats[strings.ToLower(c.Renderer.ShaderFormat)]
	cfg.ShaderDir = c.Renderer.ShaderDir
	cfg.WatchShaders = c.Renderer.WatchShaders
	cfg.UniformAlignment = c.Renderer.UniformAlignment
	return cfg
}

// colorFormat returns the configured color format. ok is false when the
// config leaves the choice to the host surface.
func (c *Config) colorFormat() (gputypes.TextureFormat, bool) {
	f, ok := colorFormats[strings.ToLower(c.Renderer.ColorFormat)]
	return f, ok
}

// NewCamera returns the configured camera.
func (c *Config) NewCamera() *Camera {
	return &Camera{
		Position: mgl32.Vec3(c.Camera.Position),
		Yaw:      mgl32.DegToRad(c.Camera.Yaw),
		Pitch:    mgl32.DegToRad(c.Camera.Pitch),
		FovY:     c.Camera.FovY,
		Near:     c.Camera.ZNear,
		Far:      c.Camera.ZFar,
	}
}
