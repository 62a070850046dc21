// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package pipeline

import (
	"errors"
	"fmt"
)

// Construction errors.
var (
	// ErrPushShapeMismatch is returned when a pipeline is requested with a
	// push shape its shader does not consume.
	ErrPushShapeMismatch = errors.New("pipeline: push data shape does not match shader")

	// ErrVariantUnsupported is returned when a shader has no is_black
	// constant and a non-default variant is requested.
	ErrVariantUnsupported = errors.New("pipeline: variant not supported by shader")

	// ErrInvalidVariant is returned for an unknown variant value.
	ErrInvalidVariant = errors.New("pipeline: invalid variant")

	// ErrInvalidSampleCount is returned for a sample count other than 1 or 4.
	ErrInvalidSampleCount = errors.New("pipeline: invalid sample count")
)

// ShaderInfo describes what a shader consumes.
type ShaderInfo struct {
	Name string

	// Push is the per-draw shape the shader reads from the draw group.
	Push PushShape

	// Specializable reports whether the source declares is_black.
	Specializable bool
}

// Descriptor requests one pipeline.
type Descriptor struct {
	Shader      ShaderInfo
	Variant     Variant
	Push        PushShape
	SampleCount uint32
}

// Validate checks that the shader can serve the requested variant and push shape.
func (d Descriptor) Validate() error {
	if !d.Variant.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidVariant, d.Variant)
	}
	if d.Variant != VariantTextured && !d.Shader.Specializable {
		return fmt.Errorf("%w: %s has no %s constant (variant %s)",
			ErrVariantUnsupported, d.Shader.Name, IsBlackConstant, d.Variant)
	}
	if d.Push == PushNone || d.Push != d.Shader.Push {
		return fmt.Errorf("%w: %s consumes %s, got %s",
			ErrPushShapeMismatch, d.Shader.Name, d.Shader.Push, d.Push)
	}
	if d.SampleCount != 1 && d.SampleCount != 4 {
		return fmt.Errorf("%w: %d", ErrInvalidSampleCount, d.SampleCount)
	}
	return nil
}

// Key identifies a compiled pipeline in a cache.
type Key struct {
	Shader  string
	Variant Variant
}

// Key returns the cache key of d.
func (d Descriptor) Key() Key {
	return Key{Shader: d.Shader.Name, Variant: d.Variant}
}

// String returns "shader/variant".
func (k Key) String() string {
	return k.Shader + "/" + k.Variant.String()
}
