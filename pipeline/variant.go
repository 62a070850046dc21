// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package pipeline

import (
	"fmt"
	"strconv"
	"strings"
)

// Variant selects a statically compiled flavor of a shader.
type Variant uint8

const (
	// VariantTextured samples the material and applies ambient occlusion.
	VariantTextured Variant = iota

	// VariantFlat writes solid black. The texture is never sampled.
	VariantFlat
)

// IsBlackConstant is the name of the specialization constant that encodes
// the variant in shader templates.
const IsBlackConstant = "is_black"

// String returns the variant name.
func (v Variant) String() string {
	switch v {
	case VariantTextured:
		return "Textured"
	case VariantFlat:
		return "Flat"
	default:
		return "Unknown"
	}
}

// Valid reports whether v is a known variant.
func (v Variant) Valid() bool { return v <= VariantFlat }

// IsBlack returns the value of the is_black constant for v.
func (v Variant) IsBlack() bool { return v == VariantFlat }

// Constants returns the specialization constants for v, ready for
// substitution into a shader template.
func (v Variant) Constants() map[string]string {
	return map[string]string{IsBlackConstant: strconv.FormatBool(v.IsBlack())}
}

// ParseVariant parses a variant name, case-insensitively. "wireframe" is
// accepted as an alias for the flat variant.
func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(s) {
	case "textured", "normal", "":
		return VariantTextured, nil
	case "flat", "wireframe", "black":
		return VariantFlat, nil
	default:
		return 0, fmt.Errorf("pipeline: unknown variant %q", s)
	}
}
