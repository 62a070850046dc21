// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/gogpu/voxel"
	"github.com/gogpu/voxel/pipeline"
	"github.com/gogpu/voxel/shaders"
)

func runShaders(_ context.Context, args []string, out io.Writer) error {
	fs := newFlagSet("shaders")
	variant := fs.String("variant", "textured", "pipeline variant: textured or flat")
	spirv := fs.String("spirv", "", "write SPIR-V to this file instead of printing WGSL")
	dir := fs.String("dir", "", "override directory layered over the embedded shaders")
	if err := parseFlags(fs, args, 1); err != nil {
		return err
	}
	v, err := pipeline.ParseVariant(*variant)
	if err != nil {
		return err
	}

	src, err := shaders.NewLibrary(*dir).Load(fs.Arg(0))
	if err != nil {
		return err
	}
	wgsl, err := src.Specialize(v)
	if err != nil {
		return err
	}
	voxel.Logger().Debug("shader resolved", "name", src.Name, "includes", src.Includes,
		"push", src.Info.Push.String(), "variant", v.String())

	if *spirv == "" {
		_, err := io.WriteString(out, wgsl)
		return err
	}
	words, err := shaders.CompileSPIRV(wgsl)
	if err != nil {
		return err
	}
	if err := os.WriteFile(*spirv, shaders.SPIRVBytes(words), 0o644); err != nil { //nolint:gosec // shader output is not secret
		return err
	}
	fmt.Fprintf(out, "wrote %s (%d words)\n", *spirv, len(words))
	return nil
}
