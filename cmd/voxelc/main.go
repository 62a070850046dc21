// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Command voxelc inspects the voxel vertex format, shaders and meshes.
//
// Usage:
//
//	voxelc [-log-level debug] <command> [flags] [args]
//
// Commands:
//
//	decode w0 w1                          decode a packed vertex
//	encode x y z corner tex ao0 ao1 ao2 ao3  pack a vertex
//	shaders [-variant flat] [-spirv out.spv] name
//	mesh [-seed n] [-chunks n] [-workers n]
//	render [-config voxel.toml] [-width w] [-height h]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"time"

	"github.com/charmbracelet/log"

	"github.com/gogpu/voxel"
)

type command struct {
	summary string
	run     func(ctx context.Context, args []string, out io.Writer) error
}

var commands = map[string]command{
	"decode":  {"decode a packed vertex", runDecode},
	"encode":  {"pack a vertex", runEncode},
	"shaders": {"print specialized WGSL or write SPIR-V", runShaders},
	"mesh":    {"mesh generated terrain and print statistics", runMesh},
	"render":  {"record one frame on the noop device", runRender},
}

// errUsage marks errors already reported as usage.
var errUsage = errors.New("usage")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("voxelc", flag.ContinueOnError)
	fs.SetOutput(stderr)
	level := fs.String("log-level", "info", "log level: debug, info, warn, error")
	fs.Usage = func() { usage(fs, stderr) }
	if err := fs.Parse(args); err != nil {
		return 2
	}

	logger, err := newLogger(stderr, *level)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	voxel.SetLogger(slog.New(logger))

	if fs.NArg() == 0 {
		usage(fs, stderr)
		return 2
	}
	name := fs.Arg(0)
	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(stderr, "voxelc: unknown command %q\n", name)
		usage(fs, stderr)
		return 2
	}
	if err := cmd.run(ctx, fs.Args()[1:], stdout); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintln(stderr, "voxelc:", err)
			return 2
		}
		logger.Error(name+" failed", "err", err)
		return 1
	}
	return 0
}

func newLogger(w io.Writer, level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("voxelc: %w", err)
	}
	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Prefix:          "voxelc",
	}), nil
}

func usage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "usage: voxelc [flags] <command> [args]")
	fmt.Fprintln(w, "\ncommands:")
	names := make([]string, 0, len(commands))
	for n := range commands {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		fmt.Fprintf(w, "  %-8s %s\n", n, commands[n].summary)
	}
	fmt.Fprintln(w, "\nflags:")
	fs.PrintDefaults()
}

// newFlagSet returns a subcommand flag set that reports errors instead of
// exiting.
func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet("voxelc "+name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

// parseFlags parses args and requires exactly n positional arguments, or at
// least -n when n is negative.
func parseFlags(fs *flag.FlagSet, args []string, n int) error {
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}
	switch {
	case n >= 0 && fs.NArg() != n:
		return fmt.Errorf("%w: %s wants %d arguments, got %d", errUsage, fs.Name(), n, fs.NArg())
	case n < 0 && fs.NArg() < -n:
		return fmt.Errorf("%w: %s wants at least %d arguments", errUsage, fs.Name(), -n)
	}
	return nil
}
