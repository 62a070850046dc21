// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package shaders loads the WGSL sources of the voxel pipelines, resolves
// their include directives and specializes them per pipeline variant.
//
// A source may start with directive lines:
//
//	//!use world        prepend world.wgsl (recursively, once per source)
//	//!push chunk_origin  per-draw data consumed by the shader
//
// Placeholders of the form {{name}} are replaced by specialization
// constants before the module is handed to the device.
package shaders

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/gogpu/voxel/pipeline"
)

//go:embed wgsl/*.wgsl
var embedded embed.FS

// Ext is the file extension of shader sources.
const Ext = ".wgsl"

// Known shader names.
const (
	World   = "world"
	Block   = "block"
	Overlay = "overlay"
	Outline = "outline"
)

// Library errors.
var (
	// ErrNotFound is returned when no source exists for a name.
	ErrNotFound = errors.New("shaders: source not found")

	// ErrIncludeCycle is returned when //!use directives form a cycle.
	ErrIncludeCycle = errors.New("shaders: include cycle")

	// ErrUnresolvedConstant is returned when a placeholder has no value.
	ErrUnresolvedConstant = errors.New("shaders: unresolved constant")

	// ErrBadDirective is returned for a malformed //! directive.
	ErrBadDirective = errors.New("shaders: bad directive")
)

const (
	useDirective  = "//!use"
	pushDirective = "//!push"
)

var pushShapes = map[string]pipeline.PushShape{
	"tint":         pipeline.PushTint,
	"chunk_origin": pipeline.PushChunkOrigin,
	"position":     pipeline.PushPosition,
}

// Source is a shader with its includes resolved.
type Source struct {
	// Name is the file name without extension.
	Name string

	// Template is the full WGSL text with placeholders still in place.
	Template string

	// Includes lists every source pulled in by //!use, in order.
	Includes []string

	// Info describes what the shader consumes.
	Info pipeline.ShaderInfo
}

// DependsOn reports whether s is name or includes it.
func (s *Source) DependsOn(name string) bool {
	if s.Name == name {
		return true
	}
	for _, inc := range s.Includes {
		if inc == name {
			return true
		}
	}
	return false
}

// Specialize substitutes the variant's constants into the template.
func (s *Source) Specialize(v pipeline.Variant) (string, error) {
	if v != pipeline.VariantTextured && !s.Info.Specializable {
		return "", fmt.Errorf("%s: %w", s.Name, pipeline.ErrVariantUnsupported)
	}
	return Specialize(s.Template, v.Constants())
}

// Library reads shader sources from an optional override directory layered
// over the embedded set.
type Library struct {
	fsys fs.FS
	dir  string
}

// NewLibrary returns a library. If dir is empty only the embedded sources
// are used; otherwise files in dir take precedence.
func NewLibrary(dir string) *Library {
	base, _ := fs.Sub(embedded, "wgsl")
	if dir == "" {
		return &Library{fsys: base}
	}
	return &Library{fsys: layeredFS{os.DirFS(dir), base}, dir: dir}
}

// NewLibraryFS returns a library reading from fsys alone.
func NewLibraryFS(fsys fs.FS) *Library {
	return &Library{fsys: fsys}
}

// Dir returns the override directory, or "".
func (l *Library) Dir() string { return l.dir }

// Load resolves name and everything it includes.
func (l *Library) Load(name string) (*Source, error) {
	src := &Source{Name: name, Info: pipeline.ShaderInfo{Name: name}}
	var b strings.Builder
	seen := map[string]bool{}
	if err := l.resolve(name, src, &b, seen, nil); err != nil {
		return nil, err
	}
	src.Template = b.String()
	src.Info.Specializable = strings.Contains(src.Template, placeholder(pipeline.IsBlackConstant))
	return src, nil
}

// resolve appends name's includes and then its body to b. Only the top-level
// source's //!push directive is recorded.
func (l *Library) resolve(name string, src *Source, b *strings.Builder, seen map[string]bool, stack []string) error {
	for _, s := range stack {
		if s == name {
			return fmt.Errorf("%w: %s -> %s", ErrIncludeCycle, strings.Join(stack, " -> "), name)
		}
	}
	data, err := fs.ReadFile(l.fsys, name+Ext)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return fmt.Errorf("read %s: %w", name, err)
	}
	stack = append(stack, name)

	body := string(data)
	for {
		line, rest, _ := strings.Cut(body, "\n")
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "//!") {
			break
		}
		body = rest

		fields := strings.Fields(line)
		switch fields[0] {
		case useDirective:
			if len(fields) < 2 {
				return fmt.Errorf("%w: %s: empty %s", ErrBadDirective, name, useDirective)
			}
			for _, inc := range fields[1:] {
				if seen[inc] {
					continue
				}
				if err := l.resolve(inc, src, b, seen, stack); err != nil {
					return err
				}
				seen[inc] = true
				src.Includes = append(src.Includes, inc)
			}
		case pushDirective:
			if len(fields) != 2 {
				return fmt.Errorf("%w: %s: %q", ErrBadDirective, name, line)
			}
			shape, ok := pushShapes[fields[1]]
			if !ok {
				return fmt.Errorf("%w: %s: unknown push shape %q", ErrBadDirective, name, fields[1])
			}
			if len(stack) == 1 {
				src.Info.Push = shape
			}
		default:
			return fmt.Errorf("%w: %s: %q", ErrBadDirective, name, line)
		}
	}

	b.WriteString(body)
	if !strings.HasSuffix(body, "\n") {
		b.WriteByte('\n')
	}
	return nil
}

func placeholder(name string) string { return "{{" + name + "}}" }

// Specialize replaces every {{name}} in template with consts[name]. A
// placeholder without a value is an error.
func Specialize(template string, consts map[string]string) (string, error) {
	var b strings.Builder
	rest := template
	for {
		i := strings.Index(rest, "{{")
		if i < 0 {
			b.WriteString(rest)
			return b.String(), nil
		}
		j := strings.Index(rest[i:], "}}")
		if j < 0 {
			return "", fmt.Errorf("%w: unterminated placeholder", ErrUnresolvedConstant)
		}
		name := strings.TrimSpace(rest[i+2 : i+j])
		v, ok := consts[name]
		if !ok {
			return "", fmt.Errorf("%w: %s", ErrUnresolvedConstant, name)
		}
		b.WriteString(rest[:i])
		b.WriteString(v)
		rest = rest[i+j+2:]
	}
}

// layeredFS opens from top first and falls back to bottom.
type layeredFS struct {
	top, bottom fs.FS
}

func (l layeredFS) Open(name string) (fs.File, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
	}
	f, err := l.top.Open(path.Clean(name))
	if err == nil {
		return f, nil
	}
	return l.bottom.Open(name)
}
