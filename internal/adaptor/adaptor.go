// Package adaptor writes the module adaptor headers: one small header per
// binding header, forwarding to the engine header it maps to.
package adaptor

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"godot-cpp-wrap/internal/match"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// AggregateHeaderName is the file name of the binding distribution's
// entry-point header.
const AggregateHeaderName = "godot.hpp"

// AggregateHeader is written for the entry-point header when it has no
// engine counterpart. In a module build it pulls in the module registration
// header instead of re-exporting the whole binding namespace.
const AggregateHeader = `// GENERATED FILE
#pragma once

#include <modules/register_module_types.h>

namespace godot
{
template <typename... Args>
void print_error(Args... p_args) {
	Variant variants[sizeof...(p_args)] = { p_args... };
	print_error(stringify_variants(Span(variants)));
}
}
`

// ErrIncompleteResults is returned when the result set does not cover every
// binding header.
var ErrIncompleteResults = errors.New("incomplete mapping results")

// File is one generated adaptor header.
type File struct {
	// Path is the slash-separated path relative to the output directory.
	Path    string
	Content []byte
}

// Content returns the adaptor header body for r.
func Content(r match.Result) []byte {
	switch {
	case r.Matched():
		return []byte("#include <" + r.Engine.Rel + ">\n")
	case r.Binding.FileName() == AggregateHeaderName:
		return []byte(AggregateHeader)
	default:
		return []byte{}
	}
}

// Shadowed records a binding header whose adaptor path was already taken by
// a header from an earlier include root.
type Shadowed struct {
	Path    string
	Kept    string
	Dropped string
}

// Build returns the adaptor files for a result set. expected is the number
// of binding headers the set must cover. When two headers share an adaptor
// path the first one in result order is kept and the other is reported as
// shadowed.
func Build(set *match.ResultSet, expected int) ([]File, []Shadowed, error) {
	if set == nil || len(set.Results) != expected {
		got := 0
		if set != nil {
			got = len(set.Results)
		}

		return nil, nil, fmt.Errorf("%w: %d results for %d headers", ErrIncompleteResults, got, expected)
	}

	var (
		files    = make([]File, 0, len(set.Results))
		shadowed []Shadowed
		seen     = make(map[string]string, len(set.Results))
	)

	for _, r := range set.Results {
		p := path.Clean(r.Binding.Rel)
		if kept, ok := seen[p]; ok {
			shadowed = append(shadowed, Shadowed{Path: p, Kept: kept, Dropped: r.Binding.Path})
			continue
		}

		seen[p] = r.Binding.Path
		files = append(files, File{Path: p, Content: Content(r)})
	}

	return files, shadowed, nil
}

// WriteFiles clears outputDir and writes every file below it.
func WriteFiles(files []File, outputDir string) error {
	if err := os.RemoveAll(outputDir); err != nil {
		return fmt.Errorf("clearing output directory: %w", err)
	}

	if err := os.MkdirAll(outputDir, dirPerm); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	for _, file := range files {
		outputPath := filepath.Join(outputDir, filepath.FromSlash(file.Path))

		if err := os.MkdirAll(filepath.Dir(outputPath), dirPerm); err != nil {
			return fmt.Errorf("creating directory for %s: %w", file.Path, err)
		}

		if err := os.WriteFile(outputPath, file.Content, filePerm); err != nil {
			return fmt.Errorf("writing file %s: %w", file.Path, err)
		}
	}

	return nil
}

// Emit builds the adaptor files for set and writes them to outputDir.
func Emit(set *match.ResultSet, expected int, outputDir string) ([]File, []Shadowed, error) {
	files, shadowed, err := Build(set, expected)
	if err != nil {
		return nil, nil, err
	}

	if err := WriteFiles(files, outputDir); err != nil {
		return nil, nil, err
	}

	return files, shadowed, nil
}
