// Package bindings enumerates the headers of a godot-cpp checkout.
package bindings

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"slices"
	"strings"
)

// Extensions are the file extensions treated as binding headers.
var Extensions = []string{".hpp", ".h"}

// Header is one binding header.
type Header struct {
	// Path is the file system path of the header.
	Path string
	// Root is the include root the header was found under.
	Root string
	// Rel is the slash-separated path relative to Root.
	Rel string
}

// FileName returns the base file name including its extension.
func (h Header) FileName() string {
	return path.Base(h.Rel)
}

// Name returns the file name without extension.
func (h Header) Name() string {
	base := h.FileName()
	return strings.TrimSuffix(base, path.Ext(base))
}

// Enumerate lists the headers below each include root of repoDir, root by
// root in the given order and in lexical order within a root. Directories
// and files named in exclude are skipped. Missing roots are ignored.
func Enumerate(repoDir string, roots, exclude []string) ([]Header, error) {
	var headers []Header

	for _, r := range roots {
		root := filepath.Join(repoDir, filepath.FromSlash(r))

		err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				if p == root && errors.Is(err, fs.ErrNotExist) {
					return filepath.SkipDir
				}

				return err
			}

			if slices.Contains(exclude, d.Name()) && p != root {
				if d.IsDir() {
					return filepath.SkipDir
				}

				return nil
			}

			if d.IsDir() || !slices.Contains(Extensions, filepath.Ext(p)) {
				return nil
			}

			rel, err := filepath.Rel(root, p)
			if err != nil {
				return err
			}

			headers = append(headers, Header{Path: p, Root: root, Rel: filepath.ToSlash(rel)})

			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("enumerating binding headers in %s: %w", root, err)
		}
	}

	return headers, nil
}
