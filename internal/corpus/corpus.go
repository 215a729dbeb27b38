// Package corpus loads the engine's header files into memory for textual
// search.
//
// A Corpus is immutable once built. Headers are ordered by their
// corpus-relative path, which fixes the first-match-wins order the mapper
// relies on.
package corpus

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
)

// Header is one engine header file.
type Header struct {
	// Path is the file system path the header was read from.
	Path string
	// Rel is the slash-separated path relative to the corpus root.
	Rel string
	// Name is the file name without extension.
	Name string
	// Text is the case-folded content, prefixed with a newline so that a
	// declaration on the first line is still preceded by one.
	Text string
}

// FileName returns the base file name including its extension.
func (h *Header) FileName() string {
	return path.Base(h.Rel)
}

// Corpus is an immutable, path-ordered set of headers.
type Corpus struct {
	root    string
	headers []Header
	byFile  map[string]int
}

// Options select which files under the root are loaded.
type Options struct {
	// ExcludeDirs are directory names skipped wherever they occur.
	ExcludeDirs []string
	// ExcludeRoots are directories skipped only directly under the root.
	ExcludeRoots []string
	// Extensions are the header file extensions to load, e.g. ".h".
	Extensions []string
}

// Load reads every matching header below root.
func Load(root string, opts Options) (*Corpus, error) {
	var headers []Header

	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}

		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if p == root {
				return nil
			}

			if slices.Contains(opts.ExcludeDirs, d.Name()) ||
				(!strings.Contains(rel, "/") && slices.Contains(opts.ExcludeRoots, d.Name())) {
				return filepath.SkipDir
			}

			return nil
		}

		if !slices.Contains(opts.Extensions, filepath.Ext(p)) {
			return nil
		}

		data, err := os.ReadFile(p)
		if err != nil {
			return err
		}

		headers = append(headers, NewHeader(p, rel, string(data)))

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("loading headers from %s: %w", root, err)
	}

	return New(root, headers), nil
}

// NewHeader builds a Header from raw file content.
func NewHeader(filePath, rel, content string) Header {
	base := path.Base(rel)

	return Header{
		Path: filePath,
		Rel:  rel,
		Name: strings.TrimSuffix(base, path.Ext(base)),
		Text: "\n" + strings.ToLower(content),
	}
}

// New builds a Corpus from headers, ordering them by Rel.
func New(root string, headers []Header) *Corpus {
	sorted := slices.Clone(headers)
	slices.SortStableFunc(sorted, func(a, b Header) int {
		return strings.Compare(a.Rel, b.Rel)
	})

	byFile := make(map[string]int, len(sorted))
	for i := range sorted {
		name := sorted[i].FileName()
		if _, ok := byFile[name]; !ok {
			byFile[name] = i
		}
	}

	return &Corpus{root: root, headers: sorted, byFile: byFile}
}

// Root returns the directory the corpus was loaded from.
func (c *Corpus) Root() string {
	return c.root
}

// Len returns the number of headers.
func (c *Corpus) Len() int {
	return len(c.headers)
}

// All iterates over the headers in path order.
func (c *Corpus) All(yield func(*Header) bool) {
	for i := range c.headers {
		if !yield(&c.headers[i]) {
			return
		}
	}
}

// ByFileName returns the path-ordered first header with the given file name.
func (c *Corpus) ByFileName(name string) (*Header, bool) {
	i, ok := c.byFile[name]
	if !ok {
		return nil, false
	}

	return &c.headers[i], true
}

// Names returns the distinct header base names, in path order.
func (c *Corpus) Names() []string {
	seen := make(map[string]struct{}, len(c.headers))
	names := make([]string, 0, len(c.headers))

	for i := range c.headers {
		n := c.headers[i].Name
		if _, ok := seen[n]; ok {
			continue
		}

		seen[n] = struct{}{}
		names = append(names, n)
	}

	return names
}
