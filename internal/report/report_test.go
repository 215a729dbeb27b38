package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"godot-cpp-wrap/internal/bindings"
	"godot-cpp-wrap/internal/corpus"
	"godot-cpp-wrap/internal/match"
)

func TestNew(t *testing.T) {
	c := corpus.New("engine", []corpus.Header{
		corpus.NewHeader("engine/core/object/ref_counted.h", "core/object/ref_counted.h", "class RefCounted : public Object {\n"),
		corpus.NewHeader("engine/core/variant/variant.h", "core/variant/variant.h", "// no declaration\n"),
	})
	set, err := match.NewMapper(c).MapAll([]bindings.Header{
		{Rel: "godot_cpp/classes/ref_counted.hpp"},
		{Rel: "godot_cpp/variant/variants.hpp"},
	})
	require.NoError(t, err)

	r := New("godot-4.3-stable", "4.3-stable", set)

	assert.Equal(t, Summary{Total: 2, Unmatched: 1, ByMethod: map[string]int{"declaration": 1, "none": 1}}, r.Summary)
	assert.Equal(t, Entry{
		Header:     "godot_cpp/classes/ref_counted.hpp",
		Identifier: "RefCounted",
		Engine:     "core/object/ref_counted.h",
		Method:     "declaration",
		Pattern:    "class refcounted :",
	}, r.Entries[0])
	assert.Equal(t, []string{"variant"}, r.Entries[1].Suggestions)
	assert.Empty(t, r.Entries[1].Engine)
}

func TestWriteFile(t *testing.T) {
	r := &Report{
		Bindings: "godot-4.3-stable",
		Engine:   "4.3-stable",
		Summary:  Summary{Total: 1, ByMethod: map[string]int{"filename": 1}},
		Entries:  []Entry{{Header: "godot_cpp/foo.hpp", Identifier: "Foo", Engine: "servers/foo.h", Method: "filename"}},
	}

	path := filepath.Join(t.TempDir(), "out", "mapping.yaml")
	require.NoError(t, WriteFile(r, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(data, &doc))
	assert.Equal(t, "godot-4.3-stable", doc["bindings"])
	assert.Contains(t, string(data), "engine: servers/foo.h")
	assert.NotContains(t, string(data), "pattern:")
}
