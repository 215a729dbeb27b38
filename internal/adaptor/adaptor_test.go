package adaptor

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"godot-cpp-wrap/internal/bindings"
	"godot-cpp-wrap/internal/corpus"
	"godot-cpp-wrap/internal/match"
)

func resultSet(t *testing.T) (*match.ResultSet, int) {
	t.Helper()

	c := corpus.New("engine", []corpus.Header{
		corpus.NewHeader("engine/core/object/ref_counted.h", "core/object/ref_counted.h",
			"class RefCounted : public Object {\n"),
	})
	headers := []bindings.Header{
		{Path: "cpp/gen/include/godot_cpp/classes/ref_counted.hpp", Root: "cpp/gen/include", Rel: "godot_cpp/classes/ref_counted.hpp"},
		{Path: "cpp/include/godot_cpp/variant/variant.hpp", Root: "cpp/include", Rel: "godot_cpp/variant/variant.hpp"},
		{Path: "cpp/include/godot_cpp/godot.hpp", Root: "cpp/include", Rel: "godot_cpp/godot.hpp"},
	}

	set, err := match.NewMapper(c).MapAll(headers)
	require.NoError(t, err)

	return set, len(headers)
}

func readTree(t *testing.T, root string) map[string]string {
	t.Helper()

	files := map[string]string{}
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}

		data, err := os.ReadFile(p)
		if err != nil {
			return err
		}

		rel, _ := filepath.Rel(root, p)
		files[filepath.ToSlash(rel)] = string(data)

		return nil
	})
	require.NoError(t, err)

	return files
}

func TestEmit(t *testing.T) {
	set, n := resultSet(t)
	out := filepath.Join(t.TempDir(), "godot_cpp_module_adaptor")

	files, shadowed, err := Emit(set, n, out)
	require.NoError(t, err)
	require.Len(t, files, 3)
	assert.Empty(t, shadowed)

	assert.Equal(t, map[string]string{
		"godot_cpp/classes/ref_counted.hpp": "#include <core/object/ref_counted.h>\n",
		"godot_cpp/variant/variant.hpp":     "",
		"godot_cpp/godot.hpp":               AggregateHeader,
	}, readTree(t, out))
}

func TestEmitClearsStaleOutputAndIsIdempotent(t *testing.T) {
	set, n := resultSet(t)
	out := t.TempDir()

	stale := filepath.Join(out, "godot_cpp", "classes", "removed_class.hpp")
	require.NoError(t, os.MkdirAll(filepath.Dir(stale), 0o755))
	require.NoError(t, os.WriteFile(stale, []byte("#include <old.h>\n"), 0o644))

	_, _, err := Emit(set, n, out)
	require.NoError(t, err)

	first := readTree(t, out)
	assert.NotContains(t, first, "godot_cpp/classes/removed_class.hpp")

	_, _, err = Emit(set, n, out)
	require.NoError(t, err)
	assert.Equal(t, first, readTree(t, out))
}

func TestAggregateHeader(t *testing.T) {
	assert.True(t, strings.HasPrefix(AggregateHeader, "// GENERATED FILE\n#pragma once\n"))
	assert.Contains(t, AggregateHeader, "#include <modules/register_module_types.h>\n")
	assert.Contains(t, AggregateHeader, "namespace godot\n{\n")
	assert.True(t, strings.HasSuffix(AggregateHeader, "}\n}\n"))
}

func TestContentMatchedAggregateForwards(t *testing.T) {
	engine := corpus.NewHeader("engine/core/godot.h", "core/godot.h", "")
	r := match.Result{
		Binding: bindings.Header{Rel: "godot_cpp/godot.hpp"},
		Engine:  &engine,
		Method:  match.MethodFileName,
	}

	assert.Equal(t, "#include <core/godot.h>\n", string(Content(r)))
}

func TestBuildIncomplete(t *testing.T) {
	set, n := resultSet(t)

	_, _, err := Build(set, n+1)
	require.ErrorIs(t, err, ErrIncompleteResults)

	_, _, err = Build(nil, 0)
	require.ErrorIs(t, err, ErrIncompleteResults)
}

func TestBuildKeepsFirstRootOnSharedPath(t *testing.T) {
	set := &match.ResultSet{Results: []match.Result{
		{Binding: bindings.Header{Path: "a/include/godot_cpp/x.hpp", Rel: "godot_cpp/x.hpp"}},
		{Binding: bindings.Header{Path: "a/include/godot_cpp/y.hpp", Rel: "godot_cpp/y.hpp"}},
		{Binding: bindings.Header{Path: "a/gen/include/godot_cpp/x.hpp", Rel: "godot_cpp/x.hpp"}},
	}}

	files, shadowed, err := Build(set, 3)
	require.NoError(t, err)

	require.Len(t, files, 2)
	assert.Equal(t, "godot_cpp/x.hpp", files[0].Path)
	assert.Equal(t, "godot_cpp/y.hpp", files[1].Path)
	assert.Equal(t, []Shadowed{{
		Path:    "godot_cpp/x.hpp",
		Kept:    "a/include/godot_cpp/x.hpp",
		Dropped: "a/gen/include/godot_cpp/x.hpp",
	}}, shadowed)
}
