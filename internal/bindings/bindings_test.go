package bindings

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"godot-cpp-wrap/internal/testutil"
)

const repoTree = `
-- include/godot_cpp/godot.hpp --
-- include/godot_cpp/core/version.hpp --
-- include/godot_cpp/core/object.hpp --
-- include/godot_cpp/variant/variant.hpp --
-- include/godot_cpp/test/test_stub.hpp --
-- gen/include/godot_cpp/classes/ref_counted.hpp --
-- gen/include/godot_cpp/classes/notes.txt --
-- gdextension/gdextension_interface.h --
-- include/gdextension/interface.h --
`

func TestEnumerate(t *testing.T) {
	repo := testutil.TempTree(t, repoTree)

	headers, err := Enumerate(repo, []string{"include", "gen/include", "missing/include"},
		[]string{"test", "gdextension", "version.hpp"})
	require.NoError(t, err)

	var rels []string
	for _, h := range headers {
		rels = append(rels, h.Rel)
	}

	assert.Equal(t, []string{
		"godot_cpp/core/object.hpp",
		"godot_cpp/godot.hpp",
		"godot_cpp/variant/variant.hpp",
		"godot_cpp/classes/ref_counted.hpp",
	}, rels)

	last := headers[len(headers)-1]
	assert.Equal(t, filepath.Join(repo, "gen", "include"), last.Root)
	assert.Equal(t, filepath.Join(repo, "gen", "include", "godot_cpp", "classes", "ref_counted.hpp"), last.Path)
	assert.Equal(t, "ref_counted", last.Name())
	assert.Equal(t, "ref_counted.hpp", last.FileName())
}
