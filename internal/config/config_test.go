package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c := Default()

	require.NoError(t, c.Validate())
	assert.Equal(t, "godotengine/godot-cpp", c.Bindings.Slug())
	assert.Equal(t, "https://github.com/godotengine/godot-cpp", c.Bindings.URL)
	assert.Empty(t, c.Bindings.Archive)
	assert.Equal(t, "godotengine/godot", c.Engine.Slug())
	assert.Empty(t, c.Engine.URL)
	assert.Equal(t,
		"https://github.com/godotengine/godot/archive/refs/tags/4.3-stable.tar.gz",
		c.Engine.ArchiveURL("4.3-stable"))
	assert.Equal(t, PrecisionSingle, c.Generator.Precision)
	assert.Equal(t, StringOrArray{"gdextension/extension_api.json"}, c.Generator.Schemas)
	assert.Equal(t, []string{"include", "gen/include"}, c.Adaptor.IncludeRoots)
}

func TestParse(t *testing.T) {
	data := `
engine:
  owner: godotengine
  name: godot
  url: https://github.com/godotengine/godot
  work_dir: /tmp/engine
generator:
  command: [python3, -u]
  schemas:
    - gdextension/extension_api.json
    - gdextension/gdextension_interface.h
  precision: double
corpus:
  extensions: [.h]
`

	c, err := Parse([]byte(data))
	require.NoError(t, err)

	assert.Equal(t, "1", c.Version)
	assert.Equal(t, "https://github.com/godotengine/godot", c.Engine.URL)
	assert.Empty(t, c.Engine.Archive, "explicit url must not pick up the default archive")
	assert.Equal(t, "/tmp/engine", c.Engine.WorkDir)
	assert.Equal(t, StringOrArray{"python3", "-u"}, c.Generator.Command)
	assert.Len(t, c.Generator.Schemas, 2)
	assert.Equal(t, PrecisionDouble, c.Generator.Precision)
	assert.Equal(t, []string{".h"}, c.Corpus.Extensions)
	assert.Equal(t, []string{"thirdparty"}, c.Corpus.ExcludeDirs)
}

func TestParseScalarSchema(t *testing.T) {
	c, err := Parse([]byte("generator:\n  schemas: api.json\n"))
	require.NoError(t, err)
	assert.Equal(t, StringOrArray{"api.json"}, c.Generator.Schemas)
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"precision", "generator:\n  precision: half\n", "generator.precision"},
		{"archive without tag", "engine:\n  archive: https://example.com/godot.tar.gz\n", "must contain {tag}"},
		{"bad yaml", "generator: [", "failed to parse config YAML"},
		{"version", "version: \"2\"\n", `unsupported config version "2"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wrap.yaml")
	require.NoError(t, os.WriteFile(path, []byte("meson:\n  output: out/meson.build\n"), 0o644))

	c, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "out/meson.build", c.Meson.Output)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestMarshalRoundTripKeepsDefaults(t *testing.T) {
	data, err := Marshal(Default())
	require.NoError(t, err)

	c, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}
