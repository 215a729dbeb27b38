package meson

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderDefault(t *testing.T) {
	d := DefaultDescriptor("4.3")
	d.GeneratedSources = []string{"./gen/src/classes/node.cpp", "./gen/src/classes/object.cpp"}
	d.CoreSources = []string{"./src/godot.cpp"}

	data, err := Render(d)
	require.NoError(t, err)

	out := string(data)
	assert.True(t, strings.HasPrefix(out, Banner+"\n\nproject(\n  'godot-cpp',\n  'cpp',\n  version: '4.3',\n"))
	assert.Contains(t, out, "  default_options: ['cpp_std=c++17', 'cpp_eh=none'],\n")
	assert.Contains(t, out, "warnings_to_suppress = ['-U_LIBCPP_ENABLE_ASSERTIONS']\n")
	assert.Contains(t, out, "godot_cpp_compiler_defines = [\n  '-DGDEXTENSION',\n  '-DHOT_RELOAD_ENABLED',\n  '-DTHREADS_ENABLED',\n]\n")
	assert.Contains(t, out, "if get_option('buildtype').startswith('debug')\ngodot_cpp_compiler_defines = [\n  '-DDEBUG_ENABLED',\n")
	assert.Contains(t, out, "if host_machine.system() == 'darwin'\ngodot_cpp_compiler_defines = [\n  '-DMACOS_ENABLED',\n  '-DUNIX_ENABLED',\n]\n")
	// four conditional define blocks plus the generator check
	assert.Equal(t, 5, strings.Count(out, "\nendif\n"))
	assert.Contains(t, out, "if not fs.exists('gen/include/')\n")
	assert.Contains(t, out, "    './meson-bindings-generator.py',\n    'gdextension/extension_api.json',\n    '.',\n    godot_precision,\n")
	assert.Contains(t, out, "includes = include_directories(\n  'include/',\n  'gdextension/',\n  'gen/include/',\n)\n")
	assert.Contains(t, out, "generated_sources = [\n  './gen/src/classes/node.cpp',\n  './gen/src/classes/object.cpp',\n]\n")
	assert.Contains(t, out, "core_sources = [\n  './src/godot.cpp',\n]\n")
	assert.True(t, strings.HasSuffix(out, "godot_cpp_dep = declare_dependency(include_directories: includes, link_with: godot_cpp_lib)\n"))
}

func TestRenderEmptySources(t *testing.T) {
	data, err := Render(DefaultDescriptor("4.3"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "generated_sources = [\n]\n")
}

func TestRenderInvalid(t *testing.T) {
	_, err := Render(Descriptor{Project: "godot-cpp"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "version is required")

	d := DefaultDescriptor("4.3")
	d.IncludeDirs = nil
	_, err = Render(d)
	require.Error(t, err)

	d = DefaultDescriptor("4.3")
	d.OutputDir = ""
	_, err = Render(d)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "output directory")
}

func TestRenderGeneratorInvocation(t *testing.T) {
	d := DefaultDescriptor("4.3")
	d.Generator = "./bindings_generator.py"
	d.Schemas = []string{"gdextension/extension_api.json", "gdextension/extra_api.json"}
	d.OutputDir = "out"

	data, err := Render(d)
	require.NoError(t, err)
	assert.Contains(t, string(data), "  run_command(\n"+
		"    './bindings_generator.py',\n"+
		"    'gdextension/extension_api.json',\n"+
		"    'gdextension/extra_api.json',\n"+
		"    'out',\n"+
		"    godot_precision,\n")
}

func TestQuote(t *testing.T) {
	assert.Equal(t, `'it\'s'`, quote("it's"))
	assert.Equal(t, `'a\\b'`, quote(`a\b`))
}

func TestConditionExpr(t *testing.T) {
	assert.Empty(t, Condition{}.Expr())
	assert.Equal(t, "host_machine.system() == 'linux'", Condition{Kind: HostSystem, Value: "linux"}.Expr())
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "godot-cpp", "meson.build")
	require.NoError(t, WriteFile(DefaultDescriptor("4.3"), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), Banner))
}
