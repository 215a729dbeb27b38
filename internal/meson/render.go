package meson

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"
)

// Banner is the first line of every rendered descriptor.
const Banner = "# GENERATED FILE - DO NOT EDIT"

var funcs = template.FuncMap{
	"quote": quote,
	"list": func(items []string) string {
		quoted := make([]string, len(items))
		for i, s := range items {
			quoted[i] = quote(s)
		}

		return strings.Join(quoted, ", ")
	},
}

var buildTemplate = template.Must(template.New("meson.build").Funcs(funcs).Parse(Banner + `

project(
  {{quote .Project}},
  'cpp',
  version: {{quote .Version}},
  default_options: [{{list .DefaultOptions}}],
)

cpp_compiler = meson.get_compiler('cpp')
godot_precision = get_option('precision')

# Disable warning: https://github.com/mesonbuild/meson/issues/13978
warnings_to_suppress = [{{list .SuppressedWarnings}}]
foreach p : warnings_to_suppress
  if cpp_compiler.has_argument(p)
    add_project_arguments(p, language: 'cpp')
  endif
endforeach
{{range .DefineBlocks}}{{$expr := .Condition.Expr}}
{{if $expr}}if {{$expr}}
{{end}}godot_cpp_compiler_defines = [
{{range .Defines}}  {{quote (printf "-D%s" .)}},
{{end}}]
foreach p : godot_cpp_compiler_defines
  if cpp_compiler.has_argument(p)
    add_project_arguments(p, language: 'cpp')
  endif
endforeach
{{if $expr}}endif
{{end}}{{end}}
fs = import('fs')

# We need to check if code is already generated. It doesn't matter what you
# check - include directory or some generated file, as long as you can detect
# whether to run the bindings generator or not
if not fs.exists({{quote .GeneratedMarker}})
  message(f'Generating Godot classes by api.json. precison: @godot_precision@')
  run_command(
    {{quote .Generator}},
{{range .Schemas}}    {{quote .}},
{{end}}    {{quote .OutputDir}},
    godot_precision,
    check: true,
  )
endif

includes = include_directories(
{{range .IncludeDirs}}  {{quote .}},
{{end}})

generated_sources = [
{{range .GeneratedSources}}  {{quote .}},
{{end}}]

core_sources = [
{{range .CoreSources}}  {{quote .}},
{{end}}]

godot_cpp_lib = static_library(
  {{quote .Project}},
  core_sources + generated_sources,
  include_directories: includes,
  pic: true,
  gnu_symbol_visibility: 'hidden',
)

godot_cpp_dep = declare_dependency(include_directories: includes, link_with: godot_cpp_lib)
`))

// Render returns the meson.build text for d.
func Render(d Descriptor) ([]byte, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := buildTemplate.Execute(&buf, d); err != nil {
		return nil, fmt.Errorf("rendering meson.build: %w", err)
	}

	return buf.Bytes(), nil
}

// WriteFile renders d to path, creating the parent directory.
func WriteFile(d Descriptor, path string) error {
	data, err := Render(d)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	return nil
}
