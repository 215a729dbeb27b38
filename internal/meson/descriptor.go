// Package meson models and renders the godot-cpp meson.build descriptor.
package meson

import (
	"fmt"
	"strings"
)

// ConditionKind selects what a define block is keyed on.
type ConditionKind int

const (
	// Always applies unconditionally.
	Always ConditionKind = iota
	// BuildType applies when the meson buildtype starts with Value.
	BuildType
	// HostSystem applies when host_machine.system() equals Value.
	HostSystem
)

// Condition guards a block of compiler defines.
type Condition struct {
	Kind  ConditionKind
	Value string
}

// Expr returns the meson expression for the condition, or "" for Always.
func (c Condition) Expr() string {
	switch c.Kind {
	case BuildType:
		return fmt.Sprintf("get_option('buildtype').startswith(%s)", quote(c.Value))
	case HostSystem:
		return fmt.Sprintf("host_machine.system() == %s", quote(c.Value))
	default:
		return ""
	}
}

// DefineBlock is a list of preprocessor defines added under one condition.
type DefineBlock struct {
	Condition Condition
	// Defines are macro names without the -D prefix.
	Defines []string
}

// Descriptor is everything the rendered meson.build depends on.
type Descriptor struct {
	Project string
	// Version is the numeric engine release, e.g. "4.3".
	Version            string
	DefaultOptions     []string
	SuppressedWarnings []string
	DefineBlocks       []DefineBlock
	// Generator is the bindings generator script run at configure time when
	// GeneratedMarker does not exist yet.
	Generator string
	Schemas   []string
	// OutputDir is the generator's output directory argument.
	OutputDir       string
	GeneratedMarker string
	IncludeDirs     []string
	// GeneratedSources and CoreSources are paths relative to the descriptor.
	GeneratedSources []string
	CoreSources      []string
}

// DefaultDescriptor returns the descriptor for a godot-cpp release with the
// source lists left empty.
func DefaultDescriptor(version string) Descriptor {
	return Descriptor{
		Project:            "godot-cpp",
		Version:            version,
		DefaultOptions:     []string{"cpp_std=c++17", "cpp_eh=none"},
		SuppressedWarnings: []string{"-U_LIBCPP_ENABLE_ASSERTIONS"},
		DefineBlocks: []DefineBlock{
			{Condition: Condition{Kind: Always}, Defines: []string{"GDEXTENSION", "HOT_RELOAD_ENABLED", "THREADS_ENABLED"}},
			{Condition: Condition{Kind: BuildType, Value: "debug"}, Defines: []string{"DEBUG_ENABLED", "DEBUG_METHODS_ENABLED"}},
			{Condition: Condition{Kind: HostSystem, Value: "darwin"}, Defines: []string{"MACOS_ENABLED", "UNIX_ENABLED"}},
			{Condition: Condition{Kind: HostSystem, Value: "linux"}, Defines: []string{"LINUX_ENABLED", "UNIX_ENABLED"}},
			{Condition: Condition{Kind: HostSystem, Value: "windows"}, Defines: []string{"WINDOWS_ENABLED"}},
		},
		Generator:       "./meson-bindings-generator.py",
		Schemas:         []string{"gdextension/extension_api.json"},
		OutputDir:       ".",
		GeneratedMarker: "gen/include/",
		IncludeDirs:     []string{"include/", "gdextension/", "gen/include/"},
	}
}

// Validate reports descriptors that would render an unusable build file.
func (d Descriptor) Validate() error {
	if d.Project == "" {
		return fmt.Errorf("meson descriptor: project name is required")
	}

	if d.Version == "" {
		return fmt.Errorf("meson descriptor: version is required")
	}

	if d.Generator == "" || d.OutputDir == "" {
		return fmt.Errorf("meson descriptor: generator and output directory are required")
	}

	if len(d.IncludeDirs) == 0 {
		return fmt.Errorf("meson descriptor: at least one include directory is required")
	}

	return nil
}

// quote returns s as a single-quoted meson string literal.
func quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `'`, `\'`)

	return "'" + s + "'"
}
