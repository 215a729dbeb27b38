// Package config holds the settings of a godot-cpp-wrap run.
//
// Every field has a default reproducing the behaviour of the original wrap
// script, so running without a config file is the common case. A YAML file
// may override any subset of the fields.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Precision keywords accepted by the bindings generator.
const (
	PrecisionSingle = "single"
	PrecisionDouble = "double"
)

// SchemaVersion is the only configuration file version understood.
const SchemaVersion = "1"

// TagPlaceholder is replaced by the resolved tag in archive URL templates.
const TagPlaceholder = "{tag}"

// Config is the root of the configuration file.
type Config struct {
	Version   string     `yaml:"version"`
	API       API        `yaml:"api"`
	Bindings  Repository `yaml:"bindings"`
	Engine    Repository `yaml:"engine"`
	Generator Generator  `yaml:"generator"`
	Meson     Meson      `yaml:"meson"`
	Adaptor   Adaptor    `yaml:"adaptor"`
	Corpus    Corpus     `yaml:"corpus"`
}

// API configures the remote tag listing endpoint.
type API struct {
	// BaseURL is the GitHub REST API root.
	BaseURL string `yaml:"base_url"`
}

// Repository describes one fetched repository.
type Repository struct {
	Owner string `yaml:"owner"`
	Name  string `yaml:"name"`
	// URL is the clone URL.
	URL string `yaml:"url,omitempty"`
	// Archive is an optional release archive URL template containing {tag}.
	// When set the repository is downloaded and extracted instead of cloned.
	Archive string `yaml:"archive,omitempty"`
	// WorkDir is the temporary checkout directory, removed after use.
	WorkDir string `yaml:"work_dir"`
}

// Generator describes the external bindings generator invocation.
type Generator struct {
	// Script is copied into the bindings checkout before running.
	Script string `yaml:"script"`
	// Command is the interpreter (or executable) the script is run with.
	Command StringOrArray `yaml:"command"`
	// Schemas are the API schema files, relative to the checkout.
	Schemas StringOrArray `yaml:"schemas"`
	// OutputDir is the generator output root, relative to the checkout.
	OutputDir string `yaml:"output_dir"`
	Precision string `yaml:"precision"`
}

// Meson configures the rendered build descriptor.
type Meson struct {
	Output string `yaml:"output"`
}

// Adaptor configures the module adaptor headers.
type Adaptor struct {
	OutputDir string `yaml:"output_dir"`
	// IncludeRoots are the binding include trees, relative to the checkout.
	IncludeRoots []string `yaml:"include_roots"`
	// Exclude lists directory or file names whose headers are never mapped.
	Exclude []string `yaml:"exclude"`
}

// Corpus configures which engine headers are searched.
type Corpus struct {
	// ExcludeDirs are directory names skipped anywhere in the engine tree.
	ExcludeDirs []string `yaml:"exclude_dirs"`
	// ExcludeRoots are top-level directories skipped in the engine tree.
	ExcludeRoots []string `yaml:"exclude_roots"`
	Extensions   []string `yaml:"extensions"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	var c Config

	applyDefaults(&c)

	return &c
}

// LoadFile loads and parses a YAML configuration file from the given path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a Config and validates it.
func Parse(data []byte) (*Config, error) {
	var c Config

	err := yaml.Unmarshal(data, &c)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	applyDefaults(&c)

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return &c, nil
}

// Marshal serializes a Config to YAML.
func Marshal(c *Config) ([]byte, error) {
	return yaml.Marshal(c)
}

// Validate reports settings the pipeline cannot run with.
func (c *Config) Validate() error {
	var errs []error

	if c.Version != SchemaVersion {
		errs = append(errs, fmt.Errorf("unsupported config version %q (expected %q)", c.Version, SchemaVersion))
	}

	switch c.Generator.Precision {
	case PrecisionSingle, PrecisionDouble:
	default:
		errs = append(errs, fmt.Errorf("generator.precision must be %q or %q, got %q",
			PrecisionSingle, PrecisionDouble, c.Generator.Precision))
	}

	for _, r := range []struct {
		key  string
		repo Repository
	}{{"bindings", c.Bindings}, {"engine", c.Engine}} {
		if r.repo.Owner == "" || r.repo.Name == "" {
			errs = append(errs, fmt.Errorf("%s: owner and name are required", r.key))
		}

		if r.repo.URL == "" && r.repo.Archive == "" {
			errs = append(errs, fmt.Errorf("%s: one of url or archive is required", r.key))
		}

		if r.repo.Archive != "" && !strings.Contains(r.repo.Archive, TagPlaceholder) {
			errs = append(errs, fmt.Errorf("%s: archive must contain %s", r.key, TagPlaceholder))
		}
	}

	if c.Generator.Command.IsEmpty() {
		errs = append(errs, errors.New("generator.command must not be empty"))
	}

	if c.Generator.Schemas.IsEmpty() {
		errs = append(errs, errors.New("generator.schemas must not be empty"))
	}

	return errors.Join(errs...)
}

// ArchiveURL expands the archive template for the given tag.
func (r Repository) ArchiveURL(tag string) string {
	return strings.ReplaceAll(r.Archive, TagPlaceholder, tag)
}

// Slug returns "owner/name".
func (r Repository) Slug() string {
	return r.Owner + "/" + r.Name
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(c *Config) {
	if c.Version == "" {
		c.Version = SchemaVersion
	}

	if c.API.BaseURL == "" {
		c.API.BaseURL = "https://api.github.com"
	}

	defaultRepo(&c.Bindings, Repository{
		Owner:   "godotengine",
		Name:    "godot-cpp",
		URL:     "https://github.com/godotengine/godot-cpp",
		WorkDir: ".tmp_godot_cpp",
	})
	defaultRepo(&c.Engine, Repository{
		Owner:   "godotengine",
		Name:    "godot",
		Archive: "https://github.com/godotengine/godot/archive/refs/tags/" + TagPlaceholder + ".tar.gz",
		WorkDir: ".tmp_godot",
	})

	g := &c.Generator
	if g.Script == "" {
		g.Script = "godot-cpp/meson-bindings-generator.py"
	}

	if g.Command.IsEmpty() {
		g.Command = StringOrArray{"python3"}
	}

	if g.Schemas.IsEmpty() {
		g.Schemas = StringOrArray{"gdextension/extension_api.json"}
	}

	if g.OutputDir == "" {
		g.OutputDir = "."
	}

	if g.Precision == "" {
		g.Precision = PrecisionSingle
	}

	if c.Meson.Output == "" {
		c.Meson.Output = "godot-cpp/meson.build"
	}

	if c.Adaptor.OutputDir == "" {
		c.Adaptor.OutputDir = "godot-cpp/godot_cpp_module_adaptor"
	}

	if len(c.Adaptor.IncludeRoots) == 0 {
		c.Adaptor.IncludeRoots = []string{"include", "gen/include"}
	}

	if len(c.Adaptor.Exclude) == 0 {
		c.Adaptor.Exclude = []string{"test", "gdextension", "version.hpp"}
	}

	if len(c.Corpus.ExcludeDirs) == 0 {
		c.Corpus.ExcludeDirs = []string{"thirdparty"}
	}

	if len(c.Corpus.ExcludeRoots) == 0 {
		c.Corpus.ExcludeRoots = []string{"drivers", "platform"}
	}

	if len(c.Corpus.Extensions) == 0 {
		c.Corpus.Extensions = []string{".h", ".hpp"}
	}
}

// defaultRepo fills empty fields of r from def. A repository that names an
// archive keeps an empty URL so it is downloaded rather than cloned.
func defaultRepo(r *Repository, def Repository) {
	if r.Owner == "" {
		r.Owner = def.Owner
	}

	if r.Name == "" {
		r.Name = def.Name
	}

	if r.URL == "" && r.Archive == "" {
		r.URL = def.URL
		r.Archive = def.Archive
	}

	if r.WorkDir == "" {
		r.WorkDir = def.WorkDir
	}
}
