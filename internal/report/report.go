// Package report records a mapping run as YAML so the chosen engine header
// of every binding header can be reviewed.
package report

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"godot-cpp-wrap/internal/match"
)

// suggestionCount is the number of nearest names listed for unmatched headers.
const suggestionCount = 3

// Report is the YAML document written after mapping.
type Report struct {
	Bindings string  `yaml:"bindings"`
	Engine   string  `yaml:"engine"`
	Summary  Summary `yaml:"summary"`
	Entries  []Entry `yaml:"entries"`
}

// Summary counts results per method.
type Summary struct {
	Total     int            `yaml:"total"`
	Unmatched int            `yaml:"unmatched"`
	ByMethod  map[string]int `yaml:"by_method"`
}

// Entry describes one Mapping Result.
type Entry struct {
	Header      string   `yaml:"header"`
	Identifier  string   `yaml:"identifier"`
	Engine      string   `yaml:"engine,omitempty"`
	Method      string   `yaml:"method"`
	Pattern     string   `yaml:"pattern,omitempty"`
	Suggestions []string `yaml:"suggestions,omitempty"`
}

// New builds a report for set. bindingsTag and engineTag name the fetched
// versions.
func New(bindingsTag, engineTag string, set *match.ResultSet) *Report {
	r := &Report{
		Bindings: bindingsTag,
		Engine:   engineTag,
		Summary:  Summary{ByMethod: map[string]int{}},
	}

	var names []string
	if set.Corpus != nil {
		names = set.Corpus.Names()
	}

	for _, res := range set.Results {
		e := Entry{
			Header:     res.Binding.Rel,
			Identifier: res.Candidate.Identifier(),
			Method:     res.Method.String(),
			Pattern:    res.Pattern,
		}

		if res.Matched() {
			e.Engine = res.Engine.Rel
		} else {
			e.Suggestions = match.Suggest(res.Candidate, names, suggestionCount)
			r.Summary.Unmatched++
		}

		r.Summary.Total++
		r.Summary.ByMethod[e.Method]++
		r.Entries = append(r.Entries, e)
	}

	return r
}

// Marshal serializes a Report to YAML.
func Marshal(r *Report) ([]byte, error) {
	return yaml.Marshal(r)
}

// WriteFile writes r to path.
func WriteFile(r *Report, path string) error {
	data, err := Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write report %s: %w", path, err)
	}

	return nil
}
