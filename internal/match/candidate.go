package match

import (
	"errors"
	"log/slog"
	"strings"

	"godot-cpp-wrap/internal/bindings"
	"godot-cpp-wrap/internal/corpus"
)

//go:generate go tool stringer -type=Method -linecomment

// Method records which search step produced a Result.
type Method int

const (
	MethodNone        Method = iota // none
	MethodDeclaration               // declaration
	MethodTypedef                   // typedef
	MethodFileName                  // filename
)

// Result pairs a binding header with the engine header it maps to.
// Engine is nil when the header is unmatched.
type Result struct {
	Binding   bindings.Header
	Candidate Candidate
	Engine    *corpus.Header
	Method    Method
	// Pattern is the literal pattern or typedef text that matched, if any.
	Pattern string
}

// Matched reports whether an engine header was found.
func (r Result) Matched() bool {
	return r.Engine != nil
}

// ResultSet is the complete set of results for one mapping run: exactly one
// Result per binding header, in binding header order.
type ResultSet struct {
	Results []Result
	// Corpus is the corpus the results refer into.
	Corpus *corpus.Corpus
}

// Unmatched returns the results without an engine header.
func (s *ResultSet) Unmatched() []Result {
	var out []Result

	for _, r := range s.Results {
		if !r.Matched() {
			out = append(out, r)
		}
	}

	return out
}

// Mapper searches a corpus for the engine header of each binding header.
type Mapper struct {
	corpus *corpus.Corpus
}

// NewMapper returns a Mapper over c.
func NewMapper(c *corpus.Corpus) *Mapper {
	return &Mapper{corpus: c}
}

// ErrNoCorpus is returned when mapping without a corpus.
var ErrNoCorpus = errors.New("no header corpus")

// MapAll maps every header and returns one Result per header.
func (m *Mapper) MapAll(headers []bindings.Header) (*ResultSet, error) {
	if m.corpus == nil {
		return nil, ErrNoCorpus
	}

	set := &ResultSet{Results: make([]Result, 0, len(headers)), Corpus: m.corpus}
	for _, h := range headers {
		r := m.Map(h)
		slog.Debug("mapped header", "header", h.Rel, "method", r.Method, "engine", engineRel(r))
		set.Results = append(set.Results, r)
	}

	return set, nil
}

// Map resolves one binding header. The search order is:
// 1. literal declaration patterns, first header in path order wins;
// 2. typedef declarations, first header in path order wins;
// 3. an engine header named <base>.h anywhere in the corpus.
func (m *Mapper) Map(h bindings.Header) Result {
	c := NewCandidate(h.Name())
	r := Result{Binding: h, Candidate: c}

	patterns := Patterns(c)
	for e := range m.corpus.All {
		for _, p := range patterns {
			if strings.Contains(e.Text, p) {
				r.Engine, r.Method, r.Pattern = e, MethodDeclaration, strings.TrimPrefix(p, "\n")
				return r
			}
		}
	}

	typedef := TypedefPattern(c)
	for e := range m.corpus.All {
		if loc := typedef.FindStringIndex(e.Text); loc != nil {
			r.Engine, r.Method, r.Pattern = e, MethodTypedef, e.Text[loc[0]:loc[1]]
			return r
		}
	}

	if e, ok := m.corpus.ByFileName(c.Base + ".h"); ok {
		r.Engine, r.Method = e, MethodFileName
		return r
	}

	return r
}

func engineRel(r Result) string {
	if r.Engine == nil {
		return ""
	}

	return r.Engine.Rel
}
