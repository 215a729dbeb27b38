package match

import (
	"strings"

	"github.com/golang-cz/textcase"
)

// Candidate holds the identifier forms searched for one binding header.
type Candidate struct {
	// Base is the header file name without extension, as written.
	Base string
	// Name is Base case-folded to lower.
	Name string
	// Compact is Name with underscores removed.
	Compact string
}

// NewCandidate derives the search names for a header base name.
// Examples:
//   - "ref_counted" -> {Name: "ref_counted", Compact: "refcounted"}
//   - "Variant" -> {Name: "variant", Compact: "variant"}
func NewCandidate(base string) Candidate {
	name := strings.ToLower(base)

	return Candidate{
		Base:    base,
		Name:    name,
		Compact: strings.ReplaceAll(name, "_", ""),
	}
}

// Forms returns Name and, when it differs, Compact.
func (c Candidate) Forms() []string {
	if c.Name == c.Compact {
		return []string{c.Name}
	}

	return []string{c.Name, c.Compact}
}

// Identifier returns the C++ class name the header most likely declares,
// e.g. "ref_counted" -> "RefCounted". Used for reporting only; matching is
// case-insensitive.
func (c Candidate) Identifier() string {
	return textcase.PascalCase(c.Base)
}
