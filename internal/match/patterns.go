package match

import (
	"regexp"
	"strings"
)

// attribute is the declaration attribute the engine puts on value types,
// as in "struct [[nodiscard]] Vector2 {".
const attribute = "[[nodiscard]]"

// Patterns returns the literal declaration patterns for c, each anchored by
// the newline preceding the declaration. The text they are matched against
// must be lower-cased.
func Patterns(c Candidate) []string {
	var patterns []string

	for _, n := range c.Forms() {
		patterns = append(patterns,
			"\nclass "+n+" :",
			"\nclass "+n+" {",
			"\nclass "+attribute+" "+n+" {",
			"\nstruct "+n+" {",
			"\nstruct "+attribute+" "+n+" {",
		)
	}

	patterns = append(patterns,
		"\nusing "+c.Compact+" = ",
		"\nnamespace "+c.Compact+" {",
	)

	return patterns
}

// TypedefPattern matches a typedef declaring either form of c, such as
// "typedef uint64_t objectid;" or "typedef struct foo *foo_ptr;".
func TypedefPattern(c Candidate) *regexp.Regexp {
	forms := c.Forms()
	for i, f := range forms {
		forms[i] = regexp.QuoteMeta(f)
	}

	return regexp.MustCompile(`\btypedef\s[^;]*[\s*&](?:` + strings.Join(forms, "|") + `)\s*;`)
}
