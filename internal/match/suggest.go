package match

import (
	"cmp"
	"slices"
	"strings"

	"github.com/agnivade/levenshtein"
)

// maxSuggestDistance bounds how different a suggested name may be, as a
// fraction of the candidate's length.
const maxSuggestDistance = 0.34

// Suggest returns up to n engine header names closest to c by edit
// distance over the compact form, nearest first, ties broken by name.
func Suggest(c Candidate, names []string, n int) []string {
	type scored struct {
		name string
		dist int
	}

	limit := int(float64(len(c.Compact))*maxSuggestDistance) + 1

	var found []scored

	for _, name := range names {
		compact := strings.ReplaceAll(strings.ToLower(name), "_", "")

		d := levenshtein.ComputeDistance(c.Compact, compact)
		if d <= limit {
			found = append(found, scored{name, d})
		}
	}

	slices.SortFunc(found, func(a, b scored) int {
		return cmp.Or(cmp.Compare(a.dist, b.dist), strings.Compare(a.name, b.name))
	})

	out := make([]string, 0, min(n, len(found)))
	for _, s := range found[:min(n, len(found))] {
		out = append(out, s.name)
	}

	return out
}
