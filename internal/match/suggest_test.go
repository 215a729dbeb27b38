package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuggest(t *testing.T) {
	names := []string{"variant_utility", "variant", "array", "ref_counted", "varient", "object"}

	assert.Equal(t, []string{"variant", "varient"}, Suggest(NewCandidate("variants"), names, 3))
	assert.Equal(t, []string{"ref_counted"}, Suggest(NewCandidate("RefCounted"), names, 3))
	assert.Equal(t, []string{"variant"}, Suggest(NewCandidate("variants"), names, 1))
	assert.Empty(t, Suggest(NewCandidate("rendering_server"), names, 3))
}
