package alconna

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevenshtein(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, levenshtein("abc", "abc"))
	assert.Equal(t, 1, levenshtein("test_fuzzy", "!test_fuzzy"))
	assert.Equal(t, 3, levenshtein("", "abc"))
	assert.Equal(t, 3, levenshtein("abc", ""))
	assert.Equal(t, 1, levenshtein("kitten", "sitten"))
}

func TestClosestChoice(t *testing.T) {
	t.Parallel()

	choice, dist := closestChoice("pign", []string{"ping", "pong", "help"})
	assert.Equal(t, "ping", choice)
	assert.Equal(t, 2, dist)
}

func TestClosestChoiceEmpty(t *testing.T) {
	t.Parallel()

	choice, dist := closestChoice("anything", nil)
	assert.Equal(t, "", choice)
	assert.Equal(t, 0, dist)
}

func TestFuzzyMatchWithinThreshold(t *testing.T) {
	t.Parallel()

	got, ok := fuzzyMatch("test_fuzzy", []string{"!test_fuzzy"})
	assert.True(t, ok)
	assert.Equal(t, "!test_fuzzy", got)
}

func TestFuzzyMatchBeyondThreshold(t *testing.T) {
	t.Parallel()

	_, ok := fuzzyMatch("completely_unrelated_string", []string{"x"})
	assert.False(t, ok)
}
