package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"The Weeknd":             "the weeknd",
		"  Guns N' Roses  ":      "guns n roses",
		"Florence + The Machine": "florence + the machine",
		"AC/DC":                  "ac dc",
		"Tyler, The Creator":     "tyler the creator",
		"P!nk":                   "p nk",
	}

	for in, want := range cases {
		assert.Equal(t, want, Normalize(in), "input %q", in)
	}
}

func TestStripAccents(t *testing.T) {
	assert.Equal(t, "beyonce", stripAccents("beyoncé"))
	assert.Equal(t, "sigur ros", stripAccents("sigur rós"))
}

func TestScoreExactMatch(t *testing.T) {
	m := NewMatcher(nil, nil, nil)

	assert.Equal(t, scoreExact, m.Score("The Weeknd", "The Weeknd", 1))
	// symmetric in argument order
	assert.Equal(t, scoreExact, m.Score("Taylor Swift", "taylor swift", 1))
	assert.Equal(t, scoreExact, m.Score("taylor swift", "Taylor Swift", 1))
	// normalization and accents should not break an exact hit
	assert.Equal(t, scoreExact, m.Score("Beyoncé", "beyonce", 1))
}

func TestScoreContainment(t *testing.T) {
	m := NewMatcher(nil, nil, nil)

	// candidate contains the whole interest
	assert.Equal(t, scoreContainsWhole, m.Score("Weeknd", "The Weeknd", 1))
	// interest contains the whole candidate
	assert.Equal(t, scoreContainedIn, m.Score("The Weeknd", "Weeknd", 1))
}

func TestScorePriorityScalesSimilarityOnly(t *testing.T) {
	m := NewMatcher(nil, nil, nil)

	top := m.Score("Weeknd", "The Weeknd", 1)
	third := m.Score("Weeknd", "The Weeknd", 3)

	assert.Equal(t, int(float64(scoreContainsWhole)*0.8), third)
	assert.Greater(t, top, third)
}

func TestScorePriorityFloor(t *testing.T) {
	m := NewMatcher(nil, nil, nil)

	// priority 20 would scale below zero without the 0.5 floor
	got := m.Score("The Weeknd", "The Weeknd", 20)
	assert.Equal(t, scoreExact/2, got)
}

func TestScoreShortInterestBonus(t *testing.T) {
	m := NewMatcher(nil, nil, nil)

	// "RZA" is at the short-name threshold, any hit gains the bonus
	with := m.Score("rza", "rza", 1)
	assert.Equal(t, scoreExact+bonusShortInterest, with)
}

func TestScoreCollaborationBonus(t *testing.T) {
	m := NewMatcher(nil, nil, nil)

	plain := m.Score("Santana", "Santana", 1)
	collab := m.Score("Santana", "Santana feat Rob Thomas", 1)

	assert.Equal(t, scoreExact, plain)
	// containment plus the collaboration marker bonus
	assert.Equal(t, scoreContainsWhole+bonusCollaboration, collab)
}

func TestScoreNoMatch(t *testing.T) {
	m := NewMatcher(nil, nil, nil)

	assert.Equal(t, 0, m.Score("Radiohead", "Dolly Parton", 1))
	assert.Equal(t, 0, m.Score("", "The Weeknd", 1))
}

func TestWordLevelScoreFuzzy(t *testing.T) {
	// one-letter typo inside a word should still count as a partial hit
	got := wordLevelScore("fleetwood mac", "fleetwod mac")
	assert.Greater(t, got, 0)

	// exact word hits outscore fuzzy ones
	exact := wordLevelScore("pearl jam", "pearl jam band")
	assert.Greater(t, exact, got)
}

func TestLevenshtein(t *testing.T) {
	assert.Equal(t, 0, levenshtein("abba", "abba"))
	assert.Equal(t, 1, levenshtein("abba", "abbas"))
	assert.Equal(t, 3, levenshtein("kitten", "sitting"))
}

func TestLevenshteinSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, levenshteinSimilarity("oasis", "oasis"), 1e-9)
	assert.InDelta(t, 0.8, levenshteinSimilarity("oasis", "oasys"), 1e-9)
	assert.InDelta(t, 0.0, levenshteinSimilarity("", "oasis"), 1e-9)
}
