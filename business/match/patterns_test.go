package match

import (
	"context"
	"errors"
	"testing"

	"encoreTrips/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAliasRepo struct {
	aliases  []domain.ArtistAlias
	err      error
	recorded [][2]string
}

func (f *fakeAliasRepo) FindAliases(_ context.Context, name string, minConfidence float64) ([]domain.ArtistAlias, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []domain.ArtistAlias
	for _, a := range f.aliases {
		if a.PrimaryName == name && a.Confidence >= minConfidence {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAliasRepo) RecordMatch(_ context.Context, primaryName, aliasName string) error {
	f.recorded = append(f.recorded, [2]string{primaryName, aliasName})
	return nil
}

func TestGeneratePatternsThePrefixToggle(t *testing.T) {
	m := NewMatcher(nil, nil, nil)

	set := m.GeneratePatterns(context.Background(), "The Weeknd")
	assert.Contains(t, set.Patterns, "the weeknd")
	assert.Contains(t, set.Patterns, "weeknd")

	set = m.GeneratePatterns(context.Background(), "Weeknd")
	assert.Contains(t, set.Patterns, "the weeknd")
}

func TestGeneratePatternsAmpersandToggle(t *testing.T) {
	m := NewMatcher(nil, nil, nil)

	set := m.GeneratePatterns(context.Background(), "Mumford & Sons")
	assert.Contains(t, set.Patterns, "mumford & sons")
	assert.Contains(t, set.Patterns, "mumford and sons")
}

func TestGeneratePatternsAbbreviationSwap(t *testing.T) {
	m := NewMatcher(nil, nil, nil)

	set := m.GeneratePatterns(context.Background(), "Doctor Dog")
	assert.Contains(t, set.Patterns, "dr dog")

	set = m.GeneratePatterns(context.Background(), "Jonas Bros")
	assert.Contains(t, set.Patterns, "jonas brothers")
}

func TestGeneratePatternsCollaborationSplit(t *testing.T) {
	m := NewMatcher(nil, nil, nil)

	set := m.GeneratePatterns(context.Background(), "Santana ft. Rob Thomas")
	assert.Contains(t, set.Patterns, "santana")
	assert.Contains(t, set.Patterns, "rob thomas")
}

func TestGeneratePatternsKnownAliases(t *testing.T) {
	m := NewMatcher(nil, nil, nil)

	set := m.GeneratePatterns(context.Background(), "Guns N' Roses")
	assert.Contains(t, set.Aliases, "gnr")
	assert.Contains(t, set.Patterns, "guns and roses")
}

func TestGeneratePatternsAccentStripped(t *testing.T) {
	m := NewMatcher(nil, nil, nil)

	set := m.GeneratePatterns(context.Background(), "Beyoncé")
	assert.Contains(t, set.Patterns, "beyoncé")
	assert.Contains(t, set.Patterns, "beyonce")
}

func TestGeneratePatternsLearnedAliases(t *testing.T) {
	repo := &fakeAliasRepo{aliases: []domain.ArtistAlias{
		{PrimaryName: "the weeknd", AliasName: "Abel Tesfaye", Confidence: 0.7},
		{PrimaryName: "the weeknd", AliasName: "ignored", Confidence: 0.2},
	}}
	m := NewMatcher(repo, nil, nil)

	set := m.GeneratePatterns(context.Background(), "The Weeknd")
	assert.Contains(t, set.Aliases, "abel tesfaye")
	assert.NotContains(t, set.Aliases, "ignored")
}

func TestGeneratePatternsAliasRepoFailureIsSoft(t *testing.T) {
	repo := &fakeAliasRepo{err: errors.New("db down")}
	m := NewMatcher(repo, nil, nil)

	set := m.GeneratePatterns(context.Background(), "The Weeknd")
	require.NotEmpty(t, set.Patterns)
	assert.Contains(t, set.Patterns, "the weeknd")
}

func TestGeneratePatternsDeduplicates(t *testing.T) {
	m := NewMatcher(nil, nil, nil)

	set := m.GeneratePatterns(context.Background(), "weeknd")
	seen := make(map[string]int)
	for _, p := range set.Patterns {
		seen[p]++
	}
	for p, n := range seen {
		assert.Equal(t, 1, n, "pattern %q duplicated", p)
	}
}

func TestIsTribute(t *testing.T) {
	m := NewMatcher(nil, nil, nil)

	assert.True(t, m.IsTribute(context.Background(), "The Iron Maidens Tribute", nil))
	assert.True(t, m.IsTribute(context.Background(), "Pink Floyd Experience", nil))
	assert.False(t, m.IsTribute(context.Background(), "Iron Maiden", nil))
}

func TestIsTributeExactInterestExemption(t *testing.T) {
	m := NewMatcher(nil, nil, nil)

	interests := []domain.Interest{
		{Kind: domain.InterestArtist, Value: "The Pink Floyd Experience"},
	}
	assert.False(t, m.IsTribute(context.Background(), "The Pink Floyd Experience", interests))
}

func TestBestScoreKnownAlias(t *testing.T) {
	m := NewMatcher(nil, nil, nil)

	// direct scoring cannot see through the alias table
	assert.Equal(t, 0, m.Score("gnr", "Guns N' Roses", 1))

	got := m.BestScore(context.Background(), "gnr", "Guns N' Roses", 1)
	assert.Equal(t, scoreExact+bonusShortInterest, got)
}

func TestBestScoreLearnedAlias(t *testing.T) {
	repo := &fakeAliasRepo{aliases: []domain.ArtistAlias{
		{PrimaryName: "oasys", AliasName: "oasis", Confidence: 0.9},
	}}
	m := NewMatcher(repo, nil, nil)

	assert.Equal(t, 0, m.Score("oasis", "Oasys", 1))

	got := m.BestScore(context.Background(), "oasis", "Oasys", 1)
	assert.Equal(t, scoreExact, got)
}

func TestBestScoreFallsBackToDirect(t *testing.T) {
	m := NewMatcher(nil, nil, nil)

	direct := m.Score("Weeknd", "The Weeknd", 1)
	best := m.BestScore(context.Background(), "Weeknd", "The Weeknd", 1)
	assert.GreaterOrEqual(t, best, direct)

	assert.Equal(t, 0, m.BestScore(context.Background(), "Radiohead", "Dolly Parton", 1))
}
