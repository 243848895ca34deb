package match

import (
	"context"
	"strings"

	"encoreTrips/domain"
	"encoreTrips/pkg/cache"
	"encoreTrips/pkg/logger"
)

// AliasRepository reads and learns artist alias pairs.
type AliasRepository interface {
	FindAliases(ctx context.Context, name string, minConfidence float64) ([]domain.ArtistAlias, error)
	RecordMatch(ctx context.Context, primaryName, aliasName string) error
}

// MetadataProvider fetches enrichment data for an artist from the metadata
// collaborator.
type MetadataProvider interface {
	FetchMetadata(ctx context.Context, artist string) (domain.ArtistMetadata, error)
}

type Matcher struct {
	aliasRepo AliasRepository
	metadata  MetadataProvider
	cache     cache.Cache
}

func NewMatcher(aliasRepo AliasRepository, metadata MetadataProvider, c cache.Cache) *Matcher {
	return &Matcher{
		aliasRepo: aliasRepo,
		metadata:  metadata,
		cache:     c,
	}
}

// knownAliases is the hardcoded alias table for acts whose common spellings
// diverge from their billing.
var knownAliases = map[string][]string{
	"the weeknd":             {"weeknd"},
	"guns n roses":           {"guns and roses", "gnr"},
	"red hot chili peppers":  {"rhcp", "chili peppers"},
	"florence + the machine": {"florence and the machine", "florence machine"},
	"tyler the creator":      {"tyler creator"},
	"ac dc":                  {"acdc", "ac-dc"},
	"p nk":                   {"pink"},
	"ke ha":                  {"kesha"},
	"mumford & sons":         {"mumford and sons"},
	"panic at the disco":     {"panic! at the disco"},
	"system of a down":       {"soad"},
	"dave matthews band":     {"dmb"},
}

// abbreviationSwaps are spelled-out/abbreviated pairs applied in both
// directions during pattern generation.
var abbreviationSwaps = [][2]string{
	{"mister", "mr"},
	{"saint", "st"},
	{"doctor", "dr"},
	{"junior", "jr"},
	{"brothers", "bros"},
}

// PatternSet is every spelling of one artist name worth matching against.
type PatternSet struct {
	Patterns []string
	Aliases  []string
}

// GeneratePatterns unions the cleaned name, the original, DB-learned
// aliases, the hardcoded table, "The "-prefix toggling, "&"/"and" toggling,
// abbreviation swaps, collaboration-marker normalization and accent-stripped
// forms, deduplicated.
func (m *Matcher) GeneratePatterns(ctx context.Context, name string) PatternSet {
	cleaned := Normalize(name)

	seen := make(map[string]struct{})
	var patterns []string
	add := func(p string) {
		p = strings.TrimSpace(p)
		if p == "" {
			return
		}
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		patterns = append(patterns, p)
	}

	add(cleaned)
	add(strings.ToLower(strings.TrimSpace(name)))

	// accent-stripped form
	add(stripAccents(cleaned))

	// "The "-prefix toggling
	if rest, ok := strings.CutPrefix(cleaned, "the "); ok {
		add(rest)
	} else {
		add("the " + cleaned)
	}

	// "&" / "and" toggling
	if strings.Contains(cleaned, " & ") {
		add(strings.ReplaceAll(cleaned, " & ", " and "))
	}
	if strings.Contains(cleaned, " and ") {
		add(strings.ReplaceAll(cleaned, " and ", " & "))
	}

	// abbreviation swaps
	for _, swap := range abbreviationSwaps {
		long, short := swap[0], swap[1]
		if containsWord(cleaned, long) {
			add(replaceWord(cleaned, long, short))
		}
		if containsWord(cleaned, short) {
			add(replaceWord(cleaned, short, long))
		}
	}

	// collaboration-marker normalization: each act separately plus a
	// canonical "a feat b" form
	if hasCollabMarker(cleaned) {
		acts := splitCollaborators(cleaned)
		for _, act := range acts {
			add(act)
		}
		if len(acts) >= 2 {
			add(strings.Join(acts, " feat "))
		}
	}

	// hardcoded alias table, keyed on any pattern so far
	var aliases []string
	for _, p := range append([]string(nil), patterns...) {
		if known, ok := knownAliases[p]; ok {
			for _, a := range known {
				add(a)
				aliases = append(aliases, a)
			}
		}
	}

	// DB-learned aliases above the confidence floor
	if m.aliasRepo != nil {
		learned, err := m.aliasRepo.FindAliases(ctx, cleaned, domain.MinAliasConfidence)
		if err != nil {
			logger.Warn("failed to load learned aliases", "artist", cleaned, "error", err)
		}
		for _, al := range learned {
			alias := Normalize(al.AliasName)
			add(alias)
			aliases = append(aliases, alias)
		}
	}

	return PatternSet{Patterns: patterns, Aliases: aliases}
}

// BestScore expands the candidate into its pattern set and keeps the best
// Score of the interest against any spelling, so an interest like "gnr"
// still hits an event billed "Guns N' Roses" through the alias table, and
// DB-learned aliases pay off at ranking time.
func (m *Matcher) BestScore(ctx context.Context, interest, candidate string, priority int) int {
	best := m.Score(interest, candidate, priority)
	if best >= scoreExact {
		return best
	}

	for _, p := range m.GeneratePatterns(ctx, candidate).Patterns {
		if s := m.Score(interest, p, priority); s > best {
			best = s
		}
	}
	return best
}

// learnAlias records a successful fuzzy match so the pair gains confidence
// over time. Fire-and-forget: failures only log.
func (m *Matcher) learnAlias(primary, alias string) {
	if m.aliasRepo == nil || primary == alias {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), aliasLearnTimeout)
		defer cancel()

		if err := m.aliasRepo.RecordMatch(ctx, primary, alias); err != nil {
			logger.Warn("failed to record alias match", "primary", primary, "alias", alias, "error", err)
		}
	}()
}

func containsWord(s, word string) bool {
	for _, w := range strings.Fields(s) {
		if w == word {
			return true
		}
	}
	return false
}

func replaceWord(s, old, new string) string {
	words := strings.Fields(s)
	for i, w := range words {
		if w == old {
			words[i] = new
		}
	}
	return strings.Join(words, " ")
}
