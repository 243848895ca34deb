package match

import (
	"strings"
	"time"

	"encoreTrips/domain"
)

const (
	scoreExact          = 100
	scoreContainsWhole  = 80 // candidate contains the whole interest
	scoreContainedIn    = 60 // interest contains the whole candidate
	weightExactWords    = 50.0
	weightPartialWords  = 30.0
	fuzzyWordThreshold  = 0.8
	bonusShortInterest  = 10
	bonusCollaboration  = 15
	shortInterestMaxLen = 3

	aliasLearnTimeout = 5 * time.Second
)

// Score rates how well a candidate artist matches an interest value.
// Priority is the interest rank (lower = more important); it scales the
// similarity portion but not the flat bonuses.
func (m *Matcher) Score(interest, candidate string, priority int) int {
	base := similarity(interest, candidate)

	// fuzzy (non-exact) hits feed the alias learning step
	if base > 0 && base < scoreExact {
		m.learnAlias(Normalize(candidate), Normalize(interest))
	}

	score := float64(base) * domain.Interest{Priority: priority}.PriorityMultiplier()

	cleanInterest := Normalize(interest)
	if base > 0 && len(cleanInterest) <= shortInterestMaxLen {
		score += bonusShortInterest
	}
	if base > 0 && (hasCollabMarker(cleanInterest) || hasCollabMarker(Normalize(candidate))) {
		score += bonusCollaboration
	}

	return int(score)
}

// similarity is the raw 0-100 name similarity, before priority weighting
// and bonuses.
func similarity(interest, candidate string) int {
	a := Normalize(interest)
	b := Normalize(candidate)
	if a == "" || b == "" {
		return 0
	}

	if a == b || stripAccents(a) == stripAccents(b) {
		return scoreExact
	}

	if strings.Contains(b, a) {
		return scoreContainsWhole
	}
	if strings.Contains(a, b) {
		return scoreContainedIn
	}

	return wordLevelScore(a, b)
}

// wordLevelScore matches interest words against candidate words in three
// tiers: exact word, substring word, and fuzzy word (Levenshtein similarity
// above the threshold). Exact hits weigh 50, the weaker tiers 30, each
// scaled by coverage of the interest's words.
func wordLevelScore(interest, candidate string) int {
	interestWords := strings.Fields(interest)
	candidateWords := strings.Fields(candidate)
	if len(interestWords) == 0 || len(candidateWords) == 0 {
		return 0
	}

	exact := 0
	partial := 0
	for _, iw := range interestWords {
		bestExact := false
		bestPartial := false
		for _, cw := range candidateWords {
			if iw == cw {
				bestExact = true
				break
			}
			if strings.Contains(cw, iw) || strings.Contains(iw, cw) {
				bestPartial = true
				continue
			}
			if levenshteinSimilarity(iw, cw) > fuzzyWordThreshold {
				bestPartial = true
			}
		}
		if bestExact {
			exact++
		} else if bestPartial {
			partial++
		}
	}

	total := float64(len(interestWords))
	score := weightExactWords*(float64(exact)/total) + weightPartialWords*(float64(partial)/total)
	return int(score)
}

// levenshteinSimilarity maps edit distance into [0, 1], 1 meaning equal.
func levenshteinSimilarity(a, b string) float64 {
	if a == b {
		return 1
	}
	la, lb := len(a), len(b)
	if la == 0 || lb == 0 {
		return 0
	}

	dist := levenshtein(a, b)
	maxLen := la
	if lb > maxLen {
		maxLen = lb
	}
	return 1 - float64(dist)/float64(maxLen)
}

// levenshtein computes edit distance with a two-row DP.
func levenshtein(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = minInt(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(rb)]
}

func minInt(vals ...int) int {
	m := vals[0]
	for _, v := range vals[1:] {
		if v < m {
			m = v
		}
	}
	return m
}
