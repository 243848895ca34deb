package match

import (
	"context"
	"regexp"

	"encoreTrips/domain"
)

// tributePatterns flag acts billed as tribute/cover performances.
var tributePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\btribute\b`),
	regexp.MustCompile(`\bcover band\b`),
	regexp.MustCompile(`\bcovers\b`),
	regexp.MustCompile(`\brevival\b`),
	regexp.MustCompile(`\bexperience\b`),
	regexp.MustCompile(`\bcelebrating the music of\b`),
	regexp.MustCompile(`\bsalute to\b`),
	regexp.MustCompile(`\bsongs of\b`),
	regexp.MustCompile(`\bplays\b.*\blive\b`),
}

// IsTribute excludes an artist whose name or metadata marks it as a tribute
// act, unless the user explicitly listed that exact artist as an interest.
func (m *Matcher) IsTribute(ctx context.Context, artist string, userInterests []domain.Interest) bool {
	cleaned := Normalize(artist)

	for _, in := range userInterests {
		if in.Kind == domain.InterestArtist && Normalize(in.Value) == cleaned {
			return false
		}
	}

	for _, re := range tributePatterns {
		if re.MatchString(cleaned) {
			return true
		}
	}

	if meta, ok := m.LookupMetadata(ctx, artist); ok && meta.IsTribute {
		return true
	}

	return false
}
