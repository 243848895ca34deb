package match

import (
	"context"
	"time"

	"encoreTrips/domain"
	"encoreTrips/pkg/cache"
	"encoreTrips/pkg/logger"
	"encoreTrips/pkg/metrics"
)

const (
	bonusPerGenreOverlap  = 15
	bonusVerified         = 10
	bonusCollaborationHit = 25
	bonusSocialCap        = 15
	bonusSocialPerEntry   = 5

	metadataRefreshTimeout = 10 * time.Second
)

// LookupMetadata is cache-only and never blocks on the provider: a miss
// fires a detached refresh and returns ok=false so the caller proceeds with
// the base score.
func (m *Matcher) LookupMetadata(ctx context.Context, artist string) (domain.ArtistMetadata, bool) {
	if m.cache == nil {
		return domain.ArtistMetadata{}, false
	}

	key := cache.KeyArtistMetadata(Normalize(artist))

	var meta domain.ArtistMetadata
	hit, err := m.cache.Get(ctx, key, &meta)
	if err != nil {
		logger.Warn("metadata cache read failed", "artist", artist, "error", err)
		hit = false
	}

	if hit {
		metrics.CacheHits.WithLabelValues("artistmeta").Inc()
		return meta, true
	}

	metrics.CacheMisses.WithLabelValues("artistmeta").Inc()
	m.refreshMetadata(artist)
	return domain.ArtistMetadata{}, false
}

// refreshMetadata fetches and caches metadata in the background. Errors are
// logged, never propagated to the scoring path that triggered the refresh.
func (m *Matcher) refreshMetadata(artist string) {
	if m.metadata == nil || m.cache == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), metadataRefreshTimeout)
		defer cancel()

		meta, err := m.metadata.FetchMetadata(ctx, artist)
		if err != nil {
			logger.Warn("metadata refresh failed", "artist", artist, "error", err)
			return
		}

		key := cache.KeyArtistMetadata(Normalize(artist))
		if err := m.cache.Set(ctx, key, meta, cache.TTLArtistMetadata); err != nil {
			logger.Warn("metadata cache write failed", "artist", artist, "error", err)
		}
	}()
}

// ScoreWithMetadata augments the base score with metadata-driven bonuses.
// With no cached metadata the base score is returned untouched.
func (m *Matcher) ScoreWithMetadata(ctx context.Context, interest domain.Interest, candidate string, interestGenres []string) int {
	base := m.BestScore(ctx, interest.Value, candidate, interest.Priority)

	meta, ok := m.LookupMetadata(ctx, candidate)
	if !ok {
		return base
	}

	score := base

	// genre overlap between the user's genre interests and the artist
	overlap := genreOverlap(interestGenres, meta.Genres)
	score += overlap * bonusPerGenreOverlap

	// popularity contribution scaled by how complete the metadata record is
	score += int(float64(meta.Popularity) / 10.0 * meta.QualityScore)

	if meta.Verified {
		score += bonusVerified
	}
	if meta.IsCollaboration && hasCollabMarker(Normalize(interest.Value)) {
		score += bonusCollaborationHit
	}

	social := len(meta.SocialPlatforms) * bonusSocialPerEntry
	if social > bonusSocialCap {
		social = bonusSocialCap
	}
	score += social

	return score
}

func genreOverlap(a, b []string) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	set := make(map[string]struct{}, len(a))
	for _, g := range a {
		set[Normalize(g)] = struct{}{}
	}

	n := 0
	for _, g := range b {
		if _, ok := set[Normalize(g)]; ok {
			n++
		}
	}
	return n
}
