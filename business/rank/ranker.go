package rank

import (
	"context"
	"sort"
	"strings"
	"time"

	"encoreTrips/business/match"
	"encoreTrips/domain"
)

// UserProfile is the per-user context the ranker scores against.
type UserProfile struct {
	UserID                uint
	HomeCity              string
	HomeState             string
	PreferredDestinations []string
	AvgTicketPrice        float64 // historical average price the user pays
	Feedback              []domain.FeedbackSignal
}

// ScoredEvent is an event with its final priority score and the metadata
// quality used for tie-breaking.
type ScoredEvent struct {
	Event           domain.Event
	Score           float64
	MetadataQuality float64
}

type Ranker struct {
	matcher *match.Matcher
	weights Weights
}

func NewRanker(matcher *match.Matcher, weights Weights) *Ranker {
	return &Ranker{
		matcher: matcher,
		weights: weights,
	}
}

// Rank orders candidate events by descending priority score. Ties break on
// metadata quality, then earlier event date.
func (r *Ranker) Rank(ctx context.Context, events []domain.Event, user UserProfile, interests []domain.Interest) []ScoredEvent {
	scored := make([]ScoredEvent, 0, len(events))
	genreInterests := interestValues(interests, domain.InterestGenre)

	for _, ev := range events {
		meta, hasMeta := r.matcher.LookupMetadata(ctx, ev.Artist)

		w := r.weights
		s := w.ArtistMatch*r.artistMatchScore(ctx, ev, interests, genreInterests) +
			w.LocationProximity*locationScore(ev, user) +
			w.DateProximity*dateProximityScore(ev.EventDate) +
			w.PriceValue*priceValueScore(ev, user.AvgTicketPrice) +
			w.Popularity*popularityScore(meta, hasMeta) +
			w.MetadataQuality*meta.QualityScore*100 +
			w.SeasonalFactor*seasonalScore(ev.EventDate) +
			w.UserBehavior*behaviorScore(ev, user.Feedback)

		s += r.flatBonuses(ev, meta, hasMeta, interests)

		scored = append(scored, ScoredEvent{
			Event:           ev,
			Score:           s,
			MetadataQuality: meta.QualityScore,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		if scored[i].MetadataQuality != scored[j].MetadataQuality {
			return scored[i].MetadataQuality > scored[j].MetadataQuality
		}
		return scored[i].Event.EventDate.Before(scored[j].Event.EventDate)
	})

	return scored
}

// artistMatchScore takes the best matcher score over the user's artist
// interests, capped at 100 so a heavily-bonused match cannot dominate the
// weighted sum.
func (r *Ranker) artistMatchScore(ctx context.Context, ev domain.Event, interests []domain.Interest, genreInterests []string) float64 {
	best := 0
	for _, in := range interests {
		if in.Kind != domain.InterestArtist {
			continue
		}
		if s := r.matcher.ScoreWithMetadata(ctx, in, ev.Artist, genreInterests); s > best {
			best = s
		}
	}
	if best > 100 {
		best = 100
	}
	return float64(best)
}

// locationScore is the distance-to-score curve. Without coordinates the
// curve collapses to city/state buckets, plus a flat bonus when the venue is
// on the user's preferred-destination list.
func locationScore(ev domain.Event, user UserProfile) float64 {
	score := 40.0
	switch {
	case user.HomeCity != "" && strings.EqualFold(ev.VenueCity, user.HomeCity):
		score = 100
	case user.HomeState != "" && strings.EqualFold(ev.VenueState, user.HomeState):
		score = 70
	}

	for _, dest := range user.PreferredDestinations {
		if strings.EqualFold(dest, ev.VenueCity) || strings.EqualFold(dest, ev.VenueState) {
			score += 20
			break
		}
	}

	if score > 100 {
		score = 100
	}
	return score
}

func dateProximityScore(date time.Time) float64 {
	days := int(time.Until(date).Hours() / 24)
	switch {
	case days <= 30:
		return 100
	case days <= 90:
		return 80
	case days <= 180:
		return 60
	default:
		return 40
	}
}

// priceValueScore buckets the ratio of the event price to the user's
// historical price preference, then applies the event-type multiplier.
func priceValueScore(ev domain.Event, avgTicketPrice float64) float64 {
	var bucket float64
	if avgTicketPrice <= 0 || !ev.HasPriceHint() {
		bucket = 60 // neutral when either side is unknown
	} else {
		ratio := ev.MidPrice() / avgTicketPrice
		switch {
		case ratio <= 0.5:
			bucket = 100
		case ratio <= 0.8:
			bucket = 80
		case ratio <= 1.2:
			bucket = 60
		case ratio <= 1.5:
			bucket = 40
		default:
			bucket = 20
		}
	}

	return bucket * eventTypeMultiplier(ev.EventType)
}

func popularityScore(meta domain.ArtistMetadata, hasMeta bool) float64 {
	if !hasMeta {
		return 50 // neutral
	}
	return float64(meta.Popularity)
}

func seasonalScore(date time.Time) float64 {
	return seasonalMultipliers[date.Month()] / seasonalPeak * 100
}

// behaviorScore nudges artists and genres the user has voted on before.
func behaviorScore(ev domain.Event, history []domain.FeedbackSignal) float64 {
	score := 50.0
	for _, fb := range history {
		related := strings.EqualFold(fb.Artist, ev.Artist) || sharesGenre(fb.Genres, ev.Genres)
		if !related {
			continue
		}
		switch fb.Value {
		case domain.FeedbackUp:
			score += 10
		case domain.FeedbackDoubleUp:
			score += 20
		case domain.FeedbackDown:
			score -= 15
		}
	}

	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}
	return score
}

// flatBonuses are additive pushes applied after the weighted sum for exact
// type/subtype interest matches, genre overlap, verified artists and
// collaboration matches.
func (r *Ranker) flatBonuses(ev domain.Event, meta domain.ArtistMetadata, hasMeta bool, interests []domain.Interest) float64 {
	w := r.weights
	bonus := 0.0

	for _, in := range interests {
		switch in.Kind {
		case domain.InterestEventType:
			if strings.EqualFold(in.Value, ev.EventType) {
				bonus += w.BonusEventType
			}
		case domain.InterestEventSubtype:
			if strings.EqualFold(in.Value, ev.EventSubtype) {
				bonus += w.BonusEventSubtype
			}
		}
	}

	genreBonus := 0.0
	genreInterests := interestValues(interests, domain.InterestGenre)
	for _, g := range genreInterests {
		for _, eg := range ev.Genres {
			if strings.EqualFold(g, eg) {
				genreBonus += w.BonusPerGenre
				break
			}
		}
	}
	if genreBonus > w.BonusGenreCap {
		genreBonus = w.BonusGenreCap
	}
	bonus += genreBonus

	if hasMeta && meta.Verified {
		bonus += w.BonusVerified
	}
	if hasMeta && meta.IsCollaboration {
		bonus += w.BonusCollaboration
	}

	return bonus
}

func sharesGenre(a []string, b []string) bool {
	for _, ga := range a {
		for _, gb := range b {
			if strings.EqualFold(ga, gb) {
				return true
			}
		}
	}
	return false
}

func interestValues(interests []domain.Interest, kind string) []string {
	var out []string
	for _, in := range interests {
		if in.Kind == kind {
			out = append(out, in.Value)
		}
	}
	return out
}
