package trip

import (
	"strings"

	"encoreTrips/domain"
)

// Similarity weights between a candidate event and a previously-rated trip.
const (
	simWeightEvent  = 0.35
	simWeightArtist = 0.35
	simWeightVenue  = 0.10
	simWeightCity   = 0.10
	simWeightGenre  = 0.10

	// suppressionThreshold is the similarity at which a down-voted trip
	// blocks a candidate.
	suppressionThreshold = 0.5

	boostUp       = 20
	boostDoubleUp = 50
)

// FeedbackFilter suppresses candidates similar to down-voted trips and
// boosts those similar to up-voted ones.
type FeedbackFilter struct{}

func NewFeedbackFilter() *FeedbackFilter {
	return &FeedbackFilter{}
}

// ShouldSuppress reports whether the candidate is too similar to any trip
// the user voted down.
func (f *FeedbackFilter) ShouldSuppress(event domain.Event, history []domain.FeedbackSignal) bool {
	for _, fb := range history {
		if fb.Value != domain.FeedbackDown {
			continue
		}
		if similarity(event, fb) >= suppressionThreshold {
			return true
		}
	}
	return false
}

// Boost returns the additive score bonus earned from up-voted trips the
// candidate resembles. Boosts stack across matches.
func (f *FeedbackFilter) Boost(event domain.Event, history []domain.FeedbackSignal) int {
	boost := 0
	for _, fb := range history {
		if similarity(event, fb) < suppressionThreshold {
			continue
		}
		switch fb.Value {
		case domain.FeedbackUp:
			boost += boostUp
		case domain.FeedbackDoubleUp:
			boost += boostDoubleUp
		}
	}
	return boost
}

func similarity(event domain.Event, fb domain.FeedbackSignal) float64 {
	s := 0.0
	if fb.EventID != 0 && fb.EventID == event.ID {
		s += simWeightEvent
	}
	if fb.Artist != "" && strings.EqualFold(fb.Artist, event.Artist) {
		s += simWeightArtist
	}
	if fb.VenueName != "" && strings.EqualFold(fb.VenueName, event.VenueName) {
		s += simWeightVenue
	}
	if fb.VenueCity != "" && strings.EqualFold(fb.VenueCity, event.VenueCity) {
		s += simWeightCity
	}
	if genresOverlap(fb.Genres, event.Genres) {
		s += simWeightGenre
	}
	return s
}

func genresOverlap(a []string, b []string) bool {
	for _, ga := range a {
		for _, gb := range b {
			if strings.EqualFold(ga, gb) {
				return true
			}
		}
	}
	return false
}
