package trip

import (
	"testing"

	"encoreTrips/domain"

	"github.com/stretchr/testify/assert"
)

func TestShouldSuppressSameEvent(t *testing.T) {
	f := NewFeedbackFilter()
	ev := domain.Event{ID: 5, Artist: "Nickelback", VenueCity: "Denver"}

	// the exact same event plus the same artist clears the threshold
	history := []domain.FeedbackSignal{
		{Value: domain.FeedbackDown, EventID: 5, Artist: "Nickelback"},
	}
	assert.True(t, f.ShouldSuppress(ev, history))
}

func TestShouldSuppressSimilarNotIdentical(t *testing.T) {
	f := NewFeedbackFilter()
	ev := domain.Event{ID: 9, Artist: "Nickelback", VenueName: "Ball Arena", VenueCity: "Denver"}

	// different event, same artist at the same venue and city: 0.55
	history := []domain.FeedbackSignal{
		{Value: domain.FeedbackDown, EventID: 5, Artist: "Nickelback", VenueName: "Ball Arena", VenueCity: "Denver"},
	}
	assert.True(t, f.ShouldSuppress(ev, history))
}

func TestShouldNotSuppressBelowThreshold(t *testing.T) {
	f := NewFeedbackFilter()
	ev := domain.Event{ID: 9, Artist: "Nickelback", VenueCity: "Seattle"}

	// artist alone is 0.35, short of the 0.5 threshold
	history := []domain.FeedbackSignal{
		{Value: domain.FeedbackDown, EventID: 5, Artist: "Nickelback", VenueCity: "Denver"},
	}
	assert.False(t, f.ShouldSuppress(ev, history))
}

func TestShouldSuppressIgnoresUpvotes(t *testing.T) {
	f := NewFeedbackFilter()
	ev := domain.Event{ID: 5, Artist: "Odesza"}

	history := []domain.FeedbackSignal{
		{Value: domain.FeedbackDoubleUp, EventID: 5, Artist: "Odesza"},
	}
	assert.False(t, f.ShouldSuppress(ev, history))
}

func TestBoostStacks(t *testing.T) {
	f := NewFeedbackFilter()
	ev := domain.Event{ID: 9, Artist: "Odesza", VenueCity: "Denver", Genres: []string{"electronic"}}

	history := []domain.FeedbackSignal{
		// 0.35 artist + 0.10 city + 0.10 genre = 0.55 -> counts
		{Value: domain.FeedbackUp, EventID: 5, Artist: "Odesza", VenueCity: "Denver", Genres: []string{"electronic"}},
		// same event + artist = 0.70 -> counts
		{Value: domain.FeedbackDoubleUp, EventID: 9, Artist: "Odesza"},
		// unrelated -> no boost
		{Value: domain.FeedbackUp, EventID: 2, Artist: "Morgan Wallen"},
	}

	assert.Equal(t, boostUp+boostDoubleUp, f.Boost(ev, history))
}

func TestBoostIgnoresDownvotes(t *testing.T) {
	f := NewFeedbackFilter()
	ev := domain.Event{ID: 5, Artist: "Odesza"}

	history := []domain.FeedbackSignal{
		{Value: domain.FeedbackDown, EventID: 5, Artist: "Odesza"},
	}
	assert.Equal(t, 0, f.Boost(ev, history))
}

func TestSimilarityWeights(t *testing.T) {
	ev := domain.Event{ID: 5, Artist: "Odesza", VenueName: "Red Rocks", VenueCity: "Denver", Genres: []string{"electronic"}}

	full := domain.FeedbackSignal{
		EventID: 5, Artist: "odesza", VenueName: "red rocks", VenueCity: "denver", Genres: []string{"Electronic"},
	}
	assert.InDelta(t, 1.0, similarity(ev, full), 1e-9)

	none := domain.FeedbackSignal{EventID: 2, Artist: "Morgan Wallen"}
	assert.InDelta(t, 0.0, similarity(ev, none), 1e-9)
}
