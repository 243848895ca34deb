package trip

import (
	"context"
	"testing"

	"encoreTrips/domain"
	"encoreTrips/pkg/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchedulerStopsAtLimit(t *testing.T) {
	env := newTestEnv()
	env.interests.interests = []domain.Interest{
		{UserID: 1, Kind: domain.InterestArtist, Value: "Odesza", Priority: 1},
	}
	env.events.events = []domain.Event{
		futureEvent(1, "Odesza", 10),
		futureEvent(2, "Odesza", 20),
		futureEvent(3, "Odesza", 30),
		futureEvent(4, "Odesza", 40),
		futureEvent(5, "Odesza", 50),
	}

	trips, err := env.svc.GenerateTrips(context.Background(), 1, 2)
	require.NoError(t, err)
	require.Len(t, trips, 2)

	// the two closest events win; the rest of the queue is abandoned
	assert.Equal(t, uint(1), trips[0].EventID)
	assert.Equal(t, uint(2), trips[1].EventID)
}

func TestSchedulerSkipsExistingSuggestions(t *testing.T) {
	env := newTestEnv()
	env.interests.interests = []domain.Interest{
		{UserID: 1, Kind: domain.InterestArtist, Value: "Odesza", Priority: 1},
	}
	env.events.events = []domain.Event{
		futureEvent(1, "Odesza", 10),
		futureEvent(2, "Odesza", 20),
	}

	existing := domain.TripSuggestion{UserID: 1, EventID: 1, Status: domain.TripStatusPending}
	require.NoError(t, env.tripRepo.UpsertSuggestion(context.Background(), &existing))

	trips, err := env.svc.GenerateTrips(context.Background(), 1, 10)
	require.NoError(t, err)
	require.Len(t, trips, 1)
	assert.Equal(t, uint(2), trips[0].EventID)
}

func TestSchedulerExcludesTributeActs(t *testing.T) {
	env := newTestEnv()
	env.interests.interests = []domain.Interest{
		{UserID: 1, Kind: domain.InterestArtist, Value: "Pink Floyd", Priority: 1},
	}
	env.events.events = []domain.Event{
		futureEvent(1, "Pink Floyd Experience", 10),
		futureEvent(2, "Pink Floyd", 20),
	}

	trips, err := env.svc.GenerateTrips(context.Background(), 1, 10)
	require.NoError(t, err)
	require.Len(t, trips, 1)
	assert.Equal(t, uint(2), trips[0].EventID)
}

func TestSchedulerKeepsExplicitlyFollowedTribute(t *testing.T) {
	env := newTestEnv()
	env.interests.interests = []domain.Interest{
		{UserID: 1, Kind: domain.InterestArtist, Value: "Pink Floyd Experience", Priority: 1},
	}
	env.events.events = []domain.Event{
		futureEvent(1, "Pink Floyd Experience", 10),
	}

	trips, err := env.svc.GenerateTrips(context.Background(), 1, 10)
	require.NoError(t, err)
	require.Len(t, trips, 1)
}

func TestSchedulerSuppressesDownvotedLookalikes(t *testing.T) {
	env := newTestEnv()
	env.interests.interests = []domain.Interest{
		{UserID: 1, Kind: domain.InterestArtist, Value: "Odesza", Priority: 1},
	}
	env.events.events = []domain.Event{
		futureEvent(1, "Odesza", 10),
		futureEvent(2, "Rufus Du Sol", 20),
	}
	env.feedback.history = []domain.FeedbackSignal{
		{
			Value:     domain.FeedbackDown,
			EventID:   99,
			Artist:    "Odesza",
			VenueName: "Red Rocks",
			VenueCity: "Denver",
		},
	}

	trips, err := env.svc.GenerateTrips(context.Background(), 1, 10)
	require.NoError(t, err)
	require.Len(t, trips, 1)
	assert.Equal(t, uint(2), trips[0].EventID)
}

func TestSchedulerBoostReordersCandidates(t *testing.T) {
	env := newTestEnv()
	env.interests.interests = []domain.Interest{
		{UserID: 1, Kind: domain.InterestGenre, Value: "electronic", Priority: 1},
	}
	// same-month events so the date component barely separates them
	env.events.events = []domain.Event{
		futureEvent(1, "Rufus Du Sol", 10),
		futureEvent(2, "Odesza", 12),
	}
	env.feedback.history = []domain.FeedbackSignal{
		{
			Value:     domain.FeedbackDoubleUp,
			EventID:   99,
			Artist:    "Odesza",
			VenueName: "Red Rocks",
			VenueCity: "Denver",
		},
	}

	trips, err := env.svc.GenerateTrips(context.Background(), 1, 10)
	require.NoError(t, err)
	require.Len(t, trips, 2)
	assert.Equal(t, uint(2), trips[0].EventID, "double-upvoted artist should outrank the closer date")
}

func TestSchedulerPersistsAssembledTrips(t *testing.T) {
	env := newTestEnv()
	env.interests.interests = []domain.Interest{
		{UserID: 1, Kind: domain.InterestArtist, Value: "Odesza", Priority: 1},
	}
	env.events.events = []domain.Event{futureEvent(1, "Odesza", 10)}

	trips, err := env.svc.GenerateTrips(context.Background(), 1, 10)
	require.NoError(t, err)
	require.Len(t, trips, 1)

	stored, err := env.tripRepo.FindByID(context.Background(), trips[0].ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TripStatusPending, stored.Status)
	assert.NotEmpty(t, stored.Components)
	assert.InDelta(t, max(stored.TotalCost*domain.ServiceFeeRate, domain.ServiceFeeMinimum), stored.ServiceFee, 0.001)
}

func TestSchedulerPublishesInProgressInCompletionOrder(t *testing.T) {
	env := newTestEnv()
	env.interests.interests = []domain.Interest{
		{UserID: 1, Kind: domain.InterestArtist, Value: "Odesza", Priority: 1},
	}
	env.events.events = []domain.Event{
		futureEvent(1, "Odesza", 10),
		futureEvent(2, "Odesza", 20),
		futureEvent(3, "Odesza", 30),
	}

	_, err := env.svc.GenerateTrips(context.Background(), 1, 10)
	require.NoError(t, err)

	var inProgress []domain.TripSuggestion
	hit, err := env.cache.Get(context.Background(), cache.KeyTripInProgress(1), &inProgress)
	require.NoError(t, err)
	require.True(t, hit)
	require.Len(t, inProgress, 3)

	// a single worker completes in queue order
	assert.Equal(t, uint(1), inProgress[0].EventID)
	assert.Equal(t, uint(2), inProgress[1].EventID)
	assert.Equal(t, uint(3), inProgress[2].EventID)
}

func TestSchedulerHonorsLimitUnderConcurrency(t *testing.T) {
	env := newTunedTestEnv(8, 10)
	env.interests.interests = []domain.Interest{
		{UserID: 1, Kind: domain.InterestArtist, Value: "Odesza", Priority: 1},
	}
	for i := 1; i <= 8; i++ {
		env.events.events = append(env.events.events, futureEvent(uint(i), "Odesza", i*5))
	}

	trips, err := env.svc.GenerateTrips(context.Background(), 1, 2)
	require.NoError(t, err)

	// racing workers may build extras, but the batch never exceeds the
	// requested count
	require.Len(t, trips, 2)
}
