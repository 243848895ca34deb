package trip

import (
	"context"
	"errors"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"encoreTrips/business/rank"
	"encoreTrips/domain"
	"encoreTrips/pkg/cache"
	"encoreTrips/pkg/logger"
	"encoreTrips/pkg/metrics"

	"github.com/google/uuid"
)

const (
	defaultWorkerCount = 8
	defaultTripCount   = 10
)

// scheduler runs one generation batch under a bounded worker pool. Workers
// pull ranked candidates from a queue until the target count is reached or
// the queue drains; remaining work is abandoned, in-flight fetches always
// complete.
type scheduler struct {
	svc     *Service
	workers int

	// serializes in-progress list appends across workers
	progressMu sync.Mutex
}

func newScheduler(svc *Service, workers int) *scheduler {
	if workers <= 0 {
		workers = defaultWorkerCount
	}
	return &scheduler{svc: svc, workers: workers}
}

func (sc *scheduler) run(ctx context.Context, userID uint, limit int) ([]domain.TripSuggestion, error) {
	runID := uuid.NewString()
	start := time.Now()
	defer func() {
		metrics.GenerationDuration.Observe(time.Since(start).Seconds())
		logger.Info("generation run finished", "run_id", runID, "user_id", userID, "duration", time.Since(start).String())
	}()

	logger.Info("generation run started", "run_id", runID, "user_id", userID, "limit", limit)

	s := sc.svc

	// expired trips are swept as a side effect of every run
	if n, err := s.tripRepo.DeleteExpired(ctx, userID, time.Now()); err != nil {
		logger.Warn("expired trip sweep failed", "user_id", userID, "error", err)
	} else if n > 0 {
		logger.Info("swept expired trips", "user_id", userID, "count", n)
	}

	interests, err := s.loadInterests(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(interests) == 0 {
		return []domain.TripSuggestion{}, nil
	}

	prefs, err := s.GetPreferences(ctx, userID)
	if err != nil {
		return nil, err
	}

	events, err := s.searchEvents(ctx, interests)
	if err != nil {
		return nil, err
	}

	history, err := s.feedbackRepo.History(ctx, userID)
	if err != nil {
		logger.Warn("failed to load feedback history", "user_id", userID, "error", err)
		history = nil
	}

	existing, err := s.tripRepo.ExistingEventIDs(ctx, userID)
	if err != nil {
		logger.Warn("failed to load existing suggestions", "user_id", userID, "error", err)
		existing = map[uint]struct{}{}
	}

	candidates := sc.buildCandidates(ctx, userID, interests, prefs, events, history, existing)
	if len(candidates) == 0 {
		return []domain.TripSuggestion{}, nil
	}

	built := sc.fanOut(ctx, userID, prefs, candidates, limit)

	// final order follows the ranker, not worker completion order
	trips := make([]domain.TripSuggestion, 0, len(built))
	for _, cand := range candidates {
		if t, ok := built[cand.Event.ID]; ok {
			trips = append(trips, t)
		}
	}

	// concurrent workers can overshoot the target before the counter
	// catches up; the extras stay persisted but the batch honors the
	// requested count
	if len(trips) > limit {
		trips = trips[:limit]
	}

	metrics.TripsGenerated.Add(float64(len(trips)))
	return trips, nil
}

// buildCandidates filters tribute acts and suppressed events, ranks the
// remainder and applies feedback boosts on top of the priority score.
func (sc *scheduler) buildCandidates(
	ctx context.Context,
	userID uint,
	interests []domain.Interest,
	prefs domain.TravelPreferences,
	events []domain.Event,
	history []domain.FeedbackSignal,
	existing map[uint]struct{},
) []rank.ScoredEvent {
	s := sc.svc

	eligible := make([]domain.Event, 0, len(events))
	for _, ev := range events {
		if _, ok := existing[ev.ID]; ok {
			continue
		}
		if s.matcher.IsTribute(ctx, ev.Artist, interests) {
			logger.Debug("excluded tribute act", "artist", ev.Artist, "event_id", ev.ID)
			continue
		}
		if s.filter.ShouldSuppress(ev, history) {
			logger.Debug("suppressed candidate via feedback", "event_id", ev.ID, "artist", ev.Artist)
			continue
		}
		eligible = append(eligible, ev)
	}

	profile := sc.buildProfile(ctx, userID, interests, prefs)
	profile.Feedback = history

	ranked := s.ranker.Rank(ctx, eligible, profile, interests)

	for i := range ranked {
		ranked[i].Score += float64(s.filter.Boost(ranked[i].Event, history))
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		if ranked[i].MetadataQuality != ranked[j].MetadataQuality {
			return ranked[i].MetadataQuality > ranked[j].MetadataQuality
		}
		return ranked[i].Event.EventDate.Before(ranked[j].Event.EventDate)
	})

	return ranked
}

func (sc *scheduler) buildProfile(ctx context.Context, userID uint, interests []domain.Interest, prefs domain.TravelPreferences) rank.UserProfile {
	profile := rank.UserProfile{
		UserID:                userID,
		PreferredDestinations: prefs.PreferredDestinations,
	}

	for _, in := range interests {
		if in.Kind == domain.InterestCity && profile.HomeCity == "" {
			profile.HomeCity = in.Value
		}
	}

	if avg, err := sc.svc.tripRepo.AvgTicketPrice(ctx, userID); err == nil {
		profile.AvgTicketPrice = avg
	}

	return profile
}

// fanOut processes candidates under the bounded pool and returns the built
// suggestions keyed by event id.
func (sc *scheduler) fanOut(ctx context.Context, userID uint, prefs domain.TravelPreferences, candidates []rank.ScoredEvent, limit int) map[uint]domain.TripSuggestion {
	queue := make(chan rank.ScoredEvent)
	var generated atomic.Int64

	// producer stops feeding once the target is reached; queued leftovers
	// are abandoned, never cancelled mid-flight
	go func() {
		defer close(queue)
		for _, cand := range candidates {
			if generated.Load() >= int64(limit) {
				return
			}
			select {
			case queue <- cand:
			case <-ctx.Done():
				return
			}
		}
	}()

	var (
		mu    sync.Mutex
		built = make(map[uint]domain.TripSuggestion, limit)
		wg    sync.WaitGroup
	)

	for i := 0; i < sc.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for cand := range queue {
				if generated.Load() >= int64(limit) {
					continue
				}

				suggestion, err := sc.buildTrip(ctx, userID, cand.Event, prefs)
				if err != nil {
					switch {
					case errors.Is(err, domain.ErrNoAirport):
						logger.Info("no resolvable airport, skipping event", "event_id", cand.Event.ID, "city", cand.Event.VenueCity)
					default:
						logger.Error("failed to build trip", "event_id", cand.Event.ID, "user_id", userID, "error", err)
					}
					continue
				}

				generated.Add(1)
				mu.Lock()
				built[cand.Event.ID] = *suggestion
				mu.Unlock()

				sc.appendInProgress(ctx, userID, *suggestion)
			}
		}()
	}

	wg.Wait()
	return built
}

// buildTrip runs one candidate through aggregation and assembly.
func (sc *scheduler) buildTrip(ctx context.Context, userID uint, event domain.Event, prefs domain.TravelPreferences) (*domain.TripSuggestion, error) {
	s := sc.svc

	set, err := s.aggregator.Aggregate(ctx, event, prefs)
	if err != nil {
		return nil, err
	}

	components := set.All()
	if len(components) == 0 {
		return nil, domain.ErrNoAirport
	}

	return s.assembler.Assemble(ctx, userID, event, components)
}

// appendInProgress publishes a completed trip to the live-building list in
// completion order. The mutex keeps concurrent workers from losing appends
// under the cache's last-writer-wins semantics.
func (sc *scheduler) appendInProgress(ctx context.Context, userID uint, suggestion domain.TripSuggestion) {
	sc.progressMu.Lock()
	defer sc.progressMu.Unlock()

	key := cache.KeyTripInProgress(userID)

	var trips []domain.TripSuggestion
	if _, err := sc.svc.cache.Get(ctx, key, &trips); err != nil {
		logger.Warn("in-progress read failed", "user_id", userID, "error", err)
		trips = nil
	}

	trips = append(trips, suggestion)
	if err := sc.svc.cache.Set(ctx, key, trips, cache.TTLTripInProgress); err != nil {
		logger.Warn("in-progress write failed", "user_id", userID, "error", err)
	}
}

// searchEvents queries the event collaborator through the cache.
func (s *Service) searchEvents(ctx context.Context, interests []domain.Interest) ([]domain.Event, error) {
	key := cache.KeyEventQuery(interestQueryHash(interests))

	var events []domain.Event
	hit, err := s.cache.Get(ctx, key, &events)
	if err != nil {
		logger.Warn("event query cache read failed", "error", err)
		hit = false
	}
	if hit {
		metrics.CacheHits.WithLabelValues("events").Inc()
		return events, nil
	}
	metrics.CacheMisses.WithLabelValues("events").Inc()

	events, err = s.eventRepo.SearchEvents(ctx, interests)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, key, events, cache.TTLEventQuery); err != nil {
		logger.Warn("event query cache write failed", "error", err)
	}

	return events, nil
}

func interestQueryHash(interests []domain.Interest) string {
	parts := make([]string, 0, len(interests))
	for _, in := range interests {
		parts = append(parts, in.Kind+"="+in.Value)
	}
	sort.Strings(parts)

	joined := ""
	for i, p := range parts {
		if i > 0 {
			joined += "|"
		}
		joined += p
	}
	return cache.HashQuery(joined)
}
