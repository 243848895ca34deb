package trip

import (
	"context"
	"errors"
	"fmt"
	"time"

	"encoreTrips/business/match"
	"encoreTrips/business/rank"
	"encoreTrips/business/travel"
	"encoreTrips/domain"
	"encoreTrips/pkg/cache"
	"encoreTrips/pkg/logger"
	"encoreTrips/pkg/metrics"
)

// ---- Repository interfaces ----

type InterestRepository interface {
	GetInterests(ctx context.Context, userID uint) ([]domain.Interest, error)
}

type EventRepository interface {
	SearchEvents(ctx context.Context, interests []domain.Interest) ([]domain.Event, error)
}

type PreferencesRepository interface {
	GetTravelPreferences(ctx context.Context, userID uint) (domain.TravelPreferences, bool, error)
	Upsert(ctx context.Context, prefs *domain.TravelPreferences) error
}

type FeedbackRepository interface {
	History(ctx context.Context, userID uint) ([]domain.FeedbackSignal, error)
	Upsert(ctx context.Context, feedback domain.Feedback) error
}

// ---- Service ----

type Service struct {
	tripRepo     TripRepository
	interestRepo InterestRepository
	eventRepo    EventRepository
	prefsRepo    PreferencesRepository
	feedbackRepo FeedbackRepository
	airports     travel.AirportResolver

	matcher    *match.Matcher
	ranker     *rank.Ranker
	aggregator *travel.Aggregator
	assembler  *Assembler
	filter     *FeedbackFilter

	cache       cache.Cache
	scheduler   *scheduler
	targetTrips int
}

func NewService(
	tripRepo TripRepository,
	interestRepo InterestRepository,
	eventRepo EventRepository,
	prefsRepo PreferencesRepository,
	feedbackRepo FeedbackRepository,
	airports travel.AirportResolver,
	matcher *match.Matcher,
	ranker *rank.Ranker,
	aggregator *travel.Aggregator,
	c cache.Cache,
	workerCount int,
	targetTripCount int,
) *Service {
	if targetTripCount <= 0 {
		targetTripCount = defaultTripCount
	}
	s := &Service{
		tripRepo:     tripRepo,
		interestRepo: interestRepo,
		eventRepo:    eventRepo,
		prefsRepo:    prefsRepo,
		feedbackRepo: feedbackRepo,
		airports:     airports,
		matcher:      matcher,
		ranker:       ranker,
		aggregator:   aggregator,
		assembler:    NewAssembler(tripRepo),
		filter:       NewFeedbackFilter(),
		cache:        c,
		targetTrips:  targetTripCount,
	}
	s.scheduler = newScheduler(s, workerCount)
	return s
}

// GenerateTrips is the polling surface's entry point. A cached batch is
// served immediately while a fresh one is rebuilt in the background
// (stale-while-revalidate); a cold cache generates synchronously.
func (s *Service) GenerateTrips(ctx context.Context, userID uint, limit int) ([]domain.TripSuggestion, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if limit <= 0 {
		limit = s.targetTrips
	}

	listKey := cache.KeyTripList(userID)

	var cached []domain.TripSuggestion
	hit, err := s.cache.Get(ctx, listKey, &cached)
	if err != nil {
		logger.Warn("trip list cache read failed", "user_id", userID, "error", err)
		hit = false
	}
	if hit {
		metrics.CacheHits.WithLabelValues("triplist").Inc()
		metrics.GenerationRuns.WithLabelValues("cached").Inc()
		s.refreshInBackground(userID, limit)
		return cached, nil
	}

	metrics.CacheMisses.WithLabelValues("triplist").Inc()
	metrics.GenerationRuns.WithLabelValues("cold").Inc()

	trips, err := s.scheduler.run(ctx, userID, limit)
	if err != nil {
		return nil, err
	}

	s.cacheTripList(ctx, userID, trips)
	return trips, nil
}

// refreshInBackground kicks a detached regeneration so the next read
// observes fresh data. Failures are logged, never surfaced.
func (s *Service) refreshInBackground(userID uint, limit int) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		metrics.GenerationRuns.WithLabelValues("refresh").Inc()

		trips, err := s.scheduler.run(ctx, userID, limit)
		if err != nil {
			logger.Error("background trip refresh failed", "user_id", userID, "error", err)
			return
		}
		s.cacheTripList(ctx, userID, trips)
	}()
}

// InProgressTrips drains the live-building list so polling clients see
// trips as workers complete them.
func (s *Service) InProgressTrips(ctx context.Context, userID uint) ([]domain.TripSuggestion, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	key := cache.KeyTripInProgress(userID)

	var trips []domain.TripSuggestion
	hit, err := s.cache.Get(ctx, key, &trips)
	if err != nil {
		logger.Warn("in-progress cache read failed", "user_id", userID, "error", err)
		return []domain.TripSuggestion{}, nil
	}
	if !hit {
		return []domain.TripSuggestion{}, nil
	}

	if err := s.cache.Delete(ctx, key); err != nil {
		logger.Warn("failed to drain in-progress list", "user_id", userID, "error", err)
	}

	return trips, nil
}

// ListTrips returns the user's stored suggestions.
func (s *Service) ListTrips(ctx context.Context, userID uint) ([]domain.TripSuggestion, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	return s.tripRepo.FindByUser(ctx, userID)
}

// DeleteTrip removes a suggestion unless it is booked.
func (s *Service) DeleteTrip(ctx context.Context, userID, tripID uint) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	suggestion, err := s.tripRepo.FindByID(ctx, tripID)
	if err != nil {
		return err
	}
	if suggestion.UserID != userID {
		return domain.ErrNotFound
	}
	if suggestion.Status == domain.TripStatusBooked {
		return domain.ErrTripBooked
	}

	if err := s.tripRepo.Delete(ctx, tripID); err != nil {
		return fmt.Errorf("failed to delete trip: %w", err)
	}

	s.invalidateTripList(ctx, userID)
	return nil
}

// SubmitFeedback upserts the user's vote on one of their trips.
func (s *Service) SubmitFeedback(ctx context.Context, userID, tripID uint, value string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	switch value {
	case domain.FeedbackDown, domain.FeedbackUp, domain.FeedbackDoubleUp:
	default:
		return errors.New("invalid feedback value")
	}

	suggestion, err := s.tripRepo.FindByID(ctx, tripID)
	if err != nil {
		return err
	}
	if suggestion.UserID != userID {
		return domain.ErrNotFound
	}

	if err := s.feedbackRepo.Upsert(ctx, domain.Feedback{
		UserID:           userID,
		TripSuggestionID: tripID,
		Value:            value,
	}); err != nil {
		return fmt.Errorf("failed to save feedback: %w", err)
	}

	// feedback changes what the next batch should look like
	s.invalidateTripList(ctx, userID)
	return nil
}

// GetPreferences returns the user's travel preferences, lazily inferring a
// primary airport from their city interests on first access.
func (s *Service) GetPreferences(ctx context.Context, userID uint) (domain.TravelPreferences, error) {
	if err := ctx.Err(); err != nil {
		return domain.TravelPreferences{}, fmt.Errorf("context error: %w", err)
	}

	prefs, ok, err := s.prefsRepo.GetTravelPreferences(ctx, userID)
	if err != nil {
		return domain.TravelPreferences{}, err
	}
	if ok {
		return prefs, nil
	}

	inferred := domain.TravelPreferences{UserID: userID}
	if city := s.firstCityInterest(ctx, userID); city != "" && s.airports != nil {
		if code, err := s.airports.ResolveAirport(ctx, city, ""); err == nil {
			inferred.PrimaryAirport = code
			logger.Info("inferred primary airport for user", "user_id", userID, "airport", code)
		}
	}

	if err := s.prefsRepo.Upsert(ctx, &inferred); err != nil {
		logger.Warn("failed to persist inferred preferences", "user_id", userID, "error", err)
	}

	return inferred, nil
}

// UpdatePreferences stores user-edited preferences.
func (s *Service) UpdatePreferences(ctx context.Context, prefs *domain.TravelPreferences) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := s.prefsRepo.Upsert(ctx, prefs); err != nil {
		return fmt.Errorf("failed to update preferences: %w", err)
	}

	s.invalidateTripList(ctx, prefs.UserID)
	return nil
}

// ---- helpers ----

// loadInterests reads the user's interests through the cache; the store is
// the source of truth and a short TTL covers interest edits.
func (s *Service) loadInterests(ctx context.Context, userID uint) ([]domain.Interest, error) {
	key := cache.KeyUserInterests(userID)

	var interests []domain.Interest
	hit, err := s.cache.Get(ctx, key, &interests)
	if err != nil {
		logger.Warn("interest cache read failed", "user_id", userID, "error", err)
		hit = false
	}
	if hit {
		metrics.CacheHits.WithLabelValues("interests").Inc()
		return interests, nil
	}
	metrics.CacheMisses.WithLabelValues("interests").Inc()

	interests, err = s.interestRepo.GetInterests(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, key, interests, cache.TTLUserInterests); err != nil {
		logger.Warn("interest cache write failed", "user_id", userID, "error", err)
	}
	return interests, nil
}

func (s *Service) firstCityInterest(ctx context.Context, userID uint) string {
	interests, err := s.loadInterests(ctx, userID)
	if err != nil {
		return ""
	}
	for _, in := range interests {
		if in.Kind == domain.InterestCity {
			return in.Value
		}
	}
	return ""
}

func (s *Service) cacheTripList(ctx context.Context, userID uint, trips []domain.TripSuggestion) {
	if err := s.cache.Set(ctx, cache.KeyTripList(userID), trips, cache.TTLTripList); err != nil {
		logger.Warn("failed to cache trip list", "user_id", userID, "error", err)
	}
}

func (s *Service) invalidateTripList(ctx context.Context, userID uint) {
	if err := s.cache.Delete(ctx, cache.KeyTripList(userID)); err != nil {
		logger.Warn("failed to invalidate trip list", "user_id", userID, "error", err)
	}
}
