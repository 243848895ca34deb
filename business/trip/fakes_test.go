package trip

import (
	"context"
	"sync"
	"time"

	"encoreTrips/business/match"
	"encoreTrips/business/rank"
	"encoreTrips/business/travel"
	"encoreTrips/domain"
	"encoreTrips/pkg/cache"
)

// ---- in-memory repositories ----

type fakeTripRepo struct {
	mu          sync.Mutex
	nextID      uint
	suggestions map[uint]domain.TripSuggestion
	components  map[uint][]domain.TripComponent
	avgTicket   float64
}

func newFakeTripRepo() *fakeTripRepo {
	return &fakeTripRepo{
		suggestions: make(map[uint]domain.TripSuggestion),
		components:  make(map[uint][]domain.TripComponent),
	}
}

func (f *fakeTripRepo) UpsertSuggestion(_ context.Context, s *domain.TripSuggestion) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for id, existing := range f.suggestions {
		if existing.UserID == s.UserID && existing.EventID == s.EventID {
			existing.TotalCost = s.TotalCost
			existing.ServiceFee = s.ServiceFee
			f.suggestions[id] = existing
			s.ID = id
			s.Status = existing.Status
			return nil
		}
	}

	f.nextID++
	s.ID = f.nextID
	f.suggestions[s.ID] = domain.TripSuggestion{
		ID: s.ID, UserID: s.UserID, EventID: s.EventID,
		Status: s.Status, TotalCost: s.TotalCost, ServiceFee: s.ServiceFee,
	}
	return nil
}

func (f *fakeTripRepo) ReplaceComponents(_ context.Context, suggestionID uint, components []domain.TripComponent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.components[suggestionID] = append([]domain.TripComponent(nil), components...)
	return nil
}

func (f *fakeTripRepo) FindByID(_ context.Context, id uint) (domain.TripSuggestion, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	s, ok := f.suggestions[id]
	if !ok {
		return domain.TripSuggestion{}, domain.ErrNotFound
	}
	s.Components = f.components[id]
	return s, nil
}

func (f *fakeTripRepo) FindByUser(_ context.Context, userID uint) ([]domain.TripSuggestion, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []domain.TripSuggestion
	for id, s := range f.suggestions {
		if s.UserID == userID {
			s.Components = f.components[id]
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeTripRepo) ExistingEventIDs(_ context.Context, userID uint) (map[uint]struct{}, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make(map[uint]struct{})
	for _, s := range f.suggestions {
		if s.UserID == userID {
			out[s.EventID] = struct{}{}
		}
	}
	return out, nil
}

func (f *fakeTripRepo) Delete(_ context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.suggestions, id)
	delete(f.components, id)
	return nil
}

func (f *fakeTripRepo) DeleteExpired(context.Context, uint, time.Time) (int64, error) {
	return 0, nil
}

func (f *fakeTripRepo) AvgTicketPrice(context.Context, uint) (float64, error) {
	return f.avgTicket, nil
}

type fakeInterestRepo struct {
	interests []domain.Interest
}

func (f *fakeInterestRepo) GetInterests(context.Context, uint) ([]domain.Interest, error) {
	return f.interests, nil
}

type fakeEventRepo struct {
	events []domain.Event
}

func (f *fakeEventRepo) SearchEvents(context.Context, []domain.Interest) ([]domain.Event, error) {
	return f.events, nil
}

type fakePrefsRepo struct {
	mu    sync.Mutex
	prefs map[uint]domain.TravelPreferences
}

func newFakePrefsRepo() *fakePrefsRepo {
	return &fakePrefsRepo{prefs: make(map[uint]domain.TravelPreferences)}
}

func (f *fakePrefsRepo) GetTravelPreferences(_ context.Context, userID uint) (domain.TravelPreferences, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.prefs[userID]
	return p, ok, nil
}

func (f *fakePrefsRepo) Upsert(_ context.Context, prefs *domain.TravelPreferences) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prefs[prefs.UserID] = *prefs
	return nil
}

type fakeFeedbackRepo struct {
	mu      sync.Mutex
	history []domain.FeedbackSignal
	saved   []domain.Feedback
}

func (f *fakeFeedbackRepo) History(context.Context, uint) ([]domain.FeedbackSignal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.history, nil
}

func (f *fakeFeedbackRepo) Upsert(_ context.Context, fb domain.Feedback) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saved = append(f.saved, fb)
	return nil
}

type fakeAirports struct {
	codes map[string]string
}

func (f *fakeAirports) ResolveAirport(_ context.Context, city, _ string) (string, error) {
	if code, ok := f.codes[city]; ok {
		return code, nil
	}
	return "", domain.ErrNoAirport
}

// ---- service wiring ----

type testEnv struct {
	svc       *Service
	tripRepo  *fakeTripRepo
	interests *fakeInterestRepo
	events    *fakeEventRepo
	prefs     *fakePrefsRepo
	feedback  *fakeFeedbackRepo
	cache     *cache.Memory
}

// newTestEnv wires a service against in-memory fakes and an aggregator with
// no live providers, so every travel leg resolves through the static tier.
// A single worker keeps generation deterministic.
func newTestEnv() *testEnv {
	return newTunedTestEnv(1, 10)
}

func newTunedTestEnv(workers, targetTripCount int) *testEnv {
	tripRepo := newFakeTripRepo()
	interests := &fakeInterestRepo{}
	events := &fakeEventRepo{}
	prefs := newFakePrefsRepo()
	feedback := &fakeFeedbackRepo{}
	mem := cache.NewMemory()
	airports := &fakeAirports{codes: map[string]string{"Denver": "DEN", "Austin": "AUS"}}

	matcher := match.NewMatcher(nil, nil, nil)
	ranker := rank.NewRanker(matcher, rank.DefaultWeights())
	aggregator := travel.NewAggregator(nil, nil, nil, nil, airports, mem)

	svc := NewService(
		tripRepo, interests, events, prefs, feedback, airports,
		matcher, ranker, aggregator, mem, workers, targetTripCount,
	)

	return &testEnv{
		svc:       svc,
		tripRepo:  tripRepo,
		interests: interests,
		events:    events,
		prefs:     prefs,
		feedback:  feedback,
		cache:     mem,
	}
}

func futureEvent(id uint, artist string, daysOut int) domain.Event {
	return domain.Event{
		ID:         id,
		ExternalID: "evt",
		Name:       artist + " Live",
		Artist:     artist,
		VenueName:  "Red Rocks",
		VenueCity:  "Denver",
		VenueState: "CO",
		EventDate:  time.Now().AddDate(0, 0, daysOut),
		EventType:  "concert",
	}
}
