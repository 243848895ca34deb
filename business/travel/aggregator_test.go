package travel

import (
	"context"
	"errors"
	"testing"
	"time"

	"encoreTrips/domain"
	"encoreTrips/pkg/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- fakes ----

type fakeFlights struct {
	offers []Offer
	err    error
	calls  int
}

func (f *fakeFlights) SearchFlights(context.Context, string, string, time.Time, time.Time, int) ([]Offer, error) {
	f.calls++
	return f.offers, f.err
}

type fakeHotels struct {
	offers []Offer
	err    error
}

func (f *fakeHotels) SearchHotels(context.Context, string, time.Time, time.Time, int) ([]Offer, error) {
	return f.offers, f.err
}

type fakeCars struct {
	offers []Offer
	err    error
}

func (f *fakeCars) SearchCarRentals(context.Context, string, string, time.Time, time.Time) ([]Offer, error) {
	return f.offers, f.err
}

type fakeTickets struct {
	offers []Offer
	err    error
	calls  int
}

func (f *fakeTickets) SearchTickets(context.Context, string, string, time.Time) ([]Offer, error) {
	f.calls++
	return f.offers, f.err
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

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

var testNow = time.Date(2026, time.September, 1, 10, 0, 0, 0, time.UTC)

func testEvent() domain.Event {
	return domain.Event{
		ID:         7,
		ExternalID: "evt-7",
		Name:       "Odesza Live",
		Artist:     "Odesza",
		VenueName:  "Red Rocks",
		VenueCity:  "Denver",
		VenueState: "CO",
		EventDate:  time.Date(2026, time.October, 10, 20, 0, 0, 0, time.UTC),
		EventType:  "concert",
	}
}

func newTestAggregator(fl FlightProvider, ho HotelProvider, ca CarProvider, ti TicketProvider) *Aggregator {
	airports := &fakeAirports{codes: map[string]string{"Denver": "DEN"}}
	return NewAggregator(fl, ho, ca, ti, airports, cache.NewMemory()).WithClock(fixedClock(testNow))
}

// ---- tests ----

func TestAggregateLivePricesAreReal(t *testing.T) {
	a := newTestAggregator(
		&fakeFlights{offers: []Offer{{Provider: "skyscanner", Price: 410}, {Provider: "kayak", Price: 390}}},
		&fakeHotels{offers: []Offer{{Provider: "expedia", Price: 520}}},
		&fakeCars{offers: []Offer{{Provider: "hertz", Price: 120}}},
		&fakeTickets{offers: []Offer{{Provider: "stubhub", Price: 95}}},
	)

	prefs := domain.TravelPreferences{PrimaryAirport: "LAX"}
	set, err := a.Aggregate(context.Background(), testEvent(), prefs)
	require.NoError(t, err)

	require.NotNil(t, set.Ticket)
	require.NotNil(t, set.Flight)
	require.NotNil(t, set.Hotel)
	require.NotNil(t, set.Car)
	assert.Nil(t, set.Transfer)

	for _, comp := range set.All() {
		assert.Equal(t, domain.PriceReal, comp.PriceType, "kind %s", comp.Kind)
		assert.NotEmpty(t, comp.BookingURL, "kind %s", comp.Kind)
	}

	// cheapest offer wins
	assert.Equal(t, "kayak", set.Flight.Provider)
	assert.Equal(t, 390.0, set.Flight.Price)
}

func TestAggregateFallsBackToStaticEstimates(t *testing.T) {
	boom := errors.New("provider down")
	a := newTestAggregator(
		&fakeFlights{err: boom},
		&fakeHotels{err: boom},
		&fakeCars{err: boom},
		&fakeTickets{err: boom},
	)

	prefs := domain.TravelPreferences{PrimaryAirport: "LAX"}
	set, err := a.Aggregate(context.Background(), testEvent(), prefs)
	require.NoError(t, err)

	require.NotNil(t, set.Flight)
	assert.Equal(t, domain.PriceEstimated, set.Flight.PriceType)
	assert.Equal(t, defaultFlightEstimate, int(set.Flight.Price))

	require.NotNil(t, set.Hotel)
	assert.Equal(t, domain.PriceEstimated, set.Hotel.PriceType)
	// two nights in Denver at the static rate
	assert.Equal(t, 2*190.0, set.Hotel.Price)

	require.NotNil(t, set.Ticket)
	assert.Equal(t, domain.PriceEstimated, set.Ticket.PriceType)
	assert.Equal(t, 120.0, set.Ticket.Price)
}

func TestAggregateTicketStoredPriceHint(t *testing.T) {
	a := newTestAggregator(nil, nil, nil, &fakeTickets{err: errors.New("down")})

	ev := testEvent()
	ev.PriceMin = 80
	ev.PriceMax = 120

	set, err := a.Aggregate(context.Background(), ev, domain.TravelPreferences{PrimaryAirport: "LAX"})
	require.NoError(t, err)
	require.NotNil(t, set.Ticket)

	// a stored provider price is still a real price
	assert.Equal(t, domain.PriceReal, set.Ticket.PriceType)
	assert.Equal(t, 100.0, set.Ticket.Price)
}

func TestAggregateCachedTierServesStaleLiveResult(t *testing.T) {
	flights := &fakeFlights{offers: []Offer{{Provider: "skyscanner", Price: 400}}}
	a := newTestAggregator(flights, nil, nil, nil)
	prefs := domain.TravelPreferences{PrimaryAirport: "LAX"}

	set, err := a.Aggregate(context.Background(), testEvent(), prefs)
	require.NoError(t, err)
	require.NotNil(t, set.Flight)
	require.Equal(t, domain.PriceReal, set.Flight.PriceType)

	// provider dies; the cached live result should still be served as real
	flights.err = errors.New("down")
	flights.offers = nil

	set, err = a.Aggregate(context.Background(), testEvent(), prefs)
	require.NoError(t, err)
	require.NotNil(t, set.Flight)
	assert.Equal(t, domain.PriceReal, set.Flight.PriceType)
	assert.Equal(t, 400.0, set.Flight.Price)
	assert.Equal(t, "skyscanner", set.Flight.Provider)
}

func TestAggregateNoAirportAborts(t *testing.T) {
	a := NewAggregator(nil, nil, nil, nil, &fakeAirports{}, cache.NewMemory()).WithClock(fixedClock(testNow))

	ev := testEvent()
	ev.VenueCity = "Nowhere"

	_, err := a.Aggregate(context.Background(), ev, domain.TravelPreferences{})
	assert.ErrorIs(t, err, domain.ErrNoAirport)
}

func TestAggregateDestinationOnlyStillBuilds(t *testing.T) {
	// no user airport: flight is skipped but the rest of the trip survives
	a := newTestAggregator(nil, nil, nil, nil)

	set, err := a.Aggregate(context.Background(), testEvent(), domain.TravelPreferences{})
	require.NoError(t, err)
	assert.Nil(t, set.Flight)
	assert.NotNil(t, set.Hotel)
	assert.NotNil(t, set.Car)
	assert.NotNil(t, set.Ticket)
}

func TestAggregatePastEventSkipsTravelLegs(t *testing.T) {
	flights := &fakeFlights{offers: []Offer{{Provider: "kayak", Price: 300}}}
	tickets := &fakeTickets{offers: []Offer{{Provider: "stubhub", Price: 60}}}
	a := newTestAggregator(flights, nil, nil, tickets)

	ev := testEvent()
	ev.EventDate = testNow.AddDate(0, 0, -3)

	set, err := a.Aggregate(context.Background(), ev, domain.TravelPreferences{PrimaryAirport: "LAX"})
	require.NoError(t, err)

	assert.NotNil(t, set.Ticket)
	assert.Nil(t, set.Flight)
	assert.Nil(t, set.Hotel)
	assert.Nil(t, set.Car)
	assert.Equal(t, 0, flights.calls)
}

func TestAggregateTransferWhenFlyingWithoutCar(t *testing.T) {
	flights := &fakeFlights{offers: []Offer{{Provider: "kayak", Price: 300}}}
	a := newTestAggregator(flights, nil, nil, nil)

	prefs := domain.TravelPreferences{PrimaryAirport: "LAX", RentalCarPreference: "none"}
	set, err := a.Aggregate(context.Background(), testEvent(), prefs)
	require.NoError(t, err)

	require.NotNil(t, set.Flight)
	assert.Nil(t, set.Car)
	require.NotNil(t, set.Transfer)
	assert.Equal(t, domain.PriceEstimated, set.Transfer.PriceType)
	assert.Equal(t, float64(defaultTransferEstimate), set.Transfer.Price)
}

func TestAggregateNoTransferWhenDriving(t *testing.T) {
	flights := &fakeFlights{offers: []Offer{{Provider: "kayak", Price: 300}}}
	a := newTestAggregator(flights, nil, nil, nil)

	set, err := a.Aggregate(context.Background(), testEvent(), domain.TravelPreferences{PrimaryAirport: "LAX"})
	require.NoError(t, err)
	require.NotNil(t, set.Flight)
	require.NotNil(t, set.Car)
	assert.Nil(t, set.Transfer)
}

func TestCheapest(t *testing.T) {
	offers := []Offer{
		{Provider: "a", Price: 0},
		{Provider: "b", Price: 120},
		{Provider: "c", Price: 80},
		{Provider: "d", Price: -5},
	}

	best, ok := cheapest(offers)
	require.True(t, ok)
	assert.Equal(t, "c", best.Provider)

	_, ok = cheapest([]Offer{{Provider: "a", Price: 0}})
	assert.False(t, ok)
}

func TestBookingURLsAreDeterministic(t *testing.T) {
	out := time.Date(2026, time.October, 9, 0, 0, 0, 0, time.UTC)
	in := time.Date(2026, time.October, 11, 0, 0, 0, 0, time.UTC)

	assert.Equal(t,
		"https://www.kayak.com/flights/LAX-DEN/2026-10-09/2026-10-11",
		flightBookingURL("kayak", "LAX", "DEN", out, in))
	assert.Equal(t,
		"https://www.skyscanner.com/transport/flights/LAX/DEN/261009/261011/",
		flightBookingURL("skyscanner", "LAX", "DEN", out, in))

	assert.Equal(t, hotelBookingURL("booking", "Denver", out, in), hotelBookingURL("booking", "Denver", out, in))
	assert.Contains(t, ticketBookingURL("stubhub", "Odesza Live", "Red Rocks", out), "stubhub.com")
	assert.Contains(t, transferBookingURL("viator", "Denver", out), "viator.com")
}

func TestEstimateTables(t *testing.T) {
	assert.Equal(t, 420.0, estimateFlightPrice("LAX", "JFK"))
	assert.Equal(t, float64(defaultFlightEstimate), estimateFlightPrice("XXX", "YYY"))

	assert.Equal(t, 360.0, estimateHotelNightly("New York", "Marriott"))
	assert.Equal(t, 320.0, estimateHotelNightly("New York", "Unknown Brand"))
	assert.Equal(t, float64(defaultHotelNightlyEstimate), estimateHotelNightly("Smallville", ""))

	assert.Equal(t, 280.0, estimateTicketPrice("Festival"))
	assert.Equal(t, float64(defaultTicketEstimate), estimateTicketPrice("unknown"))

	assert.Equal(t, 35.0, estimateTransferPrice("Las Vegas"))
}
