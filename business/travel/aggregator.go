package travel

import (
	"context"
	"fmt"
	"strings"
	"time"

	"encoreTrips/domain"
	"encoreTrips/pkg/cache"
	"encoreTrips/pkg/logger"

	"gorm.io/datatypes"
)

// ComponentSet is the result of aggregation: each leg is optional and
// independently fallible.
type ComponentSet struct {
	Ticket   *domain.TripComponent
	Flight   *domain.TripComponent
	Hotel    *domain.TripComponent
	Car      *domain.TripComponent
	Transfer *domain.TripComponent
}

// All returns the present components in persistence order.
func (s *ComponentSet) All() []domain.TripComponent {
	var out []domain.TripComponent
	for _, c := range []*domain.TripComponent{s.Ticket, s.Flight, s.Hotel, s.Car, s.Transfer} {
		if c != nil {
			out = append(out, *c)
		}
	}
	return out
}

type Aggregator struct {
	flights  FlightProvider
	hotels   HotelProvider
	cars     CarProvider
	tickets  TicketProvider
	airports AirportResolver
	cache    cache.Cache

	// now is the clock, injectable for tests
	now func() time.Time
}

func NewAggregator(
	flights FlightProvider,
	hotels HotelProvider,
	cars CarProvider,
	tickets TicketProvider,
	airports AirportResolver,
	c cache.Cache,
) *Aggregator {
	return &Aggregator{
		flights:  flights,
		hotels:   hotels,
		cars:     cars,
		tickets:  tickets,
		airports: airports,
		cache:    c,
		now:      time.Now,
	}
}

// WithClock overrides the aggregator's clock.
func (a *Aggregator) WithClock(now func() time.Time) *Aggregator {
	a.now = now
	return a
}

// Aggregate resolves priced components for one event through the fallback
// ladder. It returns domain.ErrNoAirport when neither the user's nor the
// event's airport can be resolved; a trip without its core travel leg is
// never created.
func (a *Aggregator) Aggregate(ctx context.Context, event domain.Event, prefs domain.TravelPreferences) (*ComponentSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	dest := a.resolveDestination(ctx, event)
	origin := prefs.PrimaryAirport
	if dest == "" && origin == "" {
		return nil, domain.ErrNoAirport
	}

	// travel window: out the day before the event, back the day after
	departAt := startOfDay(event.EventDate.AddDate(0, 0, -1))
	returnAt := startOfDay(event.EventDate.AddDate(0, 0, 1))
	today := startOfDay(a.now())
	travelInPast := departAt.Before(today)

	set := &ComponentSet{}

	set.Ticket = runLadder(ctx, domain.ComponentTicket, a.ticketTiers(event))

	// travel search into the past is meaningless and wastes a provider call
	if travelInPast {
		logger.Debug("skipping travel legs for past-dated event", "event_id", event.ID, "event_date", event.EventDate)
		return set, nil
	}

	if origin != "" && dest != "" {
		set.Flight = runLadder(ctx, domain.ComponentFlight, a.flightTiers(origin, dest, departAt, returnAt, prefs))
	}

	set.Hotel = runLadder(ctx, domain.ComponentHotel, a.hotelTiers(event.VenueCity, departAt, returnAt, prefs))

	if dest != "" && !strings.EqualFold(prefs.RentalCarPreference, "none") {
		set.Car = runLadder(ctx, domain.ComponentCar, a.carTiers(dest, event.VenueCity, departAt, returnAt, prefs))
	}

	// a flyer without a rental still needs to reach the venue
	if set.Flight != nil && set.Car == nil {
		set.Transfer = a.transferComponent(event.VenueCity, departAt)
	}

	return set, nil
}

// resolveDestination looks up the event city's primary airport. Resolution
// failure is not an error by itself; the caller decides whether a trip is
// still possible.
func (a *Aggregator) resolveDestination(ctx context.Context, event domain.Event) string {
	if a.airports == nil {
		return ""
	}

	code, err := a.airports.ResolveAirport(ctx, event.VenueCity, event.VenueState)
	if err != nil {
		logger.Debug("airport resolution failed", "city", event.VenueCity, "state", event.VenueState, "error", err)
		return ""
	}
	return code
}

// ---- Flight ----

func (a *Aggregator) flightTiers(origin, dest string, outDate, inDate time.Time, prefs domain.TravelPreferences) []tier {
	cacheKey := cache.KeyTravelQuery(domain.ComponentFlight, fmt.Sprintf("%s|%s|%s|%s",
		origin, dest, outDate.Format(bookingDateLayout), inDate.Format(bookingDateLayout)))

	build := func(provider string, price float64, priceType string) *domain.TripComponent {
		return &domain.TripComponent{
			Kind:       domain.ComponentFlight,
			Provider:   provider,
			Price:      price,
			PriceType:  priceType,
			BookingURL: flightBookingURL(provider, origin, dest, outDate, inDate),
			Details: datatypes.JSONMap{
				"origin":      origin,
				"destination": dest,
				"depart":      outDate.Format(bookingDateLayout),
				"return":      inDate.Format(bookingDateLayout),
				"airlines":    []string(prefs.PreferredAirlines),
			},
		}
	}

	return []tier{
		{name: tierLive, fetch: func(ctx context.Context) (*domain.TripComponent, bool) {
			if a.flights == nil {
				return nil, false
			}
			offers, err := a.flights.SearchFlights(ctx, origin, dest, outDate, inDate, 1)
			if err != nil || len(offers) == 0 {
				return nil, false
			}
			best, ok := cheapest(offers)
			if !ok {
				return nil, false
			}
			comp := build(best.Provider, best.Price, domain.PriceReal)
			a.cacheComponent(ctx, cacheKey, comp)
			return comp, true
		}},
		{name: tierCached, fetch: func(ctx context.Context) (*domain.TripComponent, bool) {
			return a.cachedComponent(ctx, cacheKey)
		}},
		{name: tierStatic, fetch: func(ctx context.Context) (*domain.TripComponent, bool) {
			return build("kayak", estimateFlightPrice(origin, dest), domain.PriceEstimated), true
		}},
	}
}

// ---- Hotel ----

func (a *Aggregator) hotelTiers(city string, checkIn, checkOut time.Time, prefs domain.TravelPreferences) []tier {
	brand := ""
	if len(prefs.PreferredHotelBrands) > 0 {
		brand = prefs.PreferredHotelBrands[0]
	}
	nights := int(checkOut.Sub(checkIn).Hours() / 24)
	if nights < 1 {
		nights = 1
	}

	cacheKey := cache.KeyTravelQuery(domain.ComponentHotel, fmt.Sprintf("%s|%s|%s",
		city, checkIn.Format(bookingDateLayout), checkOut.Format(bookingDateLayout)))

	build := func(provider string, price float64, priceType string) *domain.TripComponent {
		return &domain.TripComponent{
			Kind:       domain.ComponentHotel,
			Provider:   provider,
			Price:      price,
			PriceType:  priceType,
			BookingURL: hotelBookingURL(provider, city, checkIn, checkOut),
			Details: datatypes.JSONMap{
				"city":     city,
				"checkin":  checkIn.Format(bookingDateLayout),
				"checkout": checkOut.Format(bookingDateLayout),
				"nights":   nights,
				"brand":    brand,
			},
		}
	}

	return []tier{
		{name: tierLive, fetch: func(ctx context.Context) (*domain.TripComponent, bool) {
			if a.hotels == nil {
				return nil, false
			}
			offers, err := a.hotels.SearchHotels(ctx, city, checkIn, checkOut, 1)
			if err != nil || len(offers) == 0 {
				return nil, false
			}
			best, ok := cheapest(offers)
			if !ok {
				return nil, false
			}
			comp := build(best.Provider, best.Price, domain.PriceReal)
			a.cacheComponent(ctx, cacheKey, comp)
			return comp, true
		}},
		{name: tierCached, fetch: func(ctx context.Context) (*domain.TripComponent, bool) {
			return a.cachedComponent(ctx, cacheKey)
		}},
		{name: tierStatic, fetch: func(ctx context.Context) (*domain.TripComponent, bool) {
			return build("booking", estimateHotelNightly(city, brand)*float64(nights), domain.PriceEstimated), true
		}},
	}
}

// ---- Car ----

func (a *Aggregator) carTiers(pickupLoc, city string, pickupAt, dropoffAt time.Time, prefs domain.TravelPreferences) []tier {
	days := int(dropoffAt.Sub(pickupAt).Hours() / 24)
	if days < 1 {
		days = 1
	}

	cacheKey := cache.KeyTravelQuery(domain.ComponentCar, fmt.Sprintf("%s|%s|%s",
		pickupLoc, pickupAt.Format(bookingDateLayout), dropoffAt.Format(bookingDateLayout)))

	build := func(provider string, price float64, priceType string) *domain.TripComponent {
		return &domain.TripComponent{
			Kind:       domain.ComponentCar,
			Provider:   provider,
			Price:      price,
			PriceType:  priceType,
			BookingURL: carBookingURL(provider, pickupLoc, pickupAt, dropoffAt),
			Details: datatypes.JSONMap{
				"pickup":     pickupLoc,
				"dropoff":    pickupLoc,
				"from":       pickupAt.Format(bookingDateLayout),
				"to":         dropoffAt.Format(bookingDateLayout),
				"days":       days,
				"preference": prefs.RentalCarPreference,
			},
		}
	}

	return []tier{
		{name: tierLive, fetch: func(ctx context.Context) (*domain.TripComponent, bool) {
			if a.cars == nil {
				return nil, false
			}
			offers, err := a.cars.SearchCarRentals(ctx, pickupLoc, pickupLoc, pickupAt, dropoffAt)
			if err != nil || len(offers) == 0 {
				return nil, false
			}
			best, ok := cheapest(offers)
			if !ok {
				return nil, false
			}
			comp := build(best.Provider, best.Price, domain.PriceReal)
			a.cacheComponent(ctx, cacheKey, comp)
			return comp, true
		}},
		{name: tierCached, fetch: func(ctx context.Context) (*domain.TripComponent, bool) {
			return a.cachedComponent(ctx, cacheKey)
		}},
		{name: tierStatic, fetch: func(ctx context.Context) (*domain.TripComponent, bool) {
			return build("kayak", estimateCarDaily(city)*float64(days), domain.PriceEstimated), true
		}},
	}
}

// ---- Ticket ----

func (a *Aggregator) ticketTiers(event domain.Event) []tier {
	cacheKey := cache.KeyTravelQuery(domain.ComponentTicket, fmt.Sprintf("%s|%s|%s",
		event.ExternalID, event.VenueName, event.EventDate.Format(bookingDateLayout)))

	build := func(provider string, price float64, priceType string) *domain.TripComponent {
		return &domain.TripComponent{
			Kind:       domain.ComponentTicket,
			Provider:   provider,
			Price:      price,
			PriceType:  priceType,
			BookingURL: ticketBookingURL(provider, event.Name, event.VenueName, event.EventDate),
			Details: datatypes.JSONMap{
				"event":       event.Name,
				"venue":       event.VenueName,
				"date":        event.EventDate.Format(bookingDateLayout),
				"external_id": event.ExternalID,
			},
		}
	}

	return []tier{
		{name: tierLive, fetch: func(ctx context.Context) (*domain.TripComponent, bool) {
			if a.tickets == nil {
				return nil, false
			}
			offers, err := a.tickets.SearchTickets(ctx, event.Name, event.VenueName, event.EventDate)
			if err != nil || len(offers) == 0 {
				return nil, false
			}
			best, ok := cheapest(offers)
			if !ok {
				return nil, false
			}
			comp := build(best.Provider, best.Price, domain.PriceReal)
			a.cacheComponent(ctx, cacheKey, comp)
			return comp, true
		}},
		{name: tierCached, fetch: func(ctx context.Context) (*domain.TripComponent, bool) {
			return a.cachedComponent(ctx, cacheKey)
		}},
		// the snapshot's stored price range came from a provider once,
		// so it still counts as real
		{name: tierStored, fetch: func(ctx context.Context) (*domain.TripComponent, bool) {
			if !event.HasPriceHint() {
				return nil, false
			}
			return build("ticketmaster", event.MidPrice(), domain.PriceReal), true
		}},
		{name: tierStatic, fetch: func(ctx context.Context) (*domain.TripComponent, bool) {
			return build("ticketmaster", estimateTicketPrice(event.EventType), domain.PriceEstimated), true
		}},
	}
}

// ---- Transfer ----

func (a *Aggregator) transferComponent(city string, date time.Time) *domain.TripComponent {
	return &domain.TripComponent{
		Kind:       domain.ComponentTransfer,
		Provider:   "viator",
		Price:      estimateTransferPrice(city),
		PriceType:  domain.PriceEstimated,
		BookingURL: transferBookingURL("viator", city, date),
		Details: datatypes.JSONMap{
			"city": city,
			"date": date.Format(bookingDateLayout),
		},
	}
}

// ---- cache helpers ----

func (a *Aggregator) cacheComponent(ctx context.Context, key string, comp *domain.TripComponent) {
	if a.cache == nil {
		return
	}
	if err := a.cache.Set(ctx, key, comp, cache.TTLTravelQuery); err != nil {
		logger.Warn("failed to cache travel component", "key", key, "error", err)
	}
}

func (a *Aggregator) cachedComponent(ctx context.Context, key string) (*domain.TripComponent, bool) {
	if a.cache == nil {
		return nil, false
	}

	var comp domain.TripComponent
	hit, err := a.cache.Get(ctx, key, &comp)
	if err != nil {
		logger.Warn("travel cache read failed", "key", key, "error", err)
		return nil, false
	}
	if !hit {
		return nil, false
	}
	return &comp, true
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
