package travel

import (
	"context"
	"time"
)

// Offer is one provider-agnostic priced result. Providers return their
// offers cheapest-first or unordered; the aggregator picks the cheapest.
type Offer struct {
	Provider string         `json:"provider"`
	Price    float64        `json:"price"`
	Currency string         `json:"currency"`
	Details  map[string]any `json:"details,omitempty"`
}

// Provider contracts. Implementations live in internal/repository/providers.
// Each returns its offers or an error; the aggregator treats an error and an
// empty list identically and moves to the next fallback tier.

type FlightProvider interface {
	SearchFlights(ctx context.Context, origin, dest string, outDate, inDate time.Time, pax int) ([]Offer, error)
}

type HotelProvider interface {
	SearchHotels(ctx context.Context, cityOrCode string, checkIn, checkOut time.Time, pax int) ([]Offer, error)
}

type CarProvider interface {
	SearchCarRentals(ctx context.Context, pickupLoc, dropoffLoc string, pickupAt, dropoffAt time.Time) ([]Offer, error)
}

type TicketProvider interface {
	SearchTickets(ctx context.Context, eventName, venue string, date time.Time) ([]Offer, error)
}

// AirportResolver maps a venue city/state to its primary airport code.
type AirportResolver interface {
	ResolveAirport(ctx context.Context, city, state string) (string, error)
}
