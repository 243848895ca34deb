package domain

import "errors"

var (
	// ErrNotFound indicates a referenced user/event/suggestion row is absent.
	ErrNotFound = errors.New("record not found")

	// ErrNoAirport indicates neither the user's nor the event's airport could
	// be resolved; trip generation for that event is aborted.
	ErrNoAirport = errors.New("no resolvable airport")

	// ErrTripBooked guards deletion of a suggestion the user already booked.
	ErrTripBooked = errors.New("trip is already booked")

	// ErrProviderUnavailable is returned by provider clients on any transport
	// or upstream failure. The aggregator treats it the same as an empty
	// result set.
	ErrProviderUnavailable = errors.New("provider unavailable")
)
