package providers

import (
	"errors"
	"fmt"
	"time"

	"encoreTrips/business/travel"
	"encoreTrips/domain"

	"github.com/go-resty/resty/v2"
	gobreaker "github.com/sony/gobreaker/v2"
)

const (
	requestTimeout = 10 * time.Second

	breakerMaxRequests      = 3
	breakerInterval         = 60 * time.Second
	breakerTimeout          = 30 * time.Second
	breakerFailureThreshold = 5
)

const searchDateLayout = "2006-01-02"

func newRestClient(baseURL string) *resty.Client {
	return resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json").
		SetTimeout(requestTimeout)
}

// newBreaker trips after consecutive failures so a dead provider stops
// eating the per-trip budget; while open, calls fail fast and the fallback
// ladder takes over.
func newBreaker[T any](name string) *gobreaker.CircuitBreaker[T] {
	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: breakerMaxRequests,
		Interval:    breakerInterval,
		Timeout:     breakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerFailureThreshold
		},
	}

	return gobreaker.NewCircuitBreaker[T](settings)
}

// unavailable normalizes breaker-open and transport failures into the
// provider-unavailable sentinel the aggregator treats as a tier miss.
func unavailable(provider string, err error) error {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%s circuit open: %w", provider, domain.ErrProviderUnavailable)
	}
	return fmt.Errorf("%s request failed: %w: %v", provider, domain.ErrProviderUnavailable, err)
}

func checkStatus(provider string, resp *resty.Response) error {
	if resp.IsError() {
		return fmt.Errorf("%s returned status %d", provider, resp.StatusCode())
	}
	return nil
}

type offerPayload struct {
	Provider string         `json:"provider"`
	Price    float64        `json:"price"`
	Currency string         `json:"currency"`
	Details  map[string]any `json:"details"`
}

func toOffers(payload []offerPayload) []travel.Offer {
	offers := make([]travel.Offer, 0, len(payload))
	for _, p := range payload {
		offers = append(offers, travel.Offer{
			Provider: p.Provider,
			Price:    p.Price,
			Currency: p.Currency,
			Details:  p.Details,
		})
	}
	return offers
}
