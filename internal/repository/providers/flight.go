package providers

import (
	"context"
	"fmt"
	"time"

	"encoreTrips/business/travel"

	"github.com/go-resty/resty/v2"
	gobreaker "github.com/sony/gobreaker/v2"
)

type FlightConfig struct {
	BaseURL string
	APIKey  string
}

type FlightClient struct {
	client  *resty.Client
	breaker *gobreaker.CircuitBreaker[[]travel.Offer]
}

func NewFlightClient(cfg FlightConfig) *FlightClient {
	return &FlightClient{
		client:  newRestClient(cfg.BaseURL).SetHeader("X-Api-Key", cfg.APIKey),
		breaker: newBreaker[[]travel.Offer]("flight-provider"),
	}
}

func (c *FlightClient) SearchFlights(ctx context.Context, origin, dest string, outDate, inDate time.Time, pax int) ([]travel.Offer, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	offers, err := c.breaker.Execute(func() ([]travel.Offer, error) {
		var payload []offerPayload
		resp, err := c.client.R().
			SetContext(ctx).
			SetQueryParams(map[string]string{
				"origin":      origin,
				"destination": dest,
				"depart":      outDate.Format(searchDateLayout),
				"return":      inDate.Format(searchDateLayout),
				"passengers":  fmt.Sprintf("%d", pax),
			}).
			SetResult(&payload).
			Get("/v1/flights/search")
		if err != nil {
			return nil, err
		}
		if err := checkStatus("flight provider", resp); err != nil {
			return nil, err
		}
		return toOffers(payload), nil
	})
	if err != nil {
		return nil, unavailable("flight provider", err)
	}

	return offers, nil
}
