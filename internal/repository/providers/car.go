package providers

import (
	"context"
	"fmt"
	"time"

	"encoreTrips/business/travel"

	"github.com/go-resty/resty/v2"
	gobreaker "github.com/sony/gobreaker/v2"
)

type CarConfig struct {
	BaseURL string
	APIKey  string
}

type CarClient struct {
	client  *resty.Client
	breaker *gobreaker.CircuitBreaker[[]travel.Offer]
}

func NewCarClient(cfg CarConfig) *CarClient {
	return &CarClient{
		client:  newRestClient(cfg.BaseURL).SetHeader("X-Api-Key", cfg.APIKey),
		breaker: newBreaker[[]travel.Offer]("car-provider"),
	}
}

func (c *CarClient) SearchCarRentals(ctx context.Context, pickupLoc, dropoffLoc string, pickupAt, dropoffAt time.Time) ([]travel.Offer, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	offers, err := c.breaker.Execute(func() ([]travel.Offer, error) {
		var payload []offerPayload
		resp, err := c.client.R().
			SetContext(ctx).
			SetQueryParams(map[string]string{
				"pickup_location":  pickupLoc,
				"dropoff_location": dropoffLoc,
				"pickup_date":      pickupAt.Format(searchDateLayout),
				"dropoff_date":     dropoffAt.Format(searchDateLayout),
			}).
			SetResult(&payload).
			Get("/v1/cars/search")
		if err != nil {
			return nil, err
		}
		if err := checkStatus("car provider", resp); err != nil {
			return nil, err
		}
		return toOffers(payload), nil
	})
	if err != nil {
		return nil, unavailable("car provider", err)
	}

	return offers, nil
}
