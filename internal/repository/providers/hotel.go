package providers

import (
	"context"
	"fmt"
	"time"

	"encoreTrips/business/travel"

	"github.com/go-resty/resty/v2"
	gobreaker "github.com/sony/gobreaker/v2"
)

type HotelConfig struct {
	BaseURL string
	APIKey  string
}

type HotelClient struct {
	client  *resty.Client
	breaker *gobreaker.CircuitBreaker[[]travel.Offer]
}

func NewHotelClient(cfg HotelConfig) *HotelClient {
	return &HotelClient{
		client:  newRestClient(cfg.BaseURL).SetHeader("X-Api-Key", cfg.APIKey),
		breaker: newBreaker[[]travel.Offer]("hotel-provider"),
	}
}

func (c *HotelClient) SearchHotels(ctx context.Context, cityOrCode string, checkIn, checkOut time.Time, pax int) ([]travel.Offer, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	offers, err := c.breaker.Execute(func() ([]travel.Offer, error) {
		var payload []offerPayload
		resp, err := c.client.R().
			SetContext(ctx).
			SetQueryParams(map[string]string{
				"location":  cityOrCode,
				"check_in":  checkIn.Format(searchDateLayout),
				"check_out": checkOut.Format(searchDateLayout),
				"guests":    fmt.Sprintf("%d", pax),
			}).
			SetResult(&payload).
			Get("/v1/hotels/search")
		if err != nil {
			return nil, err
		}
		if err := checkStatus("hotel provider", resp); err != nil {
			return nil, err
		}
		return toOffers(payload), nil
	})
	if err != nil {
		return nil, unavailable("hotel provider", err)
	}

	return offers, nil
}
