package providers

import (
	"context"
	"fmt"
	"time"

	"encoreTrips/business/travel"

	"github.com/go-resty/resty/v2"
	"github.com/pobyzaarif/goshortcute"
	gobreaker "github.com/sony/gobreaker/v2"
)

type TicketConfig struct {
	BaseURL           string
	BasicAuthUsername string
	BasicAuthPassword string
}

type TicketClient struct {
	client  *resty.Client
	breaker *gobreaker.CircuitBreaker[[]travel.Offer]
}

func NewTicketClient(cfg TicketConfig) *TicketClient {
	buildBasicAuth := goshortcute.StringtoBase64Encode(cfg.BasicAuthUsername + ":" + cfg.BasicAuthPassword)

	return &TicketClient{
		client:  newRestClient(cfg.BaseURL).SetHeader("Authorization", "Basic "+buildBasicAuth),
		breaker: newBreaker[[]travel.Offer]("ticket-provider"),
	}
}

func (c *TicketClient) SearchTickets(ctx context.Context, eventName, venue string, date time.Time) ([]travel.Offer, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	offers, err := c.breaker.Execute(func() ([]travel.Offer, error) {
		var payload []offerPayload
		resp, err := c.client.R().
			SetContext(ctx).
			SetQueryParams(map[string]string{
				"event": eventName,
				"venue": venue,
				"date":  date.Format(searchDateLayout),
			}).
			SetResult(&payload).
			Get("/v2/listings/search")
		if err != nil {
			return nil, err
		}
		if err := checkStatus("ticket provider", resp); err != nil {
			return nil, err
		}
		return toOffers(payload), nil
	})
	if err != nil {
		return nil, unavailable("ticket provider", err)
	}

	return offers, nil
}
