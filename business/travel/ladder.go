package travel

import (
	"context"

	"encoreTrips/domain"
	"encoreTrips/pkg/logger"
	"encoreTrips/pkg/metrics"
)

// tier is one rung of the fallback ladder: an increasingly-approximate data
// source that may or may not yield a usable component.
type tier struct {
	name  string
	fetch func(ctx context.Context) (*domain.TripComponent, bool)
}

// runLadder tries tiers top to bottom, first success wins. A nil result
// means every tier failed and the component is omitted.
func runLadder(ctx context.Context, kind string, tiers []tier) *domain.TripComponent {
	for _, t := range tiers {
		comp, ok := t.fetch(ctx)
		if !ok {
			continue
		}
		metrics.FallbackTier.WithLabelValues(kind, t.name).Inc()
		if t.name != tierLive {
			logger.Debug("component resolved from fallback tier", "kind", kind, "tier", t.name)
		}
		return comp
	}

	metrics.FallbackTier.WithLabelValues(kind, "omitted").Inc()
	return nil
}

const (
	tierLive   = "live"
	tierCached = "cached"
	tierStored = "stored"
	tierStatic = "static"
)

// cheapest picks the lowest-priced offer with a positive price.
func cheapest(offers []Offer) (Offer, bool) {
	best := Offer{}
	found := false
	for _, o := range offers {
		if o.Price <= 0 {
			continue
		}
		if !found || o.Price < best.Price {
			best = o
			found = true
		}
	}
	return best, found
}
