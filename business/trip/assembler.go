package trip

import (
	"context"
	"fmt"
	"time"

	"encoreTrips/domain"
)

// TripRepository is the persistence contract the trip package needs.
type TripRepository interface {
	UpsertSuggestion(ctx context.Context, suggestion *domain.TripSuggestion) error
	ReplaceComponents(ctx context.Context, suggestionID uint, components []domain.TripComponent) error
	FindByID(ctx context.Context, id uint) (domain.TripSuggestion, error)
	FindByUser(ctx context.Context, userID uint) ([]domain.TripSuggestion, error)
	ExistingEventIDs(ctx context.Context, userID uint) (map[uint]struct{}, error)
	Delete(ctx context.Context, id uint) error
	DeleteExpired(ctx context.Context, userID uint, before time.Time) (int64, error)
	AvgTicketPrice(ctx context.Context, userID uint) (float64, error)
}

// Assembler merges aggregated components into a persisted TripSuggestion.
type Assembler struct {
	tripRepo TripRepository
}

func NewAssembler(tripRepo TripRepository) *Assembler {
	return &Assembler{tripRepo: tripRepo}
}

// Assemble computes totals, upserts the (user, event) suggestion and fully
// replaces its component set. Idempotent: a second call for the same pair
// updates the existing row.
func (a *Assembler) Assemble(ctx context.Context, userID uint, event domain.Event, components []domain.TripComponent) (*domain.TripSuggestion, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	totalCost := 0.0
	for _, c := range components {
		totalCost += c.Price
	}

	suggestion := &domain.TripSuggestion{
		UserID:     userID,
		EventID:    event.ID,
		Status:     domain.TripStatusPending,
		TotalCost:  totalCost,
		ServiceFee: domain.ServiceFeeFor(totalCost),
	}

	if err := a.tripRepo.UpsertSuggestion(ctx, suggestion); err != nil {
		return nil, fmt.Errorf("failed to upsert trip suggestion: %w", err)
	}

	if err := a.tripRepo.ReplaceComponents(ctx, suggestion.ID, components); err != nil {
		return nil, fmt.Errorf("failed to replace trip components: %w", err)
	}

	suggestion.Components = make([]domain.TripComponent, len(components))
	copy(suggestion.Components, components)
	for i := range suggestion.Components {
		suggestion.Components[i].TripSuggestionID = suggestion.ID
	}
	suggestion.Event = &event

	return suggestion, nil
}
