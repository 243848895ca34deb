package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"encoreTrips/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TripRepository struct {
	DB *gorm.DB
}

func NewTripRepository(db *gorm.DB) *TripRepository {
	return &TripRepository{DB: db}
}

// ---- Suggestions ----

func (r *TripRepository) UpsertSuggestion(ctx context.Context, suggestion *domain.TripSuggestion) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Clauses(
		clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "event_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"total_cost", "service_fee", "updated_at"}),
		},
	).Omit("Components", "Event").Create(suggestion).Error; err != nil {
		return fmt.Errorf("failed to upsert trip suggestion: %w", err)
	}

	// On conflict the returned ID is not populated, so read it back.
	if suggestion.ID == 0 {
		var row domain.TripSuggestion
		err := r.DB.WithContext(ctx).
			Select("id").
			First(&row, "user_id = ? AND event_id = ?", suggestion.UserID, suggestion.EventID).Error
		if err != nil {
			return fmt.Errorf("failed to read back trip suggestion id: %w", err)
		}
		suggestion.ID = row.ID
	}

	return nil
}

func (r *TripRepository) ReplaceComponents(ctx context.Context, suggestionID uint, components []domain.TripComponent) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("trip_suggestion_id = ?", suggestionID).
			Delete(&domain.TripComponent{}).Error; err != nil {
			return fmt.Errorf("failed to delete old components: %w", err)
		}

		if len(components) == 0 {
			return nil
		}

		for i := range components {
			components[i].ID = 0
			components[i].TripSuggestionID = suggestionID
		}
		if err := tx.Create(&components).Error; err != nil {
			return fmt.Errorf("failed to insert components: %w", err)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to replace components: %w", err)
	}

	return nil
}

func (r *TripRepository) FindByID(ctx context.Context, id uint) (domain.TripSuggestion, error) {
	if err := ctx.Err(); err != nil {
		return domain.TripSuggestion{}, fmt.Errorf("context error: %w", err)
	}

	var suggestion domain.TripSuggestion
	err := r.DB.WithContext(ctx).
		Preload("Components").
		Preload("Event").
		First(&suggestion, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.TripSuggestion{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.TripSuggestion{}, fmt.Errorf("failed to query trip suggestion: %w", err)
	}

	return suggestion, nil
}

func (r *TripRepository) FindByUser(ctx context.Context, userID uint) ([]domain.TripSuggestion, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var suggestions []domain.TripSuggestion
	err := r.DB.WithContext(ctx).
		Preload("Components").
		Preload("Event").
		Joins("JOIN events ON events.id = trip_suggestions.event_id").
		Where("trip_suggestions.user_id = ?", userID).
		Order("events.event_date ASC").
		Find(&suggestions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query trip suggestions: %w", err)
	}

	return suggestions, nil
}

func (r *TripRepository) ExistingEventIDs(ctx context.Context, userID uint) (map[uint]struct{}, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var ids []uint
	err := r.DB.WithContext(ctx).
		Model(&domain.TripSuggestion{}).
		Where("user_id = ?", userID).
		Pluck("event_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query existing event ids: %w", err)
	}

	existing := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		existing[id] = struct{}{}
	}

	return existing, nil
}

func (r *TripRepository) Delete(ctx context.Context, id uint) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("trip_suggestion_id = ?", id).
			Delete(&domain.TripComponent{}).Error; err != nil {
			return fmt.Errorf("failed to delete components: %w", err)
		}
		if err := tx.Delete(&domain.TripSuggestion{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete suggestion: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete trip suggestion: %w", err)
	}

	return nil
}

// DeleteExpired removes suggestions whose event date has passed. Booked
// trips are kept as a record of the purchase.
func (r *TripRepository) DeleteExpired(ctx context.Context, userID uint, before time.Time) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("context error: %w", err)
	}

	var ids []uint
	err := r.DB.WithContext(ctx).
		Model(&domain.TripSuggestion{}).
		Joins("JOIN events ON events.id = trip_suggestions.event_id").
		Where("trip_suggestions.user_id = ? AND trip_suggestions.status <> ? AND events.event_date < ?",
			userID, domain.TripStatusBooked, before).
		Pluck("trip_suggestions.id", &ids).Error
	if err != nil {
		return 0, fmt.Errorf("failed to query expired suggestions: %w", err)
	}
	if len(ids) == 0 {
		return 0, nil
	}

	err = r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("trip_suggestion_id IN ?", ids).
			Delete(&domain.TripComponent{}).Error; err != nil {
			return fmt.Errorf("failed to delete expired components: %w", err)
		}
		if err := tx.Delete(&domain.TripSuggestion{}, "id IN ?", ids).Error; err != nil {
			return fmt.Errorf("failed to delete expired suggestions: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired trips: %w", err)
	}

	return int64(len(ids)), nil
}

// AvgTicketPrice is the user's average spent on ticket components across all
// of their suggestions, used as the price-sensitivity anchor.
func (r *TripRepository) AvgTicketPrice(ctx context.Context, userID uint) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("context error: %w", err)
	}

	var avg *float64
	err := r.DB.WithContext(ctx).
		Model(&domain.TripComponent{}).
		Joins("JOIN trip_suggestions ON trip_suggestions.id = trip_components.trip_suggestion_id").
		Where("trip_suggestions.user_id = ? AND trip_components.kind = ?", userID, domain.ComponentTicket).
		Select("AVG(trip_components.price)").
		Scan(&avg).Error
	if err != nil {
		return 0, fmt.Errorf("failed to query average ticket price: %w", err)
	}
	if avg == nil {
		return 0, nil
	}

	return *avg, nil
}
