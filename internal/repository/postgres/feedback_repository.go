package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"encoreTrips/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FeedbackRepository struct {
	DB *gorm.DB
}

func NewFeedbackRepository(db *gorm.DB) *FeedbackRepository {
	return &FeedbackRepository{DB: db}
}

type feedbackSignalRow struct {
	Value     string `gorm:"column:value"`
	EventID   uint   `gorm:"column:event_id"`
	Artist    string `gorm:"column:artist"`
	VenueName string `gorm:"column:venue_name"`
	VenueCity string `gorm:"column:venue_city"`
	Genres    []byte `gorm:"column:genres"`
}

// History returns the user's feedback joined with the event snapshot each
// trip was built for. Signals whose trip or event has since been deleted
// are not returned.
func (r *FeedbackRepository) History(ctx context.Context, userID uint) ([]domain.FeedbackSignal, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var rows []feedbackSignalRow
	err := r.DB.WithContext(ctx).
		Table("trip_feedback").
		Select("trip_feedback.value, events.id AS event_id, events.artist, events.venue_name, events.venue_city, events.genres").
		Joins("JOIN trip_suggestions ON trip_suggestions.id = trip_feedback.trip_suggestion_id").
		Joins("JOIN events ON events.id = trip_suggestions.event_id").
		Where("trip_feedback.user_id = ?", userID).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query feedback history: %w", err)
	}

	signals := make([]domain.FeedbackSignal, 0, len(rows))
	for _, row := range rows {
		signal := domain.FeedbackSignal{
			Value:     row.Value,
			EventID:   row.EventID,
			Artist:    row.Artist,
			VenueName: row.VenueName,
			VenueCity: row.VenueCity,
		}
		if len(row.Genres) > 0 {
			if err := json.Unmarshal(row.Genres, &signal.Genres); err != nil {
				return nil, fmt.Errorf("failed to unmarshal event genres: %w", err)
			}
		}
		signals = append(signals, signal)
	}

	return signals, nil
}

// Upsert keeps at most one feedback row per (user, trip); resubmitting
// replaces the previous value.
func (r *FeedbackRepository) Upsert(ctx context.Context, feedback domain.Feedback) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Clauses(
		clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "trip_suggestion_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		},
	).Create(&feedback).Error; err != nil {
		return fmt.Errorf("failed to upsert feedback: %w", err)
	}

	return nil
}
