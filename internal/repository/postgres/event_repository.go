package postgres

import (
	"context"
	"fmt"
	"time"

	"encoreTrips/domain"

	"gorm.io/gorm"
)

type EventRepository struct {
	DB *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{DB: db}
}

// SearchEvents returns upcoming event snapshots loosely matching any of the
// user's interests. Matching here is a broad candidate pull; precise scoring
// happens in the ranking layer.
func (r *EventRepository) SearchEvents(ctx context.Context, interests []domain.Interest) ([]domain.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	db := r.DB.WithContext(ctx)
	query := db.Model(&domain.Event{}).Where("event_date > ?", time.Now())

	if cond := interestConditions(db, interests); cond != nil {
		query = query.Where(cond)
	}

	var events []domain.Event
	if err := query.Order("event_date ASC").Find(&events).Error; err != nil {
		return nil, fmt.Errorf("failed to search events: %w", err)
	}

	return events, nil
}

func interestConditions(db *gorm.DB, interests []domain.Interest) *gorm.DB {
	var cond *gorm.DB
	add := func(expr string, args ...any) {
		if cond == nil {
			cond = db.Session(&gorm.Session{NewDB: true}).Where(expr, args...)
		} else {
			cond = cond.Or(expr, args...)
		}
	}

	for _, interest := range interests {
		switch interest.Kind {
		case domain.InterestArtist:
			add("artist ILIKE ?", "%"+interest.Value+"%")
		case domain.InterestVenue:
			add("venue_name ILIKE ?", "%"+interest.Value+"%")
		case domain.InterestCity:
			add("venue_city ILIKE ?", interest.Value)
		case domain.InterestGenre:
			add("genres::text ILIKE ?", "%"+interest.Value+"%")
		case domain.InterestEventType:
			add("event_type = ?", interest.Value)
		case domain.InterestEventSubtype:
			add("event_subtype = ?", interest.Value)
		}
	}

	return cond
}
