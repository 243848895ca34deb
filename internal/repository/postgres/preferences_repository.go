package postgres

import (
	"context"
	"errors"
	"fmt"

	"encoreTrips/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PreferencesRepository struct {
	DB *gorm.DB
}

func NewPreferencesRepository(db *gorm.DB) *PreferencesRepository {
	return &PreferencesRepository{DB: db}
}

func (r *PreferencesRepository) GetTravelPreferences(ctx context.Context, userID uint) (domain.TravelPreferences, bool, error) {
	if err := ctx.Err(); err != nil {
		return domain.TravelPreferences{}, false, fmt.Errorf("context error: %w", err)
	}

	var prefs domain.TravelPreferences
	err := r.DB.WithContext(ctx).First(&prefs, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.TravelPreferences{}, false, nil
	}
	if err != nil {
		return domain.TravelPreferences{}, false, fmt.Errorf("failed to query travel preferences: %w", err)
	}

	return prefs, true, nil
}

func (r *PreferencesRepository) Upsert(ctx context.Context, prefs *domain.TravelPreferences) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Clauses(
		clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			UpdateAll: true,
		},
	).Create(prefs).Error; err != nil {
		return fmt.Errorf("failed to upsert travel preferences: %w", err)
	}

	return nil
}
