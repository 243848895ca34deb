package postgres

import (
	"context"
	"fmt"

	"encoreTrips/domain"

	"gorm.io/gorm"
)

type InterestRepository struct {
	DB *gorm.DB
}

func NewInterestRepository(db *gorm.DB) *InterestRepository {
	return &InterestRepository{DB: db}
}

func (r *InterestRepository) GetInterests(ctx context.Context, userID uint) ([]domain.Interest, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var interests []domain.Interest
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("priority ASC").
		Find(&interests).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query interests: %w", err)
	}

	return interests, nil
}
