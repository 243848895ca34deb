package postgres

import (
	"context"
	"errors"
	"fmt"

	"encoreTrips/domain"

	"gorm.io/gorm"
)

type AirportRepository struct {
	DB *gorm.DB
}

func NewAirportRepository(db *gorm.DB) *AirportRepository {
	return &AirportRepository{DB: db}
}

// ResolveAirport maps a city (and optional state) to its primary airport
// code. Returns domain.ErrNoAirport when the city is not covered.
func (r *AirportRepository) ResolveAirport(ctx context.Context, city, state string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("context error: %w", err)
	}
	if city == "" {
		return "", domain.ErrNoAirport
	}

	query := r.DB.WithContext(ctx).Where("LOWER(city) = LOWER(?)", city)
	if state != "" {
		query = query.Where("LOWER(state) = LOWER(?)", state)
	}

	var airport domain.Airport
	err := query.First(&airport).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", domain.ErrNoAirport
	}
	if err != nil {
		return "", fmt.Errorf("failed to query airport: %w", err)
	}

	return airport.IATACode, nil
}
