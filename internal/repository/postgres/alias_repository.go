package postgres

import (
	"context"
	"errors"
	"fmt"

	"encoreTrips/domain"

	"gorm.io/gorm"
)

// aliasConfidenceStep is added on each repeated match, capped at 1.0.
const aliasConfidenceStep = 0.1

type AliasRepository struct {
	DB *gorm.DB
}

func NewAliasRepository(db *gorm.DB) *AliasRepository {
	return &AliasRepository{DB: db}
}

// FindAliases returns learned aliases in either direction for a name, with
// low-confidence rows filtered out.
func (r *AliasRepository) FindAliases(ctx context.Context, name string, minConfidence float64) ([]domain.ArtistAlias, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var aliases []domain.ArtistAlias
	err := r.DB.WithContext(ctx).
		Where("(primary_name = ? OR alias_name = ?) AND confidence >= ?", name, name, minConfidence).
		Find(&aliases).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query artist aliases: %w", err)
	}

	return aliases, nil
}

// RecordMatch creates the pair at the minimum confidence on first sight and
// bumps confidence on every repeat.
func (r *AliasRepository) RecordMatch(ctx context.Context, primaryName, aliasName string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var alias domain.ArtistAlias
		err := tx.Where("primary_name = ? AND alias_name = ?", primaryName, aliasName).
			First(&alias).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			alias = domain.ArtistAlias{
				PrimaryName: primaryName,
				AliasName:   aliasName,
				Confidence:  domain.MinAliasConfidence,
			}
			if err := tx.Create(&alias).Error; err != nil {
				return fmt.Errorf("failed to create artist alias: %w", err)
			}
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to query artist alias: %w", err)
		}

		confidence := alias.Confidence + aliasConfidenceStep
		if confidence > 1.0 {
			confidence = 1.0
		}
		if err := tx.Model(&alias).Update("confidence", confidence).Error; err != nil {
			return fmt.Errorf("failed to update alias confidence: %w", err)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to record alias match: %w", err)
	}

	return nil
}
