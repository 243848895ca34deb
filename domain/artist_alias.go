package domain

import "time"

// MinAliasConfidence filters stale or low-quality learned aliases at read
// time. Rows below it are ignored, never deleted.
const MinAliasConfidence = 0.5

// ArtistAlias is a learned mapping between artist spellings. Confidence is
// raised on repeated matches by a background learning step.
type ArtistAlias struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	PrimaryName string    `gorm:"column:primary_name;not null" json:"primary_name"`
	AliasName   string    `gorm:"column:alias_name;not null" json:"alias_name"`
	Confidence  float64   `gorm:"column:confidence;not null" json:"confidence"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (ArtistAlias) TableName() string {
	return "artist_aliases"
}
