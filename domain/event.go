package domain

import (
	"time"

	"gorm.io/datatypes"
)

// Event is a denormalized snapshot of an upcoming event supplied by the
// event collaborator. The engine never mutates it.
type Event struct {
	ID           uint                        `gorm:"primaryKey" json:"id"`
	ExternalID   string                      `gorm:"column:external_id;not null" json:"external_id"`
	Name         string                      `gorm:"column:name;not null" json:"name"`
	Artist       string                      `gorm:"column:artist" json:"artist"`
	VenueName    string                      `gorm:"column:venue_name" json:"venue_name"`
	VenueCity    string                      `gorm:"column:venue_city" json:"venue_city"`
	VenueState   string                      `gorm:"column:venue_state" json:"venue_state"`
	EventDate    time.Time                   `gorm:"column:event_date;not null" json:"event_date"`
	PriceMin     float64                     `gorm:"column:price_min" json:"price_min"`
	PriceMax     float64                     `gorm:"column:price_max" json:"price_max"`
	EventType    string                      `gorm:"column:event_type" json:"event_type"`
	EventSubtype string                      `gorm:"column:event_subtype" json:"event_subtype"`
	Genres       datatypes.JSONSlice[string] `gorm:"column:genres;type:jsonb" json:"genres"`
	CreatedAt    time.Time                   `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Event) TableName() string {
	return "events"
}

// HasPriceHint reports whether the snapshot carries a usable stored price
// range, which backs the price-history fallback tier.
func (e Event) HasPriceHint() bool {
	return e.PriceMin > 0 || e.PriceMax > 0
}

// MidPrice is the midpoint of the stored price range.
func (e Event) MidPrice() float64 {
	if e.PriceMin > 0 && e.PriceMax > 0 {
		return (e.PriceMin + e.PriceMax) / 2
	}
	if e.PriceMax > 0 {
		return e.PriceMax
	}
	return e.PriceMin
}
