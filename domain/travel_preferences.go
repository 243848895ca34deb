package domain

import (
	"time"

	"gorm.io/datatypes"
)

// TravelPreferences is one row per user. When absent it is lazily populated
// with a nearest-airport inference from the user's city interests.
type TravelPreferences struct {
	UserID                uint                        `gorm:"column:user_id;primaryKey" json:"user_id"`
	PrimaryAirport        string                      `gorm:"column:primary_airport" json:"primary_airport"`
	PreferredAirlines     datatypes.JSONSlice[string] `gorm:"column:preferred_airlines;type:jsonb" json:"preferred_airlines"`
	PreferredHotelBrands  datatypes.JSONSlice[string] `gorm:"column:preferred_hotel_brands;type:jsonb" json:"preferred_hotel_brands"`
	RentalCarPreference   string                      `gorm:"column:rental_car_preference" json:"rental_car_preference"`
	PreferredDestinations datatypes.JSONSlice[string] `gorm:"column:preferred_destinations;type:jsonb" json:"preferred_destinations"`
	CreatedAt             time.Time                   `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt             time.Time                   `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (TravelPreferences) TableName() string {
	return "travel_preferences"
}
