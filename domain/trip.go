package domain

import (
	"time"

	"gorm.io/datatypes"
)

const (
	TripStatusPending   = "pending"
	TripStatusApproved  = "approved"
	TripStatusBooked    = "booked"
	TripStatusRejected  = "rejected"
	TripStatusCancelled = "cancelled"
)

const (
	ComponentTicket   = "ticket"
	ComponentFlight   = "flight"
	ComponentHotel    = "hotel"
	ComponentCar      = "car"
	ComponentTransfer = "transfer"
)

const (
	// PriceReal marks a price that originated from a live provider response
	// or a stored historical price.
	PriceReal = "real"
	// PriceEstimated marks a price derived from a static reference table.
	PriceEstimated = "estimated"
)

// ServiceFeeRate and ServiceFeeMinimum define the fee invariant:
// serviceFee = max(totalCost * rate, minimum).
const (
	ServiceFeeRate    = 0.05
	ServiceFeeMinimum = 25.0
)

// TripSuggestion is a priced composite trip for one (user, event) pair.
// Regeneration updates the row in place and fully replaces its components.
type TripSuggestion struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"column:user_id;not null;uniqueIndex:idx_user_event" json:"user_id"`
	EventID    uint      `gorm:"column:event_id;not null;uniqueIndex:idx_user_event" json:"event_id"`
	Status     string    `gorm:"column:status;not null;default:pending" json:"status"`
	TotalCost  float64   `gorm:"column:total_cost" json:"total_cost"`
	ServiceFee float64   `gorm:"column:service_fee" json:"service_fee"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	Components []TripComponent `gorm:"foreignKey:TripSuggestionID" json:"components"`
	Event      *Event          `gorm:"foreignKey:EventID" json:"event,omitempty"`
}

func (TripSuggestion) TableName() string {
	return "trip_suggestions"
}

// PriceBreakdown splits the total into provider-sourced and estimated parts.
func (t TripSuggestion) PriceBreakdown() (real float64, estimated float64) {
	for _, c := range t.Components {
		if c.PriceType == PriceReal {
			real += c.Price
		} else {
			estimated += c.Price
		}
	}
	return real, estimated
}

// TripComponent is one bookable leg of a trip. Components are always
// replaced as a set, never patched individually.
type TripComponent struct {
	ID               uint              `gorm:"primaryKey" json:"id"`
	TripSuggestionID uint              `gorm:"column:trip_suggestion_id;not null;index" json:"trip_suggestion_id"`
	Kind             string            `gorm:"column:kind;not null" json:"kind"`
	Provider         string            `gorm:"column:provider" json:"provider"`
	Price            float64           `gorm:"column:price" json:"price"`
	PriceType        string            `gorm:"column:price_type;not null" json:"price_type"`
	BookingURL       string            `gorm:"column:booking_url" json:"booking_url"`
	Details          datatypes.JSONMap `gorm:"column:details;type:jsonb" json:"details"`
	CreatedAt        time.Time         `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (TripComponent) TableName() string {
	return "trip_components"
}

// ServiceFeeFor applies the fee invariant to a total.
func ServiceFeeFor(totalCost float64) float64 {
	fee := totalCost * ServiceFeeRate
	if fee < ServiceFeeMinimum {
		fee = ServiceFeeMinimum
	}
	return fee
}
