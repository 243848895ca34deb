package domain

import "time"

const (
	FeedbackDown     = "down"
	FeedbackUp       = "up"
	FeedbackDoubleUp = "double_up"
)

// Feedback is at most one row per (user, trip). The engine only reads it;
// the polling surface writes it.
type Feedback struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	UserID           uint      `gorm:"column:user_id;not null;uniqueIndex:idx_user_trip" json:"user_id"`
	TripSuggestionID uint      `gorm:"column:trip_suggestion_id;not null;uniqueIndex:idx_user_trip" json:"trip_suggestion_id"`
	Value            string    `gorm:"column:value;not null" json:"value"`
	CreatedAt        time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Feedback) TableName() string {
	return "trip_feedback"
}

// FeedbackSignal is feedback joined with the event snapshot the trip was
// built for, which is what the similarity filter actually compares against.
type FeedbackSignal struct {
	Value     string   `json:"value"`
	EventID   uint     `json:"event_id"`
	Artist    string   `json:"artist"`
	VenueName string   `json:"venue_name"`
	VenueCity string   `json:"venue_city"`
	Genres    []string `json:"genres"`
}
