package domain

import "time"

const (
	InterestArtist       = "artist"
	InterestVenue        = "venue"
	InterestCity         = "city"
	InterestGenre        = "genre"
	InterestEventType    = "event_type"
	InterestEventSubtype = "event_subtype"
)

// Interest is a user-declared preference. Priority is a rank: lower means
// more important. The engine reads interests, it never writes them.
type Interest struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"column:user_id;not null" json:"user_id"`
	Kind      string    `gorm:"column:kind;not null" json:"kind"`
	Value     string    `gorm:"column:value;not null" json:"value"`
	Priority  int       `gorm:"column:priority;default:1" json:"priority"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Interest) TableName() string {
	return "interests"
}

// PriorityMultiplier maps the rank into a score multiplier: rank 1 keeps the
// full score, each lower rank sheds 10%, floored at 0.5.
func (i Interest) PriorityMultiplier() float64 {
	m := 1.0 - float64(i.Priority-1)*0.1
	if m < 0.5 {
		m = 0.5
	}
	return m
}
