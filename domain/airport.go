package domain

// Airport backs the city/state to IATA code lookup required before any
// flight or car search.
type Airport struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	City     string `gorm:"column:city;not null;index:idx_city_state" json:"city"`
	State    string `gorm:"column:state;index:idx_city_state" json:"state"`
	IATACode string `gorm:"column:iata_code;not null" json:"iata_code"`
}

func (Airport) TableName() string {
	return "airports"
}
