// Package domain contains the raw daily rate model and the expected-rate
// resolution rule.
package domain

import "time"

// DateLayout is the ISO-8601 calendar date format every persisted date uses.
const DateLayout = "2006-01-02"

// DailyRate holds the three independent base commodity rates quoted for one
// calendar date.
type DailyRate struct {
	Date        string    `gorm:"primaryKey;type:text" json:"date"`
	TandoorRate float64   `gorm:"not null" json:"tandoor_rate"`
	BoilerRate  float64   `gorm:"not null" json:"boiler_rate"`
	EggRate     float64   `gorm:"not null" json:"egg_rate"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}

// TableName sets the database table name.
func (DailyRate) TableName() string { return "daily_rates" }
