package models

import "time"

// ChurchInfo holds the single row of contact and service information shown
// on the public information page. At most one row exists; updates upsert it.
type ChurchInfo struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	Mission      string    `json:"mission"`
	Address      string    `json:"address"`
	Phone        string    `json:"phone"`
	Email        string    `json:"email"`
	Pastor       string    `json:"pastor"`
	ServiceTimes string    `json:"service_times"`
	Description  string    `json:"description"`
	UpdatedAt    time.Time `json:"updated_at"`
}
