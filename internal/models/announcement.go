package models

import "time"

// Announcement is a dated notice shown on the public site. Images are stored
// inline as base64 payloads, capped at 100KB by the handlers.
type Announcement struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"not null" json:"title"`
	Content   string    `gorm:"not null" json:"content"`
	ImageData string    `json:"image_data,omitempty"`
	ImageName string    `json:"image_name,omitempty"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
