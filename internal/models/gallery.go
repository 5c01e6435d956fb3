package models

import "time"

// GalleryItem is a photo in the public gallery, stored inline as base64.
type GalleryItem struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `json:"description"`
	ImageData   string    `gorm:"not null" json:"image_data"`
	ImageName   string    `gorm:"not null" json:"image_name"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}
