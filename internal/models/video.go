// Package models contains data structures for the application's domain models.
package models

import "time"

// Video source types.
const (
	VideoTypeYouTube = "youtube"
	VideoTypeMP4     = "mp4"
)

// Video represents a sermon or event recording shown on the public site.
// Deleting a video deactivates it rather than removing the row, so existing
// comments keep a valid reference.
type Video struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `json:"description"`
	Type        string    `gorm:"not null" json:"type"`
	URL         string    `gorm:"not null" json:"url"`
	Thumbnail   string    `json:"thumbnail"`
	Views       int       `gorm:"default:0" json:"views"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
