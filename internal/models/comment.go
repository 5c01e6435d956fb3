package models

import "time"

// Comment is a public comment on a video. Commenters are anonymous; the
// DeviceFingerprint is a best-effort correlation key derived from request
// headers, not a verified identity.
//
// IsBanned mirrors the existence of a BannedDevice row for the fingerprint.
// The moderation service keeps it synchronized on every ban/unban so public
// listings can filter on the flag without a join.
type Comment struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	VideoID           uint      `gorm:"not null;index" json:"video_id"`
	CommenterName     string    `gorm:"not null" json:"commenter_name"`
	Content           string    `gorm:"not null" json:"content"`
	DeviceFingerprint string    `gorm:"not null;index" json:"device_fingerprint"`
	IsBanned          bool      `gorm:"default:false" json:"is_banned"`
	CreatedAt         time.Time `json:"created_at"`
}
