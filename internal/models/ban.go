package models

import "time"

// BannedDevice marks a device fingerprint as barred from commenting.
// The unique constraint on DeviceFingerprint makes repeated bans for the
// same fingerprint an insert-or-ignore no-op, and is the only concurrency
// guard the ban flow relies on.
type BannedDevice struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	DeviceFingerprint string    `gorm:"uniqueIndex;not null" json:"device_fingerprint"`
	Reason            string    `json:"reason"`
	BannedAt          time.Time `gorm:"autoCreateTime" json:"banned_at"`
}
