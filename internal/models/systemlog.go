package models

import "time"

// System log levels and categories as shown in the admin log viewer.
const (
	LogLevelInfo     = "info"
	LogLevelWarning  = "warning"
	LogLevelError    = "error"
	LogLevelSecurity = "security"

	LogCategoryAuth       = "auth"
	LogCategoryAdmin      = "admin"
	LogCategoryContent    = "content"
	LogCategoryModeration = "moderation"
	LogCategorySystem     = "system"
)

// SystemLog is a persisted application event, browsable and exportable from
// the admin dashboard. Details holds an optional JSON payload.
type SystemLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Timestamp time.Time `gorm:"autoCreateTime;index" json:"timestamp"`
	Level     string    `gorm:"size:20;not null" json:"level"`
	Category  string    `gorm:"size:50;not null" json:"category"`
	Message   string    `gorm:"not null" json:"message"`
	Details   string    `json:"details,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
