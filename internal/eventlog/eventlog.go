// Package eventlog records application events to the system_logs table for
// the admin log viewer.
package eventlog

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"io"
	"log/slog"
	"strconv"
	"time"

	"churchvlog/internal/middleware"
	"churchvlog/internal/models"

	"gorm.io/gorm"
)

// Query capped so the admin viewer stays responsive; CSV export is uncapped.
const listLimit = 100

// Filter narrows log queries. Zero values mean "all".
type Filter struct {
	Level    string
	Category string
	Since    time.Time
}

// Recorder writes and queries persisted system events.
type Recorder struct {
	db *gorm.DB
}

// NewRecorder returns a Recorder backed by the given database.
func NewRecorder(db *gorm.DB) *Recorder {
	return &Recorder{db: db}
}

// Record persists a system event. A storage fault never propagates to the
// caller: the event is dropped with a warning so logging can't fail the
// operation being logged.
func (r *Recorder) Record(ctx context.Context, level, category, message string, details any) {
	var detailsJSON string
	if details != nil {
		if b, err := json.Marshal(details); err == nil {
			detailsJSON = string(b)
		}
	}

	entry := models.SystemLog{
		Level:    level,
		Category: category,
		Message:  message,
		Details:  detailsJSON,
	}
	if err := r.db.WithContext(ctx).Create(&entry).Error; err != nil {
		middleware.Logger.WarnContext(ctx, "failed to persist system log event",
			slog.String("level", level),
			slog.String("category", category),
			slog.String("message", message),
			slog.String("error", err.Error()),
		)
	}
}

func (r *Recorder) query(ctx context.Context, f Filter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&models.SystemLog{})
	if f.Level != "" && f.Level != "all" {
		query = query.Where("level = ?", f.Level)
	}
	if f.Category != "" && f.Category != "all" {
		query = query.Where("category = ?", f.Category)
	}
	if !f.Since.IsZero() {
		query = query.Where("created_at >= ?", f.Since)
	}
	return query.Order("created_at desc")
}

// List returns the most recent events matching the filter, newest first.
func (r *Recorder) List(ctx context.Context, f Filter) ([]*models.SystemLog, error) {
	var logs []*models.SystemLog
	err := r.query(ctx, f).Limit(listLimit).Find(&logs).Error
	return logs, err
}

// WriteCSV streams all events matching the filter as CSV.
func (r *Recorder) WriteCSV(ctx context.Context, f Filter, w io.Writer) error {
	var logs []*models.SystemLog
	if err := r.query(ctx, f).Find(&logs).Error; err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "timestamp", "level", "category", "message", "details"}); err != nil {
		return err
	}
	for _, entry := range logs {
		record := []string{
			strconv.FormatUint(uint64(entry.ID), 10),
			entry.Timestamp.Format(time.RFC3339),
			entry.Level,
			entry.Category,
			entry.Message,
			entry.Details,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
