// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"

	"churchvlog/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BanRepository defines the interface for the banned-device list.
type BanRepository interface {
	// IsBanned reports whether a ban record exists for the fingerprint.
	// A missing record is a normal false result, not an error.
	IsBanned(ctx context.Context, fingerprint string) (bool, error)
	// Ban inserts a ban record if absent. An existing record is left
	// untouched, including its reason and timestamp.
	Ban(ctx context.Context, fingerprint, reason string) error
	// Unban deletes the ban record if present; deleting a missing record
	// succeeds silently.
	Unban(ctx context.Context, fingerprint string) error
	// List returns all ban records, newest first.
	List(ctx context.Context) ([]*models.BannedDevice, error)
}

type banRepository struct {
	db *gorm.DB
}

// NewBanRepository creates a new BanRepository.
func NewBanRepository(db *gorm.DB) BanRepository {
	return &banRepository{db: db}
}

func (r *banRepository) IsBanned(ctx context.Context, fingerprint string) (bool, error) {
	var record models.BannedDevice
	err := r.db.WithContext(ctx).
		Where("device_fingerprint = ?", fingerprint).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *banRepository) Ban(ctx context.Context, fingerprint, reason string) error {
	record := models.BannedDevice{
		DeviceFingerprint: fingerprint,
		Reason:            reason,
	}
	// The unique index on device_fingerprint turns a repeated ban into a no-op.
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&record).Error
}

func (r *banRepository) Unban(ctx context.Context, fingerprint string) error {
	return r.db.WithContext(ctx).
		Where("device_fingerprint = ?", fingerprint).
		Delete(&models.BannedDevice{}).Error
}

func (r *banRepository) List(ctx context.Context) ([]*models.BannedDevice, error) {
	var records []*models.BannedDevice
	err := r.db.WithContext(ctx).
		Order("banned_at desc").
		Find(&records).Error
	return records, err
}
