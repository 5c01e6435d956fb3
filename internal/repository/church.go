package repository

import (
	"context"
	"errors"

	"churchvlog/internal/models"

	"gorm.io/gorm"
)

// ChurchRepository manages the single church information row.
type ChurchRepository interface {
	// Get returns the stored church information, or (nil, nil) when no row
	// has been saved yet.
	Get(ctx context.Context) (*models.ChurchInfo, error)
	// Upsert saves the church information, creating the row on first save
	// and replacing it afterwards.
	Upsert(ctx context.Context, info *models.ChurchInfo) error
}

type churchRepository struct {
	db *gorm.DB
}

// NewChurchRepository creates a new ChurchRepository.
func NewChurchRepository(db *gorm.DB) ChurchRepository {
	return &churchRepository{db: db}
}

func (r *churchRepository) Get(ctx context.Context) (*models.ChurchInfo, error) {
	var info models.ChurchInfo
	err := r.db.WithContext(ctx).First(&info).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &info, nil
}

func (r *churchRepository) Upsert(ctx context.Context, info *models.ChurchInfo) error {
	existing, err := r.Get(ctx)
	if err != nil {
		return err
	}
	if existing != nil {
		info.ID = existing.ID
	}
	return r.db.WithContext(ctx).Save(info).Error
}
