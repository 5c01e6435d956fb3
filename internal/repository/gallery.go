package repository

import (
	"context"

	"churchvlog/internal/models"

	"gorm.io/gorm"
)

// GalleryRepository defines the interface for gallery photo operations.
type GalleryRepository interface {
	Create(ctx context.Context, item *models.GalleryItem) error
	// ListActive returns active gallery photos, newest first.
	ListActive(ctx context.Context) ([]*models.GalleryItem, error)
	ListAll(ctx context.Context) ([]*models.GalleryItem, error)
	// Update changes title and description; returns false if the id does not exist.
	Update(ctx context.Context, id uint, title, description string) (bool, error)
	// Delete removes the photo and reports whether a row existed.
	Delete(ctx context.Context, id uint) (bool, error)
	Count(ctx context.Context) (int64, error)
}

type galleryRepository struct {
	db *gorm.DB
}

// NewGalleryRepository creates a new GalleryRepository.
func NewGalleryRepository(db *gorm.DB) GalleryRepository {
	return &galleryRepository{db: db}
}

func (r *galleryRepository) Create(ctx context.Context, item *models.GalleryItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *galleryRepository) ListActive(ctx context.Context) ([]*models.GalleryItem, error) {
	var items []*models.GalleryItem
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at desc").
		Find(&items).Error
	return items, err
}

func (r *galleryRepository) ListAll(ctx context.Context) ([]*models.GalleryItem, error) {
	var items []*models.GalleryItem
	err := r.db.WithContext(ctx).Order("created_at desc").Find(&items).Error
	return items, err
}

func (r *galleryRepository) Update(ctx context.Context, id uint, title, description string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.GalleryItem{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"title":       title,
			"description": description,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *galleryRepository) Delete(ctx context.Context, id uint) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&models.GalleryItem{}, id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *galleryRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.GalleryItem{}).Count(&count).Error
	return count, err
}
