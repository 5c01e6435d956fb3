package repository

import (
	"context"
	"time"

	"churchvlog/internal/models"

	"gorm.io/gorm"
)

// AnnouncementRepository defines the interface for announcement operations.
type AnnouncementRepository interface {
	Create(ctx context.Context, announcement *models.Announcement) error
	// ListActive returns active announcements, newest first.
	ListActive(ctx context.Context) ([]*models.Announcement, error)
	ListAll(ctx context.Context) ([]*models.Announcement, error)
	// Update replaces the editable fields; returns false if the id does not exist.
	Update(ctx context.Context, id uint, title, content, imageData, imageName string) (bool, error)
	// Delete removes the announcement and reports whether a row existed.
	Delete(ctx context.Context, id uint) (bool, error)
	Count(ctx context.Context) (int64, error)
}

type announcementRepository struct {
	db *gorm.DB
}

// NewAnnouncementRepository creates a new AnnouncementRepository.
func NewAnnouncementRepository(db *gorm.DB) AnnouncementRepository {
	return &announcementRepository{db: db}
}

func (r *announcementRepository) Create(ctx context.Context, announcement *models.Announcement) error {
	return r.db.WithContext(ctx).Create(announcement).Error
}

func (r *announcementRepository) ListActive(ctx context.Context) ([]*models.Announcement, error) {
	var announcements []*models.Announcement
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at desc").
		Find(&announcements).Error
	return announcements, err
}

func (r *announcementRepository) ListAll(ctx context.Context) ([]*models.Announcement, error) {
	var announcements []*models.Announcement
	err := r.db.WithContext(ctx).Order("created_at desc").Find(&announcements).Error
	return announcements, err
}

func (r *announcementRepository) Update(ctx context.Context, id uint, title, content, imageData, imageName string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Announcement{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"title":      title,
			"content":    content,
			"image_data": imageData,
			"image_name": imageName,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *announcementRepository) Delete(ctx context.Context, id uint) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&models.Announcement{}, id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *announcementRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Announcement{}).Count(&count).Error
	return count, err
}
