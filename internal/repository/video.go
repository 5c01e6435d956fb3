package repository

import (
	"context"
	"time"

	"churchvlog/internal/models"

	"gorm.io/gorm"
)

// VideoRepository defines the interface for video operations.
type VideoRepository interface {
	Create(ctx context.Context, video *models.Video) error
	GetByID(ctx context.Context, id uint) (*models.Video, error)
	// ListActive returns active videos, newest first.
	ListActive(ctx context.Context) ([]*models.Video, error)
	// Update changes title and description; returns false if the id does not exist.
	Update(ctx context.Context, id uint, title, description string) (bool, error)
	// Deactivate soft-deletes the video; returns false if the id does not exist.
	Deactivate(ctx context.Context, id uint) (bool, error)
	// IncrementViews bumps the view counter in a single UPDATE.
	IncrementViews(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
	CountSince(ctx context.Context, since time.Time) (int64, error)
	TotalViews(ctx context.Context) (int64, error)
}

type videoRepository struct {
	db *gorm.DB
}

// NewVideoRepository creates a new VideoRepository.
func NewVideoRepository(db *gorm.DB) VideoRepository {
	return &videoRepository{db: db}
}

func (r *videoRepository) Create(ctx context.Context, video *models.Video) error {
	return r.db.WithContext(ctx).Create(video).Error
}

func (r *videoRepository) GetByID(ctx context.Context, id uint) (*models.Video, error) {
	var video models.Video
	if err := r.db.WithContext(ctx).First(&video, id).Error; err != nil {
		return nil, err
	}
	return &video, nil
}

func (r *videoRepository) ListActive(ctx context.Context) ([]*models.Video, error) {
	var videos []*models.Video
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at desc").
		Find(&videos).Error
	return videos, err
}

func (r *videoRepository) Update(ctx context.Context, id uint, title, description string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Video{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"title":       title,
			"description": description,
			"updated_at":  time.Now(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *videoRepository) Deactivate(ctx context.Context, id uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Video{}).
		Where("id = ?", id).
		Update("is_active", false)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *videoRepository) IncrementViews(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Model(&models.Video{}).
		Where("id = ?", id).
		Update("views", gorm.Expr("views + 1")).Error
}

func (r *videoRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Video{}).Count(&count).Error
	return count, err
}

func (r *videoRepository) CountSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Video{}).
		Where("created_at > ?", since).
		Count(&count).Error
	return count, err
}

func (r *videoRepository) TotalViews(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.Video{}).
		Select("COALESCE(SUM(views), 0)").
		Scan(&total).Error
	return total, err
}
