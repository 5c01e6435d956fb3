package repository

import (
	"context"
	"time"

	"churchvlog/internal/models"

	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment operations.
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	// ListByVideo returns comments for a video, newest first. When
	// includeBanned is false, comments flagged as banned are excluded.
	ListByVideo(ctx context.Context, videoID uint, includeBanned bool) ([]*models.Comment, error)
	// ListAll returns every comment, newest first (admin use).
	ListAll(ctx context.Context) ([]*models.Comment, error)
	// Delete removes the comment and reports whether a row existed.
	Delete(ctx context.Context, id uint) (bool, error)
	// SetBannedByFingerprint bulk-updates the banned flag on every comment
	// from the fingerprint. Zero matching rows is a normal outcome.
	SetBannedByFingerprint(ctx context.Context, fingerprint string, banned bool) error
	Count(ctx context.Context) (int64, error)
	CountSince(ctx context.Context, since time.Time) (int64, error)
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository.
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *commentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) ListByVideo(ctx context.Context, videoID uint, includeBanned bool) ([]*models.Comment, error) {
	query := r.db.WithContext(ctx).Where("video_id = ?", videoID)
	if !includeBanned {
		query = query.Where("is_banned = ?", false)
	}

	var comments []*models.Comment
	err := query.Order("created_at desc").Find(&comments).Error
	return comments, err
}

func (r *commentRepository) ListAll(ctx context.Context) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := r.db.WithContext(ctx).Order("created_at desc").Find(&comments).Error
	return comments, err
}

func (r *commentRepository) Delete(ctx context.Context, id uint) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&models.Comment{}, id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *commentRepository) SetBannedByFingerprint(ctx context.Context, fingerprint string, banned bool) error {
	return r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("device_fingerprint = ?", fingerprint).
		Update("is_banned", banned).Error
}

func (r *commentRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Comment{}).Count(&count).Error
	return count, err
}

func (r *commentRepository) CountSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("created_at > ?", since).
		Count(&count).Error
	return count, err
}
