// Package service contains the business logic that sits between the HTTP
// handlers and the repositories.
package service

import (
	"context"
	"strings"

	"churchvlog/internal/eventlog"
	"churchvlog/internal/middleware"
	"churchvlog/internal/models"
	"churchvlog/internal/repository"

	"gorm.io/gorm"
)

// DefaultBanReason is applied when a ban request omits the reason.
const DefaultBanReason = "Inappropriate behavior"

const maxCommentLength = 2000

// eventRecorder is the slice of eventlog.Recorder the service needs; tests
// substitute a stub.
type eventRecorder interface {
	Record(ctx context.Context, level, category, message string, details any)
}

// ModerationService orchestrates comment submission and the device ban list.
//
// The ban list and the per-comment banned flag are two views of the same
// fact. Every mutation here updates both inside one transaction so they can
// not drift apart.
type ModerationService struct {
	db       *gorm.DB
	bans     repository.BanRepository
	comments repository.CommentRepository
	events   eventRecorder
}

// NewModerationService creates a ModerationService backed by the database.
func NewModerationService(db *gorm.DB, events *eventlog.Recorder) *ModerationService {
	return &ModerationService{
		db:       db,
		bans:     repository.NewBanRepository(db),
		comments: repository.NewCommentRepository(db),
		events:   events,
	}
}

// NewModerationServiceWithDeps creates a ModerationService with explicit
// dependencies; used by tests. A nil db skips transactional wrapping.
func NewModerationServiceWithDeps(db *gorm.DB, bans repository.BanRepository, comments repository.CommentRepository, events eventRecorder) *ModerationService {
	return &ModerationService{db: db, bans: bans, comments: comments, events: events}
}

func (s *ModerationService) record(ctx context.Context, level, message string, details any) {
	if s.events != nil {
		s.events.Record(ctx, level, models.LogCategoryModeration, message, details)
	}
}

// SubmitComment validates and stores an anonymous comment, refusing devices
// on the ban list.
//
// The ban check and the insert are not atomic: a ban landing between the two
// lets one last comment through with is_banned still false. The ban flow's
// bulk flag update sweeps such stragglers up on the next ban of the same
// fingerprint, so the window is tolerated rather than locked away.
func (s *ModerationService) SubmitComment(ctx context.Context, videoID uint, commenterName, content, fingerprint string) (*models.Comment, error) {
	commenterName = strings.TrimSpace(commenterName)
	content = strings.TrimSpace(content)

	if videoID == 0 {
		return nil, models.NewValidationError("video_id is required")
	}
	if commenterName == "" {
		return nil, models.NewValidationError("commenter_name is required")
	}
	if content == "" {
		return nil, models.NewValidationError("content is required")
	}
	if len(content) > maxCommentLength {
		return nil, models.NewValidationError("content exceeds maximum length")
	}
	if fingerprint == "" {
		return nil, models.NewValidationError("device fingerprint could not be derived")
	}

	banned, err := s.bans.IsBanned(ctx, fingerprint)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if banned {
		middleware.CommentsSubmitted.WithLabelValues("rejected").Inc()
		s.record(ctx, models.LogLevelSecurity, "comment rejected from banned device",
			map[string]any{"fingerprint": fingerprint, "video_id": videoID})
		return nil, models.NewForbiddenError("You are not allowed to comment")
	}

	comment := &models.Comment{
		VideoID:           videoID,
		CommenterName:     commenterName,
		Content:           content,
		DeviceFingerprint: fingerprint,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, models.NewInternalError(err)
	}

	middleware.CommentsSubmitted.WithLabelValues("accepted").Inc()
	return comment, nil
}

// BanDevice puts a fingerprint on the ban list and flags every existing
// comment from that device. Banning an already banned device is a no-op for
// the ban record and re-asserts the comment flags.
func (s *ModerationService) BanDevice(ctx context.Context, fingerprint, reason string) error {
	fingerprint = strings.TrimSpace(fingerprint)
	if fingerprint == "" {
		return models.NewValidationError("device_fingerprint is required")
	}
	if strings.TrimSpace(reason) == "" {
		reason = DefaultBanReason
	}

	err := s.inTransaction(ctx, func(bans repository.BanRepository, comments repository.CommentRepository) error {
		if err := bans.Ban(ctx, fingerprint, reason); err != nil {
			return err
		}
		return comments.SetBannedByFingerprint(ctx, fingerprint, true)
	})
	if err != nil {
		return models.NewInternalError(err)
	}

	middleware.DeviceBans.WithLabelValues("ban").Inc()
	s.record(ctx, models.LogLevelWarning, "device banned",
		map[string]any{"fingerprint": fingerprint, "reason": reason})
	return nil
}

// UnbanDevice removes a fingerprint from the ban list and unflags its
// comments. Unbanning a device that was never banned succeeds silently.
func (s *ModerationService) UnbanDevice(ctx context.Context, fingerprint string) error {
	fingerprint = strings.TrimSpace(fingerprint)
	if fingerprint == "" {
		return models.NewValidationError("device_fingerprint is required")
	}

	err := s.inTransaction(ctx, func(bans repository.BanRepository, comments repository.CommentRepository) error {
		if err := bans.Unban(ctx, fingerprint); err != nil {
			return err
		}
		return comments.SetBannedByFingerprint(ctx, fingerprint, false)
	})
	if err != nil {
		return models.NewInternalError(err)
	}

	middleware.DeviceBans.WithLabelValues("unban").Inc()
	s.record(ctx, models.LogLevelInfo, "device unbanned",
		map[string]any{"fingerprint": fingerprint})
	return nil
}

// inTransaction runs fn against transaction-scoped repositories when a
// database is present, and against the injected repositories otherwise.
func (s *ModerationService) inTransaction(ctx context.Context, fn func(repository.BanRepository, repository.CommentRepository) error) error {
	if s.db == nil {
		return fn(s.bans, s.comments)
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(repository.NewBanRepository(tx), repository.NewCommentRepository(tx))
	})
}

// DeleteComment removes a single comment; returns false when no such comment exists.
func (s *ModerationService) DeleteComment(ctx context.Context, id uint) (bool, error) {
	deleted, err := s.comments.Delete(ctx, id)
	if err != nil {
		return false, models.NewInternalError(err)
	}
	if deleted {
		s.record(ctx, models.LogLevelInfo, "comment deleted", map[string]any{"comment_id": id})
	}
	return deleted, nil
}

// ListCommentsForVideo returns a video's comments, hiding banned ones unless
// includeBanned is set.
func (s *ModerationService) ListCommentsForVideo(ctx context.Context, videoID uint, includeBanned bool) ([]*models.Comment, error) {
	return s.comments.ListByVideo(ctx, videoID, includeBanned)
}

// ListAllComments returns every comment across all videos, newest first.
func (s *ModerationService) ListAllComments(ctx context.Context) ([]*models.Comment, error) {
	return s.comments.ListAll(ctx)
}

// ListBannedDevices returns the current ban list, newest first.
func (s *ModerationService) ListBannedDevices(ctx context.Context) ([]*models.BannedDevice, error) {
	return s.bans.List(ctx)
}
