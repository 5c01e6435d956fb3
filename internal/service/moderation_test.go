package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"churchvlog/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubBanRepo struct {
	isBannedFunc func(ctx context.Context, fingerprint string) (bool, error)
	banFunc      func(ctx context.Context, fingerprint, reason string) error
	unbanFunc    func(ctx context.Context, fingerprint string) error
	listFunc     func(ctx context.Context) ([]*models.BannedDevice, error)
}

func (s *stubBanRepo) IsBanned(ctx context.Context, fingerprint string) (bool, error) {
	if s.isBannedFunc != nil {
		return s.isBannedFunc(ctx, fingerprint)
	}
	return false, nil
}

func (s *stubBanRepo) Ban(ctx context.Context, fingerprint, reason string) error {
	if s.banFunc != nil {
		return s.banFunc(ctx, fingerprint, reason)
	}
	return nil
}

func (s *stubBanRepo) Unban(ctx context.Context, fingerprint string) error {
	if s.unbanFunc != nil {
		return s.unbanFunc(ctx, fingerprint)
	}
	return nil
}

func (s *stubBanRepo) List(ctx context.Context) ([]*models.BannedDevice, error) {
	if s.listFunc != nil {
		return s.listFunc(ctx)
	}
	return nil, nil
}

type stubCommentRepo struct {
	createFunc      func(ctx context.Context, comment *models.Comment) error
	getByIDFunc     func(ctx context.Context, id uint) (*models.Comment, error)
	listByVideoFunc func(ctx context.Context, videoID uint, includeBanned bool) ([]*models.Comment, error)
	listAllFunc     func(ctx context.Context) ([]*models.Comment, error)
	deleteFunc      func(ctx context.Context, id uint) (bool, error)
	setBannedFunc   func(ctx context.Context, fingerprint string, banned bool) error
}

func (s *stubCommentRepo) Create(ctx context.Context, comment *models.Comment) error {
	if s.createFunc != nil {
		return s.createFunc(ctx, comment)
	}
	return nil
}

func (s *stubCommentRepo) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	if s.getByIDFunc != nil {
		return s.getByIDFunc(ctx, id)
	}
	return nil, nil
}

func (s *stubCommentRepo) ListByVideo(ctx context.Context, videoID uint, includeBanned bool) ([]*models.Comment, error) {
	if s.listByVideoFunc != nil {
		return s.listByVideoFunc(ctx, videoID, includeBanned)
	}
	return nil, nil
}

func (s *stubCommentRepo) ListAll(ctx context.Context) ([]*models.Comment, error) {
	if s.listAllFunc != nil {
		return s.listAllFunc(ctx)
	}
	return nil, nil
}

func (s *stubCommentRepo) Delete(ctx context.Context, id uint) (bool, error) {
	if s.deleteFunc != nil {
		return s.deleteFunc(ctx, id)
	}
	return false, nil
}

func (s *stubCommentRepo) SetBannedByFingerprint(ctx context.Context, fingerprint string, banned bool) error {
	if s.setBannedFunc != nil {
		return s.setBannedFunc(ctx, fingerprint, banned)
	}
	return nil
}

func (s *stubCommentRepo) Count(ctx context.Context) (int64, error) { return 0, nil }

func (s *stubCommentRepo) CountSince(ctx context.Context, since time.Time) (int64, error) {
	return 0, nil
}

func newService(bans *stubBanRepo, comments *stubCommentRepo) *ModerationService {
	return NewModerationServiceWithDeps(nil, bans, comments, nil)
}

func TestSubmitComment_Accepted(t *testing.T) {
	var created *models.Comment
	comments := &stubCommentRepo{
		createFunc: func(ctx context.Context, comment *models.Comment) error {
			comment.ID = 42
			created = comment
			return nil
		},
	}
	svc := newService(&stubBanRepo{}, comments)

	comment, err := svc.SubmitComment(context.Background(), 7, "  Alice ", " Amen ", "fp-1")
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, uint(42), comment.ID)
	assert.Equal(t, uint(7), comment.VideoID)
	assert.Equal(t, "Alice", comment.CommenterName)
	assert.Equal(t, "Amen", comment.Content)
	assert.Equal(t, "fp-1", comment.DeviceFingerprint)
	assert.False(t, comment.IsBanned)
}

func TestSubmitComment_BannedDeviceRejectedWithoutWrite(t *testing.T) {
	createCalled := false
	bans := &stubBanRepo{
		isBannedFunc: func(ctx context.Context, fingerprint string) (bool, error) {
			return fingerprint == "fp-banned", nil
		},
	}
	comments := &stubCommentRepo{
		createFunc: func(ctx context.Context, comment *models.Comment) error {
			createCalled = true
			return nil
		},
	}
	svc := newService(bans, comments)

	comment, err := svc.SubmitComment(context.Background(), 1, "Mallory", "spam", "fp-banned")
	assert.Nil(t, comment)
	assert.False(t, createCalled, "rejected submission must not reach the comment store")

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "FORBIDDEN", appErr.Code)
}

func TestSubmitComment_Validation(t *testing.T) {
	svc := newService(&stubBanRepo{}, &stubCommentRepo{})
	ctx := context.Background()

	cases := []struct {
		name        string
		videoID     uint
		commenter   string
		content     string
		fingerprint string
	}{
		{"missing video", 0, "Alice", "Amen", "fp"},
		{"blank name", 1, "   ", "Amen", "fp"},
		{"blank content", 1, "Alice", "   ", "fp"},
		{"missing fingerprint", 1, "Alice", "Amen", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.SubmitComment(ctx, tc.videoID, tc.commenter, tc.content, tc.fingerprint)
			var appErr *models.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
		})
	}
}

func TestSubmitComment_BanCheckFailure(t *testing.T) {
	bans := &stubBanRepo{
		isBannedFunc: func(ctx context.Context, fingerprint string) (bool, error) {
			return false, errors.New("db down")
		},
	}
	svc := newService(bans, &stubCommentRepo{})

	_, err := svc.SubmitComment(context.Background(), 1, "Alice", "Amen", "fp")
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "INTERNAL_ERROR", appErr.Code)
}

func TestBanDevice_RecordsThenFlagsComments(t *testing.T) {
	var calls []string
	bans := &stubBanRepo{
		banFunc: func(ctx context.Context, fingerprint, reason string) error {
			calls = append(calls, "ban")
			assert.Equal(t, "fp-1", fingerprint)
			assert.Equal(t, "Spamming", reason)
			return nil
		},
	}
	comments := &stubCommentRepo{
		setBannedFunc: func(ctx context.Context, fingerprint string, banned bool) error {
			calls = append(calls, "flag")
			assert.Equal(t, "fp-1", fingerprint)
			assert.True(t, banned)
			return nil
		},
	}
	svc := newService(bans, comments)

	require.NoError(t, svc.BanDevice(context.Background(), "fp-1", "Spamming"))
	assert.Equal(t, []string{"ban", "flag"}, calls, "ban record must be written before the comment sweep")
}

func TestBanDevice_DefaultReason(t *testing.T) {
	var gotReason string
	bans := &stubBanRepo{
		banFunc: func(ctx context.Context, fingerprint, reason string) error {
			gotReason = reason
			return nil
		},
	}
	svc := newService(bans, &stubCommentRepo{})

	require.NoError(t, svc.BanDevice(context.Background(), "fp-1", "  "))
	assert.Equal(t, DefaultBanReason, gotReason)
}

func TestBanDevice_MissingFingerprint(t *testing.T) {
	svc := newService(&stubBanRepo{}, &stubCommentRepo{})

	err := svc.BanDevice(context.Background(), "   ", "reason")
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

func TestUnbanDevice_RemovesThenUnflagsComments(t *testing.T) {
	var calls []string
	bans := &stubBanRepo{
		unbanFunc: func(ctx context.Context, fingerprint string) error {
			calls = append(calls, "unban")
			return nil
		},
	}
	comments := &stubCommentRepo{
		setBannedFunc: func(ctx context.Context, fingerprint string, banned bool) error {
			calls = append(calls, "unflag")
			assert.False(t, banned)
			return nil
		},
	}
	svc := newService(bans, comments)

	require.NoError(t, svc.UnbanDevice(context.Background(), "fp-1"))
	assert.Equal(t, []string{"unban", "unflag"}, calls)
}

func TestUnbanDevice_NeverBannedSucceeds(t *testing.T) {
	svc := newService(&stubBanRepo{}, &stubCommentRepo{})
	assert.NoError(t, svc.UnbanDevice(context.Background(), "fp-unknown"))
}

func TestDeleteComment_NotFound(t *testing.T) {
	comments := &stubCommentRepo{
		deleteFunc: func(ctx context.Context, id uint) (bool, error) {
			return false, nil
		},
	}
	svc := newService(&stubBanRepo{}, comments)

	deleted, err := svc.DeleteComment(context.Background(), 999)
	assert.NoError(t, err)
	assert.False(t, deleted)
}

func TestListCommentsForVideo_PassesVisibilityFlag(t *testing.T) {
	var gotInclude bool
	comments := &stubCommentRepo{
		listByVideoFunc: func(ctx context.Context, videoID uint, includeBanned bool) ([]*models.Comment, error) {
			gotInclude = includeBanned
			return []*models.Comment{{ID: 1, VideoID: videoID}}, nil
		},
	}
	svc := newService(&stubBanRepo{}, comments)

	list, err := svc.ListCommentsForVideo(context.Background(), 3, true)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.True(t, gotInclude)
}
