package server

import (
	"time"

	"churchvlog/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetAdminStats returns dashboard counters: content totals, view totals,
// ban list size, and activity over the past seven days.
func (s *Server) GetAdminStats(c *fiber.Ctx) error {
	ctx := c.UserContext()
	weekAgo := time.Now().AddDate(0, 0, -7)

	totalVideos, err := s.videoRepo.Count(ctx)
	if err != nil {
		return respondAppError(c, models.NewInternalError(err))
	}
	totalViews, err := s.videoRepo.TotalViews(ctx)
	if err != nil {
		return respondAppError(c, models.NewInternalError(err))
	}
	totalComments, err := s.commentRepo.Count(ctx)
	if err != nil {
		return respondAppError(c, models.NewInternalError(err))
	}
	totalAnnouncements, err := s.announcementRepo.Count(ctx)
	if err != nil {
		return respondAppError(c, models.NewInternalError(err))
	}
	totalPhotos, err := s.galleryRepo.Count(ctx)
	if err != nil {
		return respondAppError(c, models.NewInternalError(err))
	}
	bannedDevices, err := s.banRepo.List(ctx)
	if err != nil {
		return respondAppError(c, models.NewInternalError(err))
	}
	videosThisWeek, err := s.videoRepo.CountSince(ctx, weekAgo)
	if err != nil {
		return respondAppError(c, models.NewInternalError(err))
	}
	commentsThisWeek, err := s.commentRepo.CountSince(ctx, weekAgo)
	if err != nil {
		return respondAppError(c, models.NewInternalError(err))
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"total_videos":        totalVideos,
		"total_views":         totalViews,
		"total_comments":      totalComments,
		"total_announcements": totalAnnouncements,
		"total_photos":        totalPhotos,
		"banned_devices":      len(bannedDevices),
		"videos_this_week":    videosThisWeek,
		"comments_this_week":  commentsThisWeek,
	})
}
