package server

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"churchvlog/internal/cache"
	"churchvlog/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const activeVideosCacheKey = "videos:active"

// VideoRequest is the body for video create and update operations.
type VideoRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Type        string `json:"type"`
	URL         string `json:"url"`
}

// youtubeVideoID extracts the 11-character video ID from the common YouTube
// URL shapes (watch?v=, youtu.be/, embed/, shorts/). Returns "" if the URL
// is not recognizably YouTube.
func youtubeVideoID(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}

	host := strings.TrimPrefix(u.Hostname(), "www.")
	switch host {
	case "youtu.be":
		return strings.Trim(u.Path, "/")
	case "youtube.com", "m.youtube.com":
		if v := u.Query().Get("v"); v != "" {
			return v
		}
		for _, prefix := range []string{"/embed/", "/shorts/"} {
			if strings.HasPrefix(u.Path, prefix) {
				return strings.TrimPrefix(u.Path, prefix)
			}
		}
	}
	return ""
}

// youtubeThumbnail derives the standard thumbnail URL for a YouTube video.
func youtubeThumbnail(rawURL string) string {
	id := youtubeVideoID(rawURL)
	if id == "" {
		return ""
	}
	return fmt.Sprintf("https://img.youtube.com/vi/%s/hqdefault.jpg", id)
}

// GetVideos returns all active videos, newest first, via a short-lived cache.
func (s *Server) GetVideos(c *fiber.Ctx) error {
	var videos []*models.Video
	err := cache.CacheAside(c.UserContext(), activeVideosCacheKey, &videos, time.Minute, func() error {
		var fetchErr error
		videos, fetchErr = s.videoRepo.ListActive(c.UserContext())
		return fetchErr
	})
	if err != nil {
		return respondAppError(c, models.NewInternalError(err))
	}

	return c.Status(fiber.StatusOK).JSON(videos)
}

// GetVideo returns a single active video and bumps its view counter.
func (s *Server) GetVideo(c *fiber.Ctx) error {
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	video, err := s.videoRepo.GetByID(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.RespondWithError(c, fiber.StatusNotFound,
				models.NewNotFoundError("Video", id))
		}
		return respondAppError(c, models.NewInternalError(err))
	}
	if !video.IsActive {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Video", id))
	}

	// Counted per fetch, not per unique viewer. Losing an increment on a
	// concurrent error is acceptable for a vanity counter.
	if err := s.videoRepo.IncrementViews(c.UserContext(), id); err == nil {
		video.Views++
	}

	return c.Status(fiber.StatusOK).JSON(video)
}

// CreateVideo adds a new video. YouTube videos get a derived thumbnail URL.
func (s *Server) CreateVideo(c *fiber.Ctx) error {
	var req VideoRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	req.Title = strings.TrimSpace(req.Title)
	req.URL = strings.TrimSpace(req.URL)
	if req.Title == "" || req.URL == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("title and url are required"))
	}
	if req.Type != models.VideoTypeYouTube && req.Type != models.VideoTypeMP4 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("type must be youtube or mp4"))
	}

	video := &models.Video{
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		URL:         req.URL,
		IsActive:    true,
	}
	if req.Type == models.VideoTypeYouTube {
		video.Thumbnail = youtubeThumbnail(req.URL)
	}

	if err := s.videoRepo.Create(c.UserContext(), video); err != nil {
		return respondAppError(c, models.NewInternalError(err))
	}

	cache.Invalidate(c.UserContext(), activeVideosCacheKey)
	s.events.Record(c.UserContext(), models.LogLevelInfo, models.LogCategoryContent,
		"video created", map[string]any{"video_id": video.ID, "title": video.Title})

	return c.Status(fiber.StatusCreated).JSON(video)
}

// UpdateVideo changes a video's title and description.
func (s *Server) UpdateVideo(c *fiber.Ctx) error {
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	var req VideoRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("title is required"))
	}

	updated, err := s.videoRepo.Update(c.UserContext(), id, req.Title, req.Description)
	if err != nil {
		return respondAppError(c, models.NewInternalError(err))
	}
	if !updated {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Video", id))
	}

	cache.Invalidate(c.UserContext(), activeVideosCacheKey)
	s.events.Record(c.UserContext(), models.LogLevelInfo, models.LogCategoryContent,
		"video updated", map[string]any{"video_id": id})

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Video updated",
	})
}

// DeleteVideo deactivates a video, keeping the row so comments stay attached.
func (s *Server) DeleteVideo(c *fiber.Ctx) error {
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	deactivated, err := s.videoRepo.Deactivate(c.UserContext(), id)
	if err != nil {
		return respondAppError(c, models.NewInternalError(err))
	}
	if !deactivated {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Video", id))
	}

	cache.Invalidate(c.UserContext(), activeVideosCacheKey)
	s.events.Record(c.UserContext(), models.LogLevelInfo, models.LogCategoryContent,
		"video deleted", map[string]any{"video_id": id})

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Video deleted",
	})
}
