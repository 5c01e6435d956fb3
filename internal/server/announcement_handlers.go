package server

import (
	"strings"

	"churchvlog/internal/models"

	"github.com/gofiber/fiber/v2"
)

// maxImageBytes caps inline base64 image payloads at 100KB.
const maxImageBytes = 100 * 1024

// AnnouncementRequest is the body for announcement create and update operations.
type AnnouncementRequest struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	ImageData string `json:"image_data"`
	ImageName string `json:"image_name"`
}

func validateImagePayload(imageData string) error {
	if len(imageData) > maxImageBytes {
		return models.NewValidationError("Image exceeds maximum size of 100KB")
	}
	return nil
}

// GetAnnouncements returns active announcements, newest first.
func (s *Server) GetAnnouncements(c *fiber.Ctx) error {
	announcements, err := s.announcementRepo.ListActive(c.UserContext())
	if err != nil {
		return respondAppError(c, models.NewInternalError(err))
	}

	return c.Status(fiber.StatusOK).JSON(announcements)
}

// GetAllAnnouncements returns every announcement for the admin view,
// inactive ones included.
func (s *Server) GetAllAnnouncements(c *fiber.Ctx) error {
	announcements, err := s.announcementRepo.ListAll(c.UserContext())
	if err != nil {
		return respondAppError(c, models.NewInternalError(err))
	}

	return c.Status(fiber.StatusOK).JSON(announcements)
}

// CreateAnnouncement adds a new announcement with an optional inline image.
func (s *Server) CreateAnnouncement(c *fiber.Ctx) error {
	var req AnnouncementRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	req.Title = strings.TrimSpace(req.Title)
	req.Content = strings.TrimSpace(req.Content)
	if req.Title == "" || req.Content == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("title and content are required"))
	}
	if err := validateImagePayload(req.ImageData); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	}

	announcement := &models.Announcement{
		Title:     req.Title,
		Content:   req.Content,
		ImageData: req.ImageData,
		ImageName: req.ImageName,
		IsActive:  true,
	}
	if err := s.announcementRepo.Create(c.UserContext(), announcement); err != nil {
		return respondAppError(c, models.NewInternalError(err))
	}

	s.events.Record(c.UserContext(), models.LogLevelInfo, models.LogCategoryContent,
		"announcement created", map[string]any{"announcement_id": announcement.ID})

	return c.Status(fiber.StatusCreated).JSON(announcement)
}

// UpdateAnnouncement replaces an announcement's content.
func (s *Server) UpdateAnnouncement(c *fiber.Ctx) error {
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	var req AnnouncementRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	req.Title = strings.TrimSpace(req.Title)
	req.Content = strings.TrimSpace(req.Content)
	if req.Title == "" || req.Content == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("title and content are required"))
	}
	if err := validateImagePayload(req.ImageData); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	}

	updated, err := s.announcementRepo.Update(c.UserContext(), id, req.Title, req.Content, req.ImageData, req.ImageName)
	if err != nil {
		return respondAppError(c, models.NewInternalError(err))
	}
	if !updated {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Announcement", id))
	}

	s.events.Record(c.UserContext(), models.LogLevelInfo, models.LogCategoryContent,
		"announcement updated", map[string]any{"announcement_id": id})

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Announcement updated",
	})
}

// DeleteAnnouncement removes an announcement.
func (s *Server) DeleteAnnouncement(c *fiber.Ctx) error {
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	deleted, err := s.announcementRepo.Delete(c.UserContext(), id)
	if err != nil {
		return respondAppError(c, models.NewInternalError(err))
	}
	if !deleted {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Announcement", id))
	}

	s.events.Record(c.UserContext(), models.LogLevelInfo, models.LogCategoryContent,
		"announcement deleted", map[string]any{"announcement_id": id})

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Announcement deleted",
	})
}
