package server

import (
	"strings"

	"churchvlog/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GalleryRequest is the body for gallery photo uploads.
type GalleryRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageData   string `json:"image_data"`
	ImageName   string `json:"image_name"`
}

// GetGallery returns active gallery photos, newest first.
func (s *Server) GetGallery(c *fiber.Ctx) error {
	items, err := s.galleryRepo.ListActive(c.UserContext())
	if err != nil {
		return respondAppError(c, models.NewInternalError(err))
	}

	return c.Status(fiber.StatusOK).JSON(items)
}

// GetAllGallery returns every gallery photo for the admin view, inactive
// ones included.
func (s *Server) GetAllGallery(c *fiber.Ctx) error {
	items, err := s.galleryRepo.ListAll(c.UserContext())
	if err != nil {
		return respondAppError(c, models.NewInternalError(err))
	}

	return c.Status(fiber.StatusOK).JSON(items)
}

// CreateGalleryItem adds a photo to the gallery.
func (s *Server) CreateGalleryItem(c *fiber.Ctx) error {
	var req GalleryRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" || req.ImageData == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("title and image_data are required"))
	}
	if err := validateImagePayload(req.ImageData); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	}

	item := &models.GalleryItem{
		Title:       req.Title,
		Description: req.Description,
		ImageData:   req.ImageData,
		ImageName:   req.ImageName,
		IsActive:    true,
	}
	if err := s.galleryRepo.Create(c.UserContext(), item); err != nil {
		return respondAppError(c, models.NewInternalError(err))
	}

	s.events.Record(c.UserContext(), models.LogLevelInfo, models.LogCategoryContent,
		"gallery photo added", map[string]any{"gallery_id": item.ID})

	return c.Status(fiber.StatusCreated).JSON(item)
}

// UpdateGalleryItem changes a photo's title and description. The image
// itself is immutable; replacing a photo means deleting and re-uploading.
func (s *Server) UpdateGalleryItem(c *fiber.Ctx) error {
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	var req GalleryRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("title is required"))
	}

	updated, err := s.galleryRepo.Update(c.UserContext(), id, req.Title, req.Description)
	if err != nil {
		return respondAppError(c, models.NewInternalError(err))
	}
	if !updated {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Gallery photo", id))
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Photo updated",
	})
}

// DeleteGalleryItem removes a photo from the gallery.
func (s *Server) DeleteGalleryItem(c *fiber.Ctx) error {
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	deleted, err := s.galleryRepo.Delete(c.UserContext(), id)
	if err != nil {
		return respondAppError(c, models.NewInternalError(err))
	}
	if !deleted {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Gallery photo", id))
	}

	s.events.Record(c.UserContext(), models.LogLevelInfo, models.LogCategoryContent,
		"gallery photo deleted", map[string]any{"gallery_id": id})

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Photo deleted",
	})
}
