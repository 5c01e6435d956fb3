package server

import (
	"churchvlog/internal/fingerprint"
	"churchvlog/internal/middleware"
	"churchvlog/internal/models"

	"github.com/gofiber/fiber/v2"
)

// SubmitCommentRequest is the public comment submission body.
type SubmitCommentRequest struct {
	VideoID       uint   `json:"video_id"`
	CommenterName string `json:"commenter_name"`
	Content       string `json:"content"`
}

// BanRequest identifies a device for ban/unban operations.
type BanRequest struct {
	DeviceFingerprint string `json:"device_fingerprint"`
	Reason            string `json:"reason"`
}

// GetVideoComments returns a video's comments. Admin sessions also see
// comments from banned devices; everyone else gets the filtered view.
func (s *Server) GetVideoComments(c *fiber.Ctx) error {
	videoID, err := s.parseID(c)
	if err != nil {
		return nil
	}

	includeBanned := middleware.IsAdminSession(c)
	comments, err := s.moderation.ListCommentsForVideo(c.UserContext(), videoID, includeBanned)
	if err != nil {
		return respondAppError(c, models.NewInternalError(err))
	}

	return c.Status(fiber.StatusOK).JSON(comments)
}

// SubmitComment accepts an anonymous comment. The device fingerprint is
// derived server-side from the request; clients cannot supply their own.
func (s *Server) SubmitComment(c *fiber.Ctx) error {
	var req SubmitCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	fp := fingerprint.FromRequest(c)
	comment, err := s.moderation.SubmitComment(c.UserContext(), req.VideoID, req.CommenterName, req.Content, fp)
	if err != nil {
		return respondAppError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(comment)
}

// GetAllComments returns every comment across all videos for the admin
// moderation view, banned ones included.
func (s *Server) GetAllComments(c *fiber.Ctx) error {
	comments, err := s.moderation.ListAllComments(c.UserContext())
	if err != nil {
		return respondAppError(c, models.NewInternalError(err))
	}

	return c.Status(fiber.StatusOK).JSON(comments)
}

// DeleteComment removes a single comment by ID.
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	deleted, err := s.moderation.DeleteComment(c.UserContext(), id)
	if err != nil {
		return respondAppError(c, err)
	}
	if !deleted {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Comment", id))
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Comment deleted",
	})
}

// BanDevice puts a device fingerprint on the ban list.
func (s *Server) BanDevice(c *fiber.Ctx) error {
	var req BanRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if err := s.moderation.BanDevice(c.UserContext(), req.DeviceFingerprint, req.Reason); err != nil {
		return respondAppError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Device banned",
	})
}

// UnbanDevice removes a device fingerprint from the ban list.
func (s *Server) UnbanDevice(c *fiber.Ctx) error {
	var req BanRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if err := s.moderation.UnbanDevice(c.UserContext(), req.DeviceFingerprint); err != nil {
		return respondAppError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Device unbanned",
	})
}

// GetBannedDevices returns the current ban list, newest first.
func (s *Server) GetBannedDevices(c *fiber.Ctx) error {
	devices, err := s.moderation.ListBannedDevices(c.UserContext())
	if err != nil {
		return respondAppError(c, models.NewInternalError(err))
	}

	return c.Status(fiber.StatusOK).JSON(devices)
}
