package server

import (
	"strings"

	"churchvlog/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ChurchInfoRequest is the body for updating church information.
type ChurchInfoRequest struct {
	Name         string `json:"name"`
	Mission      string `json:"mission"`
	Address      string `json:"address"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	Pastor       string `json:"pastor"`
	ServiceTimes string `json:"service_times"`
	Description  string `json:"description"`
}

// defaultChurchInfo is served until an admin saves the real details, so the
// public page never renders empty.
func defaultChurchInfo() *models.ChurchInfo {
	return &models.ChurchInfo{
		Name:         "Our Church",
		Mission:      "Sharing the gospel with our community",
		ServiceTimes: "Sundays at 10:00 AM",
	}
}

// GetChurchInfo returns the church information page content.
func (s *Server) GetChurchInfo(c *fiber.Ctx) error {
	info, err := s.churchRepo.Get(c.UserContext())
	if err != nil {
		return respondAppError(c, models.NewInternalError(err))
	}
	if info == nil {
		info = defaultChurchInfo()
	}

	return c.Status(fiber.StatusOK).JSON(info)
}

// UpdateChurchInfo saves the church information, creating the row on first save.
func (s *Server) UpdateChurchInfo(c *fiber.Ctx) error {
	var req ChurchInfoRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("name is required"))
	}

	info := &models.ChurchInfo{
		Name:         req.Name,
		Mission:      req.Mission,
		Address:      req.Address,
		Phone:        req.Phone,
		Email:        req.Email,
		Pastor:       req.Pastor,
		ServiceTimes: req.ServiceTimes,
		Description:  req.Description,
	}
	if err := s.churchRepo.Upsert(c.UserContext(), info); err != nil {
		return respondAppError(c, models.NewInternalError(err))
	}

	s.events.Record(c.UserContext(), models.LogLevelInfo, models.LogCategoryContent,
		"church info updated", nil)

	return c.Status(fiber.StatusOK).JSON(info)
}
