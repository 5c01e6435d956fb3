package server

import (
	"fmt"
	"time"

	"churchvlog/internal/eventlog"
	"churchvlog/internal/models"

	"github.com/gofiber/fiber/v2"
)

// logFilterFromQuery builds an event filter from the level, category and
// days query parameters. days=0 (or absent) means no time bound.
func logFilterFromQuery(c *fiber.Ctx) eventlog.Filter {
	f := eventlog.Filter{
		Level:    c.Query("level"),
		Category: c.Query("category"),
	}
	if days := c.QueryInt("days", 0); days > 0 {
		f.Since = time.Now().AddDate(0, 0, -days)
	}
	return f
}

// GetLogs returns recent system events for the admin log viewer.
func (s *Server) GetLogs(c *fiber.Ctx) error {
	logs, err := s.events.List(c.UserContext(), logFilterFromQuery(c))
	if err != nil {
		return respondAppError(c, models.NewInternalError(err))
	}

	return c.Status(fiber.StatusOK).JSON(logs)
}

// DownloadLogs streams matching system events as a CSV attachment.
func (s *Server) DownloadLogs(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="system-logs-%s.csv"`, time.Now().Format("2006-01-02")))

	if err := s.events.WriteCSV(c.UserContext(), logFilterFromQuery(c), c.Response().BodyWriter()); err != nil {
		return respondAppError(c, models.NewInternalError(err))
	}
	return nil
}
