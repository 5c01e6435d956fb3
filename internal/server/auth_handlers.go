package server

import (
	"crypto/subtle"
	"time"

	"churchvlog/internal/middleware"
	"churchvlog/internal/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

// LoginRequest is the admin login request body.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) checkAdminCredentials(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.config.AdminUsername)) == 1

	var passOK bool
	if s.config.AdminPasswordHash != "" {
		passOK = bcrypt.CompareHashAndPassword(
			[]byte(s.config.AdminPasswordHash), []byte(password)) == nil
	} else {
		// Plaintext comparison is a development-only path; config validation
		// rejects it in production.
		passOK = subtle.ConstantTimeCompare([]byte(password), []byte(s.config.AdminPassword)) == 1
	}

	return userOK && passOK
}

// Login handles admin authentication and issues the session cookie.
func (s *Server) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if !s.checkAdminCredentials(req.Username, req.Password) {
		s.events.Record(c.UserContext(), models.LogLevelSecurity, models.LogCategoryAuth,
			"failed admin login attempt", map[string]any{"username": req.Username, "ip": c.IP()})
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid credentials"))
	}

	token, expiresAt, err := middleware.IssueSessionToken(s.config.SessionSecret)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	isProduction := s.config.Env == "production" || s.config.Env == "prod"
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Expires:  expiresAt,
		HTTPOnly: true,
		Secure:   isProduction,
		SameSite: "Lax",
		Path:     "/",
	})

	s.events.Record(c.UserContext(), models.LogLevelInfo, models.LogCategoryAuth,
		"admin logged in", map[string]any{"ip": c.IP()})

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":    "Login successful",
		"expires_at": expiresAt,
	})
}

// AuthStatus reports whether the request carries a valid admin session.
func (s *Server) AuthStatus(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"isAdmin": middleware.IsAdminSession(c),
	})
}

// Logout clears the admin session cookie. The token itself simply expires;
// there is no server-side session state to revoke.
func (s *Server) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
		Path:     "/",
	})

	if middleware.IsAdminSession(c) {
		s.events.Record(c.UserContext(), models.LogLevelInfo, models.LogCategoryAuth,
			"admin logged out", map[string]any{"ip": c.IP()})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Logged out",
	})
}
