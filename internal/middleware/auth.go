package middleware

import (
	"time"

	"churchvlog/internal/config"
	"churchvlog/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionCookie is the name of the HTTP-only cookie carrying the admin session token.
const SessionCookie = "church_session"

const (
	tokenIssuer   = "churchvlog-api"
	tokenAudience = "churchvlog-admin"
	sessionTTL    = 24 * time.Hour
)

var cfg *config.Config

// InitMiddleware initializes the session middleware with the given config.
func InitMiddleware(c *config.Config) {
	cfg = c
}

// IssueSessionToken creates a signed admin session token valid for 24 hours.
func IssueSessionToken(secret string) (string, time.Time, error) {
	expiresAt := time.Now().Add(sessionTTL)
	claims := jwt.MapClaims{
		"iss":   tokenIssuer,
		"aud":   tokenAudience,
		"jti":   uuid.NewString(),
		"admin": true,
		"iat":   time.Now().Unix(),
		"exp":   expiresAt.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// sessionToken extracts the raw session token from the cookie, falling back
// to a Bearer Authorization header for non-browser clients.
func sessionToken(c *fiber.Ctx) string {
	if tok := c.Cookies(SessionCookie); tok != "" {
		return tok
	}
	auth := c.Get(fiber.HeaderAuthorization)
	const prefix = "Bearer "
	if len(auth) > len(prefix) && auth[:len(prefix)] == prefix {
		return auth[len(prefix):]
	}
	return ""
}

// IsAdminSession reports whether the request carries a valid admin session.
// It is a pure precondition check: no state is read or written beyond the
// request itself.
func IsAdminSession(c *fiber.Ctx) bool {
	tokenString := sessionToken(c)
	if tokenString == "" {
		return false
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(cfg.SessionSecret), nil
	},
		jwt.WithIssuer(tokenIssuer),
		jwt.WithAudience(tokenAudience),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return false
	}

	admin, ok := claims["admin"].(bool)
	return ok && admin
}

// AdminRequired is a middleware that refuses every request lacking a valid
// admin session before any store mutation can happen.
func AdminRequired(c *fiber.Ctx) error {
	if !IsAdminSession(c) {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Unauthorized access"))
	}

	c.Locals("isAdmin", true)
	return c.Next()
}
