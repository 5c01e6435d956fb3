package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"churchvlog/internal/config"
	"churchvlog/internal/database"
	"churchvlog/internal/eventlog"
	"churchvlog/internal/middleware"
	"churchvlog/internal/repository"
	"churchvlog/internal/service"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestServer builds a Server over an in-memory sqlite database with
// full routes registered. Prometheus HTTP middleware is left nil so repeated
// test setups do not re-register collectors.
func setupTestServer(t *testing.T) (*Server, *fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	cfg := &config.Config{
		Port:          "5000",
		SessionSecret: "test-session-secret",
		AdminUsername: "admin",
		AdminPassword: "admin",
		Env:           "test",
	}
	middleware.InitMiddleware(cfg)

	events := eventlog.NewRecorder(db)
	s := &Server{
		config:           cfg,
		db:               db,
		videoRepo:        repository.NewVideoRepository(db),
		commentRepo:      repository.NewCommentRepository(db),
		banRepo:          repository.NewBanRepository(db),
		announcementRepo: repository.NewAnnouncementRepository(db),
		galleryRepo:      repository.NewGalleryRepository(db),
		churchRepo:       repository.NewChurchRepository(db),
		events:           events,
	}
	s.moderation = service.NewModerationService(db, events)

	app := fiber.New()
	s.SetupRoutes(app)

	return s, app, db
}

// jsonRequest builds a request with a JSON body.
func jsonRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return req
}

// asAdmin attaches a valid admin session cookie to the request.
func asAdmin(t *testing.T, s *Server, req *http.Request) *http.Request {
	t.Helper()
	token, _, err := middleware.IssueSessionToken(s.config.SessionSecret)
	if err != nil {
		t.Fatalf("issue session token: %v", err)
	}
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: token})
	return req
}

func decodeBody(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response: %v", err)
	}
	return string(b)
}
