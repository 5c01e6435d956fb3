package server

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"churchvlog/internal/models"
)

func TestAnnouncementLifecycle(t *testing.T) {
	s, app, db := setupTestServer(t)

	req := asAdmin(t, s, jsonRequest(t, http.MethodPost, "/api/announcements", AnnouncementRequest{
		Title:   "Potluck",
		Content: "This Saturday after the service",
	}))
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.StatusCode, readBody(t, resp))
	}
	var created models.Announcement
	decodeBody(t, resp, &created)

	listReq := httptest.NewRequest(http.MethodGet, "/api/announcements", nil)
	listResp, _ := app.Test(listReq, -1)
	var announcements []models.Announcement
	decodeBody(t, listResp, &announcements)
	if len(announcements) != 1 {
		t.Fatalf("expected 1 announcement, got %d", len(announcements))
	}

	updateReq := asAdmin(t, s, jsonRequest(t, http.MethodPut, fmt.Sprintf("/api/announcements/%d", created.ID), AnnouncementRequest{
		Title:   "Potluck moved",
		Content: "Now on Sunday",
	}))
	resp, _ = app.Test(updateReq, -1)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 from update, got %d", resp.StatusCode)
	}
	var stored models.Announcement
	db.First(&stored, created.ID)
	if stored.Title != "Potluck moved" {
		t.Errorf("update not applied: %+v", stored)
	}

	deleteReq := asAdmin(t, s, httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/announcements/%d", created.ID), nil))
	resp, _ = app.Test(deleteReq, -1)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 from delete, got %d", resp.StatusCode)
	}
	var count int64
	db.Model(&models.Announcement{}).Count(&count)
	if count != 0 {
		t.Errorf("expected announcement removed, have %d", count)
	}
}

func TestCreateAnnouncement_RejectsOversizedImage(t *testing.T) {
	s, app, _ := setupTestServer(t)

	req := asAdmin(t, s, jsonRequest(t, http.MethodPost, "/api/announcements", AnnouncementRequest{
		Title:     "Big picture",
		Content:   "text",
		ImageData: strings.Repeat("A", maxImageBytes+1),
		ImageName: "big.png",
	}))
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for oversized image, got %d", resp.StatusCode)
	}
}

func TestAdminListsIncludeInactive(t *testing.T) {
	s, app, db := setupTestServer(t)

	db.Create(&models.Announcement{Title: "old", Content: "c", IsActive: false})
	db.Create(&models.GalleryItem{Title: "old photo", ImageData: "x", ImageName: "x.jpg", IsActive: false})

	req := asAdmin(t, s, httptest.NewRequest(http.MethodGet, "/api/announcements/all", nil))
	resp, _ := app.Test(req, -1)
	var announcements []models.Announcement
	decodeBody(t, resp, &announcements)
	if len(announcements) != 1 {
		t.Errorf("expected inactive announcement in admin list, got %d entries", len(announcements))
	}

	req = asAdmin(t, s, httptest.NewRequest(http.MethodGet, "/api/gallery/all", nil))
	resp, _ = app.Test(req, -1)
	var items []models.GalleryItem
	decodeBody(t, resp, &items)
	if len(items) != 1 {
		t.Errorf("expected inactive photo in admin list, got %d entries", len(items))
	}

	// The public lists stay filtered.
	pubResp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/api/announcements", nil), -1)
	var public []models.Announcement
	decodeBody(t, pubResp, &public)
	if len(public) != 0 {
		t.Errorf("expected empty public announcement list, got %d", len(public))
	}
}

func TestGalleryLifecycle(t *testing.T) {
	s, app, db := setupTestServer(t)

	t.Run("create requires image data", func(t *testing.T) {
		req := asAdmin(t, s, jsonRequest(t, http.MethodPost, "/api/gallery", GalleryRequest{
			Title: "Empty",
		}))
		resp, _ := app.Test(req, -1)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", resp.StatusCode)
		}
	})

	req := asAdmin(t, s, jsonRequest(t, http.MethodPost, "/api/gallery", GalleryRequest{
		Title:     "Easter choir",
		ImageData: "aGVsbG8=",
		ImageName: "choir.jpg",
	}))
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.StatusCode, readBody(t, resp))
	}
	var item models.GalleryItem
	decodeBody(t, resp, &item)

	listReq := httptest.NewRequest(http.MethodGet, "/api/gallery", nil)
	listResp, _ := app.Test(listReq, -1)
	var items []models.GalleryItem
	decodeBody(t, listResp, &items)
	if len(items) != 1 {
		t.Fatalf("expected 1 photo, got %d", len(items))
	}

	deleteReq := asAdmin(t, s, httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/gallery/%d", item.ID), nil))
	resp, _ = app.Test(deleteReq, -1)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 from delete, got %d", resp.StatusCode)
	}
	var count int64
	db.Model(&models.GalleryItem{}).Count(&count)
	if count != 0 {
		t.Errorf("expected photo removed, have %d", count)
	}
}

func TestChurchInfo(t *testing.T) {
	s, app, _ := setupTestServer(t)

	t.Run("defaults before first save", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/church", nil)
		resp, _ := app.Test(req, -1)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d", resp.StatusCode)
		}
		var info models.ChurchInfo
		decodeBody(t, resp, &info)
		if info.Name == "" {
			t.Error("expected default church info, got empty name")
		}
	})

	t.Run("update then read back", func(t *testing.T) {
		req := asAdmin(t, s, jsonRequest(t, http.MethodPut, "/api/church", ChurchInfoRequest{
			Name:         "Grace Community Church",
			Pastor:       "Pastor Kim",
			ServiceTimes: "Sundays 9:00 and 11:00",
		}))
		resp, _ := app.Test(req, -1)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", resp.StatusCode, readBody(t, resp))
		}

		getReq := httptest.NewRequest(http.MethodGet, "/api/church", nil)
		getResp, _ := app.Test(getReq, -1)
		var info models.ChurchInfo
		decodeBody(t, getResp, &info)
		if info.Name != "Grace Community Church" || info.Pastor != "Pastor Kim" {
			t.Errorf("unexpected church info: %+v", info)
		}
	})

	t.Run("repeated saves keep a single row", func(t *testing.T) {
		req := asAdmin(t, s, jsonRequest(t, http.MethodPut, "/api/church", ChurchInfoRequest{
			Name: "Grace Community Church (renamed)",
		}))
		resp, _ := app.Test(req, -1)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d", resp.StatusCode)
		}
		var count int64
		s.db.Model(&models.ChurchInfo{}).Count(&count)
		if count != 1 {
			t.Errorf("expected a single church info row, got %d", count)
		}
	})
}
