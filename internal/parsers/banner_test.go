package parsers

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/example/qurbanku/internal/models"
)

func TestParseBanner(t *testing.T) {
	ts := time.Date(2025, time.April, 2, 1, 0, 0, 0, time.UTC)
	b := models.Banner{
		BaseModel: models.BaseModel{ID: uuid.New(), CreatedAt: ts, UpdatedAt: ts},
		Title:     "Promo Qurban",
		IsActive:  true,
	}

	view := ParseBanner(b, testLocale())

	if view.Fmt.IsActive != "Aktif" {
		t.Errorf("is_active label = %q", view.Fmt.IsActive)
	}
	if view.Fmt.CreatedAt != "02 April 2025 08:00:00" {
		t.Errorf("created_at fmt = %q", view.Fmt.CreatedAt)
	}

	b.IsActive = false
	if got := ParseBanner(b, testLocale()); got.Fmt.IsActive != "Tidak Aktif" {
		t.Errorf("inactive label = %q", got.Fmt.IsActive)
	}
}

func TestParseBannersPreservesOrder(t *testing.T) {
	banners := []models.Banner{
		{BaseModel: models.BaseModel{ID: uuid.New()}, Title: "first"},
		{BaseModel: models.BaseModel{ID: uuid.New()}, Title: "second"},
	}

	views := ParseBanners(banners, testLocale())
	if len(views) != 2 || views[0].Title != "first" || views[1].Title != "second" {
		t.Errorf("order not preserved: %+v", views)
	}
}
