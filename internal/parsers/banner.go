package parsers

import (
	"time"

	"github.com/google/uuid"

	"github.com/example/qurbanku/internal/models"
	"github.com/example/qurbanku/internal/utils"
)

type BannerFmt struct {
	IsActive  string `json:"is_active"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type BannerView struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Image     string    `json:"image"`
	URL       string    `json:"url"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Fmt       BannerFmt `json:"fmt"`
}

// ParseBanner converts a banner row into its view shape.
func ParseBanner(b models.Banner, lc *Locale) BannerView {
	active := "Tidak Aktif"
	if b.IsActive {
		active = "Aktif"
	}

	return BannerView{
		ID:        b.ID,
		Title:     b.Title,
		Image:     b.Image,
		URL:       b.URL,
		IsActive:  b.IsActive,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
		Fmt: BannerFmt{
			IsActive:  active,
			CreatedAt: utils.FormatDate(b.CreatedAt, lc.Lang, lc.Location),
			UpdatedAt: utils.FormatDate(b.UpdatedAt, lc.Lang, lc.Location),
		},
	}
}

// ParseBanners maps a collection preserving query order.
func ParseBanners(banners []models.Banner, lc *Locale) []BannerView {
	views := make([]BannerView, 0, len(banners))
	for _, b := range banners {
		views = append(views, ParseBanner(b, lc))
	}
	return views
}
