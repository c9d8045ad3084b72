package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/qurbanku/internal/models"
	"github.com/example/qurbanku/internal/parsers"
	"github.com/example/qurbanku/internal/validation"
)

// BannerHandler manages storefront banner slots.
type BannerHandler struct {
	db *gorm.DB
	lc *parsers.Locale
}

// NewBannerHandler constructs BannerHandler.
func NewBannerHandler(db *gorm.DB, lc *parsers.Locale) *BannerHandler {
	return &BannerHandler{db: db, lc: lc}
}

// ListBanners returns active banners for the storefront.
func (h *BannerHandler) ListBanners(c *fiber.Ctx) error {
	var banners []models.Banner
	if err := h.db.Where("is_active = ?", true).
		Order("created_at desc").
		Find(&banners).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": nil,
		"result":  parsers.ParseBanners(banners, h.lc),
	})
}

type bannerRequest struct {
	Title    string `json:"title" validate:"required"`
	Image    string `json:"image" validate:"required"`
	URL      string `json:"url"`
	IsActive *bool  `json:"is_active"`
}

// CreateBanner creates a banner.
func (h *BannerHandler) CreateBanner(c *fiber.Ctx) error {
	var req bannerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := validation.Check(req); err != nil {
		return err
	}

	banner := models.Banner{
		Title:    req.Title,
		Image:    req.Image,
		URL:      req.URL,
		IsActive: true,
	}
	if req.IsActive != nil {
		banner.IsActive = *req.IsActive
	}

	if err := h.db.Create(&banner).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Banner created",
		"result":  parsers.ParseBanner(banner, h.lc),
	})
}

// UpdateBanner updates a banner.
func (h *BannerHandler) UpdateBanner(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var banner models.Banner
	if err := h.db.First(&banner, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "Banner not found")
		}
		return err
	}

	var req bannerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := validation.Check(req); err != nil {
		return err
	}

	banner.Title = req.Title
	banner.Image = req.Image
	banner.URL = req.URL
	if req.IsActive != nil {
		banner.IsActive = *req.IsActive
	}

	if err := h.db.Save(&banner).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Banner updated",
		"result":  parsers.ParseBanner(banner, h.lc),
	})
}

// DeleteBanner removes a banner.
func (h *BannerHandler) DeleteBanner(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	if err := h.db.Delete(&models.Banner{}, "id = ?", id).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Banner deleted",
		"result":  nil,
	})
}
