package handlers

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/qurbanku/internal/middleware"
	"github.com/example/qurbanku/internal/models"
	"github.com/example/qurbanku/internal/parsers"
	"github.com/example/qurbanku/internal/validation"
)

// ProfileHandler manages profile and address-book endpoints.
type ProfileHandler struct {
	db *gorm.DB
	lc *parsers.Locale
}

// NewProfileHandler constructs ProfileHandler.
func NewProfileHandler(db *gorm.DB, lc *parsers.Locale) *ProfileHandler {
	return &ProfileHandler{db: db, lc: lc}
}

// GetMe returns the authenticated user's profile.
func (h *ProfileHandler) GetMe(c *fiber.Ctx) error {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": nil,
		"result":  parsers.ParseUser(user, h.lc),
	})
}

type updateMeRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email" validate:"omitempty,email"`
	Image *string `json:"image"`
}

// UpdateMe updates profile fields.
func (h *ProfileHandler) UpdateMe(c *fiber.Ctx) error {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req updateMeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.Email != nil {
		if err := validation.Check(req); err != nil {
			return err
		}
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Image != nil {
		updates["image"] = *req.Image
	}
	if len(updates) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "no fields to update")
	}

	if err := h.db.Model(&models.User{}).Where("id = ?", user.ID).Updates(updates).Error; err != nil {
		return err
	}

	if err := h.db.First(&user, "id = ?", user.ID).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Profile updated",
		"result":  parsers.ParseUser(user, h.lc),
	})
}

// ListAddresses returns the user's address book, main address first.
func (h *ProfileHandler) ListAddresses(c *fiber.Ctx) error {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	// "main" sorts after "alternative", so descending puts it first.
	var addresses []models.UserAddress
	if err := h.db.Where("user_id = ?", user.ID).
		Order("type desc, created_at desc").
		Find(&addresses).Error; err != nil {
		return err
	}

	views, err := parsers.ParseAddresses(addresses, h.lc)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": nil,
		"result":  views,
	})
}

type addressRequest struct {
	Type        string          `json:"type" validate:"omitempty,oneof=main alternative"`
	Label       string          `json:"label" validate:"required"`
	Recipient   string          `json:"recipient" validate:"required"`
	Phone       string          `json:"phone"`
	AddressLine string          `json:"address_line" validate:"required"`
	City        string          `json:"city"`
	District    string          `json:"district"`
	PostalCode  string          `json:"postal_code"`
	Location    json.RawMessage `json:"location"`
}

// CreateAddress adds an address. The first address a user creates is
// always main; a later address claiming main demotes the others.
func (h *ProfileHandler) CreateAddress(c *fiber.Ctx) error {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req addressRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := validation.Check(req); err != nil {
		return err
	}

	var count int64
	if err := h.db.Model(&models.UserAddress{}).
		Where("user_id = ?", user.ID).Count(&count).Error; err != nil {
		return err
	}

	addressType := req.Type
	if addressType == "" {
		addressType = models.AddressTypeAlternative
	}
	if count == 0 {
		addressType = models.AddressTypeMain
	}

	if addressType == models.AddressTypeMain && count > 0 {
		if err := h.db.Model(&models.UserAddress{}).
			Where("user_id = ?", user.ID).
			Update("type", models.AddressTypeAlternative).Error; err != nil {
			return err
		}
	}

	location := "{}"
	if len(req.Location) > 0 {
		location = string(req.Location)
	}

	address := models.UserAddress{
		UserID:      user.ID,
		Type:        addressType,
		Label:       req.Label,
		Recipient:   req.Recipient,
		Phone:       req.Phone,
		AddressLine: req.AddressLine,
		City:        req.City,
		District:    req.District,
		PostalCode:  req.PostalCode,
		Location:    location,
	}

	if err := h.db.Create(&address).Error; err != nil {
		return err
	}

	view, err := parsers.ParseAddress(address, h.lc)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Address created",
		"result":  view,
	})
}

// UpdateAddress updates an address; claiming main demotes siblings.
func (h *ProfileHandler) UpdateAddress(c *fiber.Ctx) error {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	addrID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var address models.UserAddress
	if err := h.db.First(&address, "id = ? AND user_id = ?", addrID, user.ID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "Address not found")
		}
		return err
	}

	var req addressRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := validation.Check(req); err != nil {
		return err
	}

	if req.Type == models.AddressTypeMain && address.Type != models.AddressTypeMain {
		if err := h.db.Model(&models.UserAddress{}).
			Where("user_id = ?", user.ID).
			Update("type", models.AddressTypeAlternative).Error; err != nil {
			return err
		}
		address.Type = models.AddressTypeMain
	}

	address.Label = req.Label
	address.Recipient = req.Recipient
	address.Phone = req.Phone
	address.AddressLine = req.AddressLine
	address.City = req.City
	address.District = req.District
	address.PostalCode = req.PostalCode
	if len(req.Location) > 0 {
		address.Location = string(req.Location)
	}

	if err := h.db.Save(&address).Error; err != nil {
		return err
	}

	view, err := parsers.ParseAddress(address, h.lc)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Address updated",
		"result":  view,
	})
}

// DeleteAddress removes an alternative address. The main address can
// never be deleted, only replaced by promoting another.
func (h *ProfileHandler) DeleteAddress(c *fiber.Ctx) error {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	addrID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var address models.UserAddress
	if err := h.db.First(&address, "id = ? AND user_id = ?", addrID, user.ID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "Address not found")
		}
		return err
	}

	if address.Type == models.AddressTypeMain {
		return fiber.NewError(fiber.StatusBadRequest, "Main address cannot be deleted")
	}

	if err := h.db.Delete(&address).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Address deleted",
		"result":  nil,
	})
}
