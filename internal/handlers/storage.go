package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/example/qurbanku/internal/services"
)

// StorageHandler issues presigned upload URLs.
type StorageHandler struct {
	storage *services.StorageService
}

// NewStorageHandler constructs StorageHandler.
func NewStorageHandler(storage *services.StorageService) *StorageHandler {
	return &StorageHandler{storage: storage}
}

// GetUploadURL returns a time-limited upload URL plus the public URL
// the object will be readable from.
func (h *StorageHandler) GetUploadURL(c *fiber.Ctx) error {
	if h.storage == nil {
		return fiber.NewError(fiber.StatusInternalServerError, "storage is not configured")
	}

	filename := strings.TrimSpace(c.Query("filename"))
	if filename == "" {
		return fiber.NewError(fiber.StatusBadRequest, "filename is required")
	}
	if strings.Contains(filename, "/") || strings.Contains(filename, "..") {
		return fiber.NewError(fiber.StatusBadRequest, "invalid filename")
	}

	contentType := c.Query("content_type", "application/octet-stream")

	target, err := h.storage.SignedUpload(filename, contentType)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": nil,
		"result":  target,
	})
}
