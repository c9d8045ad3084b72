package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/qurbanku/internal/models"
	"github.com/example/qurbanku/internal/parsers"
	"github.com/example/qurbanku/internal/utils"
	"github.com/example/qurbanku/internal/validation"
)

// CatalogHandler manages the catalog dimensions: categories, services
// and warehouses.
type CatalogHandler struct {
	db *gorm.DB
	lc *parsers.Locale
}

// NewCatalogHandler constructs CatalogHandler.
func NewCatalogHandler(db *gorm.DB, lc *parsers.Locale) *CatalogHandler {
	return &CatalogHandler{db: db, lc: lc}
}

// Categories

// ListCategories returns paginated categories.
func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)
	var total int64
	if err := h.db.Model(&models.Category{}).Count(&total).Error; err != nil {
		return err
	}

	var categories []models.Category
	if err := h.db.Limit(pg.Limit).Offset(pg.Offset).Order("created_at desc").
		Find(&categories).Error; err != nil {
		return err
	}

	views := make([]parsers.CategoryView, 0, len(categories))
	for _, cat := range categories {
		views = append(views, parsers.ParseCategory(cat, h.lc))
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": nil,
		"result": fiber.Map{
			"items":      views,
			"pagination": utils.NewOffsetMeta(pg, total),
		},
	})
}

// GetCategory returns a single category by ID.
func (h *CatalogHandler) GetCategory(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var category models.Category
	if err := h.db.First(&category, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "Category not found")
		}
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": nil,
		"result":  parsers.ParseCategory(category, h.lc),
	})
}

type categoryRequest struct {
	Name        string `json:"name" validate:"required"`
	Slug        string `json:"slug" validate:"required"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Status      string `json:"status" validate:"omitempty,oneof=active inactive"`
}

// CreateCategory creates a category.
func (h *CatalogHandler) CreateCategory(c *fiber.Ctx) error {
	var req categoryRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := validation.Check(req); err != nil {
		return err
	}

	category := models.Category{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		Image:       req.Image,
		Status:      req.Status,
	}
	if category.Status == "" {
		category.Status = models.ProductStatusActive
	}

	if err := h.db.Create(&category).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Category created",
		"result":  parsers.ParseCategory(category, h.lc),
	})
}

// UpdateCategory updates a category.
func (h *CatalogHandler) UpdateCategory(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var category models.Category
	if err := h.db.First(&category, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "Category not found")
		}
		return err
	}

	var req categoryRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := validation.Check(req); err != nil {
		return err
	}

	category.Name = req.Name
	category.Slug = req.Slug
	category.Description = req.Description
	category.Image = req.Image
	if req.Status != "" {
		category.Status = req.Status
	}

	if err := h.db.Save(&category).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Category updated",
		"result":  parsers.ParseCategory(category, h.lc),
	})
}

// DeleteCategory removes a category.
func (h *CatalogHandler) DeleteCategory(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	if err := h.db.Delete(&models.Category{}, "id = ?", id).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Category deleted",
		"result":  nil,
	})
}

// Services

// ListServices returns paginated services, optionally by type.
func (h *CatalogHandler) ListServices(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)
	query := h.db.Model(&models.Service{})

	if t := c.Query("type"); t != "" {
		query = query.Where("type = ?", t)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	var services []models.Service
	if err := query.Limit(pg.Limit).Offset(pg.Offset).Order("created_at desc").
		Find(&services).Error; err != nil {
		return err
	}

	views := make([]parsers.ServiceView, 0, len(services))
	for _, s := range services {
		views = append(views, parsers.ParseService(s, h.lc))
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": nil,
		"result": fiber.Map{
			"items":      views,
			"pagination": utils.NewOffsetMeta(pg, total),
		},
	})
}

// GetService returns a single service by ID.
func (h *CatalogHandler) GetService(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var service models.Service
	if err := h.db.First(&service, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "Service not found")
		}
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": nil,
		"result":  parsers.ParseService(service, h.lc),
	})
}

type serviceRequest struct {
	Name        string `json:"name" validate:"required"`
	Slug        string `json:"slug" validate:"required"`
	Type        string `json:"type" validate:"omitempty,oneof=qurban aqiqah regular"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Status      string `json:"status" validate:"omitempty,oneof=active inactive"`
}

// CreateService creates a service.
func (h *CatalogHandler) CreateService(c *fiber.Ctx) error {
	var req serviceRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := validation.Check(req); err != nil {
		return err
	}

	service := models.Service{
		Name:        req.Name,
		Slug:        req.Slug,
		Type:        req.Type,
		Description: req.Description,
		Image:       req.Image,
		Status:      req.Status,
	}
	if service.Type == "" {
		service.Type = models.ServiceTypeQurban
	}
	if service.Status == "" {
		service.Status = models.ProductStatusActive
	}

	if err := h.db.Create(&service).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Service created",
		"result":  parsers.ParseService(service, h.lc),
	})
}

// UpdateService updates a service.
func (h *CatalogHandler) UpdateService(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var service models.Service
	if err := h.db.First(&service, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "Service not found")
		}
		return err
	}

	var req serviceRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := validation.Check(req); err != nil {
		return err
	}

	service.Name = req.Name
	service.Slug = req.Slug
	service.Description = req.Description
	service.Image = req.Image
	if req.Type != "" {
		service.Type = req.Type
	}
	if req.Status != "" {
		service.Status = req.Status
	}

	if err := h.db.Save(&service).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Service updated",
		"result":  parsers.ParseService(service, h.lc),
	})
}

// DeleteService removes a service.
func (h *CatalogHandler) DeleteService(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	if err := h.db.Delete(&models.Service{}, "id = ?", id).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Service deleted",
		"result":  nil,
	})
}

// Warehouses

// ListWarehouses returns paginated warehouses.
func (h *CatalogHandler) ListWarehouses(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)
	query := h.db.Model(&models.Warehouse{})

	if city := c.Query("city"); city != "" {
		query = query.Where("city ILIKE ?", city)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	var warehouses []models.Warehouse
	if err := query.Limit(pg.Limit).Offset(pg.Offset).Order("created_at desc").
		Find(&warehouses).Error; err != nil {
		return err
	}

	views := make([]parsers.WarehouseView, 0, len(warehouses))
	for _, w := range warehouses {
		views = append(views, parsers.ParseWarehouse(w, h.lc))
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": nil,
		"result": fiber.Map{
			"items":      views,
			"pagination": utils.NewOffsetMeta(pg, total),
		},
	})
}

// GetWarehouse returns a single warehouse by ID.
func (h *CatalogHandler) GetWarehouse(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var warehouse models.Warehouse
	if err := h.db.First(&warehouse, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "Warehouse not found")
		}
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": nil,
		"result":  parsers.ParseWarehouse(warehouse, h.lc),
	})
}

type warehouseRequest struct {
	Name         string `json:"name" validate:"required"`
	AddressLine  string `json:"address_line" validate:"required"`
	City         string `json:"city"`
	District     string `json:"district"`
	ContactName  string `json:"contact_name"`
	ContactPhone string `json:"contact_phone"`
	Status       string `json:"status" validate:"omitempty,oneof=active inactive"`
}

// CreateWarehouse creates a warehouse.
func (h *CatalogHandler) CreateWarehouse(c *fiber.Ctx) error {
	var req warehouseRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := validation.Check(req); err != nil {
		return err
	}

	warehouse := models.Warehouse{
		Name:         req.Name,
		AddressLine:  req.AddressLine,
		City:         req.City,
		District:     req.District,
		ContactName:  req.ContactName,
		ContactPhone: req.ContactPhone,
		Status:       req.Status,
	}
	if warehouse.Status == "" {
		warehouse.Status = models.ProductStatusActive
	}

	if err := h.db.Create(&warehouse).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Warehouse created",
		"result":  parsers.ParseWarehouse(warehouse, h.lc),
	})
}

// UpdateWarehouse updates a warehouse.
func (h *CatalogHandler) UpdateWarehouse(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var warehouse models.Warehouse
	if err := h.db.First(&warehouse, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "Warehouse not found")
		}
		return err
	}

	var req warehouseRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := validation.Check(req); err != nil {
		return err
	}

	warehouse.Name = req.Name
	warehouse.AddressLine = req.AddressLine
	warehouse.City = req.City
	warehouse.District = req.District
	warehouse.ContactName = req.ContactName
	warehouse.ContactPhone = req.ContactPhone
	if req.Status != "" {
		warehouse.Status = req.Status
	}

	if err := h.db.Save(&warehouse).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Warehouse updated",
		"result":  parsers.ParseWarehouse(warehouse, h.lc),
	})
}

// DeleteWarehouse removes a warehouse.
func (h *CatalogHandler) DeleteWarehouse(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	if err := h.db.Delete(&models.Warehouse{}, "id = ?", id).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Warehouse deleted",
		"result":  nil,
	})
}
