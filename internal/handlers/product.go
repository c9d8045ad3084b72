package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/qurbanku/internal/models"
	"github.com/example/qurbanku/internal/parsers"
	"github.com/example/qurbanku/internal/utils"
	"github.com/example/qurbanku/internal/validation"
)

// ProductHandler manages product browsing and dashboard CRUD.
type ProductHandler struct {
	db *gorm.DB
	lc *parsers.Locale
}

// NewProductHandler constructs ProductHandler.
func NewProductHandler(db *gorm.DB, lc *parsers.Locale) *ProductHandler {
	return &ProductHandler{db: db, lc: lc}
}

func (h *ProductHandler) preloaded(query *gorm.DB) *gorm.DB {
	return query.
		Preload("Categories").
		Preload("Services").
		Preload("Warehouses").
		Preload("Variants", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at asc")
		}).
		// Most recent discount first; serializers take the head.
		Preload("Variants.Discounts", func(db *gorm.DB) *gorm.DB {
			return db.Order("id desc")
		}).
		Preload("Variants.Attributes")
}

// ListProducts returns products with optional filters, in either
// offset or cursor pagination mode.
func (h *ProductHandler) ListProducts(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)
	query := h.db.Model(&models.Product{}).Where("products.status = ?", models.ProductStatusActive)

	if v := c.Query("category_id"); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			query = query.Joins("JOIN product_categories pc ON pc.product_id = products.id").
				Where("pc.category_id = ?", id)
		}
	}

	if v := c.Query("service_id"); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			query = query.Joins("JOIN product_services ps ON ps.product_id = products.id").
				Where("ps.service_id = ?", id)
		}
	}

	if v := c.Query("warehouse_id"); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			query = query.Joins("JOIN product_warehouses pw ON pw.product_id = products.id").
				Where("pw.warehouse_id = ?", id)
		}
	}

	if search := strings.TrimSpace(c.Query("search")); search != "" {
		q := "%" + search + "%"
		query = query.Where("products.name ILIKE ? OR products.description ILIKE ?", q, q)
	}

	if pg.Mode == utils.PaginationCursor {
		return h.listByCursor(c, query, pg)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	var products []models.Product
	if err := h.preloaded(query).
		Limit(pg.Limit).Offset(pg.Offset).
		Order("products.created_at desc").
		Find(&products).Error; err != nil {
		return err
	}

	views, err := parsers.SerializeProducts(products, h.lc)
	if err != nil {
		return err
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

func (h *ProductHandler) listByCursor(c *fiber.Ctx, query *gorm.DB, pg utils.Pagination) error {
	cursorQuery := query.Session(&gorm.Session{})
	if pg.Cursor != "" {
		if id, err := uuid.Parse(pg.Cursor); err == nil {
			cursorQuery = cursorQuery.Where("products.id < ?", id)
		}
	}

	var products []models.Product
	if err := h.preloaded(cursorQuery).
		Limit(pg.Limit).
		Order("products.id desc").
		Find(&products).Error; err != nil {
		return err
	}

	// The boundary row is the last the full scan would ever return; a
	// next cursor equal to it would only buy an empty round trip.
	var boundaryID string
	if err := query.Session(&gorm.Session{}).
		Select("products.id").Order("products.id asc").Limit(1).
		Scan(&boundaryID).Error; err != nil {
		return err
	}

	var lastID string
	if len(products) > 0 {
		lastID = products[len(products)-1].ID.String()
	}

	views, err := parsers.SerializeProducts(products, h.lc)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": nil,
		"result": fiber.Map{
			"items": views,
			"pagination": utils.CursorMeta{
				Limit: pg.Limit,
				Next:  utils.NextCursor(len(products), pg.Limit, lastID, boundaryID),
			},
		},
	})
}

// GetProduct loads one product with all relations, by id or slug.
func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	param := c.Params("id")

	query := h.preloaded(h.db)
	if id, err := uuid.Parse(param); err == nil {
		query = query.Where("id = ?", id)
	} else {
		query = query.Where("slug = ?", param)
	}

	var product models.Product
	if err := query.First(&product).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "Product not found")
		}
		return err
	}

	view, err := parsers.SerializeProduct(product, h.lc)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": nil,
		"result":  view,
	})
}

type variantRequest struct {
	SKU    string  `json:"sku"`
	Name   string  `json:"name" validate:"required"`
	Price  float64 `json:"price" validate:"gte=0"`
	Stock  int     `json:"stock"`
	Status string  `json:"status" validate:"omitempty,oneof=active inactive"`
}

type productRequest struct {
	Slug         string           `json:"slug" validate:"required"`
	Name         string           `json:"name" validate:"required"`
	Description  string           `json:"description"`
	Image        string           `json:"image"`
	Images       []string         `json:"images"`
	Attributes   string           `json:"attributes"`
	Status       string           `json:"status" validate:"omitempty,oneof=active inactive"`
	CategoryIDs  []string         `json:"category_ids"`
	ServiceIDs   []string         `json:"service_ids"`
	WarehouseIDs []string         `json:"warehouse_ids"`
	Variants     []variantRequest `json:"variants"`
}

func (h *ProductHandler) buildProduct(req productRequest) (models.Product, error) {
	product := models.Product{
		Slug:        req.Slug,
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
		Images:      req.Images,
		Attributes:  req.Attributes,
		Status:      req.Status,
	}

	if product.Status == "" {
		product.Status = models.ProductStatusActive
	}
	if product.Attributes == "" {
		product.Attributes = "[]"
	}

	for _, raw := range req.CategoryIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return product, fiber.NewError(fiber.StatusBadRequest, "invalid category id")
		}
		product.Categories = append(product.Categories, models.Category{BaseModel: models.BaseModel{ID: id}})
	}
	for _, raw := range req.ServiceIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return product, fiber.NewError(fiber.StatusBadRequest, "invalid service id")
		}
		product.Services = append(product.Services, models.Service{BaseModel: models.BaseModel{ID: id}})
	}
	for _, raw := range req.WarehouseIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return product, fiber.NewError(fiber.StatusBadRequest, "invalid warehouse id")
		}
		product.Warehouses = append(product.Warehouses, models.Warehouse{BaseModel: models.BaseModel{ID: id}})
	}

	for _, v := range req.Variants {
		status := v.Status
		if status == "" {
			status = models.ProductStatusActive
		}
		product.Variants = append(product.Variants, models.ProductVariant{
			SKU:    v.SKU,
			Name:   v.Name,
			Price:  v.Price,
			Stock:  v.Stock,
			Status: status,
		})
	}

	return product, nil
}

// CreateProduct handles dashboard product creation.
func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := validation.Check(req); err != nil {
		return err
	}

	product, err := h.buildProduct(req)
	if err != nil {
		return err
	}

	if err := h.db.Create(&product).Error; err != nil {
		return err
	}

	view, err := parsers.SerializeProduct(product, h.lc)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Product created",
		"result":  view,
	})
}

// UpdateProduct replaces product fields and associations.
func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var existing models.Product
	if err := h.db.First(&existing, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "Product not found")
		}
		return err
	}

	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := validation.Check(req); err != nil {
		return err
	}

	product, err := h.buildProduct(req)
	if err != nil {
		return err
	}
	product.ID = existing.ID

	if err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&existing).Updates(map[string]interface{}{
			"slug":        product.Slug,
			"name":        product.Name,
			"description": product.Description,
			"image":       product.Image,
			"images":      product.Images,
			"attributes":  product.Attributes,
			"status":      product.Status,
		}).Error; err != nil {
			return err
		}

		if err := tx.Model(&existing).Association("Categories").Replace(product.Categories); err != nil {
			return err
		}
		if err := tx.Model(&existing).Association("Services").Replace(product.Services); err != nil {
			return err
		}
		if err := tx.Model(&existing).Association("Warehouses").Replace(product.Warehouses); err != nil {
			return err
		}

		if len(product.Variants) > 0 {
			if err := tx.Where("product_id = ?", existing.ID).Delete(&models.ProductVariant{}).Error; err != nil {
				return err
			}
			for i := range product.Variants {
				product.Variants[i].ProductID = existing.ID
			}
			if err := tx.Create(&product.Variants).Error; err != nil {
				return err
			}
		}

		return nil
	}); err != nil {
		return err
	}

	var updated models.Product
	if err := h.preloaded(h.db).First(&updated, "id = ?", existing.ID).Error; err != nil {
		return err
	}

	view, err := parsers.SerializeProduct(updated, h.lc)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Product updated",
		"result":  view,
	})
}

// DeleteProduct removes a product and its variants.
func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var product models.Product
	if err := h.db.First(&product, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "Product not found")
		}
		return err
	}

	if err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", product.ID).Delete(&models.ProductVariant{}).Error; err != nil {
			return err
		}
		return tx.Delete(&product).Error
	}); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Product deleted",
		"result":  nil,
	})
}
