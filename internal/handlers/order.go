package handlers

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/example/qurbanku/internal/middleware"
	"github.com/example/qurbanku/internal/models"
	"github.com/example/qurbanku/internal/parsers"
	"github.com/example/qurbanku/internal/services"
	"github.com/example/qurbanku/internal/utils"
	"github.com/example/qurbanku/internal/validation"
)

// OrderHandler manages sacrifice orders.
type OrderHandler struct {
	db  *gorm.DB
	lc  *parsers.Locale
	wa  *services.WhatsAppService
	log *logrus.Logger
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(db *gorm.DB, lc *parsers.Locale, wa *services.WhatsAppService, log *logrus.Logger) *OrderHandler {
	return &OrderHandler{db: db, lc: lc, wa: wa, log: log}
}

type orderItemRequest struct {
	ProductVariantID string `json:"product_variant_id" validate:"required"`
	Quantity         int    `json:"quantity" validate:"required,gt=0"`
}

type createOrderRequest struct {
	OnBehalfOf        string             `json:"on_behalf_of" validate:"required"`
	Notes             string             `json:"notes"`
	DeliveryAddressID string             `json:"delivery_address_id"`
	Items             []orderItemRequest `json:"items" validate:"required,min=1,dive"`
}

// CreateOrder places an order. Prices and names are resolved from the
// catalog, never trusted from the request, and the chosen address is
// snapshotted onto the order.
func (h *OrderHandler) CreateOrder(c *fiber.Ctx) error {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req createOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := validation.Check(req); err != nil {
		return err
	}

	order := models.Order{
		UserID:      user.ID,
		OrderNumber: newOrderNumber(),
		Status:      models.OrderStatusPending,
		OnBehalfOf:  req.OnBehalfOf,
		Notes:       req.Notes,
		PlacedAt:    time.Now(),
	}

	if req.DeliveryAddressID != "" {
		id, err := uuid.Parse(req.DeliveryAddressID)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid delivery address id")
		}
		var address models.UserAddress
		if err := h.db.First(&address, "id = ? AND user_id = ?", id, user.ID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fiber.NewError(fiber.StatusNotFound, "Address not found")
			}
			return err
		}
		order.DeliveryAddressID = &address.ID
		order.DeliveryAddressLine = address.AddressLine
		order.DeliveryCity = address.City
		order.DeliveryDistrict = address.District
	}

	var amount float64
	for _, item := range req.Items {
		variantID, err := uuid.Parse(item.ProductVariantID)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid product variant id")
		}

		var variant models.ProductVariant
		if err := h.db.First(&variant, "id = ?", variantID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fiber.NewError(fiber.StatusNotFound, "Product variant not found")
			}
			return err
		}

		if variant.Status != models.ProductStatusActive {
			return fiber.NewError(fiber.StatusBadRequest, "Product variant is not available")
		}

		var product models.Product
		if err := h.db.First(&product, "id = ?", variant.ProductID).Error; err != nil {
			return err
		}

		lineTotal := variant.Price * float64(item.Quantity)
		amount += lineTotal

		order.Items = append(order.Items, models.OrderItem{
			ProductID:        &variant.ProductID,
			ProductVariantID: &variant.ID,
			ProductName:      product.Name,
			VariantName:      variant.Name,
			Quantity:         item.Quantity,
			UnitPrice:        variant.Price,
			LineTotal:        lineTotal,
		})
	}
	order.Amount = amount

	// Stock is reserved at placement. The guarded update is the real
	// check: two concurrent orders cannot both take the last head.
	if err := h.db.Transaction(func(tx *gorm.DB) error {
		for _, item := range order.Items {
			res := tx.Model(&models.ProductVariant{}).
				Where("id = ? AND stock >= ?", item.ProductVariantID, item.Quantity).
				Update("stock", gorm.Expr("stock - ?", item.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return fiber.NewError(fiber.StatusBadRequest, "Insufficient stock")
			}
		}
		return tx.Create(&order).Error
	}); err != nil {
		return err
	}

	if err := h.wa.NotifyNewOrder(order.OrderNumber, user.Name, user.PhoneNumber, order.Amount, h.lc.Lang); err != nil {
		h.log.WithField("order_number", order.OrderNumber).WithError(err).
			Error("order notification failed")
	}

	h.log.WithFields(logrus.Fields{"order_number": order.OrderNumber, "user_id": user.ID}).
		Info("order placed")

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Order placed",
		"result":  parsers.SerializeOrder(order, h.lc),
	})
}

// ListOrders returns the authenticated user's orders.
func (h *OrderHandler) ListOrders(c *fiber.Ctx) error {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	pg := utils.ParsePagination(c)
	query := h.db.Model(&models.Order{}).Where("user_id = ?", user.ID)

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	var orders []models.Order
	if err := query.Preload("Items").
		Limit(pg.Limit).Offset(pg.Offset).
		Order("placed_at desc").
		Find(&orders).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": nil,
		"result": fiber.Map{
			"items":      parsers.SerializeOrders(orders, h.lc),
			"pagination": utils.NewOffsetMeta(pg, total),
		},
	})
}

// GetOrder returns one of the user's orders.
func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var order models.Order
	if err := h.db.Preload("Items").
		First(&order, "id = ? AND user_id = ?", id, user.ID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "Order not found")
		}
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": nil,
		"result":  parsers.SerializeOrder(order, h.lc),
	})
}

func newOrderNumber() string {
	suffix := strings.ToUpper(uuid.New().String()[:8])
	return fmt.Sprintf("QRB-%s-%s", time.Now().Format("20060102"), suffix)
}
