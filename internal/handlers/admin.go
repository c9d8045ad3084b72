package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/qurbanku/internal/models"
	"github.com/example/qurbanku/internal/parsers"
	"github.com/example/qurbanku/internal/utils"
)

// AdminHandler manages dashboard-only endpoints.
type AdminHandler struct {
	db *gorm.DB
	lc *parsers.Locale
}

// NewAdminHandler constructs AdminHandler.
func NewAdminHandler(db *gorm.DB, lc *parsers.Locale) *AdminHandler {
	return &AdminHandler{db: db, lc: lc}
}

// DashboardStats returns aggregate statistics for the admin dashboard.
func (h *AdminHandler) DashboardStats(c *fiber.Ctx) error {
	var totalUsers int64
	if err := h.db.Model(&models.User{}).Count(&totalUsers).Error; err != nil {
		return err
	}

	var totalOrders int64
	if err := h.db.Model(&models.Order{}).Count(&totalOrders).Error; err != nil {
		return err
	}

	type statusCount struct {
		Status string `json:"status"`
		Count  int64  `json:"count"`
	}
	var statusCounts []statusCount
	if err := h.db.Model(&models.Order{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&statusCounts).Error; err != nil {
		return err
	}

	ordersByStatus := make(map[string]int64)
	for _, sc := range statusCounts {
		ordersByStatus[sc.Status] = sc.Count
	}

	var totalRevenue float64
	if err := h.db.Model(&models.Order{}).
		Where("status != ?", models.OrderStatusCancelled).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&totalRevenue).Error; err != nil {
		return err
	}

	startOfDay := time.Now().Truncate(24 * time.Hour)
	var todayRevenue float64
	if err := h.db.Model(&models.Order{}).
		Where("status != ? AND placed_at >= ?", models.OrderStatusCancelled, startOfDay).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&todayRevenue).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": nil,
		"result": fiber.Map{
			"total_users":      totalUsers,
			"total_orders":     totalOrders,
			"orders_by_status": ordersByStatus,
			"total_revenue":    totalRevenue,
			"today_revenue":    todayRevenue,
		},
	})
}

// ListAllOrders returns paginated orders across all users.
func (h *AdminHandler) ListAllOrders(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)
	query := h.db.Model(&models.Order{})

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
