package models

import (
	"time"

	"github.com/google/uuid"
)

// Order statuses.
const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusProcessed = "processed"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// Order is a placed sacrifice order. Delivery fields snapshot the
// chosen address so later address edits do not rewrite history.
type Order struct {
	BaseModel
	UserID              uuid.UUID   `gorm:"type:uuid;index" json:"user_id"`
	User                *User       `json:"user,omitempty"`
	OrderNumber         string      `gorm:"uniqueIndex" json:"order_number"`
	Status              string      `gorm:"default:pending" json:"status"`
	OnBehalfOf          string      `json:"on_behalf_of"`
	Notes               string      `json:"notes"`
	PlacedAt            time.Time   `json:"placed_at"`
	DeliveryAddressID   *uuid.UUID  `gorm:"type:uuid" json:"delivery_address_id"`
	DeliveryAddressLine string      `json:"delivery_address_line"`
	DeliveryCity        string      `json:"delivery_city"`
	DeliveryDistrict    string      `json:"delivery_district"`
	Amount              float64     `json:"amount"`
	Items               []OrderItem `json:"items,omitempty"`
}

type OrderItem struct {
	BaseModel
	OrderID          uuid.UUID  `gorm:"type:uuid;index" json:"order_id"`
	ProductID        *uuid.UUID `gorm:"type:uuid" json:"product_id"`
	ProductVariantID *uuid.UUID `gorm:"type:uuid" json:"product_variant_id"`
	ProductName      string     `json:"product_name"`
	VariantName      string     `json:"variant_name"`
	Quantity         int        `json:"quantity"`
	UnitPrice        float64    `json:"unit_price"`
	LineTotal        float64    `json:"line_total"`
}
