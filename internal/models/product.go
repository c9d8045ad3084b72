package models

import (
	"time"

	"github.com/google/uuid"
)

// Product / variant statuses and discount types.
const (
	ProductStatusActive   = "active"
	ProductStatusInactive = "inactive"

	DiscountTypePercentage = "percentage"
	DiscountTypeFixed      = "fixed"
)

// Product is a sellable livestock package. Attributes holds a raw JSON
// array of free-form {name, value} pairs.
type Product struct {
	BaseModel
	Slug        string           `gorm:"uniqueIndex" json:"slug"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Image       string           `json:"image"`
	Images      StringArray      `json:"images"`
	Attributes  string           `gorm:"type:jsonb;default:'[]'" json:"attributes"`
	Status      string           `gorm:"default:active" json:"status"`
	Categories  []Category       `gorm:"many2many:product_categories;" json:"categories,omitempty"`
	Services    []Service        `gorm:"many2many:product_services;" json:"services,omitempty"`
	Warehouses  []Warehouse      `gorm:"many2many:product_warehouses;" json:"warehouses,omitempty"`
	Variants    []ProductVariant `json:"variants,omitempty"`
}

type ProductVariant struct {
	BaseModel
	ProductID  uuid.UUID          `gorm:"type:uuid;index" json:"product_id"`
	SKU        string             `json:"sku"`
	Name       string             `json:"name"`
	Price      float64            `json:"price"`
	Stock      int                `json:"stock"`
	Status     string             `gorm:"default:active" json:"status"`
	Discounts  []Discount         `json:"discounts,omitempty"`
	Attributes []VariantAttribute `json:"attributes,omitempty"`
}

// Discount applies to a single variant. When several rows exist the
// most recently created one wins.
type Discount struct {
	BaseModel
	ProductVariantID uuid.UUID  `gorm:"type:uuid;index" json:"product_variant_id"`
	Type             string     `gorm:"default:percentage" json:"type"`
	Value            float64    `json:"value"`
	StartedAt        *time.Time `json:"started_at"`
	EndedAt          *time.Time `json:"ended_at"`
	Rule             string     `gorm:"type:jsonb;default:'{}'" json:"rule"`
}

type VariantAttribute struct {
	BaseModel
	ProductVariantID uuid.UUID `gorm:"type:uuid;index" json:"product_variant_id"`
	Name             string    `json:"name"`
	Value            string    `json:"value"`
	Rule             string    `gorm:"type:jsonb;default:'{}'" json:"rule"`
}
