package models

import "github.com/google/uuid"

// Address types. Exactly one main address exists per user once the
// user has any address at all; writes enforce this by demotion.
const (
	AddressTypeMain        = "main"
	AddressTypeAlternative = "alternative"
)

// UserAddress is an address-book entry. Location holds a raw JSON
// point ({"lat":..,"lng":..}) as written by the client.
type UserAddress struct {
	BaseModel
	UserID      uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	Type        string    `gorm:"default:alternative" json:"type"`
	Label       string    `json:"label"`
	Recipient   string    `json:"recipient"`
	Phone       string    `json:"phone"`
	AddressLine string    `json:"address_line"`
	City        string    `json:"city"`
	District    string    `json:"district"`
	PostalCode  string    `json:"postal_code"`
	Location    string    `gorm:"type:jsonb;default:'{}'" json:"location"`
}
