package parsers

import (
	"time"

	"github.com/google/uuid"

	"github.com/example/qurbanku/internal/models"
	"github.com/example/qurbanku/internal/utils"
)

// GeoPoint is the expected shape of the address location column.
type GeoPoint struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

// AddressFmt is the display block attached to a parsed address.
type AddressFmt struct {
	Type      string `json:"type"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// AddressView is the display-ready shape of an address row.
type AddressView struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	Type        string     `json:"type"`
	Label       string     `json:"label"`
	Recipient   string     `json:"recipient"`
	Phone       string     `json:"phone"`
	AddressLine string     `json:"address_line"`
	City        string     `json:"city"`
	District    string     `json:"district"`
	PostalCode  string     `json:"postal_code"`
	Location    GeoPoint   `json:"location"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Fmt         AddressFmt `json:"fmt"`
}

// ParseAddress converts an address row into its view shape. A location
// column that does not decode yields a null-filled point.
func ParseAddress(a models.UserAddress, lc *Locale) (AddressView, error) {
	location, err := decodeJSON(a.Location, GeoPoint{}, lc)
	if err != nil {
		return AddressView{}, err
	}

	return AddressView{
		ID:          a.ID,
		UserID:      a.UserID,
		Type:        a.Type,
		Label:       a.Label,
		Recipient:   a.Recipient,
		Phone:       a.Phone,
		AddressLine: a.AddressLine,
		City:        a.City,
		District:    a.District,
		PostalCode:  a.PostalCode,
		Location:    location,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
		Fmt: AddressFmt{
			Type:      label(addressTypeLabels, a.Type),
			CreatedAt: utils.FormatDate(a.CreatedAt, lc.Lang, lc.Location),
			UpdatedAt: utils.FormatDate(a.UpdatedAt, lc.Lang, lc.Location),
		},
	}, nil
}

// ParseAddresses maps a collection preserving query order.
func ParseAddresses(addresses []models.UserAddress, lc *Locale) ([]AddressView, error) {
	views := make([]AddressView, 0, len(addresses))
	for _, a := range addresses {
		view, err := ParseAddress(a, lc)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}
