package parsers

import (
	"time"

	"github.com/google/uuid"

	"github.com/example/qurbanku/internal/models"
	"github.com/example/qurbanku/internal/utils"
)

// CatalogFmt is shared by the flat catalog dimensions.
type CatalogFmt struct {
	Status    string `json:"status,omitempty"`
	Type      string `json:"type,omitempty"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type CategoryView struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	Description string     `json:"description"`
	Image       string     `json:"image"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Fmt         CatalogFmt `json:"fmt"`
}

func ParseCategory(c models.Category, lc *Locale) CategoryView {
	return CategoryView{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		Image:       c.Image,
		Status:      c.Status,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
		Fmt: CatalogFmt{
			Status:    label(productStatusLabels, c.Status),
			CreatedAt: utils.FormatDate(c.CreatedAt, lc.Lang, lc.Location),
			UpdatedAt: utils.FormatDate(c.UpdatedAt, lc.Lang, lc.Location),
		},
	}
}

type ServiceView struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	Type        string     `json:"type"`
	Description string     `json:"description"`
	Image       string     `json:"image"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Fmt         CatalogFmt `json:"fmt"`
}

func ParseService(s models.Service, lc *Locale) ServiceView {
	return ServiceView{
		ID:          s.ID,
		Name:        s.Name,
		Slug:        s.Slug,
		Type:        s.Type,
		Description: s.Description,
		Image:       s.Image,
		Status:      s.Status,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
		Fmt: CatalogFmt{
			Status:    label(productStatusLabels, s.Status),
			Type:      label(serviceTypeLabels, s.Type),
			CreatedAt: utils.FormatDate(s.CreatedAt, lc.Lang, lc.Location),
			UpdatedAt: utils.FormatDate(s.UpdatedAt, lc.Lang, lc.Location),
		},
	}
}

type WarehouseView struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	AddressLine  string     `json:"address_line"`
	City         string     `json:"city"`
	District     string     `json:"district"`
	ContactName  string     `json:"contact_name"`
	ContactPhone string     `json:"contact_phone"`
	Status       string     `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	Fmt          CatalogFmt `json:"fmt"`
}

func ParseWarehouse(w models.Warehouse, lc *Locale) WarehouseView {
	return WarehouseView{
		ID:           w.ID,
		Name:         w.Name,
		AddressLine:  w.AddressLine,
		City:         w.City,
		District:     w.District,
		ContactName:  w.ContactName,
		ContactPhone: w.ContactPhone,
		Status:       w.Status,
		CreatedAt:    w.CreatedAt,
		UpdatedAt:    w.UpdatedAt,
		Fmt: CatalogFmt{
			Status:    label(productStatusLabels, w.Status),
			CreatedAt: utils.FormatDate(w.CreatedAt, lc.Lang, lc.Location),
			UpdatedAt: utils.FormatDate(w.UpdatedAt, lc.Lang, lc.Location),
		},
	}
}
