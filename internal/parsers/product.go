package parsers

import (
	"time"

	"github.com/google/uuid"

	"github.com/example/qurbanku/internal/models"
	"github.com/example/qurbanku/internal/utils"
)

// AttributeItem is the expected element shape of the product
// attributes column.
type AttributeItem struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type ProductFmt struct {
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type ProductView struct {
	ID          uuid.UUID       `json:"id"`
	Slug        string          `json:"slug"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Image       string          `json:"image"`
	Images      []string        `json:"images"`
	Attributes  []AttributeItem `json:"attributes"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	Fmt         ProductFmt      `json:"fmt"`

	Categories []CategoryView  `json:"categories,omitempty"`
	Services   []ServiceView   `json:"services,omitempty"`
	Warehouses []WarehouseView `json:"warehouses,omitempty"`
	Variants   []VariantView   `json:"variants,omitempty"`
}

type VariantFmt struct {
	Status    string `json:"status"`
	Price     string `json:"price"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type VariantView struct {
	ID         uuid.UUID       `json:"id"`
	ProductID  uuid.UUID       `json:"product_id"`
	SKU        string          `json:"sku"`
	Name       string          `json:"name"`
	Price      float64         `json:"price"`
	Stock      int             `json:"stock"`
	Status     string          `json:"status"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
	Fmt        VariantFmt      `json:"fmt"`
	Discount   *DiscountView   `json:"discount"`
	Attributes []AttributeView `json:"attributes"`
}

type DiscountFmt struct {
	Type      string `json:"type"`
	Value     string `json:"value"`
	StartedAt string `json:"started_at"`
	EndedAt   string `json:"ended_at"`
}

type DiscountView struct {
	ID        uuid.UUID              `json:"id"`
	Type      string                 `json:"type"`
	Value     float64                `json:"value"`
	StartedAt *time.Time             `json:"started_at"`
	EndedAt   *time.Time             `json:"ended_at"`
	Rule      map[string]interface{} `json:"rule"`
	Fmt       DiscountFmt            `json:"fmt"`
}

type AttributeView struct {
	ID    uuid.UUID              `json:"id"`
	Name  string                 `json:"name"`
	Value string                 `json:"value"`
	Rule  map[string]interface{} `json:"rule"`
}

// ParseProduct converts a product row without relations.
func ParseProduct(p models.Product, lc *Locale) (ProductView, error) {
	attributes, err := decodeJSON(p.Attributes, []AttributeItem{}, lc)
	if err != nil {
		return ProductView{}, err
	}

	images := p.Images
	if images == nil {
		images = []string{}
	}

	return ProductView{
		ID:          p.ID,
		Slug:        p.Slug,
		Name:        p.Name,
		Description: p.Description,
		Image:       p.Image,
		Images:      images,
		Attributes:  attributes,
		Status:      p.Status,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
		Fmt: ProductFmt{
			Status:    label(productStatusLabels, p.Status),
			CreatedAt: utils.FormatDate(p.CreatedAt, lc.Lang, lc.Location),
			UpdatedAt: utils.FormatDate(p.UpdatedAt, lc.Lang, lc.Location),
		},
	}, nil
}

// SerializeProduct parses a product and every included relation,
// preserving the ordering the query declared. Variant discounts must
// arrive ordered id desc; the head is the one that wins.
func SerializeProduct(p models.Product, lc *Locale) (ProductView, error) {
	view, err := ParseProduct(p, lc)
	if err != nil {
		return ProductView{}, err
	}

	for _, c := range p.Categories {
		view.Categories = append(view.Categories, ParseCategory(c, lc))
	}
	for _, s := range p.Services {
		view.Services = append(view.Services, ParseService(s, lc))
	}
	for _, w := range p.Warehouses {
		view.Warehouses = append(view.Warehouses, ParseWarehouse(w, lc))
	}
	for _, v := range p.Variants {
		variant, err := SerializeVariant(v, lc)
		if err != nil {
			return ProductView{}, err
		}
		view.Variants = append(view.Variants, variant)
	}

	return view, nil
}

// SerializeVariant parses a variant with its winning discount and
// attribute list.
func SerializeVariant(v models.ProductVariant, lc *Locale) (VariantView, error) {
	view := VariantView{
		ID:        v.ID,
		ProductID: v.ProductID,
		SKU:       v.SKU,
		Name:      v.Name,
		Price:     v.Price,
		Stock:     v.Stock,
		Status:    v.Status,
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
		Fmt: VariantFmt{
			Status:    label(productStatusLabels, v.Status),
			Price:     utils.FormatCurrency(v.Price, lc.Lang),
			CreatedAt: utils.FormatDate(v.CreatedAt, lc.Lang, lc.Location),
			UpdatedAt: utils.FormatDate(v.UpdatedAt, lc.Lang, lc.Location),
		},
		Attributes: []AttributeView{},
	}

	if len(v.Discounts) > 0 {
		discount, err := ParseDiscount(v.Discounts[0], lc)
		if err != nil {
			return VariantView{}, err
		}
		view.Discount = &discount
	}

	for _, a := range v.Attributes {
		attribute, err := ParseVariantAttribute(a, lc)
		if err != nil {
			return VariantView{}, err
		}
		view.Attributes = append(view.Attributes, attribute)
	}

	return view, nil
}

// ParseDiscount converts a discount row. Percentage discounts format
// their value as "N%", fixed discounts as currency.
func ParseDiscount(d models.Discount, lc *Locale) (DiscountView, error) {
	rule, err := decodeJSON(d.Rule, map[string]interface{}{}, lc)
	if err != nil {
		return DiscountView{}, err
	}

	value := utils.FormatCurrency(d.Value, lc.Lang)
	if d.Type == models.DiscountTypePercentage {
		value = utils.FormatPercentage(d.Value)
	}

	view := DiscountView{
		ID:        d.ID,
		Type:      d.Type,
		Value:     d.Value,
		StartedAt: d.StartedAt,
		EndedAt:   d.EndedAt,
		Rule:      rule,
		Fmt: DiscountFmt{
			Type:  label(discountTypeLabels, d.Type),
			Value: value,
		},
	}

	if d.StartedAt != nil {
		view.Fmt.StartedAt = utils.FormatDate(*d.StartedAt, lc.Lang, lc.Location)
	}
	if d.EndedAt != nil {
		view.Fmt.EndedAt = utils.FormatDate(*d.EndedAt, lc.Lang, lc.Location)
	}

	return view, nil
}

// ParseVariantAttribute converts a variant attribute row.
func ParseVariantAttribute(a models.VariantAttribute, lc *Locale) (AttributeView, error) {
	rule, err := decodeJSON(a.Rule, map[string]interface{}{}, lc)
	if err != nil {
		return AttributeView{}, err
	}

	return AttributeView{
		ID:    a.ID,
		Name:  a.Name,
		Value: a.Value,
		Rule:  rule,
	}, nil
}

// SerializeProducts maps a collection preserving query order.
func SerializeProducts(products []models.Product, lc *Locale) ([]ProductView, error) {
	views := make([]ProductView, 0, len(products))
	for _, p := range products {
		view, err := SerializeProduct(p, lc)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}
