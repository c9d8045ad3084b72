package parsers

import (
	"time"

	"github.com/google/uuid"

	"github.com/example/qurbanku/internal/models"
	"github.com/example/qurbanku/internal/utils"
)

type OrderFmt struct {
	Status    string `json:"status"`
	Amount    string `json:"amount"`
	PlacedAt  string `json:"placed_at"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type OrderView struct {
	ID                  uuid.UUID       `json:"id"`
	UserID              uuid.UUID       `json:"user_id"`
	OrderNumber         string          `json:"order_number"`
	Status              string          `json:"status"`
	OnBehalfOf          string          `json:"on_behalf_of"`
	Notes               string          `json:"notes"`
	PlacedAt            time.Time       `json:"placed_at"`
	DeliveryAddressLine string          `json:"delivery_address_line"`
	DeliveryCity        string          `json:"delivery_city"`
	DeliveryDistrict    string          `json:"delivery_district"`
	Amount              float64         `json:"amount"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
	Fmt                 OrderFmt        `json:"fmt"`
	Items               []OrderItemView `json:"items,omitempty"`
}

type OrderItemFmt struct {
	UnitPrice string `json:"unit_price"`
	LineTotal string `json:"line_total"`
}

type OrderItemView struct {
	ID          uuid.UUID    `json:"id"`
	ProductName string       `json:"product_name"`
	VariantName string       `json:"variant_name"`
	Quantity    int          `json:"quantity"`
	UnitPrice   float64      `json:"unit_price"`
	LineTotal   float64      `json:"line_total"`
	Fmt         OrderItemFmt `json:"fmt"`
}

// ParseOrder converts an order row without items.
func ParseOrder(o models.Order, lc *Locale) OrderView {
	return OrderView{
		ID:                  o.ID,
		UserID:              o.UserID,
		OrderNumber:         o.OrderNumber,
		Status:              o.Status,
		OnBehalfOf:          o.OnBehalfOf,
		Notes:               o.Notes,
		PlacedAt:            o.PlacedAt,
		DeliveryAddressLine: o.DeliveryAddressLine,
		DeliveryCity:        o.DeliveryCity,
		DeliveryDistrict:    o.DeliveryDistrict,
		Amount:              o.Amount,
		CreatedAt:           o.CreatedAt,
		UpdatedAt:           o.UpdatedAt,
		Fmt: OrderFmt{
			Status:    label(orderStatusLabels, o.Status),
			Amount:    utils.FormatCurrency(o.Amount, lc.Lang),
			PlacedAt:  utils.FormatDate(o.PlacedAt, lc.Lang, lc.Location),
			CreatedAt: utils.FormatDate(o.CreatedAt, lc.Lang, lc.Location),
			UpdatedAt: utils.FormatDate(o.UpdatedAt, lc.Lang, lc.Location),
		},
	}
}

// SerializeOrder parses an order and attaches its parsed items in
// query order.
func SerializeOrder(o models.Order, lc *Locale) OrderView {
	view := ParseOrder(o, lc)
	for _, item := range o.Items {
		view.Items = append(view.Items, OrderItemView{
			ID:          item.ID,
			ProductName: item.ProductName,
			VariantName: item.VariantName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			LineTotal:   item.LineTotal,
			Fmt: OrderItemFmt{
				UnitPrice: utils.FormatCurrency(item.UnitPrice, lc.Lang),
				LineTotal: utils.FormatCurrency(item.LineTotal, lc.Lang),
			},
		})
	}
	return view
}

// SerializeOrders maps a collection preserving query order.
func SerializeOrders(orders []models.Order, lc *Locale) []OrderView {
	views := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, SerializeOrder(o, lc))
	}
	return views
}
