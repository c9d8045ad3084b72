package parsers

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/example/qurbanku/internal/models"
)

func testLocale() *Locale {
	return NewLocale("id", time.FixedZone("WIB", 7*3600), false)
}

func baseAt(ts time.Time) models.BaseModel {
	return models.BaseModel{ID: uuid.New(), CreatedAt: ts, UpdatedAt: ts}
}

func TestParseProduct(t *testing.T) {
	ts := time.Date(2025, time.June, 7, 2, 5, 3, 0, time.UTC)
	p := models.Product{
		BaseModel:  baseAt(ts),
		Slug:       "kambing-premium",
		Name:       "Kambing Premium",
		Status:     models.ProductStatusActive,
		Attributes: `[{"name":"Berat","value":"25 kg"}]`,
	}

	view, err := ParseProduct(p, testLocale())
	if err != nil {
		t.Fatal(err)
	}

	if view.Fmt.Status != "Aktif" {
		t.Errorf("status label = %q", view.Fmt.Status)
	}
	if view.Fmt.CreatedAt != "07 Juni 2025 09:05:03" {
		t.Errorf("created_at fmt = %q", view.Fmt.CreatedAt)
	}
	if len(view.Attributes) != 1 || view.Attributes[0].Name != "Berat" {
		t.Errorf("attributes = %+v", view.Attributes)
	}
	if view.Images == nil {
		t.Error("nil images should serialize as an empty array")
	}
}

func TestParseProductMalformedAttributes(t *testing.T) {
	p := models.Product{
		BaseModel:  baseAt(time.Now()),
		Attributes: "{not json",
	}

	view, err := ParseProduct(p, testLocale())
	if err != nil {
		t.Fatal(err)
	}
	if len(view.Attributes) != 0 {
		t.Errorf("expected empty fallback, got %+v", view.Attributes)
	}

	strict := NewLocale("id", nil, true)
	if _, err := ParseProduct(p, strict); err == nil {
		t.Error("strict mode should reject malformed attributes")
	}
}

func TestSerializeVariantDiscountHead(t *testing.T) {
	newer := models.Discount{
		BaseModel: baseAt(time.Now()),
		Type:      models.DiscountTypePercentage,
		Value:     10,
	}
	older := models.Discount{
		BaseModel: baseAt(time.Now()),
		Type:      models.DiscountTypeFixed,
		Value:     50000,
	}

	v := models.ProductVariant{
		BaseModel: baseAt(time.Now()),
		SKU:       "KBG-01",
		Price:     2500000,
		Stock:     4,
		Status:    models.ProductStatusActive,
		// Preloaded ordered id desc: the newest row comes first.
		Discounts: []models.Discount{newer, older},
	}

	view, err := SerializeVariant(v, testLocale())
	if err != nil {
		t.Fatal(err)
	}

	if view.Discount == nil {
		t.Fatal("expected winning discount")
	}
	if view.Discount.ID != newer.ID {
		t.Error("head of the discount list should win")
	}
	if view.Discount.Fmt.Value != "10%" {
		t.Errorf("percentage fmt = %q", view.Discount.Fmt.Value)
	}
	if view.Fmt.Price != "Rp2.500.000" {
		t.Errorf("price fmt = %q", view.Fmt.Price)
	}
}

func TestSerializeVariantNoDiscount(t *testing.T) {
	v := models.ProductVariant{BaseModel: baseAt(time.Now())}

	view, err := SerializeVariant(v, testLocale())
	if err != nil {
		t.Fatal(err)
	}
	if view.Discount != nil {
		t.Error("expected null discount")
	}
	if view.Attributes == nil {
		t.Error("attributes should be an empty array, not null")
	}
}

func TestParseDiscountFixed(t *testing.T) {
	started := time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)
	d := models.Discount{
		BaseModel: baseAt(time.Now()),
		Type:      models.DiscountTypeFixed,
		Value:     150000,
		StartedAt: &started,
		Rule:      `{"min_qty":2}`,
	}

	view, err := ParseDiscount(d, testLocale())
	if err != nil {
		t.Fatal(err)
	}

	if view.Fmt.Value != "Rp150.000" {
		t.Errorf("fixed fmt = %q", view.Fmt.Value)
	}
	if view.Fmt.Type != "Nominal" {
		t.Errorf("type label = %q", view.Fmt.Type)
	}
	if view.Fmt.StartedAt == "" {
		t.Error("started_at fmt should be set")
	}
	if view.Fmt.EndedAt != "" {
		t.Error("ended_at fmt should stay empty for open-ended discounts")
	}
	if view.Rule["min_qty"] != float64(2) {
		t.Errorf("rule = %+v", view.Rule)
	}
}

func TestSerializeProductsPreservesOrder(t *testing.T) {
	products := []models.Product{
		{BaseModel: baseAt(time.Now()), Slug: "first"},
		{BaseModel: baseAt(time.Now()), Slug: "second"},
	}

	views, err := SerializeProducts(products, testLocale())
	if err != nil {
		t.Fatal(err)
	}
	if len(views) != 2 || views[0].Slug != "first" || views[1].Slug != "second" {
		t.Errorf("order not preserved: %+v", views)
	}
}

func TestSerializeProductsEmpty(t *testing.T) {
	views, err := SerializeProducts(nil, testLocale())
	if err != nil {
		t.Fatal(err)
	}
	if views == nil || len(views) != 0 {
		t.Error("expected empty non-nil slice")
	}
}
