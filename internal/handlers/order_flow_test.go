package handlers_test

import (
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/example/qurbanku/internal/models"
)

func TestCreateOrderReservesStock(t *testing.T) {
	app, db, cfg := newTestApp(t)
	user := seedUser(t, db, "+6281234567890", models.UserTypeExternal)
	bearer := seedBearer(t, db, cfg, user)

	product := models.Product{Slug: "kambing-premium", Name: "Kambing Premium", Status: models.ProductStatusActive}
	if err := db.Create(&product).Error; err != nil {
		t.Fatal(err)
	}
	variant := models.ProductVariant{
		ProductID: product.ID,
		Name:      "25 kg",
		Price:     2500000,
		Stock:     2,
		Status:    models.ProductStatusActive,
	}
	if err := db.Create(&variant).Error; err != nil {
		t.Fatal(err)
	}

	status, body := doJSON(t, app, "POST", "/api/orders", bearer, fiber.Map{
		"on_behalf_of": "Keluarga Budi",
		"items": []fiber.Map{
			{"product_variant_id": variant.ID.String(), "quantity": 2},
		},
	})
	if status != fiber.StatusCreated {
		t.Fatalf("order returned %d: %+v", status, body)
	}
	if resultOf(t, body)["amount"] != float64(5000000) {
		t.Errorf("amount = %v", resultOf(t, body)["amount"])
	}

	var reloaded models.ProductVariant
	if err := db.First(&reloaded, "id = ?", variant.ID).Error; err != nil {
		t.Fatal(err)
	}
	if reloaded.Stock != 0 {
		t.Errorf("stock should be reserved at placement, got %d", reloaded.Stock)
	}

	// The next order cannot take what the first one reserved.
	status, body = doJSON(t, app, "POST", "/api/orders", bearer, fiber.Map{
		"on_behalf_of": "Keluarga Siti",
		"items": []fiber.Map{
			{"product_variant_id": variant.ID.String(), "quantity": 1},
		},
	})
	if status != fiber.StatusBadRequest {
		t.Fatalf("oversell should fail, got %d: %+v", status, body)
	}
	if body["message"] != "Insufficient stock" {
		t.Errorf("message = %q", body["message"])
	}

	var orders int64
	if err := db.Model(&models.Order{}).Where("user_id = ?", user.ID).Count(&orders).Error; err != nil {
		t.Fatal(err)
	}
	if orders != 1 {
		t.Errorf("failed order must not persist, count = %d", orders)
	}
}
