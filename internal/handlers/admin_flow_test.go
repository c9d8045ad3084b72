package handlers_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/example/qurbanku/internal/models"
)

func TestListAllOrdersPaginated(t *testing.T) {
	app, db, cfg := newTestApp(t)
	admin := seedUser(t, db, "+6281100000001", models.UserTypeInternal)
	adminBearer := seedBearer(t, db, cfg, admin)
	customer := seedUser(t, db, "+6281100000002", models.UserTypeExternal)

	for i := 0; i < 3; i++ {
		order := models.Order{
			UserID:      customer.ID,
			OrderNumber: fmt.Sprintf("QRB-20250101-TEST000%d", i),
			Status:      models.OrderStatusPending,
			PlacedAt:    time.Now().Add(time.Duration(-i) * time.Hour),
			Amount:      1000000,
		}
		if err := db.Create(&order).Error; err != nil {
			t.Fatal(err)
		}
	}

	status, body := doJSON(t, app, "GET", "/api/admin/orders?page=1&limit=2", adminBearer, nil)
	if status != fiber.StatusOK {
		t.Fatalf("list returned %d: %+v", status, body)
	}

	result := resultOf(t, body)
	items, ok := result["items"].([]interface{})
	if !ok || len(items) != 2 {
		t.Fatalf("expected 2 items, got %+v", result["items"])
	}

	// Rows come back serialized, not as raw models.
	first := items[0].(map[string]interface{})
	fmtBlock, ok := first["fmt"].(map[string]interface{})
	if !ok || fmtBlock["amount"] != "Rp1.000.000" {
		t.Errorf("expected fmt block on serialized order, got %+v", first)
	}

	pagination := result["pagination"].(map[string]interface{})
	if pagination["count"] != float64(3) || pagination["page_count"] != float64(2) {
		t.Errorf("pagination = %+v", pagination)
	}
}

func TestListAllOrdersInternalOnly(t *testing.T) {
	app, db, cfg := newTestApp(t)
	customer := seedUser(t, db, "+6281100000002", models.UserTypeExternal)
	bearer := seedBearer(t, db, cfg, customer)

	status, body := doJSON(t, app, "GET", "/api/admin/orders", bearer, nil)
	if status != fiber.StatusUnauthorized {
		t.Fatalf("external user should be rejected, got %d: %+v", status, body)
	}
}
