package handlers_test

import (
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/example/qurbanku/internal/models"
)

func addressPayload(label, addrType string) fiber.Map {
	return fiber.Map{
		"type":         addrType,
		"label":        label,
		"recipient":    "Budi",
		"address_line": "Jl. Merdeka No. 1",
		"city":         "Jakarta",
	}
}

func TestFirstAddressForcedMain(t *testing.T) {
	app, db, cfg := newTestApp(t)
	user := seedUser(t, db, "+6281234567890", models.UserTypeExternal)
	bearer := seedBearer(t, db, cfg, user)

	// Even an explicit "alternative" request becomes main when the
	// address book is empty.
	status, body := doJSON(t, app, "POST", "/api/me/addresses", bearer,
		addressPayload("Rumah", models.AddressTypeAlternative))
	if status != fiber.StatusCreated {
		t.Fatalf("create returned %d: %+v", status, body)
	}
	if resultOf(t, body)["type"] != models.AddressTypeMain {
		t.Errorf("first address type = %v, want main", resultOf(t, body)["type"])
	}
}

func TestMainAddressClaimDemotesSiblings(t *testing.T) {
	app, db, cfg := newTestApp(t)
	user := seedUser(t, db, "+6281234567890", models.UserTypeExternal)
	bearer := seedBearer(t, db, cfg, user)

	doJSON(t, app, "POST", "/api/me/addresses", bearer, addressPayload("Rumah", ""))
	status, body := doJSON(t, app, "POST", "/api/me/addresses", bearer,
		addressPayload("Kantor", models.AddressTypeMain))
	if status != fiber.StatusCreated {
		t.Fatalf("create returned %d: %+v", status, body)
	}

	var mains int64
	if err := db.Model(&models.UserAddress{}).
		Where("user_id = ? AND type = ?", user.ID, models.AddressTypeMain).
		Count(&mains).Error; err != nil {
		t.Fatal(err)
	}
	if mains != 1 {
		t.Fatalf("expected exactly one main address, got %d", mains)
	}

	// The listing puts the main address first.
	status, body = doJSON(t, app, "GET", "/api/me/addresses", bearer, nil)
	if status != fiber.StatusOK {
		t.Fatalf("list returned %d: %+v", status, body)
	}
	items, ok := body["result"].([]interface{})
	if !ok || len(items) != 2 {
		t.Fatalf("expected 2 addresses, got %+v", body["result"])
	}
	first := items[0].(map[string]interface{})
	if first["type"] != models.AddressTypeMain || first["label"] != "Kantor" {
		t.Errorf("main address should list first, got %+v", first)
	}
}

func TestUpdateAddressClaimMain(t *testing.T) {
	app, db, cfg := newTestApp(t)
	user := seedUser(t, db, "+6281234567890", models.UserTypeExternal)
	bearer := seedBearer(t, db, cfg, user)

	_, created := doJSON(t, app, "POST", "/api/me/addresses", bearer, addressPayload("Rumah", ""))
	doJSON(t, app, "POST", "/api/me/addresses", bearer, addressPayload("Kantor", models.AddressTypeAlternative))

	var alt models.UserAddress
	if err := db.Where("user_id = ? AND label = ?", user.ID, "Kantor").First(&alt).Error; err != nil {
		t.Fatal(err)
	}

	status, body := doJSON(t, app, "PUT", "/api/me/addresses/"+alt.ID.String(), bearer,
		addressPayload("Kantor", models.AddressTypeMain))
	if status != fiber.StatusOK {
		t.Fatalf("update returned %d: %+v", status, body)
	}
	if resultOf(t, body)["type"] != models.AddressTypeMain {
		t.Errorf("updated type = %v", resultOf(t, body)["type"])
	}

	var former models.UserAddress
	if err := db.Where("id = ?", resultOf(t, created)["id"]).First(&former).Error; err != nil {
		t.Fatal(err)
	}
	if former.Type != models.AddressTypeAlternative {
		t.Errorf("previous main should be demoted, got %q", former.Type)
	}
}

func TestDeleteMainAddressRefused(t *testing.T) {
	app, db, cfg := newTestApp(t)
	user := seedUser(t, db, "+6281234567890", models.UserTypeExternal)
	bearer := seedBearer(t, db, cfg, user)

	_, created := doJSON(t, app, "POST", "/api/me/addresses", bearer, addressPayload("Rumah", ""))
	mainID := resultOf(t, created)["id"].(string)
	doJSON(t, app, "POST", "/api/me/addresses", bearer, addressPayload("Kantor", models.AddressTypeAlternative))

	status, body := doJSON(t, app, "DELETE", "/api/me/addresses/"+mainID, bearer, nil)
	if status != fiber.StatusBadRequest {
		t.Fatalf("deleting main should fail, got %d: %+v", status, body)
	}
	if body["message"] != "Main address cannot be deleted" {
		t.Errorf("message = %q", body["message"])
	}

	var alt models.UserAddress
	if err := db.Where("user_id = ? AND label = ?", user.ID, "Kantor").First(&alt).Error; err != nil {
		t.Fatal(err)
	}
	status, body = doJSON(t, app, "DELETE", "/api/me/addresses/"+alt.ID.String(), bearer, nil)
	if status != fiber.StatusOK {
		t.Fatalf("deleting alternative should succeed, got %d: %+v", status, body)
	}
}
