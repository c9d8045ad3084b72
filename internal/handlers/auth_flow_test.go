package handlers_test

import (
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/example/qurbanku/internal/models"
	"github.com/example/qurbanku/internal/utils"
)

func TestRegisterDuplicatePhone(t *testing.T) {
	app, _, _ := newTestApp(t)

	registerUser(t, app, "081234567890")

	status, body := doJSON(t, app, "POST", "/api/auth/register", "", fiber.Map{
		"name":         "Siti",
		"phone_number": "0812-3456-7890", // same number, different formatting
		"pin":          "654321",
	})
	if status != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %+v", status, body)
	}
	if body["message"] != "Phone number already registered" {
		t.Errorf("message = %q", body["message"])
	}
}

func TestVerifyOtpWrongCodeLeavesCodeUnused(t *testing.T) {
	app, db, cfg := newTestApp(t)

	key := registerUser(t, app, "081234567890")
	code := otpCodeFor(t, db, cfg, key)

	status, body := doJSON(t, app, "POST", "/api/auth/otp", "", fiber.Map{
		"key":  key,
		"code": wrongCode(code),
	})
	if status != fiber.StatusOK {
		t.Fatalf("wrong code should answer 200, got %d: %+v", status, body)
	}
	if body["success"] != false {
		t.Errorf("success = %v", body["success"])
	}
	if resultOf(t, body)["verified"] != false {
		t.Errorf("verified = %v", resultOf(t, body)["verified"])
	}

	var otp models.OtpCode
	if err := db.Where("key = ?", key).First(&otp).Error; err != nil {
		t.Fatal(err)
	}
	if otp.Status != models.OtpStatusUnused {
		t.Fatalf("a failed attempt must not consume the code, status = %q", otp.Status)
	}

	// The same code still verifies afterwards.
	status, body = doJSON(t, app, "POST", "/api/auth/otp", "", fiber.Map{
		"key":  key,
		"code": code,
	})
	if status != fiber.StatusOK || body["success"] != true {
		t.Fatalf("retry with the right code failed: %d %+v", status, body)
	}
}

func TestVerifyOtpUsedKeyRejected(t *testing.T) {
	app, db, cfg := newTestApp(t)

	key := registerUser(t, app, "081234567890")
	code := otpCodeFor(t, db, cfg, key)

	status, body := doJSON(t, app, "POST", "/api/auth/otp", "", fiber.Map{
		"key":  key,
		"code": code,
	})
	if status != fiber.StatusOK || body["success"] != true {
		t.Fatalf("first verify failed: %d %+v", status, body)
	}

	status, body = doJSON(t, app, "POST", "/api/auth/otp", "", fiber.Map{
		"key":  key,
		"code": code,
	})
	if status != fiber.StatusBadRequest {
		t.Fatalf("second verify should fail, got %d: %+v", status, body)
	}
	if body["message"] != "OTP code already used" {
		t.Errorf("message = %q", body["message"])
	}
}

func TestLoginVerifyMintsTokenAndVerifiesUser(t *testing.T) {
	app, db, cfg := newTestApp(t)

	// Register but never verify; the first successful login-verify also
	// sets verified_at.
	registerUser(t, app, "081234567890")

	status, body := doJSON(t, app, "POST", "/api/auth/login", "", fiber.Map{
		"phone_number": "081234567890",
		"pin":          "123456",
	})
	if status != fiber.StatusOK {
		t.Fatalf("login returned %d: %+v", status, body)
	}
	loginKey := resultOf(t, body)["key"].(string)
	code := otpCodeFor(t, db, cfg, loginKey)

	status, body = doJSON(t, app, "POST", "/api/auth/otp", "", fiber.Map{
		"key":  loginKey,
		"code": code,
	})
	if status != fiber.StatusOK || body["success"] != true {
		t.Fatalf("login verify failed: %d %+v", status, body)
	}

	result := resultOf(t, body)
	tokenObj, ok := result["token"].(map[string]interface{})
	if !ok {
		t.Fatalf("no token in result: %+v", result)
	}
	tokenKey, _ := tokenObj["key"].(string)
	secret, _ := tokenObj["secret"].(string)
	if tokenKey == "" || secret == "" {
		t.Fatalf("token incomplete: %+v", tokenObj)
	}

	var user models.User
	if err := db.Where("username = ?", "+6281234567890").First(&user).Error; err != nil {
		t.Fatal(err)
	}
	if user.VerifiedAt == nil {
		t.Error("login verify should set verified_at")
	}

	// Only a hash of the bearer is stored server-side.
	var token models.Token
	if err := db.Where("key = ?", tokenKey).First(&token).Error; err != nil {
		t.Fatal(err)
	}
	if token.Secret == secret {
		t.Error("token secret stored in plaintext")
	}
	if !utils.CheckCredential(token.Secret, secret) {
		t.Error("stored hash does not match the revealed secret")
	}

	// The revealed secret works as a bearer credential.
	status, body = doJSON(t, app, "GET", "/api/me", secret, nil)
	if status != fiber.StatusOK {
		t.Fatalf("bearer rejected: %d %+v", status, body)
	}
	if resultOf(t, body)["phone_number"] != "+6281234567890" {
		t.Errorf("unexpected profile: %+v", resultOf(t, body))
	}
}
