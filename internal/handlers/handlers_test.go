package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/example/qurbanku/internal/config"
	"github.com/example/qurbanku/internal/models"
	"github.com/example/qurbanku/internal/routes"
	"github.com/example/qurbanku/internal/utils"
)

// newTestApp wires the full route table against an in-memory sqlite
// database, one per test.
func newTestApp(t *testing.T) (*fiber.App, *gorm.DB, *config.Config) {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := db.AutoMigrate(
		&models.User{}, &models.Account{}, &models.Token{}, &models.OtpCode{},
		&models.PasswordResetSession{}, &models.UserAddress{},
		&models.Category{}, &models.Service{}, &models.Warehouse{},
		&models.Product{}, &models.ProductVariant{}, &models.Discount{},
		&models.VariantAttribute{}, &models.Order{}, &models.OrderItem{},
		&models.Banner{},
	); err != nil {
		t.Fatal(err)
	}

	cfg := &config.Config{
		AppEnv:           "test",
		AppLocale:        "id",
		JWTSecret:        "test-jwt-secret",
		EncryptionSecret: "test-encryption-secret",
		TokenExpires:     time.Hour,
		OtpExpires:       30 * time.Minute,
	}

	log := logrus.New()
	log.SetOutput(io.Discard)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			message := "internal server error"
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				code = fiberErr.Code
				message = fiberErr.Message
			}
			return c.Status(code).JSON(fiber.Map{
				"success": false,
				"message": message,
				"result":  nil,
			})
		},
	})
	routes.Register(app, db, cfg, nil, log)

	return app, db, cfg
}

// doJSON performs a request against the app and decodes the envelope.
func doJSON(t *testing.T, app *fiber.App, method, target, bearer string, payload interface{}) (int, map[string]interface{}) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatal(err)
		}
		body = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var decoded map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil && err != io.EOF {
		t.Fatalf("decode response body: %v", err)
	}
	return resp.StatusCode, decoded
}

func resultOf(t *testing.T, body map[string]interface{}) map[string]interface{} {
	t.Helper()
	result, ok := body["result"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected object result, got %+v", body["result"])
	}
	return result
}

// registerUser runs the register endpoint and returns the OTP key.
func registerUser(t *testing.T, app *fiber.App, phone string) string {
	t.Helper()

	status, body := doJSON(t, app, "POST", "/api/auth/register", "", fiber.Map{
		"name":         "Budi",
		"phone_number": phone,
		"pin":          "123456",
	})
	if status != fiber.StatusCreated {
		t.Fatalf("register returned %d: %+v", status, body)
	}
	key, ok := resultOf(t, body)["key"].(string)
	if !ok || key == "" {
		t.Fatalf("register returned no otp key: %+v", body)
	}
	return key
}

// otpCodeFor reads the stored OTP row and decrypts its code, the way
// the delivery channel would have revealed it to the user.
func otpCodeFor(t *testing.T, db *gorm.DB, cfg *config.Config, key string) string {
	t.Helper()

	var otp models.OtpCode
	if err := db.Where("key = ?", key).First(&otp).Error; err != nil {
		t.Fatalf("load otp %q: %v", key, err)
	}
	code, err := utils.DecryptCode(cfg.EncryptionSecret, otp.Secret)
	if err != nil {
		t.Fatalf("decrypt otp secret: %v", err)
	}
	return code
}

func wrongCode(code string) string {
	if code == "000000" {
		return "111111"
	}
	return "000000"
}

// seedUser inserts a verified active user directly, for tests that do
// not exercise the registration flow itself.
func seedUser(t *testing.T, db *gorm.DB, phone, userType string) models.User {
	t.Helper()

	hash, err := utils.HashPassword("123456")
	if err != nil {
		t.Fatal(err)
	}
	now := time.Now()
	user := models.User{
		Name:        "Budi",
		Username:    phone,
		PhoneNumber: phone,
		Password:    hash,
		Status:      models.UserStatusActive,
		Type:        userType,
		VerifiedAt:  &now,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatal(err)
	}
	return user
}

// seedBearer mints a bearer credential for a seeded user the same way
// a login-verify would.
func seedBearer(t *testing.T, db *gorm.DB, cfg *config.Config, user models.User) string {
	t.Helper()

	key, err := utils.GenerateKey()
	if err != nil {
		t.Fatal(err)
	}
	signed, err := utils.GenerateToken(cfg.JWTSecret, key, cfg.TokenExpires)
	if err != nil {
		t.Fatal(err)
	}
	secret, err := utils.HashCredential(signed)
	if err != nil {
		t.Fatal(err)
	}

	token := models.Token{
		UserID:    user.ID,
		Key:       key,
		Secret:    secret,
		Abilities: models.StringArray{},
		Status:    models.TokenStatusActive,
		ExpiredAt: time.Now().Add(cfg.TokenExpires),
	}
	if err := db.Create(&token).Error; err != nil {
		t.Fatal(err)
	}
	return signed
}
