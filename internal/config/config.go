package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration values.
type Config struct {
	AppEnv           string
	AppPort          string
	AppLocale        string
	AppTimezone      string
	Location         *time.Location
	DatabaseURL      string
	JWTSecret        string
	EncryptionSecret string
	ParseStrict      bool

	TokenExpires time.Duration
	OtpExpires   time.Duration

	WhatsAppToken       string
	WhatsAppBaseURL     string
	WhatsAppVersion     string
	WhatsAppPhoneID     string
	WhatsAppOtpTemplate string
	WhatsAppAdminPhone  string

	GCSBucket          string
	GCSCredentialsFile string
}

// Load reads environment variables and returns a populated Config.
// Missing required values abort startup.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:           getEnv("APP_ENV", "development"),
		AppPort:          getEnv("APP_PORT", "8080"),
		AppLocale:        getEnv("APP_LOCALE", "id"),
		AppTimezone:      getEnv("APP_TIMEZONE", "Asia/Jakarta"),
		DatabaseURL:      getEnv("DATABASE_URL", ""),
		JWTSecret:        getEnv("JWT_SECRET", ""),
		EncryptionSecret: getEnv("ENCRYPTION_SECRET", ""),
		ParseStrict:      getEnv("PARSE_STRICT", "false") == "true",

		TokenExpires: 30 * 24 * time.Hour,
		OtpExpires:   30 * time.Minute,

		WhatsAppToken:       getEnv("WHATSAPP_TOKEN", ""),
		WhatsAppBaseURL:     getEnv("WHATSAPP_BASE_URL", "https://graph.facebook.com"),
		WhatsAppVersion:     getEnv("WHATSAPP_VERSION", "v18.0"),
		WhatsAppPhoneID:     getEnv("WHATSAPP_PHONE_ID", ""),
		WhatsAppOtpTemplate: getEnv("WHATSAPP_TEMPLATE_OTP", "otp_code"),
		WhatsAppAdminPhone:  getEnv("WHATSAPP_ADMIN_PHONE", ""),

		GCSBucket:          getEnv("GCS_BUCKET", ""),
		GCSCredentialsFile: getEnv("GCS_CREDENTIALS_FILE", ""),
	}

	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL must be set")
	}

	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	if cfg.EncryptionSecret == "" {
		log.Fatal("ENCRYPTION_SECRET must be set")
	}

	loc, err := time.LoadLocation(cfg.AppTimezone)
	if err != nil {
		log.Fatalf("invalid APP_TIMEZONE %q: %v", cfg.AppTimezone, err)
	}
	cfg.Location = loc

	return cfg
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
