package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/qurbanku/internal/config"
	"github.com/example/qurbanku/internal/models"
	"github.com/example/qurbanku/internal/utils"
)

const (
	userContextKey  = "currentUser"
	tokenContextKey = "currentToken"
)

// AuthMiddleware validates bearer credentials against their stored
// token record. The JWT signature alone is not enough: the presented
// string must also match the record's one-way hash, and the record
// must be active and unexpired.
func AuthMiddleware(db *gorm.DB, cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing authorization header")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid authorization header")
		}
		bearer := parts[1]

		key, err := utils.ParseToken(cfg.JWTSecret, bearer)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
		}

		var token models.Token
		if err := db.Where("key = ?", key).First(&token).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fiber.NewError(fiber.StatusNotFound, "token not found")
			}
			return err
		}

		if !utils.CheckCredential(token.Secret, bearer) {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
		}

		if token.Expired() || token.Status != models.TokenStatusActive {
			return fiber.NewError(fiber.StatusUnauthorized, "token expired or inactive")
		}

		var user models.User
		if err := db.Preload("Accounts").First(&user, "id = ?", token.UserID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fiber.NewError(fiber.StatusNotFound, "user not found")
			}
			return err
		}

		c.Locals(userContextKey, user)
		c.Locals(tokenContextKey, token)
		return c.Next()
	}
}

// InternalOnly restricts a route to dashboard (internal) users. Must
// run after AuthMiddleware.
func InternalOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := GetCurrentUser(c)
		if !ok || user.Type != models.UserTypeInternal {
			return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
		}
		return c.Next()
	}
}

// GetCurrentUser extracts the authenticated user from context.
func GetCurrentUser(c *fiber.Ctx) (models.User, bool) {
	if user, ok := c.Locals(userContextKey).(models.User); ok {
		return user, true
	}
	return models.User{}, false
}

// GetCurrentToken extracts the presented token record from context.
func GetCurrentToken(c *fiber.Ctx) (models.Token, bool) {
	if token, ok := c.Locals(tokenContextKey).(models.Token); ok {
		return token, true
	}
	return models.Token{}, false
}
