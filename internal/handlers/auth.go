package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/example/qurbanku/internal/config"
	"github.com/example/qurbanku/internal/middleware"
	"github.com/example/qurbanku/internal/models"
	"github.com/example/qurbanku/internal/services"
	"github.com/example/qurbanku/internal/utils"
	"github.com/example/qurbanku/internal/validation"
)

// AuthHandler bundles dependencies for authentication endpoints.
type AuthHandler struct {
	db  *gorm.DB
	cfg *config.Config
	wa  *services.WhatsAppService
	log *logrus.Logger
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(db *gorm.DB, cfg *config.Config, wa *services.WhatsAppService, log *logrus.Logger) *AuthHandler {
	return &AuthHandler{db: db, cfg: cfg, wa: wa, log: log}
}

// issueOtp creates an OTP for the user and action, stores the code
// encrypted, and delivers it over WhatsApp. A delivery failure is
// logged but does not void the OTP.
func (h *AuthHandler) issueOtp(user models.User, action string) (string, error) {
	code, err := utils.GenerateOtpCode()
	if err != nil {
		return "", fiber.NewError(fiber.StatusInternalServerError, "failed to generate OTP code")
	}

	secret, err := utils.EncryptCode(h.cfg.EncryptionSecret, code)
	if err != nil {
		return "", fiber.NewError(fiber.StatusInternalServerError, "failed to secure OTP code")
	}

	key, err := utils.GenerateKey()
	if err != nil {
		return "", fiber.NewError(fiber.StatusInternalServerError, "failed to generate OTP key")
	}

	otp := models.OtpCode{
		UserID:    user.ID,
		Key:       key,
		Secret:    secret,
		Action:    action,
		Status:    models.OtpStatusUnused,
		ExpiredAt: time.Now().Add(h.cfg.OtpExpires),
	}

	if err := h.db.Create(&otp).Error; err != nil {
		return "", err
	}

	if err := h.wa.SendOTP(user.PhoneNumber, code, action); err != nil {
		h.log.WithFields(logrus.Fields{"user_id": user.ID, "action": action}).
			WithError(err).Error("otp delivery failed")
	}

	h.log.WithFields(logrus.Fields{"user_id": user.ID, "action": action, "otp_key": key}).
		Info("otp issued")

	return key, nil
}

type registerRequest struct {
	Name        string `json:"name" validate:"required"`
	PhoneNumber string `json:"phone_number" validate:"required"`
	Email       string `json:"email" validate:"omitempty,email"`
	Pin         string `json:"pin" validate:"required,len=6,numeric"`
}

// Register creates a new unverified user and sends a register OTP.
// Only the OTP's public key is returned, never the code.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := validation.Check(req); err != nil {
		return err
	}

	phone, err := validation.NormalizePhone(req.PhoneNumber)
	if err != nil {
		return err
	}

	var existing models.User
	if err := h.db.Where("username = ?", phone).First(&existing).Error; err == nil {
		return fiber.NewError(fiber.StatusBadRequest, "Phone number already registered")
	} else if err != gorm.ErrRecordNotFound {
		return err
	}

	passwordHash, err := utils.HashPassword(req.Pin)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to hash PIN")
	}

	user := models.User{
		Name:        req.Name,
		Username:    phone,
		PhoneNumber: phone,
		Email:       req.Email,
		Password:    passwordHash,
		Status:      models.UserStatusActive,
		Type:        models.UserTypeExternal,
	}

	if err := h.db.Create(&user).Error; err != nil {
		return err
	}

	account := models.Account{UserID: user.ID, Type: "customer"}
	if err := h.db.Create(&account).Error; err != nil {
		return err
	}

	key, err := h.issueOtp(user, models.OtpActionRegister)
	if err != nil {
		return err
	}

	h.log.WithFields(logrus.Fields{"user_id": user.ID, "username": user.Username}).
		Info("user registered")

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "OTP code sent",
		"result":  fiber.Map{"key": key},
	})
}

type loginRequest struct {
	PhoneNumber string `json:"phone_number" validate:"required"`
	Pin         string `json:"pin" validate:"required,len=6,numeric"`
}

// Login checks credentials and sends a login OTP. No session exists
// until the OTP verifies.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := validation.Check(req); err != nil {
		return err
	}

	phone, err := validation.NormalizePhone(req.PhoneNumber)
	if err != nil {
		return err
	}

	var user models.User
	if err := h.db.Where("username = ?", phone).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "User not found")
		}
		return err
	}

	if user.Status != models.UserStatusActive {
		return fiber.NewError(fiber.StatusBadRequest, "User is not active")
	}

	if !utils.CheckPassword(user.Password, req.Pin) {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid PIN")
	}

	key, err := h.issueOtp(user, models.OtpActionLogin)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "OTP code sent",
		"result":  fiber.Map{"key": key},
	})
}

type verifyOtpRequest struct {
	Key  string `json:"key" validate:"required"`
	Code string `json:"code" validate:"required,len=6,numeric"`
}

// VerifyOtp consumes an OTP and branches on its action: login mints a
// bearer token, forgot_password opens a reset session, register only
// marks the user verified. A wrong code leaves the OTP unused so the
// caller may retry until expiry.
func (h *AuthHandler) VerifyOtp(c *fiber.Ctx) error {
	var req verifyOtpRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := validation.Check(req); err != nil {
		return err
	}

	var otp models.OtpCode
	if err := h.db.Where("key = ?", req.Key).First(&otp).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "OTP code not found")
		}
		return err
	}

	if otp.Status == models.OtpStatusUsed {
		return fiber.NewError(fiber.StatusBadRequest, "OTP code already used")
	}
	if otp.Expired() {
		return fiber.NewError(fiber.StatusBadRequest, "OTP code expired")
	}

	var user models.User
	if err := h.db.First(&user, "id = ?", otp.UserID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "User not found")
		}
		return err
	}

	if otp.Action == models.OtpActionRegister && user.VerifiedAt != nil {
		return fiber.NewError(fiber.StatusBadRequest, "User already verified")
	}

	code, err := utils.DecryptCode(h.cfg.EncryptionSecret, otp.Secret)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to read OTP code")
	}

	if code != req.Code {
		return c.JSON(fiber.Map{
			"success": false,
			"message": "Invalid OTP code",
			"result":  fiber.Map{"verified": false},
		})
	}

	if err := h.db.Model(&otp).Update("status", models.OtpStatusUsed).Error; err != nil {
		return err
	}

	if otp.Action == models.OtpActionRegister ||
		(otp.Action == models.OtpActionLogin && user.VerifiedAt == nil) {
		now := time.Now()
		if err := h.db.Model(&user).Update("verified_at", now).Error; err != nil {
			return err
		}
	}

	h.log.WithFields(logrus.Fields{"user_id": user.ID, "action": otp.Action}).
		Info("otp verified")

	switch otp.Action {
	case models.OtpActionLogin:
		tokenKey, err := utils.GenerateKey()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to generate token key")
		}

		signed, err := utils.GenerateToken(h.cfg.JWTSecret, tokenKey, h.cfg.TokenExpires)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to generate token")
		}

		secret, err := utils.HashCredential(signed)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to secure token")
		}

		token := models.Token{
			UserID:    user.ID,
			Key:       tokenKey,
			Secret:    secret,
			Abilities: models.StringArray{},
			Status:    models.TokenStatusActive,
			ExpiredAt: time.Now().Add(h.cfg.TokenExpires),
		}

		if err := h.db.Create(&token).Error; err != nil {
			return err
		}

		// One-time reveal: the plaintext JWT is never recoverable again.
		return c.JSON(fiber.Map{
			"success": true,
			"message": "Login successful",
			"result": fiber.Map{
				"verified": true,
				"token": fiber.Map{
					"key":        token.Key,
					"secret":     signed,
					"expired_at": token.ExpiredAt,
				},
			},
		})

	case models.OtpActionForgotPassword:
		sessionKey, err := utils.GenerateKey()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to generate session key")
		}

		session := models.PasswordResetSession{
			UserID:    user.ID,
			Key:       sessionKey,
			Status:    models.TokenStatusActive,
			ExpiredAt: time.Now().Add(h.cfg.OtpExpires),
		}

		if err := h.db.Create(&session).Error; err != nil {
			return err
		}

		return c.JSON(fiber.Map{
			"success": true,
			"message": "OTP verified",
			"result":  fiber.Map{"verified": true, "key": session.Key},
		})

	default:
		return c.JSON(fiber.Map{
			"success": true,
			"message": "OTP verified",
			"result":  fiber.Map{"verified": true},
		})
	}
}

type resendOtpRequest struct {
	Key string `json:"key" validate:"required"`
}

// ResendOtp re-delivers the same code and pushes expiry forward. The
// code itself never rotates.
func (h *AuthHandler) ResendOtp(c *fiber.Ctx) error {
	var req resendOtpRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := validation.Check(req); err != nil {
		return err
	}

	var otp models.OtpCode
	if err := h.db.Preload("User").Where("key = ?", req.Key).First(&otp).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "OTP code not found")
		}
		return err
	}

	if otp.Status == models.OtpStatusUsed {
		return fiber.NewError(fiber.StatusBadRequest, "OTP code already used")
	}
	if otp.Expired() {
		return fiber.NewError(fiber.StatusBadRequest, "OTP code expired")
	}
	if otp.User == nil {
		return fiber.NewError(fiber.StatusNotFound, "User not found")
	}

	code, err := utils.DecryptCode(h.cfg.EncryptionSecret, otp.Secret)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to read OTP code")
	}

	if err := h.db.Model(&otp).Update("expired_at", time.Now().Add(h.cfg.OtpExpires)).Error; err != nil {
		return err
	}

	if err := h.wa.SendOTP(otp.User.PhoneNumber, code, otp.Action); err != nil {
		h.log.WithField("otp_key", otp.Key).WithError(err).Error("otp resend failed")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "OTP code resent",
		"result":  fiber.Map{"key": otp.Key},
	})
}

// Logout deactivates the presented token.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}
	token, ok := middleware.GetCurrentToken(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	if err := h.db.Model(&models.Token{}).
		Where("id = ? AND user_id = ?", token.ID, user.ID).
		Update("status", models.TokenStatusInactive).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Logged out",
		"result":  nil,
	})
}

type changePasswordRequest struct {
	OldPin string `json:"old_pin" validate:"required,len=6,numeric"`
	NewPin string `json:"new_pin" validate:"required,len=6,numeric"`
}

// ChangePassword replaces the PIN of an active, verified user. An
// identical new PIN is rejected before the old PIN is even checked.
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req changePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := validation.Check(req); err != nil {
		return err
	}

	if user.Status != models.UserStatusActive || user.VerifiedAt == nil {
		return fiber.NewError(fiber.StatusBadRequest, "User is not active")
	}

	if req.NewPin == req.OldPin {
		return fiber.NewError(fiber.StatusBadRequest, "New PIN must be different from old PIN")
	}

	if !utils.CheckPassword(user.Password, req.OldPin) {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid PIN")
	}

	passwordHash, err := utils.HashPassword(req.NewPin)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to hash PIN")
	}

	if err := h.db.Model(&user).Update("password", passwordHash).Error; err != nil {
		return err
	}

	h.log.WithField("user_id", user.ID).Info("password changed")

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Password updated successfully",
		"result":  nil,
	})
}

type forgotPasswordRequest struct {
	PhoneNumber string `json:"phone_number" validate:"required"`
}

// ForgotPassword sends a forgot-password OTP to a known phone number.
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var req forgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := validation.Check(req); err != nil {
		return err
	}

	phone, err := validation.NormalizePhone(req.PhoneNumber)
	if err != nil {
		return err
	}

	var user models.User
	if err := h.db.Where("username = ?", phone).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "User not found")
		}
		return err
	}

	key, err := h.issueOtp(user, models.OtpActionForgotPassword)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "OTP code sent",
		"result":  fiber.Map{"key": key},
	})
}

type resetPasswordRequest struct {
	Key    string `json:"key" validate:"required"`
	NewPin string `json:"new_pin" validate:"required,len=6,numeric"`
}

// ResetPassword consumes a reset session and sets a new PIN. The
// session is invalidated before the password write; a failed write
// does not reopen it.
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req resetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := validation.Check(req); err != nil {
		return err
	}

	var session models.PasswordResetSession
	if err := h.db.Where("key = ?", req.Key).First(&session).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "Reset session not found")
		}
		return err
	}

	if session.Status != models.TokenStatusActive {
		return fiber.NewError(fiber.StatusBadRequest, "Reset session already used")
	}
	if session.Expired() {
		return fiber.NewError(fiber.StatusBadRequest, "Reset session expired")
	}

	if err := h.db.Model(&session).Update("status", models.TokenStatusInactive).Error; err != nil {
		return err
	}

	passwordHash, err := utils.HashPassword(req.NewPin)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to hash PIN")
	}

	if err := h.db.Model(&models.User{}).
		Where("id = ?", session.UserID).
		Update("password", passwordHash).Error; err != nil {
		return err
	}

	h.log.WithField("user_id", session.UserID).Info("password reset")

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Password updated successfully",
		"result":  nil,
	})
}
