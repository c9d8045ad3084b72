package models

import (
	"time"

	"github.com/google/uuid"
)

// User statuses and types.
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"

	UserTypeInternal = "internal"
	UserTypeExternal = "external"
)

// OTP actions and statuses.
const (
	OtpActionRegister       = "register"
	OtpActionLogin          = "login"
	OtpActionForgotPassword = "forgot_password"

	OtpStatusUnused = "unused"
	OtpStatusUsed   = "used"
)

// Token and reset-session statuses.
const (
	TokenStatusActive   = "active"
	TokenStatusInactive = "inactive"
)

// User is an account identified by its phone number. Username always
// mirrors the normalized phone number and is the unique login handle.
type User struct {
	BaseModel
	Name        string        `json:"name"`
	Username    string        `gorm:"uniqueIndex" json:"username"`
	PhoneNumber string        `json:"phone_number"`
	Email       string        `json:"email"`
	Password    string        `json:"-"`
	Status      string        `gorm:"default:active" json:"status"`
	Type        string        `gorm:"default:external" json:"type"`
	VerifiedAt  *time.Time    `json:"verified_at"`
	Image       string        `json:"image"`
	Accounts    []Account     `json:"accounts,omitempty"`
	Addresses   []UserAddress `json:"addresses,omitempty"`
}

// Account links a user to the account type it registered with.
type Account struct {
	BaseModel
	UserID uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	Type   string    `json:"type"`
}

// Token backs a bearer credential. Secret stores a one-way hash of the
// signed JWT; the plaintext JWT is revealed exactly once at login.
type Token struct {
	BaseModel
	UserID    uuid.UUID   `gorm:"type:uuid;index" json:"user_id"`
	User      *User       `json:"user,omitempty"`
	Key       string      `gorm:"uniqueIndex" json:"key"`
	Secret    string      `json:"-"`
	Abilities StringArray `json:"abilities"`
	Status    string      `gorm:"default:active" json:"status"`
	ExpiredAt time.Time   `json:"expired_at"`
}

// Expired reports whether the token is past its expiry.
func (t *Token) Expired() bool {
	return t.ExpiredAt.Before(time.Now())
}

// OtpCode is a one-time code gating an auth action. Secret holds the
// code encrypted reversibly so resends can deliver the same digits.
type OtpCode struct {
	BaseModel
	UserID    uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	User      *User     `json:"user,omitempty"`
	Key       string    `gorm:"uniqueIndex" json:"key"`
	Secret    string    `json:"-"`
	Action    string    `json:"action"`
	Status    string    `gorm:"default:unused" json:"status"`
	ExpiredAt time.Time `json:"expired_at"`
}

// Expired reports whether the code is past its expiry.
func (o *OtpCode) Expired() bool {
	return o.ExpiredAt.Before(time.Now())
}

// PasswordResetSession is minted after a forgot-password OTP verifies
// and is consumed exactly once by reset-password.
type PasswordResetSession struct {
	BaseModel
	UserID    uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	Key       string    `gorm:"uniqueIndex" json:"key"`
	Status    string    `gorm:"default:active" json:"status"`
	ExpiredAt time.Time `json:"expired_at"`
}

// Expired reports whether the session is past its expiry.
func (s *PasswordResetSession) Expired() bool {
	return s.ExpiredAt.Before(time.Now())
}
