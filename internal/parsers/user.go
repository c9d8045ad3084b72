package parsers

import (
	"time"

	"github.com/google/uuid"

	"github.com/example/qurbanku/internal/models"
	"github.com/example/qurbanku/internal/utils"
)

// UserFmt is the display block attached to a parsed user.
type UserFmt struct {
	Status     string `json:"status"`
	Type       string `json:"type"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
	VerifiedAt string `json:"verified_at"`
}

// UserView is the display-ready shape of a user row.
type UserView struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Username    string     `json:"username"`
	PhoneNumber string     `json:"phone_number"`
	Email       string     `json:"email"`
	Status      string     `json:"status"`
	Type        string     `json:"type"`
	VerifiedAt  *time.Time `json:"verified_at"`
	Image       string     `json:"image"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Fmt         UserFmt    `json:"fmt"`
}

// ParseUser converts a user row into its view shape.
func ParseUser(u models.User, lc *Locale) UserView {
	view := UserView{
		ID:          u.ID,
		Name:        u.Name,
		Username:    u.Username,
		PhoneNumber: u.PhoneNumber,
		Email:       u.Email,
		Status:      u.Status,
		Type:        u.Type,
		VerifiedAt:  u.VerifiedAt,
		Image:       u.Image,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
		Fmt: UserFmt{
			Status:    label(userStatusLabels, u.Status),
			Type:      label(userTypeLabels, u.Type),
			CreatedAt: utils.FormatDate(u.CreatedAt, lc.Lang, lc.Location),
			UpdatedAt: utils.FormatDate(u.UpdatedAt, lc.Lang, lc.Location),
		},
	}

	if u.VerifiedAt != nil {
		view.Fmt.VerifiedAt = utils.FormatDate(*u.VerifiedAt, lc.Lang, lc.Location)
	}

	return view
}
