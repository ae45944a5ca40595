package domain

import (
	"net/mail"
	"time"

	"github.com/hamzaamir-design/Real-state-MarketPlace/internal/media"
	"github.com/hamzaamir-design/Real-state-MarketPlace/pkg/validator"
)

// User is an account record. PasswordHash is a one-way bcrypt hash and is
// excluded from every outward-facing representation; handlers must only ever
// serialize Profile().
type User struct {
	ID           string             `json:"id"`
	Username     string             `json:"username"`
	Email        string             `json:"email"`
	PasswordHash string             `json:"-"`
	Avatar       *media.AssetHandle `json:"avatar,omitempty"`
	CreatedAt    time.Time          `json:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt"`
}

// Profile is the outward-facing representation of a user.
type Profile struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	AvatarURL string    `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Profile strips everything that must not leave the service.
func (u *User) Profile() Profile {
	p := Profile{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
	if u.Avatar != nil {
		p.AvatarURL = u.Avatar.URL
	}
	return p
}

// UpdateInput is a partial profile update. Nil means "leave unchanged".
// Password carries plaintext and is re-hashed by the lifecycle service if
// and only if it is non-nil; the avatar has its own flow.
type UpdateInput struct {
	Username *string
	Email    *string
	Password *string
}

// Validate enforces the user invariants on the full merged state.
func (u *User) Validate() error {
	if u.Username == "" {
		return validator.New("username", "required", "username must not be empty")
	}
	if u.Email == "" {
		return validator.New("email", "required", "email must not be empty")
	}
	if _, err := mail.ParseAddress(u.Email); err != nil {
		return validator.New("email", "format", "email address is not valid")
	}
	if u.PasswordHash == "" {
		return validator.New("password", "required", "password hash must be set")
	}
	return nil
}
