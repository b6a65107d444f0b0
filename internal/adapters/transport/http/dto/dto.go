package dto

import (
	"time"

	"github.com/lumenchat/auth-service/internal/domain/auth/model"
)

type SignupRequest struct {
	FullName string `json:"fullName" validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Bio      string `json:"bio"      validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest uses pointers so "not supplied" and "set to empty" stay
// distinguishable. Avatar carries the raw image as base64, optionally with a
// data-URL prefix.
type UpdateProfileRequest struct {
	FullName *string `json:"fullName,omitempty"`
	Bio      *string `json:"bio,omitempty"`
	Avatar   string  `json:"avatar,omitempty"`
}

// UserPayload is the outbound user shape. There is deliberately no field for
// the password hash.
type UserPayload struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName"`
	Bio       string    `json:"bio"`
	AvatarURL string    `json:"avatarUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewUserPayload(u model.User) *UserPayload {
	return &UserPayload{
		ID:        u.ID.String(),
		Email:     u.Email,
		FullName:  u.FullName,
		Bio:       u.Bio,
		AvatarURL: u.AvatarURL,
		CreatedAt: u.CreatedAt,
	}
}

// Envelope is the uniform response shape of every operation. Failures are
// flagged in the body; the HTTP status stays 200.
type Envelope struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Token   string       `json:"token,omitempty"`
	User    *UserPayload `json:"user,omitempty"`
}
