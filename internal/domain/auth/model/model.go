package model

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email        string    `gorm:"uniqueIndex"`
	PasswordHash string
	FullName     string
	Bio          string
	AvatarURL    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Sanitized returns a copy with the password hash stripped. Everything that
// leaves the service layer goes through it.
func (u User) Sanitized() User {
	u.PasswordHash = ""
	return u
}

// Session is a stateless, signed credential. Nothing is persisted server-side;
// expiry is the only termination.
type Session struct {
	Token     string
	UserID    uuid.UUID
	ExpiresAt time.Time
	TTL       time.Duration
}

// ProfilePatch holds the optional profile mutation fields. A nil field is
// left unchanged.
type ProfilePatch struct {
	FullName  *string
	Bio       *string
	AvatarURL *string
}
