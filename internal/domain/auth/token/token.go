package token

import (
	"time"

	"github.com/google/uuid"
)

// Issuer mints and verifies the stateless session credential.
type Issuer interface {
	Issue(userID uuid.UUID) (token string, expiresAt time.Time, err error)

	// Verify returns the subject on success. Failures wrap
	// errors.ErrInvalidToken with the reason (malformed, signature, expired).
	Verify(raw string) (userID uuid.UUID, err error)
}
