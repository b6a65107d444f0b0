package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/lumenchat/auth-service/internal/domain/auth/model"
)

// UserCache is a best-effort read-through cache in front of UserRepo lookups
// on the authenticated path. Entries never contain password hashes.
type UserCache interface {
	Get(ctx context.Context, id uuid.UUID) (model.User, bool, error)

	Set(ctx context.Context, u model.User) error

	Invalidate(ctx context.Context, id uuid.UUID) error
}
