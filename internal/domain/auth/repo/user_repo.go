package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/lumenchat/auth-service/internal/domain/auth/model"
)

type UserRepo interface {
	// CreateUser fails with errors.ErrAlreadyExists on an email collision;
	// the unique index is the authoritative guard under concurrent signups.
	CreateUser(ctx context.Context, u model.User) (uuid.UUID, error)

	GetUserByEmail(ctx context.Context, email string) (model.User, error)

	GetUserByID(ctx context.Context, id uuid.UUID) (model.User, error)

	// UpdateProfile applies the supplied fields in a single write and returns
	// the resulting user.
	UpdateProfile(ctx context.Context, id uuid.UUID, patch model.ProfilePatch) (model.User, error)
}
