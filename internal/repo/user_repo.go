package repo

import (
	"context"

	"github.com/google/uuid"

	"github.com/qzterxm/HealthUp/internal/auth/model"
)

// UserRepo is the user lookup/update capability the credential core
// depends on. Email lookups are case-insensitive.
type UserRepo interface {
	CreateUser(ctx context.Context, u model.User) (uuid.UUID, error)

	GetUserByEmail(ctx context.Context, email string) (model.User, error)

	GetUserByID(ctx context.Context, id uuid.UUID) (model.User, error)

	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
}
