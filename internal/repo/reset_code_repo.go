package repo

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/qzterxm/HealthUp/internal/auth/model"
)

// ResetCodeRepo persists one-time password-reset codes.
type ResetCodeRepo interface {
	Insert(ctx context.Context, code model.PasswordResetCode) error

	// FindValid returns the record for (userID, code) only if it is unused
	// and unexpired at now. Misses return ErrNotFound regardless of
	// whether the code never existed, was used, or expired.
	FindValid(ctx context.Context, userID uuid.UUID, code int, now time.Time) (model.PasswordResetCode, error)

	// Consume atomically flips is_used false->true as part of the same
	// validity check FindValid applies. Two concurrent Consume calls for
	// the same code cannot both succeed.
	Consume(ctx context.Context, userID uuid.UUID, code int, now time.Time) error
}
