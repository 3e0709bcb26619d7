package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/qzterxm/HealthUp/internal/auth/dto"
	"github.com/qzterxm/HealthUp/internal/auth/model"
)

// AuthService is the credential lifecycle orchestrator: it combines the
// token utilities with the user store to implement login and refresh.
type AuthService interface {
	Register(ctx context.Context, d dto.RegisterDTO) (model.User, error)

	Login(ctx context.Context, d dto.LoginDTO) (model.TokenPair, error)

	// IssueTokens builds a token pair for an already-authenticated user.
	// rememberMe selects the 30-day refresh lifetime instead of 3 days.
	IssueTokens(user model.User, rememberMe bool) (model.TokenPair, error)

	// Refresh recovers identity from an otherwise-expired access token,
	// re-checks that the subject still exists, and issues a fresh pair.
	// It never extends a remember-me lifetime.
	Refresh(ctx context.Context, d dto.RefreshDTO) (model.TokenPair, error)
}

// PasswordResetService drives the one-time reset-code flow. Request is
// enumeration-resistant: an unknown email yields the same outcome as a
// successful send. Brute-force resistance over the 9000-value code space
// depends on the HTTP-boundary rate limiter, not on this service.
type PasswordResetService interface {
	Request(ctx context.Context, email string) error

	// Validate returns the owning user id for a live (unused, unexpired)
	// code, or ErrInvalidResetCode with no further distinction.
	Validate(ctx context.Context, userID uuid.UUID, code int) (uuid.UUID, error)

	Complete(ctx context.Context, d dto.ResetCompleteDTO) error
}
