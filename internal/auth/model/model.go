package model

import (
	"time"

	"github.com/google/uuid"

	customErrors "github.com/qzterxm/HealthUp/internal/auth/errors"
)

// Role is a closed enumeration. Anything outside User/Admin is rejected at
// parse time so downstream switches stay exhaustive.
type Role string

const (
	RoleUser  Role = "User"
	RoleAdmin Role = "Admin"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleUser:
		return RoleUser, nil
	case RoleAdmin:
		return RoleAdmin, nil
	default:
		return "", customErrors.NewInvalidArgument("unknown role: " + s)
	}
}

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin:
		return true
	}
	return false
}

func (r Role) String() string { return string(r) }

type User struct {
	ID           uuid.UUID
	Email        string
	Username     string
	PasswordHash string
	Age          string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TokenPair is the result of a successful login or refresh. The access
// token carries its own expiry in its signed payload; the refresh token is
// an independent opaque secret with its own lifetime.
type TokenPair struct {
	AccessToken      string
	RefreshToken     string
	RefreshExpiresAt time.Time
}

// PasswordResetCode is owned by the reset-code store. It is mutated exactly
// once: IsUsed flips to true when the reset completes.
type PasswordResetCode struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	ResetCode int
	ExpiresAt time.Time
	IsUsed    bool
	CreatedAt time.Time
}
