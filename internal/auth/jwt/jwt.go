package jwt

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/qzterxm/HealthUp/internal/auth/model"
)

// AccessClaims is the identity bound into an access token at issuance.
type AccessClaims struct {
	jwt.RegisteredClaims
	Email    string `json:"email"`
	Username string `json:"name"`
	Role     string `json:"role"`
}

// TokenUtil issues and verifies the two halves of a token pair. Access
// tokens are signed JWTs; refresh tokens are opaque random secrets with no
// structure and no embedded claims.
type TokenUtil interface {
	GenerateAccessToken(u model.User) (token string, exp time.Time, err error)
	GenerateRefreshToken() (string, error)

	// ValidateAccessToken is the normal verification mode: signature,
	// algorithm, issuer, audience and expiry are all enforced.
	ValidateAccessToken(raw string) (AccessClaims, error)

	// ParseExpiredToken verifies everything except expiry. It exists only
	// so the refresh flow can recover identity from an expired access
	// token; protected-endpoint checks must never reach it.
	ParseExpiredToken(raw string) (AccessClaims, error)
}
