package jwt

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"io"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	customErrors "github.com/qzterxm/HealthUp/internal/auth/errors"
	"github.com/qzterxm/HealthUp/internal/auth/model"
	"github.com/qzterxm/HealthUp/internal/config"
)

// refreshTokenBytes is the entropy of an opaque refresh token before
// base64 encoding.
const refreshTokenBytes = 64

type jwtUtilImpl struct {
	secret    []byte
	accessTTL time.Duration
	issuer    string
	audience  string

	now  func() time.Time
	rand io.Reader
}

func NewJWTUtil(cfg *config.Config) (*jwtUtilImpl, error) {
	if len(cfg.JWTSecret) < 32 {
		return nil, customErrors.NewInvalidArgument("jwt secret must be at least 32 bytes")
	}
	if cfg.Issuer == "" || cfg.Audience == "" {
		return nil, customErrors.NewInvalidArgument("jwt issuer and audience are required")
	}

	return &jwtUtilImpl{
		secret:    []byte(cfg.JWTSecret),
		accessTTL: cfg.AccessTokenTTL,
		issuer:    cfg.Issuer,
		audience:  cfg.Audience,
		now:       time.Now,
		rand:      rand.Reader,
	}, nil
}

func (j *jwtUtilImpl) GenerateAccessToken(u model.User) (string, time.Time, error) {
	now := j.now()

	claims := AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID.String(),
			Issuer:    j.issuer,
			Audience:  jwt.ClaimStrings{j.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.accessTTL)),
			ID:        uuid.NewString(),
		},
		Email:    u.Email,
		Username: u.Username,
		Role:     u.Role.String(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secret)
	if err != nil {
		return "", time.Time{}, customErrors.WrapInternal(err, "sign access token")
	}

	return signed, claims.ExpiresAt.Time, nil
}

// GenerateRefreshToken produces a bearer secret validated by possession
// only. It is deliberately not a JWT and is never derived from the access
// token.
func (j *jwtUtilImpl) GenerateRefreshToken() (string, error) {
	buf := make([]byte, refreshTokenBytes)
	if _, err := io.ReadFull(j.rand, buf); err != nil {
		return "", customErrors.WrapInternal(err, "refresh token entropy")
	}
	return base64.StdEncoding.EncodeToString(buf), nil
}

func (j *jwtUtilImpl) keyFunc(t *jwt.Token) (interface{}, error) {
	// Exact algorithm match: "none" and any non-HS256 method are rejected
	// before the signature is even checked.
	if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
		return nil, customErrors.ErrUnexpectedAlg
	}
	return j.secret, nil
}

func (j *jwtUtilImpl) ValidateAccessToken(raw string) (AccessClaims, error) {
	token, err := jwt.ParseWithClaims(raw, &AccessClaims{}, j.keyFunc,
		jwt.WithIssuer(j.issuer),
		jwt.WithAudience(j.audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		return AccessClaims{}, classify(err)
	}
	if !token.Valid {
		return AccessClaims{}, customErrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(*AccessClaims)
	if !ok {
		return AccessClaims{}, customErrors.ErrInvalidToken
	}
	if !model.Role(claims.Role).Valid() {
		return AccessClaims{}, customErrors.ErrInvalidToken
	}

	return *claims, nil
}

func (j *jwtUtilImpl) ParseExpiredToken(raw string) (AccessClaims, error) {
	token, err := jwt.ParseWithClaims(raw, &AccessClaims{}, j.keyFunc,
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		return AccessClaims{}, classify(err)
	}

	claims, ok := token.Claims.(*AccessClaims)
	if !ok {
		return AccessClaims{}, customErrors.ErrInvalidToken
	}

	// WithoutClaimsValidation skips issuer and audience along with expiry,
	// so those stay enforced by hand.
	if claims.Issuer != j.issuer {
		return AccessClaims{}, customErrors.ErrInvalidIssuer
	}
	var audMatch bool
	for _, aud := range claims.Audience {
		if aud == j.audience {
			audMatch = true
			break
		}
	}
	if !audMatch {
		return AccessClaims{}, customErrors.ErrInvalidAudience
	}
	if !model.Role(claims.Role).Valid() {
		return AccessClaims{}, customErrors.ErrInvalidToken
	}

	return *claims, nil
}

// classify maps library parse errors onto the classified sentinels so
// callers can distinguish malformed, expired and integrity failures.
func classify(err error) error {
	switch {
	case errors.Is(err, customErrors.ErrUnexpectedAlg):
		return customErrors.ErrUnexpectedAlg
	case errors.Is(err, jwt.ErrTokenMalformed):
		return customErrors.ErrTokenMalformed
	case errors.Is(err, jwt.ErrTokenExpired):
		return customErrors.ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return customErrors.ErrInvalidSignature
	case errors.Is(err, jwt.ErrTokenInvalidIssuer):
		return customErrors.ErrInvalidIssuer
	case errors.Is(err, jwt.ErrTokenInvalidAudience):
		return customErrors.ErrInvalidAudience
	default:
		return customErrors.ErrInvalidToken
	}
}
