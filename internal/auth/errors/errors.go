package errors

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrInternal           = errors.New("internal error")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAlreadyExists      = errors.New("already exists")

	// Token verification failures are classified, not collapsed into a
	// boolean: callers map each of these to a distinct outcome.
	ErrInvalidToken     = errors.New("invalid token")
	ErrTokenMalformed   = errors.New("malformed token")
	ErrTokenExpired     = errors.New("token expired")
	ErrInvalidSignature = errors.New("invalid token signature")
	ErrInvalidIssuer    = errors.New("invalid token issuer")
	ErrInvalidAudience  = errors.New("invalid token audience")
	ErrUnexpectedAlg    = errors.New("unexpected signing algorithm")

	ErrInvalidResetCode = errors.New("invalid or expired reset code")
	ErrDeliveryFailed   = errors.New("notification delivery failed")
)

func NewInvalidArgument(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, msg)
}

func WrapInternal(err error, context string) error {
	return fmt.Errorf("%w: %s: %v", ErrInternal, context, err)
}

func WrapDeliveryFailed(err error) error {
	return fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
}

func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}

func IsInternal(err error) bool {
	return errors.Is(err, ErrInternal)
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsInvalidCredentials(err error) bool {
	return errors.Is(err, ErrInvalidCredentials)
}

func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsInvalidToken reports whether err is any classified token failure.
// Integrity failures (signature, issuer, audience, algorithm) are never
// downgraded to a softer class.
func IsInvalidToken(err error) bool {
	return errors.Is(err, ErrInvalidToken) ||
		errors.Is(err, ErrTokenExpired) ||
		errors.Is(err, ErrInvalidSignature) ||
		errors.Is(err, ErrInvalidIssuer) ||
		errors.Is(err, ErrInvalidAudience) ||
		errors.Is(err, ErrUnexpectedAlg)
}

func IsTokenMalformed(err error) bool {
	return errors.Is(err, ErrTokenMalformed)
}

func IsTokenExpired(err error) bool {
	return errors.Is(err, ErrTokenExpired)
}

func IsInvalidResetCode(err error) bool {
	return errors.Is(err, ErrInvalidResetCode)
}

func IsDeliveryFailed(err error) bool {
	return errors.Is(err, ErrDeliveryFailed)
}
