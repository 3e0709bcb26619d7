package errors

import "testing"

func TestErrorHelpers(t *testing.T) {
	err := NewInvalidArgument("bad")
	if !IsInvalidArgument(err) {
		t.Fatal("expected invalid argument")
	}

	wrapped := WrapInternal(err, "ctx")
	if !IsInternal(wrapped) {
		t.Fatal("expected internal")
	}
}

func TestIsInvalidToken_CoversIntegrityFailures(t *testing.T) {
	for _, err := range []error{
		ErrInvalidToken,
		ErrTokenExpired,
		ErrInvalidSignature,
		ErrInvalidIssuer,
		ErrInvalidAudience,
		ErrUnexpectedAlg,
	} {
		if !IsInvalidToken(err) {
			t.Fatalf("%v must classify as invalid token", err)
		}
	}

	if IsInvalidToken(ErrTokenMalformed) {
		t.Fatal("malformed is its own class")
	}
	if IsInvalidToken(ErrNotFound) {
		t.Fatal("not found is not a token failure")
	}
}

func TestDeliveryFailed(t *testing.T) {
	err := WrapDeliveryFailed(NewInvalidArgument("smtp"))
	if !IsDeliveryFailed(err) {
		t.Fatal("expected delivery failed")
	}
}
