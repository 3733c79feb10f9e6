package errors

import (
	"encoding/base64"
	"errors"
	"fmt"
	"testing"
)

func TestMissingKeyErrorMatchesSentinel(t *testing.T) {
	err := fmt.Errorf("fragment secret-1: %w", &MissingKeyError{Tag: "alpha"})

	if !errors.Is(err, ErrMissingKey) {
		t.Fatalf("Expected errors.Is to match ErrMissingKey, got %v", err)
	}

	var missing *MissingKeyError
	if !errors.As(err, &missing) {
		t.Fatalf("Expected errors.As to find *MissingKeyError")
	}
	if missing.Tag != "alpha" {
		t.Errorf("Expected tag %q, got %q", "alpha", missing.Tag)
	}
}

func TestAuthenticationErrorMatchesSentinel(t *testing.T) {
	err := &AuthenticationError{Tag: "guild"}

	if !errors.Is(err, ErrAuthenticationFailed) {
		t.Fatalf("Expected errors.Is to match ErrAuthenticationFailed")
	}
	if errors.Is(err, ErrMissingKey) {
		t.Errorf("AuthenticationError must not match ErrMissingKey")
	}
	if got, want := err.Error(), `authentication failed for tag "guild"`; got != want {
		t.Errorf("Expected message %q, got %q", want, got)
	}
}

func TestMalformedMatchesSentinelAndCause(t *testing.T) {
	_, cause := base64.StdEncoding.DecodeString("%%%")
	err := Malformed("payload is not base64", cause)

	if !errors.Is(err, ErrMalformedFragment) {
		t.Errorf("Expected errors.Is to match ErrMalformedFragment")
	}

	var corrupt base64.CorruptInputError
	if !errors.As(err, &corrupt) {
		t.Errorf("Expected errors.As to reach the base64 cause")
	}
}

func TestMalformedWithoutCause(t *testing.T) {
	err := Malformed("2 tags but 1 nonces", nil)

	if got, want := err.Error(), "malformed fragment: 2 tags but 1 nonces"; got != want {
		t.Errorf("Expected message %q, got %q", want, got)
	}
	if !errors.Is(err, ErrMalformedFragment) {
		t.Errorf("Expected errors.Is to match ErrMalformedFragment")
	}
}
