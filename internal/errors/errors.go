package errors

import (
	"errors"
	"fmt"
)

// Fragment errors indicate why a protected fragment could not be revealed.
var (
	// ErrMissingKey indicates no password is known for a layer's tag.
	ErrMissingKey = errors.New("no key available for tag")

	// ErrAuthenticationFailed indicates the cipher rejected a layer, either
	// because the password is wrong or the ciphertext was tampered with.
	ErrAuthenticationFailed = errors.New("authentication failed for tag")

	// ErrMalformedFragment indicates the fragment itself is broken: mismatched
	// tag and nonce lists, undecodable base64, or non UTF-8 plaintext.
	ErrMalformedFragment = errors.New("malformed fragment")
)

// Key store errors indicate issues with persisted tag keys.
var (
	// ErrStoreUnavailable indicates the key store could not be opened.
	ErrStoreUnavailable = errors.New("key store unavailable")

	// ErrTagNotFound indicates the key store has no entry for a tag.
	ErrTagNotFound = errors.New("tag not found in key store")

	// ErrInvalidTag indicates a tag that no document could reference.
	ErrInvalidTag = errors.New("invalid tag")
)

// Configuration errors indicate unusable settings.
var (
	// ErrConfigInvalid indicates the configuration file is malformed.
	ErrConfigInvalid = errors.New("configuration is invalid")

	// ErrUnknownCipher indicates a cipher name that tagkeys does not support.
	ErrUnknownCipher = errors.New("unknown cipher")
)

// Document errors indicate issues with the page being unlocked.
var (
	// ErrNoFragments indicates the document has no protected fragments.
	ErrNoFragments = errors.New("no protected fragments found")

	// ErrUnknownFragment indicates a fragment ID the document does not hold
	// or that was already replaced.
	ErrUnknownFragment = errors.New("unknown fragment")

	// ErrUnknownProbe indicates a tag without a key test entry in the document.
	ErrUnknownProbe = errors.New("no key test for tag")
)

// Audit errors indicate issues reading the audit log.
var (
	// ErrNoAuditLog indicates nothing has been logged yet.
	ErrNoAuditLog = errors.New("no audit log found")

	// ErrInvalidDateFormat indicates a date filter is not YYYY-MM-DD.
	ErrInvalidDateFormat = errors.New("invalid date format")
)

// MissingKeyError reports the first layer whose tag has no known password.
type MissingKeyError struct {
	Tag string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("%v %q", ErrMissingKey, e.Tag)
}

func (e *MissingKeyError) Unwrap() error { return ErrMissingKey }

// AuthenticationError reports the layer the cipher refused to open.
type AuthenticationError struct {
	Tag string
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("%v %q", ErrAuthenticationFailed, e.Tag)
}

func (e *AuthenticationError) Unwrap() error { return ErrAuthenticationFailed }

// MalformedFragmentError describes a producer-side defect in a fragment.
// Err holds the underlying decoding error, if any.
type MalformedFragmentError struct {
	Reason string
	Err    error
}

func (e *MalformedFragmentError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%v: %s: %v", ErrMalformedFragment, e.Reason, e.Err)
	}
	return fmt.Sprintf("%v: %s", ErrMalformedFragment, e.Reason)
}

// Unwrap lets errors.Is match both ErrMalformedFragment and the cause.
func (e *MalformedFragmentError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrMalformedFragment, e.Err}
	}
	return []error{ErrMalformedFragment}
}

// Malformed is shorthand for building a *MalformedFragmentError.
func Malformed(reason string, err error) error {
	return &MalformedFragmentError{Reason: reason, Err: err}
}
