// Package errors provides typed error values for tagkeys.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching. Fragment
// failures additionally carry the tag that caused them, reachable through
// errors.As().
//
// # Error Categories
//
// Errors are grouped by category:
//
//   - Fragment errors: a protected fragment stays locked (ErrMissingKey,
//     ErrAuthenticationFailed, ErrMalformedFragment)
//   - Key store errors: persisted tag keys cannot be read or written
//     (ErrStoreUnavailable, ErrTagNotFound)
//   - Configuration errors: settings are unusable (ErrConfigInvalid,
//     ErrUnknownCipher)
//   - Document errors: the page has nothing to work on (ErrNoFragments)
//
// # Usage
//
// Fragment errors are never fatal. A caller deciding what to show the viewer
// inspects them like this:
//
//	_, err := secrets.DecryptLayered(data, tags, nonces, keys)
//	var missing *kerrors.MissingKeyError
//	switch {
//	case errors.As(err, &missing):
//	    // stay locked until missing.Tag is supplied
//	case errors.Is(err, kerrors.ErrAuthenticationFailed):
//	    // flag the key as incorrect
//	}
package errors
