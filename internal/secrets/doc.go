// Package secrets provides the cryptographic core of tagkeys.
//
// This package turns a protected fragment (ciphertext, ordered tags, ordered
// nonces) and a map of tag passwords into recovered plaintext, or into a
// typed failure from the internal/errors package. It has no side effects:
// nothing is logged, persisted or rendered here, so the same routines serve
// both real unlocking and key-correctness probes.
//
// # Layers
//
// A fragment is encrypted once per tag. The first declared tag is the
// innermost layer, so layers are peeled in reverse declaration order:
//
//	tags="alpha;beta"   ->   peel beta, then alpha
//
// DecryptLayered expects tags and nonces already in peel order. DecryptFragment
// accepts the host representation (base64 payload and ";" separated
// attributes) and reverses the lists itself.
//
// # Key Derivation
//
// Tag passwords become 32-byte keys by copying one byte per character into a
// zeroed buffer (see DeriveKey). The schedule must match the companion
// encryptor byte for byte.
//
// # Ciphers
//
// Layers use a 96-bit nonce AEAD. AES-256-GCM is the default and the only
// cipher the browser viewer understands; ChaCha20-Poly1305 is available for
// content produced and consumed entirely by tagkeys.
package secrets
