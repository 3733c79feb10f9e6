package secrets

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"

	kerrors "github.com/PolarWolf314/tagkeys/internal/errors"
	"golang.org/x/crypto/chacha20poly1305"
)

const (
	// KeySize is the size of a derived layer key in bytes.
	KeySize = 32

	// NonceSize is the size of a layer nonce in bytes (96 bits).
	NonceSize = 12

	// TagSize is the size of the AEAD authentication tag in bytes.
	TagSize = 16
)

// Cipher names the AEAD used for every layer of a fragment.
type Cipher string

const (
	// AESGCM is AES-256-GCM, the cipher used by the companion encryptor.
	AESGCM Cipher = "aes-gcm"

	// ChaCha20Poly1305 is the IETF ChaCha20-Poly1305 construction.
	ChaCha20Poly1305 Cipher = "chacha20-poly1305"
)

// ParseCipher maps a configuration value onto a Cipher. The empty string
// selects AESGCM.
func ParseCipher(name string) (Cipher, error) {
	switch Cipher(name) {
	case "", AESGCM:
		return AESGCM, nil
	case ChaCha20Poly1305:
		return ChaCha20Poly1305, nil
	default:
		return "", fmt.Errorf("%w: %q", kerrors.ErrUnknownCipher, name)
	}
}

// AEAD builds the cipher.AEAD for a derived key.
func (c Cipher) AEAD(key Key) (cipher.AEAD, error) {
	switch c {
	case "", AESGCM:
		block, err := aes.NewCipher(key[:])
		if err != nil {
			return nil, fmt.Errorf("failed to create AES cipher: %w", err)
		}
		aead, err := cipher.NewGCM(block)
		if err != nil {
			return nil, fmt.Errorf("failed to create GCM: %w", err)
		}
		return aead, nil
	case ChaCha20Poly1305:
		return chacha20poly1305.New(key[:])
	default:
		return nil, fmt.Errorf("%w: %q", kerrors.ErrUnknownCipher, string(c))
	}
}

// GenerateNonce returns a fresh random nonce read from r.
func GenerateNonce(r io.Reader) ([]byte, error) {
	if r == nil {
		r = rand.Reader
	}
	nonce := make([]byte, NonceSize)
	if _, err := io.ReadFull(r, nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}
	return nonce, nil
}

// openLayer removes a single layer from data. The returned slice never
// aliases data.
func openLayer(c Cipher, tag, password, encodedNonce string, data []byte) ([]byte, error) {
	nonce, err := DecodeBase64(encodedNonce)
	if err != nil {
		return nil, kerrors.Malformed(fmt.Sprintf("nonce for tag %q is not base64", tag), err)
	}
	if len(nonce) != NonceSize {
		return nil, kerrors.Malformed(fmt.Sprintf("nonce for tag %q is %d bytes, expected %d", tag, len(nonce), NonceSize), nil)
	}

	aead, err := c.AEAD(DeriveKey(password))
	if err != nil {
		return nil, err
	}

	plaintext, err := aead.Open(nil, nonce, data, nil)
	if err != nil {
		return nil, &kerrors.AuthenticationError{Tag: tag}
	}
	return plaintext, nil
}

// sealLayer adds a single layer to data and returns the base64 nonce used.
func sealLayer(c Cipher, password string, data []byte, r io.Reader) ([]byte, string, error) {
	aead, err := c.AEAD(DeriveKey(password))
	if err != nil {
		return nil, "", err
	}

	nonce, err := GenerateNonce(r)
	if err != nil {
		return nil, "", err
	}

	return aead.Seal(nil, nonce, data, nil), EncodeBase64(nonce), nil
}
