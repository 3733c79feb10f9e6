package secrets

import (
	"fmt"
	"io"
	"unicode/utf8"

	kerrors "github.com/PolarWolf314/tagkeys/internal/errors"
)

type options struct {
	cipher Cipher
	rand   io.Reader
}

// Option adjusts how layers are opened or sealed.
type Option func(*options)

// WithCipher selects the AEAD for every layer. The default is AESGCM.
func WithCipher(c Cipher) Option {
	return func(o *options) {
		o.cipher = c
	}
}

// WithRand sets the nonce source used by EncryptLayered.
func WithRand(r io.Reader) Option {
	return func(o *options) {
		o.rand = r
	}
}

func newOptions(opts []Option) options {
	o := options{cipher: AESGCM}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Layer is one encryption layer of a fragment.
type Layer struct {
	Tag   string
	Nonce string
}

// PairLayers zips parallel tags and nonces into layers, keeping their order.
func PairLayers(tags, nonces []string) ([]Layer, error) {
	if len(tags) != len(nonces) {
		return nil, kerrors.Malformed(fmt.Sprintf("%d tags but %d nonces", len(tags), len(nonces)), nil)
	}

	layers := make([]Layer, len(tags))
	for i := range tags {
		layers[i] = Layer{Tag: tags[i], Nonce: nonces[i]}
	}
	return layers, nil
}

// DecryptLayered peels every layer from ciphertext and returns the plaintext.
//
// tags and nonces are parallel and must already be in peel order (innermost
// applied last comes first). The first tag without an entry in keys stops the
// attempt with a *MissingKeyError; a layer the cipher rejects yields an
// *AuthenticationError. With no tags, ciphertext is returned as text.
//
// ciphertext and keys are only read. Callers sharing a key map across
// goroutines should pass a snapshot.
func DecryptLayered(ciphertext []byte, tags, nonces []string, keys map[string]string, opts ...Option) (string, error) {
	layers, err := PairLayers(tags, nonces)
	if err != nil {
		return "", err
	}

	o := newOptions(opts)

	data := ciphertext
	for _, layer := range layers {
		password, ok := keys[layer.Tag]
		if !ok {
			return "", &kerrors.MissingKeyError{Tag: layer.Tag}
		}

		next, err := openLayer(o.cipher, layer.Tag, password, layer.Nonce, data)
		if err != nil {
			return "", err
		}
		data = next
	}

	if !utf8.Valid(data) {
		return "", kerrors.Malformed("plaintext is not valid UTF-8", nil)
	}
	return string(data), nil
}

// DecryptFragment decrypts a fragment in its host representation: a base64
// payload plus ";" separated tags and nonces in declared order.
func DecryptFragment(payload, tagsAttr, noncesAttr string, keys map[string]string, opts ...Option) (string, error) {
	data, err := DecodeBase64(payload)
	if err != nil {
		return "", kerrors.Malformed("payload is not base64", err)
	}

	tags := PeelOrder(SplitList(tagsAttr))
	nonces := PeelOrder(SplitList(noncesAttr))

	return DecryptLayered(data, tags, nonces, keys, opts...)
}

// EncryptLayered produces a fragment the way the companion encryptor does.
// The first tag becomes the innermost layer. It returns the base64 payload and
// the tags and nonces attributes in declared order.
//
// tagkeys never encrypts page content itself; this exists to build fixtures.
func EncryptLayered(plaintext string, tags []string, keys map[string]string, opts ...Option) (payload, tagsAttr, noncesAttr string, err error) {
	o := newOptions(opts)

	data := []byte(plaintext)
	nonces := make([]string, 0, len(tags))
	for _, tag := range tags {
		password, ok := keys[tag]
		if !ok {
			return "", "", "", &kerrors.MissingKeyError{Tag: tag}
		}

		var nonce string
		data, nonce, err = sealLayer(o.cipher, password, data, o.rand)
		if err != nil {
			return "", "", "", fmt.Errorf("sealing layer %q: %w", tag, err)
		}
		nonces = append(nonces, nonce)
	}

	return EncodeBase64(data), JoinList(tags), JoinList(nonces), nil
}
