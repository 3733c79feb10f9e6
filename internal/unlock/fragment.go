package unlock

import (
	"github.com/PolarWolf314/tagkeys/internal/keystore"
	"github.com/PolarWolf314/tagkeys/internal/secrets"
)

// Fragment is an encrypted region of a document.
type Fragment interface {
	// ID is stable for the lifetime of the document.
	ID() string
	// Ciphertext is the base64 payload.
	Ciphertext() string
	// RequiredTags are in declared order, innermost layer first.
	RequiredTags() []string
	// Nonces parallel RequiredTags.
	Nonces() []string
}

// Probe pairs a tag with a fixture encrypted under that tag alone. The fixture
// decrypts to the sentinel only when the stored password is right.
type Probe interface {
	Tag() string
	Fixture() Fragment
}

// Renderer receives the outcome of a sweep.
type Renderer interface {
	ReplaceFragment(id string, plaintext string) error
	MarkProbe(tag string, verified bool) error
}

type staticFragment struct {
	id         string
	ciphertext string
	tags       []string
	nonces     []string
}

// NewFragment returns a Fragment backed by fixed values.
func NewFragment(id, ciphertext string, tags, nonces []string) Fragment {
	return &staticFragment{id: id, ciphertext: ciphertext, tags: tags, nonces: nonces}
}

func (f *staticFragment) ID() string             { return f.id }
func (f *staticFragment) Ciphertext() string     { return f.ciphertext }
func (f *staticFragment) RequiredTags() []string { return f.tags }
func (f *staticFragment) Nonces() []string       { return f.nonces }

type staticProbe struct {
	tag     string
	fixture Fragment
}

// NewProbe returns a Probe for tag checked against fixture.
func NewProbe(tag string, fixture Fragment) Probe {
	return &staticProbe{tag: tag, fixture: fixture}
}

func (p *staticProbe) Tag() string       { return p.tag }
func (p *staticProbe) Fixture() Fragment { return p.fixture }

// Available returns the fragments whose every required tag has a key, in
// input order. A fragment with no layers is always available.
func Available(keys keystore.KeyMap, fragments []Fragment) []Fragment {
	var available []Fragment
	for _, f := range fragments {
		if missingTag(keys, f) == "" {
			available = append(available, f)
		}
	}
	return available
}

// missingTag returns the first tag in peel order without a key, or "".
func missingTag(keys keystore.KeyMap, f Fragment) string {
	for _, tag := range secrets.PeelOrder(f.RequiredTags()) {
		if !keys.Has(tag) {
			return tag
		}
	}
	return ""
}
