package unlock

import (
	"context"
	"errors"
	"fmt"
	"sync"

	kerrors "github.com/PolarWolf314/tagkeys/internal/errors"
	"github.com/PolarWolf314/tagkeys/internal/keystore"
	logger "github.com/PolarWolf314/tagkeys/internal/logging"
	"github.com/PolarWolf314/tagkeys/internal/secrets"
	"golang.org/x/sync/errgroup"
)

// DefaultSentinel is the plaintext every probe fixture decrypts to.
const DefaultSentinel = "correct"

// DefaultConcurrency bounds how many fragments decrypt at once.
const DefaultConcurrency = 4

// Tracker reveals fragments as keys become available.
type Tracker struct {
	store    keystore.Store
	renderer Renderer

	log         logger.Logger
	cipher      secrets.Cipher
	sentinel    string
	concurrency int

	// mu guards unlocked and verdicts.
	mu       sync.Mutex
	unlocked map[string]bool
	verdicts map[string]bool

	// renderMu serializes renderer calls.
	renderMu sync.Mutex
}

// Option configures a Tracker.
type Option func(*Tracker)

func WithLogger(log logger.Logger) Option {
	return func(t *Tracker) { t.log = log }
}

func WithCipher(c secrets.Cipher) Option {
	return func(t *Tracker) { t.cipher = c }
}

// WithSentinel sets the plaintext that marks a probe as verified.
func WithSentinel(sentinel string) Option {
	return func(t *Tracker) { t.sentinel = sentinel }
}

// WithConcurrency bounds parallel fragment decryption. Values below 1 are
// ignored.
func WithConcurrency(n int) Option {
	return func(t *Tracker) {
		if n >= 1 {
			t.concurrency = n
		}
	}
}

// New returns a Tracker reading keys from store and reporting to renderer.
func New(store keystore.Store, renderer Renderer, opts ...Option) *Tracker {
	t := &Tracker{
		store:       store,
		renderer:    renderer,
		cipher:      secrets.AESGCM,
		sentinel:    DefaultSentinel,
		concurrency: DefaultConcurrency,
		unlocked:    make(map[string]bool),
		verdicts:    make(map[string]bool),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// IsUnlocked reports whether a previous sweep revealed the fragment.
func (t *Tracker) IsUnlocked(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.unlocked[id]
}

// AddKey stores password for tag and sweeps again. The full key map is
// written back before the sweep runs.
func (t *Tracker) AddKey(ctx context.Context, tag, password string, fragments []Fragment, probes []Probe) (*SweepResult, error) {
	keys, err := t.store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load keys: %w", err)
	}

	if keys == nil {
		keys = keystore.KeyMap{}
	}
	keys[tag] = password

	if err := t.store.Save(keys); err != nil {
		return nil, fmt.Errorf("failed to save keys: %w", err)
	}
	t.log.Infof("Stored key for tag %q", tag)

	return t.Sweep(ctx, fragments, probes)
}

// Sweep checks every probe and decrypts every available fragment that has
// not been unlocked yet. Per-fragment failures are recorded in the result.
// The returned error is only set when the key store cannot be read, the
// renderer fails, or ctx is cancelled.
func (t *Tracker) Sweep(ctx context.Context, fragments []Fragment, probes []Probe) (*SweepResult, error) {
	loaded, err := t.store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load keys: %w", err)
	}
	keys := loaded.Clone()
	t.log.Debugf("Sweeping %d fragments and %d probes with %d keys", len(fragments), len(probes), len(keys))

	result := &SweepResult{
		Fragments: make([]FragmentResult, len(fragments)),
		Probes:    make(map[string]bool),
	}

	if err := t.runProbes(keys, probes, result); err != nil {
		return result, err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(t.concurrency)

	for i, f := range fragments {
		result.Fragments[i] = FragmentResult{ID: f.ID()}

		if t.IsUnlocked(f.ID()) {
			result.Fragments[i].Outcome = AlreadyUnlocked
			continue
		}

		if tag := missingTag(keys, f); tag != "" {
			result.Fragments[i].Outcome = MissingKey
			result.Fragments[i].Err = &kerrors.MissingKeyError{Tag: tag}
			continue
		}

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				result.Fragments[i].Err = err
				return err
			}
			fr, err := t.unlockFragment(keys, f)
			result.Fragments[i] = fr
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return result, err
	}

	return result, nil
}

func (t *Tracker) unlockFragment(keys keystore.KeyMap, f Fragment) (FragmentResult, error) {
	fr := FragmentResult{ID: f.ID()}

	plaintext, err := t.decrypt(keys, f)
	if err != nil {
		fr.Outcome = classify(err)
		fr.Err = err
		if fr.Outcome == Malformed {
			t.log.Warnf("Fragment %s is malformed: %v", f.ID(), err)
		} else {
			t.log.Debugf("Fragment %s stays locked: %v", f.ID(), err)
		}
		return fr, nil
	}

	t.mu.Lock()
	if t.unlocked[f.ID()] {
		t.mu.Unlock()
		fr.Outcome = AlreadyUnlocked
		return fr, nil
	}
	t.unlocked[f.ID()] = true
	t.mu.Unlock()

	t.renderMu.Lock()
	err = t.renderer.ReplaceFragment(f.ID(), plaintext)
	t.renderMu.Unlock()
	if err != nil {
		t.mu.Lock()
		delete(t.unlocked, f.ID())
		t.mu.Unlock()
		err = fmt.Errorf("failed to replace fragment %s: %w", f.ID(), err)
		fr.Outcome = RenderFailed
		fr.Err = err
		return fr, err
	}

	t.log.Debugf("Unlocked fragment %s", f.ID())
	fr.Outcome = Unlocked
	return fr, nil
}

func (t *Tracker) runProbes(keys keystore.KeyMap, probes []Probe, result *SweepResult) error {
	for _, p := range probes {
		tag := p.Tag()

		if !keys.Has(tag) {
			t.mu.Lock()
			delete(t.verdicts, tag)
			t.mu.Unlock()
			continue
		}

		plaintext, err := t.decrypt(keys, p.Fixture())
		verified := err == nil && plaintext == t.sentinel
		if err != nil && classify(err) == Malformed {
			t.log.Warnf("Key test for tag %q is malformed: %v", tag, err)
		}
		result.Probes[tag] = verified

		t.mu.Lock()
		previous, seen := t.verdicts[tag]
		t.verdicts[tag] = verified
		t.mu.Unlock()

		if seen && previous == verified {
			continue
		}

		t.renderMu.Lock()
		err = t.renderer.MarkProbe(tag, verified)
		t.renderMu.Unlock()
		if err != nil {
			t.mu.Lock()
			delete(t.verdicts, tag)
			t.mu.Unlock()
			return fmt.Errorf("failed to mark key test for tag %q: %w", tag, err)
		}
	}
	return nil
}

func (t *Tracker) decrypt(keys keystore.KeyMap, f Fragment) (string, error) {
	data, err := secrets.DecodeBase64(f.Ciphertext())
	if err != nil {
		return "", kerrors.Malformed("payload is not base64", err)
	}

	return secrets.DecryptLayered(
		data,
		secrets.PeelOrder(f.RequiredTags()),
		secrets.PeelOrder(f.Nonces()),
		keys,
		secrets.WithCipher(t.cipher),
	)
}

func classify(err error) Outcome {
	switch {
	case errors.Is(err, kerrors.ErrMissingKey):
		return MissingKey
	case errors.Is(err, kerrors.ErrAuthenticationFailed):
		return AuthenticationFailed
	default:
		return Malformed
	}
}
