package workflows

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/PolarWolf314/tagkeys/internal/audit"
	"github.com/PolarWolf314/tagkeys/internal/document"
	"github.com/PolarWolf314/tagkeys/internal/keystore"
	"github.com/PolarWolf314/tagkeys/internal/unlock"
)

// AddKeyOptions configures the add-key workflow.
type AddKeyOptions struct {
	Env

	Tag      string
	Password string

	// Page is an optional page to unlock with the updated keys.
	Page string

	// Output is where the unlocked page is written. Defaults to
	// DefaultOutputPath(Page).
	Output string
}

// AddKeyResult contains the outcome of an add-key operation.
type AddKeyResult struct {
	Tag string

	// Replaced is true when the tag already had a password.
	Replaced bool

	// Output and Sweep are set when a page was given.
	Output string
	Sweep  *unlock.SweepResult
}

// AddKey stores the password for a tag, replacing any previous one, and
// re-evaluates Page when one is given.
//
// The whole key map is loaded, updated and written back. An empty password
// is stored as given.
//
// Returns ErrInvalidTag for an empty tag or one containing the separator.
func AddKey(ctx context.Context, opts AddKeyOptions) (*AddKeyResult, error) {
	if err := validateTag(opts.Tag); err != nil {
		return nil, err
	}

	var (
		doc       *document.Document
		renderer  unlock.Renderer = discardRenderer{}
		fragments []unlock.Fragment
		probes    []unlock.Probe
	)
	if opts.Page != "" {
		var err error
		doc, err = loadDocument(opts.Page)
		if err != nil {
			return nil, err
		}
		renderer = doc
		fragments = doc.Fragments()
		probes = doc.Probes()
	}

	s, err := openSession(opts.Env)
	if err != nil {
		return nil, err
	}
	defer s.Close()

	_, replaced, err := s.store.Get(opts.Tag)
	if err != nil {
		return nil, fmt.Errorf("loading keys: %w", err)
	}

	tracker, err := s.tracker(renderer)
	if err != nil {
		return nil, err
	}

	sweep, err := tracker.AddKey(ctx, opts.Tag, opts.Password, fragments, probes)
	if err != nil {
		return nil, err
	}

	result := &AddKeyResult{Tag: opts.Tag, Replaced: replaced}
	entry := audit.Entry{Operation: audit.OpAddKey, Tag: opts.Tag}

	if doc != nil {
		output := opts.Output
		if output == "" {
			output = DefaultOutputPath(opts.Page)
		}
		if err := writeDocument(doc, output); err != nil {
			return nil, err
		}
		s.log.Infof("Unlocked %d of %d fragments", len(sweep.Unlocked()), len(fragments))

		result.Output = output
		result.Sweep = sweep
		entry.Document = filepath.Base(opts.Page)
		entry.Unlocked = sweep.Unlocked()
		entry.Remaining = sweep.Remaining()
	}

	s.audit(entry)

	return result, nil
}

// discardRenderer stands in for a page when a key is added on its own.
type discardRenderer struct{}

func (discardRenderer) ReplaceFragment(string, string) error { return nil }
func (discardRenderer) MarkProbe(string, bool) error         { return nil }

// RemoveKeyOptions configures the remove-key workflow.
type RemoveKeyOptions struct {
	Env

	Tag string
}

// RemoveKeyResult contains the outcome of a remove-key operation.
type RemoveKeyResult struct {
	Tag string
}

// RemoveKey deletes the password for a tag.
//
// Returns ErrTagNotFound if the tag has no stored password.
func RemoveKey(ctx context.Context, opts RemoveKeyOptions) (*RemoveKeyResult, error) {
	s, err := openSession(opts.Env)
	if err != nil {
		return nil, err
	}
	defer s.Close()

	if err := s.store.Delete(opts.Tag); err != nil {
		return nil, err
	}
	s.log.Infof("Removed key for tag %q", opts.Tag)

	s.audit(audit.Entry{Operation: audit.OpRemoveKey, Tag: opts.Tag})

	return &RemoveKeyResult{Tag: opts.Tag}, nil
}

// ListKeysOptions configures the list-keys workflow.
type ListKeysOptions struct {
	Env
}

// ListKeysResult contains the stored keys.
type ListKeysResult struct {
	// Tags are sorted.
	Tags []string

	// Keys maps each tag to its password. Callers must mask before display.
	Keys keystore.KeyMap
}

// ListKeys returns every stored key.
func ListKeys(ctx context.Context, opts ListKeysOptions) (*ListKeysResult, error) {
	s, err := openSession(opts.Env)
	if err != nil {
		return nil, err
	}
	defer s.Close()

	keys, err := s.store.Load()
	if err != nil {
		return nil, fmt.Errorf("loading keys: %w", err)
	}

	return &ListKeysResult{Tags: keys.Tags(), Keys: keys}, nil
}
