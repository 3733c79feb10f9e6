package workflows

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/tagkeys/internal/unlock"
)

// StatusOptions configures the status workflow.
type StatusOptions struct {
	Env

	// Input is the page to inspect.
	Input string
}

// FragmentStatus describes one protected fragment of a page.
type FragmentStatus struct {
	ID string

	// Tags are in declared order.
	Tags []string

	// Missing lists the tags without a stored password.
	Missing []string
}

// Available reports whether every required tag has a password.
func (f FragmentStatus) Available() bool {
	return len(f.Missing) == 0
}

// StatusResult contains the fragments of a page.
type StatusResult struct {
	Fragments []FragmentStatus
}

// AvailableCount counts fragments whose tags all have passwords.
func (r *StatusResult) AvailableCount() int {
	n := 0
	for _, f := range r.Fragments {
		if f.Available() {
			n++
		}
	}
	return n
}

// Status reports which fragments of a page the stored keys cover without
// decrypting anything.
func Status(ctx context.Context, opts StatusOptions) (*StatusResult, error) {
	doc, err := loadDocument(opts.Input)
	if err != nil {
		return nil, err
	}

	s, err := openSession(opts.Env)
	if err != nil {
		return nil, err
	}
	defer s.Close()

	keys, err := s.store.Load()
	if err != nil {
		return nil, fmt.Errorf("loading keys: %w", err)
	}

	fragments := doc.Fragments()
	available := make(map[string]bool)
	for _, f := range unlock.Available(keys, fragments) {
		available[f.ID()] = true
	}

	result := &StatusResult{}
	for _, f := range fragments {
		status := FragmentStatus{ID: f.ID(), Tags: f.RequiredTags()}
		if !available[f.ID()] {
			for _, tag := range f.RequiredTags() {
				if !keys.Has(tag) {
					status.Missing = append(status.Missing, tag)
				}
			}
		}
		result.Fragments = append(result.Fragments, status)
	}

	return result, nil
}
