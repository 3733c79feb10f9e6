package workflows

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/PolarWolf314/tagkeys/internal/audit"
	kerrors "github.com/PolarWolf314/tagkeys/internal/errors"
	"github.com/PolarWolf314/tagkeys/internal/unlock"
)

// UnlockOptions configures the unlock workflow.
type UnlockOptions struct {
	Env

	// Input is the page to unlock.
	Input string

	// Output is where the unlocked page is written. Defaults to
	// DefaultOutputPath(Input).
	Output string

	// DryRun reports what would be unlocked without writing anything.
	DryRun bool
}

// UnlockResult contains the outcome of an unlock operation.
type UnlockResult struct {
	Input  string
	Output string
	DryRun bool

	// Sweep holds the per-fragment outcomes and probe verdicts.
	Sweep *unlock.SweepResult
}

// Unlock reveals every fragment of a page the stored keys can open and
// writes the result.
//
// Returns ErrNoFragments if the page has no protected fragments.
func Unlock(ctx context.Context, opts UnlockOptions) (*UnlockResult, error) {
	doc, err := loadDocument(opts.Input)
	if err != nil {
		return nil, err
	}

	fragments := doc.Fragments()
	if len(fragments) == 0 {
		return nil, kerrors.ErrNoFragments
	}

	s, err := openSession(opts.Env)
	if err != nil {
		return nil, err
	}
	defer s.Close()

	output := opts.Output
	if output == "" {
		output = DefaultOutputPath(opts.Input)
	}

	tracker, err := s.tracker(doc)
	if err != nil {
		return nil, err
	}

	sweep, err := tracker.Sweep(ctx, fragments, doc.Probes())
	if err != nil {
		return nil, fmt.Errorf("unlocking %s: %w", opts.Input, err)
	}
	s.log.Infof("Unlocked %d of %d fragments", len(sweep.Unlocked()), len(fragments))

	result := &UnlockResult{
		Input:  opts.Input,
		Output: output,
		DryRun: opts.DryRun,
		Sweep:  sweep,
	}

	if opts.DryRun {
		return result, nil
	}

	if err := writeDocument(doc, output); err != nil {
		return nil, err
	}

	s.audit(audit.Entry{
		Operation: audit.OpUnlock,
		Document:  filepath.Base(opts.Input),
		Unlocked:  sweep.Unlocked(),
		Remaining: sweep.Remaining(),
	})

	return result, nil
}
