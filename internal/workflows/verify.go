package workflows

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/PolarWolf314/tagkeys/internal/audit"
	kerrors "github.com/PolarWolf314/tagkeys/internal/errors"
)

// VerifyOptions configures the verify workflow.
type VerifyOptions struct {
	Env

	// Input is the page whose key tests are run.
	Input string
}

// VerifyResult groups the tags of a page's key menu by verdict. Each slice
// is sorted.
type VerifyResult struct {
	Verified  []string
	Incorrect []string

	// NoKey lists tags with a key test but no stored password.
	NoKey []string
}

// Verify runs every key test of a page against the stored keys.
//
// Returns ErrNoFragments if the page has no key menu entries.
func Verify(ctx context.Context, opts VerifyOptions) (*VerifyResult, error) {
	doc, err := loadDocument(opts.Input)
	if err != nil {
		return nil, err
	}

	probes := doc.Probes()
	if len(probes) == 0 {
		return nil, fmt.Errorf("%w: %s has no key tests", kerrors.ErrNoFragments, opts.Input)
	}

	s, err := openSession(opts.Env)
	if err != nil {
		return nil, err
	}
	defer s.Close()

	tracker, err := s.tracker(doc)
	if err != nil {
		return nil, err
	}

	sweep, err := tracker.Sweep(ctx, nil, probes)
	if err != nil {
		return nil, fmt.Errorf("verifying %s: %w", opts.Input, err)
	}

	result := &VerifyResult{}
	for _, p := range probes {
		verified, probed := sweep.Probes[p.Tag()]
		switch {
		case !probed:
			result.NoKey = append(result.NoKey, p.Tag())
		case verified:
			result.Verified = append(result.Verified, p.Tag())
		default:
			result.Incorrect = append(result.Incorrect, p.Tag())
		}
	}
	sort.Strings(result.Verified)
	sort.Strings(result.Incorrect)
	sort.Strings(result.NoKey)

	s.audit(audit.Entry{
		Operation: audit.OpVerify,
		Document:  filepath.Base(opts.Input),
		Verified:  result.Verified,
		Incorrect: result.Incorrect,
	})

	return result, nil
}
