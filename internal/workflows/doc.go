// Package workflows provides high-level orchestration for tagkeys commands.
//
// Each workflow loads the configuration, opens the key store, performs one
// user-facing operation and records it in the audit log. The cmd package
// stays a thin layer: it parses flags, calls a workflow and formats the
// result.
//
//	result, err := workflows.Unlock(ctx, workflows.UnlockOptions{Input: "page.html"})
//	if errors.Is(err, kerrors.ErrNoFragments) {
//	    // nothing to unlock
//	}
//
// Per-fragment failures are part of the result, never an error. Errors are
// reserved for configuration, key store and document I/O problems.
package workflows
