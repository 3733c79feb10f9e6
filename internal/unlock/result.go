package unlock

// Outcome is what a sweep did with one fragment.
type Outcome int

const (
	// Pending means the sweep stopped before the fragment was attempted.
	Pending Outcome = iota
	// Unlocked means the fragment was decrypted and replaced in this sweep.
	Unlocked
	// AlreadyUnlocked means an earlier sweep replaced it.
	AlreadyUnlocked
	MissingKey
	AuthenticationFailed
	Malformed
	// RenderFailed means the fragment decrypted but could not be replaced.
	RenderFailed
)

func (o Outcome) String() string {
	switch o {
	case Pending:
		return "pending"
	case Unlocked:
		return "unlocked"
	case AlreadyUnlocked:
		return "already unlocked"
	case MissingKey:
		return "missing key"
	case AuthenticationFailed:
		return "authentication failed"
	case Malformed:
		return "malformed"
	case RenderFailed:
		return "render failed"
	default:
		return "unknown"
	}
}

// FragmentResult records the outcome for one fragment. Err is set for the
// failure outcomes and for fragments left pending by a cancelled sweep.
type FragmentResult struct {
	ID      string
	Outcome Outcome
	Err     error
}

// SweepResult collects the outcome of one sweep.
type SweepResult struct {
	// Fragments are in the order they were passed to Sweep.
	Fragments []FragmentResult
	// Probes maps each probed tag to whether its fixture verified. Tags
	// without a key are absent.
	Probes map[string]bool
}

// Unlocked returns the IDs of fragments replaced in this sweep.
func (r *SweepResult) Unlocked() []string {
	return r.IDs(Unlocked)
}

// IDs returns the IDs of fragments with the given outcome.
func (r *SweepResult) IDs(outcome Outcome) []string {
	var ids []string
	for _, f := range r.Fragments {
		if f.Outcome == outcome {
			ids = append(ids, f.ID)
		}
	}
	return ids
}

// Remaining counts fragments still locked after the sweep.
func (r *SweepResult) Remaining() int {
	n := 0
	for _, f := range r.Fragments {
		if f.Outcome != Unlocked && f.Outcome != AlreadyUnlocked {
			n++
		}
	}
	return n
}
