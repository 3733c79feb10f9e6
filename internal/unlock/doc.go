// Package unlock decides which encrypted fragments of a document can be
// revealed with the keys a viewer holds, and reveals them.
//
// A Tracker owns the set of fragments already unlocked. Each Sweep takes one
// snapshot of the key store, checks every key-test probe whose tag has a key,
// and decrypts every fragment whose required tags are all present. Results
// are pushed to a Renderer. Fragments that fail stay untouched and are
// reported in the SweepResult; one bad fragment never stops a sweep.
//
// Sweeps are idempotent. A fragment is replaced at most once, and a probe's
// verdict is only rendered when it changes.
package unlock
