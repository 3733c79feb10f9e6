// Package audit records what tagkeys did to keys and documents.
//
// Entries are appended as JSON Lines to the audit log in the data directory:
//
//	$XDG_DATA_HOME/tagkeys/audit.jsonl
//
// Each entry carries a UTC timestamp, the session ID of the running process,
// the operation name and operation-specific details such as the tag or the
// fragments that were unlocked. Passwords are never recorded.
//
// Logging is best-effort. A write failure never fails the operation.
package audit
