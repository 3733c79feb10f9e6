package workflows

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/PolarWolf314/tagkeys/internal/audit"
	kerrors "github.com/PolarWolf314/tagkeys/internal/errors"
)

const auditTimeLayout = "2006-01-02T15:04:05.000000Z"

// LogOptions configures the log workflow.
type LogOptions struct {
	// Limit is the maximum number of entries to return. 0 means no limit.
	Limit int

	// Reverse orders entries from most recent to oldest when true.
	Reverse bool

	// Tag filters entries by tag.
	Tag string

	// Operations filters entries by operation (comma-separated).
	Operations string

	// Since filters entries on or after this date (YYYY-MM-DD).
	Since string

	// Until filters entries on or before this date (YYYY-MM-DD).
	Until string
}

// LogResult contains the outcome of a log operation.
type LogResult struct {
	Entries []audit.Entry

	// TotalEntriesBeforeFilter is the count of entries before filtering.
	TotalEntriesBeforeFilter int
}

// Log reads and filters the audit log.
//
// Returns ErrNoAuditLog if nothing has been logged yet.
// Returns ErrInvalidDateFormat if a date filter is malformed.
func Log(ctx context.Context, opts LogOptions) (*LogResult, error) {
	logPath := audit.LogPath()
	if logPath == "" {
		return nil, kerrors.ErrNoAuditLog
	}

	data, err := os.ReadFile(logPath)
	if os.IsNotExist(err) {
		return nil, kerrors.ErrNoAuditLog
	}
	if err != nil {
		return nil, fmt.Errorf("reading audit log: %w", err)
	}

	entries, err := audit.ParseEntries(data)
	if err != nil {
		return nil, fmt.Errorf("parsing audit log: %w", err)
	}

	result := &LogResult{TotalEntriesBeforeFilter: len(entries)}

	filtered := entries

	if opts.Tag != "" {
		filtered = filterEntries(filtered, func(e audit.Entry) bool { return e.Tag == opts.Tag })
	}

	if opts.Operations != "" {
		ops := make(map[string]bool)
		for _, op := range strings.Split(opts.Operations, ",") {
			ops[strings.ToLower(strings.TrimSpace(op))] = true
		}
		filtered = filterEntries(filtered, func(e audit.Entry) bool { return ops[strings.ToLower(e.Operation)] })
	}

	if opts.Since != "" {
		since, err := time.Parse("2006-01-02", opts.Since)
		if err != nil {
			return nil, fmt.Errorf("%w: --since must be YYYY-MM-DD", kerrors.ErrInvalidDateFormat)
		}
		filtered = filterEntries(filtered, func(e audit.Entry) bool {
			t, ok := parseTimestamp(e.Timestamp)
			return ok && !t.Before(since)
		})
	}

	if opts.Until != "" {
		until, err := time.Parse("2006-01-02", opts.Until)
		if err != nil {
			return nil, fmt.Errorf("%w: --until must be YYYY-MM-DD", kerrors.ErrInvalidDateFormat)
		}
		// Include the whole day.
		until = until.Add(24*time.Hour - time.Nanosecond)
		filtered = filterEntries(filtered, func(e audit.Entry) bool {
			t, ok := parseTimestamp(e.Timestamp)
			return ok && !t.After(until)
		})
	}

	if opts.Reverse {
		for i, j := 0, len(filtered)-1; i < j; i, j = i+1, j-1 {
			filtered[i], filtered[j] = filtered[j], filtered[i]
		}
	}

	if opts.Limit > 0 && len(filtered) > opts.Limit {
		if opts.Reverse {
			filtered = filtered[:opts.Limit]
		} else {
			// Keep the most recent.
			filtered = filtered[len(filtered)-opts.Limit:]
		}
	}

	result.Entries = filtered
	return result, nil
}

func filterEntries(entries []audit.Entry, keep func(audit.Entry) bool) []audit.Entry {
	var result []audit.Entry
	for _, e := range entries {
		if keep(e) {
			result = append(result, e)
		}
	}
	return result
}

func parseTimestamp(ts string) (time.Time, bool) {
	t, err := time.Parse(auditTimeLayout, ts)
	if err != nil {
		t, err = time.Parse(time.RFC3339, ts)
	}
	return t, err == nil
}

// FormatDateTime formats a timestamp as YYYY-MM-DD HH:MM:SS.
func FormatDateTime(ts string) string {
	t, ok := parseTimestamp(ts)
	if !ok {
		if len(ts) >= 19 {
			return ts[:19]
		}
		return ts
	}
	return t.Format("2006-01-02 15:04:05")
}

// FormatDetails summarizes the operation-specific fields of an entry.
func FormatDetails(e audit.Entry) string {
	switch e.Operation {
	case audit.OpAddKey, audit.OpRemoveKey:
		return e.Tag
	case audit.OpUnlock:
		return fmt.Sprintf("%s, %d unlocked, %d locked", e.Document, len(e.Unlocked), e.Remaining)
	case audit.OpVerify:
		return fmt.Sprintf("%s, %d verified, %d incorrect", e.Document, len(e.Verified), len(e.Incorrect))
	default:
		return ""
	}
}
