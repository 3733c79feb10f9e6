package audit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/PolarWolf314/tagkeys/internal/configs"
	"github.com/google/uuid"
)

// Operation names.
const (
	OpAddKey    = "add-key"
	OpRemoveKey = "remove-key"
	OpUnlock    = "unlock"
	OpVerify    = "verify"
)

// Entry represents a single audit log entry.
type Entry struct {
	Timestamp string `json:"ts"` // RFC3339 with microseconds.
	Session   string `json:"session"`
	Operation string `json:"op"`

	Tag       string   `json:"tag,omitempty"`       // For add-key/remove-key.
	Document  string   `json:"document,omitempty"`  // For unlock/verify.
	Unlocked  []string `json:"unlocked,omitempty"`  // Fragment IDs.
	Remaining int      `json:"remaining,omitempty"` // Fragments still locked.
	Verified  []string `json:"verified,omitempty"`  // Tags whose fixture opened.
	Incorrect []string `json:"incorrect,omitempty"` // Tags whose fixture did not.
}

// SessionID identifies every entry written by this process.
var SessionID = uuid.NewString()

// Log appends an entry to the audit log. Failures are ignored.
func Log(entry Entry) {
	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format("2006-01-02T15:04:05.000000Z")
	}
	if entry.Session == "" {
		entry.Session = SessionID
	}

	logPath := LogPath()
	if logPath == "" {
		return
	}

	if err := os.MkdirAll(filepath.Dir(logPath), 0700); err != nil {
		return
	}

	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}

	_, _ = f.Write(append(data, '\n'))
}

// LogPath returns the path to the audit log file, or "" when settings are
// not initialized.
func LogPath() string {
	if configs.UserSettings == nil || configs.UserSettings.DataPath == "" {
		return ""
	}
	return configs.UserSettings.AuditLogPath()
}

// ReadEntries reads all entries from the audit log.
// Returns an empty slice if the log doesn't exist.
func ReadEntries() ([]Entry, error) {
	logPath := LogPath()
	if logPath == "" {
		return nil, nil
	}

	data, err := os.ReadFile(logPath)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return ParseEntries(data)
}

// ParseEntries parses JSON Lines data into audit entries.
// Malformed lines are skipped.
func ParseEntries(data []byte) ([]Entry, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var entries []Entry
	start := 0

	for i := 0; i <= len(data); i++ {
		if i == len(data) || data[i] == '\n' {
			line := data[start:i]
			start = i + 1

			if len(line) == 0 {
				continue
			}

			var entry Entry
			if err := json.Unmarshal(line, &entry); err != nil {
				continue
			}
			entries = append(entries, entry)
		}
	}

	return entries, nil
}
