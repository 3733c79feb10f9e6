package audit

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PolarWolf314/tagkeys/internal/configs"
)

func useTempSettings(t *testing.T) string {
	t.Helper()
	tempDir := t.TempDir()

	original := configs.UserSettings
	configs.UserSettings = &configs.Settings{
		ConfigPath: filepath.Join(tempDir, "config"),
		DataPath:   filepath.Join(tempDir, "data"),
	}
	t.Cleanup(func() {
		configs.UserSettings = original
	})

	return configs.UserSettings.AuditLogPath()
}

func TestLog_CreatesFileWithOwnerOnlyPermissions(t *testing.T) {
	logPath := useTempSettings(t)

	Log(Entry{Operation: OpAddKey, Tag: "guild"})

	info, err := os.Stat(logPath)
	if err != nil {
		t.Fatalf("Audit log file was not created: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("Expected permissions 0600, got %o", perm)
	}
}

func TestLog_AppendsEntries(t *testing.T) {
	useTempSettings(t)

	Log(Entry{Operation: OpAddKey, Tag: "alpha"})
	Log(Entry{Operation: OpUnlock, Document: "page.html", Unlocked: []string{"secret-0"}, Remaining: 1})
	Log(Entry{Operation: OpRemoveKey, Tag: "alpha"})

	entries, err := ReadEntries()
	if err != nil {
		t.Fatalf("ReadEntries failed: %v", err)
	}

	if len(entries) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(entries))
	}

	wantOps := []string{OpAddKey, OpUnlock, OpRemoveKey}
	for i, op := range wantOps {
		if entries[i].Operation != op {
			t.Errorf("Entry %d: expected op %q, got %q", i, op, entries[i].Operation)
		}
		if entries[i].Session != SessionID {
			t.Errorf("Entry %d: expected session %q, got %q", i, SessionID, entries[i].Session)
		}
		if entries[i].Timestamp == "" {
			t.Errorf("Entry %d: expected timestamp to be set", i)
		}
	}

	if entries[1].Remaining != 1 || len(entries[1].Unlocked) != 1 {
		t.Errorf("Unexpected unlock entry: %+v", entries[1])
	}
}

func TestLog_PreservesExplicitFields(t *testing.T) {
	useTempSettings(t)

	Log(Entry{Timestamp: "2024-01-01T00:00:00.000000Z", Session: "fixed", Operation: OpVerify})

	entries, err := ReadEntries()
	if err != nil {
		t.Fatalf("ReadEntries failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}
	if entries[0].Timestamp != "2024-01-01T00:00:00.000000Z" || entries[0].Session != "fixed" {
		t.Errorf("Explicit fields were overwritten: %+v", entries[0])
	}
}

func TestReadEntries_MissingLog(t *testing.T) {
	useTempSettings(t)

	entries, err := ReadEntries()
	if err != nil {
		t.Fatalf("ReadEntries failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected no entries, got %d", len(entries))
	}
}

func TestLog_NeverWritesPasswordField(t *testing.T) {
	logPath := useTempSettings(t)

	Log(Entry{Operation: OpAddKey, Tag: "guild"})

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("failed to read log: %v", err)
	}
	if strings.Contains(string(data), "password") {
		t.Errorf("audit log mentions a password: %s", data)
	}
}

func TestParseEntries(t *testing.T) {
	tests := []struct {
		name string
		data string
		want int
	}{
		{name: "empty", data: "", want: 0},
		{name: "single", data: `{"ts":"t","op":"unlock"}` + "\n", want: 1},
		{name: "no trailing newline", data: `{"op":"a"}` + "\n" + `{"op":"b"}`, want: 2},
		{name: "blank lines", data: "\n\n" + `{"op":"a"}` + "\n\n", want: 1},
		{name: "malformed skipped", data: `{"op":"a"}` + "\n{broken\n" + `{"op":"b"}` + "\n", want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := ParseEntries([]byte(tt.data))
			if err != nil {
				t.Fatalf("ParseEntries failed: %v", err)
			}
			if len(entries) != tt.want {
				t.Errorf("Expected %d entries, got %d", tt.want, len(entries))
			}
		})
	}
}
