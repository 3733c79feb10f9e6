package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestKeysAddListRemove(t *testing.T) {
	setupTestEnvironment(t)

	output, err := runCLI(t, "keys", "add", "guild", "a-long-password")
	if err != nil {
		t.Fatalf("keys add failed: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Stored a key for 'guild'") {
		t.Errorf("unexpected add output: %s", output)
	}

	output, err = runCLI(t, "keys", "add", "guild", "another-password")
	if err != nil {
		t.Fatalf("keys add failed: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Replaced the key for 'guild'") {
		t.Errorf("unexpected replace output: %s", output)
	}

	output, err = runCLI(t, "keys", "list")
	if err != nil {
		t.Fatalf("keys list failed: %v\n%s", err, output)
	}
	if !strings.Contains(output, "'guild'") {
		t.Errorf("expected guild in list: %s", output)
	}
	if strings.Contains(output, "another-password") {
		t.Errorf("list leaked a password: %s", output)
	}
	if !strings.Contains(output, "a*******") {
		t.Errorf("expected masked password in list: %s", output)
	}

	output, err = runCLI(t, "keys", "remove", "guild")
	if err != nil {
		t.Fatalf("keys remove failed: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Removed the key for 'guild'") {
		t.Errorf("unexpected remove output: %s", output)
	}

	output, err = runCLI(t, "keys", "remove", "guild")
	if err != nil {
		t.Fatalf("removing a missing key should not fail the command: %v", err)
	}
	if !strings.Contains(output, "No key stored for 'guild'") {
		t.Errorf("unexpected output for missing key: %s", output)
	}
}

func TestKeysAddFromStdin(t *testing.T) {
	setupTestEnvironment(t)

	var output string
	var err error
	withStdin(t, "piped secret\n", func() {
		output, err = runCLI(t, "keys", "add", "alpha", "--password-stdin")
	})
	if err != nil {
		t.Fatalf("keys add failed: %v\n%s", err, output)
	}

	output, err = runCLI(t, "keys", "list")
	if err != nil {
		t.Fatalf("keys list failed: %v", err)
	}
	if !strings.Contains(output, "p*******") {
		t.Errorf("expected the piped password to be stored, got %s", output)
	}
}

func TestUnlockCommand(t *testing.T) {
	setupTestEnvironment(t)
	page := writeTestPage(t)

	if _, err := runCLI(t, "keys", "add", "alpha", testPasswords["alpha"]); err != nil {
		t.Fatalf("keys add failed: %v", err)
	}
	if _, err := runCLI(t, "keys", "add", "guild", testPasswords["guild"]); err != nil {
		t.Fatalf("keys add failed: %v", err)
	}

	output, err := runCLI(t, "unlock", page, "--dry-run")
	if err != nil {
		t.Fatalf("unlock --dry-run failed: %v\n%s", err, output)
	}
	if !strings.Contains(output, "[dry-run] Would unlock 1 of 2 fragments") {
		t.Errorf("unexpected dry-run output: %s", output)
	}
	unlockedPath := strings.TrimSuffix(page, ".html") + ".unlocked.html"
	if _, err := os.Stat(unlockedPath); !os.IsNotExist(err) {
		t.Fatalf("dry run wrote %s", unlockedPath)
	}

	output, err = runCLI(t, "unlock", page)
	if err != nil {
		t.Fatalf("unlock failed: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Unlocked 1 of 2 fragments") {
		t.Errorf("unexpected unlock output: %s", output)
	}
	if !strings.Contains(output, "needs a key for 'beta'") {
		t.Errorf("expected missing beta to be reported: %s", output)
	}

	data, err := os.ReadFile(unlockedPath)
	if err != nil {
		t.Fatalf("failed to read unlocked page: %v", err)
	}
	if !strings.Contains(string(data), "<p>Alpha notes</p>") {
		t.Errorf("expected revealed fragment in %s", unlockedPath)
	}
	if !strings.Contains(string(data), `title="Unlocked"`) {
		t.Errorf("expected guild key test marked unlocked")
	}

	custom := filepath.Join(t.TempDir(), "custom.html")
	if _, err := runCLI(t, "unlock", page, "-o", custom); err != nil {
		t.Fatalf("unlock -o failed: %v", err)
	}
	if _, err := os.Stat(custom); err != nil {
		t.Errorf("expected output at %s: %v", custom, err)
	}
}

func TestKeysAddWithPage(t *testing.T) {
	setupTestEnvironment(t)
	page := writeTestPage(t)
	custom := filepath.Join(t.TempDir(), "out.html")

	output, err := runCLI(t, "keys", "add", "alpha", testPasswords["alpha"], "--page", page, "-o", custom)
	if err != nil {
		t.Fatalf("keys add --page failed: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Stored a key for 'alpha'") {
		t.Errorf("unexpected add output: %s", output)
	}
	if !strings.Contains(output, "Unlocked 1 of 2 fragments") {
		t.Errorf("expected sweep summary: %s", output)
	}
	if !strings.Contains(output, "needs a key for 'beta'") {
		t.Errorf("expected missing beta to be reported: %s", output)
	}

	data, err := os.ReadFile(custom)
	if err != nil {
		t.Fatalf("failed to read unlocked page: %v", err)
	}
	if !strings.Contains(string(data), "<p>Alpha notes</p>") {
		t.Errorf("expected revealed fragment in %s", custom)
	}
}

func TestVerifyAndStatusCommands(t *testing.T) {
	setupTestEnvironment(t)
	page := writeTestPage(t)

	if _, err := runCLI(t, "keys", "add", "guild", "wrong"); err != nil {
		t.Fatalf("keys add failed: %v", err)
	}
	if _, err := runCLI(t, "keys", "add", "alpha", "whatever"); err != nil {
		t.Fatalf("keys add failed: %v", err)
	}

	output, err := runCLI(t, "keys", "verify", page)
	if err != nil {
		t.Fatalf("keys verify failed: %v\n%s", err, output)
	}
	if !strings.Contains(output, "'guild' incorrect") {
		t.Errorf("expected guild reported incorrect: %s", output)
	}

	output, err = runCLI(t, "status", page)
	if err != nil {
		t.Fatalf("status failed: %v\n%s", err, output)
	}
	if !strings.Contains(output, "1 of 2 fragments can be unlocked") {
		t.Errorf("unexpected status output: %s", output)
	}
}

func TestMissingPageIsReported(t *testing.T) {
	setupTestEnvironment(t)

	output, err := runCLI(t, "unlock", filepath.Join(t.TempDir(), "absent.html"))
	if err != nil {
		t.Fatalf("a missing page should not fail the command: %v", err)
	}
	if !strings.Contains(output, "Page not found") {
		t.Errorf("unexpected output: %s", output)
	}
}

func TestLogCommand(t *testing.T) {
	setupTestEnvironment(t)

	output, err := runCLI(t, "log")
	if err != nil {
		t.Fatalf("log failed: %v", err)
	}
	if !strings.Contains(output, "No audit log entries found.") {
		t.Errorf("unexpected empty log output: %s", output)
	}

	if _, err := runCLI(t, "keys", "add", "guild", "password"); err != nil {
		t.Fatalf("keys add failed: %v", err)
	}

	output, err = runCLI(t, "log", "--tag", "guild")
	if err != nil {
		t.Fatalf("log failed: %v", err)
	}
	if !strings.Contains(output, "add-key") || !strings.Contains(output, "guild") {
		t.Errorf("expected add-key entry: %s", output)
	}
	if strings.Contains(output, "password") {
		t.Errorf("log leaked a password: %s", output)
	}
}
