package workflows

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/PolarWolf314/tagkeys/internal/audit"
	kerrors "github.com/PolarWolf314/tagkeys/internal/errors"
)

func TestUnlockWritesOutput(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	page := writePage(t, "alpha")

	if _, err := AddKey(ctx, AddKeyOptions{Env: env, Tag: "alpha", Password: pagePasswords["alpha"]}); err != nil {
		t.Fatalf("AddKey failed: %v", err)
	}

	result, err := Unlock(ctx, UnlockOptions{Env: env, Input: page})
	if err != nil {
		t.Fatalf("Unlock failed: %v", err)
	}

	if result.Output != DefaultOutputPath(page) {
		t.Errorf("expected default output path, got %q", result.Output)
	}
	if got := result.Sweep.Unlocked(); !reflect.DeepEqual(got, []string{"secret-0"}) {
		t.Errorf("expected secret-0 unlocked, got %v", got)
	}
	if result.Sweep.Remaining() != 1 {
		t.Errorf("expected 1 fragment remaining, got %d", result.Sweep.Remaining())
	}

	data, err := os.ReadFile(result.Output)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "<p>for alpha</p>") {
		t.Errorf("expected revealed fragment in output")
	}
	if strings.Contains(out, "for alpha and beta") {
		t.Errorf("alpha+beta fragment should stay encrypted")
	}
	if strings.Contains(out, pagePasswords["alpha"]) {
		t.Errorf("output contains a password")
	}

	info, err := os.Stat(result.Output)
	if err != nil {
		t.Fatalf("stat output: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("expected output permissions 0600, got %o", perm)
	}

	entries, err := audit.ReadEntries()
	if err != nil {
		t.Fatalf("ReadEntries failed: %v", err)
	}
	last := entries[len(entries)-1]
	if last.Operation != audit.OpUnlock || last.Document != "page.html" || last.Remaining != 1 {
		t.Errorf("unexpected audit entry %+v", last)
	}
}

func TestUnlockAllLayers(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	page := writePage(t)

	for _, tag := range []string{"alpha", "beta"} {
		if _, err := AddKey(ctx, AddKeyOptions{Env: env, Tag: tag, Password: pagePasswords[tag]}); err != nil {
			t.Fatalf("AddKey failed: %v", err)
		}
	}

	output := filepath.Join(t.TempDir(), "out.html")
	result, err := Unlock(ctx, UnlockOptions{Env: env, Input: page, Output: output})
	if err != nil {
		t.Fatalf("Unlock failed: %v", err)
	}
	if result.Sweep.Remaining() != 0 {
		t.Errorf("expected everything unlocked, got %d remaining", result.Sweep.Remaining())
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	if strings.Contains(string(data), `class="secret"`) {
		t.Errorf("expected no protected fragments left")
	}
}

func TestUnlockDryRun(t *testing.T) {
	env := setupEnv(t)
	page := writePage(t)

	result, err := Unlock(context.Background(), UnlockOptions{Env: env, Input: page, DryRun: true})
	if err != nil {
		t.Fatalf("Unlock failed: %v", err)
	}
	if !result.DryRun {
		t.Error("expected dry run result")
	}
	if _, err := os.Stat(result.Output); !os.IsNotExist(err) {
		t.Errorf("dry run should not write %s", result.Output)
	}
	if result.Sweep.Remaining() != 2 {
		t.Errorf("expected both fragments locked without keys, got %d", result.Sweep.Remaining())
	}
}

func TestUnlockNoFragments(t *testing.T) {
	env := setupEnv(t)
	page := filepath.Join(t.TempDir(), "plain.html")
	if err := os.WriteFile(page, []byte("<p>nothing here</p>"), 0600); err != nil {
		t.Fatalf("failed to write page: %v", err)
	}

	_, err := Unlock(context.Background(), UnlockOptions{Env: env, Input: page})
	if !errors.Is(err, kerrors.ErrNoFragments) {
		t.Errorf("expected ErrNoFragments, got %v", err)
	}
}

func TestUnlockMissingInput(t *testing.T) {
	env := setupEnv(t)

	_, err := Unlock(context.Background(), UnlockOptions{Env: env, Input: filepath.Join(t.TempDir(), "absent.html")})
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestDefaultOutputPath(t *testing.T) {
	tests := map[string]string{
		"page.html":          "page.unlocked.html",
		"dir/notes.htm":      "dir/notes.unlocked.htm",
		"noext":              "noext.unlocked",
		"/abs/path/a.b.html": "/abs/path/a.b.unlocked.html",
	}
	for in, want := range tests {
		if got := DefaultOutputPath(in); got != want {
			t.Errorf("DefaultOutputPath(%q) = %q, want %q", in, got, want)
		}
	}
}
