// Package cmd contains testing utilities shared between command tests.
// This file provides functions for isolating settings, capturing output and
// running the CLI.
package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PolarWolf314/tagkeys/internal/configs"
	"github.com/PolarWolf314/tagkeys/internal/secrets"
	"github.com/fatih/color"
)

// setupTestEnvironment points settings at temporary directories and returns
// the data directory.
func setupTestEnvironment(t *testing.T) string {
	t.Helper()
	t.Setenv(configs.StoreEnv, "")
	t.Setenv("NO_COLOR", "1")

	tempDir := t.TempDir()
	originalSettings := configs.UserSettings
	originalNoColor := color.NoColor
	configs.UserSettings = &configs.Settings{
		ConfigPath: filepath.Join(tempDir, "config"),
		DataPath:   filepath.Join(tempDir, "data"),
	}
	color.NoColor = true

	t.Cleanup(func() {
		configs.UserSettings = originalSettings
		color.NoColor = originalNoColor
		ResetGlobalState()
	})

	return configs.UserSettings.DataPath
}

// captureOutput captures both stdout and stderr during function execution.
func captureOutput(fn func() error) (string, error) {
	originalStdout := os.Stdout
	originalStderr := os.Stderr

	stdoutReader, stdoutWriter, _ := os.Pipe()
	stderrReader, stderrWriter, _ := os.Pipe()

	os.Stdout = stdoutWriter
	os.Stderr = stderrWriter

	outputChan := make(chan string, 2)
	for _, r := range []io.Reader{stdoutReader, stderrReader} {
		go func(r io.Reader) {
			var buf bytes.Buffer
			_, _ = io.Copy(&buf, r)
			outputChan <- buf.String()
		}(r)
	}

	err := fn()

	stdoutWriter.Close()
	stderrWriter.Close()

	os.Stdout = originalStdout
	os.Stderr = originalStderr

	first := <-outputChan
	second := <-outputChan

	return first + second, err
}

// runCLI executes the root command with args and returns everything it
// printed.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	ResetGlobalState()

	return captureOutput(func() error {
		RootCmd.SetArgs(args)
		return RootCmd.Execute()
	})
}

// withStdin replaces os.Stdin with input for the duration of fn.
func withStdin(t *testing.T, input string, fn func()) {
	t.Helper()

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	if _, err := w.WriteString(input); err != nil {
		t.Fatalf("failed to write stdin: %v", err)
	}
	w.Close()

	original := os.Stdin
	os.Stdin = r
	defer func() {
		os.Stdin = original
		r.Close()
	}()

	fn()
}

var testPasswords = map[string]string{
	"alpha": "a-password",
	"beta":  "b-password",
	"guild": "guild-password",
}

// writeTestPage writes a page with a key test for guild and fragments for
// alpha and alpha+beta.
func writeTestPage(t *testing.T) string {
	t.Helper()

	span := func(class, plaintext string, tags ...string) string {
		payload, tagsAttr, noncesAttr, err := secrets.EncryptLayered(plaintext, tags, testPasswords)
		if err != nil {
			t.Fatalf("EncryptLayered failed: %v", err)
		}
		return fmt.Sprintf(`<span class="%s" tags="%s" nonces="%s">%s</span>`, class, tagsAttr, noncesAttr, payload)
	}

	page := strings.Join([]string{
		`<!DOCTYPE html><html><head><title>Campaign</title></head><body>`,
		`<div id="tag-keys-menu"><ul><li><span class="tag-keys-label">guild</span><input type="password"/>`,
		span("tag-keys-test", "correct", "guild"),
		`</li></ul></div>`,
		`<div>` + span("secret", "<p>Alpha notes</p>", "alpha") + `</div>`,
		`<div>` + span("secret", "<p>Shared notes</p>", "alpha", "beta") + `</div>`,
		`</body></html>`,
	}, "")

	path := filepath.Join(t.TempDir(), "campaign.html")
	if err := os.WriteFile(path, []byte(page), 0600); err != nil {
		t.Fatalf("failed to write page: %v", err)
	}
	return path
}
