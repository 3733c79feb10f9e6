package workflows

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PolarWolf314/tagkeys/internal/configs"
	logger "github.com/PolarWolf314/tagkeys/internal/logging"
	"github.com/PolarWolf314/tagkeys/internal/secrets"
)

var pagePasswords = map[string]string{
	"alpha": "a-password",
	"beta":  "b-password",
	"guild": "guild-password",
}

// setupEnv points settings at a temporary directory and returns an Env using
// the default file store there.
func setupEnv(t *testing.T) Env {
	t.Helper()
	t.Setenv(configs.StoreEnv, "")

	tempDir := t.TempDir()
	original := configs.UserSettings
	configs.UserSettings = &configs.Settings{
		ConfigPath: filepath.Join(tempDir, "config"),
		DataPath:   filepath.Join(tempDir, "data"),
	}
	t.Cleanup(func() {
		configs.UserSettings = original
	})

	return Env{Logger: logger.Logger{Out: &bytes.Buffer{}, Err: &bytes.Buffer{}}}
}

func secretSpan(t *testing.T, class, plaintext string, tags ...string) string {
	t.Helper()
	payload, tagsAttr, noncesAttr, err := secrets.EncryptLayered(plaintext, tags, pagePasswords)
	if err != nil {
		t.Fatalf("EncryptLayered failed: %v", err)
	}
	return fmt.Sprintf(`<span class="%s" tags="%s" nonces="%s">%s</span>`, class, tagsAttr, noncesAttr, payload)
}

// writePage writes a page with fragments for alpha and alpha+beta and key
// tests for the given tags.
func writePage(t *testing.T, menuTags ...string) string {
	t.Helper()

	var sb strings.Builder
	sb.WriteString(`<!DOCTYPE html><html><head><title>Notes</title></head><body>`)
	sb.WriteString(`<div id="tag-keys-menu"><ul>`)
	for _, tag := range menuTags {
		sb.WriteString(`<li><span class="tag-keys-label">` + tag + `</span><input type="password"/>`)
		sb.WriteString(secretSpan(t, "tag-keys-test", "correct", tag))
		sb.WriteString(`</li>`)
	}
	sb.WriteString(`</ul></div>`)
	sb.WriteString(`<div>` + secretSpan(t, "secret", "<p>for alpha</p>", "alpha") + `</div>`)
	sb.WriteString(`<div>` + secretSpan(t, "secret", "<p>for alpha and beta</p>", "alpha", "beta") + `</div>`)
	sb.WriteString(`</body></html>`)

	path := filepath.Join(t.TempDir(), "page.html")
	if err := os.WriteFile(path, []byte(sb.String()), 0600); err != nil {
		t.Fatalf("failed to write page: %v", err)
	}
	return path
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := configs.UserSettings.ConfigFile()
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}
