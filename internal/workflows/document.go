package workflows

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/PolarWolf314/tagkeys/internal/document"
)

func loadDocument(path string) (*document.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening document: %w", err)
	}
	defer f.Close()

	doc, err := document.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return doc, nil
}

// writeDocument renders doc to path, readable only by the owner since the
// output holds plaintext.
func writeDocument(doc *document.Document, path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}

	if err := doc.Render(f); err != nil {
		f.Close()
		return fmt.Errorf("writing output: %w", err)
	}
	return f.Close()
}

// DefaultOutputPath returns page.unlocked.html for page.html.
func DefaultOutputPath(input string) string {
	ext := filepath.Ext(input)
	return strings.TrimSuffix(input, ext) + ".unlocked" + ext
}
