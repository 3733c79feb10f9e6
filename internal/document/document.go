package document

import (
	"fmt"
	"io"
	"strings"

	kerrors "github.com/PolarWolf314/tagkeys/internal/errors"
	"github.com/PolarWolf314/tagkeys/internal/secrets"
	"github.com/PolarWolf314/tagkeys/internal/unlock"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const (
	fragmentClass = "secret"
	menuID        = "tag-keys-menu"
	labelClass    = "tag-keys-label"
	testClass     = "tag-keys-test"

	tagsAttr   = "tags"
	noncesAttr = "nonces"
)

// Document is a parsed page. It is not safe for concurrent use.
type Document struct {
	root      *html.Node
	fragments []*Fragment
	probes    []*Probe
}

// Fragment is a protected element of a Document.
type Fragment struct {
	id         string
	node       *html.Node
	ciphertext string
	tags       []string
	nonces     []string
}

func (f *Fragment) ID() string             { return f.id }
func (f *Fragment) Ciphertext() string     { return f.ciphertext }
func (f *Fragment) RequiredTags() []string { return f.tags }
func (f *Fragment) Nonces() []string       { return f.nonces }

// Replaced reports whether the fragment has been swapped for its plaintext.
func (f *Fragment) Replaced() bool { return f.node == nil }

// Probe is a key test entry of the key menu.
type Probe struct {
	tag     string
	input   *html.Node
	fixture *Fragment
}

func (p *Probe) Tag() string              { return p.tag }
func (p *Probe) Fixture() unlock.Fragment { return p.fixture }

// Parse reads an HTML page.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}

	d := &Document{root: root}
	d.collect(root)
	return d, nil
}

func (d *Document) collect(n *html.Node) {
	if n.Type == html.ElementNode {
		if hasClass(n, fragmentClass) {
			d.fragments = append(d.fragments, newFragment(fmt.Sprintf("secret-%d", len(d.fragments)), n))
			return
		}
		if getAttr(n, "id") == menuID {
			d.collectProbes(n)
			return
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		d.collect(c)
	}
}

func (d *Document) collectProbes(menu *html.Node) {
	for _, li := range findAll(menu, func(n *html.Node) bool { return n.DataAtom == atom.Li }) {
		label := findFirst(li, func(n *html.Node) bool { return hasClass(n, labelClass) })
		test := findFirst(li, func(n *html.Node) bool { return hasClass(n, testClass) })
		if label == nil || test == nil {
			continue
		}

		tag := strings.TrimSpace(nodeText(label))
		d.probes = append(d.probes, &Probe{
			tag:     tag,
			input:   findFirst(li, func(n *html.Node) bool { return n.DataAtom == atom.Input }),
			fixture: newFragment("tag-keys-test-"+tag, test),
		})
	}
}

func newFragment(id string, n *html.Node) *Fragment {
	return &Fragment{
		id:         id,
		node:       n,
		ciphertext: nodeText(n),
		tags:       secrets.SplitList(getAttr(n, tagsAttr)),
		nonces:     secrets.SplitList(getAttr(n, noncesAttr)),
	}
}

// Fragments returns the protected fragments in document order, including
// those already replaced.
func (d *Document) Fragments() []unlock.Fragment {
	out := make([]unlock.Fragment, len(d.fragments))
	for i, f := range d.fragments {
		out[i] = f
	}
	return out
}

// Fragment returns the fragment with the given ID.
func (d *Document) Fragment(id string) (*Fragment, bool) {
	for _, f := range d.fragments {
		if f.id == id {
			return f, true
		}
	}
	return nil, false
}

// Probes returns the key tests of the key menu in document order.
func (d *Document) Probes() []unlock.Probe {
	out := make([]unlock.Probe, len(d.probes))
	for i, p := range d.probes {
		out[i] = p
	}
	return out
}

// ReplaceFragment swaps the fragment element for plaintext parsed as HTML.
func (d *Document) ReplaceFragment(id string, plaintext string) error {
	f, ok := d.Fragment(id)
	if !ok || f.node == nil {
		return fmt.Errorf("%w: %s", kerrors.ErrUnknownFragment, id)
	}

	parent := f.node.Parent
	if parent == nil {
		return fmt.Errorf("%w: %s has no parent", kerrors.ErrUnknownFragment, id)
	}

	scope := parent
	if scope.Type != html.ElementNode {
		scope = &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	}

	nodes, err := html.ParseFragment(strings.NewReader(plaintext), scope)
	if err != nil {
		return fmt.Errorf("failed to parse plaintext of %s: %w", id, err)
	}

	for _, n := range nodes {
		parent.InsertBefore(n, f.node)
	}
	parent.RemoveChild(f.node)
	f.node = nil

	return nil
}

// MarkProbe records the verdict for tag on its key menu input. A verified
// input is disabled and titled "Unlocked"; otherwise it is re-enabled and
// titled "Incorrect". The input's value is always cleared.
func (d *Document) MarkProbe(tag string, verified bool) error {
	var probe *Probe
	for _, p := range d.probes {
		if p.tag == tag {
			probe = p
			break
		}
	}
	if probe == nil {
		return fmt.Errorf("%w %q", kerrors.ErrUnknownProbe, tag)
	}

	if probe.input == nil {
		return nil
	}

	removeAttr(probe.input, "value")
	if verified {
		setAttr(probe.input, "disabled", "")
		setAttr(probe.input, "title", "Unlocked")
	} else {
		removeAttr(probe.input, "disabled")
		setAttr(probe.input, "title", "Incorrect")
	}
	return nil
}

// Render writes the document as HTML.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.root)
}
