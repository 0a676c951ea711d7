package dom

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Reserved identifiers shared between the page markup and this tool.
const (
	// DefaultMarkerAttr flags an element as a navigation entry.
	DefaultMarkerAttr = "data-nav"
	// DefaultContainerID identifies the designated insertion point.
	DefaultContainerID = "nav-root"
)

// HTMLDocument is the production Document backed by a parsed HTML tree.
type HTMLDocument struct {
	root        *html.Node
	location    string
	markerAttr  string
	containerID string
}

// HTMLOption adjusts the reserved identifiers an HTMLDocument looks for.
type HTMLOption func(*HTMLDocument)

// WithMarkerAttr overrides the navigation marker attribute.
func WithMarkerAttr(attr string) HTMLOption {
	return func(d *HTMLDocument) { d.markerAttr = attr }
}

// WithContainerID overrides the designated insertion point id.
func WithContainerID(id string) HTMLOption {
	return func(d *HTMLDocument) { d.containerID = id }
}

// ParseDocument parses a full HTML page. location is the path component of
// the URL the page is (or will be) served at.
func ParseDocument(r io.Reader, location string, opts ...HTMLOption) (*HTMLDocument, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}
	d := &HTMLDocument{
		root:        root,
		location:    location,
		markerAttr:  DefaultMarkerAttr,
		containerID: DefaultContainerID,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Location returns the path the document was parsed for.
func (d *HTMLDocument) Location() string { return d.location }

// NavEntries walks the tree and collects every element carrying the marker
// attribute and an href, in document order.
func (d *HTMLDocument) NavEntries() []NavEntry {
	var entries []NavEntry
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && hasAttr(n, d.markerAttr) {
			if href, ok := attrVal(n, "href"); ok {
				entries = append(entries, NavEntry{Href: href, Element: nodeHandle{n}})
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(d.root)
	return entries
}

// InsertFragment parses markup in body context and prepends its first
// element node to the container. See Document.InsertFragment.
func (d *HTMLDocument) InsertFragment(markup string) error {
	ctx := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(markup), ctx)
	if err != nil {
		return fmt.Errorf("parsing fragment: %w", err)
	}
	var first *html.Node
	for _, n := range nodes {
		if n.Type == html.ElementNode {
			first = n
			break
		}
	}
	if first == nil {
		return ErrEmptyFragment
	}
	if first.Parent != nil {
		first.Parent.RemoveChild(first)
	}

	container := d.container()
	if container == nil {
		return fmt.Errorf("document has no insertion container")
	}
	if container.FirstChild != nil {
		container.InsertBefore(first, container.FirstChild)
	} else {
		container.AppendChild(first)
	}
	return nil
}

// Render serializes the document back to markup.
func (d *HTMLDocument) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

// container resolves the insertion point: the element with the reserved id
// if the page declares one, the body element otherwise.
func (d *HTMLDocument) container() *html.Node {
	if n := d.findByID(d.root, d.containerID); n != nil {
		return n
	}
	return d.findElement(d.root, atom.Body)
}

func (d *HTMLDocument) findByID(n *html.Node, id string) *html.Node {
	if n.Type == html.ElementNode {
		if v, ok := attrVal(n, "id"); ok && v == id {
			return n
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := d.findByID(c, id); found != nil {
			return found
		}
	}
	return nil
}

func (d *HTMLDocument) findElement(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := d.findElement(c, a); found != nil {
			return found
		}
	}
	return nil
}

// nodeHandle implements ElementHandle over a tree node's class attribute.
type nodeHandle struct {
	n *html.Node
}

func (h nodeHandle) AddClasses(names []string) {
	classes := strings.Fields(attrOrEmpty(h.n, "class"))
	for _, name := range names {
		if !containsString(classes, name) {
			classes = append(classes, name)
		}
	}
	setAttr(h.n, "class", strings.Join(classes, " "))
}

func (h nodeHandle) RemoveClasses(names []string) {
	classes := strings.Fields(attrOrEmpty(h.n, "class"))
	kept := classes[:0]
	for _, c := range classes {
		if !containsString(names, c) {
			kept = append(kept, c)
		}
	}
	setAttr(h.n, "class", strings.Join(kept, " "))
}

func hasAttr(n *html.Node, key string) bool {
	for _, a := range n.Attr {
		if a.Key == key {
			return true
		}
	}
	return false
}

func attrVal(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func attrOrEmpty(n *html.Node, key string) string {
	v, _ := attrVal(n, key)
	return v
}

func setAttr(n *html.Node, key, val string) {
	for i := range n.Attr {
		if n.Attr[i].Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
