// Package dom abstracts the document surface the navigation initializer
// mutates. The interface is the minimal capability set the pipeline needs
// (discover nav entries, read the current location, insert the fragment,
// toggle visual state), so the route-marking logic can be exercised against
// a fake document in tests and against a parsed HTML tree in production.
package dom

import "errors"

// ErrEmptyFragment is returned when fragment markup contains no element node.
var ErrEmptyFragment = errors.New("fragment markup contains no element")

// NavEntry is one navigation target discovered in a document: the path it
// links to plus a handle for mutating its visual state.
type NavEntry struct {
	Href    string
	Element ElementHandle
}

// ElementHandle mutates the visual state of a single element.
type ElementHandle interface {
	// AddClasses adds each named class to the element, preserving unrelated
	// classes. Adding a class the element already has is a no-op.
	AddClasses(names []string)
	// RemoveClasses removes each named class from the element, preserving
	// unrelated classes.
	RemoveClasses(names []string)
}

// Document is the capability surface of one page document.
type Document interface {
	// Location returns the path component of the page's current URL.
	Location() string

	// NavEntries scans the live document for elements carrying the
	// navigation marker attribute together with an href, in document order.
	// The scan runs fresh on every call; results are never cached across
	// mutations.
	NavEntries() []NavEntry

	// InsertFragment parses markup and inserts its first top-level element
	// as the first child of the designated insertion point, or of the page
	// body when no insertion point exists. Any further top-level nodes in
	// the markup are discarded. Returns ErrEmptyFragment when the markup
	// holds no element to insert.
	InsertFragment(markup string) error
}
