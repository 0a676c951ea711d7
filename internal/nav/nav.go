// Package nav classifies navigation entries against the current location
// and applies their visual state.
package nav

import (
	"strings"

	"github.com/shahzaibarshad0008-spec/l7700monitor/internal/dom"
)

// Default visual-state class sets applied to navigation entries. The two
// sets are always toggled as a pair, never partially.
var (
	DefaultActiveClasses   = []string{"active"}
	DefaultInactiveClasses = []string{"inactive"}
)

// Active reports whether an entry with the given href should be highlighted
// for the given location. An entry is active when the location equals the
// href, or when the location extends the href as a literal prefix. The root
// entry ("/") matches by equality only; without that guard every location in
// the application would prefix-match it.
func Active(location, href string) bool {
	if location == href {
		return true
	}
	if href == "/" {
		return false
	}
	return strings.HasPrefix(location, href)
}

// Marker applies active/inactive state to every navigation entry in a
// document.
type Marker struct {
	ActiveClasses   []string
	InactiveClasses []string
}

// NewMarker returns a Marker using the default class sets.
func NewMarker() *Marker {
	return &Marker{
		ActiveClasses:   DefaultActiveClasses,
		InactiveClasses: DefaultInactiveClasses,
	}
}

// Mark discovers the document's navigation entries and classifies each one
// against the document's location. Active entries gain the active class set
// and lose the inactive set; inactive entries the inverse. Entries are
// rediscovered on every call, so entries inserted since the last run are
// picked up. Absence of entries, or of any match, is a normal outcome.
// Mark is idempotent: repeated runs with unchanged inputs leave the same
// final state.
//
// Overlapping entries are classified independently: if both "/patients" and
// "/patients/42" are registered, a location of "/patients/42/vitals" marks
// both active.
func (m *Marker) Mark(doc dom.Document) {
	location := doc.Location()
	for _, e := range doc.NavEntries() {
		if Active(location, e.Href) {
			e.Element.RemoveClasses(m.InactiveClasses)
			e.Element.AddClasses(m.ActiveClasses)
		} else {
			e.Element.RemoveClasses(m.ActiveClasses)
			e.Element.AddClasses(m.InactiveClasses)
		}
	}
}
