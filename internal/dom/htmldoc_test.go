package dom

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

const hostPage = `<!doctype html>
<html>
<head><title>Calls</title></head>
<body>
  <div id="nav-root"><p id="existing">existing content</p></div>
  <main>
    <h1>Active calls</h1>
  </main>
</body>
</html>`

const navFragmentMarkup = `<nav id="sitenav">
  <a data-nav href="/">Dashboard</a>
  <a data-nav href="/calls">Calls</a>
  <a data-nav href="/history" class="inactive">History</a>
</nav>`

func parseHost(t *testing.T, markup, location string) *HTMLDocument {
	t.Helper()
	doc, err := ParseDocument(strings.NewReader(markup), location)
	if err != nil {
		t.Fatalf("ParseDocument: %v", err)
	}
	return doc
}

func render(t *testing.T, doc *HTMLDocument) string {
	t.Helper()
	var buf bytes.Buffer
	if err := doc.Render(&buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	return buf.String()
}

func TestNavEntriesDiscovery(t *testing.T) {
	doc := parseHost(t, hostPage, "/calls")
	if got := doc.NavEntries(); len(got) != 0 {
		t.Fatalf("entries before insertion = %d, want 0", len(got))
	}

	if err := doc.InsertFragment(navFragmentMarkup); err != nil {
		t.Fatalf("InsertFragment: %v", err)
	}

	entries := doc.NavEntries()
	if len(entries) != 3 {
		t.Fatalf("entries after insertion = %d, want 3", len(entries))
	}
	wantHrefs := []string{"/", "/calls", "/history"}
	for i, want := range wantHrefs {
		if entries[i].Href != want {
			t.Errorf("entry[%d].Href = %q, want %q", i, entries[i].Href, want)
		}
	}
}

func TestInsertFragmentPrepends(t *testing.T) {
	doc := parseHost(t, hostPage, "/calls")
	if err := doc.InsertFragment(navFragmentMarkup); err != nil {
		t.Fatalf("InsertFragment: %v", err)
	}

	out := render(t, doc)
	navIdx := strings.Index(out, `id="sitenav"`)
	existingIdx := strings.Index(out, `id="existing"`)
	if navIdx == -1 {
		t.Fatal("fragment not found in rendered document")
	}
	if existingIdx == -1 {
		t.Fatal("pre-existing container content lost")
	}
	if navIdx > existingIdx {
		t.Error("fragment should precede pre-existing container children")
	}
}

func TestInsertFragmentBodyFallback(t *testing.T) {
	page := `<!doctype html><html><body><main id="content">hello</main></body></html>`
	doc := parseHost(t, page, "/")
	if err := doc.InsertFragment(navFragmentMarkup); err != nil {
		t.Fatalf("InsertFragment: %v", err)
	}

	out := render(t, doc)
	navIdx := strings.Index(out, `id="sitenav"`)
	mainIdx := strings.Index(out, `id="content"`)
	if navIdx == -1 || mainIdx == -1 || navIdx > mainIdx {
		t.Errorf("fragment should be the first child of body; output:\n%s", out)
	}
}

func TestInsertFragmentFirstElementOnly(t *testing.T) {
	doc := parseHost(t, hostPage, "/")
	markup := "<!-- generated -->\n<nav id=\"first\"></nav><footer id=\"second\"></footer>"
	if err := doc.InsertFragment(markup); err != nil {
		t.Fatalf("InsertFragment: %v", err)
	}

	out := render(t, doc)
	if !strings.Contains(out, `id="first"`) {
		t.Error("first top-level element missing")
	}
	if strings.Contains(out, `id="second"`) {
		t.Error("second top-level element should be discarded")
	}
}

func TestInsertFragmentNoElement(t *testing.T) {
	doc := parseHost(t, hostPage, "/")

	for _, markup := range []string{"", "   ", "<!-- nothing -->", "just text"} {
		err := doc.InsertFragment(markup)
		if !errors.Is(err, ErrEmptyFragment) {
			t.Errorf("InsertFragment(%q) = %v, want ErrEmptyFragment", markup, err)
		}
	}

	// Nothing may have been inserted by the failed attempts.
	if got := doc.NavEntries(); len(got) != 0 {
		t.Errorf("entries after failed insertions = %d, want 0", len(got))
	}
}

func TestClassToggling(t *testing.T) {
	page := `<html><body><a data-nav href="/calls" class="link inactive">Calls</a></body></html>`
	doc := parseHost(t, page, "/calls")
	entries := doc.NavEntries()
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}

	h := entries[0].Element
	h.RemoveClasses([]string{"inactive"})
	h.AddClasses([]string{"active"})

	out := render(t, doc)
	if !strings.Contains(out, "link") {
		t.Error("unrelated class removed")
	}
	if strings.Contains(out, "inactive") {
		t.Error("inactive class not removed")
	}
	if !strings.Contains(out, "active") {
		t.Error("active class not added")
	}

	// Adding again must not duplicate.
	h.AddClasses([]string{"active"})
	out = render(t, doc)
	if strings.Count(out, "active") != 1 {
		t.Errorf("active class duplicated: %s", out)
	}
}

func TestCustomMarkerAndContainer(t *testing.T) {
	page := `<html><body>
	  <div id="menu-slot"><span id="existing"></span></div>
	  <a data-menu-item href="/config">Config</a>
	</body></html>`
	doc, err := ParseDocument(strings.NewReader(page), "/config",
		WithMarkerAttr("data-menu-item"),
		WithContainerID("menu-slot"))
	if err != nil {
		t.Fatalf("ParseDocument: %v", err)
	}

	entries := doc.NavEntries()
	if len(entries) != 1 || entries[0].Href != "/config" {
		t.Fatalf("entries = %+v, want one /config entry", entries)
	}

	if err := doc.InsertFragment(`<nav id="sitenav"></nav>`); err != nil {
		t.Fatalf("InsertFragment: %v", err)
	}
	out := render(t, doc)
	navIdx := strings.Index(out, `id="sitenav"`)
	existingIdx := strings.Index(out, `id="existing"`)
	if navIdx == -1 || navIdx > existingIdx {
		t.Errorf("fragment should be prepended inside #menu-slot; output:\n%s", out)
	}
}

func TestLocation(t *testing.T) {
	doc := parseHost(t, hostPage, "/calls")
	if got := doc.Location(); got != "/calls" {
		t.Errorf("Location() = %q, want %q", got, "/calls")
	}
}
