package inject

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shahzaibarshad0008-spec/l7700monitor/internal/config"
)

func TestRouteForPage(t *testing.T) {
	tests := []struct {
		rel  string
		want string
	}{
		{"index.html", "/"},
		{"calls.html", "/calls"},
		{"history.html", "/history"},
		{"config/index.html", "/config"},
		{"patients/42.html", "/patients/42"},
		{filepath.Join("config", "index.html"), "/config"},
	}
	for _, tt := range tests {
		if got := RouteForPage(tt.rel); got != tt.want {
			t.Errorf("RouteForPage(%q) = %q, want %q", tt.rel, got, tt.want)
		}
	}
}

func TestMatchesIncludeExclude(t *testing.T) {
	include := []string{"**/*.html"}
	exclude := []string{"static/**", "nav.html", "**/_*.html"}

	tests := []struct {
		rel  string
		want bool
	}{
		{"index.html", true},
		{"calls.html", true},
		{"config/index.html", true},
		{"static/nav.html", false},
		{"nav.html", false},
		{"partials/_header.html", false},
		{"style.css", false},
	}
	for _, tt := range tests {
		got := MatchesInclude(tt.rel, include) && !MatchesExclude(tt.rel, exclude)
		if got != tt.want {
			t.Errorf("selected(%q) = %v, want %v", tt.rel, got, tt.want)
		}
	}
}

const testFragment = `<nav id="sitenav">
  <a data-nav href="/">Dashboard</a>
  <a data-nav href="/calls">Calls</a>
  <a data-nav href="/history">History</a>
</nav>`

const testPage = `<!doctype html>
<html><head><title>%s</title></head>
<body><div id="nav-root"></div><main>content</main></body></html>`

func writeTree(t *testing.T, dir string, withFragment bool) {
	t.Helper()
	pages := map[string]string{
		"index.html":   strings.ReplaceAll(testPage, "%s", "Dashboard"),
		"calls.html":   strings.ReplaceAll(testPage, "%s", "Calls"),
		"history.html": strings.ReplaceAll(testPage, "%s", "History"),
	}
	for name, content := range pages {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}
	if withFragment {
		if err := os.MkdirAll(filepath.Join(dir, "static"), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(dir, "static", "nav.html"), []byte(testFragment), 0o644); err != nil {
			t.Fatalf("writing fragment: %v", err)
		}
	}
}

func testConfig(pagesDir, outDir string) *config.Config {
	cfg := config.DefaultConfig()
	cfg.PagesDir = pagesDir
	cfg.OutputDir = outDir
	return cfg
}

func TestRunInjectsAllPages(t *testing.T) {
	pagesDir := t.TempDir()
	outDir := t.TempDir()
	writeTree(t, pagesDir, true)

	in := New(testConfig(pagesDir, outDir), nil, nil)
	res, err := in.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Pages != 3 || res.Injected != 3 || res.Failed != 0 {
		t.Fatalf("Result = %+v, want 3 pages injected", res)
	}

	calls, err := os.ReadFile(filepath.Join(outDir, "calls.html"))
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	out := string(calls)
	if !strings.Contains(out, `id="sitenav"`) {
		t.Error("calls.html missing injected fragment")
	}
	if !strings.Contains(out, `href="/calls" class="active"`) {
		t.Errorf("calls entry not active in calls.html:\n%s", out)
	}
	if !strings.Contains(out, `href="/history" class="inactive"`) {
		t.Error("history entry should be inactive in calls.html")
	}

	index, err := os.ReadFile(filepath.Join(outDir, "index.html"))
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if !strings.Contains(string(index), `href="/" class="active"`) {
		t.Error("root entry should be active in index.html only")
	}
	if !strings.Contains(string(index), `href="/calls" class="inactive"`) {
		t.Error("calls entry should be inactive in index.html")
	}
}

func TestRunSkipsFragmentFile(t *testing.T) {
	pagesDir := t.TempDir()
	writeTree(t, pagesDir, true)

	in := New(testConfig(pagesDir, t.TempDir()), nil, nil)
	res, err := in.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	// static/nav.html is excluded by default, so only the three pages run.
	if res.Pages != 3 {
		t.Errorf("Pages = %d, want 3 (fragment must not be processed as a page)", res.Pages)
	}
}

func TestRunFragmentMissing(t *testing.T) {
	pagesDir := t.TempDir()
	writeTree(t, pagesDir, false)

	in := New(testConfig(pagesDir, ""), nil, nil)
	res, err := in.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Failed != 3 || res.Injected != 0 {
		t.Fatalf("Result = %+v, want all pages failed", res)
	}

	// Pages must be left untouched.
	data, err := os.ReadFile(filepath.Join(pagesDir, "calls.html"))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "sitenav") {
		t.Error("page modified despite fragment failure")
	}
}

func TestRunDryRunWritesNothing(t *testing.T) {
	pagesDir := t.TempDir()
	outDir := t.TempDir()
	writeTree(t, pagesDir, true)

	in := New(testConfig(pagesDir, outDir), nil, nil)
	in.DryRun = true
	res, err := in.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Injected != 3 {
		t.Fatalf("Result = %+v, want 3 injectable", res)
	}

	entries, err := os.ReadDir(outDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("dry run wrote %d entries to the output dir", len(entries))
	}
}
