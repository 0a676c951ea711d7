// Package inject runs the load-inject-mark pipeline over a static page
// tree, so every page ships with the shared navigation already present and
// its current route highlighted.
package inject

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/shahzaibarshad0008-spec/l7700monitor/internal/config"
	"github.com/shahzaibarshad0008-spec/l7700monitor/internal/dom"
	"github.com/shahzaibarshad0008-spec/l7700monitor/internal/fragment"
	"github.com/shahzaibarshad0008-spec/l7700monitor/internal/nav"
	"github.com/shahzaibarshad0008-spec/l7700monitor/internal/progress"
)

// Injector processes every page under the configured pages directory.
type Injector struct {
	cfg      *config.Config
	log      *zap.Logger
	reporter progress.Reporter
	client   *http.Client

	// DryRun walks and classifies but writes nothing.
	DryRun bool
}

// Result summarizes one batch run.
type Result struct {
	Pages    int // pages considered
	Injected int // pages successfully injected and written
	Failed   int // pages left untouched because the fragment step failed
}

// New returns an Injector. A nil reporter is silent; a nil log disables
// diagnostics.
func New(cfg *config.Config, log *zap.Logger, reporter progress.Reporter) *Injector {
	if log == nil {
		log = zap.NewNop()
	}
	if reporter == nil {
		reporter = progress.SilentReporter{}
	}
	return &Injector{cfg: cfg, log: log, reporter: reporter, client: http.DefaultClient}
}

// Run walks the pages directory and injects navigation into each matching
// page. A per-page fragment failure leaves that page untouched, logs one
// diagnostic, and processing continues; only walking the tree itself can
// fail the run.
func (in *Injector) Run(ctx context.Context) (Result, error) {
	pages, err := in.collectPages()
	if err != nil {
		return Result{}, err
	}

	marker := &nav.Marker{
		ActiveClasses:   in.cfg.ActiveClasses,
		InactiveClasses: in.cfg.InactiveClasses,
	}
	loader := in.newLoader(marker)

	res := Result{Pages: len(pages)}
	in.reporter.Start(len(pages))
	for i, rel := range pages {
		in.reporter.Update(i+1, rel)
		if err := in.processPage(ctx, loader, rel); err != nil {
			res.Failed++
			in.log.Warn("navigation fragment unavailable",
				zap.String("page", rel), zap.Error(err))
			continue
		}
		res.Injected++
	}
	in.reporter.Finish()
	return res, nil
}

// collectPages returns the relative paths of pages to process, filtered by
// the include/exclude globs, in walk order.
func (in *Injector) collectPages() ([]string, error) {
	var pages []string
	err := filepath.WalkDir(in.cfg.PagesDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(in.cfg.PagesDir, p)
		if err != nil {
			return err
		}
		if !MatchesInclude(rel, in.cfg.Include) || MatchesExclude(rel, in.cfg.Exclude) {
			return nil
		}
		pages = append(pages, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", in.cfg.PagesDir, err)
	}
	return pages, nil
}

// newLoader builds the fragment loader for the run. FragmentSource resolves
// a relative file against the pages directory.
func (in *Injector) newLoader(marker *nav.Marker) *fragment.Loader {
	source, isURL := in.cfg.FragmentSource()
	if isURL {
		return fragment.NewHTTPLoader(source, in.client, marker)
	}
	return fragment.NewFileLoader(source, marker)
}

// processPage runs the pipeline for one page and writes the result.
func (in *Injector) processPage(ctx context.Context, loader *fragment.Loader, rel string) error {
	src := filepath.Join(in.cfg.PagesDir, rel)
	f, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening page: %w", err)
	}

	doc, err := dom.ParseDocument(f, RouteForPage(rel),
		dom.WithMarkerAttr(in.cfg.MarkerAttr),
		dom.WithContainerID(in.cfg.ContainerID))
	f.Close()
	if err != nil {
		return err
	}

	if err := loader.Load(ctx, doc); err != nil {
		return err
	}

	if in.DryRun {
		return nil
	}

	var buf bytes.Buffer
	if err := doc.Render(&buf); err != nil {
		return fmt.Errorf("rendering page: %w", err)
	}

	dst := src
	if in.cfg.OutputDir != "" {
		dst = filepath.Join(in.cfg.OutputDir, rel)
		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			return fmt.Errorf("creating output dir: %w", err)
		}
	}
	if err := os.WriteFile(dst, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing page: %w", err)
	}
	return nil
}

// RouteForPage derives the route a page is served at from its path relative
// to the pages directory: "index.html" maps to the directory's route,
// anything else drops the .html suffix. Examples: "index.html" -> "/",
// "calls.html" -> "/calls", "config/index.html" -> "/config".
func RouteForPage(rel string) string {
	p := filepath.ToSlash(rel)
	p = strings.TrimSuffix(p, ".html")
	if path.Base(p) == "index" {
		p = path.Dir(p)
		if p == "." {
			p = ""
		}
	}
	return "/" + strings.Trim(p, "/")
}
