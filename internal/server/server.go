// Package server is the dev server for the monitor UI: it serves the page
// tree and the shared navigation fragment, and can inject navigation into
// HTML responses on the fly so browsers receive pages with the active route
// already marked.
package server

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shahzaibarshad0008-spec/l7700monitor/internal/config"
	"github.com/shahzaibarshad0008-spec/l7700monitor/internal/dom"
	"github.com/shahzaibarshad0008-spec/l7700monitor/internal/fragment"
	"github.com/shahzaibarshad0008-spec/l7700monitor/internal/inject"
	"github.com/shahzaibarshad0008-spec/l7700monitor/internal/nav"
	"github.com/shahzaibarshad0008-spec/l7700monitor/internal/page"
)

// Server serves the monitor UI pages during development.
type Server struct {
	cfg        *config.Config
	log        *zap.Logger
	router     chi.Router
	httpServer *http.Server
}

// New creates a dev server for the given configuration.
func New(cfg *config.Config, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{cfg: cfg, log: log}
	s.router = s.buildRouter()
	return s
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(requestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS
	corsOpts := cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "HEAD", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if s.cfg.Server.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	// Health check
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Pages (optionally with navigation injected).
	r.Get("/*", s.handlePage)

	return r
}

// Router returns the chi router, mainly for tests.
func (s *Server) Router() chi.Router { return s.router }

// handlePage resolves the request path to a page file and serves it. HTML
// pages go through the injection pipeline when enabled; everything else is
// served as-is.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	rel := filepath.Clean(s.pageFile(r.URL.Path))
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		http.NotFound(w, r)
		return
	}
	file := filepath.Join(s.cfg.PagesDir, rel)

	if !s.cfg.Server.Inject || !s.injectable(rel) {
		http.ServeFile(w, r, file)
		return
	}

	f, err := os.Open(file)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer f.Close()

	doc, err := dom.ParseDocument(f, routePath(r.URL.Path),
		dom.WithMarkerAttr(s.cfg.MarkerAttr),
		dom.WithContainerID(s.cfg.ContainerID))
	if err != nil {
		s.log.Error("parsing page", zap.String("page", rel), zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	marker := &nav.Marker{
		ActiveClasses:   s.cfg.ActiveClasses,
		InactiveClasses: s.cfg.InactiveClasses,
	}
	loader := s.newLoader(marker)

	// The initializer swallows fragment failures after logging them, so a
	// missing fragment serves the page without navigation.
	boot := page.NewInitializer(loader, s.log.With(zap.String("page", rel)))
	boot.Run(r.Context(), doc, page.ReadyNow{})

	var buf bytes.Buffer
	if err := doc.Render(&buf); err != nil {
		s.log.Error("rendering page", zap.String("page", rel), zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

// injectable reports whether a page file gets navigation injected. The
// shared fragment itself and anything matching the exclude globs are served
// raw: injecting into the fragment would hand clients a full document with
// a second copy of the nav nested inside, and the fragment's well-known
// path must return the fragment as text.
func (s *Server) injectable(rel string) bool {
	if !strings.HasSuffix(rel, ".html") {
		return false
	}
	if inject.MatchesExclude(rel, s.cfg.Exclude) {
		return false
	}
	// Guard the fragment path even when the excludes miss it.
	if frag := s.cfg.Fragment.File; frag != "" && !filepath.IsAbs(frag) {
		if filepath.ToSlash(rel) == filepath.ToSlash(filepath.Clean(frag)) {
			return false
		}
	}
	return true
}

// newLoader builds the fragment loader for one request. FragmentSource
// resolves a relative file against the pages directory.
func (s *Server) newLoader(marker *nav.Marker) *fragment.Loader {
	source, isURL := s.cfg.FragmentSource()
	if isURL {
		return fragment.NewHTTPLoader(source, nil, marker)
	}
	return fragment.NewFileLoader(source, marker)
}

// pageFile maps a request path to a page file relative to the pages dir.
func (s *Server) pageFile(urlPath string) string {
	p := strings.TrimPrefix(urlPath, "/")
	if p == "" {
		return "index.html"
	}
	if strings.HasSuffix(p, "/") {
		return p + "index.html"
	}
	if filepath.Ext(p) == "" {
		return p + ".html"
	}
	return p
}

// routePath normalizes a request path to the route used for active-route
// matching: trailing slashes are dropped except for the root.
func routePath(urlPath string) string {
	if urlPath == "" || urlPath == "/" {
		return "/"
	}
	return strings.TrimRight(urlPath, "/")
}

// Start begins listening on the configured port.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Server.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	s.log.Info("dev server listening", zap.String("addr", addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

// requestID attaches a request id, keeping one supplied by a proxy.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r)
	})
}

// logRequests logs one line per request with the request id.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("took", time.Since(start)),
			zap.String("request_id", ww.Header().Get("X-Request-ID")))
	})
}
