package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/ziadkadry99/aidir/internal/catalog"
	"github.com/ziadkadry99/aidir/internal/i18n"
	"github.com/ziadkadry99/aidir/internal/site"
	"github.com/ziadkadry99/aidir/internal/sitemap"
)

// langCookie remembers the visitor's language between requests.
const langCookie = "lang"

// Config holds server configuration.
type Config struct {
	Port       int
	BaseURL    string // absolute base for sitemap entries
	StaticDir  string // serves /assets/* and /favicon.ico when set
	AllowAll   bool   // allow all CORS origins (dev mode)
	LiveReload bool
	Language   i18n.Language // fallback when nothing else selects one
}

// Server serves the directory live from the catalog store.
type Server struct {
	cfg        Config
	controller *site.Controller
	store      *catalog.Store
	hub        *reloadHub
	logger     *zap.Logger
	router     chi.Router
	httpServer *http.Server
}

// New creates a server rendering through controller.
func New(cfg Config, controller *site.Controller, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Language == "" {
		cfg.Language = i18n.Default
	}
	controller.LiveReload = cfg.LiveReload
	s := &Server{
		cfg:        cfg,
		controller: controller,
		store:      controller.Catalog,
		logger:     logger.Named("server"),
	}
	s.hub = newReloadHub(s.logger)
	s.router = s.buildRouter()
	return s
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS
	corsOpts := cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	// Health check
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Get("/", s.handleIndex)
	r.Get("/index.html", s.handleIndex)
	r.Get("/tool.html", s.handleToolQuery)
	r.Get("/tools/{file}", s.handleToolFile)
	r.Get("/pages/{file}", s.handlePage)
	r.Get("/style.css", s.handleAsset("text/css; charset=utf-8", site.Stylesheet()))
	r.Get("/script.js", s.handleAsset("text/javascript; charset=utf-8", site.Script()))
	r.Get("/sitemap.xml", s.handleSitemap)

	r.Route("/api", func(r chi.Router) {
		r.Get("/tools", s.handleListTools)
		r.Get("/tools/{id}", s.handleGetTool)
	})

	if s.cfg.LiveReload {
		r.Get("/ws/reload", s.hub.serveWS)
	}

	if s.cfg.StaticDir != "" {
		files := http.FileServer(http.Dir(s.cfg.StaticDir))
		r.Handle("/assets/*", files)
		r.Handle("/favicon.ico", files)
	}

	return r
}

// Router returns the chi router for registering additional routes.
func (s *Server) Router() chi.Router { return s.router }

// ServerConfig returns the server configuration.
func (s *Server) ServerConfig() Config { return s.cfg }

// WatchCatalog pushes a reload notice to live-reload clients for every
// catalog revision published after the call, until ctx is done.
func (s *Server) WatchCatalog(ctx context.Context) {
	updates := s.store.Subscribe(ctx)
	go func() {
		for {
			select {
			case <-ctx.Done():
				s.hub.closeAll()
				return
			case snap := <-updates:
				s.hub.broadcast(snap.Revision)
			}
		}
	}()
}

// Start begins listening on the configured port.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	s.logger.Info("aidir server listening", zap.String("addr", addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.hub.closeAll()
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

// language picks the request language from ?lang=, then the language
// cookie, then Accept-Language. An explicit choice is remembered.
func (s *Server) language(w http.ResponseWriter, r *http.Request) i18n.Language {
	if lang, ok := i18n.Parse(r.URL.Query().Get("lang")); ok {
		http.SetCookie(w, &http.Cookie{
			Name:     langCookie,
			Value:    string(lang),
			Path:     "/",
			MaxAge:   365 * 24 * 60 * 60,
			SameSite: http.SameSiteLaxMode,
		})
		return lang
	}
	if c, err := r.Cookie(langCookie); err == nil {
		if lang, ok := i18n.Parse(c.Value); ok {
			return lang
		}
	}
	return i18n.Negotiate(r.Header.Get("Accept-Language"), s.cfg.Language)
}

// view builds the rendering parameters shared by all pages.
func (s *Server) view(w http.ResponseWriter, r *http.Request) site.View {
	lang := s.language(w, r)
	alt := r.URL.Query()
	alt.Set("lang", string(site.OtherLanguage(lang)))
	return site.View{
		Lang:       lang,
		BasePath:   "/",
		AltLangURL: "?" + alt.Encode(),
		FormAction: "/",
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	v := s.view(w, r)
	q := r.URL.Query()
	v.Query = site.ParseQuery(q)
	v.Flip = catalog.ID(q.Get("flip"))
	v.Tool = catalog.ID(q.Get("tool"))

	page, err := s.controller.IndexHTML(r.Context(), v)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeHTML(w, page)
}

func (s *Server) handleToolQuery(w http.ResponseWriter, r *http.Request) {
	s.renderTool(w, r, r.URL.Query().Get("id"))
}

func (s *Server) handleToolFile(w http.ResponseWriter, r *http.Request) {
	file := chi.URLParam(r, "file")
	if !strings.HasSuffix(file, ".html") {
		http.NotFound(w, r)
		return
	}
	id, err := url.PathUnescape(strings.TrimSuffix(file, ".html"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	s.renderTool(w, r, id)
}

func (s *Server) renderTool(w http.ResponseWriter, r *http.Request, id string) {
	id = strings.TrimSpace(id)
	if id == "" {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	page, err := s.controller.ToolPage(s.view(w, r), catalog.ID(id))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeHTML(w, page)
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	slug := strings.TrimSuffix(chi.URLParam(r, "file"), ".html")
	page, err := s.controller.MarkdownPageHTML(s.view(w, r), slug)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeHTML(w, page)
}

func (s *Server) handleAsset(contentType, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentType)
		w.Write([]byte(body))
	}
}

func (s *Server) handleSitemap(w http.ResponseWriter, r *http.Request) {
	base := s.cfg.BaseURL
	if base == "" {
		base = "http://" + r.Host
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	if err := sitemap.Write(w, sitemap.Build(s.store.Snapshot().Document(), base)); err != nil {
		s.logger.Error("writing sitemap", zap.Error(err))
	}
}

func (s *Server) handleListTools(w http.ResponseWriter, r *http.Request) {
	tools := site.Filter(s.store.Snapshot(), site.ParseQuery(r.URL.Query()))
	writeJSON(w, http.StatusOK, site.SearchEntries(tools))
}

func (s *Server) handleGetTool(w http.ResponseWriter, r *http.Request) {
	t, err := s.store.Get(catalog.ID(chi.URLParam(r, "id")))
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "tool not found"})
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// fail maps rendering errors to responses: unknown tools and pages are
// 404, a cancelled request is dropped, everything else is a 500.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, catalog.ErrNotFound), errors.Is(err, site.ErrPageNotFound):
		http.NotFound(w, r)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		s.logger.Debug("request abandoned", zap.String("path", r.URL.Path), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
	default:
		s.logger.Error("rendering page", zap.String("path", r.URL.Path), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func writeHTML(w http.ResponseWriter, page string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(page))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
