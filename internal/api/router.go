package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/meur/dexview/internal/catalog"
	"github.com/meur/dexview/internal/logging"
	"github.com/meur/dexview/internal/source"
	"github.com/meur/dexview/internal/sprite"
	"github.com/meur/dexview/internal/view"
)

// Options configures a Server
type Options struct {
	Store       *catalog.Store
	Client      *source.Client
	Renderer    *view.Renderer
	Memo        *sprite.Memo
	Logger      *zap.Logger
	Batch       source.BatchOptions
	CORSOrigins []string
}

// Server holds the HTTP server dependencies
type Server struct {
	store    *catalog.Store
	client   *source.Client
	renderer *view.Renderer
	memo     *sprite.Memo
	logger   *zap.Logger
	batch    source.BatchOptions
	origins  []string
	upgrader websocket.Upgrader
	router   chi.Router
}

// New creates a new server
func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	memo := opts.Memo
	if memo == nil {
		memo = sprite.NewMemo(sprite.NewSelector(nil))
	}

	s := &Server{
		store:    opts.Store,
		client:   opts.Client,
		renderer: opts.Renderer,
		memo:     memo,
		logger:   logger,
		batch:    opts.Batch,
		origins:  opts.CORSOrigins,
		router:   chi.NewRouter(),
	}
	s.upgrader = websocket.Upgrader{CheckOrigin: s.checkOrigin}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(logging.Requests(s.logger))
	s.router.Use(middleware.Recoverer)
}

func (s *Server) setupRoutes() {
	// websocket upgrades need the raw connection, so no compression here
	s.router.Get("/events", s.handleEvents)

	s.router.Group(func(r chi.Router) {
		r.Use(middleware.Compress(5))

		// Pages
		r.Get("/", s.handleCatalogPage)
		r.Get("/raw", s.handleRawPage)
		FileServer(r, "/static", http.FS(view.Static()))

		r.Route("/api", func(r chi.Router) {
			r.Use(cors.Handler(cors.Options{
				AllowedOrigins: s.origins,
				AllowedMethods: []string{"GET", "POST", "OPTIONS"},
				AllowedHeaders: []string{"Accept", "Content-Type"},
				MaxAge:         300,
			}))

			r.Get("/records", s.handleListRecords)
			r.Get("/records/{id}", s.handleGetRecord)
			r.Get("/status", s.handleStatus)
			r.Post("/refresh", s.handleRefresh)
		})
	})

	// Health check
	s.router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}

// FileServer serves static files from root under path
func FileServer(r chi.Router, path string, root http.FileSystem) {
	if strings.ContainsAny(path, "{}*") {
		panic("FileServer does not permit URL parameters.")
	}

	if path != "/" && path[len(path)-1] != '/' {
		r.Get(path, http.RedirectHandler(path+"/", http.StatusMovedPermanently).ServeHTTP)
		path += "/"
	}
	path += "*"

	r.Get(path, func(w http.ResponseWriter, req *http.Request) {
		rctx := chi.RouteContext(req.Context())
		pathPrefix := strings.TrimSuffix(rctx.RoutePattern(), "/*")
		fs := http.StripPrefix(pathPrefix, http.FileServer(root))
		fs.ServeHTTP(w, req)
	})
}

// --- Response helpers ---

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode response", zap.Int("status", status), zap.Error(err))
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
