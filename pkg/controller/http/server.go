package http

import (
	"context"
	"net/http"
	"time"

	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/imgpress/pkg/domain/interfaces"
)

// DefaultMaxUploadSize bounds the multipart body of a compress request
const DefaultMaxUploadSize = 64 << 20

// config holds internal HTTP server configuration
type config struct {
	addr          string
	maxUploadSize int64
	sentry        bool
}

// Option is a functional option for Server configuration
type Option func(*config)

// WithAddr sets the server address
func WithAddr(addr string) Option {
	return func(c *config) {
		c.addr = addr
	}
}

// WithMaxUploadSize limits the request body size of POST /api/compress
func WithMaxUploadSize(size int64) Option {
	return func(c *config) {
		c.maxUploadSize = size
	}
}

// WithSentry enables panic and error reporting through the Sentry hub
func WithSentry() Option {
	return func(c *config) {
		c.sentry = true
	}
}

// Server represents the HTTP server
type Server struct {
	*http.Server
}

// NewServer creates a new HTTP server
func NewServer(
	ctx context.Context,
	workflowUC interfaces.WorkflowUseCase,
	opts ...Option,
) (*Server, error) {
	cfg := &config{
		addr:          "localhost:8080",
		maxUploadSize: DefaultMaxUploadSize,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(LoggingMiddleware(ctx))
	if cfg.sentry {
		router.Use(sentryhttp.New(sentryhttp.Options{Repanic: true}).Handle)
	}
	router.Use(middleware.Recoverer)

	router.Get("/health", handleHealth)

	h := NewWorkflowHandler(workflowUC, cfg.maxUploadSize)
	router.Route("/api", func(r chi.Router) {
		r.Get("/status", h.Status)
		r.Post("/compress", h.Compress)
		r.Get("/results", h.Results)
		r.Delete("/results", h.Clear)
		r.Get("/batches/{batchID}/results/{index}", h.Download)
		r.Get("/archive", h.Archive)
	})

	server := &Server{
		Server: &http.Server{
			Addr:              cfg.addr,
			Handler:           router,
			ReadHeaderTimeout: 15 * time.Second,
		},
	}

	return server, nil
}
