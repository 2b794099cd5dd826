package server

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/mchmarny/ngwp/pkg/metric"
)

const (
	// DefaultPort is the default HTTP server port.
	DefaultPort = 8080

	// DefaultReadTimeout is the maximum duration for reading the entire request,
	// including the body. This helps prevent slowloris attacks.
	DefaultReadTimeout = 10 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request
	// when keep-alives are enabled.
	DefaultIdleTimeout = 60 * time.Second

	// DefaultShutdownTimeout is the maximum duration to wait for active connections
	// to gracefully close during server shutdown.
	DefaultShutdownTimeout = 5 * time.Second

	// DefaultMaxHeaderBytes controls the maximum number of bytes the server will
	// read parsing the request header's keys and values, including the request line.
	DefaultMaxHeaderBytes = 1 << 20 // 1 MB
)

// Server defines the interface for the HTTP server serving the REST routes.
// Implementations must support graceful shutdown via context cancellation.
type Server interface {
	// Serve starts the HTTP server and blocks until the context is canceled.
	// Returns nil on successful graceful shutdown.
	Serve(ctx context.Context) error

	// IsRunning returns true if the server is currently accepting connections.
	// This method is thread-safe and can be called concurrently.
	IsRunning() bool

	// Handler returns the fully wired router, useful for in-process testing.
	Handler() http.Handler
}

// ReadinessChecker defines the interface for components that can report their readiness status.
// Implementations return nil if ready, or an error describing why not.
type ReadinessChecker interface {
	Ready(ctx context.Context) error
}

type server struct {
	router          chi.Router
	port            int
	readTimeout     time.Duration
	writeTimeout    time.Duration
	idleTimeout     time.Duration
	shutdownTimeout time.Duration
	maxHeaderBytes  int
	errLog          *log.Logger
	tlsConfig       *TLSConfig
	registry        *prometheus.Registry
	metricsEnabled  bool
	simpleHealth    bool
	readiness       ReadinessChecker
	corsOrigins     []string
	rateLimit       *rateLimit
	routes          []func(chi.Router)
	mu              sync.RWMutex
	running         bool
}

type rateLimit struct {
	requests int
	window   time.Duration
}

// TLSConfig contains the certificate and key file paths for TLS/HTTPS support.
type TLSConfig struct {
	CertFile string // Path to the TLS certificate file
	KeyFile  string // Path to the TLS private key file
}

// Option is a functional option for configuring the Server.
type Option func(*server)

// WithPort sets the port number for the HTTP server.
// If not specified, DefaultPort (8080) is used.
func WithPort(port int) Option {
	return func(s *server) { s.port = port }
}

// WithReadTimeout sets the maximum duration for reading the entire request.
func WithReadTimeout(d time.Duration) Option {
	return func(s *server) { s.readTimeout = d }
}

// WithWriteTimeout sets the maximum duration before timing out writes of the response.
func WithWriteTimeout(d time.Duration) Option {
	return func(s *server) { s.writeTimeout = d }
}

// WithIdleTimeout sets the maximum time to wait for the next request when keep-alives are enabled.
func WithIdleTimeout(d time.Duration) Option {
	return func(s *server) { s.idleTimeout = d }
}

// WithShutdownTimeout sets the maximum duration to wait for graceful shutdown.
func WithShutdownTimeout(d time.Duration) Option {
	return func(s *server) { s.shutdownTimeout = d }
}

// WithMaxHeaderBytes sets the maximum number of bytes to read from request headers.
func WithMaxHeaderBytes(n int) Option {
	return func(s *server) { s.maxHeaderBytes = n }
}

// WithErrorLog sets the logger used by http.Server for internal errors.
func WithErrorLog(l *log.Logger) Option {
	return func(s *server) { s.errLog = l }
}

// WithHandler registers a custom HTTP handler for the specified pattern.
// Multiple handlers can be registered by calling this option multiple times.
func WithHandler(pattern string, handler http.Handler) Option {
	return WithRoutes(func(r chi.Router) {
		r.Handle(pattern, handler)
	})
}

// WithRoutes registers a function that mounts routes on the router.
// Routes registered this way are subject to rate limiting and CORS.
func WithRoutes(fn func(r chi.Router)) Option {
	return func(s *server) {
		s.routes = append(s.routes, fn)
	}
}

// WithSimpleHealth adds a simple health check endpoint at /healthz that always returns 200 OK.
func WithSimpleHealth() Option {
	return func(s *server) { s.simpleHealth = true }
}

// WithReadiness adds a readiness endpoint at /readyz backed by checker.
// It responds 200 when checker reports ready and 503 otherwise.
func WithReadiness(checker ReadinessChecker) Option {
	return func(s *server) { s.readiness = checker }
}

// WithTLS configures the server to use TLS/HTTPS with the provided certificate and key files.
func WithTLS(cfg TLSConfig) Option {
	return func(s *server) {
		s.tlsConfig = &cfg
	}
}

// WithRegistry sets the Prometheus registry used for server metrics and /metrics.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(s *server) { s.registry = reg }
}

// WithPrometheusMetrics records request metrics and serves them at /metrics.
func WithPrometheusMetrics() Option {
	return func(s *server) { s.metricsEnabled = true }
}

// WithCORS allows cross-origin GET requests from the given origins.
func WithCORS(origins []string) Option {
	return func(s *server) { s.corsOrigins = origins }
}

// WithRateLimit limits each client IP to requests per window on the registered routes.
// A non-positive requests value disables the limit.
func WithRateLimit(requests int, window time.Duration) Option {
	return func(s *server) {
		if requests <= 0 || window <= 0 {
			s.rateLimit = nil
			return
		}
		s.rateLimit = &rateLimit{requests: requests, window: window}
	}
}

// New creates a new HTTP server with the provided options.
//
// Default configuration:
//   - Port: 8080
//   - ReadTimeout: 10s
//   - WriteTimeout: 10s
//   - IdleTimeout: 60s
//   - ShutdownTimeout: 5s
//   - MaxHeaderBytes: 1 MB
//
// Example:
//
//	srv := server.New(
//	    server.WithPort(8080),
//	    server.WithPrometheusMetrics(),
//	    server.WithSimpleHealth(),
//	)
func New(opts ...Option) Server {
	s := &server{
		port:            DefaultPort,
		readTimeout:     DefaultReadTimeout,
		writeTimeout:    DefaultWriteTimeout,
		idleTimeout:     DefaultIdleTimeout,
		shutdownTimeout: DefaultShutdownTimeout,
		maxHeaderBytes:  DefaultMaxHeaderBytes,
		errLog:          log.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.registry == nil {
		// each server gets its own registry unless one is supplied
		s.registry = prometheus.NewRegistry()
	}

	s.router = s.buildRouter()

	slog.Info("server initialized",
		"port", s.port,
		"read_timeout", s.readTimeout,
		"write_timeout", s.writeTimeout,
		"metrics", s.metricsEnabled,
		"routes", len(s.routes))

	return s
}

// buildRouter wires middleware first and routes second, as chi requires.
func (s *server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)

	in := &instrumentation{}
	if s.metricsEnabled {
		in.requests = metric.NewCounterWithRegistry(s.registry, "http_requests_total",
			"HTTP requests by method, route and status.", "method", "route", "status")
		in.duration = metric.NewHistogramWithRegistry(s.registry, "http_request_duration_seconds",
			"HTTP request duration by method and route.", "method", "route")
	}
	r.Use(in.middleware)

	if len(s.corsOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: s.corsOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type", RequestIDHeader},
			ExposedHeaders: []string{RequestIDHeader},
			MaxAge:         300,
		}))
	}

	if s.simpleHealth {
		r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
		})
	}

	if s.readiness != nil {
		r.Get("/readyz", func(w http.ResponseWriter, req *http.Request) {
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			if err := s.readiness.Ready(req.Context()); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte(err.Error()))
				return
			}
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
		})
	}

	if s.metricsEnabled {
		r.Handle("/metrics", metric.GetHandlerForRegistry(s.registry))
	}

	r.Group(func(g chi.Router) {
		if s.rateLimit != nil {
			g.Use(httprate.LimitByIP(s.rateLimit.requests, s.rateLimit.window))
		}
		for _, fn := range s.routes {
			fn(g)
		}
	})

	return r
}

// Handler returns the server router.
func (s *server) Handler() http.Handler {
	return s.router
}

// IsRunning returns true if the server is currently running and accepting connections.
// This method is thread-safe and can be called concurrently from multiple goroutines.
func (s *server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.running
}

// Serve starts the HTTP server and blocks until the context is canceled or an error occurs.
//
// The server uses errgroup to manage two goroutines:
//  1. Server goroutine: serves on the pre-bound listener
//  2. Shutdown goroutine: waits for context cancellation and initiates graceful shutdown
//
// http.ErrServerClosed is not considered an error; all other errors are returned.
func (s *server) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:           fmt.Sprintf(":%d", s.port),
		Handler:        s.router,
		ReadTimeout:    s.readTimeout,
		WriteTimeout:   s.writeTimeout,
		IdleTimeout:    s.idleTimeout,
		MaxHeaderBytes: s.maxHeaderBytes,
		ErrorLog:       s.errLog,
	}

	// Create listener first so we can set running=true only after socket is bound
	listener, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return fmt.Errorf("failed to create listener: %w", err)
	}

	if s.tlsConfig != nil {
		cert, certErr := tls.LoadX509KeyPair(s.tlsConfig.CertFile, s.tlsConfig.KeyFile)
		if certErr != nil {
			listener.Close()
			return fmt.Errorf("failed to load TLS certificate: %w", certErr)
		}

		listener = tls.NewListener(listener, &tls.Config{
			Certificates: []tls.Certificate{cert},
			MinVersion:   tls.VersionTLS12,
		})

		slog.Info("starting TLS server", "addr", srv.Addr)
	} else {
		slog.Info("starting server", "addr", srv.Addr)
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.mu.Lock()
		s.running = true
		s.mu.Unlock()

		defer func() {
			s.mu.Lock()
			s.running = false
			s.mu.Unlock()
		}()

		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()

		slog.Info("shutting down server", "grace_period", s.shutdownTimeout)

		shutdownStart := time.Now()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown error", "error", err)
		}

		slog.Info("server shutdown complete", "duration", time.Since(shutdownStart))

		return nil
	})

	return g.Wait()
}
