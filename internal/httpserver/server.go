// Package httpserver serves comparisons over HTTP.
//
// Routes:
//
//	POST /api/compare   body {"oldSchema": <json>, "newSchema": <json>}
//	GET  /healthz       liveness probe
//	GET  /metrics       Prometheus exposition
//
// The compare route accepts optional query parameters mode (auto, openapi or
// json) and noInfo (a boolean that drops informational changes).
package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tidwall/gjson"

	"github.com/erraggy/schemadiff/differ"
	"github.com/erraggy/schemadiff/internal/resultcache"
	"github.com/erraggy/schemadiff/parser"
)

const (
	// DefaultAddr is the listen address used when Config.Addr is empty.
	DefaultAddr = ":8080"
	// DefaultMaxBodyBytes bounds a compare request body, room for two
	// documents of the parser's default size.
	DefaultMaxBodyBytes = 2 * parser.DefaultMaxFileSize
	// DefaultCacheTTL is how long a cached comparison stays valid.
	DefaultCacheTTL = 10 * time.Minute
	// DefaultShutdownTimeout bounds graceful shutdown.
	DefaultShutdownTimeout = 10 * time.Second
)

// Error bodies returned by the compare route.
const (
	msgMissingSchemas = "Both oldSchema and newSchema are required"
	msgInvalidBody    = "invalid request body"
)

// Config holds the HTTP server settings.
type Config struct {
	// Addr is the TCP listen address.
	// Default: DefaultAddr
	Addr string
	// MaxBodyBytes is the largest accepted compare request body.
	// Default: DefaultMaxBodyBytes
	MaxBodyBytes int64
	// CacheSize is the number of cached results. Zero selects
	// resultcache.DefaultMaxSize and a negative value disables caching.
	CacheSize int
	// CacheTTL is the lifetime of a cached result.
	// Default: DefaultCacheTTL
	CacheTTL time.Duration
	// ShutdownTimeout bounds graceful shutdown once the context is done.
	// Default: DefaultShutdownTimeout
	ShutdownTimeout time.Duration
}

func (c Config) withDefaults() Config {
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if c.CacheTTL <= 0 {
		c.CacheTTL = DefaultCacheTTL
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = DefaultShutdownTimeout
	}
	return c
}

// Server is the HTTP front end of the differ.
type Server struct {
	cfg      Config
	logger   *slog.Logger
	cache    *resultcache.Cache
	registry *prometheus.Registry
	metrics  *metrics
	router   *httprouter.Router
}

// New builds a server. A nil logger discards output and a nil registry gets
// a fresh one, so metrics never collide with the global default registry.
func New(cfg Config, logger *slog.Logger, registry *prometheus.Registry) *Server {
	cfg = cfg.withDefaults()
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	s := &Server{
		cfg:      cfg,
		logger:   logger,
		registry: registry,
		metrics:  newMetrics(registry),
	}
	if cfg.CacheSize >= 0 {
		s.cache = resultcache.New(cfg.CacheSize, cfg.CacheTTL)
	}
	registerCacheSize(registry, s.cache)

	r := httprouter.New()
	r.POST("/api/compare", s.instrument("compare", s.handleCompare))
	r.GET("/healthz", s.instrument("healthz", handleHealth))
	r.Handler(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{
		Registry: registry,
	}))
	s.router = r
	return s
}

// Handler returns the routed handler, useful for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Cache returns the result cache, nil when caching is disabled.
func (s *Server) Cache() *resultcache.Cache {
	return s.cache
}

// Run listens on the configured address and serves until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("httpserver: listen on %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done, then shuts down
// gracefully within Config.ShutdownTimeout.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	s.logger.Info("http server listening", "addr", ln.Addr().String())

	select {
	case err := <-errCh:
		return fmt.Errorf("httpserver: serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("httpserver: shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("httpserver: serve: %w", err)
	}
	s.logger.Info("http server stopped")
	return nil
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes))
	if err != nil || !gjson.ValidBytes(body) {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	source, okSource := schemaField(body, "oldSchema")
	target, okTarget := schemaField(body, "newSchema")
	if !okSource || !okTarget {
		writeError(w, http.StatusBadRequest, msgMissingSchemas)
		return
	}

	d, err := s.differFor(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, hit := s.cache.Compare(d, source, target)
	s.metrics.observeResult(result, hit)
	if hit {
		w.Header().Set("X-Schemadiff-Cache", "hit")
	} else {
		w.Header().Set("X-Schemadiff-Cache", "miss")
	}
	writeJSON(w, http.StatusOK, result)
}

// schemaField decodes one side of the request. Absent, null, false, zero and
// empty-string values count as missing.
func schemaField(body []byte, name string) (any, bool) {
	res := gjson.GetBytes(body, name)
	if !res.Exists() {
		return nil, false
	}
	var v any
	if err := json.Unmarshal([]byte(res.Raw), &v); err != nil {
		return nil, false
	}
	return v, parser.Truthy(v)
}

func (s *Server) differFor(r *http.Request) (*differ.Differ, error) {
	q := r.URL.Query()
	d := differ.New()
	d.Logger = parser.NewSlogAdapter(s.logger)

	mode, err := differ.ParseMode(q.Get("mode"))
	if err != nil {
		return nil, err
	}
	d.Mode = mode

	if raw := q.Get("noInfo"); raw != "" {
		noInfo, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid noInfo value %q", raw)
		}
		d.IncludeInfo = !noInfo
	}
	return d, nil
}

func handleHealth(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) instrument(route string, next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rec, r, ps)

		elapsed := time.Since(start)
		s.metrics.requests.WithLabelValues(route, strconv.Itoa(rec.status)).Inc()
		s.metrics.duration.WithLabelValues(route).Observe(elapsed.Seconds())
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", elapsed)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
