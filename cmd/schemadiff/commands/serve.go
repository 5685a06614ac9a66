package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"github.com/erraggy/schemadiff/internal/cliutil"
	"github.com/erraggy/schemadiff/internal/httpserver"
)

// ServeFlags contains flags for the serve command
type ServeFlags struct {
	Addr          string
	MaxBodyBytes  int64
	CacheSize     int
	CacheTTL      time.Duration
	StatsInterval time.Duration
	Verbose       bool
}

// SetupServeFlags creates and configures a FlagSet for the serve command.
// Returns the FlagSet and a ServeFlags struct with bound flag variables.
func SetupServeFlags() (*flag.FlagSet, *ServeFlags) {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	flags := &ServeFlags{}

	fs.StringVar(&flags.Addr, "addr", httpserver.DefaultAddr, "listen address")
	fs.Int64Var(&flags.MaxBodyBytes, "max-body-bytes", httpserver.DefaultMaxBodyBytes, "largest accepted request body in bytes")
	fs.IntVar(&flags.CacheSize, "cache-size", 0, "number of cached comparison results (0 for the default, negative to disable)")
	fs.DurationVar(&flags.CacheTTL, "cache-ttl", httpserver.DefaultCacheTTL, "lifetime of a cached comparison result")
	fs.DurationVar(&flags.StatsInterval, "stats-interval", 0, "log cache statistics at this interval (0 disables)")
	fs.BoolVar(&flags.Verbose, "verbose", false, "log debug output to stderr")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: schemadiff serve [flags]\n\n")
		cliutil.Writef(fs.Output(), "Serve comparisons over HTTP until interrupted.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nRoutes:\n")
		cliutil.Writef(fs.Output(), "  POST /api/compare   body {\"oldSchema\": <json>, \"newSchema\": <json>}\n")
		cliutil.Writef(fs.Output(), "                      query: mode=auto|openapi|json, noInfo=true\n")
		cliutil.Writef(fs.Output(), "  GET  /healthz       liveness probe\n")
		cliutil.Writef(fs.Output(), "  GET  /metrics       Prometheus metrics\n")
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  schemadiff serve\n")
		cliutil.Writef(fs.Output(), "  schemadiff serve --addr 127.0.0.1:9090 --cache-ttl 1h\n")
	}

	return fs, flags
}

// HandleServe executes the serve command
func HandleServe(args []string) error {
	fs, flags := SetupServeFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() != 0 {
		fs.Usage()
		return fmt.Errorf("serve command takes no arguments")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return runServe(ctx, flags, os.Stderr)
}

func runServe(ctx context.Context, flags *ServeFlags, stderr io.Writer) error {
	logger := newLogger(stderr, flags.Verbose)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	srv := httpserver.New(httpserver.Config{
		Addr:         flags.Addr,
		MaxBodyBytes: flags.MaxBodyBytes,
		CacheSize:    flags.CacheSize,
		CacheTTL:     flags.CacheTTL,
	}, logger, registry)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run(gctx)
	})
	if flags.StatsInterval > 0 {
		g.Go(func() error {
			reportCacheStats(gctx, srv, logger, flags.StatsInterval)
			return nil
		})
	}
	return g.Wait()
}

func reportCacheStats(ctx context.Context, srv *httpserver.Server, logger *slog.Logger, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			stats := srv.Cache().Stats()
			logger.Info("cache stats",
				"size", stats.Size,
				"max_size", stats.MaxSize,
				"hits", stats.Hits,
				"misses", stats.Misses,
				"evictions", stats.Evictions)
		}
	}
}
