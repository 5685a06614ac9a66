package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/erraggy/schemadiff/internal/cliutil"
	"github.com/erraggy/schemadiff/internal/mcpserver"
)

// SetupMCPFlags creates the FlagSet for the mcp command, which takes no flags.
func SetupMCPFlags() *flag.FlagSet {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: schemadiff mcp\n\n")
		cliutil.Writef(fs.Output(), "Run a Model Context Protocol server over stdio exposing the compare and detect_shape tools.\n\n")
		cliutil.Writef(fs.Output(), "Environment:\n")
		cliutil.Writef(fs.Output(), "  SCHEMADIFF_CACHE_ENABLED     cache comparison results (default: true)\n")
		cliutil.Writef(fs.Output(), "  SCHEMADIFF_CACHE_MAX_SIZE    maximum cached results (default: 128)\n")
		cliutil.Writef(fs.Output(), "  SCHEMADIFF_CACHE_TTL         lifetime of a cached result (default: 15m)\n")
		cliutil.Writef(fs.Output(), "  SCHEMADIFF_MAX_INLINE_SIZE   maximum inline content size in bytes (default: 10485760)\n")
	}
	return fs
}

// HandleMCP executes the mcp command
func HandleMCP(args []string) error {
	fs := SetupMCPFlags()
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() != 0 {
		fs.Usage()
		return fmt.Errorf("mcp command takes no arguments")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := mcpserver.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("mcp server: %w", err)
	}
	return nil
}
