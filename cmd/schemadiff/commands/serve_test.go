package commands

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/schemadiff/internal/httpserver"
)

func TestSetupServeFlags(t *testing.T) {
	fs, flags := SetupServeFlags()

	assert.Equal(t, httpserver.DefaultAddr, flags.Addr)
	assert.Equal(t, httpserver.DefaultMaxBodyBytes, flags.MaxBodyBytes)
	assert.Equal(t, 0, flags.CacheSize)
	assert.Equal(t, httpserver.DefaultCacheTTL, flags.CacheTTL)
	assert.Zero(t, flags.StatsInterval)

	require.NoError(t, fs.Parse([]string{"--addr", ":9090", "--cache-size", "-1", "--cache-ttl", "1h", "--stats-interval", "30s"}))
	assert.Equal(t, ":9090", flags.Addr)
	assert.Equal(t, -1, flags.CacheSize)
	assert.Equal(t, time.Hour, flags.CacheTTL)
	assert.Equal(t, 30*time.Second, flags.StatsInterval)
}

func TestHandleServe_Args(t *testing.T) {
	assert.NoError(t, HandleServe([]string{"--help"}))

	err := HandleServe([]string{"extra"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "serve command takes no arguments")
}

func TestRunServe_StopsOnCancel(t *testing.T) {
	var stderr bytes.Buffer
	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	err := runServe(ctx, &ServeFlags{
		Addr:          "127.0.0.1:0",
		StatsInterval: 20 * time.Millisecond,
	}, &stderr)
	require.NoError(t, err)

	logs := stderr.String()
	assert.Contains(t, logs, "http server listening")
	assert.Contains(t, logs, "cache stats")
	assert.Contains(t, logs, "http server stopped")
}

func TestRunServe_ListenError(t *testing.T) {
	var stderr bytes.Buffer
	err := runServe(context.Background(), &ServeFlags{Addr: "256.0.0.1:bad"}, &stderr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "httpserver: listen on")
}

func TestHandleMCP_Args(t *testing.T) {
	assert.NoError(t, HandleMCP([]string{"--help"}))

	err := HandleMCP([]string{"extra"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mcp command takes no arguments")
}
