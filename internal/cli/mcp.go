package cli

import (
	"context"
	"fmt"

	"github.com/plainspeak/plainspeak"
	mcpadapter "github.com/plainspeak/plainspeak/pkg/adapters/mcp"
	"github.com/plainspeak/plainspeak/pkg/vars"
)

// MCPOptions configures the MCP server command.
type MCPOptions struct {
	RunOptions
	Transport string // "stdio" or "sse"
	Port      int    // SSE only
}

// ServeMCP starts the engine as an MCP server on the chosen transport.
func ServeMCP(ctx context.Context, opts MCPOptions) error {
	logger := createLogger(opts.Debug)
	cfg, err := LoadConfig(opts.ConfigPath)
	if err != nil {
		return err
	}
	opts.RunOptions = opts.RunOptions.merge(cfg)

	deps := newEngineDeps(cfg, opts.RunOptions, logger, nil)
	sessions := newSessionManager(opts.RunOptions, logger)

	factory := func(store *vars.Store) mcpadapter.Engine {
		return deps.factory(store)
	}
	srv := mcpadapter.NewServer(factory, sessions, deps.catalog, deps.usages, plainspeak.Version)

	switch opts.Transport {
	case "stdio":
		logger.Info("MCP server starting (stdio)")
		return srv.ServeStdio()
	case "sse":
		logger.Info("MCP server starting (SSE)", "port", opts.Port)
		return srv.ServeSSE(ctx, opts.Port)
	default:
		return fmt.Errorf("unknown transport %q (supported: stdio, sse)", opts.Transport)
	}
}
