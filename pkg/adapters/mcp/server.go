// Package mcp exposes the sentence engine as an MCP server, so agent hosts
// can run sentences and inspect the vocabulary as tools.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/plainspeak/plainspeak/pkg/domain"
	"github.com/plainspeak/plainspeak/pkg/lexicon"
	"github.com/plainspeak/plainspeak/pkg/session"
	"github.com/plainspeak/plainspeak/pkg/vars"
)

// Engine is the run surface each tool call needs.
type Engine interface {
	Run(ctx context.Context, sentence string) (*domain.Result, error)
}

// EngineFactory builds a fresh engine bound to a session's variable store.
type EngineFactory func(store *vars.Store) Engine

// RunResponse is the structured payload of the run_sentence tool.
type RunResponse struct {
	Session string `json:"session" jsonschema_description:"Session the sentence ran in"`
	Valid   bool   `json:"valid" jsonschema_description:"Whether the sentence passed validation"`
	Reason  string `json:"reason,omitempty" jsonschema_description:"Validation failure reason"`
	Value   any    `json:"value,omitempty" jsonschema_description:"Result of the final clause"`
	Stored  string `json:"stored,omitempty" jsonschema_description:"Variable the result was stored under"`
	Error   string `json:"error,omitempty" jsonschema_description:"Dispatch or invocation error"`
}

// Server wraps the engine and exposes it as an MCP server.
type Server struct {
	factory   EngineFactory
	sessions  *session.Manager
	catalog   *lexicon.Catalog
	usages    *lexicon.Usages
	version   string
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP server instance.
func NewServer(factory EngineFactory, sessions *session.Manager, catalog *lexicon.Catalog, usages *lexicon.Usages, version string) *Server {
	s := &Server{
		factory:   factory,
		sessions:  sessions,
		catalog:   catalog,
		usages:    usages,
		version:   strings.TrimSpace(version),
		mcpServer: server.NewMCPServer("plainspeak-mcp", strings.TrimSpace(version)),
	}
	s.registerTools()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: run_sentence
	runTool := mcp.NewTool("run_sentence",
		mcp.WithDescription("Run one English-like command sentence, e.g. 'GET [text] FROM {file.txt}.'"),
		mcp.WithString("sentence", mcp.Required(), mcp.Description("The sentence to run, terminated by '.', '?' or '!'")),
		mcp.WithString("session", mcp.Description("Session ID carrying variables between calls (optional)")),
		mcp.WithOutputSchema[RunResponse](),
	)
	s.mcpServer.AddTool(runTool, mcp.NewStructuredToolHandler(s.handleRun))

	// TOOL: list_verbs
	s.mcpServer.AddTool(mcp.NewTool("list_verbs",
		mcp.WithDescription("List the registered verb keywords, their shapes and usages."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		type verb struct {
			Name     string   `json:"name"`
			Synonyms []string `json:"synonyms,omitempty"`
			Shape    string   `json:"shape"`
			Usages   []string `json:"usages"`
		}
		var out []verb
		for _, k := range s.catalog.Verbs() {
			out = append(out, verb{
				Name:     k.Name,
				Synonyms: k.Synonyms,
				Shape:    k.Roles.Shape(),
				Usages:   s.usages.Names(k.Name),
			})
		}
		jsonBytes, _ := json.Marshal(out)
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})

	// TOOL: list_variables
	s.mcpServer.AddTool(mcp.NewTool("list_variables",
		mcp.WithDescription("List the variables registered in a session."),
		mcp.WithString("session", mcp.Required(), mcp.Description("Session ID")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := request.GetString("session", "")
		snapshot, err := s.sessions.Load(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("load failed: %v", err)), nil
		}
		names := make([]string, 0, len(snapshot))
		for name := range snapshot {
			names = append(names, name)
		}
		jsonBytes, _ := json.Marshal(names)
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})
}

func (s *Server) handleRun(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (RunResponse, error) {
	sentence, _ := args["sentence"].(string)
	if sentence == "" {
		return RunResponse{}, fmt.Errorf("sentence is required")
	}
	id, _ := args["session"].(string)
	if id == "" {
		id = "mcp-default"
	}

	resp := RunResponse{Session: id}
	err := s.sessions.WithLock(ctx, id, func(ctx context.Context) error {
		snapshot, err := s.sessions.Store().Load(ctx, id)
		if err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
			return err
		}

		store := vars.NewStore()
		if snapshot != nil {
			store.Restore(snapshot)
		}

		engine := s.factory(store)
		result, runErr := engine.Run(ctx, sentence)
		if result != nil {
			resp.Valid = result.Validation.Valid
			resp.Reason = result.Validation.Reason
			resp.Value = result.Value
			resp.Stored = result.Stored
		}
		if runErr != nil {
			resp.Error = runErr.Error()
			return nil
		}
		return s.sessions.Store().Save(ctx, id, store.Snapshot())
	})
	if err != nil {
		return RunResponse{}, fmt.Errorf("run failed: %w", err)
	}
	return resp, nil
}
