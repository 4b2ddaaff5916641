// Package mcp exposes the database lookups as Model Context Protocol tools
// for an LLM-driven triage loop. Each core operation becomes one tool; the
// server additionally tracks the functions a session has already resolved
// so that by-name lookups can walk outward from known ground truth.
package mcp

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"

	"github.com/quarrylabs/quarry/internal/callgraph"
	"github.com/quarrylabs/quarry/internal/codeql"
	"github.com/quarrylabs/quarry/internal/config"
	"github.com/quarrylabs/quarry/internal/rowcsv"
	"github.com/quarrylabs/quarry/internal/search"
)

// Server manages the MCP server lifecycle around one database directory.
type Server struct {
	config  *config.Config
	db      codeql.Database
	lookup  *codeql.Lookup
	index   *search.Index
	session *session
	watcher *tableWatcher
	walker  *walkerRef
	mcp     *server.MCPServer
}

// NewServer creates a server for the database at cfg.Database.Path, builds
// the search index and caller graph, and registers all tools.
func NewServer(ctx context.Context, cfg *config.Config) (*Server, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if cfg.Database.Path == "" {
		return nil, fmt.Errorf("database path is required")
	}

	db := codeql.NewDatabase(cfg.Database.Path)
	lookup := codeql.NewLookup(rowcsv.Parse)

	rows, err := lookup.Functions(db.FunctionTreePath())
	if err != nil {
		return nil, fmt.Errorf("failed to load function table: %w", err)
	}

	index, err := search.NewIndex(ctx, rows, cfg.Search.Fuzziness)
	if err != nil {
		return nil, fmt.Errorf("failed to build search index: %w", err)
	}

	walker, err := callgraph.Build(rows)
	if err != nil {
		index.Close()
		return nil, fmt.Errorf("failed to build caller graph: %w", err)
	}

	s := &Server{
		config:  cfg,
		db:      db,
		lookup:  lookup,
		index:   index,
		session: newSession(),
		walker:  &walkerRef{walker: walker},
	}

	mcpServer := server.NewMCPServer(
		"quarry-mcp",
		"1.0.0",
		server.WithToolCapabilities(true),
	)
	AddFunctionByLineTool(mcpServer, s)
	AddFunctionByNameTool(mcpServer, s)
	AddMacroTool(mcpServer, s)
	AddGlobalVarTool(mcpServer, s)
	AddClassTool(mcpServer, s)
	AddCallerTool(mcpServer, s)
	AddCallChainTool(mcpServer, s)
	AddCalleesTool(mcpServer, s)
	AddExtractCodeTool(mcpServer, s)
	AddSearchFunctionsTool(mcpServer, s)
	AddListSourceFilesTool(mcpServer, s)
	s.mcp = mcpServer

	if cfg.Watcher.Enabled {
		debounce := time.Duration(cfg.Watcher.DebounceMs) * time.Millisecond
		watcher, err := newTableWatcher(s, cfg.Database.Path, debounce)
		if err != nil {
			index.Close()
			return nil, fmt.Errorf("failed to create table watcher: %w", err)
		}
		s.watcher = watcher
	}

	return s, nil
}

// Serve starts the MCP server on stdio and blocks until shutdown.
func (s *Server) Serve(ctx context.Context) error {
	if s.watcher != nil {
		s.watcher.Start(ctx)
		defer s.watcher.Stop()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting MCP server on stdio (database: %s)...", s.db.Dir())
		if err := server.ServeStdio(s.mcp); err != nil {
			errCh <- fmt.Errorf("MCP server error: %w", err)
		}
	}()

	select {
	case <-sigCh:
		log.Printf("Received shutdown signal, stopping gracefully...")
		cancel()
		return nil
	case err := <-errCh:
		cancel()
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Reload rebuilds the search index and caller graph from the current table
// contents. The resolvers need no reload: they rescan files on every call.
func (s *Server) Reload(ctx context.Context) error {
	rows, err := s.lookup.Functions(s.db.FunctionTreePath())
	if err != nil {
		return fmt.Errorf("failed to reload function table: %w", err)
	}

	if err := s.index.Rebuild(ctx, rows); err != nil {
		return fmt.Errorf("failed to rebuild search index: %w", err)
	}

	walker, err := callgraph.Build(rows)
	if err != nil {
		return fmt.Errorf("failed to rebuild caller graph: %w", err)
	}
	s.walker.set(walker)

	log.Printf("Reloaded function table: %d rows", len(rows))
	return nil
}

// Close releases all resources.
func (s *Server) Close() error {
	if s.watcher != nil {
		s.watcher.Stop()
	}
	if s.index != nil {
		return s.index.Close()
	}
	return nil
}
