package server

import (
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/widgetlab/widget-cli/internal/selector"
	"github.com/widgetlab/widget-cli/internal/snapshot"
	"github.com/widgetlab/widget-cli/internal/version"
)

// Config holds MCP server configuration.
type Config struct {
	Transport    string
	Port         int
	CacheTTL     time.Duration
	SnapshotPath string
	IgnoreCase   bool
}

// Server exposes selector resolution as MCP tools over a cached snapshot.
type Server struct {
	provider snapshot.Provider
	cache    *snapshot.Cache
	resolver *selector.Resolver
	mcp      *mcpserver.MCPServer
}

// New creates and configures an MCP server with all widget-cli tools.
func New(cfg Config) (*Server, error) {
	if cfg.SnapshotPath == "" {
		return nil, fmt.Errorf("--snapshot is required for serve")
	}
	s := &Server{
		provider: &snapshot.FileProvider{Path: cfg.SnapshotPath},
		cache:    snapshot.NewCache(cfg.CacheTTL),
		resolver: selector.New(selector.Options{IgnoreCase: cfg.IgnoreCase}),
	}

	s.mcp = mcpserver.NewMCPServer("widget-cli", version.Version)
	s.registerTools()
	return s, nil
}

// Serve starts the MCP server with the configured transport.
func (s *Server) Serve(cfg Config) error {
	switch cfg.Transport {
	case "stdio":
		return mcpserver.ServeStdio(s.mcp)
	case "streamable-http":
		httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
		return httpServer.Start(fmt.Sprintf(":%d", cfg.Port))
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", cfg.Transport)
	}
}

func (s *Server) registerTools() {
	// query
	s.mcp.AddTool(
		mcp.NewTool("query",
			mcp.WithDescription("Resolve a cascaded selector against the widget tree and return every match. Engines: css (default), class=, name=, text=, index=, xpath=, id=, plus cell/row/column/node/tab/menu container segments."),
			mcp.WithString("selector", mcp.Description("Cascaded selector, segments joined with '>>' (descendant) or '>' (direct child)"), mcp.Required()),
			mcp.WithString("root", mcp.Description("Scope to the subtree below this widget UID or name")),
			mcp.WithNumber("depth", mcp.Description("Max depth to search (0 = unlimited)")),
		),
		s.handleQuery,
	)

	// find
	s.mcp.AddTool(
		mcp.NewTool("find",
			mcp.WithDescription("Resolve a cascaded selector that must match exactly one widget. Zero matches or multiple matches is an error listing the candidates."),
			mcp.WithString("selector", mcp.Description("Cascaded selector"), mcp.Required()),
			mcp.WithString("root", mcp.Description("Scope to the subtree below this widget UID or name")),
			mcp.WithNumber("depth", mcp.Description("Max depth to search (0 = unlimited)")),
		),
		s.handleFind,
	)

	// exists
	s.mcp.AddTool(
		mcp.NewTool("exists",
			mcp.WithDescription("Check whether a cascaded selector matches at least one widget"),
			mcp.WithString("selector", mcp.Description("Cascaded selector"), mcp.Required()),
			mcp.WithString("root", mcp.Description("Scope to the subtree below this widget UID or name")),
			mcp.WithNumber("depth", mcp.Description("Max depth to search (0 = unlimited)")),
		),
		s.handleExists,
	)

	// tree
	s.mcp.AddTool(
		mcp.NewTool("tree",
			mcp.WithDescription("Read the widget tree snapshot. Returns widgets with IDs, types, names, text, and bounds."),
			mcp.WithString("root", mcp.Description("Scope to the subtree below this widget UID or name")),
			mcp.WithNumber("depth", mcp.Description("Max depth to return (0 = unlimited)")),
			mcp.WithBoolean("flat", mcp.Description("Return a flat list with path breadcrumbs instead of a tree")),
		),
		s.handleTree,
	)

	// explain
	s.mcp.AddTool(
		mcp.NewTool("explain",
			mcp.WithDescription("Tokenize a cascaded selector and report its segments, engines, and capture marker without resolving it"),
			mcp.WithString("selector", mcp.Description("Cascaded selector"), mcp.Required()),
		),
		s.handleExplain,
	)

	// refresh
	s.mcp.AddTool(
		mcp.NewTool("refresh",
			mcp.WithDescription("Invalidate the cached snapshot so the next query re-reads it"),
			mcp.WithString("root", mcp.Description("Invalidate only this fetch scope (default: everything)")),
		),
		s.handleRefresh,
	)
}
