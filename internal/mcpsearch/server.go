// Package mcpsearch exposes the Search Worker over MCP the way the
// teacher's mcpserver.go/mcptools.go expose Docker container state: a
// StreamableHTTPServerTransport carrying a handful of read/act tools, so
// an external MCP client can drive the same query evaluator the TUI
// drives without a second implementation of search. Where the teacher's
// tools mutate container lifecycle (start/stop/restart), these act only
// on the live filter/mask, since pods/topics have no comparable
// lifecycle here (see DESIGN.md).
package mcpsearch

import (
	"context"
	"fmt"
	"time"

	"github.com/ThinkInAIXYZ/go-mcp/protocol"
	"github.com/ThinkInAIXYZ/go-mcp/server"
	"github.com/ThinkInAIXYZ/go-mcp/transport"

	"github.com/tuilog/logtail/internal/logline"
	"github.com/tuilog/logtail/internal/source"
	"github.com/tuilog/logtail/internal/worker"
)

// Version is set via ldflags during build, matching the teacher's own
// version stamping in main.go/mcpserver.go.
var Version = "dev"

// Server manages the MCP HTTP server fronting the Search Worker.
type Server struct {
	commands  chan<- worker.Command
	sources   source.Lister
	port      int
	mcpServer *server.Server
}

// New creates a Server bound to an already-running Worker's command
// channel and a source Lister for list_sources.
func New(commands chan<- worker.Command, sources source.Lister, port int) (*Server, error) {
	s := &Server{
		commands: commands,
		sources:  sources,
		port:     port,
	}

	mcpTransport := transport.NewStreamableHTTPServerTransport(
		fmt.Sprintf(":%d", port),
		transport.WithStreamableHTTPServerTransportOptionEndpoint("/mcp"),
		transport.WithStreamableHTTPServerTransportOptionStateMode(transport.Stateful),
	)

	var err error
	s.mcpServer, err = server.NewServer(
		mcpTransport,
		server.WithServerInfo(protocol.Implementation{
			Name:    "logtail-mcp",
			Version: Version,
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create MCP server: %w", err)
	}

	if err := s.registerTools(); err != nil {
		return nil, fmt.Errorf("failed to register tools: %w", err)
	}

	return s, nil
}

// registerTools registers search_logs, list_sources, and toggle_level.
func (s *Server) registerTools() error {
	searchLogsTool, err := protocol.NewTool(
		"search_logs",
		"Search the merged pod/topic log stream with a positive/negative regex filter and level mask",
		SearchLogsArgs{},
	)
	if err != nil {
		return fmt.Errorf("failed to create search_logs tool: %w", err)
	}
	s.mcpServer.RegisterTool(searchLogsTool, s.handleSearchLogs)

	listSourcesTool, err := protocol.NewTool(
		"list_sources",
		"List the candidate pod/topic sources available at startup",
		ListSourcesArgs{},
	)
	if err != nil {
		return fmt.Errorf("failed to create list_sources tool: %w", err)
	}
	s.mcpServer.RegisterTool(listSourcesTool, s.handleListSources)

	toggleLevelTool, err := protocol.NewTool(
		"toggle_level",
		"Toggle one severity level in the live view's level mask",
		ToggleLevelArgs{},
	)
	if err != nil {
		return fmt.Errorf("failed to create toggle_level tool: %w", err)
	}
	s.mcpServer.RegisterTool(toggleLevelTool, s.handleToggleLevel)

	return nil
}

// Start runs the MCP server (blocking call), matching the teacher's own
// MCPServer.Start contract.
func (s *Server) Start() error {
	return s.mcpServer.Run()
}

// Shutdown gracefully shuts down the MCP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.mcpServer.Shutdown(ctx)
}

// querySnapshot sends q to the Worker and blocks for its reply, bounded by
// a timeout so a wedged Worker cannot hang an MCP request forever. q.Reply
// is set here; callers must leave it nil.
func (s *Server) querySnapshot(q worker.SnapshotQuery) []logline.Record {
	reply := make(chan []logline.Record, 1)
	q.Reply = reply
	s.commands <- q

	select {
	case records := <-reply:
		return records
	case <-time.After(5 * time.Second):
		return nil
	}
}
