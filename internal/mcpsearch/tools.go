package mcpsearch

import (
	"context"
	"fmt"
	"strings"

	"github.com/ThinkInAIXYZ/go-mcp/protocol"

	"github.com/tuilog/logtail/internal/logline"
	"github.com/tuilog/logtail/internal/worker"
)

// handleSearchLogs implements the search_logs tool, grounded on the
// teacher's handleGetLogs (mcptools.go): parse arguments, apply defaults,
// run the query, render one line per record.
func (s *Server) handleSearchLogs(ctx context.Context, request *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	args := new(SearchLogsArgs)
	if err := protocol.VerifyAndUnmarshal(request.RawArguments, args); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}

	if args.Lines == 0 {
		args.Lines = 100
	}
	if args.Lines > 10000 {
		args.Lines = 10000
	}

	mask := logline.LevelMask(0)
	for _, name := range args.Levels {
		l, ok := logline.ParseLevel(name)
		if !ok {
			continue
		}
		mask |= l.Bit()
	}

	records := s.querySnapshot(worker.SnapshotQuery{
		Pattern:   args.Filter,
		Negatives: args.NotFilter,
		Mask:      mask,
		Limit:     args.Lines,
	})

	if len(records) == 0 {
		return textResult("No matching records"), nil
	}

	var out strings.Builder
	for _, r := range records {
		fmt.Fprintf(&out, "[%s] %s %s %s\n",
			r.Timestamp.Format("2006-01-02T15:04:05.000Z07:00"),
			r.Source, r.Level, r.Value)
	}

	return textResult(out.String()), nil
}

// handleListSources implements the list_sources tool, grounded on the
// teacher's handleListContainers.
func (s *Server) handleListSources(ctx context.Context, request *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	args := new(ListSourcesArgs)
	if err := protocol.VerifyAndUnmarshal(request.RawArguments, args); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}

	candidates, err := s.sources.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list sources: %w", err)
	}

	var out strings.Builder
	n := 0
	for _, c := range candidates {
		if args.KindFilter != "" && !strings.EqualFold(c.Kind.String(), args.KindFilter) {
			continue
		}
		fmt.Fprintf(&out, "%s\t%s\n", c.Kind, c.Name)
		n++
	}

	if n == 0 {
		return textResult("No sources found"), nil
	}
	return textResult(out.String()), nil
}

// handleToggleLevel implements the toggle_level tool: fire-and-forget a
// ToggleLevel command at the live Worker, the same command the TUI's
// Ctrl-Q/W/E/R key bindings send (spec §6).
func (s *Server) handleToggleLevel(ctx context.Context, request *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	args := new(ToggleLevelArgs)
	if err := protocol.VerifyAndUnmarshal(request.RawArguments, args); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}

	l, ok := logline.ParseLevel(args.Level)
	if !ok {
		return nil, fmt.Errorf("unrecognized level %q", args.Level)
	}

	s.commands <- worker.ToggleLevel{Level: l}
	return textResult(fmt.Sprintf("toggled %s", l)), nil
}

func textResult(text string) *protocol.CallToolResult {
	return &protocol.CallToolResult{
		Content: []protocol.Content{
			&protocol.TextContent{
				Type: "text",
				Text: text,
			},
		},
	}
}
