// Command logtail is the entry point: it wires the Search Worker, the
// source Lister, the rate tracker, the optional MCP server, and the
// bubbletea program together, the same top-level assembly the teacher's
// main.go does for its Docker TUI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/docker/docker/client"

	"github.com/tuilog/logtail/internal/crashlog"
	"github.com/tuilog/logtail/internal/mcpsearch"
	"github.com/tuilog/logtail/internal/ratetracker"
	"github.com/tuilog/logtail/internal/source"
	"github.com/tuilog/logtail/internal/tui"
	"github.com/tuilog/logtail/internal/worker"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			crashlog.Write(r, "main")
			os.Exit(1)
		}
	}()

	var (
		budgetBytes  int64 = 1 << 30
		mcpServerOn        = false
		mcpPort            = 9876
		staticSrcs   []string
		wrap               = true
	)

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--help", "-h":
			printHelp()
			os.Exit(0)

		case "--budget-bytes":
			if i+1 < len(args) {
				i++
				if n, err := strconv.ParseInt(args[i], 10, 64); err == nil && n > 0 {
					budgetBytes = n
				}
			}

		case "--source":
			if i+1 < len(args) {
				i++
				staticSrcs = append(staticSrcs, args[i])
			}

		case "--mcp-server":
			mcpServerOn = true

		case "--mcp-port":
			if i+1 < len(args) {
				i++
				if n, err := strconv.Atoi(args[i]); err == nil {
					mcpPort = n
				}
			}

		case "--no-wrap":
			wrap = false
		}
	}

	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		fmt.Printf("Error creating Docker client: %v\n", err)
		os.Exit(1)
	}
	defer cli.Close()

	var sources source.Lister
	if len(staticSrcs) > 0 {
		sources = source.NewStaticLister(staticSrcs)
	} else {
		sources = source.NewDockerLister(source.NewDockerContainerLister(cli))
	}

	rateTracker := ratetracker.NewManager()

	w := worker.New(budgetBytes)
	crashlog.SafeGo("search-worker", w.Run)

	var mcpServer *mcpsearch.Server
	if mcpServerOn {
		mcpServer, err = mcpsearch.New(w.Commands(), sources, mcpPort)
		if err != nil {
			fmt.Printf("Error creating MCP server: %v\n", err)
			os.Exit(1)
		}
		crashlog.SafeGo("mcp-server", func() {
			fmt.Printf("Starting MCP HTTP server on port %d...\n", mcpPort)
			if err := mcpServer.Start(); err != nil {
				fmt.Fprintf(os.Stderr, "MCP server error: %v\n", err)
			}
		})
	}

	m := tui.New(cli, w.Commands(), w.Results(), sources, rateTracker, wrap)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())

	crashlog.SafeGo("shutdown-handler", func() {
		<-sigChan
		m.Stop()
		if mcpServer != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			mcpServer.Shutdown(ctx)
		}
		p.Quit()
	})

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		m.Stop()
		os.Exit(1)
	}

	m.Stop()
	if mcpServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		mcpServer.Shutdown(ctx)
	}
}

func printHelp() {
	fmt.Println("logtail - merged pod/topic log viewer")
	fmt.Println()
	fmt.Println("Usage: logtail [OPTIONS]")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --source kind=name         Add a static source (pod=<container> or topic=<name>); repeatable")
	fmt.Println("  --budget-bytes N           Memory budget for the record store (default: 1GiB)")
	fmt.Println("  --mcp-server               Enable the MCP HTTP server alongside the TUI")
	fmt.Println("  --mcp-port PORT            Set the MCP server port (default: 9876)")
	fmt.Println("  --no-wrap                  Start in truncate mode instead of wrap mode")
	fmt.Println("  --help, -h                 Show this help message")
	fmt.Println()
	fmt.Println("Keyboard shortcuts:")
	fmt.Println("  Up/Down            Scroll")
	fmt.Println("  Enter              Return to follow mode")
	fmt.Println("  (typing)           Edit the query line; space-separated tokens, !token negates")
	fmt.Println("  Ctrl-Q/W/E/R       Toggle DEBUG/INFO/WARN/ERROR")
	fmt.Println("  Ctrl-L             Toggle wrap/truncate")
	fmt.Println("  Ctrl-P             Select pods")
	fmt.Println("  Ctrl-K             Select topics")
	fmt.Println("  Ctrl-C             Quit")
}
