// Command issue prints one Jira issue, rendered the same way the MCP
// get_issue tool renders it. Useful for checking credentials.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"jira_simple/internal/config"
	"jira_simple/internal/logger"
	"jira_simple/internal/service/jira"
	mcpserver "jira_simple/internal/service/mcp-server"

	"github.com/mark3labs/mcp-go/mcp"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		return 1
	}

	if len(args) != 1 || strings.TrimSpace(args[0]) == "" {
		fmt.Fprintln(os.Stderr, "❌ Usage: issue <ISSUE_KEY>")
		fmt.Fprintln(os.Stderr, "   Example: issue LB-8421")
		return 1
	}

	if err := logger.Init(cfg.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		return 1
	}
	defer logger.Sync() // nolint:errcheck

	dispatcher := mcpserver.NewDispatcher(jira.NewClient(cfg))
	result := dispatcher.Call(context.Background(), mcpserver.ToolGetIssue, map[string]any{"issueKey": args[0]})

	exit := 0
	for _, content := range result.Content {
		text, ok := content.(mcp.TextContent)
		if !ok {
			continue
		}
		if mcpserver.IsErrorText(text.Text) {
			fmt.Fprintln(os.Stderr, text.Text)
			exit = 1
			continue
		}
		fmt.Println(text.Text)
	}
	return exit
}
