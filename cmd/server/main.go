package main

import (
	"context"
	"fmt"
	"os"

	"jira_simple/internal/config"
	"jira_simple/internal/logger"
	"jira_simple/internal/service/jira"
	mcpserver "jira_simple/internal/service/mcp-server"

	"go.uber.org/zap"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Authentication Error: %v\n", err)
		return 1
	}

	if err := logger.Init(cfg.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		return 1
	}
	defer logger.Sync() // nolint:errcheck

	dispatcher := mcpserver.NewDispatcher(jira.NewClient(cfg))

	// Create new MCP server
	server := mcpserver.NewServer(dispatcher)

	// Start server
	logger.GetLogger().Info("Jira Simple MCP Server running on stdio", zap.String("jira_url", cfg.JiraURL))
	if err := mcpserver.Serve(context.Background(), server, dispatcher, os.Stdin, os.Stdout); err != nil {
		logger.GetLogger().Error("server error", zap.Error(err))
		return 1
	}
	return 0
}
