package mcpserver

import (
	"github.com/mark3labs/mcp-go/server"
)

// Server identity reported during initialize.
const (
	ServerName    = "jira-simple-mcp"
	ServerVersion = "1.0.0"
)

// NewServer creates a new MCP server instance
func NewServer(d *Dispatcher) *server.MCPServer {
	// Create MCP server
	s := server.NewMCPServer(
		ServerName,
		ServerVersion,
		server.WithToolCapabilities(false),
	)

	// Add Jira tools
	registerJiraTools(s, d)

	return s
}
