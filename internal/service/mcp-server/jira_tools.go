package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// jiraTools returns the schemas advertised by tools/list.
func jiraTools() []mcp.Tool {
	// Get my issues tool
	getMyIssuesTool := mcp.NewTool(ToolGetMyIssues,
		mcp.WithDescription("Get issues assigned to current user"),
		mcp.WithNumber("maxResults",
			mcp.Description("Maximum number of issues to return (default: 50)"),
			mcp.DefaultNumber(defaultMaxResults),
		),
	)

	// Search issues tool
	searchIssuesTool := mcp.NewTool(ToolSearchIssues,
		mcp.WithDescription("Search for issues using JQL"),
		mcp.WithString("jql",
			mcp.Required(),
			mcp.Description("JQL query string"),
		),
		mcp.WithNumber("maxResults",
			mcp.Description("Maximum number of issues to return (default: 50)"),
			mcp.DefaultNumber(defaultMaxResults),
		),
	)

	// Get projects tool
	getProjectsTool := mcp.NewTool(ToolGetProjects,
		mcp.WithDescription("Get list of projects"),
	)

	// Get issue tool
	getIssueTool := mcp.NewTool(ToolGetIssue,
		mcp.WithDescription("Get detailed information about a specific issue"),
		mcp.WithString("issueKey",
			mcp.Required(),
			mcp.Description("Issue key (e.g., LB-8283)"),
		),
	)

	return []mcp.Tool{getMyIssuesTool, searchIssuesTool, getProjectsTool, getIssueTool}
}

// registerJiraTools registers all Jira-related tools with the server
func registerJiraTools(s *server.MCPServer, d *Dispatcher) {
	tools := jiraTools()
	serverTools := make([]server.ServerTool, 0, len(tools))
	for _, tool := range tools {
		serverTools = append(serverTools, server.ServerTool{Tool: tool, Handler: d.toolHandler()})
	}
	s.AddTools(serverTools...)
}

func (d *Dispatcher) toolHandler() server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return d.Call(ctx, request.Params.Name, request.GetArguments()), nil
	}
}
