package mcpserver

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rpcResponse struct {
	ID     json.RawMessage `json:"id"`
	Result json.RawMessage `json:"result"`
	Error  *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type toolResult struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	IsError bool `json:"isError"`
}

// serveLines feeds requests through Serve and returns the decoded response lines.
func serveLines(t *testing.T, d *Dispatcher, requests ...string) []rpcResponse {
	t.Helper()

	s := NewServer(d)

	var out bytes.Buffer
	in := strings.NewReader(strings.Join(requests, "\n") + "\n")
	require.NoError(t, Serve(context.Background(), s, d, in, &out))

	var responses []rpcResponse
	scanner := bufio.NewScanner(&out)
	for scanner.Scan() {
		var resp rpcResponse
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &resp), scanner.Text())
		responses = append(responses, resp)
	}
	require.NoError(t, scanner.Err())
	return responses
}

func decodeToolResult(t *testing.T, resp rpcResponse) toolResult {
	t.Helper()
	require.Nil(t, resp.Error)
	var res toolResult
	require.NoError(t, json.Unmarshal(resp.Result, &res))
	require.Len(t, res.Content, 1)
	assert.Equal(t, "text", res.Content[0].Type)
	return res
}

const initializeRequest = `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2024-11-05","capabilities":{},"clientInfo":{"name":"test","version":"0.0.1"}}}`

func TestServeInitializeAndList(t *testing.T) {
	t.Parallel()

	api := &countingAPI{}
	responses := serveLines(t, NewDispatcher(api),
		initializeRequest,
		`{"jsonrpc":"2.0","method":"notifications/initialized"}`,
		`{"jsonrpc":"2.0","id":2,"method":"tools/list"}`,
	)
	require.Len(t, responses, 2)

	var initResult struct {
		ServerInfo struct {
			Name    string `json:"name"`
			Version string `json:"version"`
		} `json:"serverInfo"`
	}
	require.Nil(t, responses[0].Error)
	require.NoError(t, json.Unmarshal(responses[0].Result, &initResult))
	assert.Equal(t, ServerName, initResult.ServerInfo.Name)
	assert.Equal(t, ServerVersion, initResult.ServerInfo.Version)

	var list struct {
		Tools []struct {
			Name        string `json:"name"`
			Description string `json:"description"`
			InputSchema struct {
				Type       string                     `json:"type"`
				Properties map[string]json.RawMessage `json:"properties"`
				Required   []string                   `json:"required"`
			} `json:"inputSchema"`
		} `json:"tools"`
	}
	require.Nil(t, responses[1].Error)
	require.NoError(t, json.Unmarshal(responses[1].Result, &list))

	byName := map[string]int{}
	for i, tool := range list.Tools {
		byName[tool.Name] = i
		assert.Equal(t, "object", tool.InputSchema.Type)
		assert.NotEmpty(t, tool.Description)
	}
	require.Len(t, byName, 4)

	search := list.Tools[byName[ToolSearchIssues]]
	assert.Equal(t, []string{"jql"}, search.InputSchema.Required)
	assert.JSONEq(t, `{"type":"number","description":"Maximum number of issues to return (default: 50)","default":50}`,
		string(search.InputSchema.Properties["maxResults"]))

	issue := list.Tools[byName[ToolGetIssue]]
	assert.Equal(t, []string{"issueKey"}, issue.InputSchema.Required)

	assert.Empty(t, list.Tools[byName[ToolGetProjects]].InputSchema.Properties)
	assert.Empty(t, list.Tools[byName[ToolGetMyIssues]].InputSchema.Required)
	assert.Zero(t, api.calls.Load())
}

func TestServeToolCalls(t *testing.T) {
	t.Parallel()

	t.Run("unknown tool is an ordinary result", func(t *testing.T) {
		t.Parallel()

		api := &countingAPI{}
		responses := serveLines(t, NewDispatcher(api),
			initializeRequest,
			`{"jsonrpc":"2.0","id":"abc","method":"tools/call","params":{"name":"drop_database","arguments":{}}}`,
		)
		require.Len(t, responses, 2)

		assert.JSONEq(t, `"abc"`, string(responses[1].ID))
		res := decodeToolResult(t, responses[1])
		assert.Equal(t, "❌ Error: Unknown tool: drop_database", res.Content[0].Text)
		assert.Zero(t, api.calls.Load())
	})

	t.Run("missing argument never reaches jira", func(t *testing.T) {
		t.Parallel()

		api := &countingAPI{}
		responses := serveLines(t, NewDispatcher(api),
			initializeRequest,
			`{"jsonrpc":"2.0","id":3,"method":"tools/call","params":{"name":"get_issue","arguments":{}}}`,
			`{"jsonrpc":"2.0","id":4,"method":"tools/call","params":{"name":"search_issues"}}`,
		)
		require.Len(t, responses, 3)

		assert.Equal(t, "❌ Error: issueKey is required", decodeToolResult(t, responses[1]).Content[0].Text)
		assert.Equal(t, "❌ Error: jql is required", decodeToolResult(t, responses[2]).Content[0].Text)
		assert.Zero(t, api.calls.Load())
	})

	t.Run("api error is reported in the result", func(t *testing.T) {
		t.Parallel()

		f := newFakeJira()
		f.GET("/rest/api/3/project", func(c *gin.Context) {
			c.String(http.StatusForbidden, "no access")
		})
		d, _ := newTestDispatcher(t, f)

		responses := serveLines(t, d,
			initializeRequest,
			`{"jsonrpc":"2.0","id":5,"method":"tools/call","params":{"name":"get_projects","arguments":{}}}`,
		)
		require.Len(t, responses, 2)

		res := decodeToolResult(t, responses[1])
		assert.Equal(t, "❌ Error: Jira API error: 403 Forbidden - no access", res.Content[0].Text)
		assert.False(t, res.IsError)
	})

	t.Run("arguments reach the handler", func(t *testing.T) {
		t.Parallel()

		f := newFakeJira()
		f.GET("/rest/api/3/search/jql", func(c *gin.Context) {
			assert.Equal(t, "project = LB", c.Query("jql"))
			assert.Equal(t, "3", c.Query("maxResults"))
			c.String(http.StatusOK, `{"issues":[`+issueLB2+`]}`)
		})
		d, _ := newTestDispatcher(t, f)

		responses := serveLines(t, d,
			initializeRequest,
			`{"jsonrpc":"2.0","id":7,"method":"tools/call","params":{"name":"search_issues","arguments":{"jql":"project = LB","maxResults":3}}}`,
		)
		require.Len(t, responses, 2)

		res := decodeToolResult(t, responses[1])
		assert.True(t, strings.HasPrefix(res.Content[0].Text, "# 🔍 Search Results (1)\n\n**JQL:** `project = LB`\n"), res.Content[0].Text)
		assert.EqualValues(t, 1, f.hits.Load())
	})

	t.Run("successful call", func(t *testing.T) {
		t.Parallel()

		f := newFakeJira()
		f.GET("/rest/api/3/project", func(c *gin.Context) {
			c.String(http.StatusOK, `[`+projectLB+`]`)
		})
		d, _ := newTestDispatcher(t, f)

		responses := serveLines(t, d,
			initializeRequest,
			`{"jsonrpc":"2.0","id":6,"method":"tools/call","params":{"name":"get_projects"}}`,
		)
		require.Len(t, responses, 2)

		res := decodeToolResult(t, responses[1])
		assert.True(t, strings.HasPrefix(res.Content[0].Text, "# 📁 Projects (1)\n\n## LB: Lightbulb\n"))
	})
}

func TestServeBlankLinesAndEOF(t *testing.T) {
	t.Parallel()

	d := NewDispatcher(&countingAPI{})
	s := NewServer(d)

	var out bytes.Buffer
	require.NoError(t, Serve(context.Background(), s, d, strings.NewReader("\n   \n"), &out))
	assert.Empty(t, out.String())
}

func TestToolNamesMatchHandlers(t *testing.T) {
	t.Parallel()

	d := NewDispatcher(&countingAPI{})
	tools := jiraTools()
	require.Len(t, tools, 4)
	for _, tool := range tools {
		assert.True(t, d.Has(tool.Name), tool.Name)
	}
}
