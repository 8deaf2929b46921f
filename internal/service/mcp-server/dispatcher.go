package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"jira_simple/internal/logger"
	"jira_simple/internal/model"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"
)

const defaultMaxResults = 50

// Tool names.
const (
	ToolGetMyIssues  = "get_my_issues"
	ToolSearchIssues = "search_issues"
	ToolGetProjects  = "get_projects"
	ToolGetIssue     = "get_issue"
)

// JiraAPI is the part of the Jira gateway the dispatcher needs.
type JiraAPI interface {
	Call(ctx context.Context, endpoint, method string, body any) (json.RawMessage, error)
	Get(ctx context.Context, endpoint string, out any) error
	BaseURL() string
}

type handlerFunc func(ctx context.Context, args map[string]any) (string, error)

// Dispatcher maps tool names to handlers and converts every outcome into a tool result.
type Dispatcher struct {
	api      JiraAPI
	renderer *Renderer
	handlers map[string]handlerFunc
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLocation sets the time zone used when rendering timestamps.
func WithLocation(loc *time.Location) Option {
	return func(d *Dispatcher) {
		d.renderer = NewRenderer(loc)
	}
}

// NewDispatcher creates a Dispatcher backed by api.
func NewDispatcher(api JiraAPI, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		api:      api,
		renderer: NewRenderer(time.Local),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.handlers = map[string]handlerFunc{
		ToolGetMyIssues:  d.getMyIssues,
		ToolSearchIssues: d.searchIssues,
		ToolGetProjects:  d.getProjects,
		ToolGetIssue:     d.getIssue,
	}
	return d
}

// Has reports whether name is a known tool.
func (d *Dispatcher) Has(name string) bool {
	_, ok := d.handlers[name]
	return ok
}

// Call runs the named tool. Failures never escape: they come back as a
// result whose single text block starts with the error marker.
func (d *Dispatcher) Call(ctx context.Context, name string, args map[string]any) *mcp.CallToolResult {
	log := logger.GetLogger().With(zap.String("tool", name))

	h, ok := d.handlers[name]
	if !ok {
		err := &UnknownOperationError{Name: name}
		log.Warn("unknown tool requested")
		return mcp.NewToolResultText(errorText(err))
	}
	if args == nil {
		args = map[string]any{}
	}

	start := time.Now()
	text, err := h(ctx, args)
	if err != nil {
		log.Warn("tool call failed", zap.Duration("duration", time.Since(start)), zap.Error(err))
		return mcp.NewToolResultText(errorText(err))
	}
	log.Info("tool call", zap.Duration("duration", time.Since(start)))
	return mcp.NewToolResultText(text)
}

func (d *Dispatcher) getMyIssues(ctx context.Context, args map[string]any) (string, error) {
	maxResults, err := maxResultsArg(args)
	if err != nil {
		return "", err
	}

	var result model.JiraSearchResponse
	endpoint := fmt.Sprintf("/search/jql?jql=assignee=currentUser()&maxResults=%d", maxResults)
	if err := d.api.Get(ctx, endpoint, &result); err != nil {
		return "", err
	}
	return d.renderer.MyIssues(model.NewIssueSummaries(d.api.BaseURL(), result.Issues)), nil
}

func (d *Dispatcher) searchIssues(ctx context.Context, args map[string]any) (string, error) {
	jql, err := requiredString(args, "jql")
	if err != nil {
		return "", err
	}
	maxResults, err := maxResultsArg(args)
	if err != nil {
		return "", err
	}

	var result model.JiraSearchResponse
	endpoint := fmt.Sprintf("/search/jql?jql=%s&maxResults=%d", url.QueryEscape(jql), maxResults)
	if err := d.api.Get(ctx, endpoint, &result); err != nil {
		return "", err
	}
	return d.renderer.SearchResults(jql, model.NewIssueSummaries(d.api.BaseURL(), result.Issues)), nil
}

func (d *Dispatcher) getProjects(ctx context.Context, _ map[string]any) (string, error) {
	raw, err := d.api.Call(ctx, "/project", http.MethodGet, nil)
	if err != nil {
		return "", err
	}
	projects, err := model.ParseProjects(raw)
	if err != nil {
		return "", err
	}

	baseURL := d.api.BaseURL()
	list := make([]model.ProjectSummary, 0, len(projects))
	for _, p := range projects {
		list = append(list, model.NewProjectSummary(baseURL, p))
	}
	return d.renderer.Projects(list), nil
}

func (d *Dispatcher) getIssue(ctx context.Context, args map[string]any) (string, error) {
	issueKey, err := requiredString(args, "issueKey")
	if err != nil {
		return "", err
	}

	var issue model.JiraIssue
	endpoint := fmt.Sprintf("/issue/%s?expand=description,comments", url.PathEscape(issueKey))
	if err := d.api.Get(ctx, endpoint, &issue); err != nil {
		return "", err
	}
	return d.renderer.IssueDetail(model.NewIssueDetail(d.api.BaseURL(), issue)), nil
}

func requiredString(args map[string]any, field string) (string, error) {
	v, ok := args[field]
	if !ok || v == nil {
		return "", &ValidationError{Field: field, Message: "is required"}
	}
	s, ok := v.(string)
	if !ok {
		return "", &ValidationError{Field: field, Message: "must be a string"}
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", &ValidationError{Field: field, Message: "is required"}
	}
	return s, nil
}

func maxResultsArg(args map[string]any) (int, error) {
	v, ok := args["maxResults"]
	if !ok || v == nil {
		return defaultMaxResults, nil
	}

	var n float64
	switch t := v.(type) {
	case float64:
		n = t
	case int:
		n = float64(t)
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return 0, &ValidationError{Field: "maxResults", Message: "must be a number"}
		}
		n = f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, &ValidationError{Field: "maxResults", Message: "must be a number"}
		}
		n = f
	default:
		return 0, &ValidationError{Field: "maxResults", Message: "must be a number"}
	}

	if n < 1 || n != math.Trunc(n) || n > math.MaxInt32 {
		return 0, &ValidationError{Field: "maxResults", Message: "must be a positive integer"}
	}
	return int(n), nil
}
