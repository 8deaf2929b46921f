package mcpserver

import (
	"fmt"
	"strings"
	"time"

	"jira_simple/internal/model"
)

// displayLayout mirrors the en-US locale date/time rendering.
const displayLayout = "1/2/2006, 3:04:05 PM"

var jiraTimeLayouts = []string{
	"2006-01-02T15:04:05.000-0700",
	"2006-01-02T15:04:05-0700",
	time.RFC3339Nano,
}

// Renderer turns normalized entities into the markdown text returned to callers.
type Renderer struct {
	loc *time.Location
}

// NewRenderer returns a Renderer that shows timestamps in loc.
func NewRenderer(loc *time.Location) *Renderer {
	if loc == nil {
		loc = time.Local
	}
	return &Renderer{loc: loc}
}

// FormatTime renders a Jira timestamp; values that do not parse are returned as-is.
func (r *Renderer) FormatTime(raw string) string {
	for _, layout := range jiraTimeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.In(r.loc).Format(displayLayout)
		}
	}
	return raw
}

func (r *Renderer) issueBlock(issue model.IssueSummary, withAssignee bool) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "## 🎫 %s: %s\n", issue.Key, issue.Summary)
	fmt.Fprintf(&sb, "- **Status:** %s\n", issue.Status)
	fmt.Fprintf(&sb, "- **Priority:** %s\n", issue.Priority)
	fmt.Fprintf(&sb, "- **Type:** %s\n", issue.Type)
	fmt.Fprintf(&sb, "- **Project:** %s\n", issue.Project)
	if withAssignee {
		fmt.Fprintf(&sb, "- **Assignee:** %s\n", issue.Assignee)
	}
	fmt.Fprintf(&sb, "- **Updated:** %s\n", r.FormatTime(issue.Updated))
	fmt.Fprintf(&sb, "- [Open in Jira](%s)\n", issue.URL)
	return sb.String()
}

func (r *Renderer) issueBlocks(issues []model.IssueSummary, withAssignee bool) string {
	blocks := make([]string, 0, len(issues))
	for _, issue := range issues {
		blocks = append(blocks, r.issueBlock(issue, withAssignee))
	}
	return strings.Join(blocks, "\n")
}

// MyIssues renders the get_my_issues listing.
func (r *Renderer) MyIssues(issues []model.IssueSummary) string {
	return fmt.Sprintf("# 📋 My Issues (%d)\n\n%s", len(issues), r.issueBlocks(issues, false))
}

// SearchResults renders the search_issues listing with the query echoed.
func (r *Renderer) SearchResults(jql string, issues []model.IssueSummary) string {
	return fmt.Sprintf("# 🔍 Search Results (%d)\n\n**JQL:** `%s`\n\n%s", len(issues), jql, r.issueBlocks(issues, true))
}

// Projects renders the get_projects listing.
func (r *Renderer) Projects(projects []model.ProjectSummary) string {
	blocks := make([]string, 0, len(projects))
	for _, p := range projects {
		blocks = append(blocks, fmt.Sprintf("## %s: %s\n- **ID:** %s\n- **Type:** %s\n- [Open in Jira](%s)\n",
			p.Key, p.Name, p.ID, p.ProjectType, p.URL))
	}
	return fmt.Sprintf("# 📁 Projects (%d)\n\n%s", len(projects), strings.Join(blocks, "\n"))
}

// IssueDetail renders get_issue. The comment section is left out when there are no comments.
func (r *Renderer) IssueDetail(issue model.IssueDetail) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# 🎫 %s: %s\n\n", issue.Key, issue.Summary)
	sb.WriteString("## 📋 Basic Information\n")
	fmt.Fprintf(&sb, "- **Status:** %s\n", issue.Status)
	fmt.Fprintf(&sb, "- **Priority:** %s\n", issue.Priority)
	fmt.Fprintf(&sb, "- **Type:** %s\n", issue.Type)
	fmt.Fprintf(&sb, "- **Project:** %s\n", issue.Project)
	fmt.Fprintf(&sb, "- **Assignee:** %s\n", issue.Assignee)
	fmt.Fprintf(&sb, "- **Reporter:** %s\n", issue.Reporter)
	fmt.Fprintf(&sb, "- **Created:** %s\n", r.FormatTime(issue.Created))
	fmt.Fprintf(&sb, "- **Updated:** %s\n\n", r.FormatTime(issue.Updated))
	fmt.Fprintf(&sb, "## 📝 Description\n%s\n\n", issue.Description)

	if len(issue.Comments) > 0 {
		comments := make([]string, 0, len(issue.Comments))
		for _, c := range issue.Comments {
			comments = append(comments, fmt.Sprintf("**%s** (%s):\n%s", c.Author, r.FormatTime(c.Created), c.Body))
		}
		fmt.Fprintf(&sb, "## 💬 Recent Comments (%d)\n%s\n\n", len(issue.Comments), strings.Join(comments, "\n\n"))
	}

	fmt.Fprintf(&sb, "## 🔗 Links\n- [Open in Jira](%s)", issue.URL)
	return sb.String()
}
