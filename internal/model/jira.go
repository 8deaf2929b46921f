package model

import (
	"encoding/json"
	"fmt"
)

// Placeholders substituted for absent optional fields.
const (
	NoPriority    = "None"
	NoAssignee    = "Unassigned"
	NoReporter    = "Unknown"
	NoAuthor      = "Unknown"
	NoDescription = "No description"
	NoCommentText = "No comment text"
)

// JiraIssue represents a Jira issue response
type JiraIssue struct {
	Key    string     `json:"key"`
	Fields JiraFields `json:"fields"`
}

// JiraFields represents the fields in a Jira issue. Nullable objects are pointers.
type JiraFields struct {
	Summary     string          `json:"summary"`
	Status      *JiraNamed      `json:"status"`
	Priority    *JiraNamed      `json:"priority"`
	IssueType   *JiraNamed      `json:"issuetype"`
	Project     *JiraProject    `json:"project"`
	Assignee    *JiraUser       `json:"assignee"`
	Reporter    *JiraUser       `json:"reporter"`
	Created     string          `json:"created"`
	Updated     string          `json:"updated"`
	Description json.RawMessage `json:"description"`
	Comment     *JiraComments   `json:"comment"`
}

// JiraNamed covers status, priority and issue type objects.
type JiraNamed struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}

// JiraUser represents a Jira user
type JiraUser struct {
	AccountID   string `json:"accountId,omitempty"`
	DisplayName string `json:"displayName"`
}

// JiraProject represents a project as returned by /project and inside issue fields
type JiraProject struct {
	ID             string `json:"id"`
	Key            string `json:"key"`
	Name           string `json:"name"`
	ProjectTypeKey string `json:"projectTypeKey"`
}

// JiraComments is the comment page embedded in issue fields
type JiraComments struct {
	Total    int           `json:"total"`
	Comments []JiraComment `json:"comments"`
}

// JiraComment represents a single issue comment
type JiraComment struct {
	ID      string          `json:"id,omitempty"`
	Author  *JiraUser       `json:"author"`
	Body    json.RawMessage `json:"body"`
	Created string          `json:"created"`
}

// JiraSearchResponse represents the response from a Jira search
type JiraSearchResponse struct {
	StartAt       int         `json:"startAt"`
	MaxResults    int         `json:"maxResults"`
	Total         int         `json:"total"`
	Issues        []JiraIssue `json:"issues"`
	NextPageToken string      `json:"nextPageToken,omitempty"`
	IsLast        bool        `json:"isLast,omitempty"`
}

// IssueSummary is the normalized form of an issue used in listings.
type IssueSummary struct {
	Key      string
	Summary  string
	Status   string
	Priority string
	Type     string
	Project  string
	Assignee string
	Reporter string
	Created  string
	Updated  string
	URL      string
}

// IssueDetail is an IssueSummary plus description and comment thread.
type IssueDetail struct {
	IssueSummary
	Description string
	Comments    []Comment
}

// Comment is the normalized form of a JiraComment.
type Comment struct {
	Author  string
	Body    string
	Created string
}

// ProjectSummary is the normalized form of a JiraProject.
type ProjectSummary struct {
	ID          string
	Key         string
	Name        string
	ProjectType string
	URL         string
}

// BrowseURL returns the web link for an issue or project key.
func BrowseURL(baseURL, key string) string {
	return fmt.Sprintf("%s/browse/%s", baseURL, key)
}

// NewIssueSummary maps a raw issue onto an IssueSummary, substituting placeholders.
func NewIssueSummary(baseURL string, issue JiraIssue) IssueSummary {
	f := issue.Fields
	s := IssueSummary{
		Key:      issue.Key,
		Summary:  f.Summary,
		Status:   nameOf(f.Status, ""),
		Priority: nameOf(f.Priority, NoPriority),
		Type:     nameOf(f.IssueType, ""),
		Assignee: displayNameOf(f.Assignee, NoAssignee),
		Reporter: displayNameOf(f.Reporter, NoReporter),
		Created:  f.Created,
		Updated:  f.Updated,
		URL:      BrowseURL(baseURL, issue.Key),
	}
	if f.Project != nil {
		s.Project = f.Project.Name
	}
	return s
}

// NewIssueSummaries maps every issue of a search response.
func NewIssueSummaries(baseURL string, issues []JiraIssue) []IssueSummary {
	out := make([]IssueSummary, 0, len(issues))
	for _, issue := range issues {
		out = append(out, NewIssueSummary(baseURL, issue))
	}
	return out
}

// NewIssueDetail maps a raw issue fetched with description and comments expanded.
func NewIssueDetail(baseURL string, issue JiraIssue) IssueDetail {
	d := IssueDetail{
		IssueSummary: NewIssueSummary(baseURL, issue),
		Description:  ExtractText(issue.Fields.Description, NoDescription),
	}
	if issue.Fields.Comment != nil {
		d.Comments = make([]Comment, 0, len(issue.Fields.Comment.Comments))
		for _, c := range issue.Fields.Comment.Comments {
			d.Comments = append(d.Comments, Comment{
				Author:  displayNameOf(c.Author, NoAuthor),
				Body:    ExtractText(c.Body, NoCommentText),
				Created: c.Created,
			})
		}
	}
	return d
}

// NewProjectSummary maps a raw project.
func NewProjectSummary(baseURL string, p JiraProject) ProjectSummary {
	return ProjectSummary{
		ID:          p.ID,
		Key:         p.Key,
		Name:        p.Name,
		ProjectType: p.ProjectTypeKey,
		URL:         BrowseURL(baseURL, p.Key),
	}
}

func nameOf(n *JiraNamed, fallback string) string {
	if n == nil || n.Name == "" {
		return fallback
	}
	return n.Name
}

func displayNameOf(u *JiraUser, fallback string) string {
	if u == nil || u.DisplayName == "" {
		return fallback
	}
	return u.DisplayName
}
