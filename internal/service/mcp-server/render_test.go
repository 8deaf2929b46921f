package mcpserver

import (
	"strings"
	"testing"
	"time"

	"jira_simple/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestRendererFormatTime(t *testing.T) {
	t.Parallel()

	r := NewRenderer(time.UTC)
	tests := []struct {
		raw  string
		want string
	}{
		{raw: "2024-01-02T15:30:00.000+0000", want: "1/2/2024, 3:30:00 PM"},
		{raw: "2024-12-25T00:00:05.123+0200", want: "12/24/2024, 10:00:05 PM"},
		{raw: "2024-03-04T12:00:00Z", want: "3/4/2024, 12:00:00 PM"},
		{raw: "2024-03-04T00:10:00-0500", want: "3/4/2024, 5:10:00 AM"},
		{raw: "yesterday", want: "yesterday"},
		{raw: "", want: ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, r.FormatTime(tt.raw), tt.raw)
	}
}

func TestRendererIssueDetailComments(t *testing.T) {
	t.Parallel()

	r := NewRenderer(time.UTC)
	detail := model.IssueDetail{
		IssueSummary: model.IssueSummary{Key: "LB-9", Summary: "Many comments", URL: "https://x/browse/LB-9"},
		Description:  "No description",
	}
	for _, body := range []string{"one", "two", "three"} {
		detail.Comments = append(detail.Comments, model.Comment{Author: "Ann", Body: body, Created: "2024-01-01T10:00:00.000+0000"})
	}

	text := r.IssueDetail(detail)
	assert.Contains(t, text, "## 💬 Recent Comments (3)\n")
	assert.Equal(t, 3, strings.Count(text, "**Ann** (1/1/2024, 10:00:00 AM):\n"))
	assert.Less(t, strings.Index(text, "\none"), strings.Index(text, "\ntwo"))
	assert.Less(t, strings.Index(text, "\ntwo"), strings.Index(text, "\nthree"))
	assert.True(t, strings.HasSuffix(text, "three\n\n## 🔗 Links\n- [Open in Jira](https://x/browse/LB-9)"))
}

func TestRendererProjectsEmpty(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "# 📁 Projects (0)\n\n", NewRenderer(time.UTC).Projects(nil))
}
