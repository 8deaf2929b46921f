package model

import (
	"encoding/json"
	"strings"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
)

// adfNode is one node of an Atlassian Document Format tree.
type adfNode struct {
	Type    string    `json:"type"`
	Text    *string   `json:"text"`
	Content []adfNode `json:"content"`
}

func (n adfNode) text() string {
	if n.Type == "text" {
		if n.Text == nil {
			return ""
		}
		return *n.Text
	}
	if n.Content != nil {
		var sb strings.Builder
		for _, child := range n.Content {
			sb.WriteString(child.text())
		}
		return sb.String()
	}
	return ""
}

// ExtractText returns the plain text of a description or comment body,
// which Jira sends either as a string or as an ADF document. The result is
// trimmed; fallback is returned when nothing remains.
func ExtractText(raw json.RawMessage, fallback string) string {
	var text string
	d := jx.DecodeBytes(raw)
	switch d.Next() {
	case jx.String:
		s, err := d.Str()
		if err == nil {
			text = s
		}
	case jx.Object:
		var root adfNode
		if err := json.Unmarshal(raw, &root); err == nil {
			text = root.text()
		}
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return fallback
	}
	return text
}

// ParseProjects decodes the /project response, which is either a bare array
// or a paged object carrying the projects under "values".
func ParseProjects(raw json.RawMessage) ([]JiraProject, error) {
	var projects []JiraProject
	switch jx.DecodeBytes(raw).Next() {
	case jx.Array:
		if err := json.Unmarshal(raw, &projects); err != nil {
			return nil, errors.Wrap(err, "decode project list")
		}
	case jx.Object:
		var page struct {
			Values []JiraProject `json:"values"`
		}
		if err := json.Unmarshal(raw, &page); err != nil {
			return nil, errors.Wrap(err, "decode project page")
		}
		projects = page.Values
	case jx.Null, jx.Invalid:
	default:
		return nil, errors.New("unexpected project list payload")
	}
	if projects == nil {
		projects = []JiraProject{}
	}
	return projects, nil
}
