package mcpserver

import (
	"fmt"
	"strings"
)

// ValidationError reports a missing or malformed tool argument.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// UnknownOperationError is returned for tool names the dispatcher does not know.
type UnknownOperationError struct {
	Name string
}

func (e *UnknownOperationError) Error() string {
	return fmt.Sprintf("Unknown tool: %s", e.Name)
}

// errorMarker prefixes every error payload returned to the caller.
const errorMarker = "❌ Error: "

func errorText(err error) string {
	return errorMarker + err.Error()
}

// IsErrorText reports whether a tool result text carries an error.
func IsErrorText(text string) bool {
	return strings.HasPrefix(text, errorMarker)
}
