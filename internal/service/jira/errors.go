package jira

import "fmt"

// APIError is returned when Jira answers with a non-2xx status.
type APIError struct {
	StatusCode int
	StatusText string
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("Jira API error: %d %s - %s", e.StatusCode, e.StatusText, e.Body)
}

// NetworkError is returned when the request never produced an HTTP response.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("Network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
