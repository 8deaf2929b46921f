package jira

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"jira_simple/internal/config"
	"jira_simple/internal/logger"

	"github.com/go-faster/errors"
	"go.uber.org/zap"
)

const apiPath = "/rest/api/3"

// Client performs authenticated calls against the Jira REST API v3.
type Client struct {
	baseURL    string
	authHeader string
	httpClient *http.Client
}

// NewClient creates a Client from the loaded configuration.
func NewClient(cfg *config.Config) *Client {
	return NewClientWithHTTP(cfg, http.DefaultClient)
}

// NewClientWithHTTP is NewClient with a caller-supplied http.Client.
func NewClientWithHTTP(cfg *config.Config, httpClient *http.Client) *Client {
	creds := base64.StdEncoding.EncodeToString([]byte(cfg.JiraEmail + ":" + cfg.JiraAPIToken))
	return &Client{
		baseURL:    strings.TrimRight(cfg.JiraURL, "/"),
		authHeader: "Basic " + creds,
		httpClient: httpClient,
	}
}

// BaseURL returns the Jira site URL without trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Call sends one request to {base}/rest/api/3{endpoint} and returns the raw JSON body.
// A nil body sends no payload.
func (c *Client) Call(ctx context.Context, endpoint, method string, body any) (json.RawMessage, error) {
	if method == "" {
		method = http.MethodGet
	}

	var bodyReader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, errors.Wrap(err, "marshal request body")
		}
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+apiPath+endpoint, bodyReader)
	if err != nil {
		return nil, errors.Wrap(err, "create request")
	}
	req.Header.Set("Authorization", c.authHeader)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.GetLogger().Error("jira request failed",
			zap.String("method", method),
			zap.String("endpoint", endpoint),
			zap.Error(err))
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close() // nolint:errcheck

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}

	logger.GetLogger().Debug("jira request",
		zap.String("method", method),
		zap.String("endpoint", endpoint),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			StatusText: statusText(resp),
			Body:       string(respBody),
		}
	}

	if len(bytes.TrimSpace(respBody)) == 0 {
		return json.RawMessage("null"), nil
	}
	if !json.Valid(respBody) {
		return nil, errors.Errorf("invalid JSON in response from %s", endpoint)
	}
	return json.RawMessage(respBody), nil
}

// statusText returns the reason phrase the server sent, or the standard one when it sent none.
func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		return http.StatusText(resp.StatusCode)
	}
	return text
}

// Get issues a GET to endpoint and decodes the JSON response into out.
func (c *Client) Get(ctx context.Context, endpoint string, out any) error {
	raw, err := c.Call(ctx, endpoint, http.MethodGet, nil)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return errors.Wrapf(err, "decode response from %s", endpoint)
	}
	return nil
}
