// Package upstream is the HTTP client for the remote recording service that
// owns all camera and recording ground truth.
package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Config holds connection settings for the recording service.
type Config struct {
	BaseURL string
	Token   string // bearer token sent on every request
	Timeout time.Duration
}

// Client talks to the recording service. Every endpoint wraps its payload in
// a {result, errorMessage} envelope; a non-null errorMessage means the call
// failed regardless of what result holds.
type Client struct {
	http   *resty.Client
	logger *zap.Logger
}

// New creates a client for the recording service at cfg.BaseURL.
func New(cfg Config, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := resty.New()
	r.SetBaseURL(cfg.BaseURL)
	r.SetHeader("Content-Type", "application/json")
	r.SetHeader("Accept", "application/json")
	if cfg.Token != "" {
		r.SetAuthToken(cfg.Token)
	}
	if cfg.Timeout > 0 {
		r.SetTimeout(cfg.Timeout)
	}
	return &Client{http: r, logger: logger}
}

// APIError is a failure reported by the recording service itself (non-null
// errorMessage or non-2xx status), as opposed to a transport error.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string { return e.Message }

type envelope struct {
	Result       json.RawMessage `json:"result"`
	ErrorMessage *string         `json:"errorMessage"`
}

// do executes one request and decodes the envelope's result into out.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	req := c.http.R().SetContext(ctx)
	if body != nil {
		req.SetBody(body)
	}
	var env envelope
	req.SetResult(&env)
	req.SetError(&env)

	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	if env.ErrorMessage != nil && *env.ErrorMessage != "" {
		return &APIError{StatusCode: resp.StatusCode(), Message: *env.ErrorMessage}
	}
	if resp.IsError() {
		return &APIError{StatusCode: resp.StatusCode(), Message: resp.Status()}
	}
	if out != nil && len(env.Result) > 0 {
		if err := json.Unmarshal(env.Result, out); err != nil {
			return fmt.Errorf("%s %s: decode result: %w", method, path, err)
		}
	}
	return nil
}

func shopPath(shopID, suffix string) string {
	return "/shops/" + url.PathEscape(shopID) + suffix
}
