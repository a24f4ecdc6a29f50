// Package client is a typed facade over the clinic REST API. Calls never
// return Go errors: every outcome, including transport failures, is folded
// into a Result.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jwalitptl/clinic-report-api/pkg/logger"
)

const (
	DefaultBaseURL = "http://localhost:5000/api"

	// ErrNetworkMessage replaces transport errors, which are not meant for
	// end users.
	ErrNetworkMessage = "Unable to connect to the server. Please check your network connection or contact an administrator."
)

// Result is the uniform outcome of a call.
type Result struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
	Error   string          `json:"error,omitempty"`
	Exists  bool            `json:"exists,omitempty"`
	// StatusCode is 0 when no response was received.
	StatusCode int `json:"-"`
}

// TokenSource yields the current bearer token, or "" when none is stored.
type TokenSource func() string

type Client struct {
	baseURL    string
	httpClient *http.Client
	token      TokenSource
	logger     *logger.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.token = ts }
}

func WithLogger(l *logger.Logger) Option {
	return func(c *Client) { c.logger = l }
}

func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		token:      func() string { return "" },
		logger:     logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type request struct {
	method string
	path   string
	query  url.Values
	body   interface{}
	bearer bool
}

// envelope mirrors the server's response body. Error is raw because servers
// send it either as a string or as an object.
type envelope struct {
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   json.RawMessage `json:"error"`
	Exists  bool            `json:"exists"`
}

func (c *Client) do(ctx context.Context, r request) *Result {
	target := c.baseURL + r.path
	if len(r.query) > 0 {
		target += "?" + r.query.Encode()
	}

	var body io.Reader
	if r.body != nil {
		payload, err := json.Marshal(r.body)
		if err != nil {
			return &Result{Error: fmt.Sprintf("failed to encode request: %v", err)}
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, target, body)
	if err != nil {
		return &Result{Error: fmt.Sprintf("failed to build request: %v", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if r.bearer {
		if token := c.token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	c.logger.Debug("api call", "method", r.method, "url", target)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error(err, "api call failed", "method", r.method, "path", r.path)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return &Result{Error: ctxErr.Error()}
		}
		return &Result{Error: ErrNetworkMessage}
	}
	defer resp.Body.Close()

	return c.decode(r, resp)
}

func (c *Client) decode(r request, resp *http.Response) *Result {
	res := &Result{StatusCode: resp.StatusCode}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Error(err, "failed to read response", "path", r.path)
		res.Error = ErrNetworkMessage
		return res
	}

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		res.Error = env.Message
		if decodeErr != nil || res.Error == "" {
			res.Error = fmt.Sprintf("HTTP error! status: %d", resp.StatusCode)
		}
		c.logger.Warn("api call rejected", "path", r.path, "status", resp.StatusCode, "error", res.Error)
		return res
	}
	if decodeErr != nil {
		res.Error = fmt.Sprintf("invalid response body: %v", decodeErr)
		return res
	}

	res.Success = env.Success == nil || *env.Success
	res.Data = env.Data
	res.Message = env.Message
	res.Exists = env.Exists
	res.Error = errorText(env.Error)
	return res
}

func errorText(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var obj struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil && obj.Message != "" {
		return obj.Message
	}
	return string(raw)
}

// DecodeData unmarshals the result payload into v.
func (r *Result) DecodeData(v interface{}) error {
	if len(r.Data) == 0 {
		return fmt.Errorf("result has no data")
	}
	return json.Unmarshal(r.Data, v)
}
