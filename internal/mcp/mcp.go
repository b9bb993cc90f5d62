// Package mcp provides an HTTP client for invoking tools on a
// Model-Context-Protocol server using JSON-RPC 2.0 "tools/call" requests.
//
// Each call is a single synchronous POST round trip. The client never
// retries, never pools connections beyond the default transport, and does
// not enforce any shape on the response beyond it being valid JSON.
package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/nightshade/ue5-bridge/internal/jsonrpc"
)

const (
	// DefaultEndpoint is where the local editor bridge listens.
	DefaultEndpoint = "http://localhost:8787/mcp"

	// DefaultRequestID is the JSON-RPC correlation id stamped on requests.
	// It is fixed per client; concurrent correlation is not a goal here.
	DefaultRequestID = "nightshade-ue5"

	defaultTimeout = 30 * time.Second

	methodCallTool = "tools/call"
)

// CallToolParams is the params member of a tools/call request.
type CallToolParams struct {
	Name      string      `json:"name"`
	Arguments interface{} `json:"arguments"`
}

// Options tune a Client. Zero values fall back to defaults.
type Options struct {
	// Timeout bounds the full round trip, connect included.
	Timeout time.Duration
	// RequestID overrides the JSON-RPC id sent with every request.
	RequestID string
	// HTTPClient replaces the default client, Timeout is then ignored.
	HTTPClient *http.Client
}

// Client issues tools/call requests against a single MCP endpoint.
type Client struct {
	endpoint   string
	requestID  string
	httpClient *http.Client
}

// New creates a client for the given endpoint URL
// (e.g. "http://localhost:8787/mcp").
func New(endpoint string, opts ...Options) *Client {
	var o Options
	if len(opts) > 0 {
		o = opts[0]
	}
	if o.Timeout == 0 {
		o.Timeout = defaultTimeout
	}
	if o.RequestID == "" {
		o.RequestID = DefaultRequestID
	}
	if o.HTTPClient == nil {
		o.HTTPClient = &http.Client{Timeout: o.Timeout}
	}
	return &Client{
		endpoint:   endpoint,
		requestID:  o.RequestID,
		httpClient: o.HTTPClient,
	}
}

// Endpoint returns the URL this client posts to.
func (c *Client) Endpoint() string { return c.endpoint }

// CallTool invokes a named tool with the given arguments and returns the
// raw JSON response body. Arguments may be any JSON-serializable value;
// the response is validated only as far as being well-formed JSON. All
// failures (marshal, transport, timeout, HTTP status, parse) surface as
// errors, there is no partial result.
func (c *Client) CallTool(ctx context.Context, toolName string, arguments interface{}) (json.RawMessage, error) {
	req := jsonrpc.Request{
		JSONRPC: jsonrpc.Version,
		ID:      c.requestID,
		Method:  methodCallTool,
		Params: CallToolParams{
			Name:      toolName,
			Arguments: arguments,
		},
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Request-ID", uuid.NewString())

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("call tool %q: %w", toolName, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("call tool %q: server returned %s: %s", toolName, resp.Status, respBody)
	}

	var probe interface{}
	if err := json.Unmarshal(respBody, &probe); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	log.Debug().
		Str("tool", toolName).
		Int("request_bytes", len(body)).
		Int("response_bytes", len(respBody)).
		Dur("elapsed", time.Since(start)).
		Msg("Tool call complete")

	return respBody, nil
}
