package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultTimeout bounds a single request when no http.Client is supplied.
const DefaultTimeout = 30 * time.Second

// maxErrorBody caps how much of an error response is read into HTTPError.
const maxErrorBody = 1 << 20

// TokenSource supplies the current session token. An empty string means no
// session.
type TokenSource interface {
	Token() string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the per-request timeout of the default http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithLogger sets the request logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// Client is the Sportex API client.
type Client struct {
	baseURL    string
	tokens     TokenSource
	httpClient *http.Client
	log        *zap.Logger
}

// New creates a new API client. The client has no token source until
// WithTokenSource is called, so authenticated calls go out without credentials.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		log: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithTokenSource returns a copy of c that attaches ts's token to requests
// that require authentication.
func (c *Client) WithTokenSource(ts TokenSource) *Client {
	cp := *c
	cp.tokens = ts
	return &cp
}

// BaseURL returns the API base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Request issues method against path and returns the raw JSON body.
//
// When requireAuth is true the current token, if any, is sent as a bearer
// credential. A missing token does not stop the request; the backend decides.
// Non-2xx responses and network failures come back as *HTTPError. Nothing is
// retried.
func (c *Client) Request(ctx context.Context, method, path string, body any, requireAuth bool) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := c.call(ctx, method, path, body, requireAuth, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func (c *Client) call(ctx context.Context, method, path string, body any, requireAuth bool, out any) error {
	token := ""
	if requireAuth && c.tokens != nil {
		token = c.tokens.Token()
	}
	return c.doRequest(ctx, method, path, token, body, out)
}

func (c *Client) get(ctx context.Context, path string, requireAuth bool, out any) error {
	return c.call(ctx, http.MethodGet, path, nil, requireAuth, out)
}

func (c *Client) post(ctx context.Context, path string, body any, requireAuth bool, out any) error {
	return c.call(ctx, http.MethodPost, path, body, requireAuth, out)
}

func (c *Client) doRequest(ctx context.Context, method, path, token string, body any, out any) error {
	var reqBody io.Reader
	contentType := ""
	switch b := body.(type) {
	case nil:
	case url.Values:
		reqBody = strings.NewReader(b.Encode())
		contentType = "application/x-www-form-urlencoded"
	default:
		data, err := json.Marshal(b)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		reqBody = bytes.NewReader(data)
		contentType = "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Debug("request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		return &HTTPError{StatusCode: StatusNone, Message: err.Error(), Err: err}
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	c.log.Debug("request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("took", time.Since(start)),
		zap.String("request_id", requestID),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		if readErr != nil {
			return &HTTPError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("failed to read body: %v", readErr)}
		}
		return &HTTPError{StatusCode: resp.StatusCode, Message: errorMessage(respBody)}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// errorMessage extracts a readable message from an error body. The backend
// reports errors as {"detail": "..."}; {"error": "..."} is also understood.
func errorMessage(body []byte) string {
	var apiErr struct {
		Error  string          `json:"error"`
		Detail json.RawMessage `json:"detail"`
	}
	if json.Unmarshal(body, &apiErr) == nil {
		if apiErr.Error != "" {
			return apiErr.Error
		}
		var detail string
		if len(apiErr.Detail) > 0 && json.Unmarshal(apiErr.Detail, &detail) == nil && detail != "" {
			return detail
		}
		if len(apiErr.Detail) > 0 {
			return string(apiErr.Detail)
		}
	}
	return strings.TrimSpace(string(body))
}
