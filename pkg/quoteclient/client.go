package quoteclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"
)

const (
	// DefaultPath is the route the quote form posts to.
	DefaultPath    = "/api/send-email"
	defaultTimeout = 30 * time.Second
	maxBodyBytes   = 1 << 20
)

// Result is the decoded handler response.
type Result struct {
	Success    bool   `json:"success"`
	Message    string `json:"message,omitempty"`
	Error      string `json:"error,omitempty"`
	ErrorID    string `json:"error_id,omitempty"`
	RequestID  string `json:"request_id,omitempty"`
	StatusCode int    `json:"-"`
}

// Client posts quote requests to the notification handler. It is safe for
// concurrent use.
type Client struct {
	endpoint  *url.URL
	http      *http.Client
	userAgent string
	attempts  int
	backoff   time.Duration
}

type Option func(*Client) error

func New(opts ...Option) (*Client, error) {
	c := &Client{
		http:      &http.Client{Timeout: defaultTimeout},
		userAgent: "quote-client",
		attempts:  1,
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	if c.endpoint == nil {
		return nil, errors.New("server is required")
	}
	return c, nil
}

// WithServer sets the base URL. A URL without a path posts to DefaultPath.
func WithServer(server string) Option {
	return func(c *Client) error {
		if server == "" {
			return errors.New("server is required")
		}
		parsed, err := url.Parse(server)
		if err != nil {
			return fmt.Errorf("invalid server: %w", err)
		}
		if parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("invalid server %q: scheme and host are required", server)
		}
		if strings.Trim(parsed.Path, "/") == "" {
			parsed.Path = path.Join(parsed.Path, DefaultPath)
		}
		c.endpoint = parsed
		return nil
	}
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		if hc == nil {
			return errors.New("http client is nil")
		}
		c.http = hc
		return nil
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) error {
		if timeout <= 0 {
			return errors.New("timeout must be positive")
		}
		c.http.Timeout = timeout
		return nil
	}
}

// WithRetry allows up to attempts tries when the server cannot be reached.
// A request that reached the server is never repeated, since the email may
// already be on its way.
func WithRetry(attempts int, backoff time.Duration) Option {
	return func(c *Client) error {
		if attempts < 1 {
			return errors.New("attempts must be at least 1")
		}
		if backoff < 0 {
			return errors.New("backoff must not be negative")
		}
		c.attempts = attempts
		c.backoff = backoff
		return nil
	}
}

func WithUserAgent(userAgent string) Option {
	return func(c *Client) error {
		c.userAgent = userAgent
		return nil
	}
}

// Send posts fields once (plus connection retries) and decodes the reply.
// A decoded failure reply is returned as a Result with Success false and a
// nil error; the error is reserved for transport and decoding problems.
func (c *Client) Send(ctx context.Context, fields Fields) (*Result, error) {
	body, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	var lastErr error
	for attempt := 1; attempt <= c.attempts; attempt++ {
		if attempt > 1 {
			if err := sleep(ctx, c.backoff*time.Duration(attempt-1)); err != nil {
				return nil, err
			}
		}

		resp, err := c.post(ctx, body)
		if err == nil {
			return decodeResult(resp)
		}
		lastErr = err
		if ctx.Err() != nil || !isConnectError(err) {
			break
		}
	}
	return nil, lastErr
}

func (c *Client) post(ctx context.Context, body []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	return c.http.Do(req)
}

func decodeResult(resp *http.Response) (*Result, error) {
	defer func() {
		_ = resp.Body.Close()
	}()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	result := &Result{}
	if err := json.Unmarshal(raw, result); err != nil {
		return nil, &HTTPError{StatusCode: resp.StatusCode, Message: bodyMessage(raw, resp.Status)}
	}
	result.StatusCode = resp.StatusCode
	// A success flag on an error status is not trusted
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		result.Success = false
	}
	return result, nil
}

func bodyMessage(raw []byte, status string) string {
	if msg := strings.TrimSpace(string(raw)); msg != "" {
		return msg
	}
	return status
}

// isConnectError reports whether err happened before the request reached
// the server.
func isConnectError(err error) bool {
	var opErr *net.OpError
	return errors.As(err, &opErr) && opErr.Op == "dial"
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// HTTPError is a reply that could not be read as a handler response, or a
// handler response reporting failure.
type HTTPError struct {
	StatusCode int
	Message    string
	ErrorID    string
}

func (e *HTTPError) Error() string {
	if e.ErrorID != "" {
		return fmt.Sprintf("request failed (%d): %s (error id %s)", e.StatusCode, e.Message, e.ErrorID)
	}
	return fmt.Sprintf("request failed (%d): %s", e.StatusCode, e.Message)
}
