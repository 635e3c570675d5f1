package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/fwojciec/studio"
	"github.com/fwojciec/studio/sse"
	"go.uber.org/zap"
)

// Interface compliance checks.
var (
	_ studio.Generator = (*Client)(nil)
	_ studio.Analyzer  = (*Client)(nil)
)

// Client talks to the Content Creation Studio API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// Option configures a [Client].
type Option func(*Client)

// WithBaseURL sets the API base URL. Useful for testing with httptest.
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(url, "/") }
}

// WithHTTPClient sets a custom HTTP client. Its Timeout, if any, bounds the
// whole stream, not just the response headers.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the logger used by the client and the runs it starts.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a new [Client] with the given options.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL:    defaultBaseURL,
		httpClient: http.DefaultClient,
		logger:     zap.NewNop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Generate validates b and returns a [studio.Run] that posts the brief on its
// first Next and streams the workflow's progress. Connection failures and
// non-2xx responses surface as a Failed snapshot from the Run.
func (c *Client) Generate(ctx context.Context, b studio.Brief) (studio.Run, error) {
	if err := b.Validate(); err != nil {
		return nil, fmt.Errorf("api: %w", err)
	}
	body, err := json.Marshal(generateRequest{
		Topic:          b.Topic,
		TargetAudience: b.TargetAudience,
		Tone:           b.Tone,
		Keywords:       b.Keywords,
		SessionID:      b.SessionID,
	})
	if err != nil {
		return nil, fmt.Errorf("api: %w", err)
	}
	logger := c.logger.With(zap.String("topic", b.Topic))
	open := func(ctx context.Context) (io.ReadCloser, error) {
		return c.openStream(ctx, body, logger)
	}
	return sse.NewRun(ctx, open, sse.WithLogger(logger)), nil
}

func (c *Client) openStream(ctx context.Context, body []byte, logger *zap.Logger) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+generatePath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("api: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("api: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		return nil, parseHTTPError(resp)
	}
	logger.Debug("stream opened", zap.Int("status", resp.StatusCode),
		zap.String("content_type", resp.Header.Get("Content-Type")))
	return resp.Body, nil
}

// Analyze sends text for one-shot analysis and returns the analysis.
func (c *Client) Analyze(ctx context.Context, text string) (string, error) {
	if err := studio.ValidateText(text); err != nil {
		return "", fmt.Errorf("api: %w", err)
	}
	var out analyzeResponse
	if err := c.postJSON(ctx, analyzePath, analyzeRequest{Text: text}, &out); err != nil {
		return "", err
	}
	return out.Analysis, nil
}

// Health reports the service status.
func (c *Client) Health(ctx context.Context) (Health, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+healthPath, nil)
	if err != nil {
		return Health{}, fmt.Errorf("api: %w", err)
	}
	var h Health
	if err := c.do(req, &h); err != nil {
		return Health{}, err
	}
	return h, nil
}

func (c *Client) postJSON(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("api: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("api: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("api: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return parseHTTPError(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("api: decode %s response: %w", req.URL.Path, err)
	}
	c.logger.Debug("request done", zap.String("path", req.URL.Path), zap.Int("status", resp.StatusCode))
	return nil
}

// parseHTTPError builds an error from a non-2xx response, preferring the
// server's detail message.
func parseHTTPError(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("api: HTTP %d (failed to read body: %w)", resp.StatusCode, err)
	}
	var e struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &e); err != nil || len(e.Detail) == 0 {
		msg := strings.TrimSpace(string(body))
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return fmt.Errorf("api: HTTP %d: %s", resp.StatusCode, msg)
	}
	var detail errorResponse
	if err := json.Unmarshal(body, &detail); err == nil && detail.Detail != "" {
		return fmt.Errorf("api: HTTP %d: %s", resp.StatusCode, detail.Detail)
	}
	// Validation errors carry a structured detail.
	return fmt.Errorf("api: HTTP %d: %s", resp.StatusCode, string(e.Detail))
}
