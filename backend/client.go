package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/fwojciec/examchat"
	"golang.org/x/time/rate"
	"pkt.systems/pslog"
)

// Interface compliance check.
var _ examchat.Backend = (*Client)(nil)

// Client implements [examchat.Backend] for the exam assistant API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     pslog.Logger
}

// Option configures a [Client].
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLimiter throttles outgoing chat requests.
func WithLimiter(l *rate.Limiter) Option {
	return func(c *Client) { c.limiter = l }
}

// WithLogger sets the logger for request outcomes.
func WithLogger(l pslog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a [Client] for the API rooted at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
		limiter:    rate.NewLimiter(rate.Inf, 1),
		logger:     pslog.NewWithOptions(io.Discard, pslog.Options{}),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Chat sends one message and returns the backend's answer. Failures other
// than validation wrap [examchat.ErrBackend].
func (c *Client) Chat(ctx context.Context, req examchat.ChatRequest) (examchat.ChatResponse, error) {
	if err := req.Validate(); err != nil {
		return examchat.ChatResponse{}, fmt.Errorf("backend: %w", err)
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return examchat.ChatResponse{}, c.fail("rate limit", err)
	}

	body, err := json.Marshal(apiChatRequest{Message: req.Message, UserID: req.UserID})
	if err != nil {
		return examchat.ChatResponse{}, c.fail("encode request", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+chatPath, bytes.NewReader(body))
	if err != nil {
		return examchat.ChatResponse{}, c.fail("build request", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	c.logger.Debug("chat.request", "user_id", req.UserID, "chars", len(req.Message))
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return examchat.ChatResponse{}, c.fail("send request", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		err := parseHTTPError(resp)
		c.logger.Warn("chat.failed", "status", resp.StatusCode, "err", err)
		return examchat.ChatResponse{}, err
	}

	var apiResp apiChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return examchat.ChatResponse{}, c.fail("decode response", err)
	}
	c.logger.Info("chat.response", "status", resp.StatusCode, "chars", len(apiResp.Response))
	return examchat.ChatResponse{
		Response:    apiResp.Response,
		Timestamp:   apiResp.Timestamp,
		MessageType: apiResp.MessageType,
	}, nil
}

// Health queries the health endpoint.
func (c *Client) Health(ctx context.Context) (examchat.HealthStatus, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+healthPath, nil)
	if err != nil {
		return examchat.HealthStatus{}, c.fail("build request", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return examchat.HealthStatus{}, c.fail("send request", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return examchat.HealthStatus{}, parseHTTPError(resp)
	}
	var apiResp apiHealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return examchat.HealthStatus{}, c.fail("decode response", err)
	}
	return examchat.HealthStatus{Status: apiResp.Status, Message: apiResp.Message}, nil
}

func (c *Client) fail(op string, err error) error {
	c.logger.Warn("chat.failed", "op", op, "err", err)
	return fmt.Errorf("backend: %s: %w: %w", op, examchat.ErrBackend, err)
}

func parseHTTPError(resp *http.Response) error {
	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return fmt.Errorf("backend: HTTP %d (failed to read body: %v): %w", resp.StatusCode, err, examchat.ErrBackend)
	}
	var apiErr apiErrorResponse
	if err := json.Unmarshal(body, &apiErr); err != nil || apiErr.Detail == "" {
		return fmt.Errorf("backend: HTTP %d: %s: %w", resp.StatusCode, strings.TrimSpace(string(body)), examchat.ErrBackend)
	}
	return fmt.Errorf("backend: HTTP %d: %s: %w", resp.StatusCode, apiErr.Detail, examchat.ErrBackend)
}
