package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"tableside/internal/logger"
)

// Client is the typed gateway to the remote POS service. It owns the
// envelope decoding and the mapping from HTTP failures onto the error
// taxonomy; callers never see raw status codes.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	log     *logger.Logger
}

type Option func(*Client)

// WithHTTPClient overrides the underlying http.Client (tests inject
// httptest transports through this).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithRateLimit throttles outbound calls to the remote service.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) { c.limiter = rate.NewLimiter(rate.Limit(rps), burst) }
}

func NewClient(baseURL string, log *logger.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
		limiter: rate.NewLimiter(rate.Limit(20), 10),
		log:     log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// envelope is the response wrapper every endpoint uses.
type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// do issues one request and decodes the envelope's data field into out
// (out may be nil for void endpoints).
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	op := method + " " + path

	if err := c.limiter.Wait(ctx); err != nil {
		return &TransportError{Op: op, Err: err}
	}

	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request for %s: %w", op, err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("build request for %s: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error("API", fmt.Sprintf("%s failed: %v", op, err))
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	c.log.LogAPI(method, path, fmt.Sprintf("%d", resp.StatusCode), time.Since(start).Round(time.Millisecond).String())

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}

	var env envelope
	if len(raw) > 0 {
		// A body that is not our envelope is tolerated for error statuses;
		// the status code alone is enough to classify the failure.
		_ = json.Unmarshal(raw, &env)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.mapError(op, resp.StatusCode, env.Message)
	}

	if out != nil {
		if len(env.Data) == 0 {
			return fmt.Errorf("empty response body for %s", op)
		}
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode response for %s: %w", op, err)
		}
	}

	return nil
}

func (c *Client) mapError(op string, code int, message string) error {
	if message == "" {
		message = http.StatusText(code)
	}

	switch {
	case code == http.StatusNotFound:
		return &NotFoundError{Message: message}
	case code == http.StatusConflict:
		return &ConflictError{Message: message}
	case code == http.StatusBadRequest || code == http.StatusUnprocessableEntity:
		return &ValidationError{Message: message}
	default:
		return &TransportError{Op: op, Err: fmt.Errorf("unexpected status %d: %s", code, message)}
	}
}
