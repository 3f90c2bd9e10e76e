// Package backend is a typed client for the REST API the pages are rendered from.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/okian/staffboard/pkg/logger"
	"github.com/okian/staffboard/pkg/metrics"
	"github.com/sony/gobreaker"
)

const (
	breakerName         = "backend"
	maxErrorBodyBytes   = 4 << 10
	breakerHalfOpenReqs = 1
)

// Client calls the backend REST surface. It never retries: every call is a
// single request whose failure is reported to the caller.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	breaker *gobreaker.CircuitBreaker
	logger  logger.Logger

	timeout         time.Duration
	maxFailures     int
	openTimeout     time.Duration
	customTransport bool
}

// Option applies a configuration option to the Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client. The client's own
// Timeout is kept; WithTimeout does not apply to it.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
			c.customTransport = true
		}
	}
}

// WithTimeout bounds each call. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d >= 0 {
			c.timeout = d
		}
	}
}

// WithBreaker trips the circuit after maxFailures consecutive failures and
// keeps it open for openTimeout. maxFailures == 0 disables the breaker.
func WithBreaker(maxFailures int, openTimeout time.Duration) Option {
	return func(c *Client) {
		if maxFailures >= 0 {
			c.maxFailures = maxFailures
		}
		if openTimeout > 0 {
			c.openTimeout = openTimeout
		}
	}
}

// WithLogger sets a custom logger for the client.
func WithLogger(l logger.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a Client for the backend rooted at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, WrapKind("new_client", ErrRequest, fmt.Errorf("invalid base url %q", baseURL))
	}

	c := &Client{
		baseURL:     u,
		http:        &http.Client{},
		logger:      logger.Discard(),
		maxFailures: 0,
		openTimeout: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	if !c.customTransport {
		c.http.Timeout = c.timeout
	}

	if c.maxFailures > 0 {
		maxFailures := uint32(c.maxFailures) //nolint:gosec // validated non-negative above
		c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        breakerName,
			MaxRequests: breakerHalfOpenReqs,
			Timeout:     c.openTimeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= maxFailures
			},
			IsSuccessful: func(err error) bool {
				// A 4xx is the backend answering and a caller that went away
				// says nothing about it; only outages should trip the breaker.
				if err == nil || errors.Is(err, ErrCanceled) {
					return true
				}
				status := StatusOf(err)
				return status >= http.StatusBadRequest && status < http.StatusInternalServerError
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				metrics.UpdateBreakerState(name, int(to))
				c.logger.Warn(context.Background(), "backend circuit breaker state changed",
					logger.String("breaker", name),
					logger.String("from", from.String()),
					logger.String("to", to.String()))
			},
		})
		metrics.UpdateBreakerState(breakerName, int(gobreaker.StateClosed))
	}
	return c, nil
}

// BaseURL returns the backend root the client was built with.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Close drops idle keep-alive connections to the backend.
func (c *Client) Close() {
	c.http.CloseIdleConnections()
}

// endpoint builds an absolute URL from escaped path segments.
func (c *Client) endpoint(segments ...string) string {
	escaped := make([]string, len(segments))
	for i, s := range segments {
		escaped[i] = url.PathEscape(s)
	}
	return c.baseURL.String() + "/" + strings.Join(escaped, "/")
}

// do performs one request. A nil body sends no body at all; a nil out skips decoding.
func (c *Client) do(ctx context.Context, op, method, target string, body, out any) error {
	start := time.Now()
	call := func() (any, error) {
		return nil, c.roundTrip(ctx, op, method, target, body, out)
	}

	var err error
	if c.breaker != nil {
		_, err = c.breaker.Execute(call)
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			err = WrapKind(op, ErrCircuitOpen, err)
		}
	} else {
		_, err = call()
	}

	status := "ok"
	switch {
	case err == nil:
	case StatusOf(err) != 0:
		status = strconv.Itoa(StatusOf(err))
	default:
		status = KindOf(err)
	}
	metrics.RecordBackendRequest(op, method, status, float64(time.Since(start).Milliseconds()))

	if err != nil {
		c.logger.Debug(ctx, "backend call failed",
			logger.String("op", op), logger.String("method", method),
			logger.String("url", target), logger.Error(err))
	}
	return err
}

func (c *Client) roundTrip(ctx context.Context, op, method, target string, body, out any) error {
	var reader io.Reader = http.NoBody
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return WrapKind(op, ErrRequest, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return WrapKind(op, ErrRequest, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return WrapKind(op, failureKind(ctx, ErrTransport), err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &Error{Op: op, Kind: ErrStatus, Status: resp.StatusCode, Err: errorBody(resp.Body)}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return WrapKind(op, failureKind(ctx, ErrDecode), err)
	}
	if v, ok := out.(interface{ Validate() error }); ok {
		if err := v.Validate(); err != nil {
			return WrapKind(op, ErrDecode, err)
		}
	}
	return nil
}

// failureKind reports ErrCanceled when the caller's context ended, which
// covers both cancellation and a caller deadline. The client's own timeout
// does not touch ctx and keeps kind.
func failureKind(ctx context.Context, kind error) error {
	if ctx.Err() != nil {
		return ErrCanceled
	}
	return kind
}

// errorBody extracts the backend's {"error": "..."} message, falling back to
// the raw (truncated) body.
func errorBody(r io.Reader) error {
	raw, err := io.ReadAll(io.LimitReader(r, maxErrorBodyBytes))
	if err != nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	var env struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if json.Unmarshal(raw, &env) == nil {
		switch {
		case env.Error != "":
			return errors.New(env.Error)
		case env.Message != "":
			return errors.New(env.Message)
		}
	}
	return errors.New(strings.TrimSpace(string(raw)))
}
