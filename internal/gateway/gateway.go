// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package gateway submits text queries to the remote API gateway and returns
// its JSON response.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/pdiddy/hio-assistant/internal/httputil"
	"github.com/pdiddy/hio-assistant/pkg/types"
)

// QueryPath is the gateway route queries are posted to, relative to the base URL.
const QueryPath = "/query"

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "hio/0.1"

	// maxErrorBody bounds how much of a failed response is kept in a StatusError.
	maxErrorBody = 64 << 10
)

// Querier answers a text query with an arbitrary JSON value. Client and Mock
// implement it.
type Querier interface {
	SubmitQuery(ctx context.Context, query string) (any, error)
}

// Client posts queries to the API gateway.
type Client struct {
	httpClient *http.Client
	cfg        types.GatewayConfig
	log        zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// New creates a gateway client. A missing base URL is not an error here; it
// is reported by each call so the configuration is read at use time.
func New(cfg types.GatewayConfig, opts ...Option) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	c := &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		cfg:        cfg,
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint returns the full query URL, or ErrMissingBaseURL.
func (c *Client) Endpoint() (string, error) {
	base := strings.TrimSpace(c.cfg.BaseURL)
	if base == "" {
		return "", ErrMissingBaseURL
	}
	return strings.TrimRight(base, "/") + QueryPath, nil
}

// SubmitQuery sends query as {"query": query} to the gateway and returns the
// decoded JSON response body. Numbers are decoded as json.Number. A 2xx
// response with an empty body yields nil; trailing data after the JSON value
// is an error.
func (c *Client) SubmitQuery(ctx context.Context, query string) (any, error) {
	body, err := c.do(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var result any
	if err := dec.Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding gateway response: %w", err)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return nil, errors.New("decoding gateway response: unexpected data after JSON value")
	}
	return result, nil
}

// Submit sends query to the gateway and decodes the response into out.
func (c *Client) Submit(ctx context.Context, query string, out any) error {
	body, err := c.do(ctx, query)
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return fmt.Errorf("decoding gateway response: %w", io.ErrUnexpectedEOF)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decoding gateway response: %w", err)
	}
	return nil
}

// do performs the POST and returns the raw body of a 2xx response.
func (c *Client) do(ctx context.Context, query string) ([]byte, error) {
	endpoint, err := c.Endpoint()
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(types.QueryRequest{Query: query})
	if err != nil {
		return nil, fmt.Errorf("encoding query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	req.Header.Set("X-Request-ID", requestID)
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	log := c.log.With().Str("request_id", requestID).Str("url", endpoint).Logger()
	log.Debug().Str("query", query).Msg("submitting query")
	start := time.Now()

	resp, err := httputil.DoWithRetry(log.WithContext(ctx), c.httpClient, req, c.cfg.MaxRetries)
	if err != nil {
		log.Error().Err(err).Msg("gateway request failed")
		return nil, fmt.Errorf("gateway request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text, readErr := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		serr := &StatusError{StatusCode: resp.StatusCode}
		if readErr == nil {
			serr.Body = strings.TrimSpace(string(text))
		}
		log.Error().Int("status", resp.StatusCode).Dur("elapsed", time.Since(start)).Msg("gateway returned error status")
		return nil, serr
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading gateway response: %w", err)
	}
	log.Debug().Int("status", resp.StatusCode).Int("bytes", len(data)).Dur("elapsed", time.Since(start)).Msg("query answered")
	return data, nil
}

// IsStatus reports whether err is a StatusError with the given code.
func IsStatus(err error, code int) bool {
	var serr *StatusError
	return errors.As(err, &serr) && serr.StatusCode == code
}
