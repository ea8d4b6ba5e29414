// Package api is the HTTP client for the market data backend.
package api

import (
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
	"github.com/rs/zerolog"

	"github.com/zappabad/tickerboard/internal/logging"
)

// ErrEmptyTicker is returned when a per-ticker request has no symbol.
var ErrEmptyTicker = errors.New("ticker is required")

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: %d %s", e.URL, e.Code, http.StatusText(e.Code))
}

// StatusCode returns the HTTP status of err when it is (or wraps) a
// *StatusError.
func StatusCode(err error) (int, bool) {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code, true
	}
	return 0, false
}

// Client issues GET requests and decodes JSON bodies.
type Client struct {
	cfg  Config
	base *url.URL
	log  zerolog.Logger
}

// NewClient creates a Client. It fails only when BaseURL does not parse.
func NewClient(cfg Config) (*Client, error) {
	cfg = cfg.withDefaults()
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", cfg.BaseURL, err)
	}
	log := logging.Component("api")
	if cfg.Logger != nil {
		log = *cfg.Logger
	}
	return &Client{cfg: cfg, base: base, log: log}, nil
}

// URL resolves path and query against the base URL.
func (c *Client) URL(path string, query url.Values) string {
	u := *c.base
	u.Path = strings.TrimRight(u.Path, "/") + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// GetJSON fetches rawURL and decodes the body into out. Any non-2xx status is
// returned as a *StatusError without reading the body.
func (c *Client) GetJSON(ctx context.Context, rawURL string, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	reqID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	req.Header.Set("X-Request-ID", reqID)

	start := time.Now()
	resp, err := c.cfg.HTTPClient.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Str("url", rawURL).Str("request_id", reqID).Msg("request failed")
		return fmt.Errorf("GET %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	c.log.Debug().
		Str("url", rawURL).
		Str("request_id", reqID).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("GET")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return &StatusError{Code: resp.StatusCode, URL: rawURL}
	}

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", rawURL, err)
	}
	return nil
}
