package api

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

type Config struct {
	BaseURL   string        // serves /ticker/{ticker} and /news
	Timeout   time.Duration // per request, on top of the caller's context
	UserAgent string

	// HTTPClient overrides the transport; nil uses a fresh client.
	HTTPClient *http.Client
	Logger     *zerolog.Logger
}

func (c Config) withDefaults() Config {
	if c.BaseURL == "" {
		c.BaseURL = "http://127.0.0.1:8000"
	}
	if c.Timeout <= 0 {
		c.Timeout = 10 * time.Second
	}
	if c.UserAgent == "" {
		c.UserAgent = "tickerboard"
	}
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{}
	}
	return c
}
