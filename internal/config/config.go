// Package config handles tickerboard configuration loading and validation.
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"golang.org/x/text/language"
)

// Config is the root configuration structure.
type Config struct {
	API     APIConfig     `yaml:"api" mapstructure:"api"`
	Table   TableConfig   `yaml:"table" mapstructure:"table"`
	News    NewsConfig    `yaml:"news" mapstructure:"news"`
	Display DisplayConfig `yaml:"display" mapstructure:"display"`
	Logging LoggingConfig `yaml:"logging" mapstructure:"logging"`
	Server  ServerConfig  `yaml:"server" mapstructure:"server"`
}

// APIConfig describes the market data backend.
type APIConfig struct {
	// BaseURL serves /ticker/{ticker} and /news.
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`

	// DataURL serves the table payload. Empty means BaseURL + "/sp100".
	DataURL string `yaml:"data_url" mapstructure:"data_url"`

	// Timeout bounds every request.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is sent on every request.
	UserAgent string `yaml:"user_agent" mapstructure:"user_agent"`
}

// TableConfig contains ticker table settings.
type TableConfig struct {
	// RowsPath is the JSON path of the row array inside the table payload.
	RowsPath string `yaml:"rows_path" mapstructure:"rows_path"`

	// SparklineCols is the width of the inline sparkline in terminal cells.
	SparklineCols int `yaml:"sparkline_cols" mapstructure:"sparkline_cols"`
}

// NewsConfig contains news feed settings.
type NewsConfig struct {
	// PageSize is the number of items requested per page.
	PageSize int `yaml:"page_size" mapstructure:"page_size"`
}

// DisplayConfig contains formatting settings.
type DisplayConfig struct {
	// Locale is the BCP 47 tag used for number formatting.
	Locale string `yaml:"locale" mapstructure:"locale"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string `yaml:"level" mapstructure:"level"`

	// Format is the output format (json, console).
	Format string `yaml:"format" mapstructure:"format"`

	// File is an optional log file path. The TUI logs nowhere without it.
	File string `yaml:"file" mapstructure:"file"`

	// Caller adds the source file and line to every entry.
	Caller bool `yaml:"caller" mapstructure:"caller"`
}

// ServerConfig configures the fixture server.
type ServerConfig struct {
	// Addr is the listen address.
	Addr string `yaml:"addr" mapstructure:"addr"`

	// DataDir holds sp100_live_data.json, reuters_news/ and ticker/.
	DataDir string `yaml:"data_dir" mapstructure:"data_dir"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:   "http://127.0.0.1:8000",
			Timeout:   10 * time.Second,
			UserAgent: "tickerboard",
		},
		Table: TableConfig{
			RowsPath:      "$.sp100",
			SparklineCols: 12,
		},
		News: NewsConfig{
			PageSize: 10,
		},
		Display: DisplayConfig{
			Locale: "en-US",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Server: ServerConfig{
			Addr:    "127.0.0.1:8000",
			DataDir: "data",
		},
	}
}

// TableURL returns the table payload URL.
func (c *Config) TableURL() string {
	if c.API.DataURL != "" {
		return c.API.DataURL
	}
	return strings.TrimRight(c.API.BaseURL, "/") + "/sp100"
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if _, err := url.ParseRequestURI(c.API.BaseURL); err != nil {
		return fmt.Errorf("api.base_url is invalid: %w", err)
	}
	if c.API.DataURL != "" {
		if _, err := url.ParseRequestURI(c.API.DataURL); err != nil {
			return fmt.Errorf("api.data_url is invalid: %w", err)
		}
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive")
	}
	if c.News.PageSize < 1 || c.News.PageSize > 100 {
		return fmt.Errorf("news.page_size must be between 1 and 100")
	}
	if c.Table.SparklineCols < 2 {
		return fmt.Errorf("table.sparkline_cols must be at least 2")
	}
	if !strings.HasPrefix(c.Table.RowsPath, "$") {
		return fmt.Errorf("table.rows_path must start with $")
	}
	if _, err := language.Parse(c.Display.Locale); err != nil {
		return fmt.Errorf("display.locale is invalid: %w", err)
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json")
	}
	return nil
}
