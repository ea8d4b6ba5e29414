package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
	return dir
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := LoadDefault()
	require.NoError(t, err)
	require.Equal(t, 10, cfg.News.PageSize)
	require.Equal(t, "$.sp100", cfg.Table.RowsPath)
	require.Equal(t, "http://127.0.0.1:8000/sp100", cfg.TableURL())
	require.Equal(t, 10*time.Second, cfg.API.Timeout)
}

func TestLoadFilePrecedence(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
api:
  base_url: http://localhost:9000/
  data_url: http://localhost:9000/table.json
  timeout: 2s
news:
  page_size: 25
display:
  locale: de-DE
`), 0o644))

	// Env beats the file.
	t.Setenv("TICKERBOARD_NEWS_PAGE_SIZE", "5")

	l := NewLoader()
	l.SetConfigFile(path)
	cfg, err := l.Load()
	require.NoError(t, err)
	require.Equal(t, path, l.ConfigFileUsed())
	require.Equal(t, 5, cfg.News.PageSize)
	require.Equal(t, 2*time.Second, cfg.API.Timeout)
	require.Equal(t, "de-DE", cfg.Display.Locale)
	require.Equal(t, "http://localhost:9000/table.json", cfg.TableURL())
}

func TestLoadCallerFromEnv(t *testing.T) {
	isolate(t)

	cfg, err := LoadDefault()
	require.NoError(t, err)
	require.False(t, cfg.Logging.Caller)

	t.Setenv("TICKERBOARD_LOGGING_CALLER", "true")
	cfg, err = LoadDefault()
	require.NoError(t, err)
	require.True(t, cfg.Logging.Caller)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	dir := isolate(t)
	l := NewLoader()
	l.SetConfigFile(filepath.Join(dir, "nope.yaml"))
	_, err := l.Load()
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*Config){
		"page size zero":  func(c *Config) { c.News.PageSize = 0 },
		"page size large": func(c *Config) { c.News.PageSize = 101 },
		"bad base url":    func(c *Config) { c.API.BaseURL = "not a url" },
		"bad locale":      func(c *Config) { c.Display.Locale = "!!" },
		"bad rows path":   func(c *Config) { c.Table.RowsPath = "sp100" },
		"bad log format":  func(c *Config) { c.Logging.Format = "xml" },
		"zero timeout":    func(c *Config) { c.API.Timeout = 0 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			mutate(cfg)
			require.Error(t, cfg.Validate())
		})
	}
	require.NoError(t, DefaultConfig().Validate())
}

func TestExpandTilde(t *testing.T) {
	dir := isolate(t)
	require.Equal(t, filepath.Join(dir, "logs", "tb.log"), expandTilde("~/logs/tb.log"))
	require.Equal(t, "/var/log/tb.log", expandTilde("/var/log/tb.log"))
}
