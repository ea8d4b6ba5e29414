package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. TICKERBOARD_NEWS_PAGE_SIZE.
const EnvPrefix = "TICKERBOARD"

// Loader handles configuration loading with Viper.
type Loader struct {
	v          *viper.Viper
	configFile string
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	return &Loader{v: viper.New()}
}

// SetConfigFile sets an explicit config file path.
func (l *Loader) SetConfigFile(path string) {
	l.configFile = path
}

// Viper returns the underlying Viper instance, used to bind CLI flags.
func (l *Loader) Viper() *viper.Viper {
	return l.v
}

// Load loads configuration with precedence
// defaults < config file < env vars < bound flags.
func (l *Loader) Load() (*Config, error) {
	cfg := DefaultConfig()
	l.setupViper(cfg)

	if err := l.loadConfigFile(); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}
	if err := l.v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Logging.File = expandTilde(cfg.Logging.File)
	cfg.Server.DataDir = expandTilde(cfg.Server.DataDir)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// ConfigFileUsed returns the config file that was loaded, if any.
func (l *Loader) ConfigFileUsed() string {
	return l.v.ConfigFileUsed()
}

func (l *Loader) setupViper(cfg *Config) {
	v := l.v

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		v.AddConfigPath(filepath.Join(xdg, "tickerboard"))
	}
	if home, _ := os.UserHomeDir(); home != "" {
		v.AddConfigPath(filepath.Join(home, ".config", "tickerboard"))
	}
	v.AddConfigPath(".")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	for key, val := range defaults(cfg) {
		v.SetDefault(key, val)
		// Unmarshal only sees env vars for keys it knows about.
		_ = v.BindEnv(key)
	}
	v.AutomaticEnv()
}

func defaults(cfg *Config) map[string]any {
	return map[string]any{
		"api.base_url":         cfg.API.BaseURL,
		"api.data_url":         cfg.API.DataURL,
		"api.timeout":          cfg.API.Timeout,
		"api.user_agent":       cfg.API.UserAgent,
		"table.rows_path":      cfg.Table.RowsPath,
		"table.sparkline_cols": cfg.Table.SparklineCols,
		"news.page_size":       cfg.News.PageSize,
		"display.locale":       cfg.Display.Locale,
		"logging.level":        cfg.Logging.Level,
		"logging.format":       cfg.Logging.Format,
		"logging.file":         cfg.Logging.File,
		"logging.caller":       cfg.Logging.Caller,
		"server.addr":          cfg.Server.Addr,
		"server.data_dir":      cfg.Server.DataDir,
	}
}

// loadConfigFile reads the config file. A missing file is only an error when
// it was named explicitly.
func (l *Loader) loadConfigFile() error {
	if l.configFile != "" {
		l.v.SetConfigFile(l.configFile)
	}
	err := l.v.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if err != nil && l.configFile == "" && errors.As(err, &notFound) {
		return nil
	}
	return err
}

func expandTilde(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}

// LoadDefault loads configuration with default search paths.
func LoadDefault() (*Config, error) {
	return NewLoader().Load()
}
