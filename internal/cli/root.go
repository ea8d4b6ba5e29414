// Package cli wires configuration, logging and services into the
// tickerboard commands.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/zappabad/tickerboard/internal/api"
	"github.com/zappabad/tickerboard/internal/config"
	"github.com/zappabad/tickerboard/internal/format"
	"github.com/zappabad/tickerboard/internal/logging"
	marketservice "github.com/zappabad/tickerboard/internal/market/service"
	newsservice "github.com/zappabad/tickerboard/internal/news/service"
)

// Execute runs the root command.
func Execute(version string) error {
	return newRootCmd(version).Execute()
}

// app carries what every command needs once configuration is loaded.
type app struct {
	loader *config.Loader
	cfg    *config.Config
	out    io.Writer
}

func newRootCmd(version string) *cobra.Command {
	a := &app{loader: config.NewLoader(), out: os.Stdout}
	var cfgFile string

	cmd := &cobra.Command{
		Use:           "tickerboard",
		Short:         "Terminal market dashboard",
		Long:          "Browse a ticker table with sparklines, then open a ticker for its intraday chart and news.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cfgFile != "" {
				a.loader.SetConfigFile(cfgFile)
			}
			cfg, err := a.loader.Load()
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.out = cmd.OutOrStdout()
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTUI(cmd.Context())
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: search $XDG_CONFIG_HOME/tickerboard, ~/.config/tickerboard, .)")
	flags.String("base-url", "", "market data backend URL")
	flags.String("data-url", "", "table payload URL (default: <base-url>/sp100)")
	flags.Duration("timeout", 0, "per request timeout")
	flags.Int("page-size", 0, "news items per page")
	flags.String("locale", "", "number formatting locale, e.g. en-US or de-DE")
	flags.String("log-level", "", "log level: debug|info|warn|error")
	flags.String("log-format", "", "log format: console|json")
	flags.String("log-file", "", "log file (the TUI does not log without one)")

	v := a.loader.Viper()
	for key, flag := range map[string]string{
		"api.base_url":   "base-url",
		"api.data_url":   "data-url",
		"api.timeout":    "timeout",
		"news.page_size": "page-size",
		"display.locale": "locale",
		"logging.level":  "log-level",
		"logging.format": "log-format",
		"logging.file":   "log-file",
	} {
		_ = v.BindPFlag(key, flags.Lookup(flag))
	}

	cmd.AddCommand(
		newServeCmd(a),
		newTableCmd(a),
		newNewsCmd(a),
	)
	return cmd
}

// initLogging configures the global logger. Logs go to logging.file when set,
// otherwise to fallback.
func (a *app) initLogging(fallback io.Writer) (func(), error) {
	lc := logging.Config{
		Level:        a.cfg.Logging.Level,
		Format:       a.cfg.Logging.Format,
		Output:       fallback,
		EnableCaller: a.cfg.Logging.Caller,
	}
	closeFn := func() {}
	if a.cfg.Logging.File != "" {
		f, err := os.OpenFile(a.cfg.Logging.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		lc.Output = f
		closeFn = func() { _ = f.Close() }
	}
	logging.Init(lc)
	return closeFn, nil
}

func (a *app) formatter() format.Formatter {
	f, err := format.ParseLocale(a.cfg.Display.Locale)
	if err != nil {
		return format.Default()
	}
	return f
}

func (a *app) client() (*api.Client, error) {
	return api.NewClient(api.Config{
		BaseURL:   a.cfg.API.BaseURL,
		Timeout:   a.cfg.API.Timeout,
		UserAgent: a.cfg.API.UserAgent,
	})
}

func (a *app) services() (*marketservice.MarketService, *newsservice.NewsService, error) {
	client, err := a.client()
	if err != nil {
		return nil, nil, err
	}
	ms := marketservice.NewMarketService(client, marketservice.Config{
		TableURL: a.cfg.TableURL(),
		RowsPath: a.cfg.Table.RowsPath,
	})
	ns := newsservice.NewNewsService(client, newsservice.Config{
		PageSize: a.cfg.News.PageSize,
	})
	return ms, ns, nil
}
