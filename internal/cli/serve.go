package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/zappabad/tickerboard/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve recorded market data over HTTP",
		Long: `Serve the fixture backend from a data directory:

  sp100_live_data.json   table payload at /sp100
  reuters_news/<T>.csv   paginated news at /news?ticker=T
  ticker/<T>.json        intraday series at /ticker/T`,
		RunE: func(cmd *cobra.Command, args []string) error {
			closeLog, err := a.initLogging(os.Stderr)
			if err != nil {
				return err
			}
			defer closeLog()

			if a.cfg.Logging.Level != "debug" {
				gin.SetMode(gin.ReleaseMode)
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			srv := server.New(server.Config{
				Addr:    a.cfg.Server.Addr,
				DataDir: a.cfg.Server.DataDir,
			})
			return srv.Run(ctx)
		},
	}

	cmd.Flags().String("addr", "", "listen address")
	cmd.Flags().String("data-dir", "", "fixture directory")
	_ = a.loader.Viper().BindPFlag("server.addr", cmd.Flags().Lookup("addr"))
	_ = a.loader.Viper().BindPFlag("server.data_dir", cmd.Flags().Lookup("data-dir"))
	return cmd
}
