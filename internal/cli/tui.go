package cli

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zappabad/tickerboard/internal/logging"
	"github.com/zappabad/tickerboard/tui"
)

func (a *app) runTUI(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	// The terminal belongs to the UI.
	closeLog, err := a.initLogging(io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	ms, ns, err := a.services()
	if err != nil {
		return err
	}

	f := a.formatter()
	log := logging.Component("cli")
	log.Info().
		Str("base_url", a.cfg.API.BaseURL).
		Str("config", a.loader.ConfigFileUsed()).
		Str("locale", f.Locale().String()).
		Msg("starting tui")

	model := tui.NewModel(ctx, ms, ns, tui.Options{
		Formatter:     f,
		SparklineCols: a.cfg.Table.SparklineCols,
	})
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	_, err = p.Run()
	return err
}
