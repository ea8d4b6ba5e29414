package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/zappabad/tickerboard/internal/format"
	"github.com/zappabad/tickerboard/internal/logging"
	"github.com/zappabad/tickerboard/internal/market"
	marketview "github.com/zappabad/tickerboard/internal/market/view"
	"github.com/zappabad/tickerboard/internal/sparkline"
)

const tablePadding = 2

func newTableCmd(a *app) *cobra.Command {
	var (
		query  string
		sortBy string
		desc   bool
		svgDir string
	)
	cmd := &cobra.Command{
		Use:   "table",
		Short: "Print the ticker table",
		Long:  "Load the ticker table once and print it filtered and sorted, without the interactive UI.",
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := market.ParseSortKey(sortBy)
			if err != nil {
				return err
			}
			closeLog, err := a.initLogging(os.Stderr)
			if err != nil {
				return err
			}
			defer closeLog()

			ms, _, err := a.services()
			if err != nil {
				return err
			}
			rows, err := ms.LoadRows(cmd.Context())
			if err != nil {
				return err
			}

			state := marketview.DefaultTableState().SetQuery(query)
			state.Sort = market.SortState{Key: key, Dir: market.Asc}
			if desc {
				state.Sort.Dir = market.Desc
			}
			visible := marketview.ProjectState(rows, state)
			if svgDir != "" {
				if err := writeSparklines(svgDir, visible); err != nil {
					return err
				}
			}
			if len(visible) == 0 {
				_, err := fmt.Fprintln(a.out, "No data")
				return err
			}
			return writeTable(a.out, tableHeaders, tableRows(a.formatter(), visible))
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "filter by ticker or name substring")
	cmd.Flags().StringVarP(&sortBy, "sort", "s", string(market.KeyTicker), "sort column: "+sortKeyList())
	cmd.Flags().BoolVar(&desc, "desc", false, "sort descending")
	cmd.Flags().StringVar(&svgDir, "svg", "", "also write each row's 1D sparkline to DIR/<TICKER>.svg")
	return cmd
}

var tableHeaders = []string{"TICKER", "NAME", "PRICE", "CHANGE", "%", "VOLUME", "MKT CAP"}

func tableRows(f format.Formatter, rows []market.Row) [][]string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{
			r.Ticker,
			r.Name.Or(format.Placeholder),
			f.Price(r.Price, r.Currency),
			f.Count(r.Change),
			f.Percent(r.ChangePct),
			f.Compact(r.Volume),
			f.Compact(r.MarketCap),
		})
	}
	return out
}

// writeSparklines writes one SVG per row that has enough points to draw.
func writeSparklines(dir string, rows []market.Row) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create svg dir: %w", err)
	}
	log := logging.Component("cli")
	written := 0
	for _, r := range rows {
		name := svgFileName(r.Ticker)
		if name == "" {
			continue
		}
		up := format.SignOf(r.Change) != format.SignNegative
		doc, ok := sparkline.SVG(r.Sparkline, up)
		if !ok {
			log.Debug().Str("ticker", r.Ticker).Msg("no sparkline to export")
			continue
		}
		if err := os.WriteFile(filepath.Join(dir, name), []byte(doc), 0o644); err != nil {
			return fmt.Errorf("write sparkline: %w", err)
		}
		written++
	}
	log.Info().Str("dir", dir).Int("files", written).Msg("wrote sparklines")
	return nil
}

func svgFileName(ticker string) string {
	base := filepath.Base(filepath.Clean("/" + strings.TrimSpace(ticker)))
	if base == "/" || base == "." {
		return ""
	}
	return base + ".svg"
}

func sortKeyList() string {
	keys := make([]string, len(market.SortKeys))
	for i, k := range market.SortKeys {
		keys[i] = string(k)
	}
	return strings.Join(keys, "|")
}

func writeTable(out io.Writer, headers []string, rows [][]string) error {
	colCount := len(headers)
	for _, row := range rows {
		colCount = max(colCount, len(row))
	}
	if colCount == 0 {
		return nil
	}

	widths := make([]int, colCount)
	measure := func(row []string) {
		for idx, cell := range row {
			widths[idx] = max(widths[idx], runewidth.StringWidth(cell))
		}
	}
	measure(headers)
	for _, row := range rows {
		measure(row)
	}

	writer := bufio.NewWriter(out)
	writeRow := func(row []string) {
		for idx := 0; idx < colCount; idx++ {
			cell := ""
			if idx < len(row) {
				cell = row[idx]
			}
			if idx == colCount-1 {
				writer.WriteString(cell)
				break
			}
			writer.WriteString(runewidth.FillRight(cell, widths[idx]+tablePadding))
		}
		writer.WriteString("\n")
	}

	writeRow(headers)
	for _, row := range rows {
		writeRow(row)
	}
	return writer.Flush()
}
