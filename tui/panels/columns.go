package panels

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/zappabad/tickerboard/internal/market"
)

// column describes one table column. An empty key means the column cannot be
// sorted.
type column struct {
	title string
	key   market.SortKey
	width int
	right bool
}

const (
	nameMinWidth = 10
	colGap       = 1
)

// Sortable columns are wide enough for their title plus the sort arrow.
func tableColumns(sparkCols int) []column {
	return []column{
		{title: "Ticker", key: market.KeyTicker, width: 8},
		{title: "Name", key: market.KeyName, width: nameMinWidth},
		{title: "Price", key: market.KeyPrice, width: 11, right: true},
		{title: "Change", key: market.KeyChange, width: 9, right: true},
		{title: "%", key: market.KeyChangePct, width: 9, right: true},
		{title: "Volume", key: market.KeyVolume, width: 8, right: true},
		{title: "Mkt Cap", key: market.KeyMarketCap, width: 9, right: true},
		{title: "1D", width: sparkCols},
	}
}

// fitColumns gives the Name column whatever width the others leave.
func fitColumns(cols []column, total int) []column {
	used := 0
	for i, c := range cols {
		if c.key != market.KeyName {
			used += c.width
		}
		if i > 0 {
			used += colGap
		}
	}
	out := make([]column, len(cols))
	copy(out, cols)
	for i := range out {
		if out[i].key == market.KeyName {
			out[i].width = max(nameMinWidth, total-used)
		}
	}
	return out
}

// fit truncates s to width display cells and pads it.
func fit(s string, width int, right bool) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) > width {
		s = runewidth.Truncate(s, width, "…")
	}
	if right {
		return runewidth.FillLeft(s, width)
	}
	return runewidth.FillRight(s, width)
}

// truncate shortens s to width display cells without padding.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}

func joinCells(cells []string) string {
	return strings.Join(cells, strings.Repeat(" ", colGap))
}
