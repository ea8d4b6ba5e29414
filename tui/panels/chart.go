package panels

import (
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zappabad/tickerboard/internal/flow"
	"github.com/zappabad/tickerboard/internal/format"
	"github.com/zappabad/tickerboard/internal/market"
	"github.com/zappabad/tickerboard/internal/sparkline"
	"github.com/zappabad/tickerboard/tui/styles"
)

// axisWidth is the room kept left of the plot for price labels.
const axisWidth = 11

// ChartPanel plots the ticker's intraday closes.
type ChartPanel struct {
	fmt      format.Formatter
	ticker   string
	currency market.Opt[string]
	region   flow.Region[market.Series]
	spinner  string

	focused bool
	width   int
	height  int
}

// NewChartPanel creates a new chart panel.
func NewChartPanel(f format.Formatter) *ChartPanel {
	return &ChartPanel{
		fmt:    f,
		region: flow.LoadingRegion[market.Series](),
	}
}

// Init initializes the panel.
func (p *ChartPanel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the panel.
func (p *ChartPanel) Update(msg tea.Msg) (*ChartPanel, tea.Cmd) {
	return p, nil
}

// Title is the chart heading for the current ticker.
func (p *ChartPanel) Title() string {
	return fmt.Sprintf("%s – Last Day (1m candles)", p.ticker)
}

// View renders the panel.
func (p *ChartPanel) View() string {
	var content string
	switch p.region.Status() {
	case flow.Loading:
		content = p.spinner + " Loading chart…"
	case flow.Failed:
		content = styles.ErrorStyle.Render("Error: " + p.region.Err())
	default:
		series, _ := p.region.Data()
		content = p.renderChart(series)
	}

	title := styles.RenderTitle("📉 "+p.Title(), p.focused)
	panel := lipgloss.JoinVertical(lipgloss.Left, title, content)

	return styles.Panel(p.focused).Width(p.width - 2).Height(p.height - 2).Render(panel)
}

func (p *ChartPanel) renderChart(series market.Series) string {
	closes := series.Closes()
	if len(closes) == 0 {
		return styles.MutedStyle.Render("No data")
	}

	// Border, title, axis line, time labels and summary line.
	plotRows := max(p.height-7, 3)
	plotCols := max(p.width-4-axisWidth-2, 10)

	first, last := closes[0], closes[len(closes)-1]
	lo, hi := slices.Min(closes), slices.Max(closes)
	trend := styles.Trend(last >= first)

	var plot []string
	if drawn, ok := sparkline.Render(closes, plotCols, plotRows); ok {
		plot = strings.Split(drawn, "\n")
	} else {
		// A single point: nothing to connect.
		plot = make([]string, plotRows)
		for i := range plot {
			plot[i] = strings.Repeat(" ", plotCols)
		}
		plot[plotRows/2] = "•" + strings.Repeat(" ", plotCols-1)
	}

	var b strings.Builder
	for i, line := range plot {
		label := ""
		switch i {
		case 0:
			label = p.fmt.Price(market.Some(hi), p.currency)
		case len(plot) - 1:
			label = p.fmt.Price(market.Some(lo), p.currency)
		}
		b.WriteString(styles.ChartAxisStyle.Render(fit(label, axisWidth-2, true) + " │"))
		b.WriteString(trend.Render(line))
		b.WriteString("\n")
	}
	b.WriteString(styles.ChartAxisStyle.Render(strings.Repeat("─", axisWidth-1) + "┴" + strings.Repeat("─", plotCols)))
	b.WriteString("\n")

	start := series.Points[0].Label()
	end := series.Points[len(series.Points)-1].Label()
	gap := max(plotCols-len(start)-len(end), 1)
	b.WriteString(styles.ChartLabelStyle.Render(strings.Repeat(" ", axisWidth) + start + strings.Repeat(" ", gap) + end))
	b.WriteString("\n")

	change := market.Some(last - first)
	pct := market.None[float64]()
	if first != 0 {
		pct = market.Some((last - first) / first * 100)
	}
	summary := fmt.Sprintf("%s  Last %s  %s (%s)",
		series.Date,
		p.fmt.Price(market.Some(last), p.currency),
		p.fmt.Count(change),
		p.fmt.Percent(pct),
	)
	b.WriteString(styles.ForSign(format.SignOf(change)).Render(summary))
	return b.String()
}

// SetTicker switches the chart to ticker and its display currency.
func (p *ChartPanel) SetTicker(ticker string, currency market.Opt[string]) {
	p.ticker = ticker
	p.currency = currency
}

// SetRegion replaces the chart state.
func (p *ChartPanel) SetRegion(r flow.Region[market.Series]) {
	p.region = r
}

// Region returns the current region.
func (p *ChartPanel) Region() flow.Region[market.Series] {
	return p.region
}

// SetSpinner sets the frame shown while loading.
func (p *ChartPanel) SetSpinner(frame string) {
	p.spinner = frame
}

// SetFocus sets the focus state of the panel.
func (p *ChartPanel) SetFocus(focused bool) {
	p.focused = focused
}

// SetSize sets the panel dimensions.
func (p *ChartPanel) SetSize(width, height int) {
	p.width = width
	p.height = height
}
