package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/zappabad/tickerboard/internal/flow"
	"github.com/zappabad/tickerboard/internal/format"
	"github.com/zappabad/tickerboard/internal/logging"
	"github.com/zappabad/tickerboard/internal/market"
	newsview "github.com/zappabad/tickerboard/internal/news/view"
	"github.com/zappabad/tickerboard/tui/panels"
	"github.com/zappabad/tickerboard/tui/styles"
)

// MarketSource loads the table rows and per-ticker series.
type MarketSource interface {
	LoadRows(ctx context.Context) ([]market.Row, error)
	LoadSeries(ctx context.Context, ticker string) (market.Series, error)
}

// NewsSource loads one page of news.
type NewsSource interface {
	LoadPage(ctx context.Context, ticker string, page int) (newsview.Page, error)
	PageSize() int
}

// Screen is the page currently shown.
type Screen int

const (
	ScreenTable Screen = iota
	ScreenTicker
)

// PanelFocus represents which ticker page panel is focused.
type PanelFocus int

const (
	FocusChart PanelFocus = iota
	FocusNews
)

// Options configure a Model.
type Options struct {
	Formatter     format.Formatter
	SparklineCols int
}

// Model is the main TUI application model.
type Model struct {
	ctx    context.Context
	market MarketSource
	news   NewsSource
	fmt    format.Formatter
	log    zerolog.Logger

	// Panels
	tablePanel *panels.MarketTablePanel
	chartPanel *panels.ChartPanel
	newsPanel  *panels.NewsPanel
	spinner    spinner.Model

	// One gate per fetch flow; results carrying an older token are dropped.
	rowsGate   flow.Gate
	seriesGate flow.Gate
	newsGate   flow.Gate

	screen       Screen
	focusedPanel PanelFocus
	row          market.Row
	feed         newsview.FeedState

	// Window dimensions
	width  int
	height int
	ready  bool
}

// NewModel creates a new TUI model. Fetches run with ctx.
func NewModel(ctx context.Context, ms MarketSource, ns NewsSource, opts Options) *Model {
	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = lipgloss.NewStyle().Foreground(styles.PrimaryColor)

	m := &Model{
		ctx:          ctx,
		market:       ms,
		news:         ns,
		fmt:          opts.Formatter,
		log:          logging.Component("tui"),
		tablePanel:   panels.NewMarketTablePanel(opts.Formatter, opts.SparklineCols),
		chartPanel:   panels.NewChartPanel(opts.Formatter),
		newsPanel:    panels.NewNewsPanel(),
		spinner:      sp,
		screen:       ScreenTable,
		focusedPanel: FocusNews,
		feed:         newsview.NewFeedState("", ns.PageSize()),
	}
	m.tablePanel.SetFocus(true)
	m.syncFocus()
	return m
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.tablePanel.Init(),
		m.chartPanel.Init(),
		m.newsPanel.Init(),
		m.spinner.Tick,
		m.loadRows(),
	)
}

var (
	quitKey  = key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit"))
	backKey  = key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "back"))
	focusKey = key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "focus"))
	retryKey = key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload"))
)

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if handled, cmd := m.handleKey(msg); handled {
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updatePanelSizes()
		m.ready = true

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case rowsLoadedMsg:
		m.applyRows(msg)
		return m, nil

	case seriesLoadedMsg:
		m.applySeries(msg)
		return m, nil

	case newsLoadedMsg:
		m.applyNews(msg)
		return m, nil

	case panels.TickerSelectedMsg:
		return m, m.openTicker(msg.Row)

	case panels.NewsPageMsg:
		return m, m.turnPage(msg.Delta)
	}

	m.updateFocusedPanel(msg, &cmds)
	return m, tea.Batch(cmds...)
}

// handleKey processes the global bindings. It reports false when the key
// belongs to the focused panel.
func (m *Model) handleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return true, tea.Quit
	}
	if m.screen == ScreenTable && m.tablePanel.Searching() {
		return false, nil
	}
	if m.screen == ScreenTicker && m.newsPanel.Previewing() {
		return false, nil
	}

	switch {
	case key.Matches(msg, quitKey):
		return true, tea.Quit
	case key.Matches(msg, retryKey):
		return true, m.reload()
	}

	if m.screen != ScreenTicker {
		return false, nil
	}
	switch {
	case key.Matches(msg, backKey):
		m.closeTicker()
		return true, nil
	case key.Matches(msg, focusKey):
		m.focusedPanel = (m.focusedPanel + 1) % 2
		m.syncFocus()
		return true, nil
	}
	return false, nil
}

func (m *Model) updateFocusedPanel(msg tea.Msg, cmds *[]tea.Cmd) {
	var cmd tea.Cmd

	switch {
	case m.screen == ScreenTable:
		m.tablePanel, cmd = m.tablePanel.Update(msg)
	case m.focusedPanel == FocusNews:
		m.newsPanel, cmd = m.newsPanel.Update(msg)
	default:
		m.chartPanel, cmd = m.chartPanel.Update(msg)
	}

	if cmd != nil {
		*cmds = append(*cmds, cmd)
	}
}

func (m *Model) syncFocus() {
	m.chartPanel.SetFocus(m.focusedPanel == FocusChart)
	m.newsPanel.SetFocus(m.focusedPanel == FocusNews)
}

// openTicker shows the ticker page for row and starts both of its fetches.
func (m *Model) openTicker(row market.Row) tea.Cmd {
	m.row = row
	m.screen = ScreenTicker
	m.feed = m.feed.WithTicker(row.Ticker)
	m.chartPanel.SetTicker(row.Ticker, row.Currency)
	m.log.Debug().Str("ticker", row.Ticker).Int("page", m.feed.Page).Msg("open ticker")
	return tea.Batch(m.loadSeries(), m.loadNews())
}

// closeTicker returns to the table. Results still in flight are dropped and
// the feed starts over at page 1 the next time a ticker is opened.
func (m *Model) closeTicker() {
	m.screen = ScreenTable
	m.seriesGate.Cancel()
	m.newsGate.Cancel()
	m.feed = newsview.NewFeedState("", m.news.PageSize())
}

func (m *Model) turnPage(delta int) tea.Cmd {
	before := m.feed.Key()
	switch {
	case delta > 0:
		page, ok := m.newsPanel.Region().Data()
		if !ok {
			return nil
		}
		m.feed = m.feed.Next(page)
	case delta < 0:
		m.feed = m.feed.Prev()
	}
	if m.feed.Key() == before {
		return nil
	}
	return m.loadNews()
}

func (m *Model) reload() tea.Cmd {
	if m.screen == ScreenTicker {
		return tea.Batch(m.loadSeries(), m.loadNews())
	}
	return m.loadRows()
}

func (m *Model) loadRows() tea.Cmd {
	tok := m.rowsGate.Begin()
	m.tablePanel.SetRegion(flow.LoadingRegion[[]market.Row]())
	ctx, src := m.ctx, m.market
	return func() tea.Msg {
		rows, err := src.LoadRows(ctx)
		return rowsLoadedMsg{token: tok, rows: rows, err: err}
	}
}

func (m *Model) loadSeries() tea.Cmd {
	tok := m.seriesGate.Begin()
	m.chartPanel.SetRegion(flow.LoadingRegion[market.Series]())
	ctx, src, ticker := m.ctx, m.market, m.row.Ticker
	return func() tea.Msg {
		series, err := src.LoadSeries(ctx, ticker)
		return seriesLoadedMsg{token: tok, ticker: ticker, series: series, err: err}
	}
}

func (m *Model) loadNews() tea.Cmd {
	tok := m.newsGate.Begin()
	m.newsPanel.SetRegion(flow.LoadingRegion[newsview.Page]())
	ctx, src, k := m.ctx, m.news, m.feed.Key()
	return func() tea.Msg {
		page, err := src.LoadPage(ctx, k.Ticker, k.Page)
		return newsLoadedMsg{token: tok, key: k, page: page, err: err}
	}
}

func (m *Model) applyRows(msg rowsLoadedMsg) {
	if !m.rowsGate.Admit(msg.token) {
		m.log.Debug().
			Uint64("token", uint64(msg.token)).
			Uint64("current", uint64(m.rowsGate.Current())).
			Msg("dropping stale rows")
		return
	}
	if msg.err != nil {
		m.log.Warn().Err(msg.err).Msg("load rows")
		m.tablePanel.SetRegion(flow.FailedRegion[[]market.Row](msg.err))
		return
	}
	m.tablePanel.SetRegion(flow.ReadyRegion(msg.rows))
}

func (m *Model) applySeries(msg seriesLoadedMsg) {
	if !m.seriesGate.Admit(msg.token) {
		m.log.Debug().Str("ticker", msg.ticker).Msg("dropping stale series")
		return
	}
	if msg.err != nil {
		log := logging.WithTicker(m.log, msg.ticker)
		log.Warn().Err(msg.err).Msg("load series")
		m.chartPanel.SetRegion(flow.FailedRegion[market.Series](msg.err))
		return
	}
	m.chartPanel.SetRegion(flow.ReadyRegion(msg.series))
}

func (m *Model) applyNews(msg newsLoadedMsg) {
	if !m.newsGate.Admit(msg.token) {
		m.log.Debug().Str("ticker", msg.key.Ticker).Int("page", msg.key.Page).Msg("dropping stale news")
		return
	}
	if msg.err != nil {
		log := logging.WithTicker(m.log, msg.key.Ticker)
		log.Warn().Err(msg.err).Int("page", msg.key.Page).Msg("load news")
		m.newsPanel.SetRegion(flow.FailedRegion[newsview.Page](msg.err))
		return
	}
	m.newsPanel.SetRegion(flow.ReadyRegion(msg.page))
}

// View renders the UI.
func (m *Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	frame := m.spinner.View()
	m.tablePanel.SetSpinner(frame)
	m.chartPanel.SetSpinner(frame)
	m.newsPanel.SetSpinner(frame)

	var body string
	if m.screen == ScreenTable {
		body = m.tablePanel.View()
	} else {
		body = m.renderTickerPage()
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, m.renderStatusBar())
}

// Layout:
//
//	header
//	┌──── chart ────┐┌──── news ────┐   (wide terminals)
//
//	header
//	┌──── chart ────┐
//	┌──── news ─────┐                   (narrow terminals)
func (m *Model) renderTickerPage() string {
	header := m.renderTickerHeader()
	if m.width >= wideLayout {
		return lipgloss.JoinVertical(lipgloss.Left, header,
			lipgloss.JoinHorizontal(lipgloss.Top, m.chartPanel.View(), m.newsPanel.View()))
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, m.chartPanel.View(), m.newsPanel.View())
}

func (m *Model) renderTickerHeader() string {
	r := m.row
	parts := []string{styles.HeadlineStyle.Render(r.Ticker)}
	if name, ok := r.Name.Get(); ok {
		parts = append(parts, name)
	}
	if code, ok := r.Currency.Get(); ok {
		parts = append(parts, format.CurrencyLabel(code))
	}
	parts = append(parts, m.fmt.Price(r.Price, r.Currency))
	move := m.fmt.Count(r.Change) + " (" + m.fmt.Percent(r.ChangePct) + ")"
	parts = append(parts, styles.ForSign(format.SignOf(r.Change)).Render(move))
	return " " + strings.Join(parts, styles.MutedStyle.Render(" · "))
}

func (m *Model) renderStatusBar() string {
	type hint struct{ key, desc string }
	var hints []hint
	if m.screen == ScreenTable {
		hints = []hint{{"↑↓", " select"}, {"enter", " open"}, {"/", " search"}, {"1-7", " sort"}, {"r", " reload"}, {"q", " quit"}}
	} else {
		hints = []hint{{"esc", " back"}, {"tab", " focus"}, {"n/p", " page"}, {"enter", " read"}, {"r", " reload"}, {"q", " quit"}}
	}

	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = styles.StatusBarKeyStyle.Render(h.key) + styles.StatusBarDescStyle.Render(h.desc)
	}
	return styles.StatusBarStyle.Width(m.width).Render(strings.Join(parts, " │ "))
}

const wideLayout = 120

func (m *Model) updatePanelSizes() {
	bodyHeight := max(m.height-1, 6)
	m.tablePanel.SetSize(m.width, bodyHeight)

	pageHeight := max(bodyHeight-1, 6)
	if m.width >= wideLayout {
		chartWidth := m.width * 11 / 20
		m.chartPanel.SetSize(chartWidth, pageHeight)
		m.newsPanel.SetSize(m.width-chartWidth, pageHeight)
		return
	}
	chartHeight := pageHeight * 2 / 5
	m.chartPanel.SetSize(m.width, chartHeight)
	m.newsPanel.SetSize(m.width, pageHeight-chartHeight)
}

// Screen returns the page currently shown.
func (m *Model) Screen() Screen { return m.screen }

// Feed returns the news feed state.
func (m *Model) Feed() newsview.FeedState { return m.feed }

type rowsLoadedMsg struct {
	token flow.Token
	rows  []market.Row
	err   error
}

type seriesLoadedMsg struct {
	token  flow.Token
	ticker string
	series market.Series
	err    error
}

type newsLoadedMsg struct {
	token flow.Token
	key   newsview.FeedKey
	page  newsview.Page
	err   error
}
