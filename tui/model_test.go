package tui

import (
	"context"
	"errors"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zappabad/tickerboard/internal/flow"
	"github.com/zappabad/tickerboard/internal/format"
	"github.com/zappabad/tickerboard/internal/market"
	"github.com/zappabad/tickerboard/internal/news"
	newsview "github.com/zappabad/tickerboard/internal/news/view"
	"github.com/zappabad/tickerboard/tui/panels"
)

type fakeMarket struct {
	rows      []market.Row
	rowsErr   error
	seriesErr error
}

func (f *fakeMarket) LoadRows(ctx context.Context) ([]market.Row, error) {
	return f.rows, f.rowsErr
}

func (f *fakeMarket) LoadSeries(ctx context.Context, ticker string) (market.Series, error) {
	if f.seriesErr != nil {
		return market.Series{}, f.seriesErr
	}
	return market.Series{Ticker: ticker, Date: "2024-05-01", Points: []market.SeriesPoint{{Close: 1}, {Close: 2}}}, nil
}

// fakeNews serves total items per ticker, or pages with no total when
// total is negative.
type fakeNews struct {
	mu    sync.Mutex
	total int
	calls []newsview.FeedKey
	err   error
}

func (f *fakeNews) PageSize() int { return 10 }

func (f *fakeNews) LoadPage(ctx context.Context, ticker string, page int) (newsview.Page, error) {
	f.mu.Lock()
	f.calls = append(f.calls, newsview.FeedKey{Ticker: ticker, Page: page})
	f.mu.Unlock()
	if f.err != nil {
		return newsview.Page{}, f.err
	}

	n := f.total
	hasTotal := true
	if n < 0 {
		n, hasTotal = 20, false
	}
	start := (page - 1) * 10
	count := max(0, min(10, n-start))
	items := make([]news.NewsItem, count)
	for i := range items {
		items[i] = news.NewsItem{ID: news.NewsID(ticker), Title: ticker}
	}
	return newsview.Page{Ticker: ticker, Number: page, Size: 10, Items: items, Total: n, HasTotal: hasTotal}, nil
}

func newTestModel(t *testing.T, fm *fakeMarket, fn *fakeNews) *Model {
	t.Helper()
	m := NewModel(context.Background(), fm, fn, Options{Formatter: format.Default(), SparklineCols: 8})
	m.Update(tea.WindowSizeMsg{Width: 140, Height: 40})
	return m
}

// run executes cmd and any batch it expands to, returning the messages.
func run(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, run(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func deliver(m *Model, msgs []tea.Msg) {
	for _, msg := range msgs {
		m.Update(msg)
	}
}

func row(ticker string, price float64) market.Row {
	return market.Row{Ticker: ticker, Price: market.Some(price)}
}

func TestRowsLoad(t *testing.T) {
	fm := &fakeMarket{rows: []market.Row{row("MSFT", 2), row("AAPL", 1)}}
	m := newTestModel(t, fm, &fakeNews{total: 5})

	deliver(m, run(m.loadRows()))

	require.Equal(t, flow.Ready, m.tablePanel.Region().Status())
	visible := m.tablePanel.Visible()
	require.Len(t, visible, 2)
	assert.Equal(t, "AAPL", visible[0].Ticker)
	assert.Contains(t, m.View(), "AAPL")
}

func TestRowsFailure(t *testing.T) {
	fm := &fakeMarket{rowsErr: errors.New("boom")}
	m := newTestModel(t, fm, &fakeNews{total: 5})

	deliver(m, run(m.loadRows()))

	require.Equal(t, flow.Failed, m.tablePanel.Region().Status())
	assert.Equal(t, "boom", m.tablePanel.Region().Err())
}

func TestStaleRowsAreDropped(t *testing.T) {
	fm := &fakeMarket{rows: []market.Row{row("AAPL", 1)}}
	m := newTestModel(t, fm, &fakeNews{total: 5})

	first := run(m.loadRows())
	fm.rows = []market.Row{row("MSFT", 2)}
	second := run(m.loadRows())

	deliver(m, second)
	deliver(m, first)

	visible := m.tablePanel.Visible()
	require.Len(t, visible, 1)
	assert.Equal(t, "MSFT", visible[0].Ticker)
}

func TestOpenTickerLoadsChartAndNews(t *testing.T) {
	fn := &fakeNews{total: 25}
	m := newTestModel(t, &fakeMarket{}, fn)

	_, cmd := m.Update(panels.TickerSelectedMsg{Row: row("AAPL", 1)})
	require.Equal(t, ScreenTicker, m.Screen())
	assert.Equal(t, flow.Loading, m.chartPanel.Region().Status())
	assert.Equal(t, flow.Loading, m.newsPanel.Region().Status())

	deliver(m, run(cmd))

	assert.Equal(t, flow.Ready, m.chartPanel.Region().Status())
	page, ok := m.newsPanel.Region().Data()
	require.True(t, ok)
	assert.Equal(t, 1, page.Number)
	assert.Len(t, page.Items, 10)
	assert.Equal(t, []newsview.FeedKey{{Ticker: "AAPL", Page: 1}}, fn.calls)

	view := m.View()
	assert.Contains(t, view, "AAPL – Last Day (1m candles)")
	assert.Contains(t, view, "Page 1 of 3")
}

func TestNewsErrorDoesNotTouchChart(t *testing.T) {
	fn := &fakeNews{err: errors.New("failed to fetch news (404)")}
	m := newTestModel(t, &fakeMarket{}, fn)

	_, cmd := m.Update(panels.TickerSelectedMsg{Row: row("ZZZZ", 1)})
	deliver(m, run(cmd))

	assert.Equal(t, flow.Ready, m.chartPanel.Region().Status())
	assert.Equal(t, flow.Failed, m.newsPanel.Region().Status())
	assert.Equal(t, "failed to fetch news (404)", m.newsPanel.Region().Err())
}

func TestNewsPagination(t *testing.T) {
	fn := &fakeNews{total: 25}
	m := newTestModel(t, &fakeMarket{}, fn)

	_, cmd := m.Update(panels.TickerSelectedMsg{Row: row("AAPL", 1)})
	deliver(m, run(cmd))

	for _, want := range []int{2, 3} {
		_, cmd = m.Update(panels.NewsPageMsg{Delta: 1})
		deliver(m, run(cmd))
		page, ok := m.newsPanel.Region().Data()
		require.True(t, ok)
		require.Equal(t, want, page.Number)
	}

	// Page 3 of 3 has no next page.
	_, cmd = m.Update(panels.NewsPageMsg{Delta: 1})
	assert.Nil(t, cmd)
	assert.Equal(t, 3, m.Feed().Page)

	_, cmd = m.Update(panels.NewsPageMsg{Delta: -1})
	deliver(m, run(cmd))
	assert.Equal(t, 2, m.Feed().Page)
}

func TestNewsUnknownTotalEndsWithEmptyPage(t *testing.T) {
	fn := &fakeNews{total: -1}
	m := newTestModel(t, &fakeMarket{}, fn)

	_, cmd := m.Update(panels.TickerSelectedMsg{Row: row("AAPL", 1)})
	deliver(m, run(cmd))
	for range 2 {
		_, cmd = m.Update(panels.NewsPageMsg{Delta: 1})
		deliver(m, run(cmd))
	}

	page, ok := m.newsPanel.Region().Data()
	require.True(t, ok)
	assert.Equal(t, 3, page.Number)
	assert.True(t, page.Exhausted())
	assert.Contains(t, m.View(), "No more news")
}

func TestTickerChangeResetsNewsPage(t *testing.T) {
	fn := &fakeNews{total: 25}
	m := newTestModel(t, &fakeMarket{}, fn)

	_, cmd := m.Update(panels.TickerSelectedMsg{Row: row("AAPL", 1)})
	deliver(m, run(cmd))
	_, cmd = m.Update(panels.NewsPageMsg{Delta: 1})
	deliver(m, run(cmd))
	require.Equal(t, 2, m.Feed().Page)

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.Equal(t, ScreenTable, m.Screen())

	_, cmd = m.Update(panels.TickerSelectedMsg{Row: row("MSFT", 1)})
	deliver(m, run(cmd))
	assert.Equal(t, newsview.FeedKey{Ticker: "MSFT", Page: 1}, m.Feed().Key())
	assert.Equal(t, newsview.FeedKey{Ticker: "MSFT", Page: 1}, fn.calls[len(fn.calls)-1])
}

func TestReopeningTickerStartsAtFirstPage(t *testing.T) {
	fn := &fakeNews{total: 25}
	m := newTestModel(t, &fakeMarket{}, fn)

	_, cmd := m.Update(panels.TickerSelectedMsg{Row: row("AAPL", 1)})
	deliver(m, run(cmd))
	_, cmd = m.Update(panels.NewsPageMsg{Delta: 1})
	deliver(m, run(cmd))
	require.Equal(t, 2, m.Feed().Page)

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.Equal(t, ScreenTable, m.Screen())

	_, cmd = m.Update(panels.TickerSelectedMsg{Row: row("AAPL", 1)})
	deliver(m, run(cmd))
	assert.Equal(t, newsview.FeedKey{Ticker: "AAPL", Page: 1}, m.Feed().Key())
	assert.Equal(t, newsview.FeedKey{Ticker: "AAPL", Page: 1}, fn.calls[len(fn.calls)-1])
	page, ok := m.newsPanel.Region().Data()
	require.True(t, ok)
	assert.Equal(t, 1, page.Number)
}

func TestResultsAfterLeavingAreDropped(t *testing.T) {
	fn := &fakeNews{total: 25}
	m := newTestModel(t, &fakeMarket{}, fn)

	_, aapl := m.Update(panels.TickerSelectedMsg{Row: row("AAPL", 1)})
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	_, msft := m.Update(panels.TickerSelectedMsg{Row: row("MSFT", 1)})

	deliver(m, run(aapl))
	assert.Equal(t, flow.Loading, m.chartPanel.Region().Status())
	assert.Equal(t, flow.Loading, m.newsPanel.Region().Status())

	deliver(m, run(msft))
	series, ok := m.chartPanel.Region().Data()
	require.True(t, ok)
	assert.Equal(t, "MSFT", series.Ticker)
}

func TestEnterOnTableOpensSelectedRow(t *testing.T) {
	fm := &fakeMarket{rows: []market.Row{row("MSFT", 2), row("AAPL", 1)}}
	m := newTestModel(t, fm, &fakeNews{total: 5})
	deliver(m, run(m.loadRows()))

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	msgs := run(cmd)
	require.Len(t, msgs, 1)
	sel, ok := msgs[0].(panels.TickerSelectedMsg)
	require.True(t, ok)
	assert.Equal(t, "MSFT", sel.Row.Ticker)
}

func TestSortKeyTogglesTable(t *testing.T) {
	fm := &fakeMarket{rows: []market.Row{row("AAPL", 1), row("MSFT", 2), {Ticker: "NOPE"}}}
	m := newTestModel(t, fm, &fakeNews{total: 5})
	deliver(m, run(m.loadRows()))

	// "3" is the price column.
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("3")})
	assert.Equal(t, []string{"AAPL", "MSFT", "NOPE"}, tickers(m.tablePanel.Visible()))

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("3")})
	assert.Equal(t, market.Desc, m.tablePanel.State().Sort.Dir)
	assert.Equal(t, []string{"MSFT", "AAPL", "NOPE"}, tickers(m.tablePanel.Visible()))
}

func TestSearchFiltersTable(t *testing.T) {
	fm := &fakeMarket{rows: []market.Row{row("AAPL", 1), row("MSFT", 2)}}
	m := newTestModel(t, fm, &fakeNews{total: 5})
	deliver(m, run(m.loadRows()))

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("/")})
	require.True(t, m.tablePanel.Searching())

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("m")})
	assert.Equal(t, "m", m.tablePanel.State().Query)
	assert.Equal(t, []string{"MSFT"}, tickers(m.tablePanel.Visible()))

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.tablePanel.Searching())
	assert.Equal(t, "m", m.tablePanel.State().Query)
}

func tickers(rows []market.Row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Ticker
	}
	return out
}
