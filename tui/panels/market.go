package panels

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zappabad/tickerboard/internal/flow"
	"github.com/zappabad/tickerboard/internal/format"
	"github.com/zappabad/tickerboard/internal/market"
	marketview "github.com/zappabad/tickerboard/internal/market/view"
	"github.com/zappabad/tickerboard/internal/sparkline"
	"github.com/zappabad/tickerboard/tui/styles"
)

// TableKeyMap holds the table bindings.
type TableKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding
	Open     key.Binding
	Search   key.Binding
	Done     key.Binding
	Sort     []key.Binding
}

// DefaultTableKeyMap binds 1-7 to the sortable columns in display order.
func DefaultTableKeyMap() TableKeyMap {
	km := TableKeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		PageUp:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
		PageDown: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),
		Home:     key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "top")),
		End:      key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "bottom")),
		Open:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Done:     key.NewBinding(key.WithKeys("enter", "esc"), key.WithHelp("enter/esc", "done")),
	}
	for i, k := range market.SortKeys {
		n := fmt.Sprint(i + 1)
		km.Sort = append(km.Sort, key.NewBinding(key.WithKeys(n), key.WithHelp(n, "sort "+string(k))))
	}
	return km
}

// MarketTablePanel shows the filterable, sortable ticker table.
type MarketTablePanel struct {
	fmt    format.Formatter
	keys   TableKeyMap
	region flow.Region[[]market.Row]
	state  marketview.TableState

	// visible is the projection of the loaded rows under state.
	visible []market.Row

	search    textinput.Model
	spinner   string
	sparkCols int

	selectedIndex int
	scrollOffset  int
	focused       bool
	width         int
	height        int
}

// NewMarketTablePanel creates a table panel waiting for its first load.
func NewMarketTablePanel(f format.Formatter, sparkCols int) *MarketTablePanel {
	search := textinput.New()
	search.Placeholder = "Search ticker or name"
	search.Prompt = "🔍 "
	search.CharLimit = 64
	search.PlaceholderStyle = styles.PlaceholderStyle

	if sparkCols <= 0 {
		sparkCols = 12
	}
	return &MarketTablePanel{
		fmt:       f,
		keys:      DefaultTableKeyMap(),
		region:    flow.LoadingRegion[[]market.Row](),
		state:     marketview.DefaultTableState(),
		search:    search,
		sparkCols: sparkCols,
	}
}

// Init initializes the panel.
func (p *MarketTablePanel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the panel.
func (p *MarketTablePanel) Update(msg tea.Msg) (*MarketTablePanel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if p.search.Focused() {
			var cmd tea.Cmd
			p.search, cmd = p.search.Update(msg)
			return p, cmd
		}
		return p, nil
	}
	if !p.focused {
		return p, nil
	}

	if p.search.Focused() {
		if key.Matches(keyMsg, p.keys.Done) {
			p.search.Blur()
			return p, nil
		}
		var cmd tea.Cmd
		p.search, cmd = p.search.Update(keyMsg)
		if v := p.search.Value(); v != p.state.Query {
			p.apply(p.state.SetQuery(v))
		}
		return p, cmd
	}

	switch {
	case key.Matches(keyMsg, p.keys.Search):
		return p, p.search.Focus()
	case key.Matches(keyMsg, p.keys.Up):
		p.moveSelection(-1)
	case key.Matches(keyMsg, p.keys.Down):
		p.moveSelection(1)
	case key.Matches(keyMsg, p.keys.PageUp):
		p.moveSelection(-p.visibleRows())
	case key.Matches(keyMsg, p.keys.PageDown):
		p.moveSelection(p.visibleRows())
	case key.Matches(keyMsg, p.keys.Home):
		p.moveSelection(-len(p.visible))
	case key.Matches(keyMsg, p.keys.End):
		p.moveSelection(len(p.visible))
	case key.Matches(keyMsg, p.keys.Open):
		if row, ok := p.SelectedRow(); ok && row.Ticker != "" {
			return p, func() tea.Msg { return TickerSelectedMsg{Row: row} }
		}
	default:
		for i, b := range p.keys.Sort {
			if key.Matches(keyMsg, b) {
				p.apply(p.state.ToggleSort(market.SortKeys[i]))
				break
			}
		}
	}
	return p, nil
}

// apply switches to next and recomputes the projection.
func (p *MarketTablePanel) apply(next marketview.TableState) {
	p.state = next
	p.project()
}

func (p *MarketTablePanel) project() {
	rows, _ := p.region.Data()
	p.visible = marketview.ProjectState(rows, p.state)
	p.selectedIndex = min(p.selectedIndex, max(len(p.visible)-1, 0))
	p.clampScroll()
}

func (p *MarketTablePanel) moveSelection(delta int) {
	if len(p.visible) == 0 {
		return
	}
	p.selectedIndex = max(0, min(len(p.visible)-1, p.selectedIndex+delta))
	p.clampScroll()
}

func (p *MarketTablePanel) clampScroll() {
	n := p.visibleRows()
	if p.selectedIndex < p.scrollOffset {
		p.scrollOffset = p.selectedIndex
	}
	if p.selectedIndex >= p.scrollOffset+n {
		p.scrollOffset = p.selectedIndex - n + 1
	}
	p.scrollOffset = max(0, min(p.scrollOffset, max(len(p.visible)-n, 0)))
}

// visibleRows is the number of table rows that fit: the height minus the
// border, title, search box, header and footer.
func (p *MarketTablePanel) visibleRows() int {
	return max(1, p.height-9)
}

// View renders the panel.
func (p *MarketTablePanel) View() string {
	innerWidth := max(p.width-4, 20)

	searchStyle := styles.InputStyle
	if p.search.Focused() {
		searchStyle = styles.FocusedInputStyle
	}
	p.search.Width = max(innerWidth-6, 10)
	searchBox := searchStyle.Width(innerWidth - 2).Render(p.search.View())

	var content string
	switch p.region.Status() {
	case flow.Loading:
		content = p.spinner + " Loading market data…"
	case flow.Failed:
		content = styles.ErrorStyle.Render("Error: " + p.region.Err())
	default:
		content = p.renderTable(innerWidth)
	}

	title := styles.RenderTitle("📈 Market", p.focused)
	panel := lipgloss.JoinVertical(lipgloss.Left, title, searchBox, content)

	return styles.Panel(p.focused).Width(p.width - 2).Height(p.height - 2).Render(panel)
}

func (p *MarketTablePanel) renderTable(width int) string {
	cols := fitColumns(tableColumns(p.sparkCols), width)

	var b strings.Builder
	b.WriteString(p.renderHeader(cols))
	b.WriteString("\n")

	if len(p.visible) == 0 {
		b.WriteString(styles.MutedStyle.Render("No data"))
		return b.String()
	}

	end := min(p.scrollOffset+p.visibleRows(), len(p.visible))
	for i := p.scrollOffset; i < end; i++ {
		b.WriteString(p.renderRow(p.visible[i], cols, i == p.selectedIndex && p.focused))
		b.WriteString("\n")
	}

	rows, _ := p.region.Data()
	footer := fmt.Sprintf("%d of %d", len(p.visible), len(rows))
	if len(p.visible) > 0 {
		footer = fmt.Sprintf("%d/%d · %s", p.selectedIndex+1, len(p.visible), footer)
	}
	b.WriteString(styles.MutedStyle.Render(footer))
	return b.String()
}

func (p *MarketTablePanel) renderHeader(cols []column) string {
	cells := make([]string, len(cols))
	for i, c := range cols {
		title := c.title
		style := styles.HeaderStyle
		if c.key != "" && c.key == p.state.Sort.Key {
			style = styles.ActiveHeaderStyle
			if p.state.Sort.Dir == market.Asc {
				title += " ▲"
			} else {
				title += " ▼"
			}
		}
		cells[i] = style.Render(fit(title, c.width, c.right))
	}
	return joinCells(cells)
}

func (p *MarketTablePanel) renderRow(r market.Row, cols []column, selected bool) string {
	sign := format.SignOf(r.Change)
	cells := make([]string, len(cols))
	for i, c := range cols {
		text, style := p.cell(r, c, sign)
		text = fit(text, c.width, c.right)
		if selected {
			cells[i] = text
			continue
		}
		cells[i] = style.Render(text)
	}
	line := joinCells(cells)
	if selected {
		return styles.SelectedRowStyle.Render(line)
	}
	return line
}

// cell returns the text of one cell and the style used when the row is not
// selected.
func (p *MarketTablePanel) cell(r market.Row, c column, sign format.Sign) (string, lipgloss.Style) {
	switch c.key {
	case market.KeyTicker:
		return r.Ticker, styles.RowStyle.Bold(true)
	case market.KeyName:
		return r.Name.Or(format.Placeholder), styles.RowStyle
	case market.KeyPrice:
		return p.fmt.Price(r.Price, r.Currency), styles.RowStyle
	case market.KeyChange:
		return p.fmt.Count(r.Change), styles.ForSign(sign)
	case market.KeyChangePct:
		return p.fmt.Percent(r.ChangePct), styles.ForSign(sign)
	case market.KeyVolume:
		return p.fmt.Compact(r.Volume), styles.RowStyle
	case market.KeyMarketCap:
		return p.fmt.Compact(r.MarketCap), styles.RowStyle
	}
	line, ok := sparkline.Render(r.Sparkline, c.width, 1)
	if !ok {
		return format.Placeholder, styles.MutedStyle
	}
	return line, styles.Trend(r.Up())
}

// SetRegion replaces the loaded rows (or the loading/error state).
func (p *MarketTablePanel) SetRegion(r flow.Region[[]market.Row]) {
	p.region = r
	p.project()
}

// Region returns the current region.
func (p *MarketTablePanel) Region() flow.Region[[]market.Row] {
	return p.region
}

// State returns the current query and sort.
func (p *MarketTablePanel) State() marketview.TableState {
	return p.state
}

// Visible returns the rows currently displayed, in order.
func (p *MarketTablePanel) Visible() []market.Row {
	return p.visible
}

// SelectedRow returns the row under the cursor.
func (p *MarketTablePanel) SelectedRow() (market.Row, bool) {
	if p.selectedIndex >= 0 && p.selectedIndex < len(p.visible) {
		return p.visible[p.selectedIndex], true
	}
	return market.Row{}, false
}

// Searching reports whether key presses go to the search box.
func (p *MarketTablePanel) Searching() bool {
	return p.search.Focused()
}

// SetSpinner sets the frame shown while loading.
func (p *MarketTablePanel) SetSpinner(frame string) {
	p.spinner = frame
}

// SetFocus sets the focus state of the panel.
func (p *MarketTablePanel) SetFocus(focused bool) {
	p.focused = focused
}

// SetSize sets the panel dimensions.
func (p *MarketTablePanel) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.clampScroll()
}

// TickerSelectedMsg is sent when a table row is opened.
type TickerSelectedMsg struct {
	Row market.Row
}
