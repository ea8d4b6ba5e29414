package panels

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/zappabad/tickerboard/internal/flow"
	"github.com/zappabad/tickerboard/internal/format"
	"github.com/zappabad/tickerboard/internal/news"
	newsview "github.com/zappabad/tickerboard/internal/news/view"
	"github.com/zappabad/tickerboard/tui/styles"
)

// NewsKeyMap holds the news feed bindings.
type NewsKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Next    key.Binding
	Prev    key.Binding
	Preview key.Binding
	Close   key.Binding
}

// DefaultNewsKeyMap returns the default news bindings.
func DefaultNewsKeyMap() NewsKeyMap {
	return NewsKeyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Next:    key.NewBinding(key.WithKeys("n", "right", "l"), key.WithHelp("n/→", "next page")),
		Prev:    key.NewBinding(key.WithKeys("p", "left", "h"), key.WithHelp("p/←", "prev page")),
		Preview: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "read")),
		Close:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
	}
}

// NewsPanel shows one page of the ticker's news feed.
type NewsPanel struct {
	keys   NewsKeyMap
	region flow.Region[newsview.Page]

	selectedIndex int
	// cardStarts[i] is the viewport line where card i begins.
	cardStarts []int

	viewport      viewport.Model
	preview       bool
	renderer      *glamour.TermRenderer
	rendererWidth int
	spinner       string

	focused bool
	width   int
	height  int
}

// NewNewsPanel creates a new news panel.
func NewNewsPanel() *NewsPanel {
	vp := viewport.New(0, 0)
	vp.MouseWheelEnabled = true
	return &NewsPanel{
		keys:     DefaultNewsKeyMap(),
		region:   flow.LoadingRegion[newsview.Page](),
		viewport: vp,
	}
}

// Init initializes the panel.
func (p *NewsPanel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the panel.
func (p *NewsPanel) Update(msg tea.Msg) (*NewsPanel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		p.viewport, cmd = p.viewport.Update(msg)
		return p, cmd
	}
	if !p.focused {
		return p, nil
	}

	if p.preview {
		switch {
		case key.Matches(keyMsg, p.keys.Close), key.Matches(keyMsg, p.keys.Preview):
			p.preview = false
			p.refresh()
			p.ensureVisible()
			return p, nil
		}
		var cmd tea.Cmd
		p.viewport, cmd = p.viewport.Update(keyMsg)
		return p, cmd
	}

	switch {
	case key.Matches(keyMsg, p.keys.Up):
		if p.selectedIndex > 0 {
			p.selectedIndex--
			p.refresh()
			p.ensureVisible()
		}
	case key.Matches(keyMsg, p.keys.Down):
		if p.selectedIndex < len(p.items())-1 {
			p.selectedIndex++
			p.refresh()
			p.ensureVisible()
		}
	case key.Matches(keyMsg, p.keys.Preview):
		if _, ok := p.SelectedNews(); ok {
			p.preview = true
			p.refresh()
			p.viewport.GotoTop()
		}
	case key.Matches(keyMsg, p.keys.Next):
		if page, ok := p.region.Data(); ok && page.HasNext() {
			return p, func() tea.Msg { return NewsPageMsg{Delta: 1} }
		}
	case key.Matches(keyMsg, p.keys.Prev):
		if page, ok := p.region.Data(); ok && page.HasPrevious() {
			return p, func() tea.Msg { return NewsPageMsg{Delta: -1} }
		}
	}
	return p, nil
}

// View renders the panel.
func (p *NewsPanel) View() string {
	var content string
	switch p.region.Status() {
	case flow.Loading:
		content = p.spinner + " Loading news…"
	case flow.Failed:
		content = styles.ErrorStyle.Render("Error: " + p.region.Err())
	default:
		content = p.viewport.View()
	}

	title := "📰 News"
	if page, ok := p.region.Data(); ok && page.Ticker != "" {
		title += " · " + page.Ticker
	}
	panel := lipgloss.JoinVertical(lipgloss.Left,
		styles.RenderTitle(title, p.focused),
		content,
		p.renderFooter(),
	)

	return styles.Panel(p.focused).Width(p.width - 2).Height(p.height - 2).Render(panel)
}

// PageLabel returns "Page n of m" when the total is known and "Page n"
// otherwise.
func PageLabel(page newsview.Page) string {
	if total, ok := page.TotalPages(); ok {
		return fmt.Sprintf("Page %d of %d", page.Number, total)
	}
	return fmt.Sprintf("Page %d", page.Number)
}

func (p *NewsPanel) renderFooter() string {
	page, ok := p.region.Data()
	if !ok {
		return ""
	}
	prev := styles.MutedStyle.Render("← Prev")
	if page.HasPrevious() {
		prev = styles.StatusBarKeyStyle.Render("← Prev")
	}
	next := styles.MutedStyle.Render("Next →")
	if page.HasNext() {
		next = styles.StatusBarKeyStyle.Render("Next →")
	}
	return prev + "  " + styles.ChartLabelStyle.Render(PageLabel(page)) + "  " + next
}

func (p *NewsPanel) items() []news.NewsItem {
	page, _ := p.region.Data()
	return page.Items
}

// refresh rebuilds the viewport content from the current state.
func (p *NewsPanel) refresh() {
	page, ok := p.region.Data()
	if !ok {
		p.viewport.SetContent("")
		p.cardStarts = nil
		return
	}
	width := max(p.viewport.Width, 20)

	if p.preview {
		if item, ok := p.SelectedNews(); ok {
			p.viewport.SetContent(p.renderArticle(item, width))
			return
		}
		p.preview = false
	}

	if page.Empty() {
		msg := "No news found for this ticker."
		if page.Exhausted() {
			msg = "No more news"
		}
		p.viewport.SetContent(styles.MutedStyle.Render(msg))
		p.cardStarts = nil
		return
	}

	var b strings.Builder
	p.cardStarts = p.cardStarts[:0]
	line := 0
	for i, item := range page.Items {
		p.cardStarts = append(p.cardStarts, line)
		card := renderCard(item, width, i == p.selectedIndex && p.focused)
		b.WriteString(card)
		b.WriteString("\n\n")
		line += lipgloss.Height(card) + 1
	}
	p.viewport.SetContent(strings.TrimRight(b.String(), "\n"))
}

func renderCard(item news.NewsItem, width int, selected bool) string {
	marker := "  "
	if selected {
		marker = styles.StatusBarKeyStyle.Render("▸ ")
	}
	inner := width - 2

	meta := styles.SourceStyle.Render(truncate(orDash(item.Source), inner/2)) +
		styles.MutedStyle.Render(" · ") +
		styles.TimeStyle.Render(orDash(item.UpdatedTime))

	headline := styles.HeadlineStyle.Render(truncate(item.Title, inner))
	if selected {
		headline = styles.SelectedRowStyle.Bold(true).Render(truncate(item.Title, inner))
	}

	lines := []string{marker + meta, "  " + headline}
	if item.Description != "" {
		desc := lipgloss.NewStyle().Width(inner).MaxHeight(2).Foreground(styles.TextSecondaryColor).Render(item.Description)
		for _, l := range strings.Split(desc, "\n") {
			lines = append(lines, "  "+l)
		}
	}
	if item.CanonicalURL != "" {
		lines = append(lines, "  "+styles.LinkStyle.Render(truncate(item.CanonicalURL, inner)))
	}
	return strings.Join(lines, "\n")
}

func (p *NewsPanel) renderArticle(item news.NewsItem, width int) string {
	md := ArticleMarkdown(item)
	if p.renderer == nil || p.rendererWidth != width {
		r, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle("dark"),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return md
		}
		p.renderer, p.rendererWidth = r, width
	}
	out, err := p.renderer.Render(md)
	if err != nil {
		return md
	}
	return out
}

// ArticleMarkdown lays out an item as a markdown document.
func ArticleMarkdown(item news.NewsItem) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", orDash(item.Title))
	fmt.Fprintf(&b, "*%s · %s*\n\n", orDash(item.Source), orDash(item.UpdatedTime))
	if item.Description != "" {
		b.WriteString(item.Description)
		b.WriteString("\n\n")
	}
	if item.CanonicalURL != "" {
		fmt.Fprintf(&b, "<%s>\n", item.CanonicalURL)
	}
	return b.String()
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return format.Placeholder
	}
	return s
}

func (p *NewsPanel) ensureVisible() {
	if p.selectedIndex >= len(p.cardStarts) {
		return
	}
	line := p.cardStarts[p.selectedIndex]
	if line < p.viewport.YOffset {
		p.viewport.SetYOffset(line)
		return
	}
	end := len(p.cardStarts) - 1
	next := p.viewport.TotalLineCount()
	if p.selectedIndex < end {
		next = p.cardStarts[p.selectedIndex+1] - 1
	}
	if next > p.viewport.YOffset+p.viewport.Height {
		p.viewport.SetYOffset(next - p.viewport.Height)
	}
}

// SetRegion replaces the feed state. A new page starts at its first item.
func (p *NewsPanel) SetRegion(r flow.Region[newsview.Page]) {
	p.region = r
	p.selectedIndex = 0
	p.preview = false
	p.refresh()
	p.viewport.GotoTop()
}

// Region returns the current region.
func (p *NewsPanel) Region() flow.Region[newsview.Page] {
	return p.region
}

// SelectedNews returns the item under the cursor.
func (p *NewsPanel) SelectedNews() (news.NewsItem, bool) {
	items := p.items()
	if p.selectedIndex >= 0 && p.selectedIndex < len(items) {
		return items[p.selectedIndex], true
	}
	return news.NewsItem{}, false
}

// Previewing reports whether an article preview is open.
func (p *NewsPanel) Previewing() bool {
	return p.preview
}

// SetSpinner sets the frame shown while loading.
func (p *NewsPanel) SetSpinner(frame string) {
	p.spinner = frame
}

// SetFocus sets the focus state of the panel.
func (p *NewsPanel) SetFocus(focused bool) {
	if p.focused != focused {
		p.focused = focused
		p.refresh()
	}
}

// SetSize sets the panel dimensions.
func (p *NewsPanel) SetSize(width, height int) {
	if p.width == width && p.height == height {
		return
	}
	p.width = width
	p.height = height
	// Border, padding, title and footer.
	p.viewport.Width = max(width-4, 10)
	p.viewport.Height = max(height-4, 1)
	p.refresh()
}

// NewsPageMsg asks for the previous (-1) or next (+1) page.
type NewsPageMsg struct {
	Delta int
}
