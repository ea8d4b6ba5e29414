package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/zappabad/tickerboard/internal/format"
)

// Color palette
var (
	// Primary colors
	PrimaryColor = lipgloss.Color("#7C3AED") // Purple
	AccentColor  = lipgloss.Color("#F59E0B") // Amber

	// Sign colors
	UpColor      = lipgloss.Color("#10B981") // Green
	DownColor    = lipgloss.Color("#EF4444") // Red
	NeutralColor = lipgloss.Color("#6B7280") // Gray

	// Background colors
	BackgroundColor  = lipgloss.Color("#1F2937")
	BorderColor      = lipgloss.Color("#374151")
	FocusBorderColor = lipgloss.Color("#7C3AED")

	// Text colors
	TextColor          = lipgloss.Color("#F9FAFB")
	TextSecondaryColor = lipgloss.Color("#9CA3AF")
	TextMutedColor     = lipgloss.Color("#6B7280")
)

// Panel styles
var (
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderColor).
			Padding(0, 1)

	FocusedPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(FocusBorderColor).
				Padding(0, 1)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			Padding(0, 1)

	// Column headers; the active sort column uses ActiveHeaderStyle.
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(TextSecondaryColor)

	ActiveHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(AccentColor)

	RowStyle = lipgloss.NewStyle().
			Foreground(TextColor)

	SelectedRowStyle = lipgloss.NewStyle().
				Foreground(TextColor).
				Background(lipgloss.Color("#374151"))
)

// Text styles
var (
	UpStyle = lipgloss.NewStyle().
		Foreground(UpColor)

	DownStyle = lipgloss.NewStyle().
			Foreground(DownColor)

	NeutralStyle = lipgloss.NewStyle().
			Foreground(NeutralColor)

	MutedStyle = lipgloss.NewStyle().
			Foreground(TextMutedColor)

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(DownColor)

	TimeStyle = lipgloss.NewStyle().
			Foreground(TextMutedColor)

	SourceStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(AccentColor)

	HeadlineStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(TextColor)

	LinkStyle = lipgloss.NewStyle().
			Underline(true).
			Foreground(TextSecondaryColor)
)

// Input styles
var (
	InputStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(BorderColor).
			Padding(0, 1)

	FocusedInputStyle = lipgloss.NewStyle().
				Border(lipgloss.NormalBorder()).
				BorderForeground(FocusBorderColor).
				Padding(0, 1)

	PlaceholderStyle = lipgloss.NewStyle().
				Foreground(TextMutedColor)
)

// Chart styles
var (
	ChartAxisStyle = lipgloss.NewStyle().
			Foreground(TextMutedColor)

	ChartLabelStyle = lipgloss.NewStyle().
			Foreground(TextSecondaryColor)
)

// Status bar styles
var (
	StatusBarStyle = lipgloss.NewStyle().
			Background(BackgroundColor).
			Foreground(TextSecondaryColor).
			Padding(0, 1)

	StatusBarKeyStyle = lipgloss.NewStyle().
				Foreground(PrimaryColor).
				Bold(true)

	StatusBarDescStyle = lipgloss.NewStyle().
				Foreground(TextSecondaryColor)
)

// RenderTitle renders a panel title bar.
func RenderTitle(title string, focused bool) string {
	style := TitleStyle
	if focused {
		style = style.Foreground(FocusBorderColor)
	}
	return style.Render(title)
}

// Panel returns the border style for a panel in the given focus state.
func Panel(focused bool) lipgloss.Style {
	if focused {
		return FocusedPanelStyle
	}
	return PanelStyle
}

// ForSign picks the text style for a value's sign.
func ForSign(s format.Sign) lipgloss.Style {
	switch s {
	case format.SignPositive:
		return UpStyle
	case format.SignNegative:
		return DownStyle
	default:
		return NeutralStyle
	}
}

// Trend picks the up or down style.
func Trend(up bool) lipgloss.Style {
	if up {
		return UpStyle
	}
	return DownStyle
}
