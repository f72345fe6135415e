package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	FlickrPink = lipgloss.Color("#FF0084")
	FlickrBlue = lipgloss.Color("#0063DC")
	SlateLight = lipgloss.Color("#374151")
	DimGray    = lipgloss.Color("#6B7280")
	LightGray  = lipgloss.Color("#9CA3AF")
	White      = lipgloss.Color("#F9FAFB")
	Green      = lipgloss.Color("#10B981")
	Red        = lipgloss.Color("#EF4444")
)

// Text styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(LightGray)

	DimStyle = lipgloss.NewStyle().
			Foreground(DimGray)

	AccentStyle = lipgloss.NewStyle().
			Foreground(FlickrPink)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Red)

	LinkStyle = lipgloss.NewStyle().
			Foreground(FlickrBlue).
			Underline(true)
)

// Visibility markers
const (
	PublicChar  = "●"
	PrivateChar = "○"
)

// Pre-rendered visibility markers
var (
	PublicDot  = lipgloss.NewStyle().Foreground(Green).Render(PublicChar)
	PrivateDot = lipgloss.NewStyle().Foreground(DimGray).Render(PrivateChar)
)

// Panel styles
var (
	SearchBarStyle = lipgloss.NewStyle().
			Padding(0, 1)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(LightGray).
			Padding(0, 1)

	InspectorStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(DimGray).
			Padding(0, 1)
)

// List item styles
var (
	NormalItemStyle = lipgloss.NewStyle().
			Foreground(LightGray)

	SelectedItemStyle = lipgloss.NewStyle().
				Foreground(White).
				Background(SlateLight)

	DimItemStyle = lipgloss.NewStyle().
			Foreground(DimGray)

	DimSelectedItemStyle = lipgloss.NewStyle().
				Foreground(LightGray).
				Background(SlateLight)
)

// Help styles
var (
	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(FlickrPink)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(DimGray)
)

// SpinnerFrames animate progress outside the Bubble Tea program
var SpinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner style
var (
	SpinnerStyle = lipgloss.NewStyle().
		Foreground(FlickrPink)
)

// Filter styles
var (
	FilterStyle = lipgloss.NewStyle().
			Foreground(FlickrPink)

	FilterPromptStyle = lipgloss.NewStyle().
				Foreground(FlickrPink).
				Bold(true)
)

// Match highlight styles for filtered titles
var (
	MatchHighlightStyle = lipgloss.NewStyle().
				Foreground(FlickrPink).
				Bold(true)

	MatchHighlightSelectedStyle = lipgloss.NewStyle().
					Foreground(FlickrPink).
					Background(SlateLight).
					Bold(true)
)

// Helper functions

// Truncate truncates a string to the given width with ellipsis
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 3 {
		return string(r[:width])
	}
	return string(r[:width-3]) + "..."
}

// RowPart is a run of text within a list row
type RowPart struct {
	Text      string
	Highlight bool // Matched by the filter
	Dim       bool // Secondary information
}

// partStyle picks the style of a part for the row's selection state
func partStyle(part RowPart, selected bool) lipgloss.Style {
	switch {
	case part.Highlight && selected:
		return MatchHighlightSelectedStyle
	case part.Highlight:
		return MatchHighlightStyle
	case part.Dim && selected:
		return DimSelectedItemStyle
	case part.Dim:
		return DimItemStyle
	case selected:
		return SelectedItemStyle
	default:
		return NormalItemStyle
	}
}

// RenderListRow renders a complete list row with uniform background when selected.
// Each part is styled on its own to avoid ANSI reset code issues.
func RenderListRow(parts []RowPart, selected bool, width int) string {
	base := NormalItemStyle
	if selected {
		base = SelectedItemStyle
	}

	var b strings.Builder
	visibleLen := 0
	for _, part := range parts {
		b.WriteString(partStyle(part, selected).Render(part.Text))
		visibleLen += lipgloss.Width(part.Text)
	}

	// Fill to width, leaving one column of margin each side
	if pad := width - visibleLen - 2; pad > 0 {
		b.WriteString(base.Render(strings.Repeat(" ", pad)))
	}

	margin := base.Render(" ")
	return margin + b.String() + margin
}
