package tui

import "github.com/charmbracelet/lipgloss"

// Palette for the memories view: dusk blue accents on neutral text.
var (
	accent    = lipgloss.Color("#7AA2F7")
	memory    = lipgloss.Color("#BB9AF7")
	caution   = lipgloss.Color("#E0AF68")
	failure   = lipgloss.Color("#F7768E")
	faint     = lipgloss.Color("#565F89")
	plainText = lipgloss.Color("#C0CAF5")
	quietText = lipgloss.Color("#A9B1D6")
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(accent).MarginBottom(1)
	subtitleStyle = lipgloss.NewStyle().Foreground(quietText).Italic(true)
	metaStyle     = lipgloss.NewStyle().Foreground(quietText)

	dayStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(memory).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(faint)

	photoNameStyle = lipgloss.NewStyle().Foreground(plainText)
	cursorStyle    = lipgloss.NewStyle().Foreground(accent).Bold(true)
	yearStyle      = lipgloss.NewStyle().Foreground(quietText)
	foundStyle     = lipgloss.NewStyle().Foreground(memory).Bold(true)
	warningStyle   = lipgloss.NewStyle().Foreground(caution)
	errorStyle     = lipgloss.NewStyle().Foreground(failure).Bold(true)
	spinnerStyle   = lipgloss.NewStyle().Foreground(accent)
	moreStyle      = lipgloss.NewStyle().Foreground(faint)
	helpStyle      = lipgloss.NewStyle().Foreground(faint).Italic(true).MarginTop(1)
)

// box frames a single message, bordered in the given color.
func box(border lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 2).
		MarginTop(1)
}

const (
	glyphCalendar = "🗓"
	glyphServer   = "☁"
	glyphFolder   = "📁"
	glyphFound    = "✓"
	glyphError    = "✗"
	glyphWarning  = "⚠"
	glyphCursor   = "›"
)
