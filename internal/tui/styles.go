package tui

import (
	"regexp"

	"github.com/charmbracelet/lipgloss"
)

// truncate shortens text to maxLen, adding "..." if truncated
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}

var (
	// Colors
	colorPrimary   = lipgloss.Color("#A855F7")
	colorSecondary = lipgloss.Color("#3B82F6")
	colorSuccess   = lipgloss.Color("#22C55E")
	colorError     = lipgloss.Color("#EF4444")
	colorAmber     = lipgloss.Color("#F59E0B")
	colorMuted     = lipgloss.Color("#6B7280")
	colorWhite     = lipgloss.Color("#F9FAFB")

	// Title style
	styleTitle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	// Subtitle
	styleSubtitle = lipgloss.NewStyle().
			Foreground(colorMuted)

	// Box
	styleBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1)

	// Status bar
	styleStatusBar = lipgloss.NewStyle().
			Foreground(colorMuted)
)

var emphasisPattern = regexp.MustCompile(`\*\*(.*?)\*\*`)

// renderEmphasis converts **bold** markers from the workflow's markdown into
// terminal bold.
func renderEmphasis(s string) string {
	bold := lipgloss.NewStyle().Bold(true).Foreground(colorWhite)
	return emphasisPattern.ReplaceAllStringFunc(s, func(m string) string {
		return bold.Render(m[2 : len(m)-2])
	})
}
