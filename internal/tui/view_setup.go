package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (a *App) renderSetup() string {
	var b strings.Builder

	header := styleTitle.Render(logo)
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, header))
	b.WriteString("\n\n")

	title := lipgloss.NewStyle().
		Foreground(colorWhite).
		Bold(true).
		Render("First run: enter the Dify app key")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	hint := styleSubtitle.Render("Stored in ~/.config/niaoyu/config.yaml")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, hint))
	b.WriteString("\n\n")

	inputBox := styleBox.
		Width(60).
		BorderForeground(colorSecondary).
		Render(a.state.apiKeyInput.View())
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, inputBox))
	b.WriteString("\n\n")

	if a.state.setupError != nil {
		errLine := lipgloss.NewStyle().Foreground(colorError).Render(a.state.setupError.Error())
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, errLine))
		b.WriteString("\n\n")
	}

	instructions := styleStatusBar.Render("[Enter] Save  [Esc] Quit")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, instructions))

	return a.centerVertically(b.String())
}

func (a *App) centerVertically(content string) string {
	lines := strings.Count(content, "\n") + 1
	padding := (a.height - lines) / 2
	if padding < 0 {
		padding = 0
	}
	return strings.Repeat("\n", padding) + content
}
