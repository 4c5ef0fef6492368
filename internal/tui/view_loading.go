package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mxzhao/niaoyu/internal/config"
)

func (a *App) renderLoading() string {
	st := a.state
	var b strings.Builder

	title := styleTitle.Render("DECODING...")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, st.spin.View()+" "+title))
	b.WriteString("\n\n")

	req := st.sess.Request()
	target := styleSubtitle.Render("Target: " + config.PersonaName(req.PersonaID))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, target))
	b.WriteString("\n")

	if strings.TrimSpace(req.Text) != "" {
		asked := styleSubtitle.Render("> " + truncate(strings.TrimSpace(req.Text), 55))
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, asked))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	sub := styleSubtitle.Render("Bypassing Workplace Filters · Injecting Contextual Intel")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, sub))

	return a.centerVertically(b.String())
}
