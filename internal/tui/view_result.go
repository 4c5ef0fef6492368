package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mxzhao/niaoyu/internal/config"
	"github.com/mxzhao/niaoyu/internal/report"
)

func (a *App) renderResult() string {
	st := a.state
	rep := st.sess.Result()
	var b strings.Builder

	boxWidth := min(70, a.width-4)

	// Header line
	req := st.sess.Request()
	header := styleTitle.Render("> 报告解析") + "  " +
		styleSubtitle.Render(fmt.Sprintf("Target: %s  LV.%d", config.PersonaName(req.PersonaID), req.FireLevel))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, header))
	b.WriteString("\n\n")

	// Subtext card
	if rep.Subtext != "" {
		subtextBox := styleBox.
			Width(boxWidth).
			BorderForeground(colorAmber).
			Render(lipgloss.NewStyle().Foreground(colorAmber).Bold(true).Render("潜台词") +
				"\n" + renderEmphasis(rep.Subtext))
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, subtextBox))
		b.WriteString("\n")
	}

	// Action list
	if lines := actionLines(rep); len(lines) > 0 {
		actionBox := styleBox.
			Width(boxWidth).
			Render(lipgloss.NewStyle().Foreground(colorSuccess).Bold(true).Render("下一步行动") +
				"\n" + strings.Join(lines, "\n"))
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, actionBox))
		b.WriteString("\n")
	}

	// Suggested reply
	if rep.Response != "" {
		replyBox := styleBox.
			Width(boxWidth).
			BorderForeground(colorPrimary).
			Render(lipgloss.NewStyle().Foreground(colorPrimary).Bold(true).Render("建议回复") +
				"\n“ " + rep.Response + " ”")
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, replyBox))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	// Status bar
	var status string
	if st.copied {
		status = lipgloss.NewStyle().Foreground(colorSuccess).Render("✓ 已复制")
	} else {
		status = styleStatusBar.Render("[c] 复制回复  [n] 再来一条  [Esc] 返回")
	}
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, status))

	return a.centerVertically(b.String())
}

// actionLines numbers and sanitizes the action items, dropping any that
// reduce to nothing.
func actionLines(rep report.Report) []string {
	var lines []string
	for _, action := range rep.Actions {
		cleaned := report.SanitizeAction(action)
		if cleaned == "" {
			continue
		}
		lines = append(lines, fmt.Sprintf("%d. %s", len(lines)+1, cleaned))
	}
	return lines
}
