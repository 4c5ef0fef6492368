package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (a *App) renderError() string {
	var b strings.Builder

	title := lipgloss.NewStyle().
		Foreground(colorError).
		Bold(true).
		Render("解码失败")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	explain := styleSubtitle.Render("无法解析这段“鸟语”。可能是网络波动或 API 服务暂不可用。")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, explain))
	b.WriteString("\n\n")

	errMsg := a.state.sess.ErrMsg()
	if errMsg == "" {
		errMsg = "unknown error"
	}
	errBox := styleBox.
		Width(min(60, a.width-4)).
		BorderForeground(colorError).
		Render("[" + errMsg + "]")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, errBox))
	b.WriteString("\n\n")

	status := styleStatusBar.Render("[Esc] 返回主页")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, status))

	return a.centerVertically(b.String())
}
