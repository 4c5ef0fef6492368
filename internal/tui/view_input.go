package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mxzhao/niaoyu/internal/config"
	"github.com/mxzhao/niaoyu/internal/session"
)

const logo = ">_ 你到底在说啥"

func (a *App) renderInput() string {
	st := a.state
	var b strings.Builder

	// Header
	header := styleTitle.Render(logo) + "  " + styleSubtitle.Render("情绪降噪 · 意图解码 · 向上管理")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, header))
	b.WriteString("\n")
	if st.connErr != nil {
		warn := lipgloss.NewStyle().Foreground(colorAmber).
			Render("离线? " + truncate(st.connErr.Error(), 50))
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, warn))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	// Persona selection
	var personaLines []string
	for i, p := range config.Personas {
		cursor := "  "
		style := lipgloss.NewStyle().Foreground(colorMuted)
		mark := "[ ]"
		if i == st.personaIdx {
			cursor = "> "
			mark = "[x]"
			style = lipgloss.NewStyle().Foreground(colorSecondary).Bold(true)
		}
		personaLines = append(personaLines, style.Render(fmt.Sprintf("%s%s %s  %s", cursor, mark, p.Name, p.Description)))
	}
	personaBox := styleBox.
		Width(44).
		Render("对象身份\n" + strings.Join(personaLines, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, personaBox))
	b.WriteString("\n")

	// Fire level
	var levels []string
	for lvl := config.MinFireLevel; lvl <= config.MaxFireLevel; lvl++ {
		label := fmt.Sprintf("%d %s", lvl, config.FireLevelLabels[lvl])
		if lvl == st.fireLevel {
			levels = append(levels, lipgloss.NewStyle().Foreground(colorAmber).Bold(true).Render("["+label+"]"))
		} else {
			levels = append(levels, styleSubtitle.Render(" "+label+" "))
		}
	}
	fireBox := styleBox.
		Width(44).
		Render("火力等级  " + strings.Join(levels, " "))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, fireBox))
	b.WriteString("\n")

	// Text input or attachment slot
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, a.renderInputSlot()))
	b.WriteString("\n\n")

	// Status bar
	status := styleStatusBar.Render("[Enter] 翻译  [↑/↓] 身份  [Tab] 火力  [Ctrl+O] 截图  [Esc] 退出")
	if !st.sess.CanSubmit(st.textInput.Value()) {
		status = styleStatusBar.Render("输入文字或附上截图后即可翻译  [↑/↓] 身份  [Tab] 火力  [Ctrl+O] 截图  [Esc] 退出")
	}
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, status))

	return a.centerVertically(b.String())
}

// renderInputSlot shows the free text field, the attach-path prompt, or the
// occupied attachment slot, whichever is active.
func (a *App) renderInputSlot() string {
	st := a.state

	if st.attaching {
		return styleBox.
			Width(min(70, a.width-4)).
			BorderForeground(colorSecondary).
			Render("截图路径:\n" + st.attachInput.View())
	}

	switch st.sess.AttachmentPhase() {
	case session.AttachmentUploading:
		line := st.spin.View() + " 正在上传 " + filepath.Base(st.sess.AttachmentPath()) + " ..."
		return styleBox.
			Width(min(70, a.width-4)).
			BorderForeground(colorSecondary).
			Render(line)

	case session.AttachmentReady:
		line := lipgloss.NewStyle().Foreground(colorSuccess).Render("✓ "+filepath.Base(st.sess.AttachmentPath())) +
			styleSubtitle.Render("  已就绪，文字输入已停用  [Ctrl+X] 移除")
		return styleBox.
			Width(min(70, a.width-4)).
			BorderForeground(colorSuccess).
			Render(line)

	case session.AttachmentFailed:
		line := lipgloss.NewStyle().Foreground(colorError).Render("图片上传失败，请重试") +
			styleSubtitle.Render("  "+truncate(st.sess.AttachmentError(), 40))
		return styleBox.
			Width(min(70, a.width-4)).
			BorderForeground(colorError).
			Render(line + "\n" + st.textInput.View())
	}

	return styleBox.
		Width(min(70, a.width-4)).
		BorderForeground(colorPrimary).
		Render(st.textInput.View())
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
