package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func modalBodyWidth(termWidth int) int {
	w := termWidth - 8
	if w > 72 {
		w = 72
	}
	if w < 20 {
		w = 20
	}
	return w
}

func renderModalBox(width int, title string, content string, p palette) string {
	bodyW := modalBodyWidth(width)
	head := p.modalTitle().Render(title)
	return p.modalBox().Width(bodyW + 2).Render(head + "\n\n" + content)
}

func renderConfirmModal(width int, title, body, confirmLabel, cancelLabel string, focus confirmModalFocus, p palette) string {
	confirm := p.button(focus == confirmFocusConfirm).Render(confirmLabel)
	cancel := p.button(focus == confirmFocusCancel).Render(cancelLabel)
	controls := lipgloss.JoinHorizontal(lipgloss.Top, confirm, " ", cancel)

	bodyW := modalBodyWidth(width)
	help := p.muted().Width(bodyW).Render("tab: focus   enter: select   esc: cancel")

	content := strings.Join([]string{
		lipgloss.NewStyle().Width(bodyW).Render(body),
		"",
		controls,
		"",
		help,
	}, "\n")
	return renderModalBox(width, title, content, p)
}
