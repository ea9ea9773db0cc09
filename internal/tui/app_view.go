package tui

import (
	"fmt"
	"strings"

	"notepad/internal/editor"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func (m appModel) View() string {
	p := paletteFor(m.session.DarkMode)

	labels := labelsFor(m.session.Documents())
	spans := layoutTabs(labels, m.session.Index(), m.width)
	strip := renderTabStrip(spans, labels, m.session.Index(), m.width, p)

	var body string
	if m.modal != modalNone {
		body = lipgloss.Place(m.width, m.bodyHeight(), lipgloss.Center, lipgloss.Center, m.renderModal(p))
	} else {
		body = m.renderEditor(p)
	}

	return strings.Join([]string{strip, body, m.renderStatusLine(p), m.renderFooter(p)}, "\n")
}

func (m appModel) renderEditor(p palette) string {
	h := m.bodyHeight()
	d := m.session.Active()
	if d == nil {
		msg := p.muted().Render("No document open.  ctrl+n: new tab   ctrl+o: open")
		return lipgloss.Place(m.width, h, lipgloss.Center, lipgloss.Center, msg)
	}

	ed := strings.ReplaceAll(m.textarea.View(), string(tabMark), tabGlyph)
	if !m.showPreview {
		return ed
	}

	previewW := m.width - m.editorWidth() - 1
	if previewW < 10 {
		return ed
	}
	var preview string
	if isMarkdownPath(d.Path) || d.Untitled() {
		preview = renderMarkdown(d.Text, previewW-2, m.session.DarkMode)
	} else {
		preview = d.Text
	}
	pane := lipgloss.NewStyle().
		Width(previewW).
		Height(h).
		MaxHeight(h).
		Padding(0, 1).
		BorderStyle(lipgloss.NormalBorder()).
		BorderLeft(true).
		BorderForeground(p.c(colorMuted)).
		Render(preview)
	return lipgloss.JoinHorizontal(lipgloss.Top, ed, pane)
}

func (m appModel) renderModal(p palette) string {
	bodyW := modalBodyWidth(m.width)
	switch m.modal {
	case modalOpenFile:
		dir := ansi.Truncate(m.openPicker.CurrentDirectory, bodyW, "…")
		help := p.muted().Render("enter: open   h/←: up   esc: cancel")
		return renderModalBox(m.width, "Open file", p.muted().Render(dir)+"\n\n"+m.openPicker.View()+"\n\n"+help, p)

	case modalSaveAs:
		lines := []string{p.input().Width(bodyW).Render(m.saveInput.View())}
		if m.saveErr != "" {
			lines = append(lines, "", p.status(true).Width(bodyW).Render(m.saveErr))
		}
		lines = append(lines, "", p.muted().Render("enter: save   esc: cancel   ("+textFilterHint()+")"))
		return renderModalBox(m.width, "Save as", strings.Join(lines, "\n"), p)

	case modalRecent:
		help := p.muted().Render("enter: open   /: filter   ctrl+d: forget   esc: close")
		return renderModalBox(m.width, "Recent files", m.recentList.View()+"\n\n"+help, p)

	case modalConfirmQuit:
		n := 0
		for _, d := range m.session.Documents() {
			if d.Modified() {
				n++
			}
		}
		body := fmt.Sprintf("%d tab(s) have unsaved changes. Quit anyway?", n)
		return renderConfirmModal(m.width, "Unsaved changes", body, "Quit", "Cancel", m.confirmFocus, p)
	}
	return ""
}

func textFilterHint() string {
	return "default extension ." + strings.Join(editor.TextFilter.Extensions, ", .")
}

func (m appModel) renderStatusLine(p palette) string {
	left := m.minibufferText
	isErr := m.minibufferErr
	if left == "" {
		left = m.session.Title()
	}

	var right string
	if d := m.session.Active(); d != nil {
		info := m.textarea.LineInfo()
		right = fmt.Sprintf("Ln %d, Col %d", m.textarea.Line()+1, info.StartColumn+info.ColumnOffset+1)
		if d.LineEnding == editor.CRLF {
			right = "CRLF  " + right
		}
		if m.readOnly {
			right = "read-only  " + right
		}
		if m.session.Len() > 1 {
			right = fmt.Sprintf("%s  [%d/%d]", right, m.session.Index()+1, m.session.Len())
		}
	}

	rightW := ansi.StringWidth(right)
	leftW := m.width - rightW - 1
	if leftW < 0 {
		leftW = 0
	}
	left = ansi.Truncate(left, leftW, "…")
	gap := m.width - ansi.StringWidth(left) - rightW
	if gap < 1 {
		gap = 1
	}
	return p.status(isErr).Render(left) + strings.Repeat(" ", gap) + p.muted().Render(right)
}

func (m appModel) renderFooter(p palette) string {
	var parts []string
	for _, b := range m.keys.footer() {
		h := b.Help()
		parts = append(parts, h.Key+": "+h.Desc)
	}
	return p.muted().Render(ansi.Truncate(strings.Join(parts, "  "), m.width, "…"))
}
