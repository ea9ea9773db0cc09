package tui

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"notepad/internal/editor"

	tea "github.com/charmbracelet/bubbletea"
)

type externalEditorDoneMsg struct {
	err error
}

func externalEditorName() string {
	if v := strings.TrimSpace(os.Getenv("VISUAL")); v != "" {
		return v
	}
	if v := strings.TrimSpace(os.Getenv("EDITOR")); v != "" {
		return v
	}
	return "vi"
}

// openExternalEditor hands the active document to $VISUAL/$EDITOR through a
// temp file. The program is suspended until the editor exits.
func (m *appModel) openExternalEditor() (tea.Cmd, error) {
	d := m.session.Active()
	if d == nil {
		return nil, editor.ErrNoDocument
	}
	name := externalEditorName()
	args, err := parseCommand(name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if len(args) == 0 {
		args = []string{"vi"}
	}

	// Keep the extension so the editor picks the right syntax.
	ext := filepath.Ext(d.Path)
	if ext == "" {
		ext = "." + editor.TextFilter.Extensions[0]
	}
	f, err := os.CreateTemp("", "notepad-*"+ext)
	if err != nil {
		return nil, err
	}
	path := f.Name()

	if _, err := f.WriteString(d.Text); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return nil, err
	}
	_ = f.Close()

	m.externalEditorPath = path
	m.externalEditorDoc = d

	cmd := exec.Command(args[0], append(args[1:], path)...)
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return externalEditorDoneMsg{err: err}
	}), nil
}

func (m *appModel) applyExternalEditorResult(msg externalEditorDoneMsg) {
	path := m.externalEditorPath
	d := m.externalEditorDoc

	m.externalEditorPath = ""
	m.externalEditorDoc = nil
	if strings.TrimSpace(path) == "" {
		return
	}
	defer func() { _ = os.Remove(path) }()

	if msg.err != nil {
		m.showMinibufferErr("Editor failed: " + msg.err.Error())
		return
	}

	b, err := os.ReadFile(path)
	if err != nil {
		m.showMinibufferErr("Editor read failed: " + err.Error())
		return
	}

	after := string(b)
	if d == nil || after == d.Text {
		m.showMinibuffer(fmt.Sprintf("No changes from %s", externalEditorName()))
		return
	}
	d.Text = after
	if d == m.loadedDoc {
		m.loadActive()
	}
	m.showMinibuffer(fmt.Sprintf("Updated from %s (ctrl+s to save)", externalEditorName()))
}
