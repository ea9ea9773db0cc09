package tui

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"notepad/internal/editor"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// modalPicker answers the session's file dialogs from modal results. The
// TUI queues the path the user chose, then calls the session operation,
// which consumes it. Nothing queued means the user cancelled.
type modalPicker struct {
	queued    string
	hasQueued bool
	// picked is the last path handed to the session.
	picked string
}

var _ editor.FilePicker = (*modalPicker)(nil)

func (p *modalPicker) queue(path string) {
	p.queued = path
	p.hasQueued = true
}

func (p *modalPicker) cancel() {
	p.queued = ""
	p.hasQueued = false
}

func (p *modalPicker) take() (string, bool) {
	path, ok := p.queued, p.hasQueued
	p.cancel()
	if ok {
		p.picked = path
	} else {
		p.picked = ""
	}
	return path, ok
}

func (p *modalPicker) PickOpen() (string, bool) { return p.take() }

func (p *modalPicker) PickSave(editor.Filter) (string, bool) { return p.take() }

func (m *appModel) pickerStartDir() string {
	startDir := strings.TrimSpace(m.lastDir)
	if startDir == "" {
		startDir = strings.TrimSpace(m.startDir)
	}
	if startDir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			startDir = strings.TrimSpace(home)
		}
	}
	if startDir == "" {
		startDir = "."
	}
	return startDir
}

func (m *appModel) openFileDialog() tea.Cmd {
	p := paletteFor(m.session.DarkMode)

	fp := filepicker.New()
	fp.AllowedTypes = nil // any file; non-text files fail on read and are reported
	fp.FileAllowed = true
	fp.DirAllowed = false
	fp.ShowHidden = false
	fp.ShowPermissions = false
	fp.ShowSize = true
	fp.AutoHeight = false
	fp.Height = filePickerHeight(m.height)
	fp.Cursor = "›"
	// esc cancels the dialog instead of going up a directory.
	fp.KeyMap.Back = key.NewBinding(
		key.WithKeys("h", "backspace", "left"),
		key.WithHelp("h", "up"),
	)

	fp.Styles.Cursor = lipgloss.NewStyle().Foreground(p.c(colorAccent))
	fp.Styles.Selected = lipgloss.NewStyle().Foreground(p.c(colorAccent)).Bold(true)
	fp.Styles.Directory = lipgloss.NewStyle().Foreground(p.c(colorAccent))
	fp.Styles.Symlink = lipgloss.NewStyle().Foreground(p.c(colorAccent))
	fp.Styles.DisabledFile = p.muted()
	fp.Styles.DisabledSelected = p.muted()
	fp.Styles.Permission = p.muted()
	fp.Styles.FileSize = p.muted().Width(fp.Styles.FileSize.GetWidth()).Align(lipgloss.Right)

	fp.CurrentDirectory = m.pickerStartDir()

	m.openPicker = fp
	m.modal = modalOpenFile
	return fp.Init()
}

func filePickerHeight(termHeight int) int {
	h := termHeight - 10
	if h < 5 {
		h = 5
	}
	if h > 20 {
		h = 20
	}
	return h
}

func (m *appModel) openSaveDialog() tea.Cmd {
	d := m.session.Active()
	if d == nil {
		m.showMinibufferErr("Nothing to save")
		return nil
	}
	suggested := d.Path
	if suggested == "" {
		suggested = filepath.Join(m.pickerStartDir(), "untitled."+editor.TextFilter.Extensions[0])
	}

	in := textinput.New()
	in.Prompt = "Save as: "
	in.Placeholder = "path/to/file.txt"
	in.CharLimit = 4096
	in.Width = modalBodyWidth(m.width) - len(in.Prompt) - 1
	in.SetValue(suggested)
	in.CursorEnd()

	m.saveInput = in
	m.saveErr = ""
	m.modal = modalSaveAs
	return m.saveInput.Focus()
}

var errEmptyFileName = errors.New("file name is empty")

// resolveSavePath turns what the user typed into an absolute path. Relative
// names are taken from baseDir; a name without extension gets the filter's
// first extension, like native save dialogs do.
func resolveSavePath(input, baseDir string, filter editor.Filter) (string, error) {
	s := strings.TrimSpace(input)
	if s == "" || strings.HasSuffix(s, "/") || strings.HasSuffix(s, string(filepath.Separator)) {
		return "", errEmptyFileName
	}
	if strings.HasPrefix(s, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		s = filepath.Join(home, strings.TrimPrefix(s, "~"))
	}
	if !filepath.IsAbs(s) {
		s = filepath.Join(baseDir, s)
	}
	if filepath.Ext(s) == "" && len(filter.Extensions) > 0 {
		s += "." + filter.Extensions[0]
	}
	if abs, err := filepath.Abs(s); err == nil {
		s = abs
	}
	return filepath.Clean(s), nil
}
