package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"notepad/internal/editor"
	"notepad/internal/store"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
)

// Options configures a TUI run.
type Options struct {
	// Files are opened in tabs at startup, in order.
	Files []string

	// Theme is "light", "dark" or "auto".
	Theme string

	// StartDir is where the open dialog starts.
	StartDir string

	// Recent is the recent-files history; nil disables it.
	Recent      *store.Recent
	RecentLimit int

	// FS defaults to store.DiskFS.
	FS editor.Filesystem

	DebugLogPath string
}

type appModel struct {
	session *editor.Session
	picker  *modalPicker
	keys    keyMap

	recent      *store.Recent
	recentLimit int
	startDir    string
	// lastDir is the directory of the last opened/saved file.
	lastDir string

	width  int
	height int

	textarea textarea.Model
	// loadedDoc is the document whose text is in the text area.
	loadedDoc *editor.Document
	readOnly  bool

	showPreview bool

	modal        modalKind
	openPicker   filepicker.Model
	saveInput    textinput.Model
	saveErr      string
	recentList   list.Model
	confirmFocus confirmModalFocus

	minibufferText  string
	minibufferErr   bool
	minibufferSetAt time.Time

	externalEditorPath string
	externalEditorDoc  *editor.Document

	lastTitle    string
	debugLogPath string

	now  func() time.Time
	copy func(string) error
}

func newAppModel(opts Options) appModel {
	fs := opts.FS
	if fs == nil {
		fs = store.DiskFS{}
	}
	picker := &modalPicker{}

	m := appModel{
		session:      &editor.Session{Picker: picker, FS: fs},
		picker:       picker,
		keys:         defaultKeyMap(),
		recent:       opts.Recent,
		recentLimit:  opts.RecentLimit,
		startDir:     strings.TrimSpace(opts.StartDir),
		width:        80,
		height:       24,
		debugLogPath: strings.TrimSpace(opts.DebugLogPath),
		now:          time.Now,
		copy:         copyToClipboard,
	}
	if m.recentLimit <= 0 {
		m.recentLimit = store.DefaultRecentLimit
	}
	m.session.DarkMode = resolveDarkMode(opts.Theme)

	m.textarea = textarea.New()
	m.textarea.Placeholder = "Start typing…"
	m.textarea.CharLimit = 0
	m.textarea.MaxHeight = 0
	m.textarea.ShowLineNumbers = true
	m.applyTextareaTheme()

	var failed []string
	for _, f := range opts.Files {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		if abs, err := filepath.Abs(f); err == nil {
			f = abs
		}
		if err := m.session.OpenPath(f); err != nil {
			m.debugLogf("startup open: %v", err)
			failed = append(failed, err.Error())
			continue
		}
		m.lastDir = filepath.Dir(f)
		m.recordRecent(f)
	}
	if m.session.Len() == 0 {
		m.session.NewTab()
	}
	if len(failed) > 0 {
		m.showMinibufferErr("Open failed: " + strings.Join(failed, "; "))
	}

	m.loadActive()
	m.resize()
	m.lastTitle = m.session.Title()
	return m
}

// loadActive puts the active document into the text area.
func (m *appModel) loadActive() {
	d := m.session.Active()
	m.loadedDoc = d
	m.readOnly = false
	if d == nil {
		m.textarea.SetValue("")
		m.textarea.Blur()
		return
	}
	value, err := toEditable(d.Text, d.LineEnding)
	if err != nil {
		m.readOnly = true
		value = d.Text
		m.showMinibufferErr(fmt.Sprintf("%s: %v; opened read-only", d.Name(), err))
	}
	m.textarea.SetValue(value)
	m.textarea.Focus()
}

// ensureLoaded reloads the text area when the active document changed.
func (m *appModel) ensureLoaded() {
	if m.session.Active() != m.loadedDoc {
		m.loadActive()
	}
}

func (m *appModel) applyTextareaTheme() {
	p := paletteFor(m.session.DarkMode)
	focused := m.textarea.FocusedStyle
	focused.Base = p.surface()
	focused.Text = p.surface()
	focused.CursorLine = p.surface().Background(p.c(colorInputBg))
	focused.LineNumber = p.muted()
	focused.CursorLineNumber = p.surface().Bold(true)
	focused.Placeholder = p.muted()
	focused.EndOfBuffer = p.muted()
	m.textarea.FocusedStyle = focused

	blurred := focused
	blurred.CursorLine = p.surface()
	m.textarea.BlurredStyle = blurred
}

func (m *appModel) bodyHeight() int {
	// tab strip + status line + footer
	h := m.height - 3
	if h < 3 {
		h = 3
	}
	return h
}

func (m *appModel) editorWidth() int {
	if m.showPreview {
		return m.width / 2
	}
	return m.width
}

func (m *appModel) resize() {
	m.textarea.SetWidth(m.editorWidth())
	m.textarea.SetHeight(m.bodyHeight())
	if m.modal == modalRecent {
		m.recentList.SetSize(modalBodyWidth(m.width), filePickerHeight(m.height))
	}
	if m.modal == modalOpenFile {
		m.openPicker.Height = filePickerHeight(m.height)
	}
}

func (m *appModel) showMinibuffer(s string) {
	m.minibufferText = s
	m.minibufferErr = false
	m.minibufferSetAt = m.now()
}

func (m *appModel) showMinibufferErr(s string) {
	m.minibufferText = s
	m.minibufferErr = true
	m.minibufferSetAt = m.now()
}

// debugLogf appends a line to the debug log when one is configured.
func (m *appModel) debugLogf(format string, args ...any) {
	if m.debugLogPath == "" {
		return
	}
	f, err := os.OpenFile(m.debugLogPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return
	}
	defer f.Close()
	_, _ = fmt.Fprintf(f, "%s %s\n", time.Now().Format(time.RFC3339), fmt.Sprintf(format, args...))
}
