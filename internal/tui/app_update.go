package tui

import (
	"errors"
	"path/filepath"

	"notepad/internal/editor"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
)

func (m appModel) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, tickStatus(), tea.SetWindowTitle(m.lastTitle))
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.update(msg)
	m.ensureLoaded()

	// Window chrome follows the active document.
	if title := m.session.Title(); title != m.lastTitle {
		m.lastTitle = title
		cmd = tea.Batch(cmd, tea.SetWindowTitle(title))
	}
	return m, cmd
}

func (m *appModel) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return nil

	case statusTickMsg:
		if m.minibufferText != "" && m.now().Sub(m.minibufferSetAt) >= minibufferAutoClearAfter {
			m.minibufferText = ""
			m.minibufferErr = false
		}
		return tickStatus()

	case externalEditorDoneMsg:
		m.applyExternalEditorResult(msg)
		return nil

	case tea.MouseMsg:
		if m.modal == modalNone {
			m.handleMouse(msg)
		}
		return nil

	case tea.KeyMsg:
		if m.modal != modalNone {
			return m.updateModal(msg)
		}
		return m.handleKey(msg)
	}

	// Non-key messages (directory listings, cursor blink) go to whatever is showing.
	if m.modal == modalOpenFile {
		return m.updateOpenPicker(msg)
	}
	var cmds []tea.Cmd
	if m.modal == modalRecent {
		// Filter results arrive as messages.
		var cmd tea.Cmd
		m.recentList, cmd = m.recentList.Update(msg)
		cmds = append(cmds, cmd)
	}
	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	return tea.Batch(append(cmds, cmd)...)
}

func (m *appModel) handleMouse(msg tea.MouseMsg) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft || msg.Y != 0 {
		return
	}
	labels := labelsFor(m.session.Documents())
	spans := layoutTabs(labels, m.session.Index(), m.width)
	idx, hit := hitTab(spans, msg.X)
	switch hit {
	case tabHitActivate:
		_ = m.session.ActivateTab(idx)
	case tabHitClose:
		m.closeTab(idx)
	}
}

func (m *appModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.session.AnyModified() {
			m.modal = modalConfirmQuit
			m.confirmFocus = confirmFocusCancel
			return nil
		}
		return tea.Quit

	case key.Matches(msg, m.keys.NewTab):
		m.session.NewTab()
		return nil

	case key.Matches(msg, m.keys.CloseTab):
		if m.session.Len() > 0 {
			m.closeTab(m.session.Index())
		}
		return nil

	case key.Matches(msg, m.keys.NextTab):
		if n := m.session.Len(); n > 0 {
			_ = m.session.ActivateTab((m.session.Index() + 1) % n)
		}
		return nil

	case key.Matches(msg, m.keys.PrevTab):
		if n := m.session.Len(); n > 0 {
			_ = m.session.ActivateTab((m.session.Index() - 1 + n) % n)
		}
		return nil

	case key.Matches(msg, m.keys.GotoTab):
		if i, ok := gotoTabIndex(msg); ok && i < m.session.Len() {
			_ = m.session.ActivateTab(i)
		}
		return nil

	case key.Matches(msg, m.keys.Open):
		return m.openFileDialog()

	case key.Matches(msg, m.keys.Save):
		return m.save()

	case key.Matches(msg, m.keys.SaveAs):
		return m.openSaveDialog()

	case key.Matches(msg, m.keys.Recent):
		m.openRecentDialog()
		return nil

	case key.Matches(msg, m.keys.Theme):
		m.session.ToggleTheme()
		m.applyTextareaTheme()
		return nil

	case key.Matches(msg, m.keys.Preview):
		m.showPreview = !m.showPreview
		m.resize()
		return nil

	case key.Matches(msg, m.keys.External):
		if m.readOnly {
			m.showMinibufferErr("Document is read-only")
			return nil
		}
		cmd, err := m.openExternalEditor()
		if err != nil {
			m.showMinibufferErr("Editor failed: " + err.Error())
			return nil
		}
		return cmd

	case key.Matches(msg, m.keys.Copy):
		m.copyActive()
		return nil
	}

	d := m.session.Active()
	if d == nil {
		return nil
	}
	if m.readOnly {
		// Navigation still works; edits are dropped below.
		before := m.textarea.Value()
		var cmd tea.Cmd
		m.textarea, cmd = m.textarea.Update(msg)
		if m.textarea.Value() != before {
			m.textarea.SetValue(before)
			m.showMinibufferErr("Document is read-only")
		}
		return cmd
	}

	if msg.Type == tea.KeyTab {
		m.textarea.InsertRune(tabMark)
		d.Text = fromEditable(m.textarea.Value(), d.LineEnding)
		return nil
	}
	if msg.Type == tea.KeyRunes {
		msg.Runes = editableRunes(msg.Runes)
	}

	before := m.textarea.Value()
	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	if after := m.textarea.Value(); after != before {
		d.Text = fromEditable(after, d.LineEnding)
	}
	return cmd
}

func (m *appModel) closeTab(i int) {
	if err := m.session.CloseTab(i); err != nil {
		m.debugLogf("close tab %d: %v", i, err)
	}
}

// save writes the active document, prompting for a path when it has none.
func (m *appModel) save() tea.Cmd {
	d := m.session.Active()
	if d == nil {
		m.showMinibufferErr("Nothing to save")
		return nil
	}
	if d.Untitled() {
		return m.openSaveDialog()
	}
	m.reportSave(m.session.SaveActive(), d.Path)
	return nil
}

func (m *appModel) reportSave(err error, path string) {
	if err != nil {
		m.reportIOError("Save failed", err)
		return
	}
	if path == "" {
		return
	}
	m.lastDir = filepath.Dir(path)
	m.recordRecent(path)
	m.showMinibuffer("Saved " + path)
}

func (m *appModel) reportOpen(err error, path string) {
	if err != nil {
		m.reportIOError("Open failed", err)
		return
	}
	if path == "" {
		return
	}
	m.lastDir = filepath.Dir(path)
	m.recordRecent(path)
	m.showMinibuffer("Opened " + path)
}

func (m *appModel) reportIOError(prefix string, err error) {
	m.debugLogf("%s: %v", prefix, err)
	var ioErr *editor.IOError
	if errors.As(err, &ioErr) {
		m.showMinibufferErr(prefix + ": " + ioErr.Path + ": " + ioErr.Err.Error())
		return
	}
	m.showMinibufferErr(prefix + ": " + err.Error())
}

func (m *appModel) updateModal(msg tea.KeyMsg) tea.Cmd {
	m.debugLogf("modal=%s key=%q", modalToString(m.modal), msg.String())
	switch m.modal {
	case modalOpenFile:
		if msg.String() == "esc" || msg.String() == "ctrl+g" {
			m.modal = modalNone
			m.picker.cancel()
			m.reportOpen(m.session.OpenFile(), "")
			return nil
		}
		return m.updateOpenPicker(msg)

	case modalSaveAs:
		switch msg.String() {
		case "esc", "ctrl+g":
			m.modal = modalNone
			m.picker.cancel()
			m.reportSave(m.session.SaveAs(), "")
			return nil
		case "enter":
			path, err := resolveSavePath(m.saveInput.Value(), m.pickerStartDir(), editor.TextFilter)
			if err != nil {
				m.saveErr = err.Error()
				return nil
			}
			m.picker.queue(path)
			if err := m.session.SaveAs(); err != nil {
				// Keep the dialog open so another path can be tried.
				m.saveErr = err.Error()
				m.reportIOError("Save failed", err)
				return nil
			}
			m.modal = modalNone
			m.reportSave(nil, m.picker.picked)
			return nil
		}
		var cmd tea.Cmd
		m.saveInput, cmd = m.saveInput.Update(msg)
		m.saveErr = ""
		return cmd

	case modalRecent:
		if m.recentList.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.recentList, cmd = m.recentList.Update(msg)
			return cmd
		}
		switch msg.String() {
		case "esc", "ctrl+g":
			if m.recentList.FilterState() == list.FilterApplied {
				m.recentList.ResetFilter()
				return nil
			}
			m.modal = modalNone
			return nil
		case "enter":
			it, ok := m.recentList.SelectedItem().(recentItem)
			if !ok {
				return nil
			}
			m.modal = modalNone
			m.picker.queue(it.file.Path)
			m.reportOpen(m.session.OpenFile(), m.picker.picked)
			return nil
		case "ctrl+d", "delete":
			if it, ok := m.recentList.SelectedItem().(recentItem); ok {
				return m.forgetRecent(it.file.Path)
			}
			return nil
		}
		var cmd tea.Cmd
		m.recentList, cmd = m.recentList.Update(msg)
		return cmd

	case modalConfirmQuit:
		switch msg.String() {
		case "esc", "ctrl+g", "n":
			m.modal = modalNone
			return nil
		case "y":
			return tea.Quit
		case "tab", "shift+tab", "left", "right", "h", "l":
			if m.confirmFocus == confirmFocusConfirm {
				m.confirmFocus = confirmFocusCancel
			} else {
				m.confirmFocus = confirmFocusConfirm
			}
			return nil
		case "enter":
			if m.confirmFocus == confirmFocusConfirm {
				return tea.Quit
			}
			m.modal = modalNone
			return nil
		}
	}
	return nil
}

func (m *appModel) updateOpenPicker(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.openPicker, cmd = m.openPicker.Update(msg)
	if ok, path := m.openPicker.DidSelectFile(msg); ok {
		m.modal = modalNone
		m.picker.queue(path)
		m.reportOpen(m.session.OpenFile(), m.picker.picked)
		return nil
	}
	return cmd
}
