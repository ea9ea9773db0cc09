package tui

import (
	"context"
	"path/filepath"
	"time"

	"notepad/internal/model"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

type recentItem struct {
	file model.RecentFile
}

func (it recentItem) Title() string       { return filepath.Base(it.file.Path) }
func (it recentItem) Description() string { return it.file.Path }
func (it recentItem) FilterValue() string { return it.file.Path }

func newList(title string, items []list.Item) list.Model {
	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = title
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	l.SetFilteringEnabled(true)
	l.SetStatusBarItemName("file", "files")
	// Bubble list quits the program on q/esc by default; here esc closes the modal.
	l.DisableQuitKeybindings()
	return l
}

func (m *appModel) openRecentDialog() {
	if m.recent == nil {
		m.showMinibufferErr("Recent files are disabled")
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	files, err := m.recent.List(ctx, m.recentLimit)
	if err != nil {
		m.debugLogf("recent list failed: %v", err)
		m.showMinibufferErr("Recent files: " + err.Error())
		return
	}
	if len(files) == 0 {
		m.showMinibuffer("No recent files")
		return
	}
	items := make([]list.Item, 0, len(files))
	for _, f := range files {
		items = append(items, recentItem{file: f})
	}
	m.recentList = newList("Recent files", items)
	m.recentList.SetSize(modalBodyWidth(m.width), filePickerHeight(m.height))
	m.modal = modalRecent
}

// recordRecent is best-effort: a broken history db never fails a save or open.
func (m *appModel) recordRecent(path string) {
	if m.recent == nil || path == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := m.recent.Touch(ctx, path, m.now()); err != nil {
		m.debugLogf("recent touch %s: %v", path, err)
	}
}

// forgetRecent drops path from the history and from the dialog. Rows are
// matched by path because the list index is relative to the filtered view.
func (m *appModel) forgetRecent(path string) tea.Cmd {
	if m.recent == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := m.recent.Forget(ctx, path); err != nil {
		m.debugLogf("recent forget %s: %v", path, err)
		m.showMinibufferErr("Forget failed: " + err.Error())
		return nil
	}

	items := m.recentList.Items()
	kept := make([]list.Item, 0, len(items))
	for _, it := range items {
		if ri, ok := it.(recentItem); ok && ri.file.Path == path {
			continue
		}
		kept = append(kept, it)
	}
	if len(kept) == 0 {
		m.modal = modalNone
		m.showMinibuffer("Recent files cleared")
		return nil
	}
	// The forgotten row was visible, so the view shrinks by one. Under a
	// filter the new matches only arrive with the returned command.
	idx := m.recentList.Index()
	if n := len(m.recentList.VisibleItems()) - 1; idx >= n && n > 0 {
		idx = n - 1
	}
	cmd := m.recentList.SetItems(kept)
	m.recentList.Select(idx)
	return cmd
}
