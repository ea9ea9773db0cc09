package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// keyMap holds the editor-level bindings. Everything else goes to the
// text area. Bindings that overlap textarea defaults (ctrl+n, ctrl+w) win.
type keyMap struct {
	Quit     key.Binding
	NewTab   key.Binding
	CloseTab key.Binding
	NextTab  key.Binding
	PrevTab  key.Binding
	GotoTab  key.Binding
	Open     key.Binding
	Save     key.Binding
	SaveAs   key.Binding
	Recent   key.Binding
	Theme    key.Binding
	Preview  key.Binding
	External key.Binding
	Copy     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:     key.NewBinding(key.WithKeys("ctrl+q", "ctrl+c"), key.WithHelp("ctrl+q", "quit")),
		NewTab:   key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "new")),
		CloseTab: key.NewBinding(key.WithKeys("ctrl+w"), key.WithHelp("ctrl+w", "close")),
		NextTab:  key.NewBinding(key.WithKeys("ctrl+pgdown", "alt+]"), key.WithHelp("alt+]", "next tab")),
		PrevTab:  key.NewBinding(key.WithKeys("ctrl+pgup", "alt+["), key.WithHelp("alt+[", "prev tab")),
		GotoTab: key.NewBinding(
			key.WithKeys("alt+1", "alt+2", "alt+3", "alt+4", "alt+5", "alt+6", "alt+7", "alt+8", "alt+9"),
			key.WithHelp("alt+1..9", "go to tab"),
		),
		Open:    key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "open")),
		Save:    key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		SaveAs:  key.NewBinding(key.WithKeys("alt+s"), key.WithHelp("alt+s", "save as")),
		Recent:  key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "recent")),
		Theme:   key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "theme")),
		Preview: key.NewBinding(key.WithKeys("alt+p"), key.WithHelp("alt+p", "preview")),
		// $VISUAL / $EDITOR
		External: key.NewBinding(key.WithKeys("ctrl+e"), key.WithHelp("ctrl+e", "external editor")),
		Copy:     key.NewBinding(key.WithKeys("alt+c"), key.WithHelp("alt+c", "copy all")),
	}
}

func (k keyMap) footer() []key.Binding {
	return []key.Binding{k.Open, k.Save, k.SaveAs, k.NewTab, k.CloseTab, k.NextTab, k.Recent, k.Theme, k.Preview, k.Quit}
}

// gotoTabIndex returns the 0-based tab for alt+N.
func gotoTabIndex(msg tea.KeyMsg) (int, bool) {
	s := msg.String()
	if !strings.HasPrefix(s, "alt+") {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimPrefix(s, "alt+"))
	if err != nil || n < 1 || n > 9 {
		return 0, false
	}
	return n - 1, true
}
