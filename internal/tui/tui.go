package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

func Run(opts Options) error {
	applyColorProfilePreference()
	m := newAppModel(opts)
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}
