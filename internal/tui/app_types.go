package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type statusTickMsg struct{}

const (
	statusTickEvery          = 750 * time.Millisecond
	minibufferAutoClearAfter = 4 * time.Second
)

func tickStatus() tea.Cmd {
	return tea.Tick(statusTickEvery, func(time.Time) tea.Msg { return statusTickMsg{} })
}

type modalKind int

const (
	modalNone modalKind = iota
	modalOpenFile
	modalSaveAs
	modalRecent
	modalConfirmQuit
)

func modalToString(k modalKind) string {
	switch k {
	case modalNone:
		return "none"
	case modalOpenFile:
		return "open"
	case modalSaveAs:
		return "save-as"
	case modalRecent:
		return "recent"
	case modalConfirmQuit:
		return "confirm-quit"
	default:
		return "unknown"
	}
}

type confirmModalFocus int

const (
	confirmFocusConfirm confirmModalFocus = iota
	confirmFocusCancel
)
