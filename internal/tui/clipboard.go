package tui

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// clipboardEnv names a command that reads the clipboard text on stdin. It
// replaces the per-platform tools below.
const clipboardEnv = "NOTEPAD_CLIPBOARD"

var errNoClipboard = errors.New("no clipboard tool found")

// clipboardCommands lists the tools tried in order on goos.
func clipboardCommands(goos string) [][]string {
	switch goos {
	case "darwin":
		return [][]string{{"pbcopy"}}
	case "windows":
		return [][]string{
			{"clip"},
			{"powershell", "-NoProfile", "-Command", "$input | Set-Clipboard"},
		}
	default:
		return [][]string{
			{"wl-copy"},
			{"xclip", "-selection", "clipboard"},
			{"xsel", "--clipboard", "--input"},
		}
	}
}

func copyToClipboard(s string) error {
	cmds := clipboardCommands(runtime.GOOS)
	if v := strings.TrimSpace(os.Getenv(clipboardEnv)); v != "" {
		args, err := parseCommand(v)
		if err != nil {
			return fmt.Errorf("%s: %w", clipboardEnv, err)
		}
		cmds = [][]string{args}
	}
	return pipeToFirst(cmds, s)
}

// pipeToFirst feeds text to each command found on PATH until one succeeds.
func pipeToFirst(cmds [][]string, text string) error {
	err := errNoClipboard
	for _, argv := range cmds {
		if len(argv) == 0 {
			continue
		}
		bin, lookErr := exec.LookPath(argv[0])
		if lookErr != nil {
			continue
		}
		c := exec.Command(bin, argv[1:]...)
		c.Stdin = strings.NewReader(text)
		out, runErr := c.CombinedOutput()
		if runErr == nil {
			return nil
		}
		err = fmt.Errorf("%s: %w", argv[0], runErr)
		if msg := strings.TrimSpace(string(out)); msg != "" {
			err = fmt.Errorf("%w: %s", err, msg)
		}
	}
	return err
}

// copyActive puts the whole active document on the system clipboard.
func (m *appModel) copyActive() {
	d := m.session.Active()
	if d == nil {
		m.showMinibufferErr("Nothing to copy")
		return
	}
	if err := m.copy(d.Text); err != nil {
		m.debugLogf("clipboard: %v", err)
		m.showMinibufferErr("Copy failed: " + err.Error())
		return
	}
	m.showMinibuffer("Copied " + d.Name())
}
