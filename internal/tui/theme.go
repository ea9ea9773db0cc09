package tui

import (
	"context"
	"os"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme/palette helpers.
//
// Colors are declared as light/dark pairs. Unlike lipgloss.AdaptiveColor we
// don't let the terminal pick the variant: the session's DarkMode flag does,
// so ctrl+t flips the whole palette at once.

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

var (
	colorSurfaceBg = ac("255", "235")
	colorSurfaceFg = ac("235", "252")
	colorMuted     = ac("240", "243")
	colorAccent    = ac("27", "62")
	colorAccentFg  = ac("255", "255")

	colorTabBg       = ac("252", "237")
	colorTabFg       = ac("238", "250")
	colorTabActiveBg = ac("#e9e9e9", "#262626")
	colorTabActiveFg = ac("232", "255")
	colorTabClose    = ac("244", "245")
	colorModified    = ac("130", "214")

	colorControlBg = ac("252", "235")
	colorInputBg   = ac("254", "234")
	colorErrorFg   = ac("160", "203")
)

type palette struct {
	dark bool
}

func paletteFor(dark bool) palette { return palette{dark: dark} }

func (p palette) c(c lipgloss.AdaptiveColor) lipgloss.Color {
	if p.dark {
		return lipgloss.Color(c.Dark)
	}
	return lipgloss.Color(c.Light)
}

func (p palette) surface() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(p.c(colorSurfaceFg)).Background(p.c(colorSurfaceBg))
}

func (p palette) muted() lipgloss.Style {
	st := lipgloss.NewStyle().Foreground(p.c(colorMuted))
	// Faint text on light terminals often becomes illegible.
	if p.dark {
		st = st.Faint(true)
	}
	return st
}

func (p palette) tab(active bool) lipgloss.Style {
	if active {
		return lipgloss.NewStyle().Bold(true).Foreground(p.c(colorTabActiveFg)).Background(p.c(colorTabActiveBg))
	}
	return lipgloss.NewStyle().Foreground(p.c(colorTabFg)).Background(p.c(colorTabBg))
}

func (p palette) tabClose(active bool) lipgloss.Style {
	return p.tab(active).Bold(false).Foreground(p.c(colorTabClose))
}

func (p palette) modifiedMark(active bool) lipgloss.Style {
	return p.tab(active).Foreground(p.c(colorModified))
}

func (p palette) tabStripFill() lipgloss.Style {
	return lipgloss.NewStyle().Background(p.c(colorTabBg))
}

func (p palette) status(isErr bool) lipgloss.Style {
	if isErr {
		return lipgloss.NewStyle().Bold(true).Foreground(p.c(colorErrorFg))
	}
	return lipgloss.NewStyle().Foreground(p.c(colorSurfaceFg))
}

func (p palette) modalBox() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.c(colorAccent)).
		Padding(0, 1).
		Foreground(p.c(colorSurfaceFg))
}

func (p palette) modalTitle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(p.c(colorAccent))
}

func (p palette) button(focused bool) lipgloss.Style {
	st := lipgloss.NewStyle().Padding(0, 1).Foreground(p.c(colorSurfaceFg)).Background(p.c(colorControlBg))
	if focused {
		st = st.Bold(true).Foreground(p.c(colorAccentFg)).Background(p.c(colorAccent))
	}
	return st
}

func (p palette) input() lipgloss.Style {
	return lipgloss.NewStyle().Background(p.c(colorInputBg)).Foreground(p.c(colorSurfaceFg))
}

// applyColorProfilePreference sets Lip Gloss's color profile for the interactive TUI.
//
// termenv.EnvColorProfile respects CLICOLOR/CLICOLOR_FORCE, which can disable
// colors in a TUI. We only honor NO_COLOR and otherwise follow the terminal.
func applyColorProfilePreference() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}

	profile := termenv.ColorProfile()

	// Trust TERM/COLORTERM when they claim more than the detector reports.
	term := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	colorterm := strings.ToLower(strings.TrimSpace(os.Getenv("COLORTERM")))
	if strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit") {
		if profile != termenv.Ascii {
			profile = termenv.TrueColor
		}
	} else if strings.Contains(term, "256color") && (profile == termenv.Ascii || profile == termenv.ANSI) {
		profile = termenv.ANSI256
	}

	lipgloss.SetColorProfile(profile)
}

// resolveDarkMode picks the startup theme.
//
// Priority:
// 1) pref ("light" or "dark"; from --theme, NOTEPAD_THEME or the config file)
// 2) COLORFGBG heuristic (format like "15;0" = fg;bg)
// 3) macOS appearance
// 4) terminal background detection
func resolveDarkMode(pref string) bool {
	switch strings.ToLower(strings.TrimSpace(pref)) {
	case "light":
		return false
	case "dark":
		return true
	}

	if v := strings.TrimSpace(os.Getenv("COLORFGBG")); v != "" {
		parts := strings.Split(v, ";")
		if bg, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1])); err == nil {
			return bg < 7
		}
	}

	if runtime.GOOS == "darwin" {
		if dark, ok := macOSHasDarkAppearance(); ok {
			return dark
		}
	}

	return termenv.HasDarkBackground()
}

func macOSHasDarkAppearance() (dark bool, ok bool) {
	// Prints "Dark" in dark mode; exits 1 in light mode (key missing).
	ctx, cancel := context.WithTimeout(context.Background(), 80*time.Millisecond)
	defer cancel()

	out, err := exec.CommandContext(ctx, "defaults", "read", "-g", "AppleInterfaceStyle").CombinedOutput()
	if ctx.Err() != nil {
		return false, false
	}
	if err == nil {
		return strings.Contains(strings.ToLower(string(out)), "dark"), true
	}
	if ee, ok := err.(*exec.ExitError); ok && ee.ExitCode() == 1 {
		return false, true
	}
	return false, false
}
