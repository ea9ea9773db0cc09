package cli

import (
	"fmt"
	"os"
	"strings"

	"notepad/internal/format"
	"notepad/internal/store"
	"notepad/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	Theme        string
	Dir          string
	DebugLogPath string
	PrettyJSON   bool
	Format       string
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "notepad [files...]",
		Short:        "Multi-tab plain text editor for the terminal",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start with one empty tab
  notepad

  # Open files, one tab each
  notepad notes.txt todo.md

  # Scriptable commands
  notepad recent list --format text
  notepad config set theme dark
`),
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := tuiOptions(app, args)
			if err != nil {
				return writeErr(cmd, err)
			}
			return tui.Run(opts)
		},
	}

	cmd.PersistentFlags().StringVar(&app.Theme, "theme", envOr("NOTEPAD_THEME", ""), "Color theme (light|dark|auto)")
	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("NOTEPAD_DIR", ""), "Directory the open/save dialogs start in")
	cmd.PersistentFlags().StringVar(&app.DebugLogPath, "debug-log", envOr("NOTEPAD_DEBUG_LOG", ""), "Append TUI debug lines to this file")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("NOTEPAD_FORMAT", "json"), "Output format (json|text)")

	cmd.AddCommand(newRecentCmd(app))
	cmd.AddCommand(newConfigCmd(app))

	return cmd
}

// tuiOptions merges flags (and their env defaults) over the config file.
func tuiOptions(app *App, files []string) (tui.Options, error) {
	// A broken config file shouldn't keep the editor from starting.
	cfg, err := store.LoadConfig()
	if err != nil {
		cfg = &store.Config{}
	}

	theme := strings.TrimSpace(app.Theme)
	if theme == "" {
		theme = strings.TrimSpace(cfg.Theme)
	}
	theme, err = normalizeTheme(theme)
	if err != nil {
		return tui.Options{}, err
	}

	startDir := strings.TrimSpace(app.Dir)
	if startDir == "" {
		startDir = strings.TrimSpace(cfg.StartDir)
	}
	if startDir != "" {
		if fi, err := os.Stat(startDir); err != nil || !fi.IsDir() {
			return tui.Options{}, fmt.Errorf("start dir is not a directory: %s", startDir)
		}
	}

	opts := tui.Options{
		Files:        files,
		Theme:        theme,
		StartDir:     startDir,
		RecentLimit:  cfg.EffectiveRecentLimit(),
		DebugLogPath: strings.TrimSpace(app.DebugLogPath),
	}
	if r, err := store.DefaultRecent(); err == nil {
		opts.Recent = &r
	}
	return opts, nil
}

func normalizeTheme(s string) (string, error) {
	switch v := strings.ToLower(strings.TrimSpace(s)); v {
	case "":
		return "auto", nil
	case "light", "dark", "auto":
		return v, nil
	default:
		return "", errInvalidValue("theme", s, "light|dark|auto")
	}
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
