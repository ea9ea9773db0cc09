package cli

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"notepad/internal/model"
	"notepad/internal/store"

	"github.com/spf13/cobra"
)

// recentList renders as {"data": [...]} in JSON and one file per line in text.
type recentList struct {
	Data []model.RecentFile `json:"data"`
}

func (l recentList) Lines() []string {
	out := make([]string, 0, len(l.Data))
	for _, f := range l.Data {
		out = append(out, fmt.Sprintf("%s\t%d\t%s", f.LastUsed.Local().Format(time.DateTime), f.Opens, f.Path))
	}
	return out
}

type recentResult struct {
	Data map[string]any `json:"data"`
}

func (r recentResult) Lines() []string {
	keys := []string{"path", "forgotten", "cleared"}
	var out []string
	for _, k := range keys {
		if v, ok := r.Data[k]; ok {
			out = append(out, fmt.Sprintf("%s: %v", k, v))
		}
	}
	return out
}

func newRecentCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recent",
		Short: "Inspect the recent-files history",
	}

	var limit int
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List recent files (newest first)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := store.DefaultRecent()
			if err != nil {
				return writeErr(cmd, err)
			}
			if limit < 0 {
				return writeErr(cmd, errInvalidValue("limit", fmt.Sprint(limit), "a number >= 0"))
			}
			if !cmd.Flags().Changed("limit") {
				if cfg, err := store.LoadConfig(); err == nil {
					limit = cfg.EffectiveRecentLimit()
				}
			}
			files, err := r.List(cmd.Context(), limit)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, recentList{Data: files})
		},
	}
	listCmd.Flags().IntVar(&limit, "limit", store.DefaultRecentLimit, "Max files to return (0 = all; default from config recentLimit)")

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Forget every recent file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := store.DefaultRecent()
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := r.Clear(cmd.Context()); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, recentResult{Data: map[string]any{"cleared": true}})
		},
	}

	forgetCmd := &cobra.Command{
		Use:   "forget <path>",
		Short: "Remove one file from the history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := strings.TrimSpace(args[0])
			if abs, err := filepath.Abs(path); err == nil {
				path = abs
			}
			r, err := store.DefaultRecent()
			if err != nil {
				return writeErr(cmd, err)
			}
			ok, err := r.Forget(cmd.Context(), path)
			if err != nil {
				return writeErr(cmd, err)
			}
			if !ok {
				return writeErr(cmd, errNotFound("recent file", path))
			}
			return writeOut(cmd, app, recentResult{Data: map[string]any{"path": path, "forgotten": true}})
		},
	}

	cmd.AddCommand(listCmd)
	cmd.AddCommand(clearCmd)
	cmd.AddCommand(forgetCmd)
	return cmd
}
