package cli

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"notepad/internal/store"

	"github.com/spf13/cobra"
)

var configKeys = []string{"theme", "startDir", "recentLimit"}

// configView renders the config file with every key present.
type configView struct {
	Path string       `json:"path"`
	Data store.Config `json:"data"`
}

func (v configView) Lines() []string {
	return []string{
		"theme: " + v.Data.Theme,
		"startDir: " + v.Data.StartDir,
		fmt.Sprintf("recentLimit: %d", v.Data.RecentLimit),
	}
}

// setConfigValue validates value and stores it under key. An empty value
// resets the key to its default.
func setConfigValue(cfg *store.Config, key, value string) error {
	value = strings.TrimSpace(value)
	switch key {
	case "theme":
		if value == "" {
			cfg.Theme = ""
			return nil
		}
		theme, err := normalizeTheme(value)
		if err != nil {
			return err
		}
		cfg.Theme = theme
	case "startDir":
		if value == "" {
			cfg.StartDir = ""
			return nil
		}
		abs, err := filepath.Abs(value)
		if err != nil {
			return err
		}
		cfg.StartDir = abs
	case "recentLimit":
		if value == "" {
			cfg.RecentLimit = 0
			return nil
		}
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return errInvalidValue("recentLimit", value, "a number >= 1")
		}
		cfg.RecentLimit = n
	default:
		return errInvalidValue("config key", key, strings.Join(configKeys, "|"))
	}
	return nil
}

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change ~/.notepad/config.json",
	}

	show := func(cmd *cobra.Command, cfg *store.Config) error {
		path, err := store.ConfigPath()
		if err != nil {
			return writeErr(cmd, err)
		}
		return writeOut(cmd, app, configView{Path: path, Data: *cfg})
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the stored settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := store.LoadConfig()
			if err != nil {
				return writeErr(cmd, err)
			}
			return show(cmd, cfg)
		},
	}

	setCmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Store a setting (theme, startDir, recentLimit)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := store.LoadConfig()
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := setConfigValue(cfg, args[0], args[1]); err != nil {
				return writeErr(cmd, err)
			}
			if err := store.SaveConfig(cfg); err != nil {
				return writeErr(cmd, err)
			}
			return show(cmd, cfg)
		},
	}

	unsetCmd := &cobra.Command{
		Use:   "unset <key>",
		Short: "Reset a setting to its default",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := store.LoadConfig()
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := setConfigValue(cfg, args[0], ""); err != nil {
				return writeErr(cmd, err)
			}
			if err := store.SaveConfig(cfg); err != nil {
				return writeErr(cmd, err)
			}
			return show(cmd, cfg)
		},
	}

	cmd.AddCommand(showCmd)
	cmd.AddCommand(setCmd)
	cmd.AddCommand(unsetCmd)
	return cmd
}
