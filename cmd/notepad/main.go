package main

import (
	"os"
	"strings"

	"notepad/internal/cli"
)

func isRegularFile(s string) bool {
	fi, err := os.Stat(s)
	return err == nil && fi.Mode().IsRegular()
}

func rewriteFileArgs(argv []string, isFile func(string) bool) []string {
	// `notepad recent` must open a file called "recent" when one exists.
	//
	// Cobra treats the first non-flag token as a subcommand, so an existing file in that
	// position gets a "--" in front of it, which ends subcommand lookup.
	if len(argv) < 2 {
		return argv
	}

	valueFlags := map[string]bool{
		"--theme":     true,
		"--dir":       true,
		"--debug-log": true,
		"--format":    true,
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		if a == "" {
			continue
		}
		if a == "--" {
			return argv
		}
		if strings.HasPrefix(a, "-") {
			if !strings.Contains(a, "=") && valueFlags[a] {
				i++
			}
			continue
		}

		// First positional token.
		if isFile(a) {
			out := make([]string, 0, len(argv)+1)
			out = append(out, argv[:i]...)
			out = append(out, "--")
			out = append(out, argv[i:]...)
			return out
		}
		return argv
	}

	return argv
}

func main() {
	os.Args = rewriteFileArgs(os.Args, isRegularFile)

	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
