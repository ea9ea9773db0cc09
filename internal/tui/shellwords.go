package tui

import (
	"errors"
	"strings"
	"unicode"
)

var (
	errUnterminatedQuote = errors.New("unterminated quote")
	errTrailingBackslash = errors.New("trailing backslash")
)

// parseCommand splits a command line from an environment variable such as
// $VISUAL into argv. It follows POSIX sh word rules for quotes and
// backslashes; expansions are not performed.
func parseCommand(line string) ([]string, error) {
	var (
		args  []string
		word  strings.Builder
		inArg bool
		quote rune
	)
	rs := []rune(line)
	for i := 0; i < len(rs); i++ {
		r := rs[i]
		switch {
		case quote == '\'':
			if r == '\'' {
				quote = 0
			} else {
				word.WriteRune(r)
			}
		case quote == '"':
			switch {
			case r == '"':
				quote = 0
			case r == '\\' && i+1 < len(rs) && strings.ContainsRune("\"\\$`\n", rs[i+1]):
				i++
				if rs[i] != '\n' {
					word.WriteRune(rs[i])
				}
			default:
				word.WriteRune(r)
			}
		case r == '\'' || r == '"':
			quote = r
			inArg = true
		case r == '\\':
			if i+1 == len(rs) {
				return nil, errTrailingBackslash
			}
			i++
			if rs[i] != '\n' {
				word.WriteRune(rs[i])
				inArg = true
			}
		case unicode.IsSpace(r):
			if inArg {
				args = append(args, word.String())
				word.Reset()
				inArg = false
			}
		default:
			word.WriteRune(r)
			inArg = true
		}
	}
	if quote != 0 {
		return nil, errUnterminatedQuote
	}
	if inArg {
		args = append(args, word.String())
	}
	return args, nil
}
