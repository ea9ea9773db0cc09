package tui

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"notepad/internal/editor"
)

// The text area drops control runes and expands tabs, so tabs travel
// through it as a private-use rune and are drawn as tabGlyph.
const (
	tabMark  = '\ue000'
	tabGlyph = "→"
)

// toEditable converts document text into the text area's representation.
// It fails for text that could not be written back unchanged.
func toEditable(text, eol string) (string, error) {
	if eol == editor.CRLF {
		text = strings.ReplaceAll(text, "\r\n", "\n")
	}
	var b strings.Builder
	b.Grow(len(text))
	line := 1
	for _, r := range text {
		switch {
		case r == '\n':
			line++
		case r == '\t':
			r = tabMark
		case r == tabMark:
			return "", fmt.Errorf("line %d holds U+E000", line)
		case r == utf8.RuneError:
			return "", fmt.Errorf("line %d holds U+FFFD", line)
		case r == '\r':
			return "", fmt.Errorf("line %d holds a bare carriage return", line)
		case unicode.IsControl(r):
			return "", fmt.Errorf("line %d holds control character %U", line, r)
		}
		b.WriteRune(r)
	}
	return b.String(), nil
}

// fromEditable is the inverse of toEditable.
func fromEditable(value, eol string) string {
	value = strings.ReplaceAll(value, string(tabMark), "\t")
	if eol == editor.CRLF {
		value = strings.ReplaceAll(value, "\n", "\r\n")
	}
	return value
}

// editableRunes prepares typed or pasted runes for the text area.
func editableRunes(rs []rune) []rune {
	out := rs[:0:0]
	for i, r := range rs {
		switch {
		case r == '\t':
			out = append(out, tabMark)
		case r == '\r' && i+1 < len(rs) && rs[i+1] == '\n':
		default:
			out = append(out, r)
		}
	}
	return out
}
