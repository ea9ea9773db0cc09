package editor

import (
	"path/filepath"
	"strings"
)

// Line endings a document can be stored with.
const (
	LF   = "\n"
	CRLF = "\r\n"
)

// DetectLineEnding picks CRLF when every line break in text is "\r\n",
// and LF otherwise. Mixed files are treated as LF so stray carriage
// returns are kept as text.
func DetectLineEnding(text string) string {
	n := strings.Count(text, "\n")
	if n > 0 && strings.Count(text, "\r\n") == n {
		return CRLF
	}
	return LF
}

// Document is one open buffer, optionally backed by a file.
type Document struct {
	// Path is empty for untitled documents.
	Path string
	Text string
	// LineEnding is LF or CRLF; empty means LF.
	LineEnding string

	// saved is the text last read from or written to Path.
	saved string
}

func (d *Document) Untitled() bool { return d.Path == "" }

// Modified reports unsaved edits. Untitled documents count as modified once
// they hold any text.
func (d *Document) Modified() bool {
	return d.Text != d.saved
}

// Name is the short label used for tabs.
func (d *Document) Name() string {
	if d.Untitled() {
		return "Untitled"
	}
	return filepath.Base(d.Path)
}

func (d *Document) markSaved() { d.saved = d.Text }
