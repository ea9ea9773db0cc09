package tui

import (
	"strings"

	"notepad/internal/editor"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const (
	maxTabLabelWidth = 24
	tabCloseGlyph    = "×"
	tabSeparator     = "│"
	tabModifiedMark  = "*"
)

type tabHit int

const (
	tabHitNone tabHit = iota
	tabHitActivate
	tabHitClose
)

// tabLabel is what a tab shows: the document name plus an unsaved marker.
type tabLabel struct {
	name     string
	modified bool
}

// tabSpan is the cell geometry of one visible tab: " name* × ".
type tabSpan struct {
	index  int
	x      int
	width  int
	closeX int
	name   string
}

func labelsFor(docs []*editor.Document) []tabLabel {
	out := make([]tabLabel, 0, len(docs))
	for _, d := range docs {
		out = append(out, tabLabel{name: d.Name(), modified: d.Modified()})
	}
	return out
}

func (l tabLabel) text() string {
	name := ansi.Truncate(l.name, maxTabLabelWidth, "…")
	if l.modified {
		name += tabModifiedMark
	}
	return name
}

func tabCellWidth(l tabLabel) int {
	// leading space, label, space, close glyph, trailing space
	return 1 + ansi.StringWidth(l.text()) + 1 + ansi.StringWidth(tabCloseGlyph) + 1
}

// layoutTabs places tabs left to right within width cells, scrolling so the
// active tab is always fully visible. Tabs that don't fit are omitted.
func layoutTabs(labels []tabLabel, active, width int) []tabSpan {
	if len(labels) == 0 || width <= 0 {
		return nil
	}
	if active < 0 || active >= len(labels) {
		active = 0
	}
	sepW := ansi.StringWidth(tabSeparator)

	widths := make([]int, len(labels))
	for i, l := range labels {
		widths[i] = tabCellWidth(l)
	}

	first := 0
	for first < active {
		used := 0
		for i := first; i <= active; i++ {
			used += widths[i]
			if i > first {
				used += sepW
			}
		}
		if used <= width {
			break
		}
		first++
	}

	var spans []tabSpan
	x := 0
	for i := first; i < len(labels); i++ {
		if i > first {
			x += sepW
		}
		if x+widths[i] > width {
			break
		}
		text := labels[i].text()
		spans = append(spans, tabSpan{
			index:  i,
			x:      x,
			width:  widths[i],
			closeX: x + 1 + ansi.StringWidth(text) + 1,
			name:   text,
		})
		x += widths[i]
	}
	return spans
}

// hitTab maps a click column to a tab and the part of it that was hit.
func hitTab(spans []tabSpan, x int) (int, tabHit) {
	for _, s := range spans {
		if x < s.x || x >= s.x+s.width {
			continue
		}
		if x >= s.closeX && x < s.closeX+ansi.StringWidth(tabCloseGlyph) {
			return s.index, tabHitClose
		}
		return s.index, tabHitActivate
	}
	return -1, tabHitNone
}

func renderTabStrip(spans []tabSpan, labels []tabLabel, active, width int, p palette) string {
	var b strings.Builder
	used := 0
	for n, s := range spans {
		if n > 0 {
			b.WriteString(p.tabStripFill().Foreground(p.c(colorMuted)).Render(tabSeparator))
			used += ansi.StringWidth(tabSeparator)
		}
		isActive := s.index == active
		name := ansi.Truncate(labels[s.index].name, maxTabLabelWidth, "…")
		b.WriteString(p.tab(isActive).Render(" " + name))
		if labels[s.index].modified {
			b.WriteString(p.modifiedMark(isActive).Render(tabModifiedMark))
		}
		b.WriteString(p.tab(isActive).Render(" "))
		b.WriteString(p.tabClose(isActive).Render(tabCloseGlyph))
		b.WriteString(p.tab(isActive).Render(" "))
		used += s.width
	}
	if width > used {
		b.WriteString(p.tabStripFill().Render(strings.Repeat(" ", width-used)))
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(b.String())
}
