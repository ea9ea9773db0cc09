package tui

import (
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
)

var (
	mdRendererMu sync.Mutex
	// Cache renderers by wrap width + style. WithAutoStyle can trigger terminal
	// background queries that block on some terminals, so the style is always
	// explicit and follows the session theme.
	mdRenderers = map[string]*glamour.TermRenderer{}
)

// renderMarkdown renders md for the preview pane. On renderer failure the
// raw text is returned so the pane never goes blank.
func renderMarkdown(md string, width int, dark bool) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	if width < 10 {
		width = 10
	}

	style := styles.LightStyle
	if dark {
		style = styles.DarkStyle
	}
	key := style + ":" + strconv.Itoa(width)

	mdRendererMu.Lock()
	r := mdRenderers[key]
	mdRendererMu.Unlock()

	if r == nil {
		rr, err := glamour.NewTermRenderer(
			glamour.WithStyles(markdownStyleConfig(dark)),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return md
		}
		mdRendererMu.Lock()
		if existing := mdRenderers[key]; existing != nil {
			r = existing
		} else {
			mdRenderers[key] = rr
			r = rr
		}
		mdRendererMu.Unlock()
	}

	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}

func markdownStyleConfig(dark bool) ansi.StyleConfig {
	cfg := styles.LightStyleConfig
	if dark {
		cfg = styles.DarkStyleConfig
	}
	// The pane already has its own padding.
	zero := uint(0)
	cfg.Document.Margin = &zero
	return cfg
}

func isMarkdownPath(path string) bool {
	p := strings.ToLower(path)
	return strings.HasSuffix(p, ".md") || strings.HasSuffix(p, ".markdown")
}
