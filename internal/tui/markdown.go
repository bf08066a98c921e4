package tui

import (
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
)

var (
	mdRendererMu sync.Mutex
	// Renderers are cached per wrap width. Auto-styling would query the
	// terminal, which can block; a fixed style keeps rendering predictable.
	mdRenderers = map[string]*glamour.TermRenderer{}
)

// renderMarkdown renders the free-text note. It falls back to the raw text
// when glamour cannot render it.
func renderMarkdown(md string, width int) string {
	md = strings.TrimSpace(md)
	if md == "" {
		return ""
	}
	if width < 10 {
		width = 10
	}

	name, cfg := markdownStyle()
	key := name + ":" + strconv.Itoa(width)

	mdRendererMu.Lock()
	r := mdRenderers[key]
	if r == nil {
		rr, err := glamour.NewTermRenderer(
			glamour.WithStyles(cfg),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			mdRendererMu.Unlock()
			return md
		}
		mdRenderers[key] = rr
		r = rr
	}
	mdRendererMu.Unlock()

	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.Trim(out, "\n")
}

func markdownStyle() (string, ansi.StyleConfig) {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		return "notty", noMargin(styles.NoTTYStyleConfig)
	}
	return "dark", noMargin(styles.DarkStyleConfig)
}

// noMargin drops the document margin; the note pane has its own border.
func noMargin(cfg ansi.StyleConfig) ansi.StyleConfig {
	zero := uint(0)
	cfg.Document.Margin = &zero
	cfg.Document.BlockPrefix = ""
	cfg.Document.BlockSuffix = ""
	return cfg
}
