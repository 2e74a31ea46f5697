package navideck

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
)

// Renderer turns slide markdown into display lines.
type Renderer interface {
	Render(markdown string) ([]string, error)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(markdown string) ([]string, error)

// Render calls f.
func (f RendererFunc) Render(markdown string) ([]string, error) { return f(markdown) }

// ANSIRenderer renders slides to ANSI using glamour.
type ANSIRenderer struct {
	style    ansi.StyleConfig
	wordWrap int
}

func uintPtr(v uint) *uint {
	return &v
}

// NewANSIRenderer creates a renderer for the named style: "dark", "light" or
// "auto". "auto" looks at COLORFGBG and falls back to dark.
func NewANSIRenderer(styleName string) *ANSIRenderer {
	var style ansi.StyleConfig

	switch styleName {
	case "light":
		style = styles.LightStyleConfig
	case "auto":
		style = StyleFromEnvironment()
	default:
		style = styles.DarkStyleConfig
	}

	// slides are framed by the view, not by the document
	style.Document.Margin = uintPtr(0)
	style.CodeBlock.Margin = uintPtr(0)

	return &ANSIRenderer{style: style}
}

// StyleFromEnvironment picks light or dark from COLORFGBG ("fg;bg").
// A background color >= 8 is a light terminal.
func StyleFromEnvironment() ansi.StyleConfig {
	parts := strings.Split(os.Getenv("COLORFGBG"), ";")
	if len(parts) < 2 {
		return styles.DarkStyleConfig
	}
	bg, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1]))
	if err != nil || bg < 8 {
		return styles.DarkStyleConfig
	}
	return styles.LightStyleConfig
}

// WithWordWrap sets the wrap column (0 disables wrapping).
func (r *ANSIRenderer) WithWordWrap(cols int) *ANSIRenderer {
	r.wordWrap = cols
	return r
}

// Render renders markdown. On failure the raw markdown lines are returned
// along with the error so the caller can still show something.
func (r *ANSIRenderer) Render(markdown string) ([]string, error) {
	tr, err := glamour.NewTermRenderer(
		glamour.WithStyles(r.style),
		glamour.WithWordWrap(r.wordWrap),
	)
	if err != nil {
		return strings.Split(markdown, "\n"), err
	}

	out, err := tr.Render(markdown)
	if err != nil {
		return strings.Split(markdown, "\n"), err
	}
	return strings.Split(strings.TrimRight(out, "\n"), "\n"), nil
}
