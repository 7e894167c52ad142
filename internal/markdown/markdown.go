// Package markdown renders task descriptions for the terminal.
package markdown

import (
	"strings"
	"sync"

	internalstrings "github.com/amonks/taskcli/internal/strings"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
)

var (
	rendererMu sync.Mutex
	renderers  = map[int]*glamour.TermRenderer{}
)

// Render formats markdown text to fit width columns, indenting every line
// by indentBy spaces. Blank input renders as "".
func Render(input string, width, indentBy int) string {
	value := internalstrings.NormalizeNewlines(input)
	value = internalstrings.TrimTrailingNewlines(value)
	if strings.TrimSpace(value) == "" {
		return ""
	}
	if indentBy < 0 {
		indentBy = 0
	}
	renderWidth := width - indentBy
	if renderWidth < 1 {
		renderWidth = 1
	}

	rendered := wordwrap.String(value, renderWidth)
	if renderer := termRenderer(renderWidth); renderer != nil {
		if formatted, err := renderer.Render(value); err == nil {
			rendered = formatted
		}
	}
	rendered = trimBlankLines(rendered)
	if rendered == "" {
		return ""
	}
	return indent.String(rendered, uint(indentBy))
}

func termRenderer(width int) *glamour.TermRenderer {
	rendererMu.Lock()
	defer rendererMu.Unlock()
	if cached, ok := renderers[width]; ok {
		return cached
	}
	style := styles.ASCIIStyleConfig
	style.Document.Margin = uintPtr(0)
	style.Item.BlockPrefix = "- "
	created, err := glamour.NewTermRenderer(
		glamour.WithStyles(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}
	renderers[width] = created
	return created
}

// trimBlankLines drops leading and trailing blank lines and trailing spaces
// glamour pads lines with.
func trimBlankLines(value string) string {
	lines := strings.Split(value, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	start, end := 0, len(lines)
	for start < end && lines[start] == "" {
		start++
	}
	for end > start && lines[end-1] == "" {
		end--
	}
	return strings.Join(lines[start:end], "\n")
}

func uintPtr(value uint) *uint {
	return &value
}
