package main

import (
	"fmt"
	"strings"

	"github.com/amonks/taskcli/internal/markdown"
	"github.com/amonks/taskcli/internal/ui"
	"github.com/amonks/taskcli/task"
)

const (
	detailMaxWidth          = 100
	detailDescriptionIndent = 2
)

// formatTaskDetail renders one task for `show`.
func formatTaskDetail(t task.Task, width int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %d\n", ui.FormatLabel("ID:     "), t.ID)
	fmt.Fprintf(&b, "%s %s\n", ui.FormatLabel("Status: "), ui.FormatStatus(t.Status))
	fmt.Fprintf(&b, "%s %s\n", ui.FormatLabel("Created:"), ui.FormatTimestamp(t.CreatedAt))
	fmt.Fprintf(&b, "%s %s\n", ui.FormatLabel("Updated:"), ui.FormatTimestamp(t.UpdatedAt))

	description := markdown.Render(t.Description, width, detailDescriptionIndent)
	if description == "" {
		description = strings.Repeat(" ", detailDescriptionIndent) + "-"
	}
	fmt.Fprintf(&b, "\n%s\n%s\n", ui.FormatLabel("Description:"), description)
	return b.String()
}

func detailWidth() int {
	return min(ui.TerminalWidth(), detailMaxWidth)
}
