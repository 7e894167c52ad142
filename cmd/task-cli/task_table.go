package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/amonks/taskcli/internal/ui"
	"github.com/amonks/taskcli/task"
)

func formatTaskTable(tasks []task.Task, now time.Time) string {
	if len(tasks) == 0 {
		return "No tasks found.\n"
	}

	builder := ui.NewTableBuilder([]string{"ID", "STATUS", "AGE", "UPDATED", "DESCRIPTION"}, len(tasks))
	for _, t := range tasks {
		builder.AddRow([]string{
			strconv.Itoa(t.ID),
			ui.StatusCheckbox(t.Status) + " " + ui.FormatStatus(t.Status),
			ui.FormatTimeAgeShort(t.CreatedAt, now),
			ui.FormatTimeAgo(t.UpdatedAt, now),
			ui.TruncateTableCell(t.Description),
		})
	}
	return builder.String()
}

// formatCounts summarizes the whole collection, regardless of filter.
func formatCounts(counts map[task.Status]int) string {
	total := 0
	parts := make([]string, 0, len(counts))
	for _, status := range task.ValidStatuses() {
		total += counts[status]
		parts = append(parts, fmt.Sprintf("%d %s", counts[status], status))
	}
	noun := "tasks"
	if total == 1 {
		noun = "task"
	}
	return fmt.Sprintf("%d %s: %s", total, noun, strings.Join(parts, ", "))
}
