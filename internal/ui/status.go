package ui

import (
	"github.com/amonks/taskcli/task"
	"github.com/charmbracelet/lipgloss"
)

var (
	statusTodoStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	statusInProgressStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Bold(true)
	statusDoneStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	labelStyle            = lipgloss.NewStyle().Bold(true)
)

// FormatStatus returns the status name, colored when color is enabled.
func FormatStatus(status task.Status) string {
	return formatStatus(status, ANSIEnabled())
}

func formatStatus(status task.Status, color bool) string {
	name := status.String()
	if !color {
		return name
	}
	switch status {
	case task.StatusTodo:
		return statusTodoStyle.Render(name)
	case task.StatusInProgress:
		return statusInProgressStyle.Render(name)
	case task.StatusDone:
		return statusDoneStyle.Render(name)
	default:
		return name
	}
}

// FormatLabel renders a detail label, bold when color is enabled.
func FormatLabel(label string) string {
	if !ANSIEnabled() {
		return label
	}
	return labelStyle.Render(label)
}

// StatusCheckbox returns a one-character marker for the status.
func StatusCheckbox(status task.Status) string {
	switch status {
	case task.StatusDone:
		return "[x]"
	case task.StatusInProgress:
		return "[~]"
	default:
		return "[ ]"
	}
}
