package editor

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/BurntSushi/toml"
	"github.com/amonks/taskcli/task"
)

// TaskData is rendered into the file the user edits.
type TaskData struct {
	// IsUpdate is true when editing an existing task.
	IsUpdate bool
	// ID is the task ID (only for updates).
	ID int
	// Status is the task status (only for updates).
	Status string
	// Description is the task description.
	Description string
}

// DataForNewTask returns TaskData for creating a task with an optional
// starting description.
func DataForNewTask(description string) TaskData {
	return TaskData{Description: description}
}

// DataFromTask creates TaskData from an existing task for editing.
func DataFromTask(t *task.Task) TaskData {
	return TaskData{
		IsUpdate:    true,
		ID:          t.ID,
		Status:      t.Status.String(),
		Description: t.Description,
	}
}

var taskTemplate = template.Must(template.New("task").Parse(`{{- if .IsUpdate -}}
# task {{ .ID }}
status = {{ printf "%q" .Status }} # todo, in-progress, done
{{- else -}}
# new task: write the description below the line
{{- end }}
---
{{ .Description }}
`))

// RenderTaskTOML renders the task data for editing.
func RenderTaskTOML(data TaskData) (string, error) {
	var buf bytes.Buffer
	if err := taskTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render template: %w", err)
	}
	return buf.String(), nil
}

// ParsedTask is the result of an editing session.
type ParsedTask struct {
	// Status is nil when the frontmatter does not set one.
	Status      *task.Status
	Description string
}

type frontmatter struct {
	Status *string `toml:"status"`
}

// ParseTaskTOML parses edited content: TOML frontmatter, a "---" line,
// then the description.
func ParseTaskTOML(content string) (*ParsedTask, error) {
	head, body := splitFrontmatter(content)

	var fm frontmatter
	meta, err := toml.Decode(head, &fm)
	if err != nil {
		return nil, fmt.Errorf("parse TOML: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("parse TOML: unknown key %s", undecoded[0])
	}

	parsed := ParsedTask{Description: strings.TrimSpace(body)}
	if fm.Status != nil {
		status, err := task.ParseStatus(*fm.Status)
		if err != nil {
			return nil, err
		}
		parsed.Status = &status
	}
	if err := task.ValidateDescription(parsed.Description); err != nil {
		return nil, err
	}
	return &parsed, nil
}

func splitFrontmatter(content string) (string, string) {
	content = strings.TrimLeft(content, "\n")
	if content == "" {
		return "", ""
	}

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) == "---" {
			return strings.Join(lines[:i], "\n"), strings.Join(lines[i+1:], "\n")
		}
	}
	// No separator: the whole file is the description.
	return "", content
}

func createTaskTempFile() (*os.File, error) {
	return os.CreateTemp("", "task-cli-*.md")
}

// EditTask opens the editor with data and returns the parsed result.
func EditTask(data TaskData) (*ParsedTask, error) {
	content, err := RenderTaskTOML(data)
	if err != nil {
		return nil, err
	}

	tmpfile, err := createTaskTempFile()
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpfile.Name()
	defer os.Remove(tmpPath)

	if _, err := tmpfile.WriteString(content); err != nil {
		tmpfile.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	if err := tmpfile.Close(); err != nil {
		return nil, fmt.Errorf("close temp file: %w", err)
	}

	if err := Edit(tmpPath); err != nil {
		return nil, err
	}

	edited, err := os.ReadFile(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("read edited file: %w", err)
	}

	return ParseTaskTOML(string(edited))
}
