// Package task implements a single-user task tracker persisted in one JSON document.
//
// The whole collection is read, modified and rewritten on every mutation.
// The public API mirrors the CLI commands:
//   - Initialize, Load, Save, Mutate for the document lifecycle
//   - Add, Update, SetStatus, Delete for task mutations
//   - List, Show, Counts for querying
package task

import (
	"fmt"
	"strings"

	"github.com/amonks/taskcli/internal/validation"
)

// Status represents the state of a task.
type Status uint8

const (
	// StatusTodo indicates the task has not been started.
	StatusTodo Status = iota + 1

	// StatusInProgress indicates the task is being worked on.
	StatusInProgress

	// StatusDone indicates the task is finished.
	StatusDone
)

var statusNames = map[Status]string{
	StatusTodo:       "todo",
	StatusInProgress: "in-progress",
	StatusDone:       "done",
}

// Older documents spell in-progress differently.
var statusAliases = map[string]Status{
	"progress":    StatusInProgress,
	"in_progress": StatusInProgress,
	"inprogress":  StatusInProgress,
}

// ValidStatuses returns all valid status values in display order.
func ValidStatuses() []Status {
	return []Status{StatusTodo, StatusInProgress, StatusDone}
}

// IsValid returns true if the status is a known valid value.
func (s Status) IsValid() bool {
	_, ok := statusNames[s]
	return ok
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Status(%d)", uint8(s))
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	if !s.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidStatus, uint8(s))
	}
	return []byte(statusNames[s]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Status) UnmarshalText(text []byte) error {
	parsed, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseStatus converts user or document text into a Status.
func ParseStatus(value string) (Status, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	for status, name := range statusNames {
		if name == normalized {
			return status, nil
		}
	}
	if status, ok := statusAliases[normalized]; ok {
		return status, nil
	}
	return 0, validation.FormatInvalidValueError(ErrInvalidStatus, value, ValidStatuses())
}

// Filter selects tasks by status when listing.
type Filter uint8

const (
	// FilterAll matches every task.
	FilterAll Filter = iota
	// FilterTodo matches tasks that have not been started.
	FilterTodo
	// FilterInProgress matches tasks being worked on.
	FilterInProgress
	// FilterDone matches completed tasks.
	FilterDone
)

// ParseFilter converts a filter name into a Filter. The empty string means all.
func ParseFilter(value string) (Filter, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	if normalized == "" || normalized == "all" {
		return FilterAll, nil
	}
	status, err := ParseStatus(normalized)
	if err != nil {
		return FilterAll, validation.FormatInvalidValueError(ErrInvalidStatus, value, validFilters())
	}
	return FilterForStatus(status), nil
}

// FilterForStatus returns the filter matching exactly one status.
func FilterForStatus(status Status) Filter {
	switch status {
	case StatusTodo:
		return FilterTodo
	case StatusInProgress:
		return FilterInProgress
	case StatusDone:
		return FilterDone
	default:
		return FilterAll
	}
}

// Match reports whether the task passes the filter.
func (f Filter) Match(t Task) bool {
	switch f {
	case FilterTodo:
		return t.Status == StatusTodo
	case FilterInProgress:
		return t.Status == StatusInProgress
	case FilterDone:
		return t.Status == StatusDone
	default:
		return true
	}
}

func (f Filter) String() string {
	switch f {
	case FilterTodo:
		return StatusTodo.String()
	case FilterInProgress:
		return StatusInProgress.String()
	case FilterDone:
		return StatusDone.String()
	default:
		return "all"
	}
}

func validFilters() []Filter {
	return []Filter{FilterAll, FilterTodo, FilterInProgress, FilterDone}
}
