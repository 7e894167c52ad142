package task

import (
	"errors"
	"fmt"

	internalstrings "github.com/amonks/taskcli/internal/strings"
)

var (
	// ErrAlreadyExists is returned when initializing over an existing document.
	ErrAlreadyExists = errors.New("task document already exists")

	// ErrNotFound is returned when a task with the given ID doesn't exist.
	ErrNotFound = errors.New("task not found")

	// ErrInvalidInput is returned when a description is empty or blank.
	ErrInvalidInput = errors.New("description cannot be empty")

	// ErrInvalidStatus is returned when a status is not todo, in-progress, or done.
	ErrInvalidStatus = errors.New("invalid status")

	// ErrCorruptDocument is returned when the document exists but cannot be parsed.
	ErrCorruptDocument = errors.New("corrupt task document")

	// ErrIOFailure is returned when the document cannot be read or written.
	ErrIOFailure = errors.New("task document i/o failure")
)

// ValidateDescription checks that a description has visible content.
func ValidateDescription(description string) error {
	if internalstrings.IsBlank(description) {
		return ErrInvalidInput
	}
	return nil
}

// ValidateTask checks if a task struct is valid.
func ValidateTask(t *Task) error {
	if t.ID <= 0 {
		return fmt.Errorf("id must be positive, got %d", t.ID)
	}
	if err := ValidateDescription(t.Description); err != nil {
		return fmt.Errorf("task %d: %w", t.ID, err)
	}
	if !t.Status.IsValid() {
		return fmt.Errorf("task %d: %w: %s", t.ID, ErrInvalidStatus, t.Status)
	}
	if t.CreatedAt.IsZero() {
		return fmt.Errorf("task %d: created_at is required", t.ID)
	}
	if t.UpdatedAt.Before(t.CreatedAt) {
		return fmt.Errorf("task %d: updated_at %s is before created_at %s",
			t.ID, t.UpdatedAt.Format(timestampLayout), t.CreatedAt.Format(timestampLayout))
	}
	return nil
}

// Validate checks every task and the collection-wide ID invariants.
func (c *Collection) Validate() error {
	seen := make(map[int]struct{}, len(c.Tasks))
	for i := range c.Tasks {
		t := &c.Tasks[i]
		if err := ValidateTask(t); err != nil {
			return err
		}
		if _, dup := seen[t.ID]; dup {
			return fmt.Errorf("duplicate task id %d", t.ID)
		}
		seen[t.ID] = struct{}{}
	}
	if c.LastAssignedID < 0 {
		return fmt.Errorf("last_assigned_id must not be negative, got %d", c.LastAssignedID)
	}
	if max := c.MaxID(); c.LastAssignedID < max {
		return fmt.Errorf("last_assigned_id %d is below highest task id %d", c.LastAssignedID, max)
	}
	return nil
}
