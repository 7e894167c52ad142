package task

import (
	"fmt"
	"iter"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Add creates a new task with the given description and returns it.
func (s *Store) Add(description string) (*Task, error) {
	if err := ValidateDescription(description); err != nil {
		return nil, err
	}
	description = strings.TrimSpace(description)

	var created Task
	err := s.Mutate(func(c *Collection) error {
		now := s.now()
		created = Task{
			ID:          c.nextID(),
			Description: description,
			Status:      StatusTodo,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		c.Tasks = append(c.Tasks, created)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("added task", zap.Int("id", created.ID))
	return &created, nil
}

// Update replaces the description of a task. Its status is unchanged.
func (s *Store) Update(id int, description string) (*Task, error) {
	updated, err := s.mutateTask(id, func(t *Task) error {
		if err := ValidateDescription(description); err != nil {
			return err
		}
		t.Description = strings.TrimSpace(description)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("updated task", zap.Int("id", id))
	return updated, nil
}

// SetStatus moves a task to the given status. UpdatedAt is refreshed even
// when the task already has that status.
func (s *Store) SetStatus(id int, status Status) (*Task, error) {
	var previous Status
	updated, err := s.mutateTask(id, func(t *Task) error {
		if !status.IsValid() {
			return fmt.Errorf("%w: %s", ErrInvalidStatus, status)
		}
		previous = t.Status
		t.Status = status
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("set task status",
		zap.Int("id", id),
		zap.Stringer("from", previous),
		zap.Stringer("to", status))
	return updated, nil
}

// Delete removes a task and returns it. Its ID is never handed out again.
func (s *Store) Delete(id int) (*Task, error) {
	var deleted Task
	err := s.Mutate(func(c *Collection) error {
		i, ok := c.Find(id)
		if !ok {
			return fmt.Errorf("%w: %d", ErrNotFound, id)
		}
		deleted = c.Tasks[i]
		c.Tasks = slices.Delete(c.Tasks, i, i+1)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("deleted task", zap.Int("id", id))
	return &deleted, nil
}

// List returns the tasks matching filter in insertion order.
// The document is read once; the returned sequence walks that snapshot
// and may be ranged over any number of times.
func (s *Store) List(filter Filter) (iter.Seq[Task], error) {
	c, err := s.Load()
	if err != nil {
		return nil, err
	}

	tasks := c.Tasks
	return func(yield func(Task) bool) {
		for _, t := range tasks {
			if !filter.Match(t) {
				continue
			}
			if !yield(t) {
				return
			}
		}
	}, nil
}

// Show returns the task with the given ID.
func (s *Store) Show(id int) (*Task, error) {
	c, err := s.Load()
	if err != nil {
		return nil, err
	}

	i, ok := c.Find(id)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	t := c.Tasks[i]
	return &t, nil
}

// Counts returns the number of tasks in each status.
func (s *Store) Counts() (map[Status]int, error) {
	c, err := s.Load()
	if err != nil {
		return nil, err
	}

	counts := make(map[Status]int, len(statusNames))
	for _, status := range ValidStatuses() {
		counts[status] = 0
	}
	for _, t := range c.Tasks {
		counts[t.Status]++
	}
	return counts, nil
}

// mutateTask runs fn against the task with the given ID inside a single
// load-modify-save cycle and refreshes its UpdatedAt.
func (s *Store) mutateTask(id int, fn func(t *Task) error) (*Task, error) {
	var updated Task
	err := s.Mutate(func(c *Collection) error {
		i, ok := c.Find(id)
		if !ok {
			return fmt.Errorf("%w: %d", ErrNotFound, id)
		}
		t := &c.Tasks[i]
		if err := fn(t); err != nil {
			return err
		}
		touch(t, s.now())
		updated = *t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// touch refreshes UpdatedAt without letting it fall behind CreatedAt.
func touch(t *Task, now time.Time) {
	if now.Before(t.CreatedAt) {
		now = t.CreatedAt
	}
	t.UpdatedAt = now
}
