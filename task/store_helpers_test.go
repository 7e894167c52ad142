package task

import (
	"path/filepath"
	"testing"
	"time"
)

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time {
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func newTestStore(t *testing.T) (*Store, *testClock) {
	t.Helper()

	clock := &testClock{now: time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)}
	path := filepath.Join(t.TempDir(), DefaultFile)
	return Open(path, OpenOptions{Now: clock.Now}), clock
}

func mustLoad(t *testing.T, store *Store) *Collection {
	t.Helper()

	c, err := store.Load()
	if err != nil {
		t.Fatalf("failed to load collection: %v", err)
	}
	return c
}

func mustAdd(t *testing.T, store *Store, description string) *Task {
	t.Helper()

	created, err := store.Add(description)
	if err != nil {
		t.Fatalf("failed to add %q: %v", description, err)
	}
	return created
}

func collect(t *testing.T, store *Store, filter Filter) []Task {
	t.Helper()

	seq, err := store.List(filter)
	if err != nil {
		t.Fatalf("failed to list %s: %v", filter, err)
	}
	var tasks []Task
	for item := range seq {
		tasks = append(tasks, item)
	}
	return tasks
}

func taskIDs(tasks []Task) []int {
	ids := make([]int, 0, len(tasks))
	for _, item := range tasks {
		ids = append(ids, item.ID)
	}
	return ids
}
