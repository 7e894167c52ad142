package task

import (
	"strconv"
	"strings"
	"time"
)

// SchemaVersion is written to every document this package saves.
const SchemaVersion = "1"

// Task represents a single tracked item.
type Task struct {
	// ID is a positive integer, unique within its collection and never reused.
	ID int `json:"id"`

	// Description is the non-empty text of the task.
	Description string `json:"description"`

	// Status is the current state of the task.
	Status Status `json:"status"`

	// CreatedAt is when the task was added.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is when the task was last modified.
	UpdatedAt time.Time `json:"updated_at"`
}

// Collection is the full set of tasks plus the bookkeeping persisted with them.
type Collection struct {
	// SchemaVersion records which version of the program wrote the document.
	SchemaVersion string `json:"schema_version"`

	// LastAssignedID is the highest ID ever handed out. It never decreases.
	LastAssignedID int `json:"last_assigned_id"`

	// Tasks are kept in insertion order.
	Tasks []Task `json:"tasks"`
}

// NewCollection returns an empty collection at the current schema version.
func NewCollection() *Collection {
	return &Collection{
		SchemaVersion: SchemaVersion,
		Tasks:         []Task{},
	}
}

// Find returns the index of the task with the given ID.
func (c *Collection) Find(id int) (int, bool) {
	for i := range c.Tasks {
		if c.Tasks[i].ID == id {
			return i, true
		}
	}
	return -1, false
}

// MaxID returns the largest task ID present, or 0 for an empty collection.
func (c *Collection) MaxID() int {
	max := 0
	for _, t := range c.Tasks {
		if t.ID > max {
			max = t.ID
		}
	}
	return max
}

// nextID advances the ID counter and returns the newly assigned ID.
func (c *Collection) nextID() int {
	if max := c.MaxID(); c.LastAssignedID < max {
		c.LastAssignedID = max
	}
	c.LastAssignedID++
	return c.LastAssignedID
}

// schemaNewer reports whether version is a later dotted version than current.
// Missing components count as zero, so "1.0" equals "1". Versions that do
// not parse as numbers are never newer.
func schemaNewer(version, current string) bool {
	if version == "" {
		return false
	}
	a := strings.Split(version, ".")
	b := strings.Split(current, ".")
	for i := range max(len(a), len(b)) {
		x, okA := versionPart(a, i)
		y, okB := versionPart(b, i)
		if !okA || !okB {
			return false
		}
		if x != y {
			return x > y
		}
	}
	return false
}

func versionPart(parts []string, i int) (int, bool) {
	if i >= len(parts) {
		return 0, true
	}
	n, err := strconv.Atoi(parts[i])
	return n, err == nil
}
