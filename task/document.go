package task

import (
	"encoding/json"
	"fmt"
	"time"
)

const timestampLayout = time.RFC3339

// legacyTimestampLayout is the zone-less ISO-8601 form written by earlier
// versions of the tracker. Fractional seconds are accepted when parsing.
const legacyTimestampLayout = "2006-01-02T15:04:05"

// document mirrors the on-disk JSON. Pointer fields distinguish a missing
// key from a zero value so optional fields can be defaulted.
type document struct {
	SchemaVersion  *string         `json:"schema_version"`
	LegacyVersion  *string         `json:"version"`
	LastAssignedID *int            `json:"last_assigned_id"`
	Tasks          *[]documentTask `json:"tasks"`
}

type documentTask struct {
	ID          *int    `json:"id"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	CreatedAt   *string `json:"created_at"`
	UpdatedAt   *string `json:"updated_at"`
}

// decodeCollection parses document bytes into a validated collection.
// Every error it returns wraps ErrCorruptDocument.
func decodeCollection(data []byte) (*Collection, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptDocument, err)
	}
	if doc.Tasks == nil {
		return nil, fmt.Errorf("%w: missing tasks array", ErrCorruptDocument)
	}

	c := &Collection{Tasks: make([]Task, 0, len(*doc.Tasks))}
	switch {
	case doc.SchemaVersion != nil:
		c.SchemaVersion = *doc.SchemaVersion
	case doc.LegacyVersion != nil:
		c.SchemaVersion = *doc.LegacyVersion
	}

	for i, raw := range *doc.Tasks {
		t, err := raw.toTask()
		if err != nil {
			return nil, fmt.Errorf("%w: task #%d: %v", ErrCorruptDocument, i+1, err)
		}
		c.Tasks = append(c.Tasks, t)
	}

	max := c.MaxID()
	if doc.LastAssignedID != nil {
		if *doc.LastAssignedID < 0 {
			return nil, fmt.Errorf("%w: negative last_assigned_id %d", ErrCorruptDocument, *doc.LastAssignedID)
		}
		c.LastAssignedID = *doc.LastAssignedID
	}
	if c.LastAssignedID < max {
		c.LastAssignedID = max
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptDocument, err)
	}
	return c, nil
}

func (raw documentTask) toTask() (Task, error) {
	if raw.ID == nil {
		return Task{}, fmt.Errorf("missing id")
	}
	if raw.Description == nil {
		return Task{}, fmt.Errorf("id %d: missing description", *raw.ID)
	}
	if raw.Status == nil {
		return Task{}, fmt.Errorf("id %d: missing status", *raw.ID)
	}
	if raw.CreatedAt == nil {
		return Task{}, fmt.Errorf("id %d: missing created_at", *raw.ID)
	}

	status, err := ParseStatus(*raw.Status)
	if err != nil {
		return Task{}, fmt.Errorf("id %d: %v", *raw.ID, err)
	}
	createdAt, err := parseTimestamp(*raw.CreatedAt)
	if err != nil {
		return Task{}, fmt.Errorf("id %d: created_at: %v", *raw.ID, err)
	}
	updatedAt := createdAt
	if raw.UpdatedAt != nil {
		updatedAt, err = parseTimestamp(*raw.UpdatedAt)
		if err != nil {
			return Task{}, fmt.Errorf("id %d: updated_at: %v", *raw.ID, err)
		}
	}

	return Task{
		ID:          *raw.ID,
		Description: *raw.Description,
		Status:      status,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}, nil
}

func parseTimestamp(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation(legacyTimestampLayout, value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q", value)
	}
	return t, nil
}

// encodeCollection renders the collection as indented JSON with a trailing newline.
func encodeCollection(c *Collection) ([]byte, error) {
	out := *c
	if out.Tasks == nil {
		out.Tasks = []Task{}
	}
	data, err := json.MarshalIndent(&out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}
	return append(data, '\n'), nil
}
