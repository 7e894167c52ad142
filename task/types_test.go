package task

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/matryer/is"
)

func TestParseStatus(t *testing.T) {
	is := is.New(t)

	cases := map[string]Status{
		"todo":        StatusTodo,
		"TODO":        StatusTodo,
		" done ":      StatusDone,
		"in-progress": StatusInProgress,
		"progress":    StatusInProgress,
		"in_progress": StatusInProgress,
	}
	for input, want := range cases {
		got, err := ParseStatus(input)
		is.NoErr(err)
		is.Equal(got, want)
	}

	for _, input := range []string{"", "bogus", "open", "closed"} {
		_, err := ParseStatus(input)
		is.True(errors.Is(err, ErrInvalidStatus))
	}
}

func TestStatus_IsValid(t *testing.T) {
	is := is.New(t)

	for _, status := range ValidStatuses() {
		is.True(status.IsValid())
	}
	is.True(!Status(0).IsValid())
	is.True(!Status(42).IsValid())
}

func TestStatus_Text(t *testing.T) {
	is := is.New(t)

	text, err := StatusInProgress.MarshalText()
	is.NoErr(err)
	is.Equal(string(text), "in-progress")

	_, err = Status(9).MarshalText()
	is.True(errors.Is(err, ErrInvalidStatus))

	var status Status
	is.NoErr(status.UnmarshalText([]byte("done")))
	is.Equal(status, StatusDone)
	is.True(errors.Is(status.UnmarshalText([]byte("nope")), ErrInvalidStatus))
}

func TestTask_JSONFieldNames(t *testing.T) {
	is := is.New(t)

	created := time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)
	data, err := json.Marshal(Task{ID: 1, Description: "Buy milk", Status: StatusDone, CreatedAt: created, UpdatedAt: created})
	is.NoErr(err)
	is.Equal(string(data), `{"id":1,"description":"Buy milk","status":"done","created_at":"2026-10-17T09:00:00Z","updated_at":"2026-10-17T09:00:00Z"}`)
}

func TestParseFilter(t *testing.T) {
	is := is.New(t)

	cases := map[string]Filter{
		"":            FilterAll,
		"all":         FilterAll,
		"ALL":         FilterAll,
		"todo":        FilterTodo,
		"in-progress": FilterInProgress,
		"done":        FilterDone,
	}
	for input, want := range cases {
		got, err := ParseFilter(input)
		is.NoErr(err)
		is.Equal(got, want)
	}

	_, err := ParseFilter("everything")
	is.True(errors.Is(err, ErrInvalidStatus))
}

func TestFilter_Match(t *testing.T) {
	is := is.New(t)

	todo := Task{Status: StatusTodo}
	done := Task{Status: StatusDone}

	is.True(FilterAll.Match(todo))
	is.True(FilterAll.Match(done))
	is.True(FilterTodo.Match(todo))
	is.True(!FilterTodo.Match(done))
	is.True(FilterDone.Match(done))
	is.True(!FilterInProgress.Match(done))
}

func TestCollection_Find(t *testing.T) {
	is := is.New(t)

	c := &Collection{Tasks: []Task{{ID: 3}, {ID: 7}}}

	i, ok := c.Find(7)
	is.True(ok)
	is.Equal(i, 1)

	_, ok = c.Find(4)
	is.True(!ok)
	is.Equal(c.MaxID(), 7)
	is.Equal(NewCollection().MaxID(), 0)
}

func TestCollection_NextIDNeverReuses(t *testing.T) {
	is := is.New(t)

	c := &Collection{LastAssignedID: 5, Tasks: []Task{{ID: 2}}}
	is.Equal(c.nextID(), 6)
	is.Equal(c.LastAssignedID, 6)

	// A counter that fell behind is raised past the highest id first.
	c = &Collection{LastAssignedID: 1, Tasks: []Task{{ID: 9}}}
	is.Equal(c.nextID(), 10)
}

func TestSchemaNewer(t *testing.T) {
	is := is.New(t)

	is.True(schemaNewer("2", "1"))
	is.True(schemaNewer("1.1", "1"))
	is.True(schemaNewer("10", "9"))
	is.True(!schemaNewer("1", "1"))
	is.True(!schemaNewer("1.0", "1"))
	is.True(!schemaNewer("", "1"))
	is.True(!schemaNewer("0.9", "1"))
	is.True(!schemaNewer("beta", "1"))
}

func TestParseStatus_ErrorListsValidStatuses(t *testing.T) {
	is := is.New(t)

	_, err := ParseStatus("someday")
	is.True(errors.Is(err, ErrInvalidStatus))
	is.Equal(err.Error(), `invalid status: "someday" (valid: todo, in-progress, done)`)

	_, err = ParseFilter("someday")
	is.Equal(err.Error(), `invalid status: "someday" (valid: all, todo, in-progress, done)`)
}
