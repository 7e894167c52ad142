package main

import (
	"errors"
	"fmt"

	"github.com/amonks/taskcli/task"
	"github.com/spf13/cobra"
)

const (
	exitFailure       = 1
	exitUsage         = 2
	exitNotFound      = 3
	exitAlreadyExists = 4
	exitCorrupt       = 5
	exitIOFailure     = 6
)

// usageError marks a malformed invocation.
type usageError struct {
	err error
}

func (e usageError) Error() string { return e.err.Error() }

func (e usageError) Unwrap() error { return e.err }

func (e usageError) ExitCode() int { return exitUsage }

func newUsageError(format string, args ...any) error {
	return usageError{err: fmt.Errorf(format, args...)}
}

// usageArgs reports argument validation failures as usage errors.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return usageError{err: err}
		}
		return nil
	}
}

// exitCode maps an error returned by a command to the process exit status.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr interface{ ExitCode() int }
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	switch {
	case errors.Is(err, task.ErrInvalidInput), errors.Is(err, task.ErrInvalidStatus):
		return exitUsage
	case errors.Is(err, task.ErrNotFound):
		return exitNotFound
	case errors.Is(err, task.ErrAlreadyExists):
		return exitAlreadyExists
	case errors.Is(err, task.ErrCorruptDocument):
		return exitCorrupt
	case errors.Is(err, task.ErrIOFailure):
		return exitIOFailure
	default:
		return exitFailure
	}
}
