package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/amonks/taskcli/internal/config"
	"github.com/amonks/taskcli/internal/paths"
	"github.com/amonks/taskcli/internal/tasklog"
	"github.com/amonks/taskcli/task"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// loadConfig resolves configuration for cmd, applying --file and --log-level.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cwd, err := paths.WorkingDir()
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(cwd)
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("file") {
		if strings.TrimSpace(rootFile) == "" {
			return nil, newUsageError("--file must not be empty")
		}
		path, err := paths.Resolve(rootFile, cwd)
		if err != nil {
			return nil, err
		}
		cfg.Storage.Path = path
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Log.ConsoleLevel = rootLogLevel
	}
	return cfg, nil
}

func openLogger(cmd *cobra.Command, cfg *config.Config) (*tasklog.Logger, error) {
	dir := cfg.Log.Dir
	if dir == config.LogDisabled {
		dir = ""
	}
	logger, err := tasklog.New(tasklog.Options{
		Dir:          dir,
		Level:        cfg.Log.Level,
		ConsoleLevel: cfg.Log.ConsoleLevel,
		Console:      cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, fmt.Errorf("configure logging: %w", err)
	}
	return logger, nil
}

// withStore opens the configured task store, runs fn, and flushes the log.
func withStore(cmd *cobra.Command, args []string, fn func(store *task.Store) error) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, err := openLogger(cmd, cfg)
	if err != nil {
		return err
	}
	defer logger.Close()

	logger.Debug("running command",
		zap.String("command", cmd.CommandPath()),
		zap.Strings("args", args))

	store := task.Open(cfg.Storage.Path, task.OpenOptions{Logger: logger.Logger})
	if err := fn(store); err != nil {
		logger.Debug("command failed", zap.Error(err))
		return err
	}
	return nil
}

// parseTaskID parses a positive task ID argument.
func parseTaskID(value string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || id <= 0 {
		return 0, newUsageError("invalid task id %q: must be a positive integer", value)
	}
	return id, nil
}

// resolveDescription joins description words, reading stdin when the only
// word is "-".
func resolveDescription(args []string, reader io.Reader) (string, error) {
	if len(args) != 1 || args[0] != "-" {
		return strings.Join(args, " "), nil
	}

	input, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("read description from stdin: %w", err)
	}
	return strings.TrimRight(string(input), "\r\n"), nil
}
