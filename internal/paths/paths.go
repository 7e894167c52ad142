package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// AppName names the per-user directories owned by task-cli.
const AppName = "task-cli"

// HomeDir returns the current user's home directory.
func HomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return home, nil
}

// WorkingDir returns the current working directory.
func WorkingDir() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	return cwd, nil
}

// DefaultStateDir returns the default task-cli state directory.
func DefaultStateDir() (string, error) {
	home, err := HomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, ".local", "state", AppName), nil
}

// DefaultLogDir returns the default directory for daily log files.
func DefaultLogDir() (string, error) {
	stateDir, err := DefaultStateDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(stateDir, "logs"), nil
}

// DefaultConfigPath returns the path of the global config file.
func DefaultConfigPath() (string, error) {
	home, err := HomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, ".config", AppName, "config.toml"), nil
}

// Resolve expands a leading ~/ and makes path absolute relative to base.
func Resolve(path, base string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := HomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	if filepath.IsAbs(path) {
		return filepath.Clean(path), nil
	}
	return filepath.Join(base, path), nil
}
