// Package testsupport holds helpers shared by task-cli tests.
package testsupport

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/amonks/taskcli/task"
	"github.com/rogpeppe/go-internal/testscript"
)

var (
	buildOnce   sync.Once
	taskCLIPath string
	buildErr    error
)

// BuildTaskCLI builds the task-cli binary once and returns its path.
func BuildTaskCLI(t testing.TB) string {
	t.Helper()

	buildOnce.Do(func() {
		moduleRoot, err := findModuleRoot()
		if err != nil {
			buildErr = err
			return
		}

		binDir, err := os.MkdirTemp("", "task-cli-bin-")
		if err != nil {
			buildErr = err
			return
		}

		taskCLIPath = filepath.Join(binDir, "task-cli")
		cmd := exec.Command("go", "build", "-o", taskCLIPath, "./cmd/task-cli")
		cmd.Dir = moduleRoot
		output, err := cmd.CombinedOutput()
		if err != nil {
			buildErr = fmt.Errorf("build task-cli: %w: %s", err, strings.TrimSpace(string(output)))
		}
	})

	if buildErr != nil {
		t.Fatalf("%v", buildErr)
	}

	return taskCLIPath
}

// SetupScriptEnv points $TASK_CLI at the built binary and gives each script
// its own home directory with file logging disabled.
func SetupScriptEnv(t testing.TB, env *testscript.Env) error {
	t.Helper()

	env.Setenv("TASK_CLI", BuildTaskCLI(t))

	homeDir := filepath.Join(env.WorkDir, "home")
	if err := EnsureHomeDirs(homeDir); err != nil {
		return err
	}
	globalConfig := "[log]\ndir = \"-\"\n"
	if err := os.WriteFile(filepath.Join(homeDir, ".config", "task-cli", "config.toml"), []byte(globalConfig), 0o644); err != nil {
		return fmt.Errorf("write global config: %w", err)
	}
	env.Setenv("HOME", homeDir)
	env.Setenv("TASK_CLI_FILE", "")
	env.Setenv("NO_COLOR", "1")
	return nil
}

// CmdEnvSet stores the trimmed contents of a file in an env var.
func CmdEnvSet(ts *testscript.TestScript, neg bool, args []string) {
	if neg {
		ts.Fatalf("envset does not support negation")
	}
	if len(args) != 2 {
		ts.Fatalf("usage: envset VAR FILE")
	}

	value := strings.TrimSpace(ts.ReadFile(args[1]))
	ts.Setenv(args[0], value)
}

// CmdTaskID finds a task by description in a JSON listing and stores its
// ID in an env var.
func CmdTaskID(ts *testscript.TestScript, neg bool, args []string) {
	if neg {
		ts.Fatalf("taskid does not support negation")
	}
	if len(args) != 3 {
		ts.Fatalf("usage: taskid FILE DESCRIPTION VAR")
	}

	var items []task.Task
	data := ts.ReadFile(args[0])
	if err := json.Unmarshal([]byte(data), &items); err != nil {
		ts.Fatalf("parse task list: %v", err)
	}

	for _, item := range items {
		if item.Description == args[1] {
			ts.Setenv(args[2], strconv.Itoa(item.ID))
			return
		}
	}

	ts.Fatalf("task with description %q not found", args[1])
}

func findModuleRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("could not find module root (go.mod)")
		}
		dir = parent
	}
}
