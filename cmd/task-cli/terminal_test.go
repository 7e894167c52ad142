package main

import (
	"bytes"
	"io"
	"os/exec"
	"runtime"
	"strings"
	"testing"

	"github.com/amonks/taskcli/internal/testsupport"
	"github.com/creack/pty"
)

func TestListColorsStatusOnTerminal(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("pty not supported on windows")
	}

	dir := t.TempDir()
	env := taskCLIEnv(t, "TERM=xterm-256color")

	if output, code := runTaskCLI(t, dir, env, "add", "Buy", "milk"); code != 0 {
		t.Fatalf("add failed with %d: %s", code, output)
	}

	output := runOnTerminal(t, dir, env, "list")
	if !strings.Contains(output, "\x1b[") {
		t.Fatalf("expected ANSI escapes on a terminal, got %q", output)
	}
	if !strings.Contains(stripANSICodes(output), "todo") {
		t.Fatalf("expected status in output, got %q", output)
	}
}

func TestListPlainWhenPiped(t *testing.T) {
	dir := t.TempDir()
	env := taskCLIEnv(t, "TERM=xterm-256color")

	if output, code := runTaskCLI(t, dir, env, "add", "Buy", "milk"); code != 0 {
		t.Fatalf("add failed with %d: %s", code, output)
	}

	output, code := runTaskCLI(t, dir, env, "list")
	if code != 0 {
		t.Fatalf("list failed with %d: %s", code, output)
	}
	if strings.Contains(output, "\x1b[") {
		t.Fatalf("expected no ANSI escapes when piped, got %q", output)
	}
}

func runOnTerminal(t *testing.T, dir string, env []string, args ...string) string {
	t.Helper()

	cmd := exec.Command(testsupport.BuildTaskCLI(t), args...)
	cmd.Dir = dir
	cmd.Env = env

	ptmx, err := pty.Start(cmd)
	if err != nil {
		t.Skipf("start pty: %v", err)
	}
	defer ptmx.Close()

	var buf bytes.Buffer
	// Reading the pty returns an error once the child exits.
	_, _ = io.Copy(&buf, ptmx)
	if err := cmd.Wait(); err != nil {
		t.Fatalf("task-cli %v: %v\n%s", args, err, buf.String())
	}
	return buf.String()
}

func stripANSICodes(input string) string {
	var builder strings.Builder
	inEscape := false
	for i := 0; i < len(input); i++ {
		char := input[i]
		if inEscape {
			if char == 'm' {
				inEscape = false
			}
			continue
		}
		if char == '\x1b' {
			inEscape = true
			continue
		}
		builder.WriteByte(char)
	}
	return builder.String()
}
