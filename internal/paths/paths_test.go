package paths

import (
	"path/filepath"
	"testing"
)

func TestDefaultStateDirUsesHome(t *testing.T) {
	t.Setenv("HOME", filepath.Join("/tmp", "test-home"))

	dir, err := DefaultStateDir()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	expected := filepath.Join("/tmp", "test-home", ".local", "state", "task-cli")
	if dir != expected {
		t.Fatalf("expected %s, got %s", expected, dir)
	}
}

func TestHomeDirUsesHome(t *testing.T) {
	t.Setenv("HOME", filepath.Join("/tmp", "test-home"))

	home, err := HomeDir()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if home != filepath.Join("/tmp", "test-home") {
		t.Fatalf("expected %s, got %s", filepath.Join("/tmp", "test-home"), home)
	}
}

func TestDefaultLogDirUsesHome(t *testing.T) {
	t.Setenv("HOME", filepath.Join("/tmp", "test-home"))

	dir, err := DefaultLogDir()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	expected := filepath.Join("/tmp", "test-home", ".local", "state", "task-cli", "logs")
	if dir != expected {
		t.Fatalf("expected %s, got %s", expected, dir)
	}
}

func TestDefaultConfigPathUsesHome(t *testing.T) {
	t.Setenv("HOME", filepath.Join("/tmp", "test-home"))

	path, err := DefaultConfigPath()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	expected := filepath.Join("/tmp", "test-home", ".config", "task-cli", "config.toml")
	if path != expected {
		t.Fatalf("expected %s, got %s", expected, path)
	}
}

func TestResolve(t *testing.T) {
	t.Setenv("HOME", filepath.Join("/tmp", "test-home"))

	cases := []struct {
		name string
		path string
		want string
	}{
		{name: "relative", path: "storage.json", want: "/work/storage.json"},
		{name: "nested relative", path: "data/../tasks.json", want: "/work/tasks.json"},
		{name: "absolute", path: "/var/tasks//storage.json", want: "/var/tasks/storage.json"},
		{name: "home", path: "~/tasks.json", want: "/tmp/test-home/tasks.json"},
		{name: "bare home", path: "~", want: "/tmp/test-home"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Resolve(tc.path, "/work")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}
