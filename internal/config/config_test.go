package config_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/amonks/taskcli/internal/config"
	"github.com/amonks/taskcli/internal/testsupport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeGlobalConfig(t *testing.T, homeDir, content string) {
	t.Helper()

	dir := filepath.Join(homeDir, ".config", "task-cli")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0644))
}

func writeProjectConfig(t *testing.T, dir, content string) {
	t.Helper()

	require.NoError(t, os.WriteFile(filepath.Join(dir, config.ProjectFile), []byte(content), 0644))
}

func TestLoad_NotFound(t *testing.T) {
	homeDir := testsupport.SetupTestHome(t)
	t.Setenv(config.FileEnvVar, "")
	tmpDir := t.TempDir()

	cfg, err := config.Load(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(tmpDir, "storage.json"), cfg.Storage.Path)
	assert.Equal(t, filepath.Join(homeDir, ".local", "state", "task-cli", "logs"), cfg.Log.Dir)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "warn", cfg.Log.ConsoleLevel)
}

func TestLoad_Project(t *testing.T) {
	testsupport.SetupTestHome(t)
	t.Setenv(config.FileEnvVar, "")
	tmpDir := t.TempDir()

	writeProjectConfig(t, tmpDir, `
[storage]
path = "data/tasks.json"

[log]
dir = "-"
console-level = "error"
`)

	cfg, err := config.Load(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(tmpDir, "data", "tasks.json"), cfg.Storage.Path)
	assert.Equal(t, config.LogDisabled, cfg.Log.Dir)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "error", cfg.Log.ConsoleLevel)
}

func TestLoad_ProjectOverridesGlobal(t *testing.T) {
	homeDir := testsupport.SetupTestHome(t)
	t.Setenv(config.FileEnvVar, "")
	tmpDir := t.TempDir()

	writeGlobalConfig(t, homeDir, `
[storage]
path = "~/tasks/global.json"

[log]
level = "info"
`)
	writeProjectConfig(t, tmpDir, `
[log]
level = "error"
`)

	cfg, err := config.Load(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(homeDir, "tasks", "global.json"), cfg.Storage.Path)
	assert.Equal(t, "error", cfg.Log.Level)
}

func TestLoad_BlankProjectValueFallsThrough(t *testing.T) {
	homeDir := testsupport.SetupTestHome(t)
	t.Setenv(config.FileEnvVar, "")
	tmpDir := t.TempDir()

	writeGlobalConfig(t, homeDir, `
[storage]
path = "/srv/tasks.json"
`)
	writeProjectConfig(t, tmpDir, `
[storage]
path = "  "
`)

	cfg, err := config.Load(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "/srv/tasks.json", cfg.Storage.Path)
}

func TestLoad_EnvOverridesFiles(t *testing.T) {
	testsupport.SetupTestHome(t)
	tmpDir := t.TempDir()

	writeProjectConfig(t, tmpDir, `
[storage]
path = "project.json"
`)
	t.Setenv(config.FileEnvVar, "env.json")

	cfg, err := config.Load(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(tmpDir, "env.json"), cfg.Storage.Path)
}

func TestLoad_InvalidTOML(t *testing.T) {
	testsupport.SetupTestHome(t)
	tmpDir := t.TempDir()

	writeProjectConfig(t, tmpDir, `
[storage
path = "x"
`)

	_, err := config.Load(tmpDir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config file")
}

func TestLoad_UnknownKeys(t *testing.T) {
	testsupport.SetupTestHome(t)
	tmpDir := t.TempDir()

	writeProjectConfig(t, tmpDir, `
[storage]
path = "x.json"
backend = "sqlite"
`)

	_, err := config.Load(tmpDir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "storage.backend")
}

func TestConfig_EncodeRoundTrip(t *testing.T) {
	testsupport.SetupTestHome(t)
	t.Setenv(config.FileEnvVar, "")
	tmpDir := t.TempDir()

	cfg, err := config.Load(tmpDir)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, cfg.Encode(&buf))
	assert.Contains(t, buf.String(), "[storage]")
	assert.Contains(t, buf.String(), "console-level")

	var decoded config.Config
	_, err = toml.Decode(buf.String(), &decoded)
	require.NoError(t, err)
	assert.Equal(t, *cfg, decoded)
}
