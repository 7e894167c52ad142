// Package config handles loading task-cli.toml configuration files.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/amonks/taskcli/internal/paths"
	"github.com/amonks/taskcli/task"
)

// ProjectFile is the name of the per-directory config file.
const ProjectFile = "task-cli.toml"

// FileEnvVar overrides the storage path from the environment.
const FileEnvVar = "TASK_CLI_FILE"

// LogDisabled turns off the log file when used as log.dir.
const LogDisabled = "-"

// Config represents the task-cli.toml configuration file.
type Config struct {
	Storage Storage `toml:"storage"`
	Log     Log     `toml:"log"`
}

// Storage contains task document configuration.
type Storage struct {
	// Path is the task document location. Relative paths resolve against
	// the working directory.
	Path string `toml:"path"`
}

// Log contains logging configuration.
type Log struct {
	// Dir holds one log file per day. "-" disables file logging.
	Dir string `toml:"dir"`

	// Level is the minimum level written to the log file.
	Level string `toml:"level"`

	// ConsoleLevel is the minimum level written to stderr.
	ConsoleLevel string `toml:"console-level"`
}

// Default returns the configuration used when no files set a value.
func Default() (*Config, error) {
	logDir, err := paths.DefaultLogDir()
	if err != nil {
		return nil, err
	}
	return &Config{
		Storage: Storage{Path: task.DefaultFile},
		Log: Log{
			Dir:          logDir,
			Level:        "debug",
			ConsoleLevel: "warn",
		},
	}, nil
}

// Load loads configuration from the global config file and the project
// file in dir, then applies the environment. Paths in the result are absolute.
func Load(dir string) (*Config, error) {
	globalPath, err := paths.DefaultConfigPath()
	if err != nil {
		return nil, err
	}

	globalCfg, globalMeta, err := loadConfigFile(globalPath)
	if err != nil {
		return nil, err
	}

	projectCfg, projectMeta, err := loadConfigFile(filepath.Join(dir, ProjectFile))
	if err != nil {
		return nil, err
	}

	defaults, err := Default()
	if err != nil {
		return nil, err
	}

	merged := mergeConfigs(defaults, globalCfg, projectCfg, globalMeta, projectMeta)
	if envPath := strings.TrimSpace(os.Getenv(FileEnvVar)); envPath != "" {
		merged.Storage.Path = envPath
	}

	if err := merged.resolve(dir); err != nil {
		return nil, err
	}
	return merged, nil
}

func loadConfigFile(path string) (*Config, toml.MetaData, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, toml.MetaData{}, nil
	}
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("read config file %s: %w", path, err)
	}

	var cfg Config
	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("parse config file %s: %w", path, err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			keys = append(keys, key.String())
		}
		sort.Strings(keys)
		return nil, toml.MetaData{}, fmt.Errorf("parse config file %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	return &cfg, meta, nil
}

func mergeConfigs(defaults, globalCfg, projectCfg *Config, globalMeta, projectMeta toml.MetaData) *Config {
	if globalCfg == nil {
		globalCfg = &Config{}
	}
	if projectCfg == nil {
		projectCfg = &Config{}
	}

	merged := Config{}
	merged.Storage.Path = mergeString(defaults.Storage.Path,
		globalMeta.IsDefined("storage", "path"), globalCfg.Storage.Path,
		projectMeta.IsDefined("storage", "path"), projectCfg.Storage.Path)
	merged.Log.Dir = mergeString(defaults.Log.Dir,
		globalMeta.IsDefined("log", "dir"), globalCfg.Log.Dir,
		projectMeta.IsDefined("log", "dir"), projectCfg.Log.Dir)
	merged.Log.Level = mergeString(defaults.Log.Level,
		globalMeta.IsDefined("log", "level"), globalCfg.Log.Level,
		projectMeta.IsDefined("log", "level"), projectCfg.Log.Level)
	merged.Log.ConsoleLevel = mergeString(defaults.Log.ConsoleLevel,
		globalMeta.IsDefined("log", "console-level"), globalCfg.Log.ConsoleLevel,
		projectMeta.IsDefined("log", "console-level"), projectCfg.Log.ConsoleLevel)

	return &merged
}

// mergeString picks the project value, then the global value, then the
// default. A value that is defined but blank falls through.
func mergeString(defaultValue string, globalDefined bool, globalValue string, projectDefined bool, projectValue string) string {
	value := defaultValue
	if globalDefined && strings.TrimSpace(globalValue) != "" {
		value = globalValue
	}
	if projectDefined && strings.TrimSpace(projectValue) != "" {
		value = projectValue
	}
	return strings.TrimSpace(value)
}

func (cfg *Config) resolve(dir string) error {
	storagePath, err := paths.Resolve(cfg.Storage.Path, dir)
	if err != nil {
		return err
	}
	cfg.Storage.Path = storagePath

	if cfg.Log.Dir != LogDisabled {
		logDir, err := paths.Resolve(cfg.Log.Dir, dir)
		if err != nil {
			return err
		}
		cfg.Log.Dir = logDir
	}
	return nil
}

// Encode writes the configuration as TOML.
func (cfg *Config) Encode(w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}
