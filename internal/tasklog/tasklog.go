// Package tasklog builds the structured logger shared by the CLI and the task store.
//
// Entries go to two places: a JSON file per day under the configured
// directory, and a human-readable stream on stderr. Each has its own level.
package tasklog

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// FileLayout names daily log files.
const FileLayout = "2006-01-02"

// Options configures a logger.
type Options struct {
	// Dir holds the daily log files. Empty disables file logging.
	Dir string

	// Level is the minimum file level (debug, info, warn, error).
	Level string

	// ConsoleLevel is the minimum console level.
	ConsoleLevel string

	// Console receives console entries. If nil, os.Stderr is used.
	Console io.Writer

	// Now picks the daily file. If nil, time.Now is used.
	Now func() time.Time
}

// Logger is a zap logger that owns its log file.
type Logger struct {
	*zap.Logger
	file *os.File
}

// New builds a logger from opts.
func New(opts Options) (*Logger, error) {
	if opts.Console == nil {
		opts.Console = os.Stderr
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	consoleLevel, err := parseLevel(opts.ConsoleLevel, zapcore.WarnLevel)
	if err != nil {
		return nil, fmt.Errorf("console level: %w", err)
	}
	cores := []zapcore.Core{
		zapcore.NewCore(consoleEncoder(), zapcore.Lock(zapcore.AddSync(opts.Console)), consoleLevel),
	}

	var file *os.File
	if opts.Dir != "" {
		fileLevel, err := parseLevel(opts.Level, zapcore.DebugLevel)
		if err != nil {
			return nil, fmt.Errorf("file level: %w", err)
		}
		file, err = openDailyFile(opts.Dir, opts.Now())
		if err != nil {
			return nil, err
		}
		cores = append(cores, zapcore.NewCore(fileEncoder(), zapcore.AddSync(file), fileLevel))
	}

	return &Logger{
		Logger: zap.New(zapcore.NewTee(cores...), zap.AddCaller()),
		file:   file,
	}, nil
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{Logger: zap.NewNop()}
}

// Close flushes buffered entries and closes the log file.
func (l *Logger) Close() error {
	if l == nil {
		return nil
	}
	// Sync on a terminal stderr reports EINVAL on some platforms; ignore it.
	_ = l.Logger.Sync()
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// Path returns the file entries are written to, or "" when file logging is off.
func (l *Logger) Path() string {
	if l == nil || l.file == nil {
		return ""
	}
	return l.file.Name()
}

// FilePath returns the daily log file path for the given time.
func FilePath(dir string, now time.Time) string {
	return filepath.Join(dir, now.Format(FileLayout)+".log")
}

func openDailyFile(dir string, now time.Time) (*os.File, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	file, err := os.OpenFile(FilePath(dir, now), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return file, nil
}

func parseLevel(value string, fallback zapcore.Level) (zapcore.Level, error) {
	if value == "" {
		return fallback, nil
	}
	return zapcore.ParseLevel(value)
}

func fileEncoder() zapcore.Encoder {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "time"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	return zapcore.NewJSONEncoder(cfg)
}

func consoleEncoder() zapcore.Encoder {
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.TimeKey = ""
	cfg.CallerKey = ""
	cfg.NameKey = ""
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	return zapcore.NewConsoleEncoder(cfg)
}
