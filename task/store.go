package task

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

// DefaultFile is the document name used when no path is configured.
const DefaultFile = "storage.json"

// Store reads and rewrites the task document at a fixed path.
//
// Store does no locking. Two invocations running Mutate against the same
// path at once both load the same document and the later Save wins,
// silently discarding the earlier writer's change.
type Store struct {
	path   string
	logger *zap.Logger
	now    func() time.Time
}

// OpenOptions configures a store.
type OpenOptions struct {
	// Logger receives store and operation events. If nil, logging is disabled.
	Logger *zap.Logger

	// Now supplies timestamps. If nil, time.Now is used.
	Now func() time.Time
}

// Open returns a store for the document at path. The document is not
// touched until the first operation.
func Open(path string, opts OpenOptions) *Store {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Store{
		path:   path,
		logger: opts.Logger.With(zap.String("path", path)),
		now:    opts.Now,
	}
}

// Path returns the document path.
func (s *Store) Path() string {
	return s.path
}

// Initialize writes a fresh, empty document.
// It fails with ErrAlreadyExists if anything is already at the path.
func (s *Store) Initialize() error {
	_, err := os.Lstat(s.path)
	if err == nil {
		return fmt.Errorf("%w: %s", ErrAlreadyExists, s.path)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: stat document: %w", ErrIOFailure, err)
	}

	if err := s.Save(NewCollection()); err != nil {
		return err
	}
	s.logger.Info("initialized task document")
	return nil
}

// Load reads the document. A missing document is created empty first;
// a malformed one fails with ErrCorruptDocument and is left untouched.
func (s *Store) Load() (*Collection, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.Info("task document does not exist, creating")
		if err := s.Initialize(); err != nil && !errors.Is(err, ErrAlreadyExists) {
			return nil, err
		}
		data, err = os.ReadFile(s.path)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read document: %w", ErrIOFailure, err)
	}

	c, err := decodeCollection(data)
	if err != nil {
		s.logger.Error("task document is corrupt", zap.Error(err))
		return nil, fmt.Errorf("load %s: %w", s.path, err)
	}

	if schemaNewer(c.SchemaVersion, SchemaVersion) {
		s.logger.Warn("task document was written by a newer version",
			zap.String("schema_version", c.SchemaVersion),
			zap.String("supported", SchemaVersion))
	}

	s.logger.Debug("loaded task document",
		zap.Int("tasks", len(c.Tasks)),
		zap.Int("last_assigned_id", c.LastAssignedID))
	return c, nil
}

// Save replaces the document with the given collection.
// The new content is written to a temp file and renamed over the old one,
// so an interrupted save leaves the previous document in place.
func (s *Store) Save(c *Collection) error {
	data, err := encodeCollection(c)
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: create document dir: %w", ErrIOFailure, err)
	}

	// Write atomically via temp file
	tmpFile, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp")
	if err != nil {
		return fmt.Errorf("%w: create temp document: %w", ErrIOFailure, err)
	}
	name := tmpFile.Name()
	_, err = tmpFile.Write(data)
	if err1 := tmpFile.Sync(); err1 != nil && err == nil {
		err = err1
	}
	if err1 := tmpFile.Close(); err1 != nil && err == nil {
		err = err1
	}
	if err != nil {
		os.Remove(name)
		return fmt.Errorf("%w: write temp document: %w", ErrIOFailure, err)
	}

	if err := os.Chmod(name, 0644); err != nil {
		os.Remove(name)
		return fmt.Errorf("%w: chmod temp document: %w", ErrIOFailure, err)
	}

	if err := os.Rename(name, s.path); err != nil {
		os.Remove(name)
		return fmt.Errorf("%w: rename document: %w", ErrIOFailure, err)
	}

	s.logger.Debug("saved task document",
		zap.Int("tasks", len(c.Tasks)),
		zap.Int("last_assigned_id", c.LastAssignedID))
	return nil
}

// Mutate loads the document, applies fn, and saves the result.
// If fn returns an error nothing is written.
func (s *Store) Mutate(fn func(c *Collection) error) error {
	c, err := s.Load()
	if err != nil {
		return err
	}

	if err := fn(c); err != nil {
		return err
	}

	c.SchemaVersion = SchemaVersion
	return s.Save(c)
}
