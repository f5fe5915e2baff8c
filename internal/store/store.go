// Package store persists the projects and results collections as whole
// JSON documents. The contract is deliberately coarse: read the full
// collection, write the full collection, atomically per file. Callers
// structure every modification as read-all -> compute new list -> write
// once, which rules out lost updates between rapid successive operations
// on the same logical list.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/j29zhnm96x-hub/UltimateStopwatchPro-sub000/internal/model"
	"github.com/j29zhnm96x-hub/UltimateStopwatchPro-sub000/internal/osutil"
)

const (
	// AppName is the application name used for config directory
	AppName = "swpro"
	// ProjectsFile is the name of the projects collection document
	ProjectsFile = "projects.json"
	// ResultsFile is the name of the results collection document
	ResultsFile = "results.json"
)

// Store is the persistence contract the core depends on. Implementations
// must replace collections wholesale; no partial-write semantics are
// assumed.
type Store interface {
	ReadProjects() ([]model.Project, error)
	WriteProjects([]model.Project) error
	ReadResults() ([]model.Result, error)
	WriteResults([]model.Result) error
}

// GetDataDir returns the directory holding the collection documents.
// Uses os.UserConfigDir() for cross-platform XDG-compliant config directory.
// Creates the directory if it doesn't exist.
func GetDataDir() (string, error) {
	configDir, err := osutil.Provider.UserConfigDir()
	if err != nil {
		return "", err
	}

	appDir := filepath.Join(configDir, AppName)

	if err := osutil.Provider.MkdirAll(appDir, 0755); err != nil {
		return "", err
	}

	return appDir, nil
}

// FileStore stores each collection as a JSON array document in a
// directory.
type FileStore struct {
	dir string
}

// NewFileStore creates a FileStore rooted at dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// ReadProjects reads the projects collection.
// Returns an empty slice if the document doesn't exist.
func (s *FileStore) ReadProjects() ([]model.Project, error) {
	return readCollection[model.Project](filepath.Join(s.dir, ProjectsFile))
}

// WriteProjects replaces the projects collection.
func (s *FileStore) WriteProjects(projects []model.Project) error {
	return writeCollection(filepath.Join(s.dir, ProjectsFile), projects)
}

// ReadResults reads the results collection.
// Returns an empty slice if the document doesn't exist.
func (s *FileStore) ReadResults() ([]model.Result, error) {
	return readCollection[model.Result](filepath.Join(s.dir, ResultsFile))
}

// WriteResults replaces the results collection.
func (s *FileStore) WriteResults(results []model.Result) error {
	return writeCollection(filepath.Join(s.dir, ResultsFile), results)
}

// readCollection reads a whole JSON array document.
// A missing file is an empty collection (graceful handling); a document
// that exists but doesn't parse is an error, because silently dropping
// records from a single-document collection would lose data on the next
// write.
func readCollection[T any](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []T{}, nil
		}
		return nil, err
	}

	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("corrupt collection %s: %w", filepath.Base(path), err)
	}
	if records == nil {
		records = []T{}
	}
	return records, nil
}

// writeCollection writes a whole JSON array document.
// Uses atomic write pattern (write to temp file, then rename) so a
// crashed write never leaves a truncated collection behind.
func writeCollection[T any](path string, records []T) error {
	if records == nil {
		records = []T{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}

	tmpFile := path + ".tmp"
	if err := os.WriteFile(tmpFile, data, 0644); err != nil {
		return err
	}

	return os.Rename(tmpFile, path)
}
