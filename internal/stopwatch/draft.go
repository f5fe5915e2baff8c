package stopwatch

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/j29zhnm96x-hub/UltimateStopwatchPro-sub000/internal/model"
	"github.com/j29zhnm96x-hub/UltimateStopwatchPro-sub000/internal/osutil"
)

const (
	// AppName is the application name used for config directory
	AppName = "swpro"
	// DraftFile is the name of the JSON session draft file
	DraftFile = "draft.json"
)

// Draft is a stopped-but-unsaved session persisted to disk. It feeds the
// resume-or-remeasure choice on the next start and survives a crash
// between stop and save.
type Draft struct {
	ElapsedMs int64       `json:"elapsed_ms"`
	Laps      []model.Lap `json:"laps"`
	StoppedAt time.Time   `json:"stopped_at"`
}

// Elapsed returns the draft's elapsed time as a duration.
func (d Draft) Elapsed() time.Duration {
	return time.Duration(d.ElapsedMs) * time.Millisecond
}

// GetDraftPath returns the path to the session draft file.
// Uses os.UserConfigDir() for cross-platform XDG-compliant config directory.
// Creates the config directory if it doesn't exist.
func GetDraftPath() (string, error) {
	configDir, err := osutil.Provider.UserConfigDir()
	if err != nil {
		return "", err
	}

	appDir := filepath.Join(configDir, AppName)

	if err := osutil.Provider.MkdirAll(appDir, 0755); err != nil {
		return "", err
	}

	return filepath.Join(appDir, DraftFile), nil
}

// SaveDraft writes the session draft to the draft file.
// Overwrites the file if it exists. Uses atomic write pattern (write to
// temp file, then rename) for safety.
func SaveDraft(path string, d Draft) error {
	// Draft contains only JSON-safe types, so Marshal cannot fail
	data, _ := json.MarshalIndent(d, "", "  ")

	tmpFile := path + ".tmp"
	if err := os.WriteFile(tmpFile, data, 0644); err != nil {
		return err
	}

	return os.Rename(tmpFile, path)
}

// LoadDraft reads the session draft from the draft file.
// Returns nil if the file doesn't exist (no pending session).
func LoadDraft(path string) (*Draft, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var d Draft
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, err
	}

	return &d, nil
}

// ClearDraft removes the draft file.
// Returns nil if the file doesn't exist (idempotent operation).
func ClearDraft(path string) error {
	err := os.Remove(path)
	if err != nil && os.IsNotExist(err) {
		return nil
	}
	return err
}

// HasDraft checks whether a pending session draft exists.
func HasDraft(path string) (bool, error) {
	d, err := LoadDraft(path)
	if err != nil {
		return false, err
	}
	return d != nil, nil
}
