package state

import (
	"encoding/json" // For JSON encoding and decoding of the state file
	"fmt"
	"os"   // For file system operations like reading and writing files
	"time" // For apply/backup timestamps

	"layout-switcher/internal/logger" // Colored console printers for debug info
)

// AppliedLayout records the last preset copied over the editor layout file.
type AppliedLayout struct {
	ID        string    `json:"id"`         // Registry id of the preset
	Name      string    `json:"name"`       // Display name at the time it was applied
	File      string    `json:"file"`       // Preset path as written in the registry
	AppliedAt time.Time `json:"applied_at"` // When the copy finished
}

// BackupRecord records the last successful backup of the editor layout file.
type BackupRecord struct {
	Path     string    `json:"path"`
	Size     int64     `json:"size"`
	BackedAt time.Time `json:"backed_at"`
}

// State is the persistent record kept next to the presets.
// Both fields are nil until the corresponding command has run once.
type State struct {
	LastApplied *AppliedLayout `json:"last_applied,omitempty"`
	LastBackup  *BackupRecord  `json:"last_backup,omitempty"`
}

// LoadState loads the saved state from a JSON file at the given path.
// A missing or unreadable file yields an empty State; the state is informational only.
func LoadState(path string) *State {
	// Read entire state JSON file into memory
	file, err := os.ReadFile(path)
	if err != nil {
		logger.Debug("[DEBUG] No state loaded from %s: %v\n", path, err)
		return &State{}
	}

	var st State
	if err := json.Unmarshal(file, &st); err != nil {
		logger.Debug("[DEBUG] Ignoring malformed state file %s: %v\n", path, err)
		return &State{}
	}
	return &st
}

// SaveState writes the given State struct to a JSON file at the given path.
// It pretty-prints the JSON with indentation for readability.
func SaveState(path string, st *State) error {
	file, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	// Log debug info showing the full JSON state being written
	logger.Debug("[DEBUG] Writing state to %s:\n%s\n", path, string(file))

	if err := os.WriteFile(path, file, 0644); err != nil {
		return fmt.Errorf("failed to write state file %s: %w", path, err)
	}
	return nil
}
