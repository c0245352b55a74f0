// Package switcher implements the file operations behind each command: applying a
// preset over the editor layout file, backing it up, restoring it, and inspecting it.
package switcher

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"layout-switcher/internal/config"
	"layout-switcher/internal/layouts"
	"layout-switcher/internal/logger"
	"layout-switcher/internal/state"
)

var (
	// ErrSourceMissing is returned when a preset's file does not exist.
	ErrSourceMissing = errors.New("layout file not found")
	// ErrNoBackup is returned by Restore when no backup has been taken.
	ErrNoBackup = errors.New("no backup file found")
)

// Switcher performs layout operations against one set of resolved paths.
type Switcher struct {
	paths config.Paths
	now   func() time.Time
}

// New returns a Switcher for paths.
func New(paths config.Paths) *Switcher {
	return &Switcher{paths: paths, now: time.Now}
}

// Paths returns the paths the switcher operates on.
func (s *Switcher) Paths() config.Paths {
	return s.paths
}

// BackupResult describes the outcome of Backup.
type BackupResult struct {
	Path    string // backup file written
	Skipped bool   // true when there was no editor layout file to back up
}

// ApplyResult describes the outcome of Apply.
type ApplyResult struct {
	Layout    layouts.Layout
	Source    string
	Target    string
	Backup    BackupResult
	BackupErr error // a failed pre-apply backup does not stop the apply
}

// Apply copies the preset registered under id over the editor layout file. The id and the
// preset file are checked before anything is written; the current layout is then backed up.
func (s *Switcher) Apply(reg *layouts.Registry, id string) (ApplyResult, error) {
	l, err := reg.Lookup(id)
	if err != nil {
		return ApplyResult{}, err
	}

	res := ApplyResult{
		Layout: l,
		Source: l.SourcePath(s.paths.Dir),
		Target: s.paths.Target,
	}
	if !exists(res.Source) {
		return res, fmt.Errorf("%w: '%s'", ErrSourceMissing, res.Source)
	}

	res.Backup, res.BackupErr = s.Backup()

	logger.Debug("[DEBUG] Applying layout %s: %s -> %s\n", id, res.Source, res.Target)
	if err := copyFile(res.Source, res.Target); err != nil {
		return res, fmt.Errorf("failed to copy layout file: %w", err)
	}

	s.recordApply(l)
	return res, nil
}

// Backup copies the editor layout file to the backup path. A missing editor layout file
// is not an error; the result is marked Skipped instead.
func (s *Switcher) Backup() (BackupResult, error) {
	res := BackupResult{Path: s.paths.Backup}
	info, err := os.Stat(s.paths.Target)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Debug("[DEBUG] Nothing to back up at %s\n", s.paths.Target)
			res.Skipped = true
			return res, nil
		}
		return res, fmt.Errorf("failed to stat current layout: %w", err)
	}

	if err := copyFile(s.paths.Target, s.paths.Backup); err != nil {
		return res, fmt.Errorf("failed to backup current layout: %w", err)
	}

	s.recordBackup(info.Size())
	return res, nil
}

// Restore copies the backup over the editor layout file.
func (s *Switcher) Restore() error {
	if !exists(s.paths.Backup) {
		return fmt.Errorf("%w at %s", ErrNoBackup, s.paths.Backup)
	}
	if err := copyFile(s.paths.Backup, s.paths.Target); err != nil {
		return fmt.Errorf("failed to restore backup: %w", err)
	}
	return nil
}

// Status describes the editor layout file relative to the registry.
type Status struct {
	Target       string
	TargetExists bool
	Matches      []string // ids whose preset file is byte-identical to the target
	LastApplied  *state.AppliedLayout
	LastBackup   *state.BackupRecord
}

// Current compares the editor layout file against every preset in reg.
func (s *Switcher) Current(reg *layouts.Registry) (Status, error) {
	st := state.LoadState(s.paths.State)
	status := Status{
		Target:      s.paths.Target,
		LastApplied: st.LastApplied,
		LastBackup:  st.LastBackup,
	}

	current, err := os.ReadFile(s.paths.Target)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return status, nil
		}
		return status, fmt.Errorf("failed to read current layout: %w", err)
	}
	status.TargetExists = true

	for _, l := range reg.All() {
		preset, err := os.ReadFile(l.SourcePath(s.paths.Dir))
		if err != nil {
			logger.Debug("[DEBUG] Skipping %s: %v\n", l.ID, err)
			continue
		}
		if bytes.Equal(preset, current) {
			status.Matches = append(status.Matches, l.ID)
		}
	}
	return status, nil
}

// Problem is one registry entry that cannot be applied.
type Problem struct {
	ID   string
	Path string
	Err  error
}

// Validate checks that every preset file exists and holds well-formed JSON.
func (s *Switcher) Validate(reg *layouts.Registry) []Problem {
	var problems []Problem
	for _, l := range reg.All() {
		path := l.SourcePath(s.paths.Dir)
		if l.File == "" {
			problems = append(problems, Problem{ID: l.ID, Path: path, Err: errors.New("no \"file\" entry")})
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				err = ErrSourceMissing
			}
			problems = append(problems, Problem{ID: l.ID, Path: path, Err: err})
			continue
		}
		if !json.Valid(data) {
			problems = append(problems, Problem{ID: l.ID, Path: path, Err: errors.New("not valid JSON")})
		}
	}
	return problems
}

func (s *Switcher) recordApply(l layouts.Layout) {
	st := state.LoadState(s.paths.State)
	st.LastApplied = &state.AppliedLayout{ID: l.ID, Name: l.Name, File: l.File, AppliedAt: s.now()}
	if err := state.SaveState(s.paths.State, st); err != nil {
		logger.Debug("[DEBUG] %v\n", err)
	}
}

func (s *Switcher) recordBackup(size int64) {
	st := state.LoadState(s.paths.State)
	st.LastBackup = &state.BackupRecord{Path: s.paths.Backup, Size: size, BackedAt: s.now()}
	if err := state.SaveState(s.paths.State, st); err != nil {
		logger.Debug("[DEBUG] %v\n", err)
	}
}
