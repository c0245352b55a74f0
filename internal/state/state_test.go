package state

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadStateMissingFile(t *testing.T) {
	st := LoadState(filepath.Join(t.TempDir(), "missing.json"))
	if st == nil {
		t.Fatal("LoadState returned nil")
	}
	if st.LastApplied != nil || st.LastBackup != nil {
		t.Fatalf("expected empty state, got %+v", st)
	}
}

func TestLoadStateMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	st := LoadState(path)
	if st.LastApplied != nil || st.LastBackup != nil {
		t.Fatalf("expected empty state, got %+v", st)
	}
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	at := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

	st := &State{
		LastApplied: &AppliedLayout{ID: "developer", Name: "Developer", File: "presets/developer.json", AppliedAt: at},
		LastBackup:  &BackupRecord{Path: "/tmp/backup.json", Size: 42, BackedAt: at},
	}
	if err := SaveState(path, st); err != nil {
		t.Fatalf("SaveState: %v", err)
	}

	got := LoadState(path)
	if got.LastApplied == nil || got.LastApplied.ID != "developer" || !got.LastApplied.AppliedAt.Equal(at) {
		t.Fatalf("unexpected LastApplied: %+v", got.LastApplied)
	}
	if got.LastBackup == nil || got.LastBackup.Size != 42 {
		t.Fatalf("unexpected LastBackup: %+v", got.LastBackup)
	}
}

func TestSaveStateUnwritablePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "state.json")
	if err := SaveState(path, &State{}); err == nil {
		t.Fatal("expected error writing into a missing directory")
	}
}
