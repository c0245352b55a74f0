package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
	"layout-switcher/internal/logger"
)

// LoadSettings reads a switcher.yaml file. When the file is missing and required is false,
// empty Settings are returned so every path takes its default.
func LoadSettings(path string, required bool) (Settings, error) {
	var s Settings

	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			logger.Debug("[DEBUG] No settings file at %s, using defaults\n", path)
			return s, nil
		}
		return s, fmt.Errorf("failed to read settings file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return s, fmt.Errorf("failed to unmarshal settings file %s: %w", path, err)
	}
	logger.Debug("[DEBUG] Loaded settings from %s: %+v\n", path, s)
	return s, nil
}

// Resolve turns settings into absolute paths. Relative entries resolve against dir.
func Resolve(dir string, s Settings) (Paths, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return Paths{}, fmt.Errorf("failed to resolve layouts directory %s: %w", dir, err)
	}
	return Paths{
		Dir:    absDir,
		Config: resolve(absDir, s.ConfigFile, DefaultConfigFile),
		Target: resolve(absDir, s.TargetFile, DefaultTargetFile),
		Backup: resolve(absDir, s.BackupFile, DefaultBackupFile),
		State:  resolve(absDir, s.StateFile, DefaultStateFile),
	}, nil
}

// Load resolves the paths for a layouts directory. settingsPath may be empty, in which
// case dir/switcher.yaml is used if present.
func Load(dir, settingsPath string) (Paths, error) {
	required := settingsPath != ""
	if !required {
		settingsPath = filepath.Join(dir, DefaultSettingsFile)
	}
	s, err := LoadSettings(settingsPath, required)
	if err != nil {
		return Paths{}, err
	}
	return Resolve(dir, s)
}

// ExecutableDir returns the directory holding the running binary, the default layouts directory.
func ExecutableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to locate executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}

func resolve(dir, value, fallback string) string {
	if value == "" {
		value = fallback
	}
	if filepath.IsAbs(value) {
		return filepath.Clean(value)
	}
	return filepath.Join(dir, value)
}
