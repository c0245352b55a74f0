package config

// Default file names, relative to the layouts directory.
const (
	DefaultSettingsFile = "switcher.yaml"
	DefaultConfigFile   = "layout_config.json"
	DefaultTargetFile   = "../editor_layout.json"
	DefaultBackupFile   = "current_layout_backup.json"
	DefaultStateFile    = ".layout_state.json"
)

// Settings is the optional switcher.yaml file. Empty fields fall back to the defaults above.
// - ConfigFile: the layout registry (JSON, or YAML by extension).
// - TargetFile: the editor's active layout file that presets are copied over.
// - BackupFile: where backup/restore keep the snapshot of TargetFile.
// - StateFile: JSON record of the last apply and backup.
type Settings struct {
	ConfigFile string `yaml:"config_file"`
	TargetFile string `yaml:"target_file"`
	BackupFile string `yaml:"backup_file"`
	StateFile  string `yaml:"state_file"`
}

// Paths holds the absolute locations every command works with.
type Paths struct {
	Dir    string // layouts directory; preset "file" entries resolve against it
	Config string
	Target string
	Backup string
	State  string
}
