package configs

import (
	"log"
	"os"
	"path/filepath"
)

// Settings holds the directories tagkeys reads and writes.
type Settings struct {
	ConfigPath string
	DataPath   string
}

// UserSettings is initialized from the environment at startup.
var UserSettings *Settings

func init() {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("error getting home directory: %s", err)
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		log.Fatalf("error getting config directory: %s", err)
	}

	dataDir := os.Getenv("XDG_DATA_HOME")

	if dataDir == "" {
		dataDir = filepath.Join(homeDir, ".local", "share")
	}

	UserSettings = &Settings{
		ConfigPath: filepath.Join(configDir, "tagkeys"),
		DataPath:   filepath.Join(dataDir, "tagkeys"),
	}
}

// ConfigFile returns the path of config.toml.
func (s *Settings) ConfigFile() string {
	return filepath.Join(s.ConfigPath, "config.toml")
}

// AuditLogPath returns the path of the audit log.
func (s *Settings) AuditLogPath() string {
	return filepath.Join(s.DataPath, "audit.jsonl")
}

// DefaultStorePath returns where a backend keeps its data when the
// configuration does not say.
func (s *Settings) DefaultStorePath(backend StoreBackend) string {
	switch backend {
	case StoreBadger:
		return filepath.Join(s.DataPath, "keys.badger")
	case StoreMemory:
		return ""
	default:
		return filepath.Join(s.DataPath, "keys.toml")
	}
}
