// Package configs manages tagkeys settings and configuration.
//
// # Settings
//
// Global settings are initialized at startup from the environment:
//   - ConfigPath: $XDG_CONFIG_HOME/tagkeys (os.UserConfigDir)
//   - DataPath: $XDG_DATA_HOME/tagkeys, falling back to ~/.local/share/tagkeys
//
// Tests replace UserSettings with temporary directories.
//
// # Configuration
//
// Configuration is stored in TOML format at ConfigPath/config.toml:
//
//	cipher = "aes-gcm"
//	sentinel = "correct"
//	concurrency = 4
//
//	[store]
//	backend = "file"
//	path = ""
//
//	[audit]
//	enabled = true
//
// A missing file means defaults. Keys in the file that tagkeys does not know
// about are reported in Config.Unknown instead of failing the load, so older
// binaries can read newer files.
//
// The TAGKEYS_STORE environment variable overrides store.backend.
package configs
