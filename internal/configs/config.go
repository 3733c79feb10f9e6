package configs

import (
	"fmt"
	"os"

	kerrors "github.com/PolarWolf314/tagkeys/internal/errors"
	"github.com/PolarWolf314/tagkeys/internal/secrets"
)

// StoreBackend names a key store implementation.
type StoreBackend string

const (
	StoreFile   StoreBackend = "file"
	StoreBadger StoreBackend = "badger"
	StoreMemory StoreBackend = "memory"
)

// StoreEnv overrides store.backend when set.
const StoreEnv = "TAGKEYS_STORE"

// DefaultSentinel is the plaintext of every key test fixture.
const DefaultSentinel = "correct"

type Config struct {
	Cipher      string      `toml:"cipher"`
	Sentinel    string      `toml:"sentinel"`
	Concurrency int         `toml:"concurrency"`
	Store       StoreConfig `toml:"store"`
	Audit       AuditConfig `toml:"audit"`

	// Unknown lists keys in the file that were not recognised.
	Unknown []string `toml:"-"`
}

type StoreConfig struct {
	Backend StoreBackend `toml:"backend"`
	Path    string       `toml:"path"`
}

type AuditConfig struct {
	Enabled bool `toml:"enabled"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Cipher:      string(secrets.AESGCM),
		Sentinel:    DefaultSentinel,
		Concurrency: 4,
		Store: StoreConfig{
			Backend: StoreFile,
		},
		Audit: AuditConfig{
			Enabled: true,
		},
	}
}

// LoadConfig loads the configuration at path on top of the defaults and
// validates it. A missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		unknown, err := LoadTOML(path, config)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", kerrors.ErrConfigInvalid, err)
		}
		config.Unknown = unknown
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}

	if backend := os.Getenv(StoreEnv); backend != "" {
		config.Store.Backend = StoreBackend(backend)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// SaveConfig writes config to path.
func SaveConfig(path string, config *Config) error {
	if err := SaveTOML(path, config); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}

// Validate checks that every value is usable.
func (c *Config) Validate() error {
	if _, err := c.ParsedCipher(); err != nil {
		return err
	}

	if c.Sentinel == "" {
		return fmt.Errorf("%w: sentinel must not be empty", kerrors.ErrConfigInvalid)
	}

	if c.Concurrency < 1 {
		return fmt.Errorf("%w: concurrency must be at least 1, got %d", kerrors.ErrConfigInvalid, c.Concurrency)
	}

	switch c.Store.Backend {
	case StoreFile, StoreBadger, StoreMemory:
	default:
		return fmt.Errorf("%w: unknown store backend %q", kerrors.ErrConfigInvalid, c.Store.Backend)
	}

	return nil
}

// ResolvedStore returns the store section with its path filled in from
// settings when the file left it empty.
func (c *Config) ResolvedStore(s *Settings) StoreConfig {
	store := c.Store
	if store.Path == "" {
		store.Path = s.DefaultStorePath(store.Backend)
	}
	return store
}

// ParsedCipher returns the configured cipher.
func (c *Config) ParsedCipher() (secrets.Cipher, error) {
	cipher, err := secrets.ParseCipher(c.Cipher)
	if err != nil {
		return "", fmt.Errorf("%w: %v", kerrors.ErrConfigInvalid, err)
	}
	return cipher, nil
}
