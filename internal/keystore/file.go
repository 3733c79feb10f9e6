package keystore

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
)

// keyFile is the on-disk layout of a FileStore.
type keyFile struct {
	TagKeys KeyMap `toml:"tag_keys"`
}

// FileStore is a Store backed by a TOML file.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore returns a FileStore at path. The file is created on the first
// Save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the location of the key file.
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Load() (KeyMap, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *FileStore) Save(m KeyMap) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(m)
}

func (s *FileStore) Get(tag string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot().get(tag)
}

func (s *FileStore) Set(tag, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot().set(tag, password)
}

func (s *FileStore) Delete(tag string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot().delete(tag)
}

func (s *FileStore) Close() error { return nil }

func (s *FileStore) snapshot() snapshotStore {
	return snapshotStore{load: s.load, save: s.save}
}

func (s *FileStore) load() (KeyMap, error) {
	file := keyFile{TagKeys: KeyMap{}}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return file.TagKeys, nil
	}

	if _, err := toml.DecodeFile(s.path, &file); err != nil {
		return nil, fmt.Errorf("failed to load key file %s: %w", s.path, err)
	}
	if file.TagKeys == nil {
		file.TagKeys = KeyMap{}
	}

	return file.TagKeys, nil
}

func (s *FileStore) save(m KeyMap) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create key directory: %w", err)
	}

	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("failed to open key file %s: %w", s.path, err)
	}

	// O_CREATE leaves the mode of an existing file alone.
	if err := f.Chmod(0600); err != nil {
		f.Close()
		return fmt.Errorf("failed to restrict key file %s: %w", s.path, err)
	}

	if err := toml.NewEncoder(f).Encode(keyFile{TagKeys: m.Clone()}); err != nil {
		f.Close()
		return fmt.Errorf("failed to write key file %s: %w", s.path, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close key file %s: %w", s.path, err)
	}
	return nil
}
