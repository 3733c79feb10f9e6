package keystore

import (
	"fmt"
	"sort"

	"github.com/PolarWolf314/tagkeys/internal/configs"
	kerrors "github.com/PolarWolf314/tagkeys/internal/errors"
)

// KeyMap maps a tag to the password the viewer supplied for it.
type KeyMap map[string]string

// Clone returns an independent copy of m. A nil map clones to an empty one.
func (m KeyMap) Clone() KeyMap {
	out := make(KeyMap, len(m))
	for tag, password := range m {
		out[tag] = password
	}
	return out
}

// Has reports whether every tag has an entry.
func (m KeyMap) Has(tags ...string) bool {
	for _, tag := range tags {
		if _, ok := m[tag]; !ok {
			return false
		}
	}
	return true
}

// Tags returns the tags in m, sorted.
func (m KeyMap) Tags() []string {
	tags := make([]string, 0, len(m))
	for tag := range m {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// Store loads and saves key maps.
type Store interface {
	// Load returns a snapshot of every stored key. The caller owns the map.
	Load() (KeyMap, error)

	// Save replaces the stored keys with m.
	Save(m KeyMap) error

	// Get returns the password for tag and whether it exists.
	Get(tag string) (string, bool, error)

	// Set stores password for tag, replacing any previous value.
	Set(tag, password string) error

	// Delete removes tag. It returns ErrTagNotFound if there is no entry.
	Delete(tag string) error

	// Close releases any resources held by the store.
	Close() error
}

// Open returns the Store selected by cfg.
func Open(cfg configs.StoreConfig) (Store, error) {
	switch cfg.Backend {
	case configs.StoreMemory:
		return NewMemoryStore(nil), nil
	case configs.StoreBadger:
		store, err := OpenBadgerStore(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", kerrors.ErrStoreUnavailable, err)
		}
		return store, nil
	case configs.StoreFile, "":
		return NewFileStore(cfg.Path), nil
	default:
		return nil, fmt.Errorf("%w: unknown store backend %q", kerrors.ErrConfigInvalid, cfg.Backend)
	}
}

// snapshotStore implements Get, Set and Delete on top of Load and Save.
type snapshotStore struct {
	load func() (KeyMap, error)
	save func(KeyMap) error
}

func (s snapshotStore) get(tag string) (string, bool, error) {
	m, err := s.load()
	if err != nil {
		return "", false, err
	}
	password, ok := m[tag]
	return password, ok, nil
}

func (s snapshotStore) set(tag, password string) error {
	m, err := s.load()
	if err != nil {
		return err
	}
	m[tag] = password
	return s.save(m)
}

func (s snapshotStore) delete(tag string) error {
	m, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := m[tag]; !ok {
		return fmt.Errorf("%w: %q", kerrors.ErrTagNotFound, tag)
	}
	delete(m, tag)
	return s.save(m)
}
