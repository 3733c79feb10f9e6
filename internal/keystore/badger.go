package keystore

import (
	"errors"
	"fmt"

	kerrors "github.com/PolarWolf314/tagkeys/internal/errors"
	"github.com/dgraph-io/badger/v4"
)

// tagPrefix namespaces tag entries inside the database.
var tagPrefix = []byte("tagkeys/")

// BadgerStore is a Store backed by a badger database, one entry per tag.
type BadgerStore struct {
	db *badger.DB
}

// OpenBadgerStore opens (or creates) a badger database in dir. An empty dir
// opens an in-memory database.
func OpenBadgerStore(dir string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil
	if dir == "" {
		opts = opts.WithInMemory(true)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger database: %w", err)
	}

	return &BadgerStore{db: db}, nil
}

func tagKey(tag string) []byte {
	return append(append([]byte{}, tagPrefix...), tag...)
}

func (s *BadgerStore) Load() (KeyMap, error) {
	m := KeyMap{}

	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(tagPrefix); it.ValidForPrefix(tagPrefix); it.Next() {
			item := it.Item()
			value, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			m[string(item.Key()[len(tagPrefix):])] = string(value)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load tag keys: %w", err)
	}

	return m, nil
}

func (s *BadgerStore) Save(m KeyMap) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		var stale [][]byte

		it := txn.NewIterator(badger.IteratorOptions{Prefix: tagPrefix})
		for it.Rewind(); it.Valid(); it.Next() {
			stale = append(stale, it.Item().KeyCopy(nil))
		}
		it.Close()

		for _, key := range stale {
			if err := txn.Delete(key); err != nil {
				return err
			}
		}
		for tag, password := range m {
			if err := txn.Set(tagKey(tag), []byte(password)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save tag keys: %w", err)
	}
	return nil
}

func (s *BadgerStore) Get(tag string) (string, bool, error) {
	var password string
	found := true

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(tagKey(tag))
		if errors.Is(err, badger.ErrKeyNotFound) {
			found = false
			return nil
		}
		if err != nil {
			return err
		}
		value, err := item.ValueCopy(nil)
		password = string(value)
		return err
	})
	if err != nil {
		return "", false, fmt.Errorf("failed to read tag %q: %w", tag, err)
	}

	return password, found, nil
}

func (s *BadgerStore) Set(tag, password string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(tagKey(tag), []byte(password))
	})
	if err != nil {
		return fmt.Errorf("failed to store tag %q: %w", tag, err)
	}
	return nil
}

func (s *BadgerStore) Delete(tag string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(tagKey(tag)); errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("%w: %q", kerrors.ErrTagNotFound, tag)
		} else if err != nil {
			return err
		}
		return txn.Delete(tagKey(tag))
	})
}

func (s *BadgerStore) Close() error {
	return s.db.Close()
}
