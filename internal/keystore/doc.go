// Package keystore persists the viewer's tag keys.
//
// A key map is a plain tag -> password mapping. tagkeys reads a full
// snapshot before every unlock attempt and writes the full map back after a
// key is added, so every backend implements the same small Store interface:
//
//   - FileStore keeps the map in a TOML file with 0600 permissions
//   - BadgerStore keeps one entry per tag in a badger database
//   - MemoryStore keeps the map in process, for tests and one-off runs
//
// Open picks a backend from the store section of the configuration.
package keystore
