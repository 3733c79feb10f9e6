package configs

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// SaveTOML saves a struct to a TOML file readable only by the owner.
func SaveTOML(filePath string, data interface{}) error {
	if err := os.MkdirAll(filepath.Dir(filePath), 0700); err != nil {
		return err
	}

	file, err := os.OpenFile(filePath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600)
	if err != nil {
		return err
	}
	defer file.Close()

	return toml.NewEncoder(file).Encode(data)
}

// LoadTOML loads a TOML file into a struct. Fields absent from the file keep
// their current values. It returns the keys present in the file but not in
// the struct.
func LoadTOML(filePath string, data interface{}) ([]string, error) {
	md, err := toml.DecodeFile(filePath, data)
	if err != nil {
		return nil, err
	}

	var unknown []string
	for _, key := range md.Undecoded() {
		unknown = append(unknown, key.String())
	}
	return unknown, nil
}
