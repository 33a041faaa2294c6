package dict

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// The user layer is a flat key-value document. JSON is the default on-disk
// format; paths ending in .yaml or .yml are read and written as YAML.

func yamlPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// readUserLayer loads the user layer from path. A missing file returns an
// empty map and no error. Unreadable or malformed content returns an empty
// map together with a *StorageError describing the problem.
func readUserLayer(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]string{}, nil
		}
		return map[string]string{}, &StorageError{Path: path, Op: "load", Err: err}
	}

	entries := make(map[string]string)
	if yamlPath(path) {
		err = yaml.Unmarshal(data, &entries)
	} else {
		err = json.Unmarshal(data, &entries)
	}
	if err != nil {
		return map[string]string{}, &StorageError{Path: path, Op: "load", Err: err}
	}
	return entries, nil
}

// writeUserLayer persists the user layer to path, creating parent directories
// as needed.
func writeUserLayer(path string, entries map[string]string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return &StorageError{Path: path, Op: "save", Err: err}
		}
	}

	var (
		data []byte
		err  error
	)
	if yamlPath(path) {
		data, err = yaml.Marshal(entries)
	} else {
		data, err = json.MarshalIndent(entries, "", "  ")
	}
	if err != nil {
		return &StorageError{Path: path, Op: "save", Err: err}
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return &StorageError{Path: path, Op: "save", Err: err}
	}
	return nil
}
