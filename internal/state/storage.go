package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned by Storage.Load for keys that were never saved.
var ErrNotFound = errors.New("record not found")

// Storage is a flat key/record store. Records are opaque bytes; callers
// normally go through LoadJSON and SaveJSON.
type Storage interface {
	Load(key string) ([]byte, error)
	Save(key string, data []byte) error
	Delete(key string) error
	Close() error
}

// LoadJSON decodes the record stored under key into v.
func LoadJSON(storage Storage, key string, v any) error {
	data, err := storage.Load(key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %q: %w", key, err)
	}
	return nil
}

// SaveJSON encodes v and stores it under key.
func SaveJSON(storage Storage, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %q: %w", key, err)
	}
	return storage.Save(key, data)
}

// Open creates the storage backend named by driver.
func Open(driver, path string) (Storage, error) {
	switch strings.ToLower(driver) {
	case "", "memory":
		return NewMemoryStorage(), nil
	case "file":
		return NewFileStorage(path)
	case "sqlite":
		return NewSQLiteStorage(path)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", driver)
	}
}
