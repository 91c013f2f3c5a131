// Package store provides the per-key JSON record store backing every
// dashboard collection.
package store

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"
)

// Store reads and writes JSON records under a data root. Per-user
// records live at <root>/<collection>/<key>.json; global lists live at
// <root>/<name>.json. Writes overwrite the whole record. There is no
// locking: concurrent writers to the same key race and the last write
// wins.
type Store struct {
	root string
}

// New creates a Store rooted at dir, creating it if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &Store{root: dir}, nil
}

// Root returns the data root path.
func (s *Store) Root() string {
	return s.root
}

func (s *Store) recordPath(collection, key string) string {
	return filepath.Join(s.root, collection, key+".json")
}

func (s *Store) listPath(name string) string {
	return filepath.Join(s.root, name+".json")
}

// Get reads the record for key into out. Returns false when no record
// exists. Malformed JSON is treated as corruption: the file is backed
// up with a timestamp suffix and the record is reported as absent.
func (s *Store) Get(collection, key string, out any) (bool, error) {
	return s.read(s.recordPath(collection, key), out)
}

// GetOrDefault reads the record for key into out, or persists def and
// decodes it into out when the record is absent. Reads never fail on a
// missing key.
func (s *Store) GetOrDefault(collection, key string, out any, def any) error {
	found, err := s.Get(collection, key, out)
	if err != nil {
		return err
	}
	if found {
		return nil
	}
	if err := s.Put(collection, key, def); err != nil {
		return err
	}
	// Round-trip through JSON so out matches what was persisted.
	data, err := json.Marshal(def)
	if err != nil {
		return fmt.Errorf("failed to marshal default record: %w", err)
	}
	return json.Unmarshal(data, out)
}

// Put overwrites the whole record for key.
func (s *Store) Put(collection, key string, v any) error {
	return s.write(s.recordPath(collection, key), v)
}

// Delete removes the record for key. Missing records are not an error.
func (s *Store) Delete(collection, key string) error {
	err := os.Remove(s.recordPath(collection, key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete record: %w", err)
	}
	return nil
}

// GetList reads a root-level list file into out, returning false when
// the file does not exist.
func (s *Store) GetList(name string, out any) (bool, error) {
	return s.read(s.listPath(name), out)
}

// PutList overwrites a root-level list file.
func (s *Store) PutList(name string, v any) error {
	return s.write(s.listPath(name), v)
}

func (s *Store) read(path string, out any) (bool, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if len(data) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		s.backupCorrupt(path)
		return false, nil
	}
	return true, nil
}

func (s *Store) write(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create collection directory: %w", err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// backupCorrupt moves a malformed JSON file aside so the next write
// starts clean. The request that hit the corruption proceeds with the
// default record.
func (s *Store) backupCorrupt(path string) {
	backupPath := fmt.Sprintf("%s.bak.%d", path, time.Now().UnixNano())
	if err := os.Rename(path, backupPath); err != nil {
		log.Printf("Failed to back up corrupt file %s: %v", path, err)
		return
	}
	log.Printf("Corrupt JSON at %s backed up to %s", path, backupPath)
}
