// Package localstore implements the fully-local deployment profile: a JSON
// snapshot file standing in for the remote data service, plus the key-value
// persistence surface for session state and the audit-log snapshot.
package localstore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
)

// Snapshot is a mutex-guarded key-value store persisted as one JSON file.
// Every Set rewrites the file through a temp-file rename so a crash never
// leaves a half-written snapshot behind.
type Snapshot struct {
	path string

	mu   sync.Mutex
	data map[string]json.RawMessage
}

// NewSnapshot opens (or initializes) the snapshot file at path.
func NewSnapshot(path string) (*Snapshot, error) {
	snapshot := &Snapshot{
		path: path,
		data: make(map[string]json.RawMessage),
	}

	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return snapshot, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to read snapshot file")
	}

	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &snapshot.data); err != nil {
			return nil, errors.Wrap(err, "failed to parse snapshot file")
		}
	}

	return snapshot, nil
}

// Get unmarshals the value stored under key into out. The boolean reports
// whether the key existed.
func (s *Snapshot) Get(key string, out any) (bool, error) {
	s.mu.Lock()
	raw, ok := s.data[key]
	s.mu.Unlock()

	if !ok {
		return false, nil
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return false, errors.Wrapf(err, "failed to decode snapshot key %q", key)
	}

	return true, nil
}

// Set stores value under key and persists the whole snapshot.
func (s *Snapshot) Set(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return errors.Wrapf(err, "failed to encode snapshot key %q", key)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = raw

	return s.flushLocked()
}

// Delete removes key and persists the whole snapshot.
func (s *Snapshot) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data[key]; !ok {
		return nil
	}
	delete(s.data, key)

	return s.flushLocked()
}

// Has reports whether key exists without decoding it.
func (s *Snapshot) Has(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.data[key]

	return ok
}

func (s *Snapshot) flushLocked() error {
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to encode snapshot")
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(err, "failed to create snapshot directory")
		}
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return errors.Wrap(err, "failed to write snapshot temp file")
	}

	return errors.Wrap(os.Rename(tmp, s.path), "failed to replace snapshot file")
}
