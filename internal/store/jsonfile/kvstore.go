// Package jsonfile provides JSON file-backed persistence for client state.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/hay-kot/moment/internal/core/storage"
)

var errCorruptFile = errors.New("corrupt kv file")

// KVFile is the root JSON structure stored on disk for KV data.
type KVFile struct {
	Entries map[string]storage.Entry `json:"entries"`
}

// KVStore implements storage.Store using a JSON file for persistence.
type KVStore struct {
	path string
	mu   sync.RWMutex
}

// NewKVStore creates a new JSON file KV store at the given path.
func NewKVStore(path string) *KVStore {
	return &KVStore{path: path}
}

// Path returns the backing file path.
func (s *KVStore) Path() string {
	return s.path
}

func (s *KVStore) lockPath() string {
	return s.path + ".lock"
}

// withSharedLock executes fn while holding a shared (read) file lock.
// Multiple processes can hold shared locks simultaneously.
func (s *KVStore) withSharedLock(fn func() error) error {
	return s.withFileLock(syscall.LOCK_SH, fn)
}

// withExclusiveLock executes fn while holding an exclusive (write) file lock.
func (s *KVStore) withExclusiveLock(fn func() error) error {
	return s.withFileLock(syscall.LOCK_EX, fn)
}

func (s *KVStore) withFileLock(lockType int, fn func() error) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create lock directory: %w", err)
	}

	f, err := os.OpenFile(s.lockPath(), os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return fmt.Errorf("open lock file: %w", err)
	}
	defer f.Close() //nolint:errcheck

	if err := syscall.Flock(int(f.Fd()), lockType); err != nil {
		return fmt.Errorf("acquire file lock: %w", err)
	}
	defer syscall.Flock(int(f.Fd()), syscall.LOCK_UN) //nolint:errcheck

	return fn()
}

// Get returns an entry by key. Returns ErrKeyNotFound if not found.
func (s *KVStore) Get(ctx context.Context, key string) (storage.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var entry storage.Entry
	var found bool

	err := s.withSharedLock(func() error {
		file, err := s.load()
		if err != nil {
			return err
		}

		entry, found = file.Entries[key]
		return nil
	})
	if err != nil {
		return storage.Entry{}, err
	}

	if !found {
		return storage.Entry{}, storage.ErrKeyNotFound
	}

	return entry, nil
}

// Set creates or updates an entry.
func (s *KVStore) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.withExclusiveLock(func() error {
		file, err := s.load()
		if errors.Is(err, errCorruptFile) {
			// Unparseable content holds nothing recoverable; start over.
			file, err = KVFile{Entries: make(map[string]storage.Entry)}, nil
		}
		if err != nil {
			return err
		}

		now := time.Now()
		entry, exists := file.Entries[key]
		if exists {
			entry.Value = value
			entry.UpdatedAt = now
		} else {
			entry = storage.Entry{
				Key:       key,
				Value:     value,
				CreatedAt: now,
				UpdatedAt: now,
			}
		}

		file.Entries[key] = entry
		return s.save(file)
	})
}

// Delete removes an entry by key. Returns ErrKeyNotFound if not found.
func (s *KVStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var notFound bool

	err := s.withExclusiveLock(func() error {
		file, err := s.load()
		if err != nil {
			return err
		}

		if _, ok := file.Entries[key]; !ok {
			notFound = true
			return nil
		}

		delete(file.Entries, key)
		return s.save(file)
	})
	if err != nil {
		return err
	}

	if notFound {
		return storage.ErrKeyNotFound
	}

	return nil
}

// load reads the KV file from disk.
// Returns empty KVFile if file doesn't exist.
func (s *KVStore) load() (KVFile, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return KVFile{Entries: make(map[string]storage.Entry)}, nil
		}
		return KVFile{}, err
	}

	if len(data) == 0 {
		return KVFile{Entries: make(map[string]storage.Entry)}, nil
	}

	var file KVFile
	if err := json.Unmarshal(data, &file); err != nil {
		return KVFile{}, fmt.Errorf("parse %s: %w: %w", s.path, errCorruptFile, err)
	}

	if file.Entries == nil {
		file.Entries = make(map[string]storage.Entry)
	}

	return file, nil
}

// save writes the KV file to disk atomically.
func (s *KVStore) save(file KVFile) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}

	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp) // best effort cleanup
		return fmt.Errorf("rename temp file: %w", err)
	}

	return nil
}
