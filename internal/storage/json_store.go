package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/gofrs/flock"

	"github.com/julianstephens/agenda/internal/constants"
	apperrors "github.com/julianstephens/agenda/internal/errors"
	"github.com/julianstephens/agenda/internal/logger"
)

var (
	_ Provider = (*JSONStore)(nil)
	_ Atomic   = (*JSONStore)(nil)
)

// fileData is the on-disk shape of the JSON store.
type fileData struct {
	Version int               `json:"version"`
	Entries map[string]string `json:"entries"`

	dirty   bool
	corrupt bool
}

// JSONStore keeps the whole table in a single JSON file. Every operation
// holds an exclusive file lock for its read-modify-write so that two
// processes sharing the file cannot interleave partial updates.
type JSONStore struct {
	path     string
	fileLock *flock.Flock
	mu       sync.Mutex
	loaded   bool
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path:     configPath,
		fileLock: flock.New(configPath + ".lock"),
	}
}

func (s *JSONStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.withFileLock(func() error {
		return s.write(&fileData{Version: 1, Entries: make(map[string]string)})
	}); err != nil {
		return err
	}
	s.loaded = true
	return nil
}

func (s *JSONStore) Load() error {
	if _, err := os.Stat(s.path); err != nil {
		if os.IsNotExist(err) {
			return apperrors.ErrNotInitialized
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}
	s.mu.Lock()
	s.loaded = true
	s.mu.Unlock()
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

// Verify reports ErrCorruptStorage when the file cannot be decoded.
func (s *JSONStore) Verify() error {
	return s.mutate(func(data *fileData) error {
		if data.corrupt {
			return apperrors.ErrCorruptStorage
		}
		return nil
	})
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}

func (s *JSONStore) Get(key string) (string, bool, error) {
	var (
		value string
		ok    bool
	)
	err := s.Atomically(func(kv KV) error {
		var err error
		value, ok, err = kv.Get(key)
		return err
	})
	return value, ok, err
}

func (s *JSONStore) Set(key, value string) error {
	return s.Atomically(func(kv KV) error {
		return kv.Set(key, value)
	})
}

func (s *JSONStore) Delete(key string) error {
	return s.mutate(func(data *fileData) error {
		if _, ok := data.Entries[key]; ok {
			delete(data.Entries, key)
			data.dirty = true
		}
		return nil
	})
}

func (s *JSONStore) Keys(prefix string) ([]string, error) {
	var keys []string
	err := s.mutate(func(data *fileData) error {
		for k := range data.Entries {
			if strings.HasPrefix(k, prefix) {
				keys = append(keys, k)
			}
		}
		return nil
	})
	sort.Strings(keys)
	return keys, err
}

// Atomically loads the file once under the file lock, runs fn against the
// in-memory table and writes the file back only if fn changed something.
func (s *JSONStore) Atomically(fn func(KV) error) error {
	return s.mutate(func(data *fileData) error {
		return fn(fileKV{data})
	})
}

func (s *JSONStore) mutate(fn func(*fileData) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return apperrors.ErrNotLoaded
	}

	return s.withFileLock(func() error {
		data, err := s.read()
		if err != nil {
			return err
		}
		if err := fn(data); err != nil {
			return err
		}
		if !data.dirty {
			return nil
		}
		if data.corrupt {
			return apperrors.ErrCorruptStorage
		}
		return s.write(data)
	})
}

// fileKV reads and writes the decoded table; callers hold the file lock.
type fileKV struct{ data *fileData }

func (kv fileKV) Get(key string) (string, bool, error) {
	v, ok := kv.data.Entries[key]
	return v, ok, nil
}

func (kv fileKV) Set(key, value string) error {
	if old, ok := kv.data.Entries[key]; ok && old == value {
		return nil
	}
	kv.data.Entries[key] = value
	kv.data.dirty = true
	return nil
}

func (s *JSONStore) withFileLock(fn func() error) error {
	ctx, cancel := context.WithTimeout(context.Background(), constants.LockTimeout)
	defer cancel()

	locked, err := s.fileLock.TryLockContext(ctx, constants.LockRetryInterval)
	if err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("could not acquire file lock")
	}
	defer func() { _ = s.fileLock.Unlock() }()

	return fn()
}

func (s *JSONStore) read() (*fileData, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return &fileData{Version: 1, Entries: make(map[string]string)}, nil
		}
		return nil, fmt.Errorf("failed to read storage: %w", err)
	}

	data := &fileData{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, data); err != nil {
			// A corrupt file reads as empty but is never written over.
			logger.Warn("Storage file is not valid JSON, treating as empty", "path", s.path, "error", err)
			data = &fileData{Version: 1, corrupt: true}
		}
	}
	if data.Entries == nil {
		data.Entries = make(map[string]string)
	}
	return data, nil
}

func (s *JSONStore) write(data *fileData) error {
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to write storage: %w", err)
	}
	return nil
}
