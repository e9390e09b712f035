package storage

import (
	"sort"
	"strings"
	"sync"

	"github.com/julianstephens/agenda/internal/constants"
)

var (
	_ Provider = (*MemoryStore)(nil)
	_ Atomic   = (*MemoryStore)(nil)
)

// MemoryStore keeps the table in process memory. Nothing survives the
// process; it backs tests and the ":memory:" config path.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]string)}
}

func (s *MemoryStore) Init() error { return nil }

func (s *MemoryStore) Load() error { return nil }

func (s *MemoryStore) Close() error { return nil }

func (s *MemoryStore) GetConfigPath() string { return constants.MemoryStorePath }

func (s *MemoryStore) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return memoryKV{s}.Get(key)
}

func (s *MemoryStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return memoryKV{s}.Set(key, value)
}

func (s *MemoryStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

func (s *MemoryStore) Keys(prefix string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var keys []string
	for k := range s.data {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *MemoryStore) Atomically(fn func(KV) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(memoryKV{s})
}

// memoryKV accesses the map without locking; callers hold s.mu.
type memoryKV struct{ s *MemoryStore }

func (kv memoryKV) Get(key string) (string, bool, error) {
	v, ok := kv.s.data[key]
	return v, ok, nil
}

func (kv memoryKV) Set(key, value string) error {
	kv.s.data[key] = value
	return nil
}
