package media

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
)

// MemoryStore is an in-memory Store used by tests. Safe for concurrent use.
type MemoryStore struct {
	name    string
	objects map[string][]byte
	mu      sync.RWMutex

	// FailPut and FailRemove make the next calls fail, for exercising
	// host-failure paths.
	FailPut    error
	FailRemove error
}

func NewMemoryStore(name string) *MemoryStore {
	return &MemoryStore{
		name:    name,
		objects: make(map[string][]byte),
	}
}

func (m *MemoryStore) url(key string) string {
	return "memory://" + m.name + "/" + key
}

func (m *MemoryStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	if m.FailPut != nil {
		return "", m.FailPut
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read content: %w", err)
	}
	if int64(len(data)) != size {
		return "", fmt.Errorf("size mismatch: expected %d bytes, got %d", size, len(data))
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = data

	return m.url(key), nil
}

func (m *MemoryStore) Remove(ctx context.Context, url string) error {
	if m.FailRemove != nil {
		return m.FailRemove
	}

	prefix := "memory://" + m.name + "/"
	if !strings.HasPrefix(url, prefix) {
		return fmt.Errorf("url %q is not in store %q", url, m.name)
	}
	key := strings.TrimPrefix(url, prefix)

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.objects[key]; !ok {
		return fmt.Errorf("object not found: %s", key)
	}
	delete(m.objects, key)

	return nil
}

// Len reports how many objects the store holds.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.objects)
}
