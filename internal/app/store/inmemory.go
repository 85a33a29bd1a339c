package store

import (
	"context"
	"sync"

	"github.com/aseptimu/link-shortener/internal/app/service"
)

// InMemoryStore хранит пары в памяти процесса. Данные теряются при перезапуске.
type InMemoryStore struct {
	data map[string]string
	mu   sync.RWMutex
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		data: make(map[string]string),
	}
}

func (m *InMemoryStore) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, exists := m.data[key]
	if !exists {
		return "", service.ErrURLNotFound
	}
	return value, nil
}

func (m *InMemoryStore) Set(_ context.Context, key, url string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = url
	return nil
}

func (m *InMemoryStore) SetIfAbsent(_ context.Context, key, url string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.data[key]; exists {
		return false, nil
	}
	m.data[key] = url
	return true, nil
}

// Len возвращает число сохранённых ключей.
func (m *InMemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

func (m *InMemoryStore) Close() error {
	return nil
}
