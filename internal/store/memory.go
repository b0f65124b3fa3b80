package store

import (
	"context"
	"sync"

	"phonebook/internal/phonebook"

	"github.com/google/uuid"
)

// MemoryStore keeps persons in a slice guarded by a RWMutex.
type MemoryStore struct {
	mu      sync.RWMutex
	persons []phonebook.Person
	byName  map[string]int
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byName: make(map[string]int)}
}

func (m *MemoryStore) All(_ context.Context) ([]phonebook.Person, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]phonebook.Person, len(m.persons))
	for i, p := range m.persons {
		p.Phone = clonePhone(p.Phone)
		out[i] = p
	}
	return out, nil
}

func (m *MemoryStore) Add(_ context.Context, np phonebook.NewPerson) (phonebook.Person, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.byName[np.Name]; exists {
		return phonebook.Person{}, ErrDuplicateName
	}

	p := phonebook.Person{
		ID:      uuid.NewString(),
		Name:    np.Name,
		Phone:   clonePhone(np.Phone),
		Address: phonebook.Address{Street: np.Street, City: np.City},
	}
	m.byName[p.Name] = len(m.persons)
	m.persons = append(m.persons, p)

	out := p
	out.Phone = clonePhone(p.Phone)
	return out, nil
}

func (m *MemoryStore) Count(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.persons), nil
}

func (m *MemoryStore) FindByName(_ context.Context, name string) (*phonebook.Person, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	idx, ok := m.byName[name]
	if !ok {
		return nil, nil
	}
	p := m.persons[idx]
	p.Phone = clonePhone(p.Phone)
	return &p, nil
}

func (m *MemoryStore) Close() error { return nil }
