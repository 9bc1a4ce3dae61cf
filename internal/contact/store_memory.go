package contact

import (
	"context"
	"sort"
	"sync"
)

// MemStore keeps the contact book in process memory. The source system is
// deliberately non-persistent, so there is no file or database variant.
type MemStore struct {
	mu       sync.RWMutex
	contacts map[int]Contact
	nextID   int
}

func NewMemStore() *MemStore {
	return &MemStore{
		contacts: make(map[int]Contact),
		nextID:   1,
	}
}

func (s *MemStore) Create(_ context.Context, name, email string) (Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := Contact{ID: s.nextID, Name: name, Email: email}
	s.contacts[c.ID] = c
	s.nextID++
	return c, nil
}

func (s *MemStore) Get(_ context.Context, id int) (Contact, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.contacts[id]
	return c, ok, nil
}

func (s *MemStore) Search(_ context.Context, name string) ([]Contact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := make([]Contact, 0)
	for _, c := range s.contacts {
		if nameMatches(c.Name, name) {
			matches = append(matches, c)
		}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].ID < matches[j].ID })
	return matches, nil
}

func (s *MemStore) Update(_ context.Context, c Contact) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.contacts[c.ID]; !ok {
		return ErrNotFound
	}
	s.contacts[c.ID] = c
	return nil
}

func (s *MemStore) Delete(_ context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.contacts[id]; !ok {
		return ErrNotFound
	}
	delete(s.contacts, id)
	return nil
}

func (s *MemStore) Ping(_ context.Context) error { return nil }
