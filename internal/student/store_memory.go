package student

import (
	"context"
	"sort"
	"sync"
)

type MemStore struct {
	mu       sync.RWMutex
	students map[string]Student
}

func NewMemStore() *MemStore {
	return &MemStore{students: map[string]Student{}}
}

func (s *MemStore) Create(_ context.Context, st Student) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := Key(st.Name)
	if _, ok := s.students[key]; ok {
		return ErrExists
	}
	s.students[key] = st
	return nil
}

func (s *MemStore) Get(_ context.Context, name string) (Student, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.students[Key(name)]
	return st, ok, nil
}

func (s *MemStore) List(_ context.Context) ([]Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Student, 0, len(s.students))
	for _, st := range s.students {
		out = append(out, st)
	}

	sort.Slice(out, func(i, j int) bool { return Key(out[i].Name) < Key(out[j].Name) })
	return out, nil
}

func (s *MemStore) Update(_ context.Context, st Student) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := Key(st.Name)
	if _, ok := s.students[key]; !ok {
		return ErrNotFound
	}
	s.students[key] = st
	return nil
}

func (s *MemStore) Delete(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := Key(name)
	if _, ok := s.students[key]; !ok {
		return ErrNotFound
	}
	delete(s.students, key)
	return nil
}

func (s *MemStore) Ping(_ context.Context) error { return nil }
