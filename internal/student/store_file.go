package student

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"

	"MiniSuite/pkg/jsonfile"
)

// FileStore keeps all students in memory, persisted as one JSON object keyed
// by lowercased name. Every mutation rewrites the file atomically.
type FileStore struct {
	mu       sync.RWMutex
	path     string
	students map[string]Student
	log      *zap.Logger
}

func NewFileStore(path string, log *zap.Logger) *FileStore {
	s := &FileStore{
		path:     path,
		students: map[string]Student{},
		log:      log,
	}

	loaded := map[string]Student{}
	ok, err := jsonfile.Load(path, &loaded)
	switch {
	case err != nil:
		if log != nil {
			log.Warn("students load failed, starting empty", zap.String("path", path), zap.Error(err))
		}
	case ok:
		s.students = loaded
		if log != nil {
			log.Info("students loaded", zap.String("path", path), zap.Int("count", len(loaded)))
		}
	}

	return s
}

func (s *FileStore) Create(_ context.Context, st Student) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := Key(st.Name)
	if _, ok := s.students[key]; ok {
		return ErrExists
	}

	s.students[key] = st
	return s.persistLocked()
}

func (s *FileStore) Get(_ context.Context, name string) (Student, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.students[Key(name)]
	return st, ok, nil
}

func (s *FileStore) List(_ context.Context) ([]Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Student, 0, len(s.students))
	for _, st := range s.students {
		out = append(out, st)
	}

	sort.Slice(out, func(i, j int) bool { return Key(out[i].Name) < Key(out[j].Name) })
	return out, nil
}

func (s *FileStore) Update(_ context.Context, st Student) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := Key(st.Name)
	if _, ok := s.students[key]; !ok {
		return ErrNotFound
	}

	s.students[key] = st
	return s.persistLocked()
}

func (s *FileStore) Delete(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := Key(name)
	if _, ok := s.students[key]; !ok {
		return ErrNotFound
	}

	delete(s.students, key)
	return s.persistLocked()
}

func (s *FileStore) Ping(_ context.Context) error { return nil }

func (s *FileStore) persistLocked() error {
	if err := jsonfile.Save(s.path, s.students); err != nil {
		if s.log != nil {
			s.log.Error("students persist failed", zap.String("path", s.path), zap.Error(err))
		}
		return fmt.Errorf("persist students: %w", err)
	}
	return nil
}
