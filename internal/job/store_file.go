package job

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"MiniSuite/pkg/jsonfile"
)

// FileStore persists applications as a JSON array, append-ordered by id.
type FileStore struct {
	mu     sync.RWMutex
	path   string
	apps   []Application
	nextID int
	log    *zap.Logger
}

func NewFileStore(path string, log *zap.Logger) *FileStore {
	s := &FileStore{
		path:   path,
		nextID: 1,
		log:    log,
	}

	var loaded []Application
	ok, err := jsonfile.Load(path, &loaded)
	switch {
	case err != nil:
		if log != nil {
			log.Warn("applications load failed, starting empty", zap.String("path", path), zap.Error(err))
		}
	case ok:
		s.apps = loaded
		for _, a := range loaded {
			if a.ID >= s.nextID {
				s.nextID = a.ID + 1
			}
		}
		if log != nil {
			log.Info("applications loaded",
				zap.String("path", path),
				zap.Int("count", len(loaded)),
				zap.Int("next_id", s.nextID))
		}
	}

	return s
}

func (s *FileStore) Create(_ context.Context, company, title string, status Status) (Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	app := Application{
		ID:          s.nextID,
		Company:     company,
		Title:       title,
		Status:      status,
		DateApplied: time.Now().UTC(),
	}

	s.apps = append(s.apps, app)
	s.nextID++

	if err := jsonfile.Save(s.path, s.apps); err != nil {
		s.apps = s.apps[:len(s.apps)-1]
		s.nextID--
		if s.log != nil {
			s.log.Error("applications persist failed", zap.String("path", s.path), zap.Error(err))
		}
		return Application{}, fmt.Errorf("persist applications: %w", err)
	}
	return app, nil
}

func (s *FileStore) List(_ context.Context) ([]Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Application, len(s.apps))
	copy(out, s.apps)
	return out, nil
}

func (s *FileStore) Get(_ context.Context, id int) (Application, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, a := range s.apps {
		if a.ID == id {
			return a, true, nil
		}
	}
	return Application{}, false, nil
}

func (s *FileStore) Ping(_ context.Context) error { return nil }
