package note

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"MiniSuite/pkg/jsonfile"
)

// DirStore keeps one JSON file per note under a single directory, named
// <uuid>.json. The mutex only serializes mutations; the directory itself is
// the source of truth, so nothing is cached between calls.
type DirStore struct {
	mu  sync.Mutex
	dir string
	log *zap.Logger
}

func NewDirStore(dir string, log *zap.Logger) (*DirStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create notes dir %s: %w", dir, err)
	}
	return &DirStore{dir: dir, log: log}, nil
}

func (s *DirStore) Create(_ context.Context, title, content string) (Note, error) {
	n := Note{
		ID:      uuid.NewString(),
		Title:   title,
		Content: content,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := jsonfile.Save(s.notePath(n.ID), n); err != nil {
		return Note{}, err
	}
	return n, nil
}

func (s *DirStore) Get(_ context.Context, id string) (Note, bool, error) {
	return s.read(id)
}

func (s *DirStore) List(_ context.Context) ([]Note, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("list notes dir %s: %w", s.dir, err)
	}

	notes := make([]Note, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}

		id := strings.TrimSuffix(e.Name(), ".json")
		n, ok, err := s.read(id)
		if err != nil || !ok {
			if s.log != nil {
				s.log.Warn("skipping unreadable note file", zap.String("file", e.Name()), zap.Error(err))
			}
			continue
		}
		notes = append(notes, n)
	}

	sort.Slice(notes, func(i, j int) bool { return notes[i].ID < notes[j].ID })
	return notes, nil
}

func (s *DirStore) Update(_ context.Context, id, title, content string) (Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok, err := s.read(id)
	if err != nil {
		return Note{}, err
	}
	if !ok {
		return Note{}, ErrNotFound
	}

	n := Note{ID: id, Title: title, Content: content}
	if err := jsonfile.Save(s.notePath(id), n); err != nil {
		return Note{}, err
	}
	return n, nil
}

func (s *DirStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.notePath(id))
	if os.IsNotExist(err) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("delete note %s: %w", id, err)
	}
	return nil
}

func (s *DirStore) Ping(_ context.Context) error {
	_, err := os.Stat(s.dir)
	return err
}

func (s *DirStore) read(id string) (Note, bool, error) {
	var n Note
	ok, err := jsonfile.Load(s.notePath(id), &n)
	if err != nil {
		return Note{}, false, err
	}
	return n, ok, nil
}

// notePath rejects path separators in ids so a crafted id cannot escape the
// notes directory.
func (s *DirStore) notePath(id string) string {
	return filepath.Join(s.dir, filepath.Base(id)+".json")
}
