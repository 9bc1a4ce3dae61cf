package note

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("note not found")

type Note struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

type Store interface {
	Create(ctx context.Context, title, content string) (Note, error)
	Get(ctx context.Context, id string) (Note, bool, error)
	List(ctx context.Context) ([]Note, error)
	Update(ctx context.Context, id, title, content string) (Note, error)
	Delete(ctx context.Context, id string) error
	Ping(ctx context.Context) error
}
