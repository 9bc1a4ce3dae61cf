package contact

import (
	"context"
	"errors"
	"net/mail"
	"strings"
)

var ErrNotFound = errors.New("contact not found")

type Contact struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ValidEmail reports whether addr is a bare RFC 5322 address.
// Display names ("Bob <bob@x>") are rejected.
func ValidEmail(addr string) bool {
	parsed, err := mail.ParseAddress(addr)
	return err == nil && parsed.Address == addr
}

type Store interface {
	Create(ctx context.Context, name, email string) (Contact, error)
	Get(ctx context.Context, id int) (Contact, bool, error)
	Search(ctx context.Context, name string) ([]Contact, error)
	Update(ctx context.Context, c Contact) error
	Delete(ctx context.Context, id int) error
	Ping(ctx context.Context) error
}

func nameMatches(contactName, query string) bool {
	return strings.Contains(strings.ToLower(contactName), strings.ToLower(query))
}
