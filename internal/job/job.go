package job

import (
	"context"
	"time"
)

type Status string

const (
	StatusPending      Status = "Pending"
	StatusInterviewing Status = "Interviewing"
	StatusRejected     Status = "Rejected"
	StatusAccepted     Status = "Accepted"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInterviewing, StatusRejected, StatusAccepted:
		return true
	}
	return false
}

type Application struct {
	ID          int       `json:"id"`
	Company     string    `json:"company"`
	Title       string    `json:"title"`
	Status      Status    `json:"status"`
	DateApplied time.Time `json:"date_applied"`
}

// Store assigns ids from an integer sequence that survives restarts: after a
// reload the next id is one past the highest id on file.
type Store interface {
	Create(ctx context.Context, company, title string, status Status) (Application, error)
	List(ctx context.Context) ([]Application, error)
	Get(ctx context.Context, id int) (Application, bool, error)
	Ping(ctx context.Context) error
}
