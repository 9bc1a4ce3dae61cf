package student

import (
	"context"
	"errors"
	"math"
	"strings"
)

var (
	ErrExists   = errors.New("student already exists")
	ErrNotFound = errors.New("student not found")
)

type Student struct {
	Name          string             `json:"name"`
	SubjectScores map[string]float64 `json:"subject_scores"`
	Average       float64            `json:"average"`
	Grade         string             `json:"grade"`
}

// Key is the store key: records are unique by case-insensitive name.
func Key(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// New derives the average and letter grade from the submitted scores.
func New(name string, scores map[string]float64) Student {
	avg, grade := averageAndGrade(scores)
	return Student{
		Name:          name,
		SubjectScores: scores,
		Average:       avg,
		Grade:         grade,
	}
}

func averageAndGrade(scores map[string]float64) (float64, string) {
	if len(scores) == 0 {
		return 0, "N/A"
	}

	var sum float64
	for _, s := range scores {
		sum += s
	}
	avg := math.Round(sum/float64(len(scores))*100) / 100

	switch {
	case avg >= 90:
		return avg, "A"
	case avg >= 80:
		return avg, "B"
	case avg >= 70:
		return avg, "C"
	case avg >= 60:
		return avg, "D"
	default:
		return avg, "F"
	}
}

type Store interface {
	Create(ctx context.Context, s Student) error
	Get(ctx context.Context, name string) (Student, bool, error)
	List(ctx context.Context) ([]Student, error)
	Update(ctx context.Context, s Student) error
	Delete(ctx context.Context, name string) error
	Ping(ctx context.Context) error
}
