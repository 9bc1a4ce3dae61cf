package student

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgresStore persists students in a single table; scores ride along as a
// JSONB column since they are only ever read back whole. Expected schema:
//
//	CREATE TABLE students (
//	    key     TEXT PRIMARY KEY,
//	    name    TEXT NOT NULL,
//	    scores  JSONB NOT NULL,
//	    average DOUBLE PRECISION NOT NULL,
//	    grade   TEXT NOT NULL
//	);

const (
	pingTimeout  = 1 * time.Second
	queryTimeout = 3 * time.Second
	pgUniqueCode = "23505"
)

type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return withTimeout(ctx, pingTimeout, func(ctx context.Context) error {
		return s.db.PingContext(ctx)
	})
}

func (s *PostgresStore) Create(ctx context.Context, st Student) error {
	scores, err := json.Marshal(st.SubjectScores)
	if err != nil {
		return err
	}

	return withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO students (key, name, scores, average, grade)
			VALUES ($1, $2, $3, $4, $5)
		`, Key(st.Name), st.Name, scores, st.Average, st.Grade)

		if isUniqueViolation(err) {
			return ErrExists
		}
		return err
	})
}

func (s *PostgresStore) Get(ctx context.Context, name string) (Student, bool, error) {
	var (
		st  Student
		raw []byte
	)

	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		return s.db.QueryRowContext(ctx, `
			SELECT name, scores, average, grade
			FROM students
			WHERE key = $1
		`, Key(name)).Scan(&st.Name, &raw, &st.Average, &st.Grade)
	})

	if err == sql.ErrNoRows {
		return Student{}, false, nil
	}
	if err != nil {
		return Student{}, false, err
	}

	if err := json.Unmarshal(raw, &st.SubjectScores); err != nil {
		return Student{}, false, err
	}
	return st, true, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]Student, error) {
	var out []Student

	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		rows, err := s.db.QueryContext(ctx, `
			SELECT name, scores, average, grade
			FROM students
			ORDER BY key ASC
		`)
		if err != nil {
			return err
		}
		defer rows.Close()

		out = make([]Student, 0, 16)
		for rows.Next() {
			var (
				st  Student
				raw []byte
			)
			if err := rows.Scan(&st.Name, &raw, &st.Average, &st.Grade); err != nil {
				return err
			}
			if err := json.Unmarshal(raw, &st.SubjectScores); err != nil {
				return err
			}
			out = append(out, st)
		}
		return rows.Err()
	})

	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *PostgresStore) Update(ctx context.Context, st Student) error {
	scores, err := json.Marshal(st.SubjectScores)
	if err != nil {
		return err
	}

	return withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		res, err := s.db.ExecContext(ctx, `
			UPDATE students
			SET name = $2, scores = $3, average = $4, grade = $5
			WHERE key = $1
		`, Key(st.Name), st.Name, scores, st.Average, st.Grade)
		if err != nil {
			return err
		}

		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (s *PostgresStore) Delete(ctx context.Context, name string) error {
	return withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		res, err := s.db.ExecContext(ctx, `
			DELETE FROM students WHERE key = $1
		`, Key(name))
		if err != nil {
			return err
		}

		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func withTimeout(parent context.Context, d time.Duration, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(parent, d)
	defer cancel()
	return fn(ctx)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueCode
}
