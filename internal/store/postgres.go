package store

import (
	"context"
	"errors"
	"fmt"

	"phonebook/internal/logging"
	"phonebook/internal/phonebook"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const createPersonsPostgres = `
CREATE TABLE IF NOT EXISTS persons (
	seq        BIGSERIAL PRIMARY KEY,
	id         TEXT NOT NULL UNIQUE,
	name       TEXT NOT NULL UNIQUE,
	phone      TEXT,
	street     TEXT NOT NULL,
	city       TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// uniqueViolation is the Postgres SQLSTATE for a unique constraint failure.
const uniqueViolation = "23505"

// PostgresStore persists persons in Postgres through a pgx pool.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore connects to dsn and ensures the persons table exists.
func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to reach postgres: %w", err)
	}
	if _, err := pool.Exec(ctx, createPersonsPostgres); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create persons table: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) All(ctx context.Context) ([]phonebook.Person, error) {
	rows, err := s.pool.Query(ctx, `SELECT id, name, phone, street, city FROM persons ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("failed to query persons: %w", err)
	}
	defer rows.Close()

	persons := []phonebook.Person{}
	for rows.Next() {
		p, err := scanPgPerson(rows)
		if err != nil {
			return nil, err
		}
		persons = append(persons, p)
	}
	return persons, rows.Err()
}

func (s *PostgresStore) Add(ctx context.Context, np phonebook.NewPerson) (phonebook.Person, error) {
	p := phonebook.Person{
		ID:      uuid.NewString(),
		Name:    np.Name,
		Phone:   clonePhone(np.Phone),
		Address: phonebook.Address{Street: np.Street, City: np.City},
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO persons (id, name, phone, street, city) VALUES ($1, $2, $3, $4, $5)`,
		p.ID, p.Name, p.Phone, p.Address.Street, p.Address.City)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation && pgErr.ConstraintName == "persons_name_key" {
			return phonebook.Person{}, ErrDuplicateName
		}
		logging.StoreError("insert %q failed: %v", p.Name, err)
		return phonebook.Person{}, fmt.Errorf("failed to insert person: %w", err)
	}
	return p, nil
}

func (s *PostgresStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM persons`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count persons: %w", err)
	}
	return n, nil
}

func (s *PostgresStore) FindByName(ctx context.Context, name string) (*phonebook.Person, error) {
	row := s.pool.QueryRow(ctx, `SELECT id, name, phone, street, city FROM persons WHERE name = $1`, name)
	p, err := scanPgPerson(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func scanPgPerson(r pgx.Row) (phonebook.Person, error) {
	var p phonebook.Person
	var phone *string
	if err := r.Scan(&p.ID, &p.Name, &phone, &p.Address.Street, &p.Address.City); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return p, err
		}
		return p, fmt.Errorf("failed to scan person: %w", err)
	}
	p.Phone = clonePhone(phone)
	return p, nil
}
