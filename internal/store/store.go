// Package store persists phonebook persons for the development server.
// Backends: in-memory, SQLite (modernc.org/sqlite) and Postgres (pgx).
package store

import (
	"context"
	"errors"
	"strings"

	"phonebook/internal/logging"
	"phonebook/internal/phonebook"
)

// ErrDuplicateName is returned by Add when a person with the same name exists.
var ErrDuplicateName = errors.New("name must be unique")

// Store is the persistence surface the dev server resolvers use.
// All returns persons in insertion order.
type Store interface {
	All(ctx context.Context) ([]phonebook.Person, error)
	Add(ctx context.Context, np phonebook.NewPerson) (phonebook.Person, error)
	Count(ctx context.Context) (int, error)
	// FindByName returns nil, nil when nobody has that name.
	FindByName(ctx context.Context, name string) (*phonebook.Person, error)
	Close() error
}

// Open picks a backend from dsn:
//
//	""  or "memory"                   in-memory
//	postgres://... or postgresql://... Postgres via pgxpool
//	sqlite://path or a plain path     SQLite file
func Open(ctx context.Context, dsn string) (Store, error) {
	switch {
	case dsn == "" || dsn == "memory":
		logging.Store("opening in-memory store")
		return NewMemoryStore(), nil
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		logging.Store("opening postgres store")
		return NewPostgresStore(ctx, dsn)
	default:
		path := strings.TrimPrefix(dsn, "sqlite://")
		logging.Store("opening sqlite store at %s", path)
		return NewSQLiteStore(ctx, path)
	}
}

// SeedPersons are the entries loaded by Seed.
func SeedPersons() []phonebook.NewPerson {
	phone := func(s string) *string { return &s }
	return []phonebook.NewPerson{
		{Name: "Arto Hellas", Phone: phone("040-123543"), Street: "Tapiolankatu 5 A", City: "Espoo"},
		{Name: "Matti Luukkainen", Phone: phone("040-432342"), Street: "Malminkaari 10 A", City: "Helsinki"},
		{Name: "Venla Ruuskanen", Street: "Nallemäentie 22 C", City: "Helsinki"},
	}
}

// Seed adds SeedPersons, skipping names that already exist.
func Seed(ctx context.Context, s Store) error {
	for _, np := range SeedPersons() {
		if _, err := s.Add(ctx, np); err != nil && !errors.Is(err, ErrDuplicateName) {
			return err
		}
	}
	return nil
}

func clonePhone(p *string) *string {
	if p == nil || *p == "" {
		return nil
	}
	v := *p
	return &v
}
