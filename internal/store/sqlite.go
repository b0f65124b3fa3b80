package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"phonebook/internal/logging"
	"phonebook/internal/phonebook"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// SQLiteStore persists persons in a single SQLite file.
type SQLiteStore struct {
	db     *sql.DB
	mu     sync.Mutex // serializes Add so the duplicate check and insert are atomic
	dbPath string
}

// NewSQLiteStore opens (creating if needed) the database at path.
// ":memory:" gives a private in-memory database.
func NewSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout = 5000"); err != nil {
		logging.StoreDebug("Failed to set sqlite busy_timeout: %v", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode = WAL"); err != nil {
		logging.StoreDebug("Failed to set sqlite journal_mode=WAL: %v", err)
	}

	if err := RunMigrations(db); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteStore{db: db, dbPath: path}, nil
}

func (s *SQLiteStore) All(ctx context.Context) ([]phonebook.Person, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, phone, street, city FROM persons ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("failed to query persons: %w", err)
	}
	defer rows.Close()

	persons := []phonebook.Person{}
	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, err
		}
		persons = append(persons, p)
	}
	return persons, rows.Err()
}

func (s *SQLiteStore) Add(ctx context.Context, np phonebook.NewPerson) (phonebook.Person, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.FindByName(ctx, np.Name)
	if err != nil {
		return phonebook.Person{}, err
	}
	if existing != nil {
		return phonebook.Person{}, ErrDuplicateName
	}

	p := phonebook.Person{
		ID:      uuid.NewString(),
		Name:    np.Name,
		Phone:   clonePhone(np.Phone),
		Address: phonebook.Address{Street: np.Street, City: np.City},
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO persons (id, name, phone, street, city, created_at) VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)`,
		p.ID, p.Name, p.Phone, p.Address.Street, p.Address.City)
	if err != nil {
		logging.StoreError("insert %q failed: %v", p.Name, err)
		return phonebook.Person{}, fmt.Errorf("failed to insert person: %w", err)
	}
	logging.StoreDebug("inserted person %s", p.ID)
	return p, nil
}

func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM persons`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count persons: %w", err)
	}
	return n, nil
}

func (s *SQLiteStore) FindByName(ctx context.Context, name string) (*phonebook.Person, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, name, phone, street, city FROM persons WHERE name = ?`, name)
	p, err := scanPerson(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPerson(r rowScanner) (phonebook.Person, error) {
	var p phonebook.Person
	var phone sql.NullString
	if err := r.Scan(&p.ID, &p.Name, &phone, &p.Address.Street, &p.Address.City); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return p, err
		}
		return p, fmt.Errorf("failed to scan person: %w", err)
	}
	if phone.Valid && phone.String != "" {
		v := phone.String
		p.Phone = &v
	}
	return p, nil
}
