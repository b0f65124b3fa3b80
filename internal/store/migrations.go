package store

import (
	"database/sql"
	"fmt"

	"phonebook/internal/logging"
)

// Schema versions (SQLite PRAGMA user_version):
// v1: persons table
// v2: created_at column
const CurrentSchemaVersion = 2

const createPersonsSQLite = `
CREATE TABLE IF NOT EXISTS persons (
	seq    INTEGER PRIMARY KEY AUTOINCREMENT,
	id     TEXT NOT NULL UNIQUE,
	name   TEXT NOT NULL UNIQUE,
	phone  TEXT,
	street TEXT NOT NULL,
	city   TEXT NOT NULL
)`

// Migration adds a column to an existing table.
type Migration struct {
	Table  string
	Column string
	Def    string
}

// pendingMigrations handle databases created before a column existed.
var pendingMigrations = []Migration{
	{"persons", "created_at", "DATETIME"},
}

// RunMigrations brings a SQLite database up to CurrentSchemaVersion.
func RunMigrations(db *sql.DB) error {
	timer := logging.StartTimer(logging.CategoryStore, "RunMigrations")
	defer timer.Stop()

	version, err := GetSchemaVersion(db)
	if err != nil {
		return err
	}
	if version >= CurrentSchemaVersion {
		logging.StoreDebug("schema already at v%d", version)
		return nil
	}

	if _, err := db.Exec(createPersonsSQLite); err != nil {
		return fmt.Errorf("failed to create persons table: %w", err)
	}

	for _, m := range pendingMigrations {
		if columnExists(db, m.Table, m.Column) {
			continue
		}
		stmt := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", m.Table, m.Column, m.Def)
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %s.%s failed: %w", m.Table, m.Column, err)
		}
		logging.Store("applied migration %s.%s", m.Table, m.Column)
	}

	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", CurrentSchemaVersion)); err != nil {
		return fmt.Errorf("failed to record schema version: %w", err)
	}
	logging.Store("schema migrated v%d -> v%d", version, CurrentSchemaVersion)
	return nil
}

// GetSchemaVersion returns the PRAGMA user_version of a database.
func GetSchemaVersion(db *sql.DB) (int, error) {
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return version, nil
}

// columnExists checks a column via PRAGMA table_info.
func columnExists(db *sql.DB, table, column string) bool {
	rows, err := db.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		logging.StoreDebug("PRAGMA table_info(%s) failed: %v", table, err)
		return false
	}
	defer rows.Close()

	for rows.Next() {
		var cid int
		var name, ctype string
		var notnull, pk int
		var dflt interface{}
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dflt, &pk); err != nil {
			continue
		}
		if name == column {
			return true
		}
	}
	return false
}
