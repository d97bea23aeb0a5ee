package localdb

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// schema holds everything the console keeps between invocations: the cached
// credential and the sale being built.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS credentials (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		token TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);`,
	`CREATE TABLE IF NOT EXISTS sale_draft (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		customer_id INTEGER
	);`,
	`CREATE TABLE IF NOT EXISTS sale_draft_items (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		medication_id INTEGER NOT NULL,
		medication_name TEXT NOT NULL DEFAULT '',
		quantity INTEGER NOT NULL CHECK (quantity > 0),
		unit_price TEXT NOT NULL
	);`,
}

// Open opens the SQLite file at path and makes sure the schema exists. Use
// ":memory:" for a throwaway database.
func Open(path string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("unable to open local database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := Migrate(db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func Migrate(db *sqlx.DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	return nil
}
