package auth

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Store persists the credential between runs, the way the browser kept it in
// local storage. There is at most one credential.
type Store struct {
	db *sqlx.DB
}

func NewStore(db *sqlx.DB) (*Store, error) {
	if db == nil {
		return nil, errors.New("unable to initialize credential store due to the missing db dependency")
	}

	return &Store{db: db}, nil
}

// Load returns the cached token, or an empty string when none is stored
func (s *Store) Load() (string, error) {
	var token string
	err := s.db.Get(&token, `SELECT token FROM credentials WHERE id = 1`)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return "", nil
	case err != nil:
		return "", fmt.Errorf("unable to load credential: %w", err)
	}

	return token, nil
}

func (s *Store) Save(token string) error {
	const q = `
		INSERT INTO credentials (id, token, created_at) VALUES (1, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET token = excluded.token, created_at = excluded.created_at`

	if _, err := s.db.Exec(q, token); err != nil {
		return fmt.Errorf("unable to save credential: %w", err)
	}

	return nil
}

func (s *Store) Delete() error {
	if _, err := s.db.Exec(`DELETE FROM credentials`); err != nil {
		return fmt.Errorf("unable to delete credential: %w", err)
	}

	return nil
}
