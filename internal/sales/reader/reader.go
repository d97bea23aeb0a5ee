package reader

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"farmacia/internal/sales"
)

// Service is responsible for performing read operations on the sale draft
// tables. We use a separate reader service to avoid commingling read/writes
type Service struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewService(logger *zap.Logger, db *sqlx.DB) (*Service, error) {
	s := Service{
		db:     db,
		logger: logger,
	}

	if err := s.validate(); err != nil {
		return nil, err
	}

	return &s, nil
}

func (s *Service) validate() error {
	var missingDeps []string

	for _, tc := range []struct {
		dep string
		chk func() bool
	}{
		{
			dep: "logger",
			chk: func() bool { return s.logger != nil },
		},
		{
			dep: "db",
			chk: func() bool { return s.db != nil },
		},
	} {
		if !tc.chk() {
			missingDeps = append(missingDeps, tc.dep)
		}
	}

	if len(missingDeps) > 0 {
		return fmt.Errorf(
			"unable to initialize service due to (%d) missing dependencies: %s",
			len(missingDeps),
			strings.Join(missingDeps, ","),
		)
	}

	return nil
}

// Draft returns the sale being built with its entries in insertion order
func (s *Service) Draft() (*sales.Draft, error) {
	var d sales.Draft

	customerID, err := s.customerID()
	if err != nil {
		return nil, err
	}
	d.CustomerID = customerID

	items, err := s.ListItems()
	switch {
	case err == nil:
		d.Items = items
	case errors.Is(err, sales.ErrNotFound):
	default:
		return nil, err
	}

	return &d, nil
}

// ListItems returns the draft entries, duplicates included, in the order
// they were added
func (s *Service) ListItems() ([]sales.LineEntry, error) {
	const stmt = `
		SELECT medication_id, medication_name, quantity, unit_price
		FROM sale_draft_items
		ORDER BY id`

	var items []sales.LineEntry
	if err := s.db.Select(&items, stmt); err != nil {
		const msg = "unable to query draft items"
		s.logger.Error(msg, zap.Error(err))
		return nil, fmt.Errorf(msg+": %w", err)
	}

	if len(items) == 0 {
		return nil, sales.ErrNotFound
	}

	return items, nil
}

// ItemID maps a zero based position in the draft to the row id
func (s *Service) ItemID(position int) (int64, error) {
	if position < 0 {
		return 0, sales.ErrItemOutOfRange
	}

	var id int64
	err := s.db.Get(&id, `SELECT id FROM sale_draft_items ORDER BY id LIMIT 1 OFFSET ?`, position)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return 0, sales.ErrItemOutOfRange
	case err != nil:
		const msg = "unable to query draft item"
		s.logger.Error(msg, zap.Error(err), zap.Int("position", position))
		return 0, fmt.Errorf(msg+": %w", err)
	}

	return id, nil
}

func (s *Service) customerID() (*int64, error) {
	var id sql.NullInt64
	err := s.db.Get(&id, `SELECT customer_id FROM sale_draft WHERE id = 1`)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, nil
	case err != nil:
		const msg = "unable to query draft customer"
		s.logger.Error(msg, zap.Error(err))
		return nil, fmt.Errorf(msg+": %w", err)
	}

	if !id.Valid {
		return nil, nil
	}

	return &id.Int64, nil
}
