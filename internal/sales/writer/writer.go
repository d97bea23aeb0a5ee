package writer

import (
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"farmacia/internal/sales"
)

// Service is responsible for performing write operations on the sale draft
// tables. We use a separate writer service to avoid commingling read/writes
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

// AddItem appends an entry to the draft. Entries are never merged here.
func (s *Service) AddItem(item sales.LineEntry) error {
	logger := s.logger.With(zap.Int64("medicationId", item.MedicationID))

	const stmt = `
		INSERT INTO sale_draft_items (medication_id, medication_name, quantity, unit_price)
		VALUES (:medication_id, :medication_name, :quantity, :unit_price)`

	if _, err := s.db.NamedExec(stmt, &item); err != nil {
		const msg = "unable to add draft item"
		logger.Error(msg, zap.Error(err))
		return fmt.Errorf(msg+": %w", err)
	}

	logger.Debug("successfully added draft item", zap.Int("quantity", item.Quantity))

	return nil
}

// RemoveItem deletes the entry with the given row id
func (s *Service) RemoveItem(id int64) error {
	logger := s.logger.With(zap.Int64("itemId", id))

	res, err := s.db.Exec(`DELETE FROM sale_draft_items WHERE id = ?`, id)
	if err != nil {
		const msg = "unable to remove draft item"
		logger.Error(msg, zap.Error(err))
		return fmt.Errorf(msg+": %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sales.ErrItemOutOfRange
	}

	logger.Debug("successfully removed draft item")

	return nil
}

func (s *Service) SetCustomer(customerID int64) error {
	const stmt = `
		INSERT INTO sale_draft (id, customer_id) VALUES (1, ?)
		ON CONFLICT(id) DO UPDATE SET customer_id = excluded.customer_id`

	if _, err := s.db.Exec(stmt, customerID); err != nil {
		const msg = "unable to set draft customer"
		s.logger.Error(msg, zap.Error(err), zap.Int64("customerId", customerID))
		return fmt.Errorf(msg+": %w", err)
	}

	return nil
}

// Clear discards the whole draft in one transaction
func (s *Service) Clear() error {
	tx, err := s.db.Beginx()
	if err != nil {
		const msg = "unable to begin transaction"
		s.logger.Error(msg, zap.Error(err))
		return fmt.Errorf(msg+": %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{
		`DELETE FROM sale_draft_items`,
		`DELETE FROM sale_draft`,
	} {
		if _, err := tx.Exec(stmt); err != nil {
			const msg = "unable to clear draft"
			s.logger.Error(msg, zap.Error(err))
			return fmt.Errorf(msg+": %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		const msg = "unable to commit draft clear"
		s.logger.Error(msg, zap.Error(err))
		return fmt.Errorf(msg+": %w", err)
	}

	s.logger.Debug("successfully cleared draft")

	return nil
}
