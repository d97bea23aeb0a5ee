package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"farmacia/internal/api"
	"farmacia/internal/farmacia"
	"farmacia/internal/sales"
	"farmacia/internal/sales/reader"
	"farmacia/internal/sales/writer"
)

// API is the part of the pharmacy API the sales service needs
type API interface {
	ListMedications(ctx context.Context) ([]farmacia.Medication, error)
	ListCustomers(ctx context.Context) ([]farmacia.Customer, error)
	CreateSale(ctx context.Context, in farmacia.SaleRequest) (*farmacia.Sale, error)
}

// Service builds a sale draft and submits it. The draft survives between
// runs in the local database and is only cleared once the API accepted the
// sale.
type Service struct {
	api    API
	logger *zap.Logger
	reader *reader.Service
	writer *writer.Service
}

func NewService(logger *zap.Logger, r *reader.Service, w *writer.Service, a API) (*Service, error) {
	s := Service{
		api:    a,
		logger: logger,
		reader: r,
		writer: w,
	}

	if err := s.validate(); err != nil {
		return nil, err
	}

	s.logger.Debug("successfully initialized sales service")

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
			dep: "reader",
			chk: func() bool { return s.reader != nil },
		},
		{
			dep: "writer",
			chk: func() bool { return s.writer != nil },
		},
		{
			dep: "api",
			chk: func() bool { return s.api != nil },
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

// EligibleCustomers lists the customers a sale can be made to. Sales to
// minors are refused, so only adults are returned.
func (s *Service) EligibleCustomers(ctx context.Context) ([]farmacia.Customer, error) {
	all, err := s.api.ListCustomers(ctx)
	if err != nil {
		const msg = "unable to list customers"
		s.logger.Error(msg, zap.Error(err))
		return nil, fmt.Errorf(msg+": %w", err)
	}

	var out []farmacia.Customer
	for i := range all {
		if all[i].IsAdult() {
			out = append(out, all[i])
		}
	}

	return out, nil
}

// EligibleMedications lists the active medications that are in stock
func (s *Service) EligibleMedications(ctx context.Context) ([]farmacia.Medication, error) {
	all, err := s.api.ListMedications(ctx)
	if err != nil {
		const msg = "unable to list medications"
		s.logger.Error(msg, zap.Error(err))
		return nil, fmt.Errorf(msg+": %w", err)
	}

	var out []farmacia.Medication
	for i := range all {
		if all[i].Sellable() {
			out = append(out, all[i])
		}
	}

	return out, nil
}

// AddItem appends an entry for the medication to the draft, priced at the
// medication's current price. Adding a medication that is already in the
// draft creates a second entry; they are merged on submit.
func (s *Service) AddItem(ctx context.Context, medicationID int64, quantity int) (*sales.LineEntry, error) {
	logger := s.logger.With(zap.Int64("medicationId", medicationID))

	if quantity <= 0 {
		return nil, sales.ErrInvalidQuantity
	}

	meds, err := s.EligibleMedications(ctx)
	if err != nil {
		return nil, err
	}

	var med *farmacia.Medication
	for i := range meds {
		if meds[i].ID == medicationID {
			med = &meds[i]
			break
		}
	}
	if med == nil {
		logger.Warn("medication is not sellable")
		return nil, fmt.Errorf("%w: %d", sales.ErrNotSellable, medicationID)
	}

	item := sales.LineEntry{
		MedicationID:   med.ID,
		Quantity:       quantity,
		UnitPrice:      med.Price,
		MedicationName: med.Name,
	}
	if err := s.writer.AddItem(item); err != nil {
		return nil, err
	}

	logger.Debug("added item to draft", zap.Int("quantity", quantity))

	return &item, nil
}

// RemoveItem removes the entry at the zero based position of the draft
func (s *Service) RemoveItem(position int) error {
	id, err := s.reader.ItemID(position)
	if err != nil {
		return err
	}

	return s.writer.RemoveItem(id)
}

// SetCustomer chooses the customer of the draft
func (s *Service) SetCustomer(ctx context.Context, customerID int64) error {
	customers, err := s.api.ListCustomers(ctx)
	if err != nil {
		const msg = "unable to list customers"
		s.logger.Error(msg, zap.Error(err))
		return fmt.Errorf(msg+": %w", err)
	}

	for i := range customers {
		if customers[i].ID != customerID {
			continue
		}

		if !customers[i].IsAdult() {
			return fmt.Errorf("%w: %s", sales.ErrMinorCustomer, customers[i].Name)
		}

		return s.writer.SetCustomer(customerID)
	}

	return fmt.Errorf("customer %d: %w", customerID, sales.ErrNotFound)
}

func (s *Service) Draft() (*sales.Draft, error) {
	return s.reader.Draft()
}

func (s *Service) Discard() error {
	return s.writer.Clear()
}

// Submit consolidates the draft and creates the sale. The draft is cleared
// only when the API accepted the sale.
func (s *Service) Submit(ctx context.Context) (*farmacia.Sale, error) {
	d, err := s.reader.Draft()
	if err != nil {
		return nil, err
	}

	if d.CustomerID == nil {
		return nil, sales.ErrNoCustomer
	}
	if len(d.Items) == 0 {
		return nil, sales.ErrNoItems
	}

	logger := s.logger.With(zap.Int64("customerId", *d.CustomerID))

	// the first entry's price is kept, flag anything that disagrees
	if conflicts := sales.PriceConflicts(d.Items); len(conflicts) > 0 {
		logger.Warn("duplicate entries carry different prices, keeping the first", zap.Int64s("medicationIds", conflicts))
	}

	items := sales.Consolidate(d.Items)
	sale, err := s.api.CreateSale(ctx, sales.Request(*d.CustomerID, items))
	if err != nil {
		const msg = "unable to create sale"
		logger.Error(msg, zap.Error(err))
		return nil, fmt.Errorf(msg+": %w", err)
	}

	if err := s.writer.Clear(); err != nil {
		// the sale exists, only the local draft is stale
		logger.Error("unable to clear draft after sale", zap.Error(err))
	}

	logger.Debug("successfully created sale", zap.Int64("saleId", sale.ID), zap.Int("items", len(items)))

	return sale, nil
}

// DisplayError renders a submission failure for the user. Some backend
// errors carry a JSON document as their message, in which case the inner
// message is used.
func DisplayError(err error) string {
	var apiErr *api.APIError
	if !errors.As(err, &apiErr) {
		return err.Error()
	}

	var inner struct {
		Message string `json:"message"`
	}
	if json.Unmarshal([]byte(apiErr.Message), &inner) == nil && inner.Message != "" {
		return inner.Message
	}

	return apiErr.Message
}
