package report

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"farmacia/internal/farmacia"
)

// Source is the part of the pharmacy API the dashboard reads
type Source interface {
	LowStockAlerts(ctx context.Context) ([]farmacia.StockAlert, error)
	ExpiryAlerts(ctx context.Context) ([]farmacia.ExpiryAlert, error)
	ListSales(ctx context.Context) ([]farmacia.Sale, error)
	RecentMovements(ctx context.Context) ([]farmacia.Movement, error)
	ListMedications(ctx context.Context) ([]farmacia.Medication, error)
}

// Dashboard is the summary shown on start-up
type Dashboard struct {
	LowStock    []farmacia.StockAlert
	Expiring    []farmacia.ExpiryAlert
	Sales       []farmacia.Sale
	Movements   []farmacia.Movement
	Medications []farmacia.Medication

	SalesTotal farmacia.Money
	Daily      []DailyTotal
}

// Loader loads the dashboard resources concurrently. Each request writes
// only its own field, and the first failure fails the whole load.
type Loader struct {
	logger *zap.Logger
	source Source
}

func NewLoader(logger *zap.Logger, source Source) (*Loader, error) {
	if logger == nil || source == nil {
		return nil, errors.New("unable to initialize dashboard loader due to missing dependencies")
	}

	return &Loader{logger: logger, source: source}, nil
}

func (l *Loader) Dashboard(ctx context.Context) (*Dashboard, error) {
	var d Dashboard

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		d.LowStock, err = l.source.LowStockAlerts(gctx)
		return wrap("low stock alerts", err)
	})
	g.Go(func() (err error) {
		d.Expiring, err = l.source.ExpiryAlerts(gctx)
		return wrap("expiry alerts", err)
	})
	g.Go(func() (err error) {
		d.Sales, err = l.source.ListSales(gctx)
		return wrap("sales", err)
	})
	g.Go(func() (err error) {
		d.Movements, err = l.source.RecentMovements(gctx)
		return wrap("recent movements", err)
	})
	g.Go(func() (err error) {
		d.Medications, err = l.source.ListMedications(gctx)
		return wrap("medications", err)
	})

	if err := g.Wait(); err != nil {
		const msg = "unable to load dashboard"
		l.logger.Error(msg, zap.Error(err))
		return nil, fmt.Errorf(msg+": %w", err)
	}

	SortMovements(d.Movements)
	d.SalesTotal = Total(d.Sales)
	d.Daily = DailyTotals(d.Sales)

	l.logger.Debug(
		"loaded dashboard",
		zap.Int("lowStock", len(d.LowStock)),
		zap.Int("expiring", len(d.Expiring)),
		zap.Int("sales", len(d.Sales)),
		zap.Int("movements", len(d.Movements)),
	)

	return &d, nil
}

// MovementCategory names the category of a movement's medication
func (d *Dashboard) MovementCategory(m farmacia.Movement) string {
	return CategoryName(d.Medications, m.Medication.ID)
}

func wrap(what string, err error) error {
	if err == nil {
		return nil
	}

	return fmt.Errorf("unable to load %s: %w", what, err)
}
