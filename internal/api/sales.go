package api

import (
	"context"
	"fmt"
	"net/http"

	"farmacia/internal/farmacia"
)

func (c *Client) ListSales(ctx context.Context) ([]farmacia.Sale, error) {
	var out []farmacia.Sale
	if err := c.Do(ctx, "/vendas", nil, &out); err != nil {
		return nil, err
	}

	return out, nil
}

// CreateSale posts the sale as given. Consolidating duplicate items is the
// caller's job.
func (c *Client) CreateSale(ctx context.Context, in farmacia.SaleRequest) (*farmacia.Sale, error) {
	var out farmacia.Sale
	if err := c.Do(ctx, "/vendas", &Request{Method: http.MethodPost, Body: in}, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) LowStockAlerts(ctx context.Context) ([]farmacia.StockAlert, error) {
	var out []farmacia.StockAlert
	if err := c.Do(ctx, "/alertas/estoque-baixo", nil, &out); err != nil {
		return nil, err
	}

	return out, nil
}

func (c *Client) ExpiryAlerts(ctx context.Context) ([]farmacia.ExpiryAlert, error) {
	var out []farmacia.ExpiryAlert
	if err := c.Do(ctx, "/alertas/validade-proxima", nil, &out); err != nil {
		return nil, err
	}

	return out, nil
}

func (c *Client) RecentMovements(ctx context.Context) ([]farmacia.Movement, error) {
	var out []farmacia.Movement
	if err := c.Do(ctx, "/estoque/recentes", nil, &out); err != nil {
		return nil, err
	}

	return out, nil
}

// RegisterMovement routes the movement to the endpoint of its kind. Kinds
// without an endpoint fail with ErrUnsupportedMovement before any request
// is made.
func (c *Client) RegisterMovement(ctx context.Context, in farmacia.MovementRequest) error {
	path, err := movementPath(in.Kind)
	if err != nil {
		return err
	}

	return c.Do(ctx, path, &Request{Method: http.MethodPost, Body: in}, nil)
}

func movementPath(kind farmacia.MovementKind) (string, error) {
	switch kind {
	case farmacia.Inbound:
		return "/estoque/entrada", nil
	case farmacia.Outbound:
		return "/estoque/saida", nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedMovement, kind)
	}
}
