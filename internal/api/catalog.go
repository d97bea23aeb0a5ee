package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"farmacia/internal/farmacia"
)

func (c *Client) ListCategories(ctx context.Context) ([]farmacia.Category, error) {
	var out []farmacia.Category
	if err := c.Do(ctx, "/categorias", nil, &out); err != nil {
		return nil, err
	}

	return out, nil
}

func (c *Client) CreateCategory(ctx context.Context, in farmacia.CategoryInput) (*farmacia.Category, error) {
	var out farmacia.Category
	if err := c.Do(ctx, "/categorias", &Request{Method: http.MethodPost, Body: in}, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) UpdateCategory(ctx context.Context, id int64, in farmacia.CategoryInput) (*farmacia.Category, error) {
	var out farmacia.Category
	if err := c.Do(ctx, fmt.Sprintf("/categorias/%d", id), &Request{Method: http.MethodPut, Body: in}, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// DeleteCategory fails on the API side while medications still reference
// the category
func (c *Client) DeleteCategory(ctx context.Context, id int64) error {
	return c.Do(ctx, fmt.Sprintf("/categorias/%d", id), &Request{Method: http.MethodDelete}, nil)
}

func (c *Client) ListMedications(ctx context.Context) ([]farmacia.Medication, error) {
	var out []farmacia.Medication
	if err := c.Do(ctx, "/medicamentos", nil, &out); err != nil {
		return nil, err
	}

	return out, nil
}

func (c *Client) CreateMedication(ctx context.Context, in farmacia.MedicationInput) (*farmacia.Medication, error) {
	var out farmacia.Medication
	if err := c.Do(ctx, "/medicamentos", &Request{Method: http.MethodPost, Body: in}, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) UpdateMedication(ctx context.Context, id int64, in farmacia.MedicationInput) (*farmacia.Medication, error) {
	var out farmacia.Medication
	if err := c.Do(ctx, fmt.Sprintf("/medicamentos/%d", id), &Request{Method: http.MethodPut, Body: in}, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) DeleteMedication(ctx context.Context, id int64) error {
	return c.Do(ctx, fmt.Sprintf("/medicamentos/%d", id), &Request{Method: http.MethodDelete}, nil)
}

// SetMedicationStatus activates or deactivates a medication
func (c *Client) SetMedicationStatus(ctx context.Context, id int64, status farmacia.MedicationStatus) (*farmacia.Medication, error) {
	if status != farmacia.Active && status != farmacia.Inactive {
		return nil, fmt.Errorf("unsupported medication status: %s", status)
	}

	r := Request{
		Method: http.MethodPatch,
		Query:  url.Values{"status": []string{status.String()}},
	}

	var out farmacia.Medication
	if err := c.Do(ctx, fmt.Sprintf("/medicamentos/%d/status", id), &r, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) ListCustomers(ctx context.Context) ([]farmacia.Customer, error) {
	var out []farmacia.Customer
	if err := c.Do(ctx, "/clientes", nil, &out); err != nil {
		return nil, err
	}

	return out, nil
}

func (c *Client) CreateCustomer(ctx context.Context, in farmacia.CustomerInput) (*farmacia.Customer, error) {
	var out farmacia.Customer
	if err := c.Do(ctx, "/clientes", &Request{Method: http.MethodPost, Body: in}, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) UpdateCustomer(ctx context.Context, id int64, in farmacia.CustomerInput) (*farmacia.Customer, error) {
	var out farmacia.Customer
	if err := c.Do(ctx, fmt.Sprintf("/clientes/%d", id), &Request{Method: http.MethodPut, Body: in}, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) DeleteCustomer(ctx context.Context, id int64) error {
	return c.Do(ctx, fmt.Sprintf("/clientes/%d", id), &Request{Method: http.MethodDelete}, nil)
}
