package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"farmacia/internal/api"
	"farmacia/internal/farmacia"
	"farmacia/internal/localdb"
	"farmacia/internal/sales"
	"farmacia/internal/sales/reader"
	"farmacia/internal/sales/writer"
)

type fakeAPI struct {
	meds      []farmacia.Medication
	customers []farmacia.Customer
	createErr error
	created   []farmacia.SaleRequest
}

func (f *fakeAPI) ListMedications(context.Context) ([]farmacia.Medication, error) {
	return f.meds, nil
}

func (f *fakeAPI) ListCustomers(context.Context) ([]farmacia.Customer, error) {
	return f.customers, nil
}

func (f *fakeAPI) CreateSale(_ context.Context, in farmacia.SaleRequest) (*farmacia.Sale, error) {
	f.created = append(f.created, in)
	if f.createErr != nil {
		return nil, f.createErr
	}

	return &farmacia.Sale{ID: 99}, nil
}

func newFakeAPI() *fakeAPI {
	yes, no := true, false

	return &fakeAPI{
		meds: []farmacia.Medication{
			{ID: 1, Name: "Dipirona", Price: farmacia.NewMoneyFromInt(10), Quantity: 20, Status: farmacia.Active},
			{ID: 2, Name: "Paracetamol", Price: farmacia.NewMoneyFromInt(5), Quantity: 3, Status: farmacia.Active},
			{ID: 3, Name: "Ibuprofeno", Price: farmacia.NewMoneyFromInt(8), Quantity: 0, Status: farmacia.Active},
			{ID: 4, Name: "Amoxicilina", Price: farmacia.NewMoneyFromInt(30), Quantity: 9, Status: farmacia.Inactive},
		},
		customers: []farmacia.Customer{
			{ID: 10, Name: "Ana", Adult: &yes},
			{ID: 11, Name: "Bruno", Adult: &no},
			{ID: 12, Name: "Carla"},
		},
	}
}

func newService(t *testing.T, a API) *Service {
	t.Helper()

	db, err := localdb.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	r, err := reader.NewService(zap.NewNop(), db)
	require.NoError(t, err)
	w, err := writer.NewService(zap.NewNop(), db)
	require.NoError(t, err)

	s, err := NewService(zap.NewNop(), r, w, a)
	require.NoError(t, err)

	return s
}

func Test_EligibleLists(t *testing.T) {
	s := newService(t, newFakeAPI())

	customers, err := s.EligibleCustomers(context.Background())
	require.NoError(t, err)
	require.Len(t, customers, 1)
	assert.Equal(t, "Ana", customers[0].Name)

	meds, err := s.EligibleMedications(context.Background())
	require.NoError(t, err)
	require.Len(t, meds, 2)
	assert.EqualValues(t, 1, meds[0].ID)
	assert.EqualValues(t, 2, meds[1].ID)
}

func Test_AddItem(t *testing.T) {
	for _, tc := range []struct {
		desc     string
		medID    int64
		quantity int
		chk      func(t *testing.T, item *sales.LineEntry, err error)
	}{
		{
			desc:     "Happy path - price and name come from the medication",
			medID:    1,
			quantity: 2,
			chk: func(t *testing.T, item *sales.LineEntry, err error) {
				require.NoError(t, err)
				assert.Equal(t, "Dipirona", item.MedicationName)
				assert.True(t, item.UnitPrice.Equal(farmacia.NewMoneyFromInt(10)))
			},
		},
		{
			desc:     "Zero quantity",
			medID:    1,
			quantity: 0,
			chk: func(t *testing.T, item *sales.LineEntry, err error) {
				assert.True(t, errors.Is(err, sales.ErrInvalidQuantity))
			},
		},
		{
			desc:     "Out of stock",
			medID:    3,
			quantity: 1,
			chk: func(t *testing.T, item *sales.LineEntry, err error) {
				assert.True(t, errors.Is(err, sales.ErrNotSellable))
			},
		},
		{
			desc:     "Inactive",
			medID:    4,
			quantity: 1,
			chk: func(t *testing.T, item *sales.LineEntry, err error) {
				assert.True(t, errors.Is(err, sales.ErrNotSellable))
			},
		},
		{
			desc:     "Unknown",
			medID:    404,
			quantity: 1,
			chk: func(t *testing.T, item *sales.LineEntry, err error) {
				assert.True(t, errors.Is(err, sales.ErrNotSellable))
			},
		},
	} {
		t.Run(tc.desc, func(t *testing.T) {
			s := newService(t, newFakeAPI())

			item, err := s.AddItem(context.Background(), tc.medID, tc.quantity)
			tc.chk(t, item, err)
		})
	}
}

func Test_SetCustomer(t *testing.T) {
	s := newService(t, newFakeAPI())

	require.NoError(t, s.SetCustomer(context.Background(), 10))
	assert.True(t, errors.Is(s.SetCustomer(context.Background(), 11), sales.ErrMinorCustomer))
	assert.True(t, errors.Is(s.SetCustomer(context.Background(), 12), sales.ErrMinorCustomer))
	assert.True(t, errors.Is(s.SetCustomer(context.Background(), 13), sales.ErrNotFound))

	d, err := s.Draft()
	require.NoError(t, err)
	require.NotNil(t, d.CustomerID)
	assert.EqualValues(t, 10, *d.CustomerID)
}

func Test_Submit(t *testing.T) {
	for _, tc := range []struct {
		desc  string
		setup func(t *testing.T, s *Service, a *fakeAPI)
		chk   func(t *testing.T, s *Service, a *fakeAPI, sale *farmacia.Sale, err error)
	}{
		{
			desc: "Happy path - duplicates are consolidated",
			setup: func(t *testing.T, s *Service, a *fakeAPI) {
				ctx := context.Background()
				require.NoError(t, s.SetCustomer(ctx, 10))
				_, err := s.AddItem(ctx, 1, 2)
				require.NoError(t, err)
				_, err = s.AddItem(ctx, 2, 1)
				require.NoError(t, err)
				_, err = s.AddItem(ctx, 1, 3)
				require.NoError(t, err)
			},
			chk: func(t *testing.T, s *Service, a *fakeAPI, sale *farmacia.Sale, err error) {
				require.NoError(t, err)
				assert.EqualValues(t, 99, sale.ID)

				require.Len(t, a.created, 1)
				req := a.created[0]
				assert.EqualValues(t, 10, req.CustomerID)
				require.Len(t, req.Items, 2)
				assert.EqualValues(t, 1, req.Items[0].MedicationID)
				assert.Equal(t, 5, req.Items[0].Quantity)
				assert.True(t, req.Items[0].UnitPrice.Equal(farmacia.NewMoneyFromInt(10)))
				assert.EqualValues(t, 2, req.Items[1].MedicationID)
				assert.Equal(t, 1, req.Items[1].Quantity)

				d, err := s.Draft()
				require.NoError(t, err)
				assert.Nil(t, d.CustomerID)
				assert.Empty(t, d.Items)
			},
		},
		{
			desc: "No customer",
			setup: func(t *testing.T, s *Service, a *fakeAPI) {
				_, err := s.AddItem(context.Background(), 1, 1)
				require.NoError(t, err)
			},
			chk: func(t *testing.T, s *Service, a *fakeAPI, sale *farmacia.Sale, err error) {
				assert.True(t, errors.Is(err, sales.ErrNoCustomer))
				assert.Empty(t, a.created)
			},
		},
		{
			desc: "No items",
			setup: func(t *testing.T, s *Service, a *fakeAPI) {
				require.NoError(t, s.SetCustomer(context.Background(), 10))
			},
			chk: func(t *testing.T, s *Service, a *fakeAPI, sale *farmacia.Sale, err error) {
				assert.True(t, errors.Is(err, sales.ErrNoItems))
				assert.Empty(t, a.created)
			},
		},
		{
			desc: "Api failure keeps the draft",
			setup: func(t *testing.T, s *Service, a *fakeAPI) {
				a.createErr = &api.APIError{StatusCode: http.StatusBadRequest, Message: "Estoque insuficiente"}
				require.NoError(t, s.SetCustomer(context.Background(), 10))
				_, err := s.AddItem(context.Background(), 2, 4)
				require.NoError(t, err)
			},
			chk: func(t *testing.T, s *Service, a *fakeAPI, sale *farmacia.Sale, err error) {
				require.Error(t, err)
				assert.Equal(t, "Estoque insuficiente", DisplayError(err))

				d, err := s.Draft()
				require.NoError(t, err)
				assert.Len(t, d.Items, 1)
			},
		},
		{
			desc: "Unauthorized is passed through",
			setup: func(t *testing.T, s *Service, a *fakeAPI) {
				a.createErr = api.ErrUnauthorized
				require.NoError(t, s.SetCustomer(context.Background(), 10))
				_, err := s.AddItem(context.Background(), 2, 1)
				require.NoError(t, err)
			},
			chk: func(t *testing.T, s *Service, a *fakeAPI, sale *farmacia.Sale, err error) {
				assert.True(t, errors.Is(err, api.ErrUnauthorized))
			},
		},
	} {
		t.Run(tc.desc, func(t *testing.T) {
			a := newFakeAPI()
			s := newService(t, a)

			tc.setup(t, s, a)

			sale, err := s.Submit(context.Background())
			tc.chk(t, s, a, sale, err)
		})
	}
}

func Test_RemoveItem(t *testing.T) {
	s := newService(t, newFakeAPI())

	_, err := s.AddItem(context.Background(), 1, 1)
	require.NoError(t, err)
	_, err = s.AddItem(context.Background(), 2, 1)
	require.NoError(t, err)

	require.NoError(t, s.RemoveItem(0))
	assert.True(t, errors.Is(s.RemoveItem(5), sales.ErrItemOutOfRange))

	d, err := s.Draft()
	require.NoError(t, err)
	require.Len(t, d.Items, 1)
	assert.EqualValues(t, 2, d.Items[0].MedicationID)

	require.NoError(t, s.Discard())
	d, err = s.Draft()
	require.NoError(t, err)
	assert.Empty(t, d.Items)
}

func Test_DisplayError(t *testing.T) {
	nested := &api.APIError{StatusCode: http.StatusBadRequest, Message: `{"message":"Cliente menor de idade"}`}
	assert.Equal(t, "Cliente menor de idade", DisplayError(nested))

	assert.Equal(t, "boom", DisplayError(errors.New("boom")))
}
