package sales

import (
	"farmacia/internal/farmacia"
)

// LineEntry is one product/quantity/price tuple of the sale being built.
// The same medication may appear in several entries until the sale is
// consolidated.
type LineEntry struct {
	// MedicationID is the product the entry refers to
	MedicationID int64 `db:"medication_id"`

	// Quantity is always positive, AddItem rejects anything else
	Quantity int `db:"quantity"`

	// UnitPrice is copied from the medication when the entry is added
	UnitPrice farmacia.Money `db:"unit_price"`

	// MedicationName is for display only and never sent to the API
	MedicationName string `db:"medication_name"`
}

// Draft is the sale being built. CustomerID is nil until a customer is
// chosen.
type Draft struct {
	CustomerID *int64
	Items      []LineEntry
}

// Total is the value of the draft at the prices of its entries
func (d Draft) Total() farmacia.Money {
	var total farmacia.Money
	for i := range d.Items {
		total = total.Add(d.Items[i].UnitPrice.Times(d.Items[i].Quantity))
	}

	return total
}

// Request builds the sale creation payload from consolidated entries
func Request(customerID int64, entries []LineEntry) farmacia.SaleRequest {
	items := make([]farmacia.SaleRequestItem, 0, len(entries))
	for i := range entries {
		items = append(items, farmacia.SaleRequestItem{
			MedicationID: entries[i].MedicationID,
			Quantity:     entries[i].Quantity,
			UnitPrice:    entries[i].UnitPrice,
		})
	}

	return farmacia.SaleRequest{
		CustomerID: customerID,
		Items:      items,
	}
}
