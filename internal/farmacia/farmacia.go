package farmacia

const (
	// Active communicates that the medication can be sold
	Active MedicationStatus = "ATIVO"

	// Inactive communicates that the medication has been withdrawn from sale
	Inactive MedicationStatus = "INATIVO"

	// Inbound is a stock entry, e.g. a delivery from a supplier
	Inbound MovementKind = "ENTRADA"

	// Outbound is a manual stock withdrawal
	Outbound MovementKind = "SAIDA"

	Adjustment MovementKind = "AJUSTE"
	Loss       MovementKind = "PERDA"
	SaleOut    MovementKind = "VENDA"
)

// Category groups medications. The /categorias resource returns the
// MedicationCount field while /estoque/recentes nests the medication names
// instead, so both are optional.
type Category struct {
	ID              int64    `json:"id"`
	Name            string   `json:"nome"`
	Description     string   `json:"descricao"`
	MedicationCount *int     `json:"quantidadeMedicamentos,omitempty"`
	Medications     []string `json:"medicamentos,omitempty"`
}

// CategoryInput is the payload used to create or update a category
type CategoryInput struct {
	Name        string `json:"nome"`
	Description string `json:"descricao"`
}

// Medication represents a product on the pharmacy shelf
type Medication struct {
	ID          int64  `json:"id"`
	Name        string `json:"nome"`
	Description string `json:"descricao"`
	Price       Money  `json:"preco"`

	// Quantity is the units currently in stock
	Quantity int `json:"quantidade"`

	// ExpiresOn is formatted as YYYY-MM-DD
	ExpiresOn string           `json:"dataValidade"`
	Category  *Category        `json:"categoria,omitempty"`
	Status    MedicationStatus `json:"status"`

	// Sold only appears on the stock movement resource
	Sold *bool `json:"vendido,omitempty"`
}

// Sellable reports whether the medication may be added to a sale
func (m Medication) Sellable() bool {
	return m.Status == Active && m.Quantity > 0
}

// MedicationInput is the payload used to create or update a medication. The
// API expects the category id rather than the nested category object.
type MedicationInput struct {
	Name        string           `json:"nome"`
	Description string           `json:"descricao"`
	Price       Money            `json:"preco"`
	Quantity    int              `json:"quantidade"`
	ExpiresOn   string           `json:"dataValidade"`
	CategoryID  int64            `json:"categoriaId"`
	Status      MedicationStatus `json:"status,omitempty"`
}

type MedicationStatus string

func (s MedicationStatus) String() string { return string(s) }

// Customer of the pharmacy. Adult is computed by the API from the birth
// date and is never sent back.
type Customer struct {
	ID             int64  `json:"id"`
	Name           string `json:"nome"`
	CPF            string `json:"cpf"`
	Email          string `json:"email"`
	BirthDate      string `json:"dataNascimento"`
	Adult          *bool  `json:"maiorDeIdade,omitempty"`
	TotalPurchases int    `json:"totalCompras"`
}

// IsAdult is false when the API did not tell us otherwise
func (c Customer) IsAdult() bool {
	return c.Adult != nil && *c.Adult
}

// CustomerInput is the payload used to create or update a customer
type CustomerInput struct {
	Name      string `json:"nome"`
	CPF       string `json:"cpf"`
	Email     string `json:"email"`
	BirthDate string `json:"dataNascimento"`
}

// Sale is a completed sale as listed by the /vendas resource
type Sale struct {
	ID        int64      `json:"id"`
	Customer  Customer   `json:"cliente"`
	Items     []SaleItem `json:"itens"`
	SoldAt    string     `json:"dataVenda"`
	Total     Money      `json:"valorTotal"`
	ItemCount int        `json:"quantidadeItens"`
}

type SaleItem struct {
	ID             int64  `json:"id"`
	MedicationID   int64  `json:"medicamentoId"`
	MedicationName string `json:"medicamentoNome"`
	Quantity       int    `json:"quantidade"`
	UnitPrice      Money  `json:"precoUnitario"`
	Subtotal       Money  `json:"subtotal"`
}

// StockAlert is returned by /alertas/estoque-baixo
type StockAlert struct {
	MedicationID    int64  `json:"medicamentoId"`
	MedicationName  string `json:"medicamentoNome"`
	CurrentQuantity int    `json:"quantidadeAtual"`
}

// ExpiryAlert is returned by /alertas/validade-proxima
type ExpiryAlert struct {
	MedicationID   int64  `json:"medicamentoId"`
	MedicationName string `json:"medicamentoNome"`
	ExpiresOn      string `json:"dataValidade"`
}

// MovementKind communicates the direction of a stock movement. Only Inbound
// and Outbound can be registered through the API.
type MovementKind string

func (k MovementKind) String() string { return string(k) }

// MovementRequest registers a stock movement for one medication
type MovementRequest struct {
	MedicationID int64        `json:"medicamentoId"`
	Kind         MovementKind `json:"tipo"`
	Quantity     int          `json:"quantidade"`
	Reason       string       `json:"motivo,omitempty"`
	Note         string       `json:"observacao,omitempty"`
}

// Movement is a registered stock movement. The medication is returned
// without its category.
type Movement struct {
	ID         int64        `json:"id"`
	Medication Medication   `json:"medicamento"`
	Kind       MovementKind `json:"tipo"`
	Quantity   int          `json:"quantidade"`
	MovedAt    string       `json:"dataMovimentacao"`
	Note       string       `json:"observacao,omitempty"`
}

// SaleRequest is the sale creation payload. Items must already be
// consolidated, one entry per medication.
type SaleRequest struct {
	CustomerID int64             `json:"clienteId"`
	Items      []SaleRequestItem `json:"itens"`
}

type SaleRequestItem struct {
	MedicationID int64 `json:"medicamentoId"`
	Quantity     int   `json:"quantidade"`
	UnitPrice    Money `json:"precoUnitario"`
}
