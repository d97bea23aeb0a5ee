package sales

type Error string

func (e Error) Error() string { return string(e) }

const (
	ErrNoCustomer      Error = "select a customer before submitting the sale"
	ErrNoItems         Error = "add at least one item before submitting the sale"
	ErrInvalidQuantity Error = "quantity must be greater than zero"
	ErrNotSellable     Error = "medication is inactive or out of stock"
	ErrMinorCustomer   Error = "customer is not an adult"
	ErrItemOutOfRange  Error = "no draft item at that position"
	ErrNotFound        Error = "record(s) not found"
)
