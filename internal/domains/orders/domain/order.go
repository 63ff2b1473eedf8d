package domain

import "errors"

// Status is the terminal classification assigned to an order at creation.
type Status string

const (
	StatusAccepted Status = "ACCEPTED"
	StatusRejected Status = "REJECTED"
)

var (
	ErrInvalidISBN     = errors.New("isbn must not be empty")
	ErrInvalidQuantity = errors.New("quantity must be greater than zero")
	ErrInvalidStatus   = errors.New("order status is invalid")
	ErrInvalidOrder    = errors.New("order fields do not match its status")
)

// Book is the catalog metadata returned for an ISBN. It is owned by the
// catalog collaborator and lives only for the duration of one lookup.
type Book struct {
	ISBN   string
	Title  string
	Author string
	Price  float64
}

// Order models a submitted book order. BookName and BookPrice are set only
// for accepted orders; a rejected order carries neither and has quantity 0.
// The status never transitions after creation.
type Order struct {
	ID        int64
	ISBN      string
	BookName  *string
	BookPrice *float64
	Quantity  int
	Status    Status
}

// BuildAcceptedOrder constructs an accepted order from catalog metadata.
// The caller guarantees book holds a real lookup result.
func BuildAcceptedOrder(book Book, quantity int) *Order {
	name := book.Title + " - " + book.Author
	price := book.Price
	return &Order{
		ISBN:      book.ISBN,
		BookName:  &name,
		BookPrice: &price,
		Quantity:  quantity,
		Status:    StatusAccepted,
	}
}

// BuildRejectedOrder constructs a rejected order for an ISBN the catalog does
// not know. Quantity is forced to zero regardless of what was requested: a
// rejected order never reports a purchasable quantity.
func BuildRejectedOrder(isbn string, _ int) *Order {
	return &Order{
		ISBN:     isbn,
		Quantity: 0,
		Status:   StatusRejected,
	}
}

// Validate enforces the status invariant on the aggregate.
func (o *Order) Validate() error {
	if o.ISBN == "" {
		return ErrInvalidISBN
	}
	switch o.Status {
	case StatusAccepted:
		if o.BookName == nil || o.BookPrice == nil {
			return ErrInvalidOrder
		}
		if o.Quantity <= 0 {
			return ErrInvalidQuantity
		}
	case StatusRejected:
		if o.BookName != nil || o.BookPrice != nil || o.Quantity != 0 {
			return ErrInvalidOrder
		}
	default:
		return ErrInvalidStatus
	}
	return nil
}
