package catalog

import (
	"context"
	"errors"
	"fmt"

	catalogclient "github.com/bookhaven/order-service/internal/clients/http/catalog"
	"github.com/bookhaven/order-service/internal/domains/orders/domain"
	"github.com/bookhaven/order-service/internal/domains/orders/ports"
)

var _ ports.BookCatalog = (*Lookup)(nil)

// Lookup implements the outbound catalog port over the HTTP catalog client.
type Lookup struct {
	client *catalogclient.Client
}

// NewLookup wires a catalog HTTP client into a lookup adapter.
func NewLookup(client *catalogclient.Client) *Lookup {
	return &Lookup{client: client}
}

// LookupByISBN translates the client result into port semantics: a clean
// absent stays (nil, nil) and the protocol-level 404 becomes ErrBookNotFound.
func (l *Lookup) LookupByISBN(ctx context.Context, isbn string) (*domain.Book, error) {
	if l == nil || l.client == nil {
		return nil, errors.New("catalog lookup not configured")
	}
	payload, err := l.client.GetBookByISBN(ctx, isbn)
	if err != nil {
		if errors.Is(err, catalogclient.ErrNotFound) {
			return nil, fmt.Errorf("%w: %w", ports.ErrBookNotFound, err)
		}
		return nil, err
	}
	if payload == nil {
		return nil, nil
	}
	return &domain.Book{
		ISBN:   payload.ISBN,
		Title:  payload.Title,
		Author: payload.Author,
		Price:  payload.Price,
	}, nil
}
