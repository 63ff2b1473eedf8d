package ports

import (
	"context"
	"errors"

	"github.com/bookhaven/order-service/internal/domains/orders/domain"
)

// ErrBookNotFound signals a protocol-level not-found failure from the catalog
// transport. It is never retried. It is distinct from a clean absent result,
// which LookupByISBN reports as (nil, nil).
var ErrBookNotFound = errors.New("catalog resource not found")

// BookCatalog defines the outbound lookup against the catalog collaborator.
type BookCatalog interface {
	// LookupByISBN returns the book for an ISBN, (nil, nil) when the catalog
	// cleanly reports the ISBN as unknown, or an error.
	LookupByISBN(ctx context.Context, isbn string) (*domain.Book, error)
}
