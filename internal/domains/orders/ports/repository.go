package ports

import (
	"context"

	"github.com/bookhaven/order-service/internal/domains/orders/domain"
)

// Repository persists orders. Once saved, the store owns the record; the
// orders context never mutates it again.
type Repository interface {
	Save(ctx context.Context, order *domain.Order) (*domain.Order, error)
	List(ctx context.Context) ([]*domain.Order, error)
}
