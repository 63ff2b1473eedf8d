package ports

import (
	"context"

	"github.com/bookhaven/order-service/internal/domains/orders/domain"
)

// Service exposes the orders use cases to adapters.
type Service interface {
	// SubmitOrder places an order for the given ISBN and quantity. It returns
	// the persisted order, or nil when the pipeline degraded; it never returns
	// an error. Callers cannot distinguish why no order was produced.
	SubmitOrder(ctx context.Context, isbn string, quantity int) *domain.Order
	// GetAllOrders lists every persisted order in store order.
	GetAllOrders(ctx context.Context) ([]*domain.Order, error)
}
