package ports

import (
	"context"

	"github.com/bookhaven/order-service/internal/domains/orders/domain"
)

// EventPublisher announces accepted orders to downstream consumers.
// Publishing is best-effort: a failure never affects the submission outcome.
type EventPublisher interface {
	OrderAccepted(ctx context.Context, order *domain.Order) error
}
