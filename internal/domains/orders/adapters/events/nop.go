package events

import (
	"context"

	"github.com/bookhaven/order-service/internal/domains/orders/domain"
	"github.com/bookhaven/order-service/internal/domains/orders/ports"
)

var _ ports.EventPublisher = NopPublisher{}

// NopPublisher discards accepted-order announcements. Used when no broker is
// configured.
type NopPublisher struct{}

func (NopPublisher) OrderAccepted(context.Context, *domain.Order) error { return nil }
