package mapper

import (
	ordersdomain "github.com/bookhaven/order-service/internal/domains/orders/domain"
)

// Order is the transport-layer shape returned by the orders endpoints.
type Order struct {
	ID        int64    `json:"id"`
	ISBN      string   `json:"isbn"`
	BookName  *string  `json:"bookName,omitempty"`
	BookPrice *float64 `json:"bookPrice,omitempty"`
	Quantity  int      `json:"quantity"`
	Status    string   `json:"status"`
}

// OrderRequest is the submission payload. Quantity is capped at five copies
// per order.
type OrderRequest struct {
	ISBN     string `json:"isbn" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,gte=1,lte=5"`
}

// FromDomainOrder converts a domain order to the transport representation.
func FromDomainOrder(order *ordersdomain.Order) Order {
	if order == nil {
		return Order{}
	}
	return Order{
		ID:        order.ID,
		ISBN:      order.ISBN,
		BookName:  order.BookName,
		BookPrice: order.BookPrice,
		Quantity:  order.Quantity,
		Status:    string(order.Status),
	}
}

// FromDomainOrders converts a listing, preserving store order.
func FromDomainOrders(orders []*ordersdomain.Order) []Order {
	result := make([]Order, 0, len(orders))
	for _, order := range orders {
		result = append(result, FromDomainOrder(order))
	}
	return result
}
