package orderserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	orderhttpmapper "github.com/bookhaven/order-service/internal/domains/orders/adapters/http/mapper"
	ordersports "github.com/bookhaven/order-service/internal/domains/orders/ports"
	apierrors "github.com/bookhaven/order-service/internal/shared/errors"
)

// OrderAPI wires HTTP transport with the orders service.
type OrderAPI struct {
	service ordersports.Service
}

// NewOrderAPI creates an OrderAPI backed by the provided service.
func NewOrderAPI(service ordersports.Service) OrderAPI {
	return OrderAPI{service: service}
}

// Post /orders
// Submit an order for a book
func (api *OrderAPI) SubmitOrder(c *gin.Context) {
	var payload orderhttpmapper.OrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	order := api.service.SubmitOrder(c.Request.Context(), payload.ISBN, payload.Quantity)
	if order == nil {
		// The pipeline degraded; by contract no reason is exposed.
		respondProblem(c, apierrors.ErrServiceUnavailable.WithDetail("order could not be placed"))
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromDomainOrder(order))
}

// Get /orders
// List all submitted orders
func (api *OrderAPI) GetAllOrders(c *gin.Context) {
	orders, err := api.service.GetAllOrders(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromDomainOrders(orders))
}
