package orderserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ApiHandleFunctions bundles the per-resource handler groups.
type ApiHandleFunctions struct {
	OrderAPI OrderAPI
}

// Route binds one HTTP method and pattern to a handler.
type Route struct {
	Method      string
	Pattern     string
	HandlerFunc gin.HandlerFunc
}

// NewRouter returns a gin engine with all routes registered.
func NewRouter(handleFunctions ApiHandleFunctions) *gin.Engine {
	return NewRouterWithGinEngine(gin.Default(), handleFunctions)
}

// NewRouterWithGinEngine registers all routes on an existing engine.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = defaultHandler
		}
		switch route.Method {
		case http.MethodGet:
			router.GET(route.Pattern, route.HandlerFunc)
		case http.MethodPost:
			router.POST(route.Pattern, route.HandlerFunc)
		}
	}
	return router
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	return []Route{
		{
			Method:      http.MethodPost,
			Pattern:     "/orders",
			HandlerFunc: handleFunctions.OrderAPI.SubmitOrder,
		},
		{
			Method:      http.MethodGet,
			Pattern:     "/orders",
			HandlerFunc: handleFunctions.OrderAPI.GetAllOrders,
		},
		{
			Method:      http.MethodGet,
			Pattern:     "/healthz",
			HandlerFunc: healthz,
		},
	}
}

func healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "UP"})
}

func defaultHandler(c *gin.Context) {
	c.Status(http.StatusNotImplemented)
}
