package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/swiftcart/fulfillment/internal/actor"
	"github.com/swiftcart/fulfillment/internal/models"
)

type Deps struct {
	OrderHandler *OrderHTTP
	Gate         *actor.Gate
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	orders := e.Group("/orders")
	orders.POST("", d.OrderHandler.CreateOrder, d.Gate.RequireRole(models.RoleBuyer))
	orders.GET("/my", d.OrderHandler.MyOrders, d.Gate.RequireRole(models.RoleBuyer))
	orders.PUT("/:id/status", d.OrderHandler.UpdateStatus, d.Gate.RequireAuth)

	sellers := e.Group("/sellers", d.Gate.RequireRole(models.RoleSeller))
	sellers.GET("/orders", d.OrderHandler.SellerOrders)
	sellers.GET("/dashboard", d.OrderHandler.SellerDashboard)

	riders := e.Group("/riders", d.Gate.RequireRole(models.RoleRider))
	riders.GET("/orders", d.OrderHandler.RiderOrders)
}
