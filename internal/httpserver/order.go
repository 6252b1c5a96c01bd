package httpserver

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/swiftcart/fulfillment/internal/actor"
	"github.com/swiftcart/fulfillment/internal/models"
	"github.com/swiftcart/fulfillment/internal/service"
	"github.com/swiftcart/fulfillment/internal/transport"
	"github.com/swiftcart/fulfillment/pkg/logging"
)

type OrderHTTP struct {
	Checkout *service.CheckoutService
	Status   *service.StatusService
	Views    *service.ViewService
}

func (h *OrderHTTP) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.checkout")

	act, ok := actor.FromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var req transport.CheckoutRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("checkout_error", "status", 400, "reason", "invalid body", "error", err)
		return c.JSON(http.StatusBadRequest, transport.Rejection{Error: "invalid body", Reason: "validation"})
	}

	order, err := h.Checkout.Checkout(ctx, req, act.ID)
	if err != nil {
		var stockErr *service.InsufficientStockError
		switch {
		case errors.As(err, &stockErr):
			return c.JSON(http.StatusConflict, transport.Rejection{
				Error:     "insufficient stock",
				Reason:    "insufficient_stock",
				ProductID: &stockErr.ProductID,
			})
		case errors.Is(err, service.ErrValidation):
			return c.JSON(http.StatusBadRequest, transport.Rejection{Error: err.Error(), Reason: "validation"})
		default:
			l.Error("checkout_error", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
		}
	}

	return c.JSON(http.StatusCreated, transport.CheckoutResponse{
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		TotalAmount: order.TotalAmount,
		Status:      order.Status,
	})
}

func (h *OrderHTTP) UpdateStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.update_status")

	act, ok := actor.FromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, transport.Rejection{Error: "invalid order id", Reason: "validation"})
	}

	var req transport.UpdateStatusRequest
	if err := c.Bind(&req); err != nil || !req.Status.Valid() {
		return c.JSON(http.StatusBadRequest, transport.Rejection{Error: "invalid status", Reason: "validation"})
	}

	order, err := h.Status.UpdateStatus(ctx, orderID, act, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			return c.JSON(http.StatusNotFound, transport.Rejection{Error: "order not found", Reason: "not_found"})
		case errors.Is(err, service.ErrNotAuthorized):
			return c.JSON(http.StatusForbidden, transport.Rejection{Error: err.Error(), Reason: "not_authorized"})
		case errors.Is(err, service.ErrUnavailable):
			return c.JSON(http.StatusConflict, transport.Rejection{Error: "order no longer available", Reason: "already_claimed"})
		case errors.Is(err, service.ErrWrongState):
			return c.JSON(http.StatusConflict, transport.Rejection{Error: err.Error(), Reason: "wrong_current_state"})
		default:
			l.Error("update_status_error", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
		}
	}

	return c.JSON(http.StatusOK, order)
}

func (h *OrderHTTP) MyOrders(c echo.Context) error {
	ctx := c.Request().Context()

	act, ok := actor.FromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	orders, err := h.Views.OrdersByBuyer(ctx, act.ID)
	if err != nil {
		logging.FromContext(ctx).Error("buyer_orders_error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	if orders == nil {
		orders = []models.Order{}
	}

	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHTTP) SellerOrders(c echo.Context) error {
	ctx := c.Request().Context()

	act, ok := actor.FromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	orders, err := h.Views.OrdersForSeller(ctx, act.ID)
	if err != nil {
		logging.FromContext(ctx).Error("seller_orders_error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	if orders == nil {
		orders = []models.OrderSummary{}
	}

	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHTTP) SellerDashboard(c echo.Context) error {
	ctx := c.Request().Context()

	act, ok := actor.FromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	dashboard, err := h.Views.Dashboard(ctx, act.ID)
	if err != nil {
		logging.FromContext(ctx).Error("seller_dashboard_error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, dashboard)
}

func (h *OrderHTTP) RiderOrders(c echo.Context) error {
	ctx := c.Request().Context()

	act, ok := actor.FromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	orders, err := h.Views.OrdersForRider(ctx, act.ID)
	if err != nil {
		logging.FromContext(ctx).Error("rider_orders_error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	if orders == nil {
		orders = []models.OrderSummary{}
	}

	return c.JSON(http.StatusOK, orders)
}
