package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/swiftcart/fulfillment/internal/cache"
	"github.com/swiftcart/fulfillment/internal/metrics"
	"github.com/swiftcart/fulfillment/internal/models"
	"github.com/swiftcart/fulfillment/internal/mykafka"
	"github.com/swiftcart/fulfillment/internal/repo"
	"github.com/swiftcart/fulfillment/internal/transport"
	"github.com/swiftcart/fulfillment/pkg/logging"
)

// CheckoutService turns a cart snapshot into a durable order. The order row,
// its line items and every stock reservation commit or roll back as one
// transaction; a half-checked-out order is never observable.
type CheckoutService struct {
	Repo     *repo.GormRepo
	Producer *mykafka.Producer
	Cache    *cache.Cache
	Metrics  *metrics.Metrics

	// DefaultDeliveryFee applies when the request leaves the fee at zero.
	DefaultDeliveryFee int64
}

func (svc *CheckoutService) Checkout(ctx context.Context, req transport.CheckoutRequest, buyerID uuid.UUID) (*models.Order, error) {
	l := logging.FromContext(ctx).With("svc", "fulfillment.checkout")

	if len(req.Items) == 0 {
		svc.Metrics.CheckoutRejected("validation")
		return nil, fmt.Errorf("%w: items required", ErrValidation)
	}
	if req.DeliveryAddress == "" {
		svc.Metrics.CheckoutRejected("validation")
		return nil, fmt.Errorf("%w: delivery_address required", ErrValidation)
	}
	if req.DeliveryFee < 0 {
		svc.Metrics.CheckoutRejected("validation")
		return nil, fmt.Errorf("%w: delivery_fee must be >= 0", ErrValidation)
	}

	fee := req.DeliveryFee
	if fee == 0 {
		fee = svc.DefaultDeliveryFee
	}

	var total int64
	items := make([]models.OrderItem, 0, len(req.Items))
	for i := range req.Items {
		if req.Items[i].ProductID == uuid.Nil {
			svc.Metrics.CheckoutRejected("validation")
			return nil, fmt.Errorf("%w: product_id required", ErrValidation)
		}
		if req.Items[i].Quantity <= 0 {
			svc.Metrics.CheckoutRejected("validation")
			return nil, fmt.Errorf("%w: quantity must be > 0", ErrValidation)
		}
		if req.Items[i].UnitPrice < 0 {
			svc.Metrics.CheckoutRejected("validation")
			return nil, fmt.Errorf("%w: unit_price must be >= 0", ErrValidation)
		}

		// Prices come from the caller's cart snapshot, not re-read from
		// the catalog.
		total += int64(req.Items[i].Quantity) * req.Items[i].UnitPrice
		items = append(items, models.OrderItem{
			ID:        uuid.New(),
			ProductID: req.Items[i].ProductID,
			Quantity:  req.Items[i].Quantity,
			UnitPrice: req.Items[i].UnitPrice,
		})
	}
	total += fee

	order := &models.Order{
		ID:              uuid.New(),
		OrderNumber:     newOrderNumber(),
		BuyerID:         buyerID,
		TotalAmount:     total,
		DeliveryFee:     fee,
		PaymentMethod:   req.PaymentMethod,
		DeliveryAddress: req.DeliveryAddress,
		Status:          models.StatusPending,
	}

	err := svc.Repo.Tx(ctx, func(tx *repo.GormRepo) error {
		if err := tx.InsertOrder(ctx, order); err != nil {
			return err
		}
		for i := range items {
			items[i].OrderID = order.ID
			if err := tx.InsertOrderItem(ctx, &items[i]); err != nil {
				return err
			}
			ok, err := tx.Reserve(ctx, items[i].ProductID, items[i].Quantity)
			if err != nil {
				return err
			}
			if !ok {
				return &InsufficientStockError{ProductID: items[i].ProductID}
			}
		}
		return nil
	})
	if err != nil {
		var stockErr *InsufficientStockError
		if errors.As(err, &stockErr) {
			svc.Metrics.CheckoutRejected("insufficient_stock")
			l.Warn("checkout_rejected", "reason", "insufficient_stock", "product_id", stockErr.ProductID)
		} else {
			l.Error("checkout_error", "error", err)
		}
		return nil, err
	}
	order.Items = items

	svc.Metrics.CheckoutAccepted()
	svc.Cache.InvalidateBuyerOrders(ctx, buyerID)

	if err := svc.Producer.PublishEvent(ctx, order.ID.String(), map[string]any{
		"type":         "order_created",
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
		"buyer_id":     order.BuyerID,
		"total_amount": order.TotalAmount,
		"status":       order.Status,
	}); err != nil {
		l.Warn("kafka_publish_error", "error", err)
	}

	l.Info("checkout_success", "order_id", order.ID, "order_number", order.OrderNumber, "total", order.TotalAmount)
	return order, nil
}

// newOrderNumber builds a time-prefixed human-readable number. Generation is
// advisory; the unique index on orders.order_number is what actually
// guarantees uniqueness.
func newOrderNumber() string {
	return fmt.Sprintf("ORD-%d-%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}
