package transport

import (
	"github.com/google/uuid"

	"github.com/swiftcart/fulfillment/internal/models"
)

type CheckoutItem struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
	UnitPrice int64     `json:"unit_price"`
}

type CheckoutRequest struct {
	Items           []CheckoutItem `json:"items"`
	DeliveryAddress string         `json:"delivery_address"`
	PaymentMethod   string         `json:"payment_method"`
	DeliveryFee     int64          `json:"delivery_fee"`
}

type CheckoutResponse struct {
	OrderID     uuid.UUID          `json:"order_id"`
	OrderNumber string             `json:"order_number"`
	TotalAmount int64              `json:"total_amount"`
	Status      models.OrderStatus `json:"status"`
}

type UpdateStatusRequest struct {
	Status models.OrderStatus `json:"status"`
}

// Rejection is the error body for any refused operation: a machine-readable
// reason plus whatever context the caller needs to re-render current state.
type Rejection struct {
	Error     string             `json:"error"`
	Reason    string             `json:"reason"`
	ProductID *uuid.UUID         `json:"product_id,omitempty"`
	Status    models.OrderStatus `json:"status,omitempty"`
}
