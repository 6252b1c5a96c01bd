package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleBuyer  = "buyer"
	RoleSeller = "seller"
	RoleRider  = "rider"
)

// User rows are owned by the auth service; fulfillment only reads them to
// attach buyer contact details to seller/rider order queues.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"  json:"id"`
	Name         string    `gorm:"not null"              json:"name"`
	Phone        string    `json:"phone"`
	Role         string    `gorm:"not null"              json:"role"`
	PasswordHash string    `gorm:"not null"              json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

type Product struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"            json:"id"`
	SellerID  uuid.UUID `gorm:"type:uuid;index;not null"        json:"seller_id"`
	Name      string    `gorm:"not null"                        json:"name"`
	Price     int64     `gorm:"not null;check:price >= 0"       json:"price"`
	Stock     int64     `gorm:"not null;check:stock >= 0"       json:"stock"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Order struct {
	ID              uuid.UUID   `gorm:"type:uuid;primaryKey"      json:"id"`
	OrderNumber     string      `gorm:"uniqueIndex;not null"      json:"order_number"`
	BuyerID         uuid.UUID   `gorm:"type:uuid;index;not null"  json:"buyer_id"`
	RiderID         *uuid.UUID  `gorm:"type:uuid;index"           json:"rider_id"`
	TotalAmount     int64       `gorm:"not null"                  json:"total_amount"`
	DeliveryFee     int64       `gorm:"not null"                  json:"delivery_fee"`
	PaymentMethod   string      `gorm:"not null"                  json:"payment_method"`
	DeliveryAddress string      `gorm:"not null"                  json:"delivery_address"`
	Status          OrderStatus `gorm:"index;not null"            json:"status"`
	Items           []OrderItem `json:"items,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

type OrderItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"           json:"id"`
	OrderID   uuid.UUID `gorm:"type:uuid;index;not null"       json:"order_id"`
	ProductID uuid.UUID `gorm:"type:uuid;index;not null"       json:"product_id"`
	Quantity  int       `gorm:"not null;check:quantity > 0"    json:"quantity"`
	// UnitPrice is the price captured at purchase time, never recomputed
	// from the product's current price.
	UnitPrice int64 `gorm:"not null" json:"unit_price"`
}

// OrderSummary is the read shape served by the seller and rider queues:
// one row per order with the buyer's contact details joined on.
type OrderSummary struct {
	ID              uuid.UUID   `json:"id"`
	OrderNumber     string      `json:"order_number"`
	TotalAmount     int64       `json:"total_amount"`
	DeliveryFee     int64       `json:"delivery_fee"`
	Status          OrderStatus `json:"status"`
	DeliveryAddress string      `json:"delivery_address"`
	BuyerName       string      `json:"buyer_name"`
	BuyerPhone      string      `json:"buyer_phone,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
}
