package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm/clause"

	"github.com/swiftcart/fulfillment/internal/models"
)

func (r *GormRepo) InsertOrder(ctx context.Context, order *models.Order) error {
	return r.DB.WithContext(ctx).Omit(clause.Associations).Create(order).Error
}

func (r *GormRepo) InsertOrderItem(ctx context.Context, item *models.OrderItem) error {
	return r.DB.WithContext(ctx).Create(item).Error
}

func (r *GormRepo) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := r.DB.WithContext(ctx).Preload("Items").Where("id = ?", id).First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// AdvanceStatus moves an order from one status to the next with a conditional
// update guarded on the expected current status. A false result means the
// order was not in the expected status anymore.
func (r *GormRepo) AdvanceStatus(ctx context.Context, id uuid.UUID, from, to models.OrderStatus) (bool, error) {
	res := r.DB.WithContext(ctx).Model(&models.Order{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// ClaimOrder is the rider claim: set status and rider in one conditional
// update that only matches an unclaimed ready_for_pickup order. The rows
// affected count is the only arbiter between concurrent riders; whoever gets
// zero rows lost the claim (or the order moved on), and the two cases are
// indistinguishable here on purpose.
func (r *GormRepo) ClaimOrder(ctx context.Context, id, riderID uuid.UUID) (bool, error) {
	res := r.DB.WithContext(ctx).Model(&models.Order{}).
		Where("id = ? AND status = ? AND rider_id IS NULL", id, models.StatusReadyForPickup).
		Updates(map[string]any{
			"status":   models.StatusInTransit,
			"rider_id": riderID,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// SellerOwnsOrderItem reports whether at least one of the order's line items
// belongs to the given seller.
func (r *GormRepo) SellerOwnsOrderItem(ctx context.Context, orderID, sellerID uuid.UUID) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.OrderItem{}).
		Joins("JOIN products ON products.id = order_items.product_id").
		Where("order_items.order_id = ? AND products.seller_id = ?", orderID, sellerID).
		Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *GormRepo) ListOrdersByBuyer(ctx context.Context, buyerID uuid.UUID) ([]models.Order, error) {
	var orders []models.Order
	err := r.DB.WithContext(ctx).
		Preload("Items").
		Where("buyer_id = ?", buyerID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *GormRepo) ListOrdersForSeller(ctx context.Context, sellerID uuid.UUID) ([]models.OrderSummary, error) {
	var out []models.OrderSummary
	err := r.DB.WithContext(ctx).Model(&models.Order{}).
		Select("DISTINCT orders.id, orders.order_number, orders.total_amount, orders.delivery_fee, orders.status, orders.delivery_address, orders.created_at, users.name AS buyer_name").
		Joins("JOIN order_items ON order_items.order_id = orders.id").
		Joins("JOIN products ON products.id = order_items.product_id").
		Joins("JOIN users ON users.id = orders.buyer_id").
		Where("products.seller_id = ?", sellerID).
		Order("orders.created_at DESC").
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListOrdersForRider returns the open pool (ready for pickup, nobody assigned)
// plus everything already claimed by this rider.
func (r *GormRepo) ListOrdersForRider(ctx context.Context, riderID uuid.UUID) ([]models.OrderSummary, error) {
	var out []models.OrderSummary
	err := r.DB.WithContext(ctx).Model(&models.Order{}).
		Select("orders.id, orders.order_number, orders.total_amount, orders.delivery_fee, orders.status, orders.delivery_address, orders.created_at, users.name AS buyer_name, users.phone AS buyer_phone").
		Joins("JOIN users ON users.id = orders.buyer_id").
		Where("(orders.status = ? AND orders.rider_id IS NULL) OR orders.rider_id = ?", models.StatusReadyForPickup, riderID).
		Order("orders.created_at DESC").
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// SellerStats aggregates the dashboard numbers for one seller.
type SellerStats struct {
	TotalRevenue  int64 `json:"total_revenue"`
	OrdersToday   int64 `json:"orders_today"`
	TotalProducts int64 `json:"total_products"`
}

func (r *GormRepo) GetSellerStats(ctx context.Context, sellerID uuid.UUID) (*SellerStats, error) {
	var stats SellerStats

	err := r.DB.WithContext(ctx).Model(&models.OrderItem{}).
		Select("COALESCE(SUM(order_items.quantity * order_items.unit_price), 0)").
		Joins("JOIN products ON products.id = order_items.product_id").
		Where("products.seller_id = ?", sellerID).
		Scan(&stats.TotalRevenue).Error
	if err != nil {
		return nil, err
	}

	err = r.DB.WithContext(ctx).Model(&models.OrderItem{}).
		Joins("JOIN products ON products.id = order_items.product_id").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("products.seller_id = ? AND orders.created_at >= CURRENT_DATE", sellerID).
		Distinct("order_items.order_id").
		Count(&stats.OrdersToday).Error
	if err != nil {
		return nil, err
	}

	err = r.DB.WithContext(ctx).Model(&models.Product{}).
		Where("seller_id = ?", sellerID).
		Count(&stats.TotalProducts).Error
	if err != nil {
		return nil, err
	}

	return &stats, nil
}

func (r *GormRepo) ListSellerProducts(ctx context.Context, sellerID uuid.UUID) ([]models.Product, error) {
	var items []models.Product
	err := r.DB.WithContext(ctx).
		Where("seller_id = ?", sellerID).
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
