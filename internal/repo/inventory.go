package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/swiftcart/fulfillment/internal/models"
)

// Reserve decrements a product's stock by quantity, but only if enough stock
// remains. The decrement and the availability check are one conditional
// update; a zero-row result is the only signal of insufficient stock. There
// is deliberately no read before the write, so concurrent checkouts of the
// same product cannot oversell it.
func (r *GormRepo) Reserve(ctx context.Context, productID uuid.UUID, quantity int) (bool, error) {
	res := r.DB.WithContext(ctx).Model(&models.Product{}).
		Where("id = ? AND stock >= ?", productID, quantity).
		Update("stock", gorm.Expr("stock - ?", quantity))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *GormRepo) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var p models.Product
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}
