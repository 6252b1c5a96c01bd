package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/swiftcart/fulfillment/internal/cache"
	"github.com/swiftcart/fulfillment/internal/models"
	"github.com/swiftcart/fulfillment/internal/repo"
)

// ViewService serves the read projections. All three are plain filters over
// the order store; the buyer history may be served from cache because every
// write path invalidates it.
type ViewService struct {
	Repo  *repo.GormRepo
	Cache *cache.Cache
}

func (svc *ViewService) OrdersByBuyer(ctx context.Context, buyerID uuid.UUID) ([]models.Order, error) {
	if orders, ok := svc.Cache.GetBuyerOrders(ctx, buyerID); ok {
		return orders, nil
	}

	orders, err := svc.Repo.ListOrdersByBuyer(ctx, buyerID)
	if err != nil {
		return nil, err
	}

	svc.Cache.SetBuyerOrders(ctx, buyerID, orders)
	return orders, nil
}

func (svc *ViewService) OrdersForSeller(ctx context.Context, sellerID uuid.UUID) ([]models.OrderSummary, error) {
	return svc.Repo.ListOrdersForSeller(ctx, sellerID)
}

func (svc *ViewService) OrdersForRider(ctx context.Context, riderID uuid.UUID) ([]models.OrderSummary, error) {
	return svc.Repo.ListOrdersForRider(ctx, riderID)
}

type SellerDashboard struct {
	Stats     repo.SellerStats `json:"stats"`
	Inventory []InventoryItem  `json:"inventory"`
}

type InventoryItem struct {
	models.Product
	StockStatus string `json:"stock_status"`
}

func (svc *ViewService) Dashboard(ctx context.Context, sellerID uuid.UUID) (*SellerDashboard, error) {
	stats, err := svc.Repo.GetSellerStats(ctx, sellerID)
	if err != nil {
		return nil, err
	}

	products, err := svc.Repo.ListSellerProducts(ctx, sellerID)
	if err != nil {
		return nil, err
	}

	inventory := make([]InventoryItem, 0, len(products))
	for _, p := range products {
		item := InventoryItem{Product: p}
		switch {
		case p.Stock == 0:
			item.StockStatus = "out"
		case p.Stock < 10:
			item.StockStatus = "low"
		default:
			item.StockStatus = "good"
		}
		inventory = append(inventory, item)
	}

	return &SellerDashboard{Stats: *stats, Inventory: inventory}, nil
}
