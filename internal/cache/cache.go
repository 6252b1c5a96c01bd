package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/swiftcart/fulfillment/internal/models"
)

const (
	// orders:buyer:{buyer_id} -> buyer history JSON
	keyBuyerOrders = "orders:buyer:%s"
)

var TTLBuyerOrders = 5 * time.Minute

// Cache is an optional read-view cache over redis. A nil *Cache always
// misses and never writes, so tests and redis-less deployments skip it for
// free. Entries for an order's buyer are dropped after every transition
// touching that order, per the staleness rule on the query views.
type Cache struct {
	rdb *redis.Client
}

func New(addr string) *Cache {
	if addr == "" {
		return nil
	}
	return &Cache{rdb: redis.NewClient(&redis.Options{Addr: addr})}
}

func (c *Cache) GetBuyerOrders(ctx context.Context, buyerID uuid.UUID) ([]models.Order, bool) {
	if c == nil {
		return nil, false
	}
	raw, err := c.rdb.Get(ctx, fmt.Sprintf(keyBuyerOrders, buyerID)).Bytes()
	if err != nil {
		return nil, false
	}
	var orders []models.Order
	if err := json.Unmarshal(raw, &orders); err != nil {
		return nil, false
	}
	return orders, true
}

func (c *Cache) SetBuyerOrders(ctx context.Context, buyerID uuid.UUID, orders []models.Order) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(orders)
	if err != nil {
		return
	}
	c.rdb.Set(ctx, fmt.Sprintf(keyBuyerOrders, buyerID), raw, TTLBuyerOrders)
}

func (c *Cache) InvalidateBuyerOrders(ctx context.Context, buyerID uuid.UUID) {
	if c == nil {
		return
	}
	c.rdb.Del(ctx, fmt.Sprintf(keyBuyerOrders, buyerID))
}

func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.rdb.Close()
}
