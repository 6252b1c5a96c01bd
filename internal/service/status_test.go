package service

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/swiftcart/fulfillment/internal/actor"
	"github.com/swiftcart/fulfillment/internal/models"
	"github.com/swiftcart/fulfillment/internal/repo"
	"github.com/swiftcart/fulfillment/internal/transport"
)

type statusEnv struct {
	repo     *repo.GormRepo
	checkout *CheckoutService
	status   *StatusService
	seller   actor.Actor
	buyer    actor.Actor
	rider    actor.Actor
}

func newStatusEnv(t *testing.T) *statusEnv {
	t.Helper()
	r := newTestRepo(t)
	return &statusEnv{
		repo:     r,
		checkout: newCheckoutService(r),
		status:   &StatusService{Repo: r},
		seller:   actor.Actor{ID: uuid.New(), Role: models.RoleSeller},
		buyer:    actor.Actor{ID: uuid.New(), Role: models.RoleBuyer},
		rider:    actor.Actor{ID: uuid.New(), Role: models.RoleRider},
	}
}

// placeOrder runs a real checkout against a product owned by env.seller so
// ownership checks see genuine line items.
func (env *statusEnv) placeOrder(t *testing.T) *models.Order {
	t.Helper()
	p := seedProduct(t, env.repo, env.seller.ID, 500, 100)
	order, err := env.checkout.Checkout(context.Background(), transport.CheckoutRequest{
		Items:           []transport.CheckoutItem{{ProductID: p.ID, Quantity: 2, UnitPrice: 500}},
		DeliveryAddress: "12 Allen Avenue",
		PaymentMethod:   "card",
		DeliveryFee:     1000,
	}, env.buyer.ID)
	require.NoError(t, err)
	return order
}

func TestUpdateStatus_FullLifecycle(t *testing.T) {
	env := newStatusEnv(t)
	ctx := context.Background()
	order := env.placeOrder(t)

	got, err := env.status.UpdateStatus(ctx, order.ID, env.seller, models.StatusReadyForPickup)
	require.NoError(t, err)
	require.Equal(t, models.StatusReadyForPickup, got.Status)
	require.Nil(t, got.RiderID)

	got, err = env.status.UpdateStatus(ctx, order.ID, env.rider, models.StatusInTransit)
	require.NoError(t, err)
	require.Equal(t, models.StatusInTransit, got.Status)
	require.NotNil(t, got.RiderID)
	require.Equal(t, env.rider.ID, *got.RiderID)

	got, err = env.status.UpdateStatus(ctx, order.ID, env.rider, models.StatusDelivered)
	require.NoError(t, err)
	require.Equal(t, models.StatusDelivered, got.Status)
}

func TestUpdateStatus_RoleGate(t *testing.T) {
	env := newStatusEnv(t)
	ctx := context.Background()
	order := env.placeOrder(t)

	_, err := env.status.UpdateStatus(ctx, order.ID, env.buyer, models.StatusReadyForPickup)
	require.ErrorIs(t, err, ErrNotAuthorized)

	_, err = env.status.UpdateStatus(ctx, order.ID, env.rider, models.StatusReadyForPickup)
	require.ErrorIs(t, err, ErrNotAuthorized)

	_, err = env.status.UpdateStatus(ctx, order.ID, env.seller, models.StatusInTransit)
	require.ErrorIs(t, err, ErrNotAuthorized)

	got, err := env.repo.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	require.Equal(t, models.StatusPending, got.Status, "rejected transitions must leave the order unchanged")
}

func TestUpdateStatus_SellerMustOwnALineItem(t *testing.T) {
	env := newStatusEnv(t)
	ctx := context.Background()
	order := env.placeOrder(t)

	stranger := actor.Actor{ID: uuid.New(), Role: models.RoleSeller}
	_, err := env.status.UpdateStatus(ctx, order.ID, stranger, models.StatusReadyForPickup)
	require.ErrorIs(t, err, ErrNotAuthorized)

	_, err = env.status.UpdateStatus(ctx, order.ID, env.seller, models.StatusReadyForPickup)
	require.NoError(t, err)
}

func TestUpdateStatus_ConcurrentClaims_OneWinner(t *testing.T) {
	env := newStatusEnv(t)
	ctx := context.Background()
	order := env.placeOrder(t)

	_, err := env.status.UpdateStatus(ctx, order.ID, env.seller, models.StatusReadyForPickup)
	require.NoError(t, err)

	const riders = 6
	var wg sync.WaitGroup
	type claim struct {
		rider actor.Actor
		err   error
	}
	results := make(chan claim, riders)

	for i := 0; i < riders; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rider := actor.Actor{ID: uuid.New(), Role: models.RoleRider}
			_, err := env.status.UpdateStatus(ctx, order.ID, rider, models.StatusInTransit)
			results <- claim{rider: rider, err: err}
		}()
	}
	wg.Wait()
	close(results)

	var winner uuid.UUID
	wins, losses := 0, 0
	for res := range results {
		if res.err == nil {
			wins++
			winner = res.rider.ID
			continue
		}
		require.ErrorIs(t, res.err, ErrUnavailable, "losing riders must see the order as unavailable")
		losses++
	}
	require.Equal(t, 1, wins)
	require.Equal(t, riders-1, losses)

	got, err := env.repo.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	require.Equal(t, models.StatusInTransit, got.Status)
	require.Equal(t, winner, *got.RiderID)
}

func TestUpdateStatus_OnlyAssignedRiderDelivers(t *testing.T) {
	env := newStatusEnv(t)
	ctx := context.Background()
	order := env.placeOrder(t)

	_, err := env.status.UpdateStatus(ctx, order.ID, env.seller, models.StatusReadyForPickup)
	require.NoError(t, err)
	_, err = env.status.UpdateStatus(ctx, order.ID, env.rider, models.StatusInTransit)
	require.NoError(t, err)

	other := actor.Actor{ID: uuid.New(), Role: models.RoleRider}
	_, err = env.status.UpdateStatus(ctx, order.ID, other, models.StatusDelivered)
	require.ErrorIs(t, err, ErrNotAuthorized)

	got, err := env.repo.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	require.Equal(t, models.StatusInTransit, got.Status)

	_, err = env.status.UpdateStatus(ctx, order.ID, env.rider, models.StatusDelivered)
	require.NoError(t, err)
}

func TestUpdateStatus_NoSkippingOrReversing(t *testing.T) {
	env := newStatusEnv(t)
	ctx := context.Background()
	order := env.placeOrder(t)

	// pending order is not claimable
	_, err := env.status.UpdateStatus(ctx, order.ID, env.rider, models.StatusInTransit)
	require.ErrorIs(t, err, ErrUnavailable)

	// no transition targets pending
	_, err = env.status.UpdateStatus(ctx, order.ID, env.seller, models.StatusPending)
	require.ErrorIs(t, err, ErrWrongState)

	_, err = env.status.UpdateStatus(ctx, order.ID, env.seller, models.StatusReadyForPickup)
	require.NoError(t, err)

	// already past pending
	_, err = env.status.UpdateStatus(ctx, order.ID, env.seller, models.StatusReadyForPickup)
	require.ErrorIs(t, err, ErrWrongState)

	_, err = env.status.UpdateStatus(ctx, order.ID, env.rider, models.StatusInTransit)
	require.NoError(t, err)
	_, err = env.status.UpdateStatus(ctx, order.ID, env.rider, models.StatusDelivered)
	require.NoError(t, err)

	// delivered is terminal
	_, err = env.status.UpdateStatus(ctx, order.ID, env.rider, models.StatusInTransit)
	require.ErrorIs(t, err, ErrUnavailable)
	_, err = env.status.UpdateStatus(ctx, order.ID, env.rider, models.StatusDelivered)
	require.ErrorIs(t, err, ErrWrongState)
}

func TestUpdateStatus_NotFound(t *testing.T) {
	env := newStatusEnv(t)

	_, err := env.status.UpdateStatus(context.Background(), uuid.New(), env.seller, models.StatusReadyForPickup)
	require.ErrorIs(t, err, ErrNotFound)
}
