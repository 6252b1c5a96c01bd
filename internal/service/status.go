package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/swiftcart/fulfillment/internal/actor"
	"github.com/swiftcart/fulfillment/internal/cache"
	"github.com/swiftcart/fulfillment/internal/metrics"
	"github.com/swiftcart/fulfillment/internal/models"
	"github.com/swiftcart/fulfillment/internal/mykafka"
	"github.com/swiftcart/fulfillment/internal/repo"
	"github.com/swiftcart/fulfillment/pkg/logging"
)

// StatusService applies actor-scoped transitions from the transition table
// in models. Every transition is a single conditional update against the
// store; concurrent actors are arbitrated by rows affected, never by a prior
// read.
type StatusService struct {
	Repo     *repo.GormRepo
	Producer *mykafka.Producer
	Cache    *cache.Cache
	Metrics  *metrics.Metrics
}

func (svc *StatusService) UpdateStatus(ctx context.Context, orderID uuid.UUID, act actor.Actor, target models.OrderStatus) (*models.Order, error) {
	l := logging.FromContext(ctx).With("svc", "fulfillment.status", "order_id", orderID, "target", target)

	rule, ok := models.Transitions[target]
	if !ok {
		return nil, fmt.Errorf("%w: no transition leads to %q", ErrWrongState, target)
	}
	if act.Role != rule.Role {
		return nil, fmt.Errorf("%w: %s role required", ErrNotAuthorized, rule.Role)
	}

	order, err := svc.Repo.GetOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if rule.SellerOwnership {
		owns, err := svc.Repo.SellerOwnsOrderItem(ctx, orderID, act.ID)
		if err != nil {
			return nil, err
		}
		if !owns {
			return nil, fmt.Errorf("%w: order has none of your products", ErrNotAuthorized)
		}
	}
	if rule.AssignedRiderOnly {
		if order.RiderID == nil || *order.RiderID != act.ID {
			return nil, fmt.Errorf("%w: order is assigned to another rider", ErrNotAuthorized)
		}
	}

	if rule.Claim {
		// The claim skips any state pre-check: the conditional update is
		// the check, and a zero-row result never says whether another
		// rider won or the order moved on. Both read the same to the
		// caller.
		won, err := svc.Repo.ClaimOrder(ctx, orderID, act.ID)
		if err != nil {
			return nil, err
		}
		if !won {
			svc.Metrics.ClaimConflict()
			l.Info("claim_lost", "rider_id", act.ID)
			return nil, ErrUnavailable
		}
	} else {
		if order.Status != rule.From {
			return nil, fmt.Errorf("%w: order is %s", ErrWrongState, order.Status)
		}
		moved, err := svc.Repo.AdvanceStatus(ctx, orderID, rule.From, target)
		if err != nil {
			return nil, err
		}
		if !moved {
			// Lost a race with a concurrent transition since the read above.
			return nil, fmt.Errorf("%w: order is no longer %s", ErrWrongState, rule.From)
		}
	}

	updated, err := svc.Repo.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	svc.Metrics.TransitionApplied(string(target))
	svc.Cache.InvalidateBuyerOrders(ctx, updated.BuyerID)

	if err := svc.Producer.PublishEvent(ctx, updated.ID.String(), map[string]any{
		"type":     "order_status_changed",
		"order_id": updated.ID,
		"status":   updated.Status,
		"actor_id": act.ID,
		"role":     act.Role,
	}); err != nil {
		l.Warn("kafka_publish_error", "error", err)
	}

	l.Info("status_updated", "status", updated.Status, "actor_id", act.ID)
	return updated, nil
}
