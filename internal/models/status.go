package models

type OrderStatus string

const (
	StatusPending        OrderStatus = "pending"
	StatusReadyForPickup OrderStatus = "ready_for_pickup"
	StatusInTransit      OrderStatus = "in_transit"
	StatusDelivered      OrderStatus = "delivered"
)

// Transition describes the single legal way to reach a target status.
// Statuses only ever move forward pending -> ready_for_pickup -> in_transit
// -> delivered; nothing skips or reverses.
type Transition struct {
	From OrderStatus
	// Role that may request the transition.
	Role string
	// Claim marks the rider-claim transition: it must be applied as one
	// conditional update on (status, rider_id) and judged by rows affected.
	Claim bool
	// AssignedRiderOnly restricts the transition to the rider already on
	// the order.
	AssignedRiderOnly bool
	// SellerOwnership requires the caller to own at least one line item's
	// product.
	SellerOwnership bool
}

// Transitions is the full state machine, keyed by target status.
var Transitions = map[OrderStatus]Transition{
	StatusReadyForPickup: {From: StatusPending, Role: RoleSeller, SellerOwnership: true},
	StatusInTransit:      {From: StatusReadyForPickup, Role: RoleRider, Claim: true},
	StatusDelivered:      {From: StatusInTransit, Role: RoleRider, AssignedRiderOnly: true},
}

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusReadyForPickup, StatusInTransit, StatusDelivered:
		return true
	}
	return false
}
