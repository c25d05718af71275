package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus is a stage in the order lifecycle. The reference ordering is
// pending → accepted → ready → picked → delivered, with cancelled reachable
// from pending or accepted only.
type OrderStatus string

const (
	// OrderPending is the initial state of every order.
	OrderPending OrderStatus = "pending"
	// OrderAccepted means the shop has taken the order.
	OrderAccepted OrderStatus = "accepted"
	// OrderReady means the food is prepared and awaiting pickup.
	OrderReady OrderStatus = "ready"
	// OrderPicked means a delivery partner holds the order.
	OrderPicked OrderStatus = "picked"
	// OrderDelivered is the terminal success state.
	OrderDelivered OrderStatus = "delivered"
	// OrderCancelled is the terminal failure state.
	OrderCancelled OrderStatus = "cancelled"
)

// String returns the string representation of the OrderStatus.
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid checks if the OrderStatus is a valid value.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderPending, OrderAccepted, OrderReady, OrderPicked, OrderDelivered, OrderCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transitions are permitted.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderDelivered || s == OrderCancelled
}

// IsOpen reports whether the order still counts toward active-order stats.
func (s OrderStatus) IsOpen() bool {
	return s.IsValid() && !s.IsTerminal()
}

// successors maps each status to the set of statuses reachable from it.
var successors = map[OrderStatus][]OrderStatus{
	OrderPending:  {OrderAccepted, OrderCancelled},
	OrderAccepted: {OrderReady, OrderCancelled},
	OrderReady:    {OrderPicked},
	OrderPicked:   {OrderDelivered},
}

// CanTransition reports whether moving from s to next follows the reference
// lifecycle. The store itself only enforces the terminal invariant; this
// helper is exported for callers that want the full legality check.
func (s OrderStatus) CanTransition(next OrderStatus) bool {
	for _, candidate := range successors[s] {
		if candidate == next {
			return true
		}
	}

	return false
}

// Order is a customer order. Orders are created upstream by the ordering
// system; the admin core only reads them and transitions their status.
type Order struct {
	ID        uuid.UUID       // The unique identifier for the order.
	UserName  string          // Ordering customer, denormalized by the backend join.
	ShopName  string          // Fulfilling shop, denormalized by the backend join.
	Items     []string        // Human-readable line items, e.g. "2x Whopper".
	Amount    decimal.Decimal // Order total.
	Status    OrderStatus     // Current lifecycle stage.
	CreatedAt time.Time       // When the order was placed.
}
