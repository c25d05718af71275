package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction is one settled payment record from the earnings source
// collection. Transactions are written by the ordering system; the admin core
// only aggregates them.
type Transaction struct {
	ID        uuid.UUID       // The unique identifier for the transaction.
	OrderID   uuid.UUID       // The order this payment settled.
	ShopName  string          // Receiving shop, denormalized.
	Amount    decimal.Decimal // Settled amount.
	CreatedAt time.Time       // Settlement time.
}

// RevenuePoint is one bucket in a per-day revenue breakdown.
type RevenuePoint struct {
	Day     time.Time       // Start of the day, UTC.
	Revenue decimal.Decimal // Revenue settled that day.
}

// EarningsSnapshot is the derived earnings view. It is recomputed from the
// cached transactions on every read and never persisted by this core.
type EarningsSnapshot struct {
	Total   decimal.Decimal // All-time settled revenue.
	Monthly decimal.Decimal // Revenue settled in the current calendar month.
	Today   decimal.Decimal // Revenue settled since midnight UTC.
	ByDay   []RevenuePoint  // Per-day breakdown, oldest first.
}
