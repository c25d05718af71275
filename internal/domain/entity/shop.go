package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ShopStatus is the approval state of a shop. Older backends expose a bare
// is_open boolean instead; those are normalized to approved/disabled on read.
type ShopStatus string

const (
	// ShopPending marks a newly submitted shop awaiting approval.
	ShopPending ShopStatus = "pending"
	// ShopApproved marks a shop visible and accepting orders.
	ShopApproved ShopStatus = "approved"
	// ShopDisabled marks a shop hidden from the storefront.
	ShopDisabled ShopStatus = "disabled"
)

// String returns the string representation of the ShopStatus.
func (s ShopStatus) String() string {
	return string(s)
}

// IsValid checks if the ShopStatus is a valid value.
func (s ShopStatus) IsValid() bool {
	switch s {
	case ShopPending, ShopApproved, ShopDisabled:
		return true
	default:
		return false
	}
}

// Toggled returns the status after an enable/disable toggle. A pending shop
// toggles straight to approved.
func (s ShopStatus) Toggled() ShopStatus {
	if s == ShopApproved {
		return ShopDisabled
	}

	return ShopApproved
}

// Shop is a campus food shop together with its owned menu. A menu item never
// exists outside its parent shop, and the parent reference is immutable.
type Shop struct {
	ID      uuid.UUID       // The unique identifier for the shop.
	Name    string          // Display name of the shop.
	Owner   string          // Owner reference; optional, the backend column may not exist yet.
	Status  ShopStatus      // Approval state.
	Rating  float64         // Average customer rating; optional column.
	Revenue decimal.Decimal // Lifetime revenue; optional column.
	Image   string          // Storefront image reference; optional column.
	Menu    []MenuItem      // Owned menu items, nested on fetch.
}

// MenuItem is a single sellable item on a shop's menu.
type MenuItem struct {
	ID        uuid.UUID       // The unique identifier for the item.
	ShopID    uuid.UUID       // Parent shop; immutable after creation.
	Name      string          // Item name.
	Price     decimal.Decimal // Non-negative, currency-agnostic unit price.
	Category  string          // Menu section, e.g. "Burgers".
	Available bool            // Whether the item can currently be ordered.
	Image     string          // Item image reference; optional column.
}

// ShopCredential is the generated login pair handed to a shop owner when the
// shop is created. The secret is returned to the operator once and stored in
// the shop_auth collection.
type ShopCredential struct {
	ShopID   uuid.UUID // The shop this credential belongs to.
	LoginID  string    // Structured identifier, SHOP-XXXXXX.
	Password string    // Random 10-character password.
}
