// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// UserRole represents the platform role a user account carries.
type UserRole string

const (
	// RoleStudent indicates a regular ordering customer.
	RoleStudent UserRole = "student"
	// RoleShopOwner indicates the operator of a campus shop.
	RoleShopOwner UserRole = "shop_owner"
	// RoleDelivery indicates a delivery partner account.
	RoleDelivery UserRole = "delivery"
)

// String returns the string representation of the UserRole.
func (r UserRole) String() string {
	return string(r)
}

// IsValid checks if the UserRole is a valid value.
func (r UserRole) IsValid() bool {
	switch r {
	case RoleStudent, RoleShopOwner, RoleDelivery:
		return true
	default:
		return false
	}
}

// UserStatus is the moderation state of a user account.
type UserStatus string

const (
	// UserActive marks an account in good standing.
	UserActive UserStatus = "active"
	// UserBlocked marks an account barred from ordering.
	UserBlocked UserStatus = "blocked"
)

// IsValid checks if the UserStatus is a valid value.
func (s UserStatus) IsValid() bool {
	return s == UserActive || s == UserBlocked
}

// User is a platform account as seen by the admin dashboard. The remote
// gateway is the source of truth; the store holds a cached projection.
type User struct {
	ID       uuid.UUID  // The unique identifier for the user.
	Name     string     // The user's display name.
	Email    string     // The user's contact email, used as a login identifier.
	Role     UserRole   // The platform role of this account.
	Status   UserStatus // Moderation state, flipped by block/unblock.
	JoinDate time.Time  // When the account was created.
}
