package entity

import (
	"time"

	"github.com/google/uuid"
)

// PartnerStatus is the working state of a delivery partner.
type PartnerStatus string

const (
	// PartnerActive marks a partner eligible for assignments.
	PartnerActive PartnerStatus = "active"
	// PartnerBlocked marks a partner barred from deliveries.
	PartnerBlocked PartnerStatus = "blocked"
	// PartnerOnline marks a partner currently on shift.
	PartnerOnline PartnerStatus = "online"
)

// IsValid checks if the PartnerStatus is a valid value.
func (s PartnerStatus) IsValid() bool {
	switch s {
	case PartnerActive, PartnerBlocked, PartnerOnline:
		return true
	default:
		return false
	}
}

// DeliveryPartner is a courier profile managed by the dashboard.
type DeliveryPartner struct {
	ID                  uuid.UUID     // The unique identifier for the partner profile.
	UserID              uuid.UUID     // Associated platform user account, if linked.
	Name                string        // Display name.
	Status              PartnerStatus // Working state.
	CompletedDeliveries int           // Lifetime completed delivery count.
	Rating              float64       // Average customer rating.
	JoinDate            time.Time     // When the partner joined.

	// Optional enrollment details; the backend columns may not exist yet.
	Phone      string
	Hostel     string
	Room       string
	Enrollment string
	Document   string
}
