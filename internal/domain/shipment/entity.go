package shipment

import (
	"time"

	"github.com/google/uuid"
)

// Leg is the direction of one physical movement: delivering a device to its
// holder, or collecting a different device back.
type Leg string

const (
	LegOutbound Leg = "outbound"
	LegReturn   Leg = "return"
)

// ShipmentStatus transitions are monotonic: pending → shipped → delivered.
type ShipmentStatus string

const (
	StatusPending   ShipmentStatus = "pending"
	StatusShipped   ShipmentStatus = "shipped"
	StatusDelivered ShipmentStatus = "delivered"
)

// IsValid reports whether s is a known shipment status.
func (s ShipmentStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusShipped, StatusDelivered:
		return true
	}
	return false
}

// Shipment represents one leg of physical movement for an assignment. At most
// one outbound and one return leg exist per assignment; neither is ever
// deleted.
type Shipment struct {
	ID           uuid.UUID
	AssignmentID uuid.UUID
	Leg          Leg
	VoucherID    *string
	Status       ShipmentStatus
	ShippedAt    *time.Time
	DeliveredAt  *time.Time
	Notes        *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsLive reports whether the leg has a voucher and has not been delivered
// yet; a live outbound leg is what the projection surfaces as "En envío".
func (s *Shipment) IsLive() bool {
	return s.VoucherID != nil && *s.VoucherID != "" && s.Status != StatusDelivered
}
