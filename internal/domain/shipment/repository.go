package shipment

import (
	"context"
	"time"

	"fleet-device-manager/internal/domain/device"

	"github.com/google/uuid"
)

// Repository defines the persistence contract for shipment legs.
//
// Advance and ConfirmReturn are atomic: the status guard and the update run
// as one statement (or one transaction), so a concurrent advance observes
// either the old or the new status, never a regression.
type Repository interface {
	// Create inserts a new leg. Fails with ErrLegAlreadyExists when a leg of
	// the same direction already exists for the assignment.
	Create(ctx context.Context, s *Shipment) error

	GetByID(ctx context.Context, shipmentID uuid.UUID) (*Shipment, error)

	// GetByAssignmentAndLeg returns (nil, nil) when the leg does not exist.
	GetByAssignmentAndLeg(ctx context.Context, assignmentID uuid.UUID, leg Leg) (*Shipment, error)

	ListByAssignmentID(ctx context.Context, assignmentID uuid.UUID) ([]*Shipment, error)

	// Advance moves the leg from to to, stamping shipped_at or delivered_at.
	// Fails with ErrInvalidTransition when the stored status is not from.
	Advance(ctx context.Context, shipmentID uuid.UUID, from, to ShipmentStatus, at time.Time) error

	// ConfirmReturn marks the return leg delivered and sets the returned
	// device (returnIMEI) to finalStatus in the same transaction. Fails with
	// ErrOutboundNotDelivered when the sibling outbound leg is not delivered.
	ConfirmReturn(ctx context.Context, shipmentID uuid.UUID, returnIMEI string, finalStatus device.DeviceStatus, notes *string, at time.Time) error
}
