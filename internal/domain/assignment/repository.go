package assignment

import (
	"context"
	"time"

	"fleet-device-manager/internal/domain/device"

	"github.com/google/uuid"
)

// Repository defines the persistence contract for the assignment ledger.
//
// Open and Close are atomic check-then-act operations: each one runs in a
// single transaction holding the device row lock, so two concurrent Opens for
// the same device yield exactly one success and one ErrDeviceAlreadyAssigned.
type Repository interface {
	// Open records a new custody period and sets the device status to
	// assigned. Fails with ErrDeviceAlreadyAssigned when an active
	// assignment exists for the device.
	Open(ctx context.Context, a *Assignment) error

	// Close stamps closed_at, sets the device status to resultingStatus and
	// releases the device for reassignment. Fails with ErrNotActive when the
	// assignment is already closed.
	Close(ctx context.Context, assignmentID uuid.UUID, resultingStatus device.DeviceStatus, reason *string) (time.Time, error)

	GetByID(ctx context.Context, assignmentID uuid.UUID) (*Assignment, error)

	// GetActiveByDeviceID returns (nil, nil) when the device has no active
	// assignment.
	GetActiveByDeviceID(ctx context.Context, deviceID uuid.UUID) (*Assignment, error)

	// GetLastByDeviceID returns the most recently opened assignment for the
	// device, or (nil, nil) when it has none.
	GetLastByDeviceID(ctx context.Context, deviceID uuid.UUID) (*Assignment, error)

	ListByDeviceID(ctx context.Context, deviceID uuid.UUID) ([]*Assignment, error)
	List(ctx context.Context, filter *Filter) ([]*Assignment, int64, error)
}

// Filter represents filtering options for listing assignments.
type Filter struct {
	DeviceID      *uuid.UUID
	Status        *AssignmentStatus
	Type          *AssignmentType
	DistributorID *uuid.UUID
	TicketRef     *string
	OpenedAfter   *time.Time
	OpenedBefore  *time.Time
	Search        string
	Page          int
	PageSize      int
	SortBy        string
	SortOrder     string
}
