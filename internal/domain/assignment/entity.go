package assignment

import (
	"time"

	"fleet-device-manager/internal/domain/device"

	"github.com/google/uuid"
)

// AssignmentType distinguishes brand-new custody from custody granted to
// replace a device being retired.
type AssignmentType string

const (
	TypeAssign  AssignmentType = "assign"
	TypeReplace AssignmentType = "replace"
)

// AssignmentStatus is binary: an assignment is either the device's current
// custody period or it has been closed.
type AssignmentStatus string

const (
	StatusActive AssignmentStatus = "active"
	StatusClosed AssignmentStatus = "closed"
)

// ReplacementReason is required when Type is replace and must be absent
// otherwise.
type ReplacementReason string

const (
	ReasonTheft        ReplacementReason = "theft"
	ReasonBreakage     ReplacementReason = "breakage"
	ReasonObsolescence ReplacementReason = "obsolescence"
	ReasonLoss         ReplacementReason = "loss"
)

// IsValid reports whether r is a known replacement reason.
func (r ReplacementReason) IsValid() bool {
	switch r {
	case ReasonTheft, ReasonBreakage, ReasonObsolescence, ReasonLoss:
		return true
	}
	return false
}

// Assignee identifies the custody holder and where the device is delivered.
type Assignee struct {
	Name             string
	Phone            string
	Email            string
	Role             string
	DistributorID    *uuid.UUID
	DeliveryLocation string
}

// Assignment represents one custody period of a device. It is only ever
// mutated to close it.
type Assignment struct {
	ID       uuid.UUID
	DeviceID uuid.UUID
	Type     AssignmentType
	Status   AssignmentStatus

	Assignee  Assignee
	TicketRef *string

	ReplacementReason *ReplacementReason

	ExpectsReturn      bool
	ExpectedReturnIMEI *string

	AssignedAt      time.Time
	ClosedAt        *time.Time
	CloseReason     *string
	ResultingStatus *device.DeviceStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive reports whether the assignment is the device's current custody.
func (a *Assignment) IsActive() bool {
	return a.Status == StatusActive
}
