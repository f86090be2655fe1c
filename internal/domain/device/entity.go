package device

import (
	"time"

	"github.com/google/uuid"
)

// DeviceStatus is the coarse lifecycle status of a handset. The registry only
// ever sees canonical codes; legacy display labels are normalized at the
// ingestion boundary.
type DeviceStatus string

const (
	StatusNew         DeviceStatus = "new"
	StatusAssigned    DeviceStatus = "assigned"
	StatusUsed        DeviceStatus = "used"
	StatusRepaired    DeviceStatus = "repaired"
	StatusNotRepaired DeviceStatus = "not_repaired"
	StatusLost        DeviceStatus = "lost"
	StatusDisposed    DeviceStatus = "disposed"
	StatusScrapped    DeviceStatus = "scrapped"
	StatusDonated     DeviceStatus = "donated"
)

var allStatuses = map[DeviceStatus]struct{}{
	StatusNew:         {},
	StatusAssigned:    {},
	StatusUsed:        {},
	StatusRepaired:    {},
	StatusNotRepaired: {},
	StatusLost:        {},
	StatusDisposed:    {},
	StatusScrapped:    {},
	StatusDonated:     {},
}

// IsValid reports whether s is a canonical status code.
func (s DeviceStatus) IsValid() bool {
	_, ok := allStatuses[s]
	return ok
}

// IsTerminalClosure reports whether s may be set as the resulting status when
// an assignment is closed.
func (s DeviceStatus) IsTerminalClosure() bool {
	switch s {
	case StatusUsed, StatusRepaired, StatusNotRepaired, StatusLost:
		return true
	}
	return false
}

// Label returns the human-facing display label for a status.
func (s DeviceStatus) Label() string {
	switch s {
	case StatusNew:
		return "Nuevo"
	case StatusAssigned:
		return "Asignado"
	case StatusUsed:
		return "Usado"
	case StatusRepaired:
		return "Reparado"
	case StatusNotRepaired:
		return "No reparado"
	case StatusLost:
		return "Perdido"
	case StatusDisposed:
		return "Desechado"
	case StatusScrapped:
		return "Chatarra"
	case StatusDonated:
		return "Donado"
	}
	return string(s)
}

// Device represents a tracked handset. The IMEI is the immutable business
// key; soft-deleted devices keep occupying the IMEI space.
type Device struct {
	ID                  uuid.UUID
	IMEI                string
	ModelID             *uuid.UUID
	DistributorID       *uuid.UUID
	IsBackup            bool
	BackupDistributorID *uuid.UUID
	OwnerName           *string
	Status              DeviceStatus
	Deleted             bool
	DeletedReason       *string
	DeletedAt           *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// IsRetired reports whether the device left the fleet. Retirement is gated by
// the soft-delete flag; disposal statuses are descriptive detail only.
func (d *Device) IsRetired() bool {
	return d.Deleted
}
