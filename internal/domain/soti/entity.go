package soti

import (
	"time"

	"github.com/google/uuid"
)

// PresenceRecord is one MDM enrollment snapshot keyed by IMEI. The feed may
// report several records for the same IMEI (device re-enrolled); the core
// never writes these rows, only the ingestion boundary does.
type PresenceRecord struct {
	ID           uuid.UUID
	IMEI         string
	DeviceName   *string
	AssignedUser *string
	IsActive     bool
	LastSyncAt   *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Overlay is the normalized per-IMEI view reconciliation produces. An IMEI
// with no record yields the zero Overlay (IsInSoti false).
type Overlay struct {
	IsInSoti     bool
	DeviceName   *string
	AssignedUser *string
	LastSync     *time.Time
}
