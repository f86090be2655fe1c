package ticket

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// DistributorVolume aggregates ticket counts for one distributor within a
// window.
type DistributorVolume struct {
	DistributorID   uuid.UUID
	DistributorName string
	Total           int
	HardwareIssues  int
}

// Repository defines the persistence contract for imported demand tickets.
type Repository interface {
	BatchInsert(ctx context.Context, tickets []*Ticket) error

	// VolumeByDistributor aggregates ticket counts per distributor for
	// opened_at in [from, to).
	VolumeByDistributor(ctx context.Context, from, to time.Time) ([]DistributorVolume, error)
}
