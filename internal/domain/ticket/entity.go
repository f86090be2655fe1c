package ticket

import (
	"time"

	"github.com/google/uuid"
)

// Category buckets the demand origin; hardware issues weigh heavier in the
// stock estimate.
type Category string

const (
	CategoryNewHire       Category = "new_hire"
	CategoryHardwareIssue Category = "hardware_issue"
	CategoryReplacement   Category = "replacement"
	CategoryOther         Category = "other"
)

// Ticket is one demand record imported from the external ticketing system.
type Ticket struct {
	ID            uuid.UUID
	ExternalRef   string
	DistributorID uuid.UUID
	Category      Category
	OpenedAt      time.Time
	CreatedAt     time.Time
}
