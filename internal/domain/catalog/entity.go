package catalog

import (
	"time"

	"github.com/google/uuid"
)

// Model is handset master data. Display only; lifecycle logic never branches
// on it.
type Model struct {
	ID           uuid.UUID
	Manufacturer string
	Name         string
	CreatedAt    time.Time
}

// Distributor is the organization owning or receiving devices.
type Distributor struct {
	ID        uuid.UUID
	Name      string
	Region    string
	CreatedAt time.Time
}
