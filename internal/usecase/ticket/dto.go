package ticket

import (
	"time"

	"github.com/google/uuid"
)

// ImportTicketsRequest is one batch from the external ticketing system.
type ImportTicketsRequest struct {
	Tickets []ImportTicketRow `json:"tickets" validate:"required,min=1,max=1000,dive"`
}

type ImportTicketRow struct {
	ExternalRef   string    `json:"external_ref" validate:"required,max=50"`
	DistributorID uuid.UUID `json:"distributor_id" validate:"required"`
	Category      string    `json:"category" validate:"required,oneof=new_hire hardware_issue replacement other"`
	OpenedAt      time.Time `json:"opened_at" validate:"required"`
}

type ImportTicketsResponse struct {
	Imported int `json:"imported"`
}
