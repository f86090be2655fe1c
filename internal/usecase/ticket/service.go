package ticket

import (
	"context"

	domainTicket "fleet-device-manager/internal/domain/ticket"
	"fleet-device-manager/internal/logger"
	appErrors "fleet-device-manager/pkg/errors"
	"fleet-device-manager/pkg/utils"

	"go.uber.org/zap"
)

// Service implements demand ticket import
type Service struct {
	ticketRepo domainTicket.Repository
}

// NewService creates a new ticket service
func NewService(ticketRepo domainTicket.Repository) *Service {
	return &Service{ticketRepo: ticketRepo}
}

// Import persists a ticket batch. Already-imported external refs are skipped
// by the repository, so replays are harmless.
func (s *Service) Import(ctx context.Context, req *ImportTicketsRequest) (*ImportTicketsResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	tickets := make([]*domainTicket.Ticket, len(req.Tickets))
	for i, row := range req.Tickets {
		tickets[i] = &domainTicket.Ticket{
			ExternalRef:   row.ExternalRef,
			DistributorID: row.DistributorID,
			Category:      domainTicket.Category(row.Category),
			OpenedAt:      row.OpenedAt,
		}
	}

	if err := s.ticketRepo.BatchInsert(ctx, tickets); err != nil {
		return nil, err
	}

	logger.Info("Tickets imported",
		zap.Int("count", len(tickets)),
		zap.String("event", "tickets_imported"),
	)

	return &ImportTicketsResponse{Imported: len(tickets)}, nil
}
