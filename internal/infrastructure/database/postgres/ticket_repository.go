package postgres

import (
	"context"
	"fmt"
	"time"

	domainTicket "fleet-device-manager/internal/domain/ticket"
	"fleet-device-manager/internal/infrastructure/database/postgres/models"

	"github.com/google/uuid"
	"gorm.io/gorm/clause"
)

// TicketRepository implements the demand ticket Repository interface
type TicketRepository struct {
	db *DB
}

// NewTicketRepository creates a new ticket repository
func NewTicketRepository(db *DB) domainTicket.Repository {
	return &TicketRepository{db: db}
}

// BatchInsert imports a ticket batch. Re-imported external refs are skipped
// so the feed can replay safely.
func (r *TicketRepository) BatchInsert(ctx context.Context, tickets []*domainTicket.Ticket) error {
	if len(tickets) == 0 {
		return nil
	}

	now := time.Now()
	dbModels := make([]models.TicketModel, len(tickets))
	for i, t := range tickets {
		id := t.ID
		if id == uuid.Nil {
			id = uuid.New()
		}
		dbModels[i] = models.TicketModel{
			ID:            id,
			ExternalRef:   t.ExternalRef,
			DistributorID: t.DistributorID,
			Category:      string(t.Category),
			OpenedAt:      t.OpenedAt,
			CreatedAt:     now,
		}
	}

	err := r.db.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "external_ref"}},
			DoNothing: true,
		}).
		CreateInBatches(dbModels, 500).Error
	if err != nil {
		return fmt.Errorf("failed to insert ticket batch: %w", err)
	}
	return nil
}

func (r *TicketRepository) VolumeByDistributor(ctx context.Context, from, to time.Time) ([]domainTicket.DistributorVolume, error) {
	var volumes []domainTicket.DistributorVolume
	err := r.db.DB.WithContext(ctx).Raw(`
        SELECT
            t.distributor_id,
            COALESCE(d.name, '') as distributor_name,
            COUNT(*) as total,
            COUNT(*) FILTER (WHERE t.category = 'hardware_issue') as hardware_issues
        FROM tickets t
        LEFT JOIN distributors d ON d.id = t.distributor_id
        WHERE t.opened_at >= ? AND t.opened_at < ?
        GROUP BY t.distributor_id, d.name
        ORDER BY total DESC
    `, from, to).Scan(&volumes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate ticket volume: %w", err)
	}
	return volumes, nil
}
