package postgres

import (
	"context"
	"fmt"
	"time"

	domainSoti "fleet-device-manager/internal/domain/soti"
	"fleet-device-manager/internal/infrastructure/database/postgres/models"

	"gorm.io/gorm/clause"
)

// SotiRepository implements the presence record Repository interface
type SotiRepository struct {
	db *DB
}

// NewSotiRepository creates a new SOTI presence repository
func NewSotiRepository(db *DB) domainSoti.Repository {
	return &SotiRepository{db: db}
}

func (r *SotiRepository) GetByIMEIs(ctx context.Context, imeis []string) ([]*domainSoti.PresenceRecord, error) {
	if len(imeis) == 0 {
		return nil, nil
	}

	var dbModels []models.SotiPresenceModel
	err := r.db.DB.WithContext(ctx).
		Where("imei IN ?", imeis).
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get presence records: %w", err)
	}

	records := make([]*domainSoti.PresenceRecord, len(dbModels))
	for i := range dbModels {
		records[i] = toPresenceEntity(&dbModels[i])
	}
	return records, nil
}

// BatchUpsert writes a feed batch. Conflicts on (imei, device_name) refresh
// the existing enrollment row instead of duplicating it.
func (r *SotiRepository) BatchUpsert(ctx context.Context, records []*domainSoti.PresenceRecord) error {
	if len(records) == 0 {
		return nil
	}

	now := time.Now()
	dbModels := make([]models.SotiPresenceModel, len(records))
	for i, rec := range records {
		updatedAt := rec.UpdatedAt
		if updatedAt.IsZero() {
			updatedAt = now
		}
		dbModels[i] = models.SotiPresenceModel{
			ID:           rec.ID,
			IMEI:         rec.IMEI,
			DeviceName:   rec.DeviceName,
			AssignedUser: rec.AssignedUser,
			IsActive:     rec.IsActive,
			LastSyncAt:   rec.LastSyncAt,
			CreatedAt:    now,
			UpdatedAt:    updatedAt,
		}
	}

	err := r.db.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "imei"}, {Name: "device_name"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"assigned_user", "is_active", "last_sync_at", "updated_at",
			}),
		}).
		CreateInBatches(dbModels, 500).Error
	if err != nil {
		return fmt.Errorf("failed to upsert presence batch: %w", err)
	}
	return nil
}

func toPresenceEntity(m *models.SotiPresenceModel) *domainSoti.PresenceRecord {
	return &domainSoti.PresenceRecord{
		ID:           m.ID,
		IMEI:         m.IMEI,
		DeviceName:   m.DeviceName,
		AssignedUser: m.AssignedUser,
		IsActive:     m.IsActive,
		LastSyncAt:   m.LastSyncAt,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
