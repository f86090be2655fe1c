package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	domainDevice "fleet-device-manager/internal/domain/device"
	domainShipment "fleet-device-manager/internal/domain/shipment"
	"fleet-device-manager/internal/infrastructure/database/postgres/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ShipmentRepository implements the shipment tracker Repository interface
type ShipmentRepository struct {
	db *DB
}

// NewShipmentRepository creates a new shipment repository
func NewShipmentRepository(db *DB) domainShipment.Repository {
	return &ShipmentRepository{db: db}
}

func (r *ShipmentRepository) Create(ctx context.Context, s *domainShipment.Shipment) error {
	s.ID = uuid.New()
	now := time.Now()
	s.CreatedAt = now
	s.UpdatedAt = now
	if s.Status == "" {
		s.Status = domainShipment.StatusPending
	}

	dbModel := toShipmentModel(s)
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		// Unique index on (assignment_id, leg).
		if strings.Contains(err.Error(), "duplicate key value") {
			return domainShipment.ErrLegAlreadyExists
		}
		return fmt.Errorf("failed to create shipment: %w", err)
	}

	s.ID = dbModel.ID
	return nil
}

func (r *ShipmentRepository) GetByID(ctx context.Context, shipmentID uuid.UUID) (*domainShipment.Shipment, error) {
	var dbModel models.ShipmentModel
	err := r.db.DB.WithContext(ctx).
		Where("id = ?", shipmentID).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainShipment.ErrShipmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get shipment: %w", err)
	}
	return toShipmentEntity(&dbModel), nil
}

func (r *ShipmentRepository) GetByAssignmentAndLeg(ctx context.Context, assignmentID uuid.UUID, leg domainShipment.Leg) (*domainShipment.Shipment, error) {
	var dbModel models.ShipmentModel
	err := r.db.DB.WithContext(ctx).
		Where("assignment_id = ? AND leg = ?", assignmentID, string(leg)).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get shipment leg: %w", err)
	}
	return toShipmentEntity(&dbModel), nil
}

func (r *ShipmentRepository) ListByAssignmentID(ctx context.Context, assignmentID uuid.UUID) ([]*domainShipment.Shipment, error) {
	var dbModels []models.ShipmentModel
	err := r.db.DB.WithContext(ctx).
		Where("assignment_id = ?", assignmentID).
		Order("leg ASC").
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list shipments: %w", err)
	}

	shipments := make([]*domainShipment.Shipment, len(dbModels))
	for i := range dbModels {
		shipments[i] = toShipmentEntity(&dbModels[i])
	}
	return shipments, nil
}

// Advance moves the leg forward with a conditional update. The WHERE guard
// on the current status makes concurrent advances serialize: exactly one
// writer matches the row, the other fails with ErrInvalidTransition.
func (r *ShipmentRepository) Advance(ctx context.Context, shipmentID uuid.UUID, from, to domainShipment.ShipmentStatus, at time.Time) error {
	updates := map[string]interface{}{
		"status":     string(to),
		"updated_at": time.Now(),
	}
	switch to {
	case domainShipment.StatusShipped:
		updates["shipped_at"] = at
	case domainShipment.StatusDelivered:
		updates["delivered_at"] = at
	}

	result := r.db.DB.WithContext(ctx).
		Model(&models.ShipmentModel{}).
		Where("id = ? AND status = ?", shipmentID, string(from)).
		Updates(updates)

	if result.Error != nil {
		return fmt.Errorf("failed to advance shipment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.DB.WithContext(ctx).
			Model(&models.ShipmentModel{}).
			Where("id = ?", shipmentID).
			Count(&count).Error; err == nil && count == 0 {
			return domainShipment.ErrShipmentNotFound
		}
		return domainShipment.ErrInvalidTransition
	}
	return nil
}

// ConfirmReturn delivers the return leg and settles the returned device in
// one transaction. The returned device row is locked so the status write
// cannot race a concurrent open on the old handset.
func (r *ShipmentRepository) ConfirmReturn(ctx context.Context, shipmentID uuid.UUID, returnIMEI string, finalStatus domainDevice.DeviceStatus, notes *string, at time.Time) error {
	return r.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var leg models.ShipmentModel
		err := tx.Where("id = ?", shipmentID).First(&leg).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domainShipment.ErrShipmentNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to get shipment: %w", err)
		}
		if leg.Leg != string(domainShipment.LegReturn) {
			return domainShipment.ErrNotReturnLeg
		}

		var outboundCount int64
		if err := tx.Model(&models.ShipmentModel{}).
			Where("assignment_id = ? AND leg = 'outbound' AND status != 'delivered'", leg.AssignmentID).
			Count(&outboundCount).Error; err != nil {
			return fmt.Errorf("failed to check outbound leg: %w", err)
		}
		if outboundCount > 0 {
			return domainShipment.ErrOutboundNotDelivered
		}

		updates := map[string]interface{}{
			"status":       string(domainShipment.StatusDelivered),
			"delivered_at": at,
			"updated_at":   time.Now(),
		}
		if notes != nil {
			updates["notes"] = *notes
		}

		result := tx.Model(&models.ShipmentModel{}).
			Where("id = ? AND status = 'shipped'", shipmentID).
			Updates(updates)
		if result.Error != nil {
			return fmt.Errorf("failed to confirm return: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return domainShipment.ErrInvalidTransition
		}

		var dev models.DeviceModel
		err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("imei = ?", returnIMEI).
			First(&dev).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domainDevice.ErrDeviceNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to lock returned device: %w", err)
		}

		return tx.Model(&models.DeviceModel{}).
			Where("id = ?", dev.ID).
			Updates(map[string]interface{}{
				"status":     string(finalStatus),
				"updated_at": time.Now(),
			}).Error
	})
}

// Helper functions to convert between domain entities and database models

func toShipmentModel(s *domainShipment.Shipment) *models.ShipmentModel {
	return &models.ShipmentModel{
		ID:           s.ID,
		AssignmentID: s.AssignmentID,
		Leg:          string(s.Leg),
		VoucherID:    s.VoucherID,
		Status:       string(s.Status),
		ShippedAt:    s.ShippedAt,
		DeliveredAt:  s.DeliveredAt,
		Notes:        s.Notes,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

func toShipmentEntity(m *models.ShipmentModel) *domainShipment.Shipment {
	return &domainShipment.Shipment{
		ID:           m.ID,
		AssignmentID: m.AssignmentID,
		Leg:          domainShipment.Leg(m.Leg),
		VoucherID:    m.VoucherID,
		Status:       domainShipment.ShipmentStatus(m.Status),
		ShippedAt:    m.ShippedAt,
		DeliveredAt:  m.DeliveredAt,
		Notes:        m.Notes,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
