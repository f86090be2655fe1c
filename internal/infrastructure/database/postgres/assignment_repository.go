package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	domainAssignment "fleet-device-manager/internal/domain/assignment"
	domainDevice "fleet-device-manager/internal/domain/device"
	"fleet-device-manager/internal/infrastructure/database/postgres/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AssignmentRepository implements the assignment ledger Repository interface
type AssignmentRepository struct {
	db *DB
}

// NewAssignmentRepository creates a new assignment repository
func NewAssignmentRepository(db *DB) domainAssignment.Repository {
	return &AssignmentRepository{db: db}
}

// Open inserts the custody record and flips the device to assigned in one
// transaction. The device row lock serializes concurrent opens: the loser of
// the race sees the winner's active row and fails with
// ErrDeviceAlreadyAssigned.
func (r *AssignmentRepository) Open(ctx context.Context, a *domainAssignment.Assignment) error {
	a.ID = uuid.New()
	now := time.Now()
	a.CreatedAt = now
	a.UpdatedAt = now
	if a.AssignedAt.IsZero() {
		a.AssignedAt = now
	}
	a.Status = domainAssignment.StatusActive

	return r.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var dev models.DeviceModel
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", a.DeviceID).
			First(&dev).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domainDevice.ErrDeviceNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to lock device: %w", err)
		}
		if dev.Deleted {
			return domainDevice.ErrDeviceRetired
		}

		var activeCount int64
		if err := tx.Model(&models.AssignmentModel{}).
			Where("device_id = ? AND status = 'active'", a.DeviceID).
			Count(&activeCount).Error; err != nil {
			return fmt.Errorf("failed to check active assignments: %w", err)
		}
		if activeCount > 0 {
			return domainAssignment.ErrDeviceAlreadyAssigned
		}

		dbModel := toAssignmentModel(a)
		if err := tx.Create(dbModel).Error; err != nil {
			// The partial unique index backstops the count check.
			if strings.Contains(err.Error(), "duplicate key value") {
				return domainAssignment.ErrDeviceAlreadyAssigned
			}
			return fmt.Errorf("failed to create assignment: %w", err)
		}

		return tx.Model(&models.DeviceModel{}).
			Where("id = ?", a.DeviceID).
			Updates(map[string]interface{}{
				"status":     string(domainDevice.StatusAssigned),
				"updated_at": now,
			}).Error
	})
}

// Close stamps the closure and sets the device to resultingStatus in one
// transaction. The status guard makes a double close fail with ErrNotActive.
func (r *AssignmentRepository) Close(ctx context.Context, assignmentID uuid.UUID, resultingStatus domainDevice.DeviceStatus, reason *string) (time.Time, error) {
	closedAt := time.Now()

	err := r.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var a models.AssignmentModel
		err := tx.Where("id = ?", assignmentID).First(&a).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domainAssignment.ErrAssignmentNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to get assignment: %w", err)
		}

		var dev models.DeviceModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", a.DeviceID).
			First(&dev).Error; err != nil {
			return fmt.Errorf("failed to lock device: %w", err)
		}

		result := tx.Model(&models.AssignmentModel{}).
			Where("id = ? AND status = 'active'", assignmentID).
			Updates(map[string]interface{}{
				"status":           string(domainAssignment.StatusClosed),
				"closed_at":        closedAt,
				"close_reason":     reason,
				"resulting_status": string(resultingStatus),
				"updated_at":       closedAt,
			})
		if result.Error != nil {
			return fmt.Errorf("failed to close assignment: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return domainAssignment.ErrNotActive
		}

		return tx.Model(&models.DeviceModel{}).
			Where("id = ?", a.DeviceID).
			Updates(map[string]interface{}{
				"status":     string(resultingStatus),
				"updated_at": closedAt,
			}).Error
	})
	if err != nil {
		return time.Time{}, err
	}
	return closedAt, nil
}

func (r *AssignmentRepository) GetByID(ctx context.Context, assignmentID uuid.UUID) (*domainAssignment.Assignment, error) {
	var dbModel models.AssignmentModel
	err := r.db.DB.WithContext(ctx).
		Where("id = ?", assignmentID).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainAssignment.ErrAssignmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get assignment: %w", err)
	}
	return toAssignmentEntity(&dbModel), nil
}

func (r *AssignmentRepository) GetActiveByDeviceID(ctx context.Context, deviceID uuid.UUID) (*domainAssignment.Assignment, error) {
	var dbModel models.AssignmentModel
	err := r.db.DB.WithContext(ctx).
		Where("device_id = ? AND status = 'active'", deviceID).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get active assignment: %w", err)
	}
	return toAssignmentEntity(&dbModel), nil
}

func (r *AssignmentRepository) GetLastByDeviceID(ctx context.Context, deviceID uuid.UUID) (*domainAssignment.Assignment, error) {
	var dbModel models.AssignmentModel
	err := r.db.DB.WithContext(ctx).
		Where("device_id = ?", deviceID).
		Order("assigned_at DESC").
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get last assignment: %w", err)
	}
	return toAssignmentEntity(&dbModel), nil
}

func (r *AssignmentRepository) ListByDeviceID(ctx context.Context, deviceID uuid.UUID) ([]*domainAssignment.Assignment, error) {
	var dbModels []models.AssignmentModel
	err := r.db.DB.WithContext(ctx).
		Where("device_id = ?", deviceID).
		Order("assigned_at DESC").
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}

	assignments := make([]*domainAssignment.Assignment, len(dbModels))
	for i := range dbModels {
		assignments[i] = toAssignmentEntity(&dbModels[i])
	}
	return assignments, nil
}

func (r *AssignmentRepository) List(ctx context.Context, filter *domainAssignment.Filter) ([]*domainAssignment.Assignment, int64, error) {
	var dbModels []models.AssignmentModel
	var total int64

	db := r.db.DB.WithContext(ctx).Model(&models.AssignmentModel{})

	if filter.DeviceID != nil {
		db = db.Where("device_id = ?", *filter.DeviceID)
	}
	if filter.Status != nil {
		db = db.Where("status = ?", string(*filter.Status))
	}
	if filter.Type != nil {
		db = db.Where("type = ?", string(*filter.Type))
	}
	if filter.DistributorID != nil {
		db = db.Where("distributor_id = ?", *filter.DistributorID)
	}
	if filter.TicketRef != nil {
		db = db.Where("ticket_ref = ?", *filter.TicketRef)
	}
	if filter.OpenedAfter != nil {
		db = db.Where("assigned_at >= ?", *filter.OpenedAfter)
	}
	if filter.OpenedBefore != nil {
		db = db.Where("assigned_at < ?", *filter.OpenedBefore)
	}
	if filter.Search != "" {
		search := "%" + filter.Search + "%"
		db = db.Where("assignee_name ILIKE ? OR delivery_location ILIKE ?", search, search)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count assignments: %w", err)
	}

	sortBy := "assigned_at"
	if filter.SortBy != "" {
		sortBy = filter.SortBy
	}
	sortOrder := "DESC"
	if strings.ToLower(filter.SortOrder) == "asc" {
		sortOrder = "ASC"
	}

	page := filter.Page
	if page <= 0 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	err := db.Order(fmt.Sprintf("%s %s", sortBy, sortOrder)).
		Limit(pageSize).
		Offset(offset).
		Find(&dbModels).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list assignments: %w", err)
	}

	assignments := make([]*domainAssignment.Assignment, len(dbModels))
	for i := range dbModels {
		assignments[i] = toAssignmentEntity(&dbModels[i])
	}
	return assignments, total, nil
}

// Helper functions to convert between domain entities and database models

func toAssignmentModel(a *domainAssignment.Assignment) *models.AssignmentModel {
	var reason *string
	if a.ReplacementReason != nil {
		r := string(*a.ReplacementReason)
		reason = &r
	}
	var resulting *string
	if a.ResultingStatus != nil {
		s := string(*a.ResultingStatus)
		resulting = &s
	}
	return &models.AssignmentModel{
		ID:                 a.ID,
		DeviceID:           a.DeviceID,
		Type:               string(a.Type),
		Status:             string(a.Status),
		AssigneeName:       a.Assignee.Name,
		AssigneePhone:      a.Assignee.Phone,
		AssigneeEmail:      a.Assignee.Email,
		AssigneeRole:       a.Assignee.Role,
		DistributorID:      a.Assignee.DistributorID,
		DeliveryLocation:   a.Assignee.DeliveryLocation,
		TicketRef:          a.TicketRef,
		ReplacementReason:  reason,
		ExpectsReturn:      a.ExpectsReturn,
		ExpectedReturnIMEI: a.ExpectedReturnIMEI,
		AssignedAt:         a.AssignedAt,
		ClosedAt:           a.ClosedAt,
		CloseReason:        a.CloseReason,
		ResultingStatus:    resulting,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}
}

func toAssignmentEntity(m *models.AssignmentModel) *domainAssignment.Assignment {
	var reason *domainAssignment.ReplacementReason
	if m.ReplacementReason != nil {
		r := domainAssignment.ReplacementReason(*m.ReplacementReason)
		reason = &r
	}
	var resulting *domainDevice.DeviceStatus
	if m.ResultingStatus != nil {
		s := domainDevice.DeviceStatus(*m.ResultingStatus)
		resulting = &s
	}
	return &domainAssignment.Assignment{
		ID:       m.ID,
		DeviceID: m.DeviceID,
		Type:     domainAssignment.AssignmentType(m.Type),
		Status:   domainAssignment.AssignmentStatus(m.Status),
		Assignee: domainAssignment.Assignee{
			Name:             m.AssigneeName,
			Phone:            m.AssigneePhone,
			Email:            m.AssigneeEmail,
			Role:             m.AssigneeRole,
			DistributorID:    m.DistributorID,
			DeliveryLocation: m.DeliveryLocation,
		},
		TicketRef:          m.TicketRef,
		ReplacementReason:  reason,
		ExpectsReturn:      m.ExpectsReturn,
		ExpectedReturnIMEI: m.ExpectedReturnIMEI,
		AssignedAt:         m.AssignedAt,
		ClosedAt:           m.ClosedAt,
		CloseReason:        m.CloseReason,
		ResultingStatus:    resulting,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}
