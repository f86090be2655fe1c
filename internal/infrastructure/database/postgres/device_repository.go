package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	domainDevice "fleet-device-manager/internal/domain/device"
	"fleet-device-manager/internal/infrastructure/database/postgres/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DeviceRepository implements the device registry Repository interface
type DeviceRepository struct {
	db *DB
}

// NewDeviceRepository creates a new device repository
func NewDeviceRepository(db *DB) domainDevice.Repository {
	return &DeviceRepository{db: db}
}

func (r *DeviceRepository) Create(ctx context.Context, d *domainDevice.Device) error {
	d.ID = uuid.New()
	d.CreatedAt = time.Now()
	d.UpdatedAt = time.Now()
	if d.Status == "" {
		d.Status = domainDevice.StatusNew
	}

	dbModel := toDeviceModel(d)
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		if strings.Contains(err.Error(), "duplicate key value") {
			return domainDevice.ErrDuplicateIMEI
		}
		return fmt.Errorf("failed to create device: %w", err)
	}

	d.ID = dbModel.ID
	d.CreatedAt = dbModel.CreatedAt
	d.UpdatedAt = dbModel.UpdatedAt
	return nil
}

func (r *DeviceRepository) GetByID(ctx context.Context, deviceID uuid.UUID) (*domainDevice.Device, error) {
	var dbModel models.DeviceModel
	err := r.db.DB.WithContext(ctx).
		Where("id = ?", deviceID).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainDevice.ErrDeviceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get device: %w", err)
	}
	return toDeviceEntity(&dbModel), nil
}

func (r *DeviceRepository) GetByIMEI(ctx context.Context, imei string) (*domainDevice.Device, error) {
	var dbModel models.DeviceModel
	err := r.db.DB.WithContext(ctx).
		Where("imei = ?", imei).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainDevice.ErrDeviceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get device: %w", err)
	}
	return toDeviceEntity(&dbModel), nil
}

func (r *DeviceRepository) Update(ctx context.Context, d *domainDevice.Device) error {
	d.UpdatedAt = time.Now()

	result := r.db.DB.WithContext(ctx).
		Model(&models.DeviceModel{}).
		Where("id = ? AND deleted = false", d.ID).
		Updates(map[string]interface{}{
			"model_id":              d.ModelID,
			"distributor_id":        d.DistributorID,
			"is_backup":             d.IsBackup,
			"backup_distributor_id": d.BackupDistributorID,
			"owner_name":            d.OwnerName,
			"updated_at":            d.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update device: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainDevice.ErrDeviceNotFound
	}
	return nil
}

func (r *DeviceRepository) UpdateStatus(ctx context.Context, deviceID uuid.UUID, status domainDevice.DeviceStatus) error {
	result := r.db.DB.WithContext(ctx).
		Model(&models.DeviceModel{}).
		Where("id = ?", deviceID).
		Updates(map[string]interface{}{
			"status":     string(status),
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainDevice.ErrDeviceNotFound
	}
	return nil
}

// SoftDelete flags the device out of the fleet. The active-assignment check
// and the flag update run in one transaction holding the device row lock, so
// retirement cannot race an open.
func (r *DeviceRepository) SoftDelete(ctx context.Context, deviceID uuid.UUID, finalStatus domainDevice.DeviceStatus, reason string) error {
	return r.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var dev models.DeviceModel
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", deviceID).
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
			Where("device_id = ? AND status = 'active'", deviceID).
			Count(&activeCount).Error; err != nil {
			return fmt.Errorf("failed to check active assignments: %w", err)
		}
		if activeCount > 0 {
			return domainDevice.ErrHasActiveAssignment
		}

		now := time.Now()
		return tx.Model(&models.DeviceModel{}).
			Where("id = ?", deviceID).
			Updates(map[string]interface{}{
				"status":         string(finalStatus),
				"deleted":        true,
				"deleted_reason": reason,
				"deleted_at":     now,
				"updated_at":     now,
			}).Error
	})
}

func (r *DeviceRepository) List(ctx context.Context, filter *domainDevice.Filter) ([]*domainDevice.Device, int64, error) {
	var dbModels []models.DeviceModel
	var total int64

	db := r.db.DB.WithContext(ctx).Model(&models.DeviceModel{})

	if filter.Status != nil {
		db = db.Where("status = ?", string(*filter.Status))
	}
	if filter.DistributorID != nil {
		db = db.Where("distributor_id = ?", *filter.DistributorID)
	}
	if filter.IsBackup != nil {
		db = db.Where("is_backup = ?", *filter.IsBackup)
	}
	if !filter.IncludeDeleted {
		db = db.Where("deleted = false")
	}
	if filter.Search != "" {
		search := "%" + filter.Search + "%"
		db = db.Where("imei ILIKE ? OR owner_name ILIKE ?", search, search)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count devices: %w", err)
	}

	sortBy := "created_at"
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
		return nil, 0, fmt.Errorf("failed to list devices: %w", err)
	}

	devices := make([]*domainDevice.Device, len(dbModels))
	for i := range dbModels {
		devices[i] = toDeviceEntity(&dbModels[i])
	}
	return devices, total, nil
}

func (r *DeviceRepository) GetStatistics(ctx context.Context) (*domainDevice.Statistics, error) {
	stats := &domainDevice.Statistics{}
	err := r.db.DB.WithContext(ctx).Raw(`
        SELECT
            COUNT(*) as total_devices,
            COUNT(*) FILTER (WHERE status = 'new' AND deleted = false) as new_devices,
            COUNT(*) FILTER (WHERE status = 'assigned' AND deleted = false) as assigned_devices,
            COUNT(*) FILTER (WHERE status = 'used' AND deleted = false) as used_devices,
            COUNT(*) FILTER (WHERE status = 'lost') as lost_devices,
            COUNT(*) FILTER (WHERE deleted = true) as retired_devices,
            COUNT(*) FILTER (WHERE is_backup = true AND deleted = false) as backup_devices
        FROM devices
    `).Scan(stats).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get statistics: %w", err)
	}

	var byDistributor []domainDevice.DistributorStats
	err = r.db.DB.WithContext(ctx).Raw(`
        SELECT
            dist.id::text as distributor_id, dist.name as distributor_name, COUNT(d.id) as device_count
        FROM distributors dist
        LEFT JOIN devices d ON dist.id = d.distributor_id AND d.deleted = false
        GROUP BY dist.id, dist.name
        HAVING COUNT(d.id) > 0
        ORDER BY device_count DESC
    `).Scan(&byDistributor).Error

	if err == nil {
		stats.ByDistributor = byDistributor
	}
	return stats, nil
}

// Helper functions to convert between domain entities and database models

func toDeviceModel(d *domainDevice.Device) *models.DeviceModel {
	return &models.DeviceModel{
		ID:                  d.ID,
		IMEI:                d.IMEI,
		ModelID:             d.ModelID,
		DistributorID:       d.DistributorID,
		IsBackup:            d.IsBackup,
		BackupDistributorID: d.BackupDistributorID,
		OwnerName:           d.OwnerName,
		Status:              string(d.Status),
		Deleted:             d.Deleted,
		DeletedReason:       d.DeletedReason,
		DeletedAt:           d.DeletedAt,
		CreatedAt:           d.CreatedAt,
		UpdatedAt:           d.UpdatedAt,
	}
}

func toDeviceEntity(m *models.DeviceModel) *domainDevice.Device {
	return &domainDevice.Device{
		ID:                  m.ID,
		IMEI:                m.IMEI,
		ModelID:             m.ModelID,
		DistributorID:       m.DistributorID,
		IsBackup:            m.IsBackup,
		BackupDistributorID: m.BackupDistributorID,
		OwnerName:           m.OwnerName,
		Status:              domainDevice.DeviceStatus(m.Status),
		Deleted:             m.Deleted,
		DeletedReason:       m.DeletedReason,
		DeletedAt:           m.DeletedAt,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
}
