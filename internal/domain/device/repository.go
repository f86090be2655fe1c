package device

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the persistence contract for the device registry.
// SoftDelete is atomic: the active-assignment check and the flag update run
// in one transaction holding the device row lock.
type Repository interface {
	Create(ctx context.Context, device *Device) error
	GetByID(ctx context.Context, deviceID uuid.UUID) (*Device, error)
	GetByIMEI(ctx context.Context, imei string) (*Device, error)
	Update(ctx context.Context, device *Device) error
	UpdateStatus(ctx context.Context, deviceID uuid.UUID, status DeviceStatus) error
	SoftDelete(ctx context.Context, deviceID uuid.UUID, finalStatus DeviceStatus, reason string) error
	List(ctx context.Context, filter *Filter) ([]*Device, int64, error)
	GetStatistics(ctx context.Context) (*Statistics, error)
}

// Filter represents filtering options for listing devices. Soft-deleted
// devices are excluded unless IncludeDeleted is set.
type Filter struct {
	Status         *DeviceStatus
	DistributorID  *uuid.UUID
	IsBackup       *bool
	IncludeDeleted bool
	Search         string
	Page           int
	PageSize       int
	SortBy         string
	SortOrder      string
}

// Statistics represents fleet-level device counts.
type Statistics struct {
	TotalDevices    int
	NewDevices      int
	AssignedDevices int
	UsedDevices     int
	LostDevices     int
	RetiredDevices  int
	BackupDevices   int
	ByDistributor   []DistributorStats
}

// DistributorStats represents device counts by owning distributor.
type DistributorStats struct {
	DistributorID   string
	DistributorName string
	DeviceCount     int
}
