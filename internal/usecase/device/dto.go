package device

import (
	"time"

	domainDevice "fleet-device-manager/internal/domain/device"
	domainSoti "fleet-device-manager/internal/domain/soti"

	"github.com/google/uuid"
)

type RegisterDeviceRequest struct {
	IMEI                string     `json:"imei" validate:"required,imei"`
	ModelID             *uuid.UUID `json:"model_id"`
	DistributorID       *uuid.UUID `json:"distributor_id"`
	IsBackup            bool       `json:"is_backup"`
	BackupDistributorID *uuid.UUID `json:"backup_distributor_id"`
	OwnerName           *string    `json:"owner_name" validate:"omitempty,max=150"`
}

type UpdateDeviceRequest struct {
	ModelID             *uuid.UUID `json:"model_id"`
	DistributorID       *uuid.UUID `json:"distributor_id"`
	IsBackup            *bool      `json:"is_backup"`
	BackupDistributorID *uuid.UUID `json:"backup_distributor_id"`
	OwnerName           *string    `json:"owner_name" validate:"omitempty,max=150"`
}

type RetireDeviceRequest struct {
	FinalStatus string `json:"final_status" validate:"required,oneof=disposed scrapped donated lost"`
	Reason      string `json:"reason" validate:"required,max=500"`
}

// ImportDeviceSpec is one registry row from a bulk import, with the status
// already normalized to a canonical code by the caller.
type ImportDeviceSpec struct {
	IMEI          string
	Status        domainDevice.DeviceStatus
	ModelID       *uuid.UUID
	DistributorID *uuid.UUID
	IsBackup      bool
	OwnerName     *string
}

type ImportDevicesResponse struct {
	Imported int      `json:"imported"`
	Skipped  []string `json:"skipped"`
}

type DeviceFilterRequest struct {
	Status         *string    `form:"status"`
	DistributorID  *uuid.UUID `form:"distributor_id"`
	IsBackup       *bool      `form:"is_backup"`
	IncludeDeleted bool       `form:"include_deleted"`
	Search         string     `form:"search"`
	Page           int        `form:"page" validate:"omitempty,min=1"`
	PageSize       int        `form:"page_size" validate:"omitempty,min=1,max=100"`
	SortBy         string     `form:"sort_by" validate:"omitempty,oneof=imei status created_at updated_at"`
	SortOrder      string     `form:"sort_order" validate:"omitempty,oneof=asc desc"`
}

type DeviceResponse struct {
	ID                  uuid.UUID  `json:"id"`
	IMEI                string     `json:"imei"`
	ModelID             *uuid.UUID `json:"model_id"`
	DistributorID       *uuid.UUID `json:"distributor_id"`
	IsBackup            bool       `json:"is_backup"`
	BackupDistributorID *uuid.UUID `json:"backup_distributor_id"`
	OwnerName           *string    `json:"owner_name"`
	Status              string     `json:"status"`
	StatusLabel         string     `json:"status_label"`
	Deleted             bool       `json:"deleted"`
	DeletedReason       *string    `json:"deleted_reason,omitempty"`
	DeletedAt           *time.Time `json:"deleted_at,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// SotiOverlayResponse carries the MDM presence fields merged onto a device
// row.
type SotiOverlayResponse struct {
	IsInSoti     bool       `json:"is_in_soti"`
	DeviceName   *string    `json:"device_name,omitempty"`
	AssignedUser *string    `json:"assigned_user,omitempty"`
	LastSync     *time.Time `json:"last_sync,omitempty"`
}

// DeviceStateResponse is the full read model: registry row, derived state
// label and the MDM overlay.
type DeviceStateResponse struct {
	DeviceResponse
	State              string              `json:"state"`
	Soti               SotiOverlayResponse `json:"soti"`
	ActiveAssignmentID *uuid.UUID          `json:"active_assignment_id"`
}

type DeviceListResponse struct {
	Devices    []DeviceResponse `json:"devices"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	TotalPages int              `json:"total_pages"`
}

type DeviceStateListResponse struct {
	Devices    []DeviceStateResponse `json:"devices"`
	Total      int64                 `json:"total"`
	Page       int                   `json:"page"`
	PageSize   int                   `json:"page_size"`
	TotalPages int                   `json:"total_pages"`
}

type StatisticsResponse struct {
	TotalDevices    int                        `json:"total_devices"`
	NewDevices      int                        `json:"new_devices"`
	AssignedDevices int                        `json:"assigned_devices"`
	UsedDevices     int                        `json:"used_devices"`
	LostDevices     int                        `json:"lost_devices"`
	RetiredDevices  int                        `json:"retired_devices"`
	BackupDevices   int                        `json:"backup_devices"`
	ByDistributor   []DistributorStatsResponse `json:"by_distributor"`
}

type DistributorStatsResponse struct {
	DistributorID   string `json:"distributor_id"`
	DistributorName string `json:"distributor_name"`
	DeviceCount     int    `json:"device_count"`
}

func ToDeviceResponse(d *domainDevice.Device) *DeviceResponse {
	if d == nil {
		return nil
	}
	return &DeviceResponse{
		ID:                  d.ID,
		IMEI:                d.IMEI,
		ModelID:             d.ModelID,
		DistributorID:       d.DistributorID,
		IsBackup:            d.IsBackup,
		BackupDistributorID: d.BackupDistributorID,
		OwnerName:           d.OwnerName,
		Status:              string(d.Status),
		StatusLabel:         d.Status.Label(),
		Deleted:             d.Deleted,
		DeletedReason:       d.DeletedReason,
		DeletedAt:           d.DeletedAt,
		CreatedAt:           d.CreatedAt,
		UpdatedAt:           d.UpdatedAt,
	}
}

func toOverlayResponse(o domainSoti.Overlay) SotiOverlayResponse {
	return SotiOverlayResponse{
		IsInSoti:     o.IsInSoti,
		DeviceName:   o.DeviceName,
		AssignedUser: o.AssignedUser,
		LastSync:     o.LastSync,
	}
}

func ToDomainFilter(req *DeviceFilterRequest) *domainDevice.Filter {
	if req == nil {
		return &domainDevice.Filter{}
	}
	filter := &domainDevice.Filter{
		DistributorID:  req.DistributorID,
		IsBackup:       req.IsBackup,
		IncludeDeleted: req.IncludeDeleted,
		Search:         req.Search,
		Page:           req.Page,
		PageSize:       req.PageSize,
		SortBy:         req.SortBy,
		SortOrder:      req.SortOrder,
	}
	if req.Status != nil {
		status := domainDevice.DeviceStatus(*req.Status)
		filter.Status = &status
	}
	return filter
}

func ToStatisticsResponse(stats *domainDevice.Statistics) *StatisticsResponse {
	if stats == nil {
		return nil
	}
	byDistributor := make([]DistributorStatsResponse, len(stats.ByDistributor))
	for i, d := range stats.ByDistributor {
		byDistributor[i] = DistributorStatsResponse{
			DistributorID:   d.DistributorID,
			DistributorName: d.DistributorName,
			DeviceCount:     d.DeviceCount,
		}
	}
	return &StatisticsResponse{
		TotalDevices:    stats.TotalDevices,
		NewDevices:      stats.NewDevices,
		AssignedDevices: stats.AssignedDevices,
		UsedDevices:     stats.UsedDevices,
		LostDevices:     stats.LostDevices,
		RetiredDevices:  stats.RetiredDevices,
		BackupDevices:   stats.BackupDevices,
		ByDistributor:   byDistributor,
	}
}
