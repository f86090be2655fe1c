package device

import (
	"context"
	"errors"
	"fmt"
	"time"

	domainAssignment "fleet-device-manager/internal/domain/assignment"
	domainCatalog "fleet-device-manager/internal/domain/catalog"
	domainDevice "fleet-device-manager/internal/domain/device"
	domainShipment "fleet-device-manager/internal/domain/shipment"
	domainSoti "fleet-device-manager/internal/domain/soti"
	"fleet-device-manager/internal/logger"
	"fleet-device-manager/internal/usecase/projection"
	"fleet-device-manager/internal/usecase/reconcile"
	appErrors "fleet-device-manager/pkg/errors"
	"fleet-device-manager/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service implements device registry use cases, including the derived state
// read model.
type Service struct {
	deviceRepo     domainDevice.Repository
	assignmentRepo domainAssignment.Repository
	shipmentRepo   domainShipment.Repository
	sotiReader     domainSoti.Reader
	catalogRepo    domainCatalog.Repository
}

// NewService creates a new device service
func NewService(
	deviceRepo domainDevice.Repository,
	assignmentRepo domainAssignment.Repository,
	shipmentRepo domainShipment.Repository,
	sotiReader domainSoti.Reader,
	catalogRepo domainCatalog.Repository,
) *Service {
	return &Service{
		deviceRepo:     deviceRepo,
		assignmentRepo: assignmentRepo,
		shipmentRepo:   shipmentRepo,
		sotiReader:     sotiReader,
		catalogRepo:    catalogRepo,
	}
}

// Register adds a handset to the registry. The IMEI must be unique across
// the whole fleet, retired devices included.
func (s *Service) Register(ctx context.Context, req *RegisterDeviceRequest) (*DeviceResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	if req.ModelID != nil {
		if _, err := s.catalogRepo.GetModel(ctx, *req.ModelID); err != nil {
			return nil, err
		}
	}
	if req.DistributorID != nil {
		if _, err := s.catalogRepo.GetDistributor(ctx, *req.DistributorID); err != nil {
			return nil, err
		}
	}
	if req.BackupDistributorID != nil {
		if _, err := s.catalogRepo.GetDistributor(ctx, *req.BackupDistributorID); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	dev := &domainDevice.Device{
		IMEI:                req.IMEI,
		ModelID:             req.ModelID,
		DistributorID:       req.DistributorID,
		IsBackup:            req.IsBackup,
		BackupDistributorID: req.BackupDistributorID,
		OwnerName:           req.OwnerName,
		Status:              domainDevice.StatusNew,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := s.deviceRepo.Create(ctx, dev); err != nil {
		return nil, err
	}

	created, err := s.deviceRepo.GetByID(ctx, dev.ID)
	if err != nil {
		return nil, err
	}

	logger.Info("Device registered",
		zap.String("device_id", created.ID.String()),
		zap.String("imei", created.IMEI),
		zap.Bool("is_backup", created.IsBackup),
		zap.String("event", "device_registered"),
	)

	return ToDeviceResponse(created), nil
}

// ImportDevices bulk-loads registry rows migrated from the legacy
// spreadsheet. Rows whose IMEI is already registered are skipped, so the
// import can be re-run.
func (s *Service) ImportDevices(ctx context.Context, specs []ImportDeviceSpec) (*ImportDevicesResponse, error) {
	resp := &ImportDevicesResponse{}
	now := time.Now()

	for _, spec := range specs {
		if !utils.IsValidIMEI(spec.IMEI) {
			return nil, appErrors.NewAppError("VALIDATION_ERROR", fmt.Sprintf("invalid IMEI %q", spec.IMEI), nil)
		}
		status := spec.Status
		if status == "" {
			status = domainDevice.StatusNew
		}
		if !status.IsValid() {
			return nil, domainDevice.ErrInvalidStatus
		}

		dev := &domainDevice.Device{
			IMEI:          spec.IMEI,
			ModelID:       spec.ModelID,
			DistributorID: spec.DistributorID,
			IsBackup:      spec.IsBackup,
			OwnerName:     spec.OwnerName,
			Status:        status,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		err := s.deviceRepo.Create(ctx, dev)
		if errors.Is(err, domainDevice.ErrDuplicateIMEI) {
			resp.Skipped = append(resp.Skipped, spec.IMEI)
			continue
		}
		if err != nil {
			return nil, err
		}
		resp.Imported++
	}

	logger.Info("Devices imported",
		zap.Int("imported", resp.Imported),
		zap.Int("skipped", len(resp.Skipped)),
		zap.String("event", "devices_imported"),
	)

	return resp, nil
}

func (s *Service) UpdateDevice(ctx context.Context, deviceID uuid.UUID, req *UpdateDeviceRequest) (*DeviceResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	dev, err := s.deviceRepo.GetByID(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	if dev.IsRetired() {
		return nil, domainDevice.ErrDeviceRetired
	}

	if req.ModelID != nil {
		if _, err := s.catalogRepo.GetModel(ctx, *req.ModelID); err != nil {
			return nil, err
		}
		dev.ModelID = req.ModelID
	}
	if req.DistributorID != nil {
		if _, err := s.catalogRepo.GetDistributor(ctx, *req.DistributorID); err != nil {
			return nil, err
		}
		dev.DistributorID = req.DistributorID
	}
	if req.IsBackup != nil {
		dev.IsBackup = *req.IsBackup
	}
	if req.BackupDistributorID != nil {
		if _, err := s.catalogRepo.GetDistributor(ctx, *req.BackupDistributorID); err != nil {
			return nil, err
		}
		dev.BackupDistributorID = req.BackupDistributorID
	}
	if req.OwnerName != nil {
		dev.OwnerName = req.OwnerName
	}
	dev.UpdatedAt = time.Now()

	if err := s.deviceRepo.Update(ctx, dev); err != nil {
		return nil, err
	}

	updated, err := s.deviceRepo.GetByID(ctx, deviceID)
	if err != nil {
		return nil, err
	}

	logger.Info("Device updated",
		zap.String("device_id", deviceID.String()),
		zap.String("event", "device_updated"),
	)

	return ToDeviceResponse(updated), nil
}

// Retire soft-deletes a device. The repository rejects retirement while an
// active assignment exists; the row and its history stay queryable.
func (s *Service) Retire(ctx context.Context, deviceID uuid.UUID, req *RetireDeviceRequest) (*DeviceResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	dev, err := s.deviceRepo.GetByID(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	if dev.IsRetired() {
		return nil, domainDevice.ErrDeviceRetired
	}

	finalStatus := domainDevice.DeviceStatus(req.FinalStatus)
	if err := s.deviceRepo.SoftDelete(ctx, deviceID, finalStatus, req.Reason); err != nil {
		return nil, err
	}

	retired, err := s.deviceRepo.GetByID(ctx, deviceID)
	if err != nil {
		return nil, err
	}

	logger.Info("Device retired",
		zap.String("device_id", deviceID.String()),
		zap.String("imei", retired.IMEI),
		zap.String("final_status", req.FinalStatus),
		zap.String("event", "device_retired"),
	)

	return ToDeviceResponse(retired), nil
}

func (s *Service) GetDevice(ctx context.Context, deviceID uuid.UUID) (*DeviceResponse, error) {
	dev, err := s.deviceRepo.GetByID(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	return ToDeviceResponse(dev), nil
}

func (s *Service) GetDeviceByIMEI(ctx context.Context, imei string) (*DeviceResponse, error) {
	if !utils.IsValidIMEI(imei) {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid IMEI", nil)
	}
	dev, err := s.deviceRepo.GetByIMEI(ctx, imei)
	if err != nil {
		return nil, err
	}
	return ToDeviceResponse(dev), nil
}

func (s *Service) ListDevices(ctx context.Context, filter *DeviceFilterRequest) (*DeviceListResponse, error) {
	if err := utils.ValidateStruct(filter); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid filter", err)
	}
	normalizePaging(filter)

	devices, total, err := s.deviceRepo.List(ctx, ToDomainFilter(filter))
	if err != nil {
		return nil, err
	}

	responses := make([]DeviceResponse, len(devices))
	for i, d := range devices {
		responses[i] = *ToDeviceResponse(d)
	}

	return &DeviceListResponse{
		Devices:    responses,
		Total:      total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: totalPages(total, filter.PageSize),
	}, nil
}

// GetStateByIMEI returns one device with its derived state label and MDM
// overlay, recomputed at read time.
func (s *Service) GetStateByIMEI(ctx context.Context, imei string) (*DeviceStateResponse, error) {
	if !utils.IsValidIMEI(imei) {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid IMEI", nil)
	}

	dev, err := s.deviceRepo.GetByIMEI(ctx, imei)
	if err != nil {
		return nil, err
	}

	records, err := s.sotiReader.GetByIMEIs(ctx, []string{dev.IMEI})
	if err != nil {
		return nil, err
	}
	overlays := reconcile.Reconcile([]string{dev.IMEI}, records)

	state, err := s.buildState(ctx, dev, overlays[dev.IMEI])
	if err != nil {
		return nil, err
	}
	return state, nil
}

// ListWithState is the registry listing enriched with the derived state and
// MDM overlay per row. Presence records are fetched in one batch for the
// whole page.
func (s *Service) ListWithState(ctx context.Context, filter *DeviceFilterRequest) (*DeviceStateListResponse, error) {
	if err := utils.ValidateStruct(filter); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid filter", err)
	}
	normalizePaging(filter)

	devices, total, err := s.deviceRepo.List(ctx, ToDomainFilter(filter))
	if err != nil {
		return nil, err
	}

	imeis := make([]string, len(devices))
	for i, d := range devices {
		imeis[i] = d.IMEI
	}

	records, err := s.sotiReader.GetByIMEIs(ctx, imeis)
	if err != nil {
		return nil, err
	}
	overlays := reconcile.Reconcile(imeis, records)

	responses := make([]DeviceStateResponse, len(devices))
	for i, d := range devices {
		state, err := s.buildState(ctx, d, overlays[d.IMEI])
		if err != nil {
			return nil, err
		}
		responses[i] = *state
	}

	return &DeviceStateListResponse{
		Devices:    responses,
		Total:      total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: totalPages(total, filter.PageSize),
	}, nil
}

func (s *Service) GetStatistics(ctx context.Context) (*StatisticsResponse, error) {
	stats, err := s.deviceRepo.GetStatistics(ctx)
	if err != nil {
		return nil, err
	}
	return ToStatisticsResponse(stats), nil
}

func (s *Service) buildState(ctx context.Context, dev *domainDevice.Device, overlay domainSoti.Overlay) (*DeviceStateResponse, error) {
	active, err := s.assignmentRepo.GetActiveByDeviceID(ctx, dev.ID)
	if err != nil {
		return nil, err
	}

	var last *domainAssignment.Assignment
	if active == nil {
		last, err = s.assignmentRepo.GetLastByDeviceID(ctx, dev.ID)
		if err != nil {
			return nil, err
		}
	}

	var outbound *domainShipment.Shipment
	var activeID *uuid.UUID
	if active != nil {
		activeID = &active.ID
		outbound, err = s.shipmentRepo.GetByAssignmentAndLeg(ctx, active.ID, domainShipment.LegOutbound)
		if err != nil {
			return nil, err
		}
	}

	label := projection.Project(projection.Input{
		Device:           dev,
		ActiveAssignment: active,
		LastAssignment:   last,
		OutboundLeg:      outbound,
		Overlay:          overlay,
	})

	return &DeviceStateResponse{
		DeviceResponse:     *ToDeviceResponse(dev),
		State:              string(label),
		Soti:               toOverlayResponse(overlay),
		ActiveAssignmentID: activeID,
	}, nil
}

func normalizePaging(filter *DeviceFilterRequest) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.PageSize > 100 {
		filter.PageSize = 100
	}
}

func totalPages(total int64, pageSize int) int {
	pages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		pages++
	}
	return pages
}
