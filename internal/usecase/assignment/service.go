package assignment

import (
	"context"
	"time"

	domainAssignment "fleet-device-manager/internal/domain/assignment"
	domainDevice "fleet-device-manager/internal/domain/device"
	domainShipment "fleet-device-manager/internal/domain/shipment"
	"fleet-device-manager/internal/logger"
	appErrors "fleet-device-manager/pkg/errors"
	"fleet-device-manager/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service implements assignment ledger use cases
type Service struct {
	assignmentRepo domainAssignment.Repository
	deviceRepo     domainDevice.Repository
	shipmentRepo   domainShipment.Repository
}

// NewService creates a new assignment service
func NewService(
	assignmentRepo domainAssignment.Repository,
	deviceRepo domainDevice.Repository,
	shipmentRepo domainShipment.Repository,
) *Service {
	return &Service{
		assignmentRepo: assignmentRepo,
		deviceRepo:     deviceRepo,
		shipmentRepo:   shipmentRepo,
	}
}

// Open starts a custody period for the device identified by IMEI. When a
// voucher is supplied the outbound leg is created together with the
// assignment.
func (s *Service) Open(ctx context.Context, req *OpenAssignmentRequest) (*AssignmentResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	dev, err := s.deviceRepo.GetByIMEI(ctx, req.IMEI)
	if err != nil {
		return nil, err
	}

	assignmentType := domainAssignment.AssignmentType(req.Type)

	var reason *domainAssignment.ReplacementReason
	if req.ReplacementReason != nil {
		r := domainAssignment.ReplacementReason(*req.ReplacementReason)
		reason = &r
	}

	if err := ValidateOpen(dev, assignmentType, reason, req.ExpectsReturn, req.ReturnIMEI); err != nil {
		return nil, err
	}

	now := time.Now()
	assignment := &domainAssignment.Assignment{
		DeviceID: dev.ID,
		Type:     assignmentType,
		Status:   domainAssignment.StatusActive,
		Assignee: domainAssignment.Assignee{
			Name:             req.AssigneeName,
			Phone:            req.AssigneePhone,
			Email:            req.AssigneeEmail,
			Role:             req.AssigneeRole,
			DistributorID:    req.DistributorID,
			DeliveryLocation: req.DeliveryLocation,
		},
		TicketRef:          req.TicketRef,
		ReplacementReason:  reason,
		ExpectsReturn:      req.ExpectsReturn,
		ExpectedReturnIMEI: req.ReturnIMEI,
		AssignedAt:         now,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := s.assignmentRepo.Open(ctx, assignment); err != nil {
		return nil, err
	}

	if req.VoucherID != nil {
		leg := &domainShipment.Shipment{
			AssignmentID: assignment.ID,
			Leg:          domainShipment.LegOutbound,
			VoucherID:    req.VoucherID,
			Status:       domainShipment.StatusPending,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := s.shipmentRepo.Create(ctx, leg); err != nil {
			return nil, err
		}
	}

	created, err := s.assignmentRepo.GetByID(ctx, assignment.ID)
	if err != nil {
		return nil, err
	}

	logger.Info("Assignment opened",
		zap.String("assignment_id", created.ID.String()),
		zap.String("device_id", dev.ID.String()),
		zap.String("imei", dev.IMEI),
		zap.String("type", string(assignmentType)),
		zap.Bool("with_voucher", req.VoucherID != nil),
		zap.String("event", "assignment_opened"),
	)

	return ToAssignmentResponse(created), nil
}

// Close ends the custody period and records the device outcome. The resulting
// status must be one of the terminal closure states.
func (s *Service) Close(ctx context.Context, assignmentID uuid.UUID, req *CloseAssignmentRequest) (*AssignmentResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	assignment, err := s.assignmentRepo.GetByID(ctx, assignmentID)
	if err != nil {
		return nil, err
	}

	resulting := toResultingStatus(req.ResultingStatus)
	if err := ValidateClose(assignment, resulting); err != nil {
		return nil, err
	}

	if _, err := s.assignmentRepo.Close(ctx, assignmentID, resulting, req.Reason); err != nil {
		return nil, err
	}

	closed, err := s.assignmentRepo.GetByID(ctx, assignmentID)
	if err != nil {
		return nil, err
	}

	logger.Info("Assignment closed",
		zap.String("assignment_id", assignmentID.String()),
		zap.String("device_id", closed.DeviceID.String()),
		zap.String("resulting_status", req.ResultingStatus),
		zap.String("event", "assignment_closed"),
	)

	return ToAssignmentResponse(closed), nil
}

func (s *Service) GetAssignment(ctx context.Context, assignmentID uuid.UUID) (*AssignmentResponse, error) {
	assignment, err := s.assignmentRepo.GetByID(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	return ToAssignmentResponse(assignment), nil
}

// GetDeviceHistory returns all custody periods ever recorded for the device,
// newest first.
func (s *Service) GetDeviceHistory(ctx context.Context, deviceID uuid.UUID) ([]AssignmentResponse, error) {
	if _, err := s.deviceRepo.GetByID(ctx, deviceID); err != nil {
		return nil, err
	}

	assignments, err := s.assignmentRepo.ListByDeviceID(ctx, deviceID)
	if err != nil {
		return nil, err
	}

	responses := make([]AssignmentResponse, len(assignments))
	for i, a := range assignments {
		responses[i] = *ToAssignmentResponse(a)
	}
	return responses, nil
}

func (s *Service) ListAssignments(ctx context.Context, filter *AssignmentFilterRequest) (*AssignmentListResponse, error) {
	if err := utils.ValidateStruct(filter); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid filter", err)
	}

	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.PageSize > 100 {
		filter.PageSize = 100
	}

	assignments, total, err := s.assignmentRepo.List(ctx, ToDomainFilter(filter))
	if err != nil {
		return nil, err
	}

	responses := make([]AssignmentResponse, len(assignments))
	for i, a := range assignments {
		responses[i] = *ToAssignmentResponse(a)
	}

	totalPages := int(total) / filter.PageSize
	if int(total)%filter.PageSize > 0 {
		totalPages++
	}

	return &AssignmentListResponse{
		Assignments: responses,
		Total:       total,
		Page:        filter.Page,
		PageSize:    filter.PageSize,
		TotalPages:  totalPages,
	}, nil
}
