package shipment

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

// Service implements shipment tracking use cases
type Service struct {
	shipmentRepo   domainShipment.Repository
	assignmentRepo domainAssignment.Repository
}

// NewService creates a new shipment service
func NewService(
	shipmentRepo domainShipment.Repository,
	assignmentRepo domainAssignment.Repository,
) *Service {
	return &Service{
		shipmentRepo:   shipmentRepo,
		assignmentRepo: assignmentRepo,
	}
}

// StartOutbound opens the outbound leg for an assignment that was created
// without a voucher.
func (s *Service) StartOutbound(ctx context.Context, assignmentID uuid.UUID, req *StartOutboundRequest) (*ShipmentResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	assignment, err := s.assignmentRepo.GetByID(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	if !assignment.IsActive() {
		return nil, domainAssignment.ErrNotActive
	}

	now := time.Now()
	leg := &domainShipment.Shipment{
		AssignmentID: assignmentID,
		Leg:          domainShipment.LegOutbound,
		VoucherID:    &req.VoucherID,
		Status:       domainShipment.StatusPending,
		Notes:        req.Notes,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.shipmentRepo.Create(ctx, leg); err != nil {
		return nil, err
	}

	created, err := s.shipmentRepo.GetByID(ctx, leg.ID)
	if err != nil {
		return nil, err
	}

	logger.Info("Outbound leg started",
		zap.String("shipment_id", created.ID.String()),
		zap.String("assignment_id", assignmentID.String()),
		zap.String("voucher_id", req.VoucherID),
		zap.String("event", "outbound_started"),
	)

	return ToShipmentResponse(created), nil
}

// StartReturn opens the return leg of an assignment. The assignment must
// expect a return and its outbound leg must be delivered first.
func (s *Service) StartReturn(ctx context.Context, assignmentID uuid.UUID, req *StartReturnRequest) (*ShipmentResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	assignment, err := s.assignmentRepo.GetByID(ctx, assignmentID)
	if err != nil {
		return nil, err
	}

	outbound, err := s.shipmentRepo.GetByAssignmentAndLeg(ctx, assignmentID, domainShipment.LegOutbound)
	if err != nil {
		return nil, err
	}

	if err := ValidateStartReturn(assignment, outbound); err != nil {
		return nil, err
	}

	now := time.Now()
	leg := &domainShipment.Shipment{
		AssignmentID: assignmentID,
		Leg:          domainShipment.LegReturn,
		VoucherID:    &req.VoucherID,
		Status:       domainShipment.StatusPending,
		Notes:        req.Notes,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.shipmentRepo.Create(ctx, leg); err != nil {
		return nil, err
	}

	created, err := s.shipmentRepo.GetByID(ctx, leg.ID)
	if err != nil {
		return nil, err
	}

	logger.Info("Return leg started",
		zap.String("shipment_id", created.ID.String()),
		zap.String("assignment_id", assignmentID.String()),
		zap.String("voucher_id", req.VoucherID),
		zap.String("event", "return_started"),
	)

	return ToShipmentResponse(created), nil
}

// Advance moves a leg one step forward: pending to shipped, or shipped to
// delivered. The repository guard rejects the update when another writer got
// there first.
func (s *Service) Advance(ctx context.Context, shipmentID uuid.UUID, req *AdvanceRequest) (*ShipmentResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	leg, err := s.shipmentRepo.GetByID(ctx, shipmentID)
	if err != nil {
		return nil, err
	}

	next := domainShipment.ShipmentStatus(req.Status)
	if err := ValidateTransition(leg.Status, next); err != nil {
		return nil, err
	}

	at := time.Now()
	if req.At != nil {
		at = *req.At
	}
	if err := s.shipmentRepo.Advance(ctx, shipmentID, leg.Status, next, at); err != nil {
		return nil, err
	}

	updated, err := s.shipmentRepo.GetByID(ctx, shipmentID)
	if err != nil {
		return nil, err
	}

	logger.Info("Shipment advanced",
		zap.String("shipment_id", shipmentID.String()),
		zap.String("from", string(leg.Status)),
		zap.String("to", string(next)),
		zap.String("event", "shipment_advanced"),
	)

	return ToShipmentResponse(updated), nil
}

// ConfirmReturn marks a shipped return leg as delivered and settles the
// returned device. When the request does not name a final status the device
// is recorded as used.
func (s *Service) ConfirmReturn(ctx context.Context, shipmentID uuid.UUID, req *ConfirmReturnRequest) (*ShipmentResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	leg, err := s.shipmentRepo.GetByID(ctx, shipmentID)
	if err != nil {
		return nil, err
	}

	if err := ValidateConfirmReturn(leg); err != nil {
		return nil, err
	}

	assignment, err := s.assignmentRepo.GetByID(ctx, leg.AssignmentID)
	if err != nil {
		return nil, err
	}

	returnIMEI := ""
	switch {
	case req.ReturnIMEI != nil:
		returnIMEI = *req.ReturnIMEI
	case assignment.ExpectedReturnIMEI != nil:
		returnIMEI = *assignment.ExpectedReturnIMEI
	default:
		return nil, appErrors.NewAppError("MISSING_RETURN_IMEI", "No return device recorded for this assignment", nil)
	}

	finalStatus := domainDevice.StatusUsed
	if req.FinalStatus != nil {
		finalStatus = domainDevice.DeviceStatus(*req.FinalStatus)
	}

	at := time.Now()
	if req.At != nil {
		at = *req.At
	}
	if err := s.shipmentRepo.ConfirmReturn(ctx, shipmentID, returnIMEI, finalStatus, req.Notes, at); err != nil {
		return nil, err
	}

	updated, err := s.shipmentRepo.GetByID(ctx, shipmentID)
	if err != nil {
		return nil, err
	}

	logger.Info("Return confirmed",
		zap.String("shipment_id", shipmentID.String()),
		zap.String("assignment_id", leg.AssignmentID.String()),
		zap.String("return_imei", returnIMEI),
		zap.String("final_status", string(finalStatus)),
		zap.String("event", "return_confirmed"),
	)

	return ToShipmentResponse(updated), nil
}

func (s *Service) GetShipment(ctx context.Context, shipmentID uuid.UUID) (*ShipmentResponse, error) {
	leg, err := s.shipmentRepo.GetByID(ctx, shipmentID)
	if err != nil {
		return nil, err
	}
	return ToShipmentResponse(leg), nil
}

// ListByAssignment returns every leg recorded for the assignment, outbound
// first.
func (s *Service) ListByAssignment(ctx context.Context, assignmentID uuid.UUID) ([]ShipmentResponse, error) {
	if _, err := s.assignmentRepo.GetByID(ctx, assignmentID); err != nil {
		return nil, err
	}

	legs, err := s.shipmentRepo.ListByAssignmentID(ctx, assignmentID)
	if err != nil {
		return nil, err
	}

	responses := make([]ShipmentResponse, len(legs))
	for i, leg := range legs {
		responses[i] = *ToShipmentResponse(leg)
	}
	return responses, nil
}
