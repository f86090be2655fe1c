package shipment

import (
	"time"

	domainShipment "fleet-device-manager/internal/domain/shipment"

	"github.com/google/uuid"
)

type StartOutboundRequest struct {
	VoucherID string  `json:"voucher_id" validate:"required,max=100"`
	Notes     *string `json:"notes" validate:"omitempty,max=500"`
}

type StartReturnRequest struct {
	VoucherID  string  `json:"voucher_id" validate:"required,max=100"`
	ReturnIMEI *string `json:"return_imei" validate:"omitempty,imei"`
	Notes      *string `json:"notes" validate:"omitempty,max=500"`
}

type AdvanceRequest struct {
	Status string     `json:"status" validate:"required,oneof=shipped delivered"`
	At     *time.Time `json:"at"`
}

type ConfirmReturnRequest struct {
	ReturnIMEI  *string    `json:"return_imei" validate:"omitempty,imei"`
	FinalStatus *string    `json:"final_status" validate:"omitempty,oneof=used repaired not_repaired lost"`
	Notes       *string    `json:"notes" validate:"omitempty,max=500"`
	At          *time.Time `json:"at"`
}

type ShipmentResponse struct {
	ID           uuid.UUID  `json:"id"`
	AssignmentID uuid.UUID  `json:"assignment_id"`
	Leg          string     `json:"leg"`
	VoucherID    *string    `json:"voucher_id"`
	Status       string     `json:"status"`
	ShippedAt    *time.Time `json:"shipped_at"`
	DeliveredAt  *time.Time `json:"delivered_at"`
	Notes        *string    `json:"notes"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func ToShipmentResponse(s *domainShipment.Shipment) *ShipmentResponse {
	if s == nil {
		return nil
	}
	return &ShipmentResponse{
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
