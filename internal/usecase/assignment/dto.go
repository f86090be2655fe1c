package assignment

import (
	"time"

	domainAssignment "fleet-device-manager/internal/domain/assignment"
	domainDevice "fleet-device-manager/internal/domain/device"

	"github.com/google/uuid"
)

type OpenAssignmentRequest struct {
	IMEI              string     `json:"imei" validate:"required,imei"`
	Type              string     `json:"type" validate:"required,oneof=assign replace"`
	AssigneeName      string     `json:"assignee_name" validate:"required,min=2,max=150"`
	AssigneePhone     string     `json:"assignee_phone" validate:"omitempty,phone"`
	AssigneeEmail     string     `json:"assignee_email" validate:"omitempty,email"`
	AssigneeRole      string     `json:"assignee_role" validate:"omitempty,max=100"`
	DistributorID     *uuid.UUID `json:"distributor_id"`
	DeliveryLocation  string     `json:"delivery_location" validate:"omitempty,max=300"`
	TicketRef         *string    `json:"ticket_ref" validate:"omitempty,max=50"`
	ReplacementReason *string    `json:"replacement_reason" validate:"omitempty,oneof=theft breakage obsolescence loss"`
	ExpectsReturn     bool       `json:"expects_return"`
	ReturnIMEI        *string    `json:"return_imei" validate:"omitempty,imei"`

	// Voucher for an outbound leg opened together with the assignment.
	VoucherID *string `json:"voucher_id" validate:"omitempty,max=100"`
}

type CloseAssignmentRequest struct {
	ResultingStatus string  `json:"resulting_status" validate:"required"`
	Reason          *string `json:"reason" validate:"omitempty,max=500"`
}

type AssignmentFilterRequest struct {
	DeviceID      *uuid.UUID `form:"device_id"`
	Status        *string    `form:"status" validate:"omitempty,oneof=active closed"`
	Type          *string    `form:"type" validate:"omitempty,oneof=assign replace"`
	DistributorID *uuid.UUID `form:"distributor_id"`
	TicketRef     *string    `form:"ticket_ref"`
	Search        string     `form:"search"`
	Page          int        `form:"page" validate:"omitempty,min=1"`
	PageSize      int        `form:"page_size" validate:"omitempty,min=1,max=100"`
	SortBy        string     `form:"sort_by" validate:"omitempty,oneof=assigned_at closed_at created_at"`
	SortOrder     string     `form:"sort_order" validate:"omitempty,oneof=asc desc"`
}

type AssignmentResponse struct {
	ID                 uuid.UUID  `json:"id"`
	DeviceID           uuid.UUID  `json:"device_id"`
	Type               string     `json:"type"`
	Status             string     `json:"status"`
	AssigneeName       string     `json:"assignee_name"`
	AssigneePhone      string     `json:"assignee_phone,omitempty"`
	AssigneeEmail      string     `json:"assignee_email,omitempty"`
	AssigneeRole       string     `json:"assignee_role,omitempty"`
	DistributorID      *uuid.UUID `json:"distributor_id"`
	DeliveryLocation   string     `json:"delivery_location,omitempty"`
	TicketRef          *string    `json:"ticket_ref"`
	ReplacementReason  *string    `json:"replacement_reason"`
	ExpectsReturn      bool       `json:"expects_return"`
	ExpectedReturnIMEI *string    `json:"expected_return_imei"`
	AssignedAt         time.Time  `json:"assigned_at"`
	ClosedAt           *time.Time `json:"closed_at"`
	CloseReason        *string    `json:"close_reason"`
	ResultingStatus    *string    `json:"resulting_status"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

type AssignmentListResponse struct {
	Assignments []AssignmentResponse `json:"assignments"`
	Total       int64                `json:"total"`
	Page        int                  `json:"page"`
	PageSize    int                  `json:"page_size"`
	TotalPages  int                  `json:"total_pages"`
}

func ToAssignmentResponse(a *domainAssignment.Assignment) *AssignmentResponse {
	if a == nil {
		return nil
	}
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
	return &AssignmentResponse{
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

func ToDomainFilter(req *AssignmentFilterRequest) *domainAssignment.Filter {
	if req == nil {
		return &domainAssignment.Filter{}
	}
	filter := &domainAssignment.Filter{
		DeviceID:      req.DeviceID,
		DistributorID: req.DistributorID,
		TicketRef:     req.TicketRef,
		Search:        req.Search,
		Page:          req.Page,
		PageSize:      req.PageSize,
		SortBy:        req.SortBy,
		SortOrder:     req.SortOrder,
	}
	if req.Status != nil {
		status := domainAssignment.AssignmentStatus(*req.Status)
		filter.Status = &status
	}
	if req.Type != nil {
		typ := domainAssignment.AssignmentType(*req.Type)
		filter.Type = &typ
	}
	return filter
}

func toResultingStatus(raw string) domainDevice.DeviceStatus {
	return domainDevice.DeviceStatus(raw)
}
