package handler

import (
	"errors"
	"net/http"

	domainAssignment "fleet-device-manager/internal/domain/assignment"
	domainCatalog "fleet-device-manager/internal/domain/catalog"
	domainDevice "fleet-device-manager/internal/domain/device"
	domainShipment "fleet-device-manager/internal/domain/shipment"
	appErrors "fleet-device-manager/pkg/errors"
	"fleet-device-manager/pkg/utils"

	"github.com/gin-gonic/gin"
)

// statusForError maps domain sentinels to HTTP status codes so every handler
// reports invariant violations consistently.
func statusForError(err error) int {
	switch {
	case errors.Is(err, domainDevice.ErrDeviceNotFound),
		errors.Is(err, domainAssignment.ErrAssignmentNotFound),
		errors.Is(err, domainShipment.ErrShipmentNotFound),
		errors.Is(err, domainCatalog.ErrModelNotFound),
		errors.Is(err, domainCatalog.ErrDistributorNotFound):
		return http.StatusNotFound

	case errors.Is(err, domainDevice.ErrDuplicateIMEI),
		errors.Is(err, domainDevice.ErrHasActiveAssignment),
		errors.Is(err, domainAssignment.ErrDeviceAlreadyAssigned),
		errors.Is(err, domainShipment.ErrLegAlreadyExists):
		return http.StatusConflict

	case errors.Is(err, domainDevice.ErrDeviceRetired),
		errors.Is(err, domainDevice.ErrInvalidStatus),
		errors.Is(err, domainAssignment.ErrNotActive),
		errors.Is(err, domainAssignment.ErrInvalidResultingStatus),
		errors.Is(err, domainAssignment.ErrMissingReplacementReason),
		errors.Is(err, domainAssignment.ErrInvalidReplacementReason),
		errors.Is(err, domainAssignment.ErrUnexpectedReason),
		errors.Is(err, domainAssignment.ErrSameReturnDevice),
		errors.Is(err, domainShipment.ErrInvalidTransition),
		errors.Is(err, domainShipment.ErrReturnNotExpected),
		errors.Is(err, domainShipment.ErrOutboundNotDelivered),
		errors.Is(err, domainShipment.ErrNotReturnLeg),
		errors.Is(err, domainShipment.ErrVoucherRequired):
		return http.StatusUnprocessableEntity
	}

	var appErr *appErrors.AppError
	if errors.As(err, &appErr) {
		return http.StatusBadRequest
	}

	return http.StatusInternalServerError
}

func respondError(c *gin.Context, err error) {
	status := statusForError(err)
	code := appErrors.CodeOf(err)
	if code == "INTERNAL_ERROR" {
		switch status {
		case http.StatusNotFound:
			code = "NOT_FOUND"
		case http.StatusConflict:
			code = "CONFLICT"
		case http.StatusUnprocessableEntity:
			code = "INVARIANT_VIOLATION"
		}
	}
	utils.ErrorResponseWithCode(c, status, code, err.Error())
}
