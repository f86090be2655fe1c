package shipment

import "errors"

var (
	ErrShipmentNotFound     = errors.New("shipment not found")
	ErrLegAlreadyExists     = errors.New("shipment leg already exists for this assignment")
	ErrInvalidTransition    = errors.New("invalid shipment status transition")
	ErrReturnNotExpected    = errors.New("assignment does not expect a return")
	ErrOutboundNotDelivered = errors.New("outbound leg has not been delivered yet")
	ErrNotReturnLeg         = errors.New("shipment is not a return leg")
	ErrVoucherRequired      = errors.New("voucher id is required")
)
