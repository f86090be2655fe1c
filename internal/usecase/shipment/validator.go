package shipment

import (
	domainAssignment "fleet-device-manager/internal/domain/assignment"
	domainShipment "fleet-device-manager/internal/domain/shipment"
)

// ValidateTransition checks the monotonic leg progression. Only the two
// forward steps exist; anything else, including a repeat of the current
// status, is rejected.
func ValidateTransition(current, next domainShipment.ShipmentStatus) error {
	switch {
	case current == domainShipment.StatusPending && next == domainShipment.StatusShipped:
		return nil
	case current == domainShipment.StatusShipped && next == domainShipment.StatusDelivered:
		return nil
	}
	return domainShipment.ErrInvalidTransition
}

// ValidateStartReturn checks that a return leg may be opened for the
// assignment: the assignment must expect a return and its outbound leg, if
// one exists, must already be delivered.
func ValidateStartReturn(a *domainAssignment.Assignment, outbound *domainShipment.Shipment) error {
	if !a.ExpectsReturn {
		return domainShipment.ErrReturnNotExpected
	}
	if outbound != nil && outbound.Status != domainShipment.StatusDelivered {
		return domainShipment.ErrOutboundNotDelivered
	}
	return nil
}

// ValidateConfirmReturn checks that the leg being confirmed is a shipped
// return leg.
func ValidateConfirmReturn(leg *domainShipment.Shipment) error {
	if leg.Leg != domainShipment.LegReturn {
		return domainShipment.ErrNotReturnLeg
	}
	return ValidateTransition(leg.Status, domainShipment.StatusDelivered)
}
