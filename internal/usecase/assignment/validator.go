package assignment

import (
	domainAssignment "fleet-device-manager/internal/domain/assignment"
	domainDevice "fleet-device-manager/internal/domain/device"
)

// ValidateOpen checks everything about opening custody that does not need the
// ledger itself; the single-active-assignment invariant is enforced inside
// the repository transaction.
func ValidateOpen(dev *domainDevice.Device, typ domainAssignment.AssignmentType, reason *domainAssignment.ReplacementReason, expectsReturn bool, returnIMEI *string) error {
	if dev.IsRetired() {
		return domainDevice.ErrDeviceRetired
	}

	switch typ {
	case domainAssignment.TypeReplace:
		if reason == nil {
			return domainAssignment.ErrMissingReplacementReason
		}
		if !reason.IsValid() {
			return domainAssignment.ErrInvalidReplacementReason
		}
	case domainAssignment.TypeAssign:
		// A replacement reason on a fresh assignment means the caller mixed
		// up the two origins.
		if reason != nil {
			return domainAssignment.ErrUnexpectedReason
		}
	}

	if expectsReturn && returnIMEI != nil && *returnIMEI == dev.IMEI {
		return domainAssignment.ErrSameReturnDevice
	}

	return nil
}

// ValidateClose checks that the assignment is still open and the resulting
// device status is one of the terminal closure statuses.
func ValidateClose(a *domainAssignment.Assignment, resulting domainDevice.DeviceStatus) error {
	if !a.IsActive() {
		return domainAssignment.ErrNotActive
	}
	if !resulting.IsTerminalClosure() {
		return domainAssignment.ErrInvalidResultingStatus
	}
	return nil
}
