package assignment

import "errors"

var (
	ErrAssignmentNotFound       = errors.New("assignment not found")
	ErrDeviceAlreadyAssigned    = errors.New("device already has an active assignment")
	ErrNotActive                = errors.New("assignment is not active")
	ErrInvalidResultingStatus   = errors.New("resulting status is not a terminal closure status")
	ErrMissingReplacementReason = errors.New("replacement assignment requires a replacement reason")
	ErrInvalidReplacementReason = errors.New("invalid replacement reason")
	ErrUnexpectedReason         = errors.New("replacement reason is only valid for replacement assignments")
	ErrSameReturnDevice         = errors.New("expected return device must differ from the assigned device")
)
