package device

import "errors"

var (
	ErrDeviceNotFound      = errors.New("device not found")
	ErrDuplicateIMEI       = errors.New("device with this IMEI already exists")
	ErrHasActiveAssignment = errors.New("device has an active assignment")
	ErrInvalidStatus       = errors.New("invalid device status")
	ErrDeviceRetired       = errors.New("device is retired")
)
