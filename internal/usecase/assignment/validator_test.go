package assignment

import (
	"testing"
	"time"

	domainAssignment "fleet-device-manager/internal/domain/assignment"
	domainDevice "fleet-device-manager/internal/domain/device"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDevice() *domainDevice.Device {
	return &domainDevice.Device{
		ID:     uuid.New(),
		IMEI:   "356938035643809",
		Status: domainDevice.StatusNew,
	}
}

func reasonPtr(r domainAssignment.ReplacementReason) *domainAssignment.ReplacementReason {
	return &r
}

func TestValidateOpen_Assign(t *testing.T) {
	dev := testDevice()

	err := ValidateOpen(dev, domainAssignment.TypeAssign, nil, false, nil)
	require.NoError(t, err)
}

func TestValidateOpen_RetiredDevice(t *testing.T) {
	dev := testDevice()
	dev.Deleted = true

	err := ValidateOpen(dev, domainAssignment.TypeAssign, nil, false, nil)
	assert.ErrorIs(t, err, domainDevice.ErrDeviceRetired)
}

func TestValidateOpen_ReplaceRequiresReason(t *testing.T) {
	dev := testDevice()

	err := ValidateOpen(dev, domainAssignment.TypeReplace, nil, true, nil)
	assert.ErrorIs(t, err, domainAssignment.ErrMissingReplacementReason)
}

func TestValidateOpen_ReplaceRejectsUnknownReason(t *testing.T) {
	dev := testDevice()
	bad := domainAssignment.ReplacementReason("water damage")

	err := ValidateOpen(dev, domainAssignment.TypeReplace, &bad, true, nil)
	assert.ErrorIs(t, err, domainAssignment.ErrInvalidReplacementReason)
}

func TestValidateOpen_AssignRejectsReason(t *testing.T) {
	dev := testDevice()

	err := ValidateOpen(dev, domainAssignment.TypeAssign, reasonPtr(domainAssignment.ReasonTheft), false, nil)
	assert.ErrorIs(t, err, domainAssignment.ErrUnexpectedReason)
}

func TestValidateOpen_ReturnDeviceMustDiffer(t *testing.T) {
	dev := testDevice()
	same := dev.IMEI

	err := ValidateOpen(dev, domainAssignment.TypeReplace, reasonPtr(domainAssignment.ReasonBreakage), true, &same)
	assert.ErrorIs(t, err, domainAssignment.ErrSameReturnDevice)
}

func TestValidateOpen_ReplaceWithDistinctReturn(t *testing.T) {
	dev := testDevice()
	other := "490154203237518"

	err := ValidateOpen(dev, domainAssignment.TypeReplace, reasonPtr(domainAssignment.ReasonLoss), true, &other)
	require.NoError(t, err)
}

func TestValidateClose_TerminalStatuses(t *testing.T) {
	active := &domainAssignment.Assignment{Status: domainAssignment.StatusActive}

	for _, status := range []domainDevice.DeviceStatus{
		domainDevice.StatusUsed,
		domainDevice.StatusRepaired,
		domainDevice.StatusNotRepaired,
		domainDevice.StatusLost,
	} {
		assert.NoError(t, ValidateClose(active, status), "status %s", status)
	}
}

func TestValidateClose_RejectsNonTerminalStatus(t *testing.T) {
	active := &domainAssignment.Assignment{Status: domainAssignment.StatusActive}

	for _, status := range []domainDevice.DeviceStatus{
		domainDevice.StatusNew,
		domainDevice.StatusAssigned,
		domainDevice.StatusDisposed,
		domainDevice.StatusScrapped,
		domainDevice.StatusDonated,
	} {
		assert.ErrorIs(t, ValidateClose(active, status), domainAssignment.ErrInvalidResultingStatus, "status %s", status)
	}
}

func TestValidateClose_AlreadyClosed(t *testing.T) {
	closedAt := time.Now()
	closed := &domainAssignment.Assignment{
		Status:   domainAssignment.StatusClosed,
		ClosedAt: &closedAt,
	}

	err := ValidateClose(closed, domainDevice.StatusUsed)
	assert.ErrorIs(t, err, domainAssignment.ErrNotActive)
}
