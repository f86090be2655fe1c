package projection

import (
	"testing"

	"fleet-device-manager/internal/domain/assignment"
	"fleet-device-manager/internal/domain/device"
	"fleet-device-manager/internal/domain/shipment"
	"fleet-device-manager/internal/domain/soti"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func newDevice(status device.DeviceStatus) *device.Device {
	return &device.Device{IMEI: "123456789012345", Status: status}
}

func activeAssignment() *assignment.Assignment {
	return &assignment.Assignment{Status: assignment.StatusActive}
}

func closedAssignment() *assignment.Assignment {
	return &assignment.Assignment{Status: assignment.StatusClosed}
}

func TestProject_LiveOutboundReadsAsInTransit(t *testing.T) {
	label := Project(Input{
		Device:           newDevice(device.StatusAssigned),
		ActiveAssignment: activeAssignment(),
		OutboundLeg: &shipment.Shipment{
			Leg:       shipment.LegOutbound,
			VoucherID: strPtr("V-1001"),
			Status:    shipment.StatusShipped,
		},
	})
	assert.Equal(t, LabelInTransit, label)
}

func TestProject_DeliveredOutboundReadsAsAssigned(t *testing.T) {
	label := Project(Input{
		Device:           newDevice(device.StatusAssigned),
		ActiveAssignment: activeAssignment(),
		OutboundLeg: &shipment.Shipment{
			Leg:       shipment.LegOutbound,
			VoucherID: strPtr("V-1001"),
			Status:    shipment.StatusDelivered,
		},
	})
	assert.Equal(t, LabelAssigned, label)
}

func TestProject_AssignmentWinsOverSotiPresence(t *testing.T) {
	label := Project(Input{
		Device:           newDevice(device.StatusAssigned),
		ActiveAssignment: activeAssignment(),
		Overlay:          soti.Overlay{IsInSoti: true},
	})
	assert.Equal(t, LabelAssigned, label)
}

func TestProject_ClosedAssignmentBeatsSoti(t *testing.T) {
	label := Project(Input{
		Device:         newDevice(device.StatusUsed),
		LastAssignment: closedAssignment(),
		Overlay:        soti.Overlay{IsInSoti: true},
	})
	assert.Equal(t, LabelClosed, label)
}

func TestProject_SotiPresenceWithoutCustody(t *testing.T) {
	label := Project(Input{
		Device:  newDevice(device.StatusNew),
		Overlay: soti.Overlay{IsInSoti: true},
	})
	assert.Equal(t, LabelPendingSoti, label)
}

func TestProject_LostAndAvailable(t *testing.T) {
	assert.Equal(t, LabelLost, Project(Input{Device: newDevice(device.StatusLost)}))
	assert.Equal(t, LabelAvailable, Project(Input{Device: newDevice(device.StatusNew)}))
}

func TestProject_FallbackToRawStatusLabel(t *testing.T) {
	assert.Equal(t, Label("Usado"), Project(Input{Device: newDevice(device.StatusUsed)}))
	assert.Equal(t, Label("Chatarra"), Project(Input{Device: newDevice(device.StatusScrapped)}))
}

func TestProject_TotalOverAllStatuses(t *testing.T) {
	statuses := []device.DeviceStatus{
		device.StatusNew, device.StatusAssigned, device.StatusUsed,
		device.StatusRepaired, device.StatusNotRepaired, device.StatusLost,
		device.StatusDisposed, device.StatusScrapped, device.StatusDonated,
	}
	for _, st := range statuses {
		label := Project(Input{Device: newDevice(st)})
		assert.NotEmpty(t, label, "status %s must project to a label", st)
	}
}

func TestProject_Idempotent(t *testing.T) {
	in := Input{
		Device:           newDevice(device.StatusAssigned),
		ActiveAssignment: activeAssignment(),
		Overlay:          soti.Overlay{IsInSoti: true},
	}
	first := Project(in)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Project(in))
	}
}

func TestProject_DeletedNewDeviceDoesNotReadAvailable(t *testing.T) {
	d := newDevice(device.StatusNew)
	d.Deleted = true
	assert.Equal(t, Label("Nuevo"), Project(Input{Device: d}))
}
