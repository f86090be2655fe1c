package projection

import (
	"fleet-device-manager/internal/domain/assignment"
	"fleet-device-manager/internal/domain/device"
	"fleet-device-manager/internal/domain/shipment"
	"fleet-device-manager/internal/domain/soti"
)

// Label is the single human-facing state derived for a device. It is
// recomputed on every read and never persisted.
type Label string

const (
	LabelInTransit   Label = "En envío"
	LabelAssigned    Label = "Asignado"
	LabelClosed      Label = "Cerrada"
	LabelPendingSoti Label = "Pendiente SOTI"
	LabelLost        Label = "Perdido"
	LabelAvailable   Label = "Disponible"
)

// Input gathers everything the projection may consult. ActiveAssignment,
// LastAssignment and OutboundLeg are nil when absent.
type Input struct {
	Device           *device.Device
	ActiveAssignment *assignment.Assignment
	LastAssignment   *assignment.Assignment
	OutboundLeg      *shipment.Shipment
	Overlay          soti.Overlay
}

// Project derives the state label for a device. It is pure and total: the
// same input always yields the same label and no combination falls through
// unlabeled.
//
// Precedence resolves ambiguous combinations: an active assignment with a
// live outbound leg reads as in transit until delivery, a plain active
// assignment beats MDM presence, and MDM presence without custody surfaces
// as pending enrollment cleanup.
func Project(in Input) Label {
	if in.ActiveAssignment != nil && in.OutboundLeg != nil && in.OutboundLeg.IsLive() {
		return LabelInTransit
	}
	if in.ActiveAssignment != nil {
		return LabelAssigned
	}
	if in.LastAssignment != nil && in.LastAssignment.Status == assignment.StatusClosed {
		return LabelClosed
	}
	if in.Overlay.IsInSoti {
		return LabelPendingSoti
	}
	if in.Device.Status == device.StatusLost {
		return LabelLost
	}
	if in.Device.Status == device.StatusNew && !in.Device.Deleted {
		return LabelAvailable
	}
	return Label(in.Device.Status.Label())
}
