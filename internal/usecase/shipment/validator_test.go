package shipment

import (
	"testing"

	domainAssignment "fleet-device-manager/internal/domain/assignment"
	domainShipment "fleet-device-manager/internal/domain/shipment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTransition(t *testing.T) {
	tests := []struct {
		name    string
		current domainShipment.ShipmentStatus
		next    domainShipment.ShipmentStatus
		wantErr bool
	}{
		{"pending to shipped", domainShipment.StatusPending, domainShipment.StatusShipped, false},
		{"shipped to delivered", domainShipment.StatusShipped, domainShipment.StatusDelivered, false},
		{"pending to delivered skips a step", domainShipment.StatusPending, domainShipment.StatusDelivered, true},
		{"shipped back to pending", domainShipment.StatusShipped, domainShipment.StatusPending, true},
		{"delivered to shipped", domainShipment.StatusDelivered, domainShipment.StatusShipped, true},
		{"delivered is final", domainShipment.StatusDelivered, domainShipment.StatusDelivered, true},
		{"no self transition", domainShipment.StatusPending, domainShipment.StatusPending, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTransition(tt.current, tt.next)
			if tt.wantErr {
				assert.ErrorIs(t, err, domainShipment.ErrInvalidTransition)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateStartReturn_NotExpected(t *testing.T) {
	assignment := &domainAssignment.Assignment{ExpectsReturn: false}

	err := ValidateStartReturn(assignment, nil)
	assert.ErrorIs(t, err, domainShipment.ErrReturnNotExpected)
}

func TestValidateStartReturn_OutboundStillInTransit(t *testing.T) {
	assignment := &domainAssignment.Assignment{ExpectsReturn: true}
	outbound := &domainShipment.Shipment{
		Leg:    domainShipment.LegOutbound,
		Status: domainShipment.StatusShipped,
	}

	err := ValidateStartReturn(assignment, outbound)
	assert.ErrorIs(t, err, domainShipment.ErrOutboundNotDelivered)
}

func TestValidateStartReturn_OutboundDelivered(t *testing.T) {
	assignment := &domainAssignment.Assignment{ExpectsReturn: true}
	outbound := &domainShipment.Shipment{
		Leg:    domainShipment.LegOutbound,
		Status: domainShipment.StatusDelivered,
	}

	require.NoError(t, ValidateStartReturn(assignment, outbound))
}

func TestValidateStartReturn_NoOutboundLeg(t *testing.T) {
	// A return can exist without an outbound leg when the replacement was
	// handed over in person.
	assignment := &domainAssignment.Assignment{ExpectsReturn: true}

	require.NoError(t, ValidateStartReturn(assignment, nil))
}

func TestValidateConfirmReturn(t *testing.T) {
	outbound := &domainShipment.Shipment{
		Leg:    domainShipment.LegOutbound,
		Status: domainShipment.StatusShipped,
	}
	assert.ErrorIs(t, ValidateConfirmReturn(outbound), domainShipment.ErrNotReturnLeg)

	pendingReturn := &domainShipment.Shipment{
		Leg:    domainShipment.LegReturn,
		Status: domainShipment.StatusPending,
	}
	assert.ErrorIs(t, ValidateConfirmReturn(pendingReturn), domainShipment.ErrInvalidTransition)

	shippedReturn := &domainShipment.Shipment{
		Leg:    domainShipment.LegReturn,
		Status: domainShipment.StatusShipped,
	}
	assert.NoError(t, ValidateConfirmReturn(shippedReturn))
}
