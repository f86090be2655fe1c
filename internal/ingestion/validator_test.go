package ingestion

import (
	"testing"
	"time"

	"fleet-device-manager/internal/domain/device"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeStatus_CanonicalCodes(t *testing.T) {
	for _, code := range []string{
		"new", "assigned", "used", "repaired", "not_repaired",
		"lost", "disposed", "scrapped", "donated",
	} {
		status, err := NormalizeStatus(code)
		require.NoError(t, err, "code %s", code)
		assert.Equal(t, device.DeviceStatus(code), status)
	}
}

func TestNormalizeStatus_LegacySpanishLabels(t *testing.T) {
	tests := []struct {
		raw  string
		want device.DeviceStatus
	}{
		{"Nuevo", device.StatusNew},
		{"Asignado", device.StatusAssigned},
		{"Usado", device.StatusUsed},
		{"Reparado", device.StatusRepaired},
		{"No reparado", device.StatusNotRepaired},
		{"Perdido", device.StatusLost},
		{"Desechado", device.StatusDisposed},
		{"Chatarra", device.StatusScrapped},
		{"Donado", device.StatusDonated},
		{"  ASIGNADO  ", device.StatusAssigned},
	}

	for _, tt := range tests {
		status, err := NormalizeStatus(tt.raw)
		require.NoError(t, err, "label %q", tt.raw)
		assert.Equal(t, tt.want, status, "label %q", tt.raw)
	}
}

func TestNormalizeStatus_Unknown(t *testing.T) {
	_, err := NormalizeStatus("en reparación")
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "status", verr.Field)
}

func TestValidatePresence(t *testing.T) {
	active := true

	msg := &PresenceMessage{
		IMEI:      "356938035643809",
		IsActive:  &active,
		Timestamp: time.Now(),
	}
	got, err := ValidatePresence(msg)
	require.NoError(t, err)
	assert.True(t, got)
}

func TestValidatePresence_LegacyAgentStatus(t *testing.T) {
	msg := &PresenceMessage{
		IMEI:      "356938035643809",
		Status:    "Inactivo",
		Timestamp: time.Now(),
	}
	got, err := ValidatePresence(msg)
	require.NoError(t, err)
	assert.False(t, got)
}

func TestValidatePresence_Rejections(t *testing.T) {
	active := true
	now := time.Now()

	tests := []struct {
		name  string
		msg   *PresenceMessage
		field string
	}{
		{"missing imei", &PresenceMessage{IsActive: &active, Timestamp: now}, "imei"},
		{"short imei", &PresenceMessage{IMEI: "12345", IsActive: &active, Timestamp: now}, "imei"},
		{"missing timestamp", &PresenceMessage{IMEI: "356938035643809", IsActive: &active}, "timestamp"},
		{"no activity signal", &PresenceMessage{IMEI: "356938035643809", Timestamp: now}, "is_active"},
		{"unknown agent status", &PresenceMessage{IMEI: "356938035643809", Status: "dormido", Timestamp: now}, "status"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidatePresence(tt.msg)
			require.Error(t, err)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestParsePresenceData_DefaultsTimestamp(t *testing.T) {
	msg, err := ParsePresenceData([]byte(`{"imei":"356938035643809","is_active":true}`))
	require.NoError(t, err)
	assert.False(t, msg.Timestamp.IsZero())
}
