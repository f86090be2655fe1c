package ingestion

import (
	"fmt"
	"strings"

	"fleet-device-manager/internal/domain/device"
	"fleet-device-manager/pkg/utils"
)

// ValidationError represents a per-field feed validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error [%s]: %s", e.Field, e.Message)
}

// statusAliases maps the legacy accented Spanish labels still emitted by the
// old connectors and spreadsheets onto canonical status codes. The core only
// ever sees canonical codes; this table lives at the ingestion boundary and
// nowhere else.
var statusAliases = map[string]device.DeviceStatus{
	"nuevo":       device.StatusNew,
	"asignado":    device.StatusAssigned,
	"usado":       device.StatusUsed,
	"reparado":    device.StatusRepaired,
	"no reparado": device.StatusNotRepaired,
	"perdido":     device.StatusLost,
	"desechado":   device.StatusDisposed,
	"chatarra":    device.StatusScrapped,
	"donado":      device.StatusDonated,
}

// NormalizeStatus maps a raw status string, canonical code or legacy Spanish
// label, onto a canonical status code.
func NormalizeStatus(raw string) (device.DeviceStatus, error) {
	trimmed := strings.TrimSpace(raw)

	if status := device.DeviceStatus(strings.ToLower(trimmed)); status.IsValid() {
		return status, nil
	}
	if status, ok := statusAliases[strings.ToLower(trimmed)]; ok {
		return status, nil
	}
	return "", &ValidationError{Field: "status", Message: fmt.Sprintf("unknown status %q", raw)}
}

// activeAliases covers the legacy connector's agent-state labels.
var activeAliases = map[string]bool{
	"activo":   true,
	"active":   true,
	"inactivo": false,
	"inactive": false,
}

// ValidatePresence validates a presence message and resolves its activity
// flag.
func ValidatePresence(msg *PresenceMessage) (bool, error) {
	if msg.IMEI == "" {
		return false, &ValidationError{Field: "imei", Message: "imei is required"}
	}
	if !utils.IsValidIMEI(msg.IMEI) {
		return false, &ValidationError{Field: "imei", Message: "imei must be 15 digits"}
	}
	if msg.Timestamp.IsZero() {
		return false, &ValidationError{Field: "timestamp", Message: "timestamp is required"}
	}

	if msg.IsActive != nil {
		return *msg.IsActive, nil
	}
	if msg.Status != "" {
		active, ok := activeAliases[strings.ToLower(strings.TrimSpace(msg.Status))]
		if !ok {
			return false, &ValidationError{Field: "status", Message: fmt.Sprintf("unknown agent status %q", msg.Status)}
		}
		return active, nil
	}
	return false, &ValidationError{Field: "is_active", Message: "is_active or status is required"}
}
