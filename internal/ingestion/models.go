package ingestion

import (
	"encoding/json"
	"time"
)

// PresenceMessage is one MDM enrollment snapshot as published by the SOTI
// connector. Activity arrives either as the is_active boolean or, from the
// legacy connector, as a Spanish status label.
type PresenceMessage struct {
	IMEI         string     `json:"imei"`
	DeviceName   *string    `json:"device_name"`
	AssignedUser *string    `json:"assigned_user"`
	IsActive     *bool      `json:"is_active"`
	Status       string     `json:"status"`
	LastSync     *time.Time `json:"last_sync"`
	Timestamp    time.Time  `json:"timestamp"`
}

// ParsePresenceData parses a JSON payload into a PresenceMessage.
func ParsePresenceData(payload []byte) (*PresenceMessage, error) {
	var msg PresenceMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		return nil, err
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now()
	}
	return &msg, nil
}
