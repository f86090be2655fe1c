package models

import (
	"time"

	"github.com/google/uuid"
)

// SotiPresenceModel represents the database model for MDM presence records.
// Several rows may exist per IMEI; re-enrollments are distinct records keyed
// by (imei, device_name).
type SotiPresenceModel struct {
	ID           uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	IMEI         string     `gorm:"type:varchar(15);not null;uniqueIndex:idx_soti_imei_name"`
	DeviceName   *string    `gorm:"type:varchar(150);uniqueIndex:idx_soti_imei_name"`
	AssignedUser *string    `gorm:"type:varchar(150)"`
	IsActive     bool       `gorm:"not null;default:false;index"`
	LastSyncAt   *time.Time `gorm:"type:timestamp"`
	CreatedAt    time.Time  `gorm:"not null"`
	UpdatedAt    time.Time  `gorm:"not null;index"`
}

func (SotiPresenceModel) TableName() string {
	return "soti_presence"
}
