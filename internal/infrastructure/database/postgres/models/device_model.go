package models

import (
	"time"

	"github.com/google/uuid"
)

// DeviceModel represents the database model for the device registry.
type DeviceModel struct {
	ID                  uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	IMEI                string     `gorm:"type:varchar(15);not null;uniqueIndex"`
	ModelID             *uuid.UUID `gorm:"type:uuid;index"`
	DistributorID       *uuid.UUID `gorm:"type:uuid;index"`
	IsBackup            bool       `gorm:"not null;default:false"`
	BackupDistributorID *uuid.UUID `gorm:"type:uuid"`
	OwnerName           *string    `gorm:"type:varchar(150)"`
	Status              string     `gorm:"type:varchar(20);not null;default:'new'"`
	Deleted             bool       `gorm:"not null;default:false;index"`
	DeletedReason       *string    `gorm:"type:varchar(500)"`
	DeletedAt           *time.Time `gorm:"type:timestamp"`
	CreatedAt           time.Time  `gorm:"not null"`
	UpdatedAt           time.Time  `gorm:"not null"`
}

func (DeviceModel) TableName() string {
	return "devices"
}
