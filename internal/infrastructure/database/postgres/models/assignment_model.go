package models

import (
	"time"

	"github.com/google/uuid"
)

// AssignmentModel represents the database model for custody periods. The
// partial unique index enforces at most one active assignment per device at
// the storage level.
type AssignmentModel struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	DeviceID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_assignments_device_active,where:status = 'active'"`
	Type     string    `gorm:"type:varchar(20);not null"`
	Status   string    `gorm:"type:varchar(20);not null;index"`

	AssigneeName     string     `gorm:"type:varchar(150);not null"`
	AssigneePhone    string     `gorm:"type:varchar(30)"`
	AssigneeEmail    string     `gorm:"type:varchar(150)"`
	AssigneeRole     string     `gorm:"type:varchar(100)"`
	DistributorID    *uuid.UUID `gorm:"type:uuid;index"`
	DeliveryLocation string     `gorm:"type:varchar(300)"`

	TicketRef          *string `gorm:"type:varchar(50);index"`
	ReplacementReason  *string `gorm:"type:varchar(20)"`
	ExpectsReturn      bool    `gorm:"not null;default:false"`
	ExpectedReturnIMEI *string `gorm:"type:varchar(15)"`

	AssignedAt      time.Time  `gorm:"not null;index"`
	ClosedAt        *time.Time `gorm:"type:timestamp"`
	CloseReason     *string    `gorm:"type:varchar(500)"`
	ResultingStatus *string    `gorm:"type:varchar(20)"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (AssignmentModel) TableName() string {
	return "assignments"
}
