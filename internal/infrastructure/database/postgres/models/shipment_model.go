package models

import (
	"time"

	"github.com/google/uuid"
)

// ShipmentModel represents the database model for shipment legs. The unique
// index on (assignment_id, leg) enforces at most one leg per direction.
type ShipmentModel struct {
	ID           uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	AssignmentID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_shipments_assignment_leg"`
	Leg          string     `gorm:"type:varchar(10);not null;uniqueIndex:idx_shipments_assignment_leg"`
	VoucherID    *string    `gorm:"type:varchar(100);index"`
	Status       string     `gorm:"type:varchar(20);not null;default:'pending'"`
	ShippedAt    *time.Time `gorm:"type:timestamp"`
	DeliveredAt  *time.Time `gorm:"type:timestamp"`
	Notes        *string    `gorm:"type:varchar(500)"`
	CreatedAt    time.Time  `gorm:"not null"`
	UpdatedAt    time.Time  `gorm:"not null"`
}

func (ShipmentModel) TableName() string {
	return "shipments"
}
