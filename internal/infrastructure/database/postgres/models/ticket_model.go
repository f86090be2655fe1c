package models

import (
	"time"

	"github.com/google/uuid"
)

// TicketModel represents the database model for imported demand tickets.
type TicketModel struct {
	ID            uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ExternalRef   string     `gorm:"type:varchar(50);not null;uniqueIndex"`
	DistributorID uuid.UUID  `gorm:"type:uuid;not null;index"`
	Category      string     `gorm:"type:varchar(30);not null;index"`
	OpenedAt      time.Time  `gorm:"not null;index"`
	CreatedAt     time.Time  `gorm:"not null"`
}

func (TicketModel) TableName() string {
	return "tickets"
}
