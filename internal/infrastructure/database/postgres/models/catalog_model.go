package models

import (
	"time"

	"github.com/google/uuid"
)

// ModelModel represents the database model for handset models.
type ModelModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Manufacturer string    `gorm:"type:varchar(100);not null"`
	Name         string    `gorm:"type:varchar(150);not null"`
	CreatedAt    time.Time `gorm:"not null"`
}

func (ModelModel) TableName() string {
	return "models"
}

// DistributorModel represents the database model for distributors.
type DistributorModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name      string    `gorm:"type:varchar(150);not null;uniqueIndex"`
	Region    string    `gorm:"type:varchar(100)"`
	CreatedAt time.Time `gorm:"not null"`
}

func (DistributorModel) TableName() string {
	return "distributors"
}
