package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ChargeCode names a recurring billable line for a property
// (garbage fee, security fee, ...).
type ChargeCode struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	PropertyID  string    `gorm:"column:property_id;not null;index" json:"property_id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description"`
	IsActive    bool      `gorm:"column:is_active;not null;default:true" json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

func (ChargeCode) TableName() string {
	return "charge_codes"
}

func (c *ChargeCode) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
