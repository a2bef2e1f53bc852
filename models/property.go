package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Property struct {
	ID            string    `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"not null" json:"name"`
	Address       string    `gorm:"not null" json:"address"`
	LandlordName  string    `gorm:"column:landlord_name;not null" json:"landlord_name"`
	LandlordPhone string    `gorm:"column:landlord_phone" json:"landlord_phone"`
	LandlordEmail string    `gorm:"column:landlord_email" json:"landlord_email"`
	LandlordID    string    `gorm:"column:landlord_id" json:"landlord_id"`
	AgentID       string    `gorm:"column:agent_id" json:"agent_id"`
	Status        string    `gorm:"not null;default:active" json:"status"` // active, inactive
	CreatedAt     time.Time `json:"created_at"`
}

func (Property) TableName() string {
	return "properties"
}

func (p *Property) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
