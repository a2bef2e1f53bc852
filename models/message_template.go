package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MessageTemplate holds a reusable body with {placeholder} variables.
// System templates are seeded and cannot be deleted.
type MessageTemplate struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Channel   string    `gorm:"not null;default:sms" json:"channel"`
	Subject   string    `json:"subject"`
	Body      string    `gorm:"not null" json:"body"`
	IsSystem  int       `gorm:"column:is_system;not null;default:0" json:"is_system"`
	CreatedAt time.Time `json:"created_at"`
}

func (MessageTemplate) TableName() string {
	return "message_templates"
}

func (m *MessageTemplate) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
