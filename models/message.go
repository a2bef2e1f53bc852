package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Message channel and delivery statuses for single sends.
const (
	ChannelSMS   = "sms"
	ChannelEmail = "email"

	MessageQueued    = "queued"
	MessageSent      = "sent"
	MessageDelivered = "delivered"
	MessageFailed    = "failed"
)

// Message is a single outbound SMS or email to one tenant.
type Message struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	TenantID    string    `gorm:"column:tenant_id;index" json:"tenant_id"`
	Channel     string    `gorm:"not null;default:sms" json:"channel"`
	Recipient   string    `gorm:"not null" json:"recipient"`
	Subject     string    `json:"subject"`
	Body        string    `gorm:"not null" json:"body"`
	Status      string    `gorm:"not null;default:queued" json:"status"`
	ProviderRef string    `gorm:"column:provider_ref" json:"provider_ref"`
	Error       string    `json:"error"`
	SentAt      time.Time `gorm:"column:sent_at" json:"sent_at"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Message) TableName() string {
	return "messages"
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
