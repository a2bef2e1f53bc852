package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MessageRecipient tracks one tenant's delivery inside a bulk send. The
// provider reference ties delivery reports back to this row.
type MessageRecipient struct {
	ID            string    `gorm:"primaryKey" json:"id"`
	BulkMessageID string    `gorm:"column:bulk_message_id;not null;index" json:"bulk_message_id"`
	TenantID      string    `gorm:"column:tenant_id;index" json:"tenant_id"`
	Recipient     string    `gorm:"not null" json:"recipient"`
	Status        string    `gorm:"not null;default:queued" json:"status"`
	ProviderRef   string    `gorm:"column:provider_ref;index" json:"provider_ref"`
	Error         string    `json:"error"`
	SentAt        time.Time `gorm:"column:sent_at" json:"sent_at"`
	DeliveredAt   time.Time `gorm:"column:delivered_at" json:"delivered_at"`
	CreatedAt     time.Time `json:"created_at"`
}

func (MessageRecipient) TableName() string {
	return "message_recipients"
}

func (m *MessageRecipient) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
