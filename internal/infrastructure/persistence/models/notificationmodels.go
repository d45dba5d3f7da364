package models

import (
	"time"

	"gorm.io/datatypes"
)

// NotificationProviderModel stores one WhatsApp gateway account. Credentials
// hold provider-specific keys (token, api_key, username, password) as JSON.
type NotificationProviderModel struct {
	ID          uint           `gorm:"primaryKey"`
	Name        string         `gorm:"uniqueIndex;size:100;not null"`
	Type        string         `gorm:"size:20;not null"`
	Endpoint    string         `gorm:"size:255;not null"`
	Credentials datatypes.JSON `gorm:"not null"`
	SenderID    string         `gorm:"size:64"`
	Priority    int            `gorm:"not null;default:0;index"`
	IsActive    bool           `gorm:"not null;default:true;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (NotificationProviderModel) TableName() string {
	return "notification_providers"
}

// NotificationLogModel is the append-only delivery audit trail.
type NotificationLogModel struct {
	ID           uint      `gorm:"primaryKey"`
	Phone        string    `gorm:"size:32;not null;index"`
	Message      string    `gorm:"type:text;not null"`
	Status       string    `gorm:"size:10;not null;index"`
	ProviderName string    `gorm:"size:100;not null"`
	ProviderType string    `gorm:"size:20;not null"`
	Response     string    `gorm:"type:text"`
	SentAt       time.Time `gorm:"not null;index"`
	CreatedAt    time.Time
}

func (NotificationLogModel) TableName() string {
	return "notification_logs"
}

type MessageTemplateModel struct {
	ID        uint   `gorm:"primaryKey"`
	Type      string `gorm:"uniqueIndex;size:50;not null"`
	Content   string `gorm:"type:text;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (MessageTemplateModel) TableName() string {
	return "message_templates"
}
