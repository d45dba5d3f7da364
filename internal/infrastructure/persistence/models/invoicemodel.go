package models

import "time"

// InvoiceModel keeps a denormalized snapshot of the customer's contact data
// so invoices stay readable after the subscriber row is gone.
type InvoiceModel struct {
	ID               uint      `gorm:"primaryKey"`
	Number           string    `gorm:"uniqueIndex;size:64;not null"`
	SubscriberID     *uint     `gorm:"index"`
	CustomerName     string    `gorm:"size:255"`
	CustomerPhone    string    `gorm:"size:32"`
	CustomerUsername string    `gorm:"size:64"`
	Amount           int64     `gorm:"not null"`
	Status           string    `gorm:"size:20;not null;index"`
	DueDate          time.Time `gorm:"not null"`
	PaidAt           *time.Time
	PaymentToken     string `gorm:"size:128"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (InvoiceModel) TableName() string {
	return "invoices"
}
