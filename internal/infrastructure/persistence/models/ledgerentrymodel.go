package models

import "time"

// LedgerEntryModel rows are append-only; the unique reference makes replays
// of the same source event a constraint violation.
type LedgerEntryModel struct {
	ID          uint      `gorm:"primaryKey"`
	Category    string    `gorm:"size:50;not null;index"`
	EntryType   string    `gorm:"size:10;not null"`
	Amount      int64     `gorm:"not null"`
	Description string    `gorm:"size:255"`
	EntryDate   time.Time `gorm:"not null;index"`
	Reference   string    `gorm:"uniqueIndex;size:100;not null"`
	Notes       string    `gorm:"size:255"`
	CreatedAt   time.Time
}

func (LedgerEntryModel) TableName() string {
	return "ledger_entries"
}
