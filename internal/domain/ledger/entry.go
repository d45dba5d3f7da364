// Package ledger models append-only accounting entries. Entries are keyed by
// a unique external reference so a source event is recorded at most once.
package ledger

import (
	"fmt"
	"time"
)

// EntryType distinguishes money coming in from money going out.
type EntryType string

const (
	EntryTypeIncome  EntryType = "income"
	EntryTypeExpense EntryType = "expense"
)

// CategoryServicePayment tags income entries created by invoice reconciliation.
const CategoryServicePayment = "service_payment"

// PaymentReference derives the deterministic idempotency key for an
// invoice's ledger entry.
func PaymentReference(invoiceNumber string) string {
	return "invoice:" + invoiceNumber
}

// Entry is a write-once accounting record.
type Entry struct {
	id          uint
	category    string
	entryType   EntryType
	amount      int64
	description string
	entryDate   time.Time
	reference   string
	notes       string
	createdAt   time.Time
}

// NewIncomeEntry creates an income entry. The reference must be unique per
// source event; the repository enforces uniqueness as the last line of defense.
func NewIncomeEntry(category string, amount int64, description string, entryDate time.Time, reference, notes string) (*Entry, error) {
	if category == "" {
		return nil, fmt.Errorf("ledger category is required")
	}
	if amount <= 0 {
		return nil, fmt.Errorf("income amount must be positive")
	}
	if reference == "" {
		return nil, fmt.Errorf("ledger reference is required")
	}

	return &Entry{
		category:    category,
		entryType:   EntryTypeIncome,
		amount:      amount,
		description: description,
		entryDate:   entryDate.UTC(),
		reference:   reference,
		notes:       notes,
		createdAt:   time.Now().UTC(),
	}, nil
}

// ReconstructEntry rebuilds an entry from persistence.
func ReconstructEntry(id uint, category string, entryType EntryType, amount int64, description string, entryDate time.Time, reference, notes string, createdAt time.Time) (*Entry, error) {
	if id == 0 {
		return nil, fmt.Errorf("ledger entry ID cannot be zero")
	}

	return &Entry{
		id:          id,
		category:    category,
		entryType:   entryType,
		amount:      amount,
		description: description,
		entryDate:   entryDate,
		reference:   reference,
		notes:       notes,
		createdAt:   createdAt,
	}, nil
}

// SetID writes back the auto-generated ID after insert.
func (e *Entry) SetID(id uint) { e.id = id }

func (e *Entry) ID() uint             { return e.id }
func (e *Entry) Category() string     { return e.category }
func (e *Entry) Type() EntryType      { return e.entryType }
func (e *Entry) Amount() int64        { return e.amount }
func (e *Entry) Description() string  { return e.description }
func (e *Entry) EntryDate() time.Time { return e.entryDate }
func (e *Entry) Reference() string    { return e.reference }
func (e *Entry) Notes() string        { return e.notes }
func (e *Entry) CreatedAt() time.Time { return e.createdAt }
