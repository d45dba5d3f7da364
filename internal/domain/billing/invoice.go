package billing

import (
	"fmt"
	"time"
)

// Invoice is the billing aggregate root. The subscriber reference is weak:
// when a subscriber is deleted its invoices survive, carrying a denormalized
// snapshot of the customer's name, phone and username.
type Invoice struct {
	id               uint
	number           string
	subscriberID     *uint
	customerName     string
	customerPhone    string
	customerUsername string
	amount           int64
	status           InvoiceStatus
	dueDate          time.Time
	paidAt           *time.Time
	paymentToken     string
	createdAt        time.Time
	updatedAt        time.Time
}

// NewInvoice creates a pending invoice. The amount is immutable after creation.
func NewInvoice(
	number string,
	subscriberID *uint,
	customerName string,
	customerPhone string,
	customerUsername string,
	amount int64,
	dueDate time.Time,
) (*Invoice, error) {
	if number == "" {
		return nil, fmt.Errorf("invoice number is required")
	}
	if amount <= 0 {
		return nil, fmt.Errorf("invoice amount must be positive")
	}
	if dueDate.IsZero() {
		return nil, fmt.Errorf("due date is required")
	}

	now := time.Now().UTC()
	return &Invoice{
		number:           number,
		subscriberID:     subscriberID,
		customerName:     customerName,
		customerPhone:    customerPhone,
		customerUsername: customerUsername,
		amount:           amount,
		status:           InvoiceStatusPending,
		dueDate:          dueDate,
		createdAt:        now,
		updatedAt:        now,
	}, nil
}

// InvoiceReconstructParams carries persisted state back into the aggregate.
type InvoiceReconstructParams struct {
	ID               uint
	Number           string
	SubscriberID     *uint
	CustomerName     string
	CustomerPhone    string
	CustomerUsername string
	Amount           int64
	Status           InvoiceStatus
	DueDate          time.Time
	PaidAt           *time.Time
	PaymentToken     string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ReconstructInvoice rebuilds an invoice from persistence.
func ReconstructInvoice(params InvoiceReconstructParams) (*Invoice, error) {
	if params.ID == 0 {
		return nil, fmt.Errorf("invoice ID cannot be zero")
	}
	if params.Number == "" {
		return nil, fmt.Errorf("invoice number is required")
	}
	if !params.Status.IsValid() {
		return nil, fmt.Errorf("invalid invoice status: %s", params.Status)
	}
	if params.Status == InvoiceStatusPaid && params.PaidAt == nil {
		return nil, fmt.Errorf("paid invoice %s has no paid_at timestamp", params.Number)
	}

	return &Invoice{
		id:               params.ID,
		number:           params.Number,
		subscriberID:     params.SubscriberID,
		customerName:     params.CustomerName,
		customerPhone:    params.CustomerPhone,
		customerUsername: params.CustomerUsername,
		amount:           params.Amount,
		status:           params.Status,
		dueDate:          params.DueDate,
		paidAt:           params.PaidAt,
		paymentToken:     params.PaymentToken,
		createdAt:        params.CreatedAt,
		updatedAt:        params.UpdatedAt,
	}, nil
}

// MarkPaid transitions the invoice to paid. Calling it on an already paid
// invoice is a no-op that preserves the original paid_at; cancelled invoices
// cannot be paid.
func (i *Invoice) MarkPaid(paidAt time.Time) error {
	if i.status == InvoiceStatusCancelled {
		return fmt.Errorf("invoice %s is cancelled and cannot be paid", i.number)
	}
	if i.status == InvoiceStatusPaid {
		return nil
	}

	utc := paidAt.UTC()
	i.status = InvoiceStatusPaid
	i.paidAt = &utc
	i.updatedAt = time.Now().UTC()
	return nil
}

// MarkOverdue flags an unpaid invoice past its due date.
func (i *Invoice) MarkOverdue() error {
	if i.status != InvoiceStatusPending {
		return fmt.Errorf("only pending invoices can become overdue, current status: %s", i.status)
	}
	i.status = InvoiceStatusOverdue
	i.updatedAt = time.Now().UTC()
	return nil
}

// Cancel voids an unpaid invoice.
func (i *Invoice) Cancel() error {
	if i.status == InvoiceStatusPaid {
		return fmt.Errorf("paid invoice %s cannot be cancelled", i.number)
	}
	i.status = InvoiceStatusCancelled
	i.updatedAt = time.Now().UTC()
	return nil
}

// SetPaymentToken records the opaque gateway token for this invoice.
func (i *Invoice) SetPaymentToken(token string) {
	i.paymentToken = token
	i.updatedAt = time.Now().UTC()
}

// SetID writes back the auto-generated ID after insert.
func (i *Invoice) SetID(id uint) {
	i.id = id
}

func (i *Invoice) ID() uint                 { return i.id }
func (i *Invoice) Number() string           { return i.number }
func (i *Invoice) SubscriberID() *uint      { return i.subscriberID }
func (i *Invoice) CustomerName() string     { return i.customerName }
func (i *Invoice) CustomerPhone() string    { return i.customerPhone }
func (i *Invoice) CustomerUsername() string { return i.customerUsername }
func (i *Invoice) Amount() int64            { return i.amount }
func (i *Invoice) Status() InvoiceStatus    { return i.status }
func (i *Invoice) DueDate() time.Time       { return i.dueDate }
func (i *Invoice) PaidAt() *time.Time       { return i.paidAt }
func (i *Invoice) PaymentToken() string     { return i.paymentToken }
func (i *Invoice) CreatedAt() time.Time     { return i.createdAt }
func (i *Invoice) UpdatedAt() time.Time     { return i.updatedAt }
