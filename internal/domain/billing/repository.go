package billing

import "context"

// InvoiceRepository is the persistence port for invoices.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *Invoice) error
	Update(ctx context.Context, invoice *Invoice) error
	GetByID(ctx context.Context, id uint) (*Invoice, error)
	GetByNumber(ctx context.Context, number string) (*Invoice, error)

	// MarkPaid persists the paid transition as a single conditional update
	// (status <> paid). It returns true when this call performed the
	// transition, false when the invoice was already paid. Concurrent
	// confirmations for the same invoice therefore observe exactly one
	// first transition.
	MarkPaid(ctx context.Context, invoice *Invoice) (bool, error)
}
