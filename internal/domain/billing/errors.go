package billing

import "errors"

var (
	// ErrInvoiceNotFound is returned by repositories when no invoice matches.
	ErrInvoiceNotFound = errors.New("invoice not found")
)
