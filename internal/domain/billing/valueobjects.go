package billing

// InvoiceStatus represents the lifecycle state of an invoice.
// Transitions are forward-only: pending/overdue may become paid or
// cancelled; paid and cancelled are terminal.
type InvoiceStatus string

const (
	InvoiceStatusPending   InvoiceStatus = "pending"
	InvoiceStatusPaid      InvoiceStatus = "paid"
	InvoiceStatusOverdue   InvoiceStatus = "overdue"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
)

func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusPending, InvoiceStatusPaid, InvoiceStatusOverdue, InvoiceStatusCancelled:
		return true
	}
	return false
}

func (s InvoiceStatus) String() string {
	return string(s)
}

// CanBePaid reports whether an invoice in this status may transition to paid.
func (s InvoiceStatus) CanBePaid() bool {
	return s == InvoiceStatusPending || s == InvoiceStatusOverdue || s == InvoiceStatusPaid
}
