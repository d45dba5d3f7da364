package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInvoice(t *testing.T) *Invoice {
	t.Helper()
	subID := uint(7)
	inv, err := NewInvoice("INV-2024-0001", &subID, "Budi Santoso", "081234567890", "budi", 150000, time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return inv
}

func TestNewInvoice_Validation(t *testing.T) {
	tests := []struct {
		name    string
		number  string
		amount  int64
		dueDate time.Time
		wantErr string
	}{
		{
			name:    "missing number",
			amount:  1000,
			dueDate: time.Now(),
			wantErr: "invoice number is required",
		},
		{
			name:    "zero amount",
			number:  "INV-1",
			dueDate: time.Now(),
			wantErr: "invoice amount must be positive",
		},
		{
			name:    "negative amount",
			number:  "INV-1",
			amount:  -5,
			dueDate: time.Now(),
			wantErr: "invoice amount must be positive",
		},
		{
			name:    "missing due date",
			number:  "INV-1",
			amount:  1000,
			wantErr: "due date is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewInvoice(tt.number, nil, "", "", "", tt.amount, tt.dueDate)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNewInvoice_StartsPending(t *testing.T) {
	inv := validInvoice(t)
	assert.Equal(t, InvoiceStatusPending, inv.Status())
	assert.Nil(t, inv.PaidAt())
}

func TestInvoice_MarkPaid(t *testing.T) {
	inv := validInvoice(t)
	paidAt := time.Date(2024, 1, 20, 10, 30, 0, 0, time.UTC)

	require.NoError(t, inv.MarkPaid(paidAt))
	assert.Equal(t, InvoiceStatusPaid, inv.Status())
	require.NotNil(t, inv.PaidAt())
	assert.Equal(t, paidAt, *inv.PaidAt())
}

func TestInvoice_MarkPaid_AlreadyPaidKeepsOriginalTimestamp(t *testing.T) {
	inv := validInvoice(t)
	first := time.Date(2024, 1, 20, 10, 30, 0, 0, time.UTC)
	second := first.Add(48 * time.Hour)

	require.NoError(t, inv.MarkPaid(first))
	require.NoError(t, inv.MarkPaid(second))

	require.NotNil(t, inv.PaidAt())
	assert.Equal(t, first, *inv.PaidAt())
}

func TestInvoice_MarkPaid_FromOverdue(t *testing.T) {
	inv := validInvoice(t)
	require.NoError(t, inv.MarkOverdue())
	require.NoError(t, inv.MarkPaid(time.Now().UTC()))
	assert.Equal(t, InvoiceStatusPaid, inv.Status())
}

func TestInvoice_MarkPaid_CancelledRejected(t *testing.T) {
	inv := validInvoice(t)
	require.NoError(t, inv.Cancel())

	err := inv.MarkPaid(time.Now().UTC())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cancelled")
	assert.Nil(t, inv.PaidAt())
}

func TestInvoice_Cancel_PaidRejected(t *testing.T) {
	inv := validInvoice(t)
	require.NoError(t, inv.MarkPaid(time.Now().UTC()))
	require.Error(t, inv.Cancel())
}

func TestReconstructInvoice_PaidWithoutTimestampRejected(t *testing.T) {
	_, err := ReconstructInvoice(InvoiceReconstructParams{
		ID:      1,
		Number:  "INV-1",
		Amount:  1000,
		Status:  InvoiceStatusPaid,
		DueDate: time.Now(),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "paid_at")
}
