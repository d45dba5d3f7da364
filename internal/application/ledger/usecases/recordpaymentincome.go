package usecases

import (
	"context"
	"fmt"
	"time"

	"netbill/internal/domain/ledger"
	"netbill/internal/shared/logger"
)

// RecordPaymentIncomeCommand carries the facts of a settled invoice into
// the ledger.
type RecordPaymentIncomeCommand struct {
	InvoiceNumber string
	CustomerName  string
	Amount        int64
	PaidAt        time.Time
}

// RecordPaymentIncomeUseCase writes one income entry per paid invoice.
// The entry reference derives from the invoice number, so replays of the
// same payment are detected and skipped instead of double-counted.
type RecordPaymentIncomeUseCase struct {
	ledgerRepo ledger.Repository
	logger     logger.Interface
}

func NewRecordPaymentIncomeUseCase(ledgerRepo ledger.Repository, logger logger.Interface) *RecordPaymentIncomeUseCase {
	return &RecordPaymentIncomeUseCase{
		ledgerRepo: ledgerRepo,
		logger:     logger,
	}
}

// Execute records the payment. It returns (false, nil) when the invoice was
// already recorded, (true, nil) on a fresh insert.
func (uc *RecordPaymentIncomeUseCase) Execute(ctx context.Context, cmd RecordPaymentIncomeCommand) (bool, error) {
	reference := ledger.PaymentReference(cmd.InvoiceNumber)

	exists, err := uc.ledgerRepo.ExistsByReference(ctx, reference)
	if err != nil {
		return false, fmt.Errorf("failed to check ledger reference %s: %w", reference, err)
	}
	if exists {
		uc.logger.Infow("ledger entry already recorded, skipping",
			"reference", reference)
		return false, nil
	}

	description := fmt.Sprintf("Payment for invoice %s", cmd.InvoiceNumber)
	notes := ""
	if cmd.CustomerName != "" {
		notes = fmt.Sprintf("Customer: %s", cmd.CustomerName)
	}

	entry, err := ledger.NewIncomeEntry(
		ledger.CategoryServicePayment,
		cmd.Amount,
		description,
		cmd.PaidAt,
		reference,
		notes,
	)
	if err != nil {
		return false, fmt.Errorf("failed to build ledger entry: %w", err)
	}

	if err := uc.ledgerRepo.Create(ctx, entry); err != nil {
		return false, fmt.Errorf("failed to create ledger entry %s: %w", reference, err)
	}

	uc.logger.Infow("payment income recorded",
		"reference", reference,
		"amount", cmd.Amount,
	)
	return true, nil
}
