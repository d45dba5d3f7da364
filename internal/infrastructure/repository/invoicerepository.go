package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"netbill/internal/domain/billing"
	"netbill/internal/infrastructure/persistence/mappers"
	"netbill/internal/infrastructure/persistence/models"
	"netbill/internal/shared/db"
	"netbill/internal/shared/logger"
)

type InvoiceRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.InvoiceMapper
	logger logger.Interface
}

func NewInvoiceRepository(db *gorm.DB, logger logger.Interface) billing.InvoiceRepository {
	return &InvoiceRepositoryImpl{
		db:     db,
		mapper: mappers.NewInvoiceMapper(),
		logger: logger,
	}
}

func (r *InvoiceRepositoryImpl) Create(ctx context.Context, invoice *billing.Invoice) error {
	model := r.mapper.ToModel(invoice)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create invoice", "error", err, "number", invoice.Number())
		return fmt.Errorf("failed to create invoice: %w", err)
	}

	invoice.SetID(model.ID)
	r.logger.Infow("invoice created", "invoice_id", model.ID, "number", invoice.Number())
	return nil
}

func (r *InvoiceRepositoryImpl) Update(ctx context.Context, invoice *billing.Invoice) error {
	model := r.mapper.ToModel(invoice)

	result := db.GetTxFromContext(ctx, r.db).Model(&models.InvoiceModel{}).
		Where("id = ?", invoice.ID()).
		Updates(map[string]interface{}{
			"status":        model.Status,
			"paid_at":       model.PaidAt,
			"payment_token": model.PaymentToken,
			"updated_at":    model.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update invoice", "error", result.Error, "invoice_id", invoice.ID())
		return fmt.Errorf("failed to update invoice: %w", result.Error)
	}

	return nil
}

func (r *InvoiceRepositoryImpl) GetByID(ctx context.Context, id uint) (*billing.Invoice, error) {
	var model models.InvoiceModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, billing.ErrInvoiceNotFound
		}
		r.logger.Errorw("failed to get invoice by ID", "error", err, "invoice_id", id)
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *InvoiceRepositoryImpl) GetByNumber(ctx context.Context, number string) (*billing.Invoice, error) {
	var model models.InvoiceModel
	if err := db.GetTxFromContext(ctx, r.db).Where("number = ?", number).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, billing.ErrInvoiceNotFound
		}
		r.logger.Errorw("failed to get invoice by number", "error", err, "number", number)
		return nil, fmt.Errorf("failed to get invoice by number: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

// MarkPaid performs the paid transition as one conditional update. The
// status guard makes concurrent confirmations race on rows affected: the
// winner sees 1, every other caller sees 0 and must treat the invoice as
// already paid.
func (r *InvoiceRepositoryImpl) MarkPaid(ctx context.Context, invoice *billing.Invoice) (bool, error) {
	result := db.GetTxFromContext(ctx, r.db).Model(&models.InvoiceModel{}).
		Where("id = ? AND status <> ?", invoice.ID(), billing.InvoiceStatusPaid).
		Updates(map[string]interface{}{
			"status":     string(billing.InvoiceStatusPaid),
			"paid_at":    invoice.PaidAt(),
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		r.logger.Errorw("failed to mark invoice paid", "error", result.Error, "invoice_id", invoice.ID())
		return false, fmt.Errorf("failed to mark invoice paid: %w", result.Error)
	}

	return result.RowsAffected > 0, nil
}
