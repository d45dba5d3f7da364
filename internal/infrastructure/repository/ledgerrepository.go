package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"netbill/internal/domain/ledger"
	"netbill/internal/infrastructure/persistence/models"
	"netbill/internal/shared/db"
	"netbill/internal/shared/logger"
)

type LedgerRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewLedgerRepository(db *gorm.DB, logger logger.Interface) ledger.Repository {
	return &LedgerRepositoryImpl{
		db:     db,
		logger: logger,
	}
}

func (r *LedgerRepositoryImpl) Create(ctx context.Context, entry *ledger.Entry) error {
	model := &models.LedgerEntryModel{
		Category:    entry.Category(),
		EntryType:   string(entry.Type()),
		Amount:      entry.Amount(),
		Description: entry.Description(),
		EntryDate:   entry.EntryDate(),
		Reference:   entry.Reference(),
		Notes:       entry.Notes(),
		CreatedAt:   entry.CreatedAt(),
	}

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create ledger entry", "error", err, "reference", entry.Reference())
		return fmt.Errorf("failed to create ledger entry: %w", err)
	}

	entry.SetID(model.ID)
	return nil
}

func (r *LedgerRepositoryImpl) ExistsByReference(ctx context.Context, reference string) (bool, error) {
	var count int64
	err := db.GetTxFromContext(ctx, r.db).Model(&models.LedgerEntryModel{}).
		Where("reference = ?", reference).
		Count(&count).Error
	if err != nil {
		r.logger.Errorw("failed to check ledger reference", "error", err, "reference", reference)
		return false, fmt.Errorf("failed to check ledger reference: %w", err)
	}

	return count > 0, nil
}
