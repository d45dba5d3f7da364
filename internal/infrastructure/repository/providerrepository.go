package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"netbill/internal/domain/notification"
	"netbill/internal/infrastructure/persistence/mappers"
	"netbill/internal/infrastructure/persistence/models"
	"netbill/internal/shared/db"
	"netbill/internal/shared/logger"
)

type ProviderRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.ProviderMapper
	logger logger.Interface
}

func NewProviderRepository(db *gorm.DB, logger logger.Interface) notification.ProviderRepository {
	return &ProviderRepositoryImpl{
		db:     db,
		mapper: mappers.NewProviderMapper(),
		logger: logger,
	}
}

func (r *ProviderRepositoryImpl) ListActive(ctx context.Context) ([]*notification.Provider, error) {
	var providerModels []*models.NotificationProviderModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("is_active = ?", true).
		Order("priority ASC, id ASC").
		Find(&providerModels).Error
	if err != nil {
		r.logger.Errorw("failed to list active notification providers", "error", err)
		return nil, fmt.Errorf("failed to list active notification providers: %w", err)
	}

	return r.mapper.ToEntities(providerModels)
}
