package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"netbill/internal/domain/notification"
	"netbill/internal/infrastructure/persistence/mappers"
	"netbill/internal/shared/db"
	"netbill/internal/shared/logger"
)

type NotificationLogRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.ProviderMapper
	logger logger.Interface
}

func NewNotificationLogRepository(db *gorm.DB, logger logger.Interface) notification.AttemptLogRepository {
	return &NotificationLogRepositoryImpl{
		db:     db,
		mapper: mappers.NewProviderMapper(),
		logger: logger,
	}
}

func (r *NotificationLogRepositoryImpl) Append(ctx context.Context, record *notification.AttemptRecord) error {
	model := r.mapper.LogToModel(record)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to append notification log", "error", err, "phone", record.Phone())
		return fmt.Errorf("failed to append notification log: %w", err)
	}

	record.SetID(model.ID)
	return nil
}
