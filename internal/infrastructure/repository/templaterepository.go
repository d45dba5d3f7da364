package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"netbill/internal/domain/notification"
	"netbill/internal/infrastructure/persistence/models"
	"netbill/internal/shared/db"
	"netbill/internal/shared/logger"
)

type TemplateRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewTemplateRepository(db *gorm.DB, logger logger.Interface) notification.TemplateRepository {
	return &TemplateRepositoryImpl{
		db:     db,
		logger: logger,
	}
}

func (r *TemplateRepositoryImpl) GetByType(ctx context.Context, templateType string) (*notification.Template, error) {
	var model models.MessageTemplateModel
	if err := db.GetTxFromContext(ctx, r.db).Where("type = ?", templateType).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notification.ErrTemplateNotFound
		}
		r.logger.Errorw("failed to get message template", "error", err, "type", templateType)
		return nil, fmt.Errorf("failed to get message template: %w", err)
	}

	return notification.ReconstructTemplate(model.ID, model.Type, model.Content, model.UpdatedAt), nil
}
