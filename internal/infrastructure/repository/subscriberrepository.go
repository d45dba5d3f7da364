package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"netbill/internal/domain/subscriber"
	"netbill/internal/infrastructure/persistence/mappers"
	"netbill/internal/infrastructure/persistence/models"
	"netbill/internal/shared/db"
	"netbill/internal/shared/logger"
)

type SubscriberRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.SubscriberMapper
	logger logger.Interface
}

func NewSubscriberRepository(db *gorm.DB, logger logger.Interface) subscriber.SubscriberRepository {
	return &SubscriberRepositoryImpl{
		db:     db,
		mapper: mappers.NewSubscriberMapper(),
		logger: logger,
	}
}

func (r *SubscriberRepositoryImpl) Create(ctx context.Context, sub *subscriber.Subscriber) error {
	model := r.mapper.ToModel(sub)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create subscriber", "error", err, "username", sub.Username())
		return fmt.Errorf("failed to create subscriber: %w", err)
	}

	sub.SetID(model.ID)
	r.logger.Infow("subscriber created", "subscriber_id", model.ID, "username", sub.Username())
	return nil
}

func (r *SubscriberRepositoryImpl) Update(ctx context.Context, sub *subscriber.Subscriber) error {
	model := r.mapper.ToModel(sub)

	result := db.GetTxFromContext(ctx, r.db).Model(&models.SubscriberModel{}).
		Where("id = ?", sub.ID()).
		Updates(map[string]interface{}{
			"name":       model.Name,
			"secret":     model.Secret,
			"phone":      model.Phone,
			"status":     model.Status,
			"expires_at": model.ExpiresAt,
			"static_ip":  model.StaticIP,
			"profile_id": model.ProfileID,
			"updated_at": model.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update subscriber", "error", result.Error, "subscriber_id", sub.ID())
		return fmt.Errorf("failed to update subscriber: %w", result.Error)
	}

	return nil
}

func (r *SubscriberRepositoryImpl) GetByID(ctx context.Context, id uint) (*subscriber.Subscriber, error) {
	var model models.SubscriberModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, subscriber.ErrSubscriberNotFound
		}
		r.logger.Errorw("failed to get subscriber by ID", "error", err, "subscriber_id", id)
		return nil, fmt.Errorf("failed to get subscriber: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *SubscriberRepositoryImpl) GetByUsername(ctx context.Context, username string) (*subscriber.Subscriber, error) {
	var model models.SubscriberModel
	if err := db.GetTxFromContext(ctx, r.db).Where("username = ?", username).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, subscriber.ErrSubscriberNotFound
		}
		r.logger.Errorw("failed to get subscriber by username", "error", err, "username", username)
		return nil, fmt.Errorf("failed to get subscriber by username: %w", err)
	}

	return r.mapper.ToEntity(&model)
}
