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

type ProfileRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.SubscriberMapper
	logger logger.Interface
}

func NewProfileRepository(db *gorm.DB, logger logger.Interface) subscriber.ProfileRepository {
	return &ProfileRepositoryImpl{
		db:     db,
		mapper: mappers.NewSubscriberMapper(),
		logger: logger,
	}
}

func (r *ProfileRepositoryImpl) GetByID(ctx context.Context, id uint) (*subscriber.Profile, error) {
	var model models.ProfileModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, subscriber.ErrProfileNotFound
		}
		r.logger.Errorw("failed to get profile by ID", "error", err, "profile_id", id)
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return r.mapper.ProfileToEntity(&model)
}
