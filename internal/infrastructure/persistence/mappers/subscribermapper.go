package mappers

import (
	"fmt"

	"netbill/internal/domain/subscriber"
	"netbill/internal/infrastructure/persistence/models"
)

// SubscriberMapper handles the conversion between domain entities and persistence models
type SubscriberMapper interface {
	ToEntity(model *models.SubscriberModel) (*subscriber.Subscriber, error)
	ToModel(entity *subscriber.Subscriber) *models.SubscriberModel
	ProfileToEntity(model *models.ProfileModel) (*subscriber.Profile, error)
}

type subscriberMapper struct{}

func NewSubscriberMapper() SubscriberMapper {
	return &subscriberMapper{}
}

func (m *subscriberMapper) ToEntity(model *models.SubscriberModel) (*subscriber.Subscriber, error) {
	if model == nil {
		return nil, nil
	}

	entity, err := subscriber.ReconstructSubscriber(subscriber.SubscriberReconstructParams{
		ID:        model.ID,
		Name:      model.Name,
		Username:  model.Username,
		Secret:    model.Secret,
		Phone:     model.Phone,
		Status:    subscriber.Status(model.Status),
		ExpiresAt: model.ExpiresAt,
		StaticIP:  model.StaticIP,
		ProfileID: model.ProfileID,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct subscriber entity: %w", err)
	}

	return entity, nil
}

func (m *subscriberMapper) ToModel(entity *subscriber.Subscriber) *models.SubscriberModel {
	if entity == nil {
		return nil
	}

	return &models.SubscriberModel{
		ID:        entity.ID(),
		Name:      entity.Name(),
		Username:  entity.Username(),
		Secret:    entity.Secret(),
		Phone:     entity.Phone(),
		Status:    entity.Status().String(),
		ExpiresAt: entity.ExpiresAt(),
		StaticIP:  entity.StaticIP(),
		ProfileID: entity.ProfileID(),
		CreatedAt: entity.CreatedAt(),
		UpdatedAt: entity.UpdatedAt(),
	}
}

func (m *subscriberMapper) ProfileToEntity(model *models.ProfileModel) (*subscriber.Profile, error) {
	if model == nil {
		return nil, nil
	}

	entity, err := subscriber.ReconstructProfile(
		model.ID,
		model.Name,
		model.ValidityValue,
		subscriber.ValidityUnit(model.ValidityUnit),
		model.RadiusGroup,
		model.Price,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct profile entity: %w", err)
	}

	return entity, nil
}
