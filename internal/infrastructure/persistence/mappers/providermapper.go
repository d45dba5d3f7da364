package mappers

import (
	"encoding/json"
	"fmt"

	"netbill/internal/domain/notification"
	"netbill/internal/infrastructure/persistence/models"
)

// ProviderMapper handles the conversion between domain entities and persistence models
type ProviderMapper interface {
	ToEntity(model *models.NotificationProviderModel) (*notification.Provider, error)
	ToEntities(models []*models.NotificationProviderModel) ([]*notification.Provider, error)
	LogToModel(record *notification.AttemptRecord) *models.NotificationLogModel
}

type providerMapper struct{}

func NewProviderMapper() ProviderMapper {
	return &providerMapper{}
}

func (m *providerMapper) ToEntity(model *models.NotificationProviderModel) (*notification.Provider, error) {
	if model == nil {
		return nil, nil
	}

	credentials := make(map[string]string)
	if len(model.Credentials) > 0 {
		if err := json.Unmarshal(model.Credentials, &credentials); err != nil {
			return nil, fmt.Errorf("failed to unmarshal provider credentials: %w", err)
		}
	}

	entity, err := notification.ReconstructProvider(
		model.ID,
		model.Name,
		notification.ProviderType(model.Type),
		model.Endpoint,
		credentials,
		model.SenderID,
		model.Priority,
		model.IsActive,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct provider entity: %w", err)
	}

	return entity, nil
}

func (m *providerMapper) ToEntities(providerModels []*models.NotificationProviderModel) ([]*notification.Provider, error) {
	entities := make([]*notification.Provider, 0, len(providerModels))

	for _, model := range providerModels {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, fmt.Errorf("failed to map provider model ID %d: %w", model.ID, err)
		}
		if entity != nil {
			entities = append(entities, entity)
		}
	}

	return entities, nil
}

func (m *providerMapper) LogToModel(record *notification.AttemptRecord) *models.NotificationLogModel {
	if record == nil {
		return nil
	}

	return &models.NotificationLogModel{
		ID:           record.ID(),
		Phone:        record.Phone(),
		Message:      record.Message(),
		Status:       record.Status().String(),
		ProviderName: record.ProviderName(),
		ProviderType: record.ProviderType().String(),
		Response:     record.Response(),
		SentAt:       record.SentAt(),
	}
}
