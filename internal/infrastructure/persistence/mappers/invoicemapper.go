package mappers

import (
	"fmt"

	"netbill/internal/domain/billing"
	"netbill/internal/infrastructure/persistence/models"
)

// InvoiceMapper handles the conversion between domain entities and persistence models
type InvoiceMapper interface {
	ToEntity(model *models.InvoiceModel) (*billing.Invoice, error)
	ToModel(entity *billing.Invoice) *models.InvoiceModel
}

type invoiceMapper struct{}

func NewInvoiceMapper() InvoiceMapper {
	return &invoiceMapper{}
}

func (m *invoiceMapper) ToEntity(model *models.InvoiceModel) (*billing.Invoice, error) {
	if model == nil {
		return nil, nil
	}

	entity, err := billing.ReconstructInvoice(billing.InvoiceReconstructParams{
		ID:               model.ID,
		Number:           model.Number,
		SubscriberID:     model.SubscriberID,
		CustomerName:     model.CustomerName,
		CustomerPhone:    model.CustomerPhone,
		CustomerUsername: model.CustomerUsername,
		Amount:           model.Amount,
		Status:           billing.InvoiceStatus(model.Status),
		DueDate:          model.DueDate,
		PaidAt:           model.PaidAt,
		PaymentToken:     model.PaymentToken,
		CreatedAt:        model.CreatedAt,
		UpdatedAt:        model.UpdatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct invoice entity: %w", err)
	}

	return entity, nil
}

func (m *invoiceMapper) ToModel(entity *billing.Invoice) *models.InvoiceModel {
	if entity == nil {
		return nil
	}

	return &models.InvoiceModel{
		ID:               entity.ID(),
		Number:           entity.Number(),
		SubscriberID:     entity.SubscriberID(),
		CustomerName:     entity.CustomerName(),
		CustomerPhone:    entity.CustomerPhone(),
		CustomerUsername: entity.CustomerUsername(),
		Amount:           entity.Amount(),
		Status:           string(entity.Status()),
		DueDate:          entity.DueDate(),
		PaidAt:           entity.PaidAt(),
		PaymentToken:     entity.PaymentToken(),
		CreatedAt:        entity.CreatedAt(),
		UpdatedAt:        entity.UpdatedAt(),
	}
}
