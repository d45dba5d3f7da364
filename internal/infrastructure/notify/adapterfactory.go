// Package notify implements the delivery adapters for the supported
// WhatsApp gateway providers. Each provider speaks its own authentication
// and payload dialect; the factory resolves the right adapter from the
// provider's configured type.
package notify

import (
	"fmt"
	"net/http"
	"time"

	"netbill/internal/application/notification/services"
	"netbill/internal/domain/notification"
	"netbill/internal/shared/logger"
)

type AdapterFactoryImpl struct {
	client *http.Client
	logger logger.Interface
}

func NewAdapterFactory(timeout time.Duration, logger logger.Interface) services.AdapterFactory {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &AdapterFactoryImpl{
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

func (f *AdapterFactoryImpl) AdapterFor(provider *notification.Provider) (services.ProviderAdapter, error) {
	switch provider.Type() {
	case notification.ProviderTypeWablas:
		return newWablasAdapter(provider, f.client), nil
	case notification.ProviderTypeMPWA:
		return newMPWAAdapter(provider, f.client), nil
	case notification.ProviderTypeNusaSMS:
		return newNusaSMSAdapter(provider, f.client), nil
	default:
		return nil, fmt.Errorf("unsupported provider type: %s", provider.Type())
	}
}
