package notification

import (
	"fmt"
	"time"
)

// Provider is a configured delivery channel. The dispatcher tries active
// providers in ascending priority order; lower priority means tried first.
type Provider struct {
	id           uint
	name         string
	providerType ProviderType
	apiURL       string
	credentials  map[string]string
	senderNumber string
	priority     int
	isActive     bool
	createdAt    time.Time
	updatedAt    time.Time
}

// Credential keys understood by the adapters.
const (
	CredentialToken    = "token"
	CredentialAPIKey   = "api_key"
	CredentialUsername = "username"
	CredentialPassword = "password"
)

func NewProvider(name string, providerType ProviderType, apiURL string, credentials map[string]string, senderNumber string, priority int) (*Provider, error) {
	if name == "" {
		return nil, fmt.Errorf("provider name is required")
	}
	if !providerType.IsValid() {
		return nil, fmt.Errorf("invalid provider type: %s", providerType)
	}
	if apiURL == "" {
		return nil, fmt.Errorf("provider API URL is required")
	}
	if credentials == nil {
		credentials = make(map[string]string)
	}

	now := time.Now().UTC()
	return &Provider{
		name:         name,
		providerType: providerType,
		apiURL:       apiURL,
		credentials:  credentials,
		senderNumber: senderNumber,
		priority:     priority,
		isActive:     true,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// ReconstructProvider rebuilds a provider from persistence.
func ReconstructProvider(
	id uint,
	name string,
	providerType ProviderType,
	apiURL string,
	credentials map[string]string,
	senderNumber string,
	priority int,
	isActive bool,
	createdAt, updatedAt time.Time,
) (*Provider, error) {
	if id == 0 {
		return nil, fmt.Errorf("provider ID cannot be zero")
	}
	if !providerType.IsValid() {
		return nil, fmt.Errorf("invalid provider type: %s", providerType)
	}
	if credentials == nil {
		credentials = make(map[string]string)
	}

	return &Provider{
		id:           id,
		name:         name,
		providerType: providerType,
		apiURL:       apiURL,
		credentials:  credentials,
		senderNumber: senderNumber,
		priority:     priority,
		isActive:     isActive,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}, nil
}

// Credential returns the named credential or an empty string.
func (p *Provider) Credential(key string) string {
	return p.credentials[key]
}

// SetID writes back the auto-generated ID after insert.
func (p *Provider) SetID(id uint) { p.id = id }

func (p *Provider) ID() uint                       { return p.id }
func (p *Provider) Name() string                   { return p.name }
func (p *Provider) Type() ProviderType             { return p.providerType }
func (p *Provider) APIURL() string                 { return p.apiURL }
func (p *Provider) Credentials() map[string]string { return p.credentials }
func (p *Provider) SenderNumber() string           { return p.senderNumber }
func (p *Provider) Priority() int                  { return p.priority }
func (p *Provider) IsActive() bool                 { return p.isActive }
func (p *Provider) CreatedAt() time.Time           { return p.createdAt }
func (p *Provider) UpdatedAt() time.Time           { return p.updatedAt }
