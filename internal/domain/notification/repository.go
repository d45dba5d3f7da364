package notification

import (
	"context"
	"errors"
)

var (
	// ErrTemplateNotFound is returned by repositories when no template row
	// matches the requested type.
	ErrTemplateNotFound = errors.New("notification template not found")
)

// ProviderRepository is the persistence port for delivery providers.
type ProviderRepository interface {
	// ListActive returns active providers sorted ascending by priority.
	ListActive(ctx context.Context) ([]*Provider, error)
}

// AttemptLogRepository appends delivery audit rows. The log is append-only.
type AttemptLogRepository interface {
	Append(ctx context.Context, record *AttemptRecord) error
}

// TemplateRepository is the persistence port for message templates.
type TemplateRepository interface {
	GetByType(ctx context.Context, templateType string) (*Template, error)
}
