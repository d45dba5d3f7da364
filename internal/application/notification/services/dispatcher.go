package services

import (
	"context"
	"time"

	"netbill/internal/domain/notification"
	"netbill/internal/shared/biztime"
	apperrors "netbill/internal/shared/errors"
	"netbill/internal/shared/logger"
)

// ProviderAdapter sends one message through one channel. Implementations
// return the raw provider response body on success and an error describing
// the provider's failure otherwise.
type ProviderAdapter interface {
	Send(ctx context.Context, phone, message string) (string, error)
}

// AdapterFactory resolves the adapter for a provider's channel kind.
type AdapterFactory interface {
	AdapterFor(provider *notification.Provider) (ProviderAdapter, error)
}

// AttemptOutcome summarizes one provider attempt for the caller.
type AttemptOutcome struct {
	ProviderName string
	ProviderType notification.ProviderType
	Status       notification.AttemptStatus
	Detail       string
}

// DeliveryResult reports which provider delivered the message and the full
// per-attempt trail.
type DeliveryResult struct {
	ProviderName string
	Phone        string
	Attempts     []AttemptOutcome
}

// Dispatcher implements priority-ordered failover delivery: active
// providers are tried in ascending priority order until one succeeds, and
// every attempt is written to the audit log regardless of outcome.
type Dispatcher struct {
	providerRepo notification.ProviderRepository
	attemptLog   notification.AttemptLogRepository
	adapters     AdapterFactory
	countryCode  string
	perProvider  time.Duration
	logger       logger.Interface
}

func NewDispatcher(
	providerRepo notification.ProviderRepository,
	attemptLog notification.AttemptLogRepository,
	adapters AdapterFactory,
	countryCode string,
	perProviderTimeout time.Duration,
	logger logger.Interface,
) *Dispatcher {
	if perProviderTimeout <= 0 {
		perProviderTimeout = 15 * time.Second
	}
	return &Dispatcher{
		providerRepo: providerRepo,
		attemptLog:   attemptLog,
		adapters:     adapters,
		countryCode:  countryCode,
		perProvider:  perProviderTimeout,
		logger:       logger,
	}
}

// Send delivers the message through the first provider that accepts it.
// When every provider fails it returns an *notification.AllFailedError
// aggregating each provider's failure reason; the audit log still holds one
// row per attempt.
func (d *Dispatcher) Send(ctx context.Context, phone, message string) (*DeliveryResult, error) {
	providers, err := d.providerRepo.ListActive(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to load notification providers", err.Error())
	}
	if len(providers) == 0 {
		return nil, apperrors.NewInternalError("no active notification providers configured")
	}

	normalized := NormalizePhone(phone, d.countryCode)
	if normalized == "" {
		return nil, apperrors.NewValidationError("destination phone number is empty")
	}

	result := &DeliveryResult{Phone: normalized}
	var failures []notification.AttemptFailure

	for _, provider := range providers {
		outcome := d.attempt(ctx, provider, normalized, message)
		result.Attempts = append(result.Attempts, outcome)

		if outcome.Status == notification.AttemptStatusSent {
			result.ProviderName = provider.Name()
			d.logger.Infow("notification delivered",
				"provider", provider.Name(),
				"provider_type", provider.Type().String(),
				"phone", normalized,
				"attempts", len(result.Attempts),
			)
			return result, nil
		}

		failures = append(failures, notification.AttemptFailure{
			ProviderName: provider.Name(),
			ProviderType: provider.Type(),
			Reason:       outcome.Detail,
		})
		d.logger.Warnw("notification provider failed, trying next",
			"provider", provider.Name(),
			"provider_type", provider.Type().String(),
			"phone", normalized,
			"error", outcome.Detail,
		)
	}

	return result, &notification.AllFailedError{Phone: normalized, Failures: failures}
}

func (d *Dispatcher) attempt(ctx context.Context, provider *notification.Provider, phone, message string) AttemptOutcome {
	outcome := AttemptOutcome{
		ProviderName: provider.Name(),
		ProviderType: provider.Type(),
	}

	adapter, err := d.adapters.AdapterFor(provider)
	if err != nil {
		outcome.Status = notification.AttemptStatusFailed
		outcome.Detail = err.Error()
		d.record(ctx, provider, phone, message, outcome)
		return outcome
	}

	// A dead provider must not stall the whole notification path.
	attemptCtx, cancel := context.WithTimeout(ctx, d.perProvider)
	defer cancel()

	response, err := adapter.Send(attemptCtx, phone, message)
	if err != nil {
		outcome.Status = notification.AttemptStatusFailed
		outcome.Detail = err.Error()
	} else {
		outcome.Status = notification.AttemptStatusSent
		outcome.Detail = response
	}

	d.record(ctx, provider, phone, message, outcome)
	return outcome
}

func (d *Dispatcher) record(ctx context.Context, provider *notification.Provider, phone, message string, outcome AttemptOutcome) {
	record := notification.NewAttemptRecord(
		phone,
		message,
		outcome.Status,
		provider.Name(),
		provider.Type(),
		outcome.Detail,
		biztime.NowUTC(),
	)
	if err := d.attemptLog.Append(ctx, record); err != nil {
		d.logger.Errorw("failed to append notification attempt log",
			"provider", provider.Name(),
			"phone", phone,
			"error", err,
		)
	}
}
