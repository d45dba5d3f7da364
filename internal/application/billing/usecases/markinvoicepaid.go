package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	ledgerusecases "netbill/internal/application/ledger/usecases"
	notifservices "netbill/internal/application/notification/services"
	"netbill/internal/domain/billing"
	"netbill/internal/domain/radius"
	"netbill/internal/domain/subscriber"
	"netbill/internal/shared/biztime"
	apperrors "netbill/internal/shared/errors"
	"netbill/internal/shared/goroutine"
	"netbill/internal/shared/logger"
)

// EntitlementRestorer brings the RADIUS authorization records of a
// reactivated subscriber back in line with its profile.
type EntitlementRestorer interface {
	RestoreActiveEntitlement(ctx context.Context, sub *subscriber.Subscriber, profile *subscriber.Profile) error
}

// LedgerRecorder records a paid invoice as income exactly once.
type LedgerRecorder interface {
	Execute(ctx context.Context, cmd ledgerusecases.RecordPaymentIncomeCommand) (bool, error)
}

// CustomerNotifier delivers the payment confirmation to the subscriber.
type CustomerNotifier interface {
	SendPaymentSuccess(ctx context.Context, cmd notifservices.PaymentSuccessNotification) error
}

// AdminNotifier informs the operator that a payment arrived. Implementations
// are fire-and-forget; failures are logged, never propagated.
type AdminNotifier interface {
	NotifyPaymentReceived(ctx context.Context, invoiceNumber, customerName string, amount int64, paidAt time.Time) error
}

// ReconciliationGuard serializes concurrent confirmations for one invoice
// across processes. Acquire returns false when another reconciliation run
// currently holds the invoice.
type ReconciliationGuard interface {
	Acquire(ctx context.Context, invoiceNumber string) (bool, error)
	Release(ctx context.Context, invoiceNumber string)
}

// MarkInvoicePaidCommand identifies the invoice to settle. PaidAt is the
// gateway's settlement time; when nil the current time is used.
type MarkInvoicePaidCommand struct {
	InvoiceID uint
	PaidAt    *time.Time
}

// Outcome reports one reconciliation step: whether it ran at all, and if it
// ran, whether it succeeded.
type Outcome struct {
	Ran   bool
	OK    bool
	Error string
}

func ranOK() Outcome { return Outcome{Ran: true, OK: true} }

func ranFailed(err error) Outcome {
	return Outcome{Ran: true, Error: err.Error()}
}

// ReconciliationReport is the full account of one mark-paid run. AlreadyPaid
// means another confirmation won the paid transition first and no side
// effects ran in this call.
type ReconciliationReport struct {
	InvoiceNumber string
	AlreadyPaid   bool
	PaidAt        time.Time
	NewExpiry     *time.Time

	Expiry       Outcome
	Ledger       Outcome
	Notification Outcome
	Entitlement  Outcome
	SessionReset Outcome
}

// MarkInvoicePaidUseCase is the payment reconciliation engine. It performs
// the paid transition as a conditional update so exactly one confirmation
// wins, then runs the downstream steps (expiry extension, ledger entry,
// customer notification, entitlement restore, session reset). Each step is
// fault-contained: a failed step is reported in the returned
// ReconciliationReport but never rolls back the payment or blocks the
// remaining steps.
type MarkInvoicePaidUseCase struct {
	invoiceRepo    billing.InvoiceRepository
	subscriberRepo subscriber.SubscriberRepository
	profileRepo    subscriber.ProfileRepository
	entitlement    EntitlementRestorer
	sessions       radius.SessionInvalidator
	ledger         LedgerRecorder
	notifier       CustomerNotifier
	admin          AdminNotifier
	guard          ReconciliationGuard
	logger         logger.Interface
}

func NewMarkInvoicePaidUseCase(
	invoiceRepo billing.InvoiceRepository,
	subscriberRepo subscriber.SubscriberRepository,
	profileRepo subscriber.ProfileRepository,
	entitlement EntitlementRestorer,
	sessions radius.SessionInvalidator,
	ledger LedgerRecorder,
	notifier CustomerNotifier,
	admin AdminNotifier,
	guard ReconciliationGuard,
	logger logger.Interface,
) *MarkInvoicePaidUseCase {
	return &MarkInvoicePaidUseCase{
		invoiceRepo:    invoiceRepo,
		subscriberRepo: subscriberRepo,
		profileRepo:    profileRepo,
		entitlement:    entitlement,
		sessions:       sessions,
		ledger:         ledger,
		notifier:       notifier,
		admin:          admin,
		guard:          guard,
		logger:         logger,
	}
}

// Execute settles the invoice and reconciles every dependent system.
func (uc *MarkInvoicePaidUseCase) Execute(ctx context.Context, cmd MarkInvoicePaidCommand) (*ReconciliationReport, error) {
	inv, err := uc.invoiceRepo.GetByID(ctx, cmd.InvoiceID)
	if err != nil {
		if errors.Is(err, billing.ErrInvoiceNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("invoice %d not found", cmd.InvoiceID))
		}
		return nil, apperrors.NewInternalError("failed to load invoice", err.Error())
	}

	if uc.guard != nil {
		acquired, err := uc.guard.Acquire(ctx, inv.Number())
		if err != nil {
			// A broken guard must not block payments; the conditional update
			// below still guarantees a single paid transition.
			uc.logger.Warnw("reconciliation guard unavailable, relying on conditional update",
				"invoice", inv.Number(), "error", err)
		} else if !acquired {
			return nil, apperrors.NewConflictError(fmt.Sprintf("invoice %s is being reconciled by another request", inv.Number()))
		} else {
			defer uc.guard.Release(ctx, inv.Number())
		}
	}

	paidAt := biztime.NowUTC()
	if cmd.PaidAt != nil {
		paidAt = cmd.PaidAt.UTC()
	}

	if err := inv.MarkPaid(paidAt); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	report := &ReconciliationReport{
		InvoiceNumber: inv.Number(),
		PaidAt:        *inv.PaidAt(),
	}

	firstTransition, err := uc.invoiceRepo.MarkPaid(ctx, inv)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to persist paid transition", err.Error())
	}
	if !firstTransition {
		uc.logger.Infow("invoice already paid, skipping reconciliation",
			"invoice", inv.Number())
		report.AlreadyPaid = true
		// Another confirmation won the race; report the winner's timestamp.
		if fresh, err := uc.invoiceRepo.GetByID(ctx, inv.ID()); err == nil && fresh.PaidAt() != nil {
			report.PaidAt = *fresh.PaidAt()
		}
		return report, nil
	}

	uc.logger.Infow("invoice marked paid, reconciling",
		"invoice", inv.Number(),
		"amount", inv.Amount(),
		"paid_at", report.PaidAt,
	)

	sub, profile, reactivated := uc.extendExpiry(ctx, inv, report)
	uc.recordLedger(ctx, inv, report)
	uc.notifyCustomer(ctx, inv, sub, profile, report)
	uc.restoreAccess(ctx, sub, profile, reactivated, report)
	uc.alertAdmin(inv, report.PaidAt)

	return report, nil
}

// extendExpiry pushes the subscriber's expiry forward by one profile period
// and lifts a degraded status. Returns the loaded subscriber and profile so
// later steps can reuse them, plus whether this payment reactivated a
// degraded subscriber; reactivated is only true when the update persisted.
func (uc *MarkInvoicePaidUseCase) extendExpiry(ctx context.Context, inv *billing.Invoice, report *ReconciliationReport) (*subscriber.Subscriber, *subscriber.Profile, bool) {
	if inv.SubscriberID() == nil {
		return nil, nil, false
	}

	sub, err := uc.subscriberRepo.GetByID(ctx, *inv.SubscriberID())
	if err != nil {
		uc.logger.Errorw("failed to load subscriber for expiry extension",
			"invoice", inv.Number(), "subscriber_id", *inv.SubscriberID(), "error", err)
		report.Expiry = ranFailed(err)
		return nil, nil, false
	}

	profile, err := uc.profileRepo.GetByID(ctx, sub.ProfileID())
	if err != nil {
		uc.logger.Errorw("failed to load profile for expiry extension",
			"invoice", inv.Number(), "profile_id", sub.ProfileID(), "error", err)
		report.Expiry = ranFailed(err)
		return sub, nil, false
	}

	newExpiry := subscriber.NextExpiry(sub.ExpiresAt(), profile.ValidityValue(), profile.ValidityUnit(), report.PaidAt)
	sub.ExtendExpiry(newExpiry)
	reactivated := sub.NeedsReactivation()
	if reactivated {
		sub.Activate()
	}

	if err := uc.subscriberRepo.Update(ctx, sub); err != nil {
		uc.logger.Errorw("failed to persist subscriber expiry extension",
			"invoice", inv.Number(), "username", sub.Username(), "error", err)
		report.Expiry = ranFailed(err)
		return sub, profile, false
	}

	report.Expiry = ranOK()
	report.NewExpiry = &newExpiry
	uc.logger.Infow("subscriber expiry extended",
		"username", sub.Username(),
		"new_expiry", newExpiry,
		"reactivated", reactivated,
	)
	return sub, profile, reactivated
}

func (uc *MarkInvoicePaidUseCase) recordLedger(ctx context.Context, inv *billing.Invoice, report *ReconciliationReport) {
	_, err := uc.ledger.Execute(ctx, ledgerusecases.RecordPaymentIncomeCommand{
		InvoiceNumber: inv.Number(),
		CustomerName:  inv.CustomerName(),
		Amount:        inv.Amount(),
		PaidAt:        report.PaidAt,
	})
	if err != nil {
		uc.logger.Errorw("failed to record payment in ledger",
			"invoice", inv.Number(), "error", err)
		report.Ledger = ranFailed(err)
		return
	}
	report.Ledger = ranOK()
}

func (uc *MarkInvoicePaidUseCase) notifyCustomer(ctx context.Context, inv *billing.Invoice, sub *subscriber.Subscriber, profile *subscriber.Profile, report *ReconciliationReport) {
	phone := inv.CustomerPhone()
	password := ""
	profileName := ""
	expiresAt := inv.DueDate()

	if sub != nil {
		if sub.Phone() != "" {
			phone = sub.Phone()
		}
		password = sub.Secret()
	}
	if profile != nil {
		profileName = profile.Name()
	}
	if report.NewExpiry != nil {
		expiresAt = *report.NewExpiry
	}

	if phone == "" {
		uc.logger.Warnw("no phone number on record, skipping payment notification",
			"invoice", inv.Number())
		return
	}

	err := uc.notifier.SendPaymentSuccess(ctx, notifservices.PaymentSuccessNotification{
		Phone:         phone,
		CustomerName:  inv.CustomerName(),
		Username:      inv.CustomerUsername(),
		Password:      password,
		ProfileName:   profileName,
		InvoiceNumber: inv.Number(),
		Amount:        inv.Amount(),
		ExpiresAt:     expiresAt,
	})
	if err != nil {
		uc.logger.Errorw("failed to notify customer of payment",
			"invoice", inv.Number(), "error", err)
		report.Notification = ranFailed(err)
		return
	}
	report.Notification = ranOK()
}

// restoreAccess resyncs the authorization store and drops the live session,
// but only when the payment actually lifted a degraded status. An already
// active subscriber keeps its session untouched.
func (uc *MarkInvoicePaidUseCase) restoreAccess(ctx context.Context, sub *subscriber.Subscriber, profile *subscriber.Profile, reactivated bool, report *ReconciliationReport) {
	if !reactivated || sub == nil || profile == nil {
		return
	}

	if err := uc.entitlement.RestoreActiveEntitlement(ctx, sub, profile); err != nil {
		report.Entitlement = ranFailed(err)
	} else {
		report.Entitlement = ranOK()
	}

	dropped, err := uc.sessions.ForceReauthentication(ctx, sub.Username())
	if err != nil {
		uc.logger.Errorw("failed to reset subscriber session",
			"username", sub.Username(), "error", err)
		report.SessionReset = ranFailed(err)
		return
	}
	report.SessionReset = ranOK()
	if !dropped {
		uc.logger.Infow("no live session to reset",
			"username", sub.Username())
	}
}

func (uc *MarkInvoicePaidUseCase) alertAdmin(inv *billing.Invoice, paidAt time.Time) {
	if uc.admin == nil {
		return
	}
	number := inv.Number()
	name := inv.CustomerName()
	amount := inv.Amount()
	goroutine.SafeGo(uc.logger, "admin-payment-alert", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := uc.admin.NotifyPaymentReceived(ctx, number, name, amount, paidAt); err != nil {
			uc.logger.Warnw("failed to send admin payment alert",
				"invoice", number, "error", err)
		}
	})
}
