package usecases

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ledgerusecases "netbill/internal/application/ledger/usecases"
	notifservices "netbill/internal/application/notification/services"
	"netbill/internal/domain/billing"
	"netbill/internal/domain/notification"
	"netbill/internal/domain/subscriber"
	apperrors "netbill/internal/shared/errors"
	"netbill/internal/shared/logger"
)

// --- fakes ---

type fakeInvoiceRepo struct {
	invoice        *billing.Invoice
	getErr         error
	markPaidFirst  bool
	markPaidErr    error
	markPaidCalled bool
}

func (r *fakeInvoiceRepo) Create(ctx context.Context, inv *billing.Invoice) error { return nil }
func (r *fakeInvoiceRepo) Update(ctx context.Context, inv *billing.Invoice) error { return nil }

func (r *fakeInvoiceRepo) GetByID(ctx context.Context, id uint) (*billing.Invoice, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	return r.invoice, nil
}

func (r *fakeInvoiceRepo) GetByNumber(ctx context.Context, number string) (*billing.Invoice, error) {
	return r.invoice, nil
}

func (r *fakeInvoiceRepo) MarkPaid(ctx context.Context, inv *billing.Invoice) (bool, error) {
	r.markPaidCalled = true
	return r.markPaidFirst, r.markPaidErr
}

type fakeSubscriberRepo struct {
	sub       *subscriber.Subscriber
	getErr    error
	updateErr error
	updated   bool
}

func (r *fakeSubscriberRepo) Create(ctx context.Context, s *subscriber.Subscriber) error { return nil }

func (r *fakeSubscriberRepo) Update(ctx context.Context, s *subscriber.Subscriber) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.updated = true
	return nil
}

func (r *fakeSubscriberRepo) GetByID(ctx context.Context, id uint) (*subscriber.Subscriber, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	return r.sub, nil
}

func (r *fakeSubscriberRepo) GetByUsername(ctx context.Context, username string) (*subscriber.Subscriber, error) {
	return r.sub, nil
}

type fakeProfileRepo struct {
	profile *subscriber.Profile
	getErr  error
}

func (r *fakeProfileRepo) GetByID(ctx context.Context, id uint) (*subscriber.Profile, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	return r.profile, nil
}

type fakeRestorer struct {
	called bool
	err    error
}

func (f *fakeRestorer) RestoreActiveEntitlement(ctx context.Context, sub *subscriber.Subscriber, profile *subscriber.Profile) error {
	f.called = true
	return f.err
}

type fakeSessions struct {
	called  bool
	dropped bool
	err     error
}

func (f *fakeSessions) ForceReauthentication(ctx context.Context, username string) (bool, error) {
	f.called = true
	return f.dropped, f.err
}

type fakeLedger struct {
	commands []ledgerusecases.RecordPaymentIncomeCommand
	err      error
}

func (f *fakeLedger) Execute(ctx context.Context, cmd ledgerusecases.RecordPaymentIncomeCommand) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	f.commands = append(f.commands, cmd)
	return true, nil
}

type fakeNotifier struct {
	commands []notifservices.PaymentSuccessNotification
	err      error
}

func (f *fakeNotifier) SendPaymentSuccess(ctx context.Context, cmd notifservices.PaymentSuccessNotification) error {
	if f.err != nil {
		return f.err
	}
	f.commands = append(f.commands, cmd)
	return nil
}

type fakeAdmin struct {
	notified chan string
}

func (f *fakeAdmin) NotifyPaymentReceived(ctx context.Context, invoiceNumber, customerName string, amount int64, paidAt time.Time) error {
	f.notified <- invoiceNumber
	return nil
}

type fakeGuard struct {
	acquired bool
	err      error
	released bool
}

func (f *fakeGuard) Acquire(ctx context.Context, invoiceNumber string) (bool, error) {
	return f.acquired, f.err
}

func (f *fakeGuard) Release(ctx context.Context, invoiceNumber string) {
	f.released = true
}

// --- helpers ---

func testLogger() logger.Interface {
	return logger.NewLoggerWithSlog(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

type fixture struct {
	invoiceRepo    *fakeInvoiceRepo
	subscriberRepo *fakeSubscriberRepo
	profileRepo    *fakeProfileRepo
	restorer       *fakeRestorer
	sessions       *fakeSessions
	ledger         *fakeLedger
	notifier       *fakeNotifier
	guard          *fakeGuard
	uc             *MarkInvoicePaidUseCase
}

func uintPtr(v uint) *uint { return &v }

func pendingInvoice(t *testing.T, subscriberID *uint) *billing.Invoice {
	t.Helper()
	inv, err := billing.ReconstructInvoice(billing.InvoiceReconstructParams{
		ID:               10,
		Number:           "INV-2024-0042",
		SubscriberID:     subscriberID,
		CustomerName:     "Budi Santoso",
		CustomerPhone:    "081234567890",
		CustomerUsername: "budi01",
		Amount:           150000,
		Status:           billing.InvoiceStatusPending,
		DueDate:          time.Date(2024, 3, 5, 17, 0, 0, 0, time.UTC),
		CreatedAt:        time.Now().UTC(),
		UpdatedAt:        time.Now().UTC(),
	})
	require.NoError(t, err)
	return inv
}

func isolatedSubscriber(t *testing.T, expiresAt *time.Time) *subscriber.Subscriber {
	t.Helper()
	sub, err := subscriber.ReconstructSubscriber(subscriber.SubscriberReconstructParams{
		ID:        3,
		Name:      "Budi Santoso",
		Username:  "budi01",
		Secret:    "s3cret",
		Phone:     "6281234567890",
		Status:    subscriber.StatusIsolated,
		ExpiresAt: expiresAt,
		ProfileID: 7,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	})
	require.NoError(t, err)
	return sub
}

func activeSubscriber(t *testing.T, expiresAt *time.Time) *subscriber.Subscriber {
	t.Helper()
	sub, err := subscriber.ReconstructSubscriber(subscriber.SubscriberReconstructParams{
		ID:        3,
		Name:      "Budi Santoso",
		Username:  "budi01",
		Secret:    "s3cret",
		Phone:     "6281234567890",
		Status:    subscriber.StatusActive,
		ExpiresAt: expiresAt,
		ProfileID: 7,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	})
	require.NoError(t, err)
	return sub
}

func monthlyProfile(t *testing.T) *subscriber.Profile {
	t.Helper()
	p, err := subscriber.ReconstructProfile(7, "Home 10M", 1, subscriber.ValidityMonths, "home-10m", 150000)
	require.NoError(t, err)
	return p
}

func newFixture(t *testing.T, inv *billing.Invoice, sub *subscriber.Subscriber) *fixture {
	t.Helper()
	f := &fixture{
		invoiceRepo:    &fakeInvoiceRepo{invoice: inv, markPaidFirst: true},
		subscriberRepo: &fakeSubscriberRepo{sub: sub},
		profileRepo:    &fakeProfileRepo{profile: monthlyProfile(t)},
		restorer:       &fakeRestorer{},
		sessions:       &fakeSessions{dropped: true},
		ledger:         &fakeLedger{},
		notifier:       &fakeNotifier{},
	}
	f.uc = NewMarkInvoicePaidUseCase(
		f.invoiceRepo, f.subscriberRepo, f.profileRepo,
		f.restorer, f.sessions, f.ledger, f.notifier,
		nil, nil, testLogger(),
	)
	return f
}

// --- tests ---

func TestMarkInvoicePaid_FullReconciliation(t *testing.T) {
	expiry := time.Date(2024, 3, 5, 17, 0, 0, 0, time.UTC)
	f := newFixture(t, pendingInvoice(t, uintPtr(3)), isolatedSubscriber(t, &expiry))

	report, err := f.uc.Execute(context.Background(), MarkInvoicePaidCommand{InvoiceID: 10})

	require.NoError(t, err)
	assert.False(t, report.AlreadyPaid)
	assert.True(t, f.invoiceRepo.markPaidCalled)

	assert.True(t, report.Expiry.Ran)
	assert.True(t, report.Expiry.OK)
	assert.True(t, report.Ledger.OK)
	assert.True(t, report.Notification.OK)
	assert.True(t, report.Entitlement.OK)
	assert.True(t, report.SessionReset.OK)

	assert.True(t, f.subscriberRepo.updated)
	assert.True(t, f.restorer.called)
	assert.True(t, f.sessions.called)

	require.Len(t, f.ledger.commands, 1)
	assert.Equal(t, "INV-2024-0042", f.ledger.commands[0].InvoiceNumber)

	require.Len(t, f.notifier.commands, 1)
	sent := f.notifier.commands[0]
	assert.Equal(t, "6281234567890", sent.Phone)
	assert.Equal(t, "s3cret", sent.Password)
	assert.Equal(t, "Home 10M", sent.ProfileName)
}

func TestMarkInvoicePaid_AnchorDayPreserved(t *testing.T) {
	// Expiry on the 5th, paid late on the 20th: the new expiry stays on
	// the 5th of the next month instead of drifting to the 20th.
	expiry := time.Date(2024, 3, 5, 17, 0, 0, 0, time.UTC)
	f := newFixture(t, pendingInvoice(t, uintPtr(3)), isolatedSubscriber(t, &expiry))
	paidAt := time.Date(2024, 3, 20, 9, 0, 0, 0, time.UTC)

	report, err := f.uc.Execute(context.Background(), MarkInvoicePaidCommand{InvoiceID: 10, PaidAt: &paidAt})

	require.NoError(t, err)
	require.NotNil(t, report.NewExpiry)
	assert.Equal(t, time.Date(2024, 4, 5, 17, 0, 0, 0, time.UTC), *report.NewExpiry)
	assert.Equal(t, paidAt, report.PaidAt)
}

func TestMarkInvoicePaid_SecondConfirmationIsNoOp(t *testing.T) {
	f := newFixture(t, pendingInvoice(t, uintPtr(3)), isolatedSubscriber(t, nil))
	f.invoiceRepo.markPaidFirst = false

	report, err := f.uc.Execute(context.Background(), MarkInvoicePaidCommand{InvoiceID: 10})

	require.NoError(t, err)
	assert.True(t, report.AlreadyPaid)

	// No side effect may run for the losing confirmation.
	assert.False(t, report.Expiry.Ran)
	assert.False(t, report.Ledger.Ran)
	assert.False(t, report.Notification.Ran)
	assert.False(t, f.subscriberRepo.updated)
	assert.False(t, f.restorer.called)
	assert.False(t, f.sessions.called)
	assert.Empty(t, f.ledger.commands)
	assert.Empty(t, f.notifier.commands)
}

func TestMarkInvoicePaid_CancelledInvoiceRejected(t *testing.T) {
	inv := pendingInvoice(t, uintPtr(3))
	require.NoError(t, inv.Cancel())
	f := newFixture(t, inv, isolatedSubscriber(t, nil))

	_, err := f.uc.Execute(context.Background(), MarkInvoicePaidCommand{InvoiceID: 10})

	require.Error(t, err)
	assert.True(t, apperrors.IsAppError(err))
	assert.False(t, f.invoiceRepo.markPaidCalled)
}

func TestMarkInvoicePaid_InvoiceNotFound(t *testing.T) {
	f := newFixture(t, nil, nil)
	f.invoiceRepo.getErr = billing.ErrInvoiceNotFound

	_, err := f.uc.Execute(context.Background(), MarkInvoicePaidCommand{InvoiceID: 99})

	require.Error(t, err)
	assert.True(t, apperrors.IsNotFoundError(err))
}

func TestMarkInvoicePaid_ActiveSubscriberKeepsSession(t *testing.T) {
	expiry := time.Date(2024, 3, 5, 17, 0, 0, 0, time.UTC)
	f := newFixture(t, pendingInvoice(t, uintPtr(3)), activeSubscriber(t, &expiry))

	report, err := f.uc.Execute(context.Background(), MarkInvoicePaidCommand{InvoiceID: 10})

	require.NoError(t, err)
	assert.True(t, report.Expiry.OK)
	assert.False(t, report.Entitlement.Ran)
	assert.False(t, report.SessionReset.Ran)
	assert.False(t, f.restorer.called)
	assert.False(t, f.sessions.called)
}

func TestMarkInvoicePaid_LedgerFailureDoesNotBlockOtherSteps(t *testing.T) {
	f := newFixture(t, pendingInvoice(t, uintPtr(3)), isolatedSubscriber(t, nil))
	f.ledger.err = fmt.Errorf("ledger db down")

	report, err := f.uc.Execute(context.Background(), MarkInvoicePaidCommand{InvoiceID: 10})

	require.NoError(t, err)
	assert.True(t, report.Ledger.Ran)
	assert.False(t, report.Ledger.OK)
	assert.Contains(t, report.Ledger.Error, "ledger db down")

	assert.True(t, report.Expiry.OK)
	assert.True(t, report.Notification.OK)
	assert.True(t, report.Entitlement.OK)
}

func TestMarkInvoicePaid_NotificationExhaustionIsNonFatal(t *testing.T) {
	f := newFixture(t, pendingInvoice(t, uintPtr(3)), isolatedSubscriber(t, nil))
	f.notifier.err = &notification.AllFailedError{
		Phone: "6281234567890",
		Failures: []notification.AttemptFailure{
			{ProviderName: "primary", ProviderType: notification.ProviderTypeWablas, Reason: "timeout"},
		},
	}

	report, err := f.uc.Execute(context.Background(), MarkInvoicePaidCommand{InvoiceID: 10})

	require.NoError(t, err)
	assert.True(t, report.Notification.Ran)
	assert.False(t, report.Notification.OK)
	assert.Contains(t, report.Notification.Error, "timeout")
	assert.True(t, report.Entitlement.OK)
	assert.True(t, report.SessionReset.OK)
}

func TestMarkInvoicePaid_NoSubscriberStillRecordsAndNotifies(t *testing.T) {
	f := newFixture(t, pendingInvoice(t, nil), nil)

	report, err := f.uc.Execute(context.Background(), MarkInvoicePaidCommand{InvoiceID: 10})

	require.NoError(t, err)
	assert.False(t, report.Expiry.Ran)
	assert.True(t, report.Ledger.OK)
	assert.True(t, report.Notification.OK)
	assert.False(t, report.Entitlement.Ran)

	// Falls back to the invoice's denormalized contact snapshot.
	require.Len(t, f.notifier.commands, 1)
	assert.Equal(t, "081234567890", f.notifier.commands[0].Phone)
	assert.Empty(t, f.notifier.commands[0].Password)
}

func TestMarkInvoicePaid_GuardConflict(t *testing.T) {
	f := newFixture(t, pendingInvoice(t, uintPtr(3)), isolatedSubscriber(t, nil))
	guard := &fakeGuard{acquired: false}
	f.uc = NewMarkInvoicePaidUseCase(
		f.invoiceRepo, f.subscriberRepo, f.profileRepo,
		f.restorer, f.sessions, f.ledger, f.notifier,
		nil, guard, testLogger(),
	)

	_, err := f.uc.Execute(context.Background(), MarkInvoicePaidCommand{InvoiceID: 10})

	require.Error(t, err)
	assert.True(t, apperrors.IsConflictError(err))
	assert.False(t, f.invoiceRepo.markPaidCalled)
}

func TestMarkInvoicePaid_GuardReleasedAfterRun(t *testing.T) {
	f := newFixture(t, pendingInvoice(t, uintPtr(3)), isolatedSubscriber(t, nil))
	guard := &fakeGuard{acquired: true}
	f.uc = NewMarkInvoicePaidUseCase(
		f.invoiceRepo, f.subscriberRepo, f.profileRepo,
		f.restorer, f.sessions, f.ledger, f.notifier,
		nil, guard, testLogger(),
	)

	_, err := f.uc.Execute(context.Background(), MarkInvoicePaidCommand{InvoiceID: 10})

	require.NoError(t, err)
	assert.True(t, guard.released)
}

func TestMarkInvoicePaid_AdminAlertedAsync(t *testing.T) {
	f := newFixture(t, pendingInvoice(t, uintPtr(3)), isolatedSubscriber(t, nil))
	admin := &fakeAdmin{notified: make(chan string, 1)}
	f.uc = NewMarkInvoicePaidUseCase(
		f.invoiceRepo, f.subscriberRepo, f.profileRepo,
		f.restorer, f.sessions, f.ledger, f.notifier,
		admin, nil, testLogger(),
	)

	_, err := f.uc.Execute(context.Background(), MarkInvoicePaidCommand{InvoiceID: 10})
	require.NoError(t, err)

	select {
	case number := <-admin.notified:
		assert.Equal(t, "INV-2024-0042", number)
	case <-time.After(time.Second):
		t.Fatal("admin alert was not sent")
	}
}
