package services

import (
	"context"
	"errors"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"netbill/internal/domain/notification"
	"netbill/internal/shared/biztime"
	"netbill/internal/shared/logger"
)

// PaymentSuccessNotification carries the values substituted into the
// payment-success message template.
type PaymentSuccessNotification struct {
	Phone         string
	CustomerName  string
	Username      string
	Password      string
	ProfileName   string
	InvoiceNumber string
	Amount        int64
	ExpiresAt     time.Time
}

// PaymentNotifier renders the payment-success template and hands the
// message to the failover dispatcher.
type PaymentNotifier struct {
	templateRepo notification.TemplateRepository
	dispatcher   *Dispatcher
	companyName  string
	companyPhone string
	logger       logger.Interface

	// Indonesian digit grouping for rupiah amounts (150000 -> 150.000).
	amountPrinter *message.Printer
}

func NewPaymentNotifier(
	templateRepo notification.TemplateRepository,
	dispatcher *Dispatcher,
	companyName, companyPhone string,
	logger logger.Interface,
) *PaymentNotifier {
	return &PaymentNotifier{
		templateRepo:  templateRepo,
		dispatcher:    dispatcher,
		companyName:   companyName,
		companyPhone:  companyPhone,
		logger:        logger,
		amountPrinter: message.NewPrinter(language.Indonesian),
	}
}

// SendPaymentSuccess delivers the payment confirmation to the subscriber.
// A missing template row falls back to the built-in default.
func (n *PaymentNotifier) SendPaymentSuccess(ctx context.Context, cmd PaymentSuccessNotification) error {
	content := notification.DefaultPaymentSuccessTemplate
	tpl, err := n.templateRepo.GetByType(ctx, notification.TemplateTypePaymentSuccess)
	if err != nil {
		if !errors.Is(err, notification.ErrTemplateNotFound) {
			n.logger.Warnw("failed to load payment success template, using default",
				"error", err)
		}
	} else {
		content = tpl.Content()
	}

	values := map[string]string{
		"customer_name":  cmd.CustomerName,
		"username":       cmd.Username,
		"password":       cmd.Password,
		"profile_name":   cmd.ProfileName,
		"invoice_number": cmd.InvoiceNumber,
		"amount":         n.amountPrinter.Sprintf("%d", cmd.Amount),
		"due_date":       biztime.FormatInBizTimezone(cmd.ExpiresAt, "02 Jan 2006"),
		"company_name":   n.companyName,
		"company_phone":  n.companyPhone,
	}

	rendered := notification.RenderTemplate(content, values)

	_, err = n.dispatcher.Send(ctx, cmd.Phone, rendered)
	return err
}
