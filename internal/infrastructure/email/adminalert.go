// Package email sends operator-facing mail over SMTP.
package email

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/gomail.v2"

	"netbill/internal/shared/biztime"
	"netbill/internal/shared/config"
	"netbill/internal/shared/logger"
)

// AdminAlertSender mails the operator when a payment lands. Delivery runs
// off the request path; a failure is the caller's to log, not to retry.
type AdminAlertSender struct {
	dialer       *gomail.Dialer
	fromAddress  string
	fromName     string
	adminAddress string
	logger       logger.Interface

	amountPrinter *message.Printer
}

func NewAdminAlertSender(cfg *config.EmailConfig, logger logger.Interface) *AdminAlertSender {
	return &AdminAlertSender{
		dialer:        gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		fromAddress:   cfg.FromAddress,
		fromName:      cfg.FromName,
		adminAddress:  cfg.AdminAddress,
		logger:        logger,
		amountPrinter: message.NewPrinter(language.Indonesian),
	}
}

func (s *AdminAlertSender) NotifyPaymentReceived(ctx context.Context, invoiceNumber, customerName string, amount int64, paidAt time.Time) error {
	if s.adminAddress == "" {
		return nil
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.fromAddress, s.fromName)
	m.SetHeader("To", s.adminAddress)
	m.SetHeader("Subject", fmt.Sprintf("Pembayaran diterima: %s", invoiceNumber))
	m.SetBody("text/plain", fmt.Sprintf(
		"Tagihan %s atas nama %s sebesar Rp %s telah dibayar pada %s.",
		invoiceNumber,
		customerName,
		s.amountPrinter.Sprintf("%d", amount),
		biztime.FormatInBizTimezone(paidAt, "02 Jan 2006 15:04"),
	))

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send admin alert: %w", err)
	}

	s.logger.Infow("admin payment alert sent",
		"invoice", invoiceNumber,
		"to", s.adminAddress,
	)
	return nil
}
