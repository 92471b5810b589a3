package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"rentalops-backend/internal/config"
	"rentalops-backend/internal/logger"
)

// sendGridEmailService sends customer notifications through SendGrid. With
// no API key configured it degrades to a no-op that logs each skipped send,
// which keeps local development working without credentials.
type sendGridEmailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewEmailService(cfg config.EmailConfig) EmailService {
	return &sendGridEmailService{
		apiKey:    cfg.SendGridAPIKey,
		fromEmail: cfg.FromEmail,
		fromName:  cfg.FromName,
	}
}

func (s *sendGridEmailService) SendInvoiceIssued(ctx context.Context, toEmail, customerName, invoiceRef string, total float64, dueDate time.Time) error {
	subject := fmt.Sprintf("Your invoice %s", invoiceRef)
	plain := fmt.Sprintf(
		"Hi %s,\n\nYour rental invoice %s for $%.2f has been issued. Payment is due by %s.\n\nThank you for renting with us.",
		customerName, invoiceRef, total, dueDate.Format("January 2, 2006"))
	html := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your rental invoice <strong>%s</strong> for <strong>$%.2f</strong> has been issued. Payment is due by %s.</p><p>Thank you for renting with us.</p>",
		customerName, invoiceRef, total, dueDate.Format("January 2, 2006"))
	return s.send(toEmail, customerName, subject, plain, html)
}

func (s *sendGridEmailService) SendPaymentReceipt(ctx context.Context, toEmail, customerName, invoiceRef string, amount float64) error {
	subject := fmt.Sprintf("Payment received for %s", invoiceRef)
	plain := fmt.Sprintf(
		"Hi %s,\n\nWe received your payment of $%.2f. Invoice %s is now paid in full.\n\nThank you for renting with us.",
		customerName, amount, invoiceRef)
	html := fmt.Sprintf(
		"<p>Hi %s,</p><p>We received your payment of <strong>$%.2f</strong>. Invoice <strong>%s</strong> is now paid in full.</p><p>Thank you for renting with us.</p>",
		customerName, amount, invoiceRef)
	return s.send(toEmail, customerName, subject, plain, html)
}

func (s *sendGridEmailService) send(to, toName, subject, plainText, htmlContent string) error {
	if s.apiKey == "" {
		logger.Info("email disabled, skipping send", "to", to, "subject", subject)
		return nil
	}

	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, to)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, htmlContent)

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}
