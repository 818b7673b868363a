// Package email provides transactional email delivery over SMTP.
package email

import (
	"context"

	"printshop_backend/platform/config"
	"printshop_backend/platform/logger"
)

// Sender delivers transactional emails.
type Sender interface {
	SendVerificationEmail(ctx context.Context, toEmail, verifyURL string) error
	SendPasswordResetEmail(ctx context.Context, toEmail, resetURL string) error
	SendDeliveryReminderEmail(ctx context.Context, toEmail, projectName, deliveryDate string) error
}

// NewSender returns the SMTP sender when email is configured, otherwise
// a no-op sender that only logs.
func NewSender(cfg config.SMTPConfig, log *logger.Logger) Sender {
	if !cfg.GetEmailEnabled() {
		log.Warn("email sending disabled; SMTP not configured")
		return &noopSender{log: log}
	}
	return NewSMTPSender(
		cfg.GetSMTPHost(),
		cfg.GetSMTPPort(),
		cfg.GetSMTPUsername(),
		cfg.GetSMTPPassword(),
		cfg.GetEmailFromAddress(),
		cfg.GetEmailFromName(),
	)
}

type noopSender struct {
	log *logger.Logger
}

func (s *noopSender) SendVerificationEmail(_ context.Context, toEmail, verifyURL string) error {
	s.log.Info("email disabled, skipping verification email", "to", toEmail, "url", verifyURL)
	return nil
}

func (s *noopSender) SendPasswordResetEmail(_ context.Context, toEmail, resetURL string) error {
	s.log.Info("email disabled, skipping password reset email", "to", toEmail, "url", resetURL)
	return nil
}

func (s *noopSender) SendDeliveryReminderEmail(_ context.Context, toEmail, projectName, deliveryDate string) error {
	s.log.Info("email disabled, skipping delivery reminder email", "to", toEmail, "project", projectName)
	return nil
}
