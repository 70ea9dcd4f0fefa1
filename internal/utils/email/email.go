package email

import (
	"fmt"
	"net/smtp"

	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"

	"github.com/thomaskerpen/CopilotTest/internal/config"
	"github.com/thomaskerpen/CopilotTest/internal/models"
)

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
	}
}

// Enabled reports whether a notification recipient is configured
func (s *Sender) Enabled() bool {
	return s.cfg.ContactNotifyEmail != "" && s.cfg.SMTPHost != ""
}

// SendContactNotification notifies the configured recipient about a new
// contact submission
func (s *Sender) SendContactNotification(contact *models.Contact) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{s.cfg.ContactNotifyEmail}
	e.Subject = fmt.Sprintf("New contact request from %s", contact.Name)

	body := fmt.Sprintf(
		"A new contact request was submitted.\n\n"+
			"Name: %s\nEmail: %s\nReceived: %s\n\n%s\n",
		contact.Name, contact.Email, contact.CreatedAt, contact.Message,
	)
	e.Text = []byte(body)

	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	if err := e.Send(addr, auth); err != nil {
		s.logger.Errorf("Failed to send contact notification to %s: %v", s.cfg.ContactNotifyEmail, err)
		return fmt.Errorf("failed to send contact notification: %w", err)
	}

	s.logger.Infof("Contact notification sent to %s (contact %d)", s.cfg.ContactNotifyEmail, contact.ID)
	return nil
}
