package notify

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"

	"github.com/ObsidianSy/Monatary-Mind-sub000/internal/config"
	"github.com/ObsidianSy/Monatary-Mind-sub000/internal/models"
)

// Sender handles sending invoice emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
	send   func(e *email.Email) error
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	s := &Sender{cfg: cfg, logger: logger}
	s.send = s.smtpSend
	return s
}

func (s *Sender) smtpSend(e *email.Email) error {
	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	var auth smtp.Auth
	if s.cfg.SMTPUsername != "" {
		auth = smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	}
	return e.Send(addr, auth)
}

// SendInvoiceClosed tells the card holder an invoice closed and what is due
func (s *Sender) SendInvoiceClosed(card *models.Card, inv *models.Invoice) error {
	body := fmt.Sprintf(
		"The %04d-%02d invoice of your card %s is closed.\n"+
			"Amount: %s\n"+
			"Due date: %s\n",
		inv.Competencia.Year, int(inv.Competencia.Month), card.Name, inv.AmountDue(), inv.DueDate,
	)
	return s.deliver(card, "Your card invoice is closed", body)
}

// SendDueReminder reminds the card holder of an upcoming due date
func (s *Sender) SendDueReminder(card *models.Card, inv *models.Invoice) error {
	body := fmt.Sprintf(
		"This is a reminder that the invoice of your card %s is due on %s.\n"+
			"Amount: %s\n"+
			"Please ensure sufficient funds are available in your payment account.\n",
		card.Name, inv.DueDate, inv.AmountDue(),
	)
	return s.deliver(card, "Upcoming card invoice reminder", body)
}

// SendOverdueNotice reports the late interest charged on an overdue invoice
func (s *Sender) SendOverdueNotice(card *models.Card, inv *models.Invoice) error {
	body := fmt.Sprintf(
		"The invoice of your card %s was due on %s and is now overdue.\n"+
			"Late interest so far: %s\n"+
			"Amount now due: %s\n"+
			"Please make the payment as soon as possible to avoid further interest.\n",
		card.Name, inv.DueDate, inv.LateInterest, inv.AmountDue(),
	)
	return s.deliver(card, "Overdue card invoice notification", body)
}

func (s *Sender) deliver(card *models.Card, subject, body string) error {
	to := strings.TrimSpace(card.NotifyEmail)
	if to == "" {
		s.logger.WithField("card_id", card.ID).Debug("Card has no notification email, skipping")
		return nil
	}

	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = subject
	e.Text = []byte(body + "\nBest regards,\nCard Billing")

	if err := s.send(e); err != nil {
		s.logger.Errorf("Failed to send email to %s: %v", to, err)
		return fmt.Errorf("failed to send email: %w", err)
	}
	s.logger.Infof("Email sent to %s: %s", to, e.Subject)
	return nil
}
