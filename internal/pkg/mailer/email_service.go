package mailer

import (
	"fmt"
	"html"

	"impes-be/internal/pkg/logger"

	"gopkg.in/gomail.v2"
)

type PaymentNotice struct {
	RecipientName string
	RequestId     string
	Action        string
	Status        string
	ActionBy      string
	Notes         string
}

type IEmailService interface {
	SendPaymentNotice(toEmail string, notice PaymentNotice) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	senderName  string
	logger      logger.ILogger
}

func NewEmailService(host string, port int, username, password, senderEmail, senderName string, log logger.ILogger) IEmailService {
	return &emailService{
		dialer:      gomail.NewDialer(host, port, username, password),
		senderEmail: senderEmail,
		senderName:  senderName,
		logger:      log,
	}
}

func (s *emailService) SendPaymentNotice(toEmail string, notice PaymentNotice) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.senderEmail, s.senderName)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("Payment request %s: %s", notice.RequestId, notice.Status))

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Payment request update</h2>
			<p>Hello %s,</p>
			<p>Payment request <strong>%s</strong> was marked <strong>%s</strong> by %s.</p>
			<p>Current status: <strong>%s</strong></p>
			<p>%s</p>
		</div>
	`,
		html.EscapeString(notice.RecipientName),
		html.EscapeString(notice.RequestId),
		html.EscapeString(notice.Action),
		html.EscapeString(notice.ActionBy),
		html.EscapeString(notice.Status),
		html.EscapeString(notice.Notes),
	)
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		s.logger.Error("MAILER", "Failed to send payment notice", map[string]interface{}{
			"to":         toEmail,
			"request_id": notice.RequestId,
			"error":      err,
		})
		return err
	}

	s.logger.Info("MAILER", "Payment notice sent", map[string]interface{}{
		"to":         toEmail,
		"request_id": notice.RequestId,
	})
	return nil
}
