package email

import (
	"accountd/internal/core/domain/user"
	"context"
	"net/url"

	"gopkg.in/gomail.v2"
)

// SmtpSender delivers reset links over plain SMTP (STARTTLS), matching
// deployments that relay through an external mailbox account.
type SmtpSender struct {
	dialer               *gomail.Dialer
	sender               string
	passwordResetBaseUrl url.URL
}

func NewSmtpSender(
	host string,
	port int,
	sender string,
	password string,
	passwordResetBaseUrl url.URL,
) *SmtpSender {
	return &SmtpSender{
		dialer:               gomail.NewDialer(host, port, sender, password),
		sender:               sender,
		passwordResetBaseUrl: passwordResetBaseUrl,
	}
}

func (s *SmtpSender) SendResetToken(ctx context.Context, u user.User, token user.ResetToken) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.sender)
	m.SetHeader("To", string(u.Email))
	m.SetHeader("Subject", passwordResetSubject)
	m.SetBody("text/plain", passwordResetBody(s.passwordResetBaseUrl, token))

	return s.dialer.DialAndSend(m)
}
