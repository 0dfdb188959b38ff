// server/internal/mailer/mailer.go
package mailer

import (
	"fmt"

	"ride-booking-api-server/config"

	gomail "gopkg.in/gomail.v2"
)

// Mailer sends transactional mail over SMTP. Only the password-reset
// notification uses it.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

func New(cfg config.SMTPConfig) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

// Send delivers a single HTML mail.
func (m *Mailer) Send(to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)
	return m.dialer.DialAndSend(msg)
}

// SendPasswordReset mails the reset link for the given token.
func (m *Mailer) SendPasswordReset(to, resetURL string) error {
	body := fmt.Sprintf(`<p>You requested a password reset. Click <a href="%s">here</a> to reset your password.</p>`, resetURL)
	return m.Send(to, "Password Reset", body)
}
