package email

import (
	"fmt"

	"ideahub_backend/internal/config"

	"gopkg.in/gomail.v2"
)

type SMTPProvider struct {
	cfg *config.Config
}

func NewSMTPProvider(cfg *config.Config) *SMTPProvider {
	return &SMTPProvider{cfg: cfg}
}

func (p *SMTPProvider) SendVerificationDecision(to, claim string, approved bool, note string) error {
	subject := "Your verification request was rejected"
	body := fmt.Sprintf("<p>Your verification request for the claim <b>%s</b> was rejected.</p>", claim)
	if approved {
		subject = "Your verification request was approved"
		body = fmt.Sprintf("<p>Your claim <b>%s</b> is now verified. Your ideas get priority placement.</p>", claim)
	}
	if note != "" {
		body += fmt.Sprintf("<p>Moderator note: %s</p>", note)
	}

	return p.send(to, subject, body)
}

func (p *SMTPProvider) send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", p.cfg.Email.FromEmail)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(
		p.cfg.Email.SMTPHost,
		p.cfg.Email.SMTPPort,
		p.cfg.Email.SMTPUser,
		p.cfg.Email.SMTPPassword,
	)

	return d.DialAndSend(m)
}
