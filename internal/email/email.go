package email

import (
	"invoice-service/internal/config"

	"gopkg.in/gomail.v2"
)

type Attachment struct {
	// Filename is the name the recipient sees.
	Filename string
	Path     string
}

type Message struct {
	FromName    string
	To          string
	Subject     string
	TextBody    string
	HTMLBody    string
	Attachments []Attachment
}

type EmailService struct {
	dialer *gomail.Dialer
	from   string
}

func NewEmailService(cfg config.SMTPConfig) *EmailService {
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	from := cfg.From
	if from == "" {
		from = cfg.Username
	}
	return &EmailService{dialer: d, from: from}
}

// Send delivers msg in a single SMTP session. Failures are not retried.
func (e *EmailService) Send(msg Message) error {
	return e.dialer.DialAndSend(e.build(msg))
}

func (e *EmailService) build(msg Message) *gomail.Message {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", e.from, msg.FromName)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.TextBody)
	if msg.HTMLBody != "" {
		m.AddAlternative("text/html", msg.HTMLBody)
	}
	for _, a := range msg.Attachments {
		m.Attach(a.Path, gomail.Rename(a.Filename))
	}
	return m
}
