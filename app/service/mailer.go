package service

import (
	"context"
	"fmt"

	"github.com/vibast-solutions/ms-go-blog-auth/config"

	"github.com/resend/resend-go/v2"
	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
)

const (
	MailDriverLog    = "log"
	MailDriverSMTP   = "smtp"
	MailDriverResend = "resend"

	resetEmailSubject = "Reset your password"
)

// Mailer delivers transactional email.
type Mailer interface {
	SendResetEmail(ctx context.Context, email, link string) error
}

func NewMailer(cfg config.MailConfig) (Mailer, error) {
	switch cfg.Driver {
	case "", MailDriverLog:
		return &LogMailer{}, nil
	case MailDriverSMTP:
		dialer := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)
		return NewSMTPMailer(dialer, cfg.From), nil
	case MailDriverResend:
		if cfg.ResendAPIKey == "" {
			return nil, fmt.Errorf("RESEND_API_KEY is required for the %s mail driver", MailDriverResend)
		}
		return NewResendMailer(resend.NewClient(cfg.ResendAPIKey), cfg.From), nil
	default:
		return nil, fmt.Errorf("unknown mail driver %q", cfg.Driver)
	}
}

func resetEmailText(link string) string {
	return fmt.Sprintf("We received a request to reset your password.\n\n"+
		"Open the link below within 15 minutes to choose a new one:\n%s\n\n"+
		"If you did not ask for this, you can ignore this email.", link)
}

func resetEmailHTML(link string) string {
	return fmt.Sprintf(`<p>We received a request to reset your password.</p>`+
		`<p><a href="%s">Choose a new password</a> (the link expires in 15 minutes).</p>`+
		`<p>If you did not ask for this, you can ignore this email.</p>`, link)
}

// SMTPSender is satisfied by *gomail.Dialer.
type SMTPSender interface {
	DialAndSend(m ...*gomail.Message) error
}

type SMTPMailer struct {
	sender SMTPSender
	from   string
}

func NewSMTPMailer(sender SMTPSender, from string) *SMTPMailer {
	return &SMTPMailer{sender: sender, from: from}
}

func (m *SMTPMailer) SendResetEmail(_ context.Context, email, link string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", email)
	msg.SetHeader("Subject", resetEmailSubject)
	msg.SetBody("text/plain", resetEmailText(link))
	msg.AddAlternative("text/html", resetEmailHTML(link))

	return m.sender.DialAndSend(msg)
}

type ResendMailer struct {
	client *resend.Client
	from   string
}

func NewResendMailer(client *resend.Client, from string) *ResendMailer {
	return &ResendMailer{client: client, from: from}
}

func (m *ResendMailer) SendResetEmail(ctx context.Context, email, link string) error {
	_, err := m.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    m.from,
		To:      []string{email},
		Subject: resetEmailSubject,
		Html:    resetEmailHTML(link),
		Text:    resetEmailText(link),
	})
	return err
}

// LogMailer writes reset links to the log instead of sending them. Meant for
// local development.
type LogMailer struct{}

func (m *LogMailer) SendResetEmail(_ context.Context, email, link string) error {
	logrus.WithFields(logrus.Fields{
		"email": email,
		"link":  link,
	}).Info("Password reset email (log mailer)")
	return nil
}
