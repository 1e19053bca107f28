package mailer

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/yourorg/stock-tracker/internal/config"

	"go.uber.org/zap"
)

// SMTPMailer delivers transactional email over SMTP. It renders the HTML
// template for each message kind and hands the result to the server.
type SMTPMailer struct {
	addr   string
	auth   smtp.Auth
	from   string
	send   sendFunc
	logger *zap.Logger
}

// sendFunc matches smtp.SendMail, swappable in tests
type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// NewSMTPMailer creates a mailer from SMTP configuration
func NewSMTPMailer(cfg config.SMTPConfig, logger *zap.Logger) *SMTPMailer {
	var auth smtp.Auth
	if cfg.Username != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}

	return &SMTPMailer{
		addr:   cfg.Host + ":" + cfg.Port,
		auth:   auth,
		from:   cfg.From,
		send:   smtp.SendMail,
		logger: logger,
	}
}

// SendWelcomeEmail sends the onboarding email with the personalized intro
func (m *SMTPMailer) SendWelcomeEmail(ctx context.Context, email, name, intro string) error {
	html := renderTemplate(welcomeEmailTemplate, map[string]string{
		"name":  name,
		"intro": intro,
	})

	subject := "Welcome - your stock market toolkit is ready"
	return m.deliver(ctx, email, subject, html)
}

// SendNewsSummary sends the daily digest with pre-rendered news content
func (m *SMTPMailer) SendNewsSummary(ctx context.Context, email, name, date, newsContent string) error {
	html := renderTemplate(newsSummaryEmailTemplate, map[string]string{
		"date":        date,
		"newsContent": newsContent,
		"name":        name,
	})

	subject := "Market News Summary - " + date
	return m.deliver(ctx, email, subject, html)
}

// deliver assembles the MIME message and sends it. The context is checked
// before the blocking SMTP call; the call itself runs to completion on its
// own schedule.
func (m *SMTPMailer) deliver(ctx context.Context, to, subject, html string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", m.from)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(html)

	if err := m.send(m.addr, m.auth, m.from, []string{to}, []byte(msg.String())); err != nil {
		m.logger.Error("failed to send email",
			zap.String("to", to),
			zap.String("subject", subject),
			zap.Error(err))
		return fmt.Errorf("failed to send email: %w", err)
	}

	m.logger.Debug("email sent", zap.String("to", to), zap.String("subject", subject))
	return nil
}

// renderTemplate substitutes {{key}} placeholders in an HTML template
func renderTemplate(tmpl string, values map[string]string) string {
	pairs := make([]string, 0, len(values)*2)
	for k, v := range values {
		pairs = append(pairs, "{{"+k+"}}", v)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}
