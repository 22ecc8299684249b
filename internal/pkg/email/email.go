package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/config"
	"gopkg.in/gomail.v2"
)

//go:embed templates/*.html
var templateFS embed.FS

const maxRetries = 3

// AlertLine is one employee row of the digest.
type AlertLine struct {
	FullName string
	Kind     string
	Worked   string
}

// EmailService defines the interface for sending emails
type EmailService interface {
	SendAlertDigest(to []string, date time.Time, alerts []AlertLine) error
}

type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

type emailServiceImpl struct {
	cfg       config.SMTPConfig
	dialer    dialer
	templates *template.Template
	backoff   time.Duration
}

// NewEmailService creates a new email service instance
func NewEmailService(cfg config.SMTPConfig) (EmailService, error) {
	return newEmailService(cfg, gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password))
}

func newEmailService(cfg config.SMTPConfig, d dialer) (*emailServiceImpl, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse email templates: %w", err)
	}

	return &emailServiceImpl{
		cfg:       cfg,
		dialer:    d,
		templates: tmpl,
		backoff:   time.Second,
	}, nil
}

type alertDigestData struct {
	Date   string
	Alerts []AlertLine
}

// SendAlertDigest mails the day's attendance alerts to every recipient.
func (s *emailServiceImpl) SendAlertDigest(to []string, date time.Time, alerts []AlertLine) error {
	if len(to) == 0 || len(alerts) == 0 {
		return nil
	}

	data := alertDigestData{
		Date:   date.Format("02/01/2006"),
		Alerts: alerts,
	}

	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "alert_digest.html", data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	return s.sendHTML(to, fmt.Sprintf("Alertas de ponto - %s", data.Date), body.String())
}

func (s *emailServiceImpl) sendHTML(to []string, subject, htmlBody string) error {
	// Skip sending if SMTP is not configured
	if s.cfg.Host == "" {
		slog.Warn("SMTP not configured, skipping email send", "to", to, "subject", subject)
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", to...)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		err := s.dialer.DialAndSend(m)
		if err == nil {
			slog.Info("Email sent successfully", "to", to, "subject", subject, "attempt", attempt)
			return nil
		}

		lastErr = err
		slog.Error("Failed to send email",
			"to", to,
			"subject", subject,
			"attempt", attempt,
			"max_retries", maxRetries,
			"error", err,
		)

		// Exponential backoff: 1x, 2x
		if attempt < maxRetries {
			time.Sleep(s.backoff << (attempt - 1))
		}
	}

	return fmt.Errorf("failed to send email after %d attempts: %w", maxRetries, lastErr)
}
