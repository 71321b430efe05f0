package notify

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"os"
	"strings"

	"github.com/roomaudit/roomaudit/internal/audit"
	"github.com/roomaudit/roomaudit/internal/config"
	"github.com/roomaudit/roomaudit/internal/logging"
)

// Mailer sends notification requests through one SMTP server.
type Mailer struct {
	cfg    config.SMTP
	logger *slog.Logger

	// send is swapped in tests; defaults to smtp.SendMail.
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewMailer builds a Mailer for the given SMTP configuration.
func NewMailer(cfg config.SMTP, logger *slog.Logger) *Mailer {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}
	return &Mailer{cfg: cfg, logger: logger, send: smtp.SendMail}
}

// SendAll delivers every request, best-effort. It returns the number
// of failed deliveries; failures are logged, not propagated, so a
// bounced notification never turns a finished audit into an error.
func (m *Mailer) SendAll(ctx context.Context, requests []audit.NotificationRequest) int {
	failed := 0
	for _, req := range requests {
		if err := m.Send(ctx, req); err != nil {
			m.logger.WarnContext(ctx, "failed to send notification",
				slog.String("subject", req.Subject),
				logging.Err(err))
			failed++
		}
	}
	return failed
}

// Send delivers one notification request.
func (m *Mailer) Send(ctx context.Context, req audit.NotificationRequest) error {
	if len(req.To) == 0 {
		return fmt.Errorf("notification has no recipients")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	var auth smtp.Auth
	if m.cfg.Username != "" && m.cfg.Password != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	msg := buildMessage(req)
	if err := m.send(addr, auth, req.From, req.To, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// buildMessage renders a plain-text RFC 5322 message from the request.
func buildMessage(req audit.NotificationRequest) string {
	var message strings.Builder
	message.WriteString(fmt.Sprintf("From: %s\r\n", req.From))
	message.WriteString(fmt.Sprintf("To: %s\r\n", strings.Join(req.To, ", ")))
	message.WriteString(fmt.Sprintf("Subject: %s\r\n", req.Subject))
	message.WriteString("MIME-Version: 1.0\r\n")
	message.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	message.WriteString("\r\n")
	message.WriteString(req.Body)
	if !strings.HasSuffix(req.Body, "\n") {
		message.WriteString("\r\n")
	}
	return message.String()
}
