package notify

import (
	"context"
	"crypto/tls"
	"fmt"
	"html"
	"net/smtp"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// SMTPConfig holds configuration for the SMTP server.
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromName  string
	FromEmail string
	UseTLS    bool
	// SubjectPrefix is prepended to every communication title.
	SubjectPrefix string
}

// SMTPDispatcher sends one email per recipient directly over SMTP,
// for deployments without a workflow webhook.
type SMTPDispatcher struct {
	config SMTPConfig
	logger zerolog.Logger
}

// NewSMTPDispatcher creates a new SMTP dispatcher.
func NewSMTPDispatcher(config SMTPConfig, logger zerolog.Logger) *SMTPDispatcher {
	return &SMTPDispatcher{config: config, logger: logger}
}

// SendCommunication sends the communication to each tutor individually.
// Per-recipient failures are logged and counted; the batch keeps going.
func (d *SMTPDispatcher) SendCommunication(ctx context.Context, title, content string, recipients []Recipient) (Result, error) {
	if d.config.Username == "" || d.config.Password == "" {
		// Dev setups run without credentials; log instead of sending.
		d.logger.Warn().Int("recipients", len(recipients)).Str("title", title).
			Msg("SMTP credentials not configured, communication emails not sent")
		return Result{Errors: len(recipients)}, nil
	}

	subject := fmt.Sprintf("%s - %s", d.config.SubjectPrefix, title)

	var result Result
	for _, r := range recipients {
		select {
		case <-ctx.Done():
			result.Errors = len(recipients) - result.Sent
			return result, ctx.Err()
		default:
		}

		body := d.buildBody(content, r)
		if err := d.sendHTMLEmail(r.Email, subject, body); err != nil {
			d.logger.Error().Err(err).Str("toEmail", r.Email).Msg("Failed to send communication email")
			result.Errors++
			continue
		}
		result.Sent++
	}

	return result, nil
}

// buildBody wraps the communication content in the tutor email template.
func (d *SMTPDispatcher) buildBody(content string, r Recipient) string {
	safeContent := strings.ReplaceAll(html.EscapeString(content), "\n", "<br>")
	return fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2 style="color: #1D3557;">%s</h2>
				<p>Hola %s,</p>
				<p>Le escribimos en relación a %s:</p>
				<div style="background: #f8f9fa; padding: 16px; border-radius: 6px;">%s</div>
				<p>Saludos,<br>%s</p>
			</div>
		</body>
		</html>
	`, html.EscapeString(d.config.SubjectPrefix),
		html.EscapeString(r.Name),
		html.EscapeString(r.StudentName),
		safeContent,
		html.EscapeString(d.config.FromName))
}

// sendHTMLEmail sends one HTML email over SMTP, with or without TLS.
func (d *SMTPDispatcher) sendHTMLEmail(toEmail, subject, htmlBody string) error {
	auth := smtp.PlainAuth("", d.config.Username, d.config.Password, d.config.Host)

	headers := map[string]string{
		"From":         fmt.Sprintf("%s <%s>", d.config.FromName, d.config.FromEmail),
		"To":           toEmail,
		"Subject":      subject,
		"MIME-Version": "1.0",
		"Content-Type": "text/html; charset=UTF-8",
	}

	var message strings.Builder
	for key, value := range headers {
		message.WriteString(fmt.Sprintf("%s: %s\r\n", key, value))
	}
	message.WriteString("\r\n" + htmlBody)

	serverAddress := d.config.Host + ":" + strconv.Itoa(d.config.Port)

	if !d.config.UseTLS {
		if err := smtp.SendMail(serverAddress, auth, d.config.FromEmail, []string{toEmail}, []byte(message.String())); err != nil {
			return fmt.Errorf("failed to send email: %w", err)
		}
		return nil
	}

	tlsConfig := &tls.Config{ServerName: d.config.Host}
	conn, err := tls.Dial("tcp", serverAddress, tlsConfig)
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, d.config.Host)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}
	defer client.Quit()

	if err = client.Auth(auth); err != nil {
		return fmt.Errorf("SMTP authentication failed: %w", err)
	}
	if err = client.Mail(d.config.FromEmail); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err = client.Rcpt(toEmail); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to get data writer: %w", err)
	}
	if _, err = w.Write([]byte(message.String())); err != nil {
		return fmt.Errorf("failed to write email message: %w", err)
	}
	if err = w.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}

	return nil
}
