package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// WebhookDispatcher hands the whole recipient batch to an external
// workflow (n8n or similar) in a single POST. The workflow owns the
// actual email sending.
type WebhookDispatcher struct {
	url     string
	subject string
	client  *http.Client
	logger  zerolog.Logger
}

// NewWebhookDispatcher creates a dispatcher posting to url. subjectPrefix
// is prepended to every communication title (the academy name).
func NewWebhookDispatcher(url, subjectPrefix string, logger zerolog.Logger) *WebhookDispatcher {
	return &WebhookDispatcher{
		url:     url,
		subject: subjectPrefix,
		client:  &http.Client{Timeout: 15 * time.Second},
		logger:  logger,
	}
}

type webhookPayload struct {
	Subject    string      `json:"subject"`
	Content    string      `json:"content"`
	Recipients []Recipient `json:"recipients"`
}

// SendCommunication posts the batch to the workflow webhook.
func (d *WebhookDispatcher) SendCommunication(ctx context.Context, title, content string, recipients []Recipient) (Result, error) {
	if d.url == "" {
		d.logger.Warn().Msg("Notification webhook URL not configured, emails not sent")
		return Result{Errors: len(recipients)}, nil
	}

	payload := webhookPayload{
		Subject:    fmt.Sprintf("%s - %s", d.subject, title),
		Content:    content,
		Recipients: recipients,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return Result{Errors: len(recipients)}, fmt.Errorf("failed to encode webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.url, bytes.NewReader(body))
	if err != nil {
		return Result{Errors: len(recipients)}, fmt.Errorf("failed to build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return Result{Errors: len(recipients)}, fmt.Errorf("webhook request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		d.logger.Error().Int("status", resp.StatusCode).Str("body", string(detail)).Msg("Notification webhook rejected the batch")
		return Result{Errors: len(recipients)}, fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	return Result{Sent: len(recipients)}, nil
}
