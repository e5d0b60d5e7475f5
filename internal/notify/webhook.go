package notify

import (
	"context"
	"fmt"

	"github.com/nova728/diary/internal/logging"
	"github.com/nova728/diary/internal/reminder"
)

// Webhook posts reminders to one URL.
type Webhook struct {
	url       string
	formatter Formatter
	client    *HTTPClient
}

// NewWebhook creates a webhook of the given kind. A nil client uses the defaults.
func NewWebhook(url string, kind Kind, client *HTTPClient) *Webhook {
	if client == nil {
		client = NewHTTPClient()
	}
	return &Webhook{url: url, formatter: FormatterFor(kind), client: client}
}

// Notify posts the notice. It satisfies reminder.Notifier.
func (w *Webhook) Notify(ctx context.Context, n reminder.Notice) error {
	body, err := w.formatter.Format(MessageFromNotice(n))
	if err != nil {
		return fmt.Errorf("format reminder: %w", err)
	}

	result := w.client.Send(ctx, w.url, w.formatter.ContentType(), body)
	logging.DebugContext(ctx, "reminder webhook sent",
		"status", result.StatusCode,
		"attempts", result.Attempts,
		logging.KeyDuration, result.Duration.Milliseconds())
	if result.Error != nil {
		return fmt.Errorf("post reminder webhook: %w", result.Error)
	}
	return nil
}
