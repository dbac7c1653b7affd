package services

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// WebhookNotifier POSTs order events as JSON to a single URL.
type WebhookNotifier struct {
	client *resty.Client
	url    string
}

func NewWebhookNotifier(url string) *WebhookNotifier {
	client := resty.New().
		SetTimeout(10*time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	return &WebhookNotifier{client: client, url: url}
}

func (w *WebhookNotifier) Notify(ctx context.Context, event OrderEvent) error {
	resp, err := w.client.R().
		SetContext(ctx).
		SetHeader("X-Event-Type", event.Type).
		SetBody(event).
		Post(w.url)
	if err != nil {
		return fmt.Errorf("webhook request failed: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("webhook responded with status %d: %s", resp.StatusCode(), resp.String())
	}
	return nil
}
