package notification

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rxtech-lab/argo-trend/pkg/errors"
)

// WebhookNotifier posts alerts as JSON to a URL.
type WebhookNotifier struct {
	url    string
	client *resty.Client
}

func NewWebhookNotifier(url string, timeout time.Duration) *WebhookNotifier {
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json")

	return &WebhookNotifier{url: url, client: client}
}

func (n *WebhookNotifier) Name() string { return "webhook" }

func (n *WebhookNotifier) Send(ctx context.Context, alert Alert) error {
	resp, err := n.client.R().
		SetContext(ctx).
		SetBody(alert).
		Post(n.url)
	if err != nil {
		return errors.Wrap(errors.ErrCodeNotificationFailed, "webhook request failed", err)
	}

	if resp.IsError() {
		return errors.Newf(errors.ErrCodeNotificationFailed, "webhook returned status %d", resp.StatusCode())
	}

	return nil
}
