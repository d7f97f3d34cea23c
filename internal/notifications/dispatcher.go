package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Dispatcher creates notifications and delivers them to webhook subscribers.
type Dispatcher struct {
	store  *Store
	client *http.Client
}

// NewDispatcher creates a Dispatcher backed by the given store.
func NewDispatcher(store *Store) *Dispatcher {
	return &Dispatcher{
		store: store,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Dispatch persists a notification and sends it to matching webhook subscribers.
// Webhook failures are not surfaced: delivery is best-effort.
func (d *Dispatcher) Dispatch(ctx context.Context, n Notification) error {
	if err := d.store.Create(ctx, n); err != nil {
		return fmt.Errorf("creating notification: %w", err)
	}

	subs, err := d.store.Subscriptions(ctx, n.OrgID)
	if err != nil {
		return nil
	}
	for _, sub := range subs {
		if sub.WebhookURL == "" {
			continue
		}
		if !severityMatches(n.Severity, sub.SeverityFilter) {
			continue
		}
		payload, err := json.Marshal(n)
		if err != nil {
			continue
		}
		_ = d.sendWebhook(ctx, sub.WebhookURL, payload)
	}
	return nil
}

// sendWebhook POSTs payload to the given URL.
func (d *Dispatcher) sendWebhook(ctx context.Context, url string, payload []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}

// severityRank orders severities for filtering.
var severityRank = map[Severity]int{
	SeverityInfo:     0,
	SeverityWarning:  1,
	SeverityCritical: 2,
}

func severityMatches(actual, minimum Severity) bool {
	return severityRank[actual] >= severityRank[minimum]
}
