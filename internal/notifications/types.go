package notifications

import "time"

// Severity grades a notification.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// Notification is a single message destined for an organization's channels.
type Notification struct {
	ID        string    `json:"id"`
	OrgID     string    `json:"org_id"`
	Type      string    `json:"type"`
	Severity  Severity  `json:"severity"`
	Title     string    `json:"title"`
	Message   string    `json:"message,omitempty"`
	Delivered bool      `json:"delivered"`
	CreatedAt time.Time `json:"created_at"`
}

// Subscription is a delivery target for an organization's notifications.
type Subscription struct {
	OrgID          string   `json:"org_id"`
	Channel        string   `json:"channel"`
	WebhookURL     string   `json:"webhook_url,omitempty"`
	SeverityFilter Severity `json:"severity_filter"`
}

// ListFilter controls which notifications to return.
type ListFilter struct {
	OrgID string
	Since time.Time
	Limit int
}
