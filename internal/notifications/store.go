package notifications

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mydpo/mydpo/internal/db"
)

// Store provides persistence for notifications and subscriptions.
type Store struct {
	db *db.DB
}

// NewStore creates a new notification store.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Create persists a notification.
func (s *Store) Create(ctx context.Context, n Notification) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.Severity == "" {
		n.Severity = SeverityInfo
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	delivered := 0
	if n.Delivered {
		delivered = 1
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO notifications (id, org_id, type, severity, title, message, delivered, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		n.ID, n.OrgID, n.Type, string(n.Severity), n.Title, n.Message, delivered,
		n.CreatedAt.Format(time.DateTime),
	)
	return err
}

// List returns notifications matching the filter, newest first.
func (s *Store) List(ctx context.Context, filter ListFilter) ([]Notification, error) {
	var conditions []string
	var args []interface{}

	if filter.OrgID != "" {
		conditions = append(conditions, "org_id = ?")
		args = append(args, filter.OrgID)
	}
	if !filter.Since.IsZero() {
		conditions = append(conditions, "created_at >= ?")
		args = append(args, filter.Since.UTC().Format(time.DateTime))
	}

	query := "SELECT id, org_id, type, severity, title, message, delivered, created_at FROM notifications"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []Notification
	for rows.Next() {
		var n Notification
		var severity, createdAt string
		var delivered int
		if err := rows.Scan(&n.ID, &n.OrgID, &n.Type, &severity, &n.Title, &n.Message, &delivered, &createdAt); err != nil {
			return nil, err
		}
		n.Severity = Severity(severity)
		n.Delivered = delivered != 0
		if t, err := time.Parse(time.DateTime, createdAt); err == nil {
			n.CreatedAt = t
		}
		results = append(results, n)
	}
	return results, rows.Err()
}

// MarkDelivered flags a notification as delivered.
func (s *Store) MarkDelivered(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `UPDATE notifications SET delivered = 1 WHERE id = ?`, id)
	return err
}

// Subscribe upserts a delivery subscription for an organization.
func (s *Store) Subscribe(ctx context.Context, sub Subscription) error {
	if sub.Channel == "" {
		sub.Channel = "webhook"
	}
	if sub.SeverityFilter == "" {
		sub.SeverityFilter = SeverityInfo
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO notification_subscriptions (org_id, channel, webhook_url, severity_filter)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(org_id, channel) DO UPDATE SET
			webhook_url = excluded.webhook_url,
			severity_filter = excluded.severity_filter`,
		sub.OrgID, sub.Channel, sub.WebhookURL, string(sub.SeverityFilter),
	)
	return err
}

// Subscriptions returns the delivery subscriptions for an organization.
func (s *Store) Subscriptions(ctx context.Context, orgID string) ([]Subscription, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT org_id, channel, webhook_url, severity_filter
		FROM notification_subscriptions WHERE org_id = ?`, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []Subscription
	for rows.Next() {
		var sub Subscription
		var filter string
		if err := rows.Scan(&sub.OrgID, &sub.Channel, &sub.WebhookURL, &filter); err != nil {
			return nil, err
		}
		sub.SeverityFilter = Severity(filter)
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}
