package billing

import (
	"context"
	"database/sql"
	"time"

	"github.com/mydpo/mydpo/internal/db"
)

// Store provides persistence for subscriptions.
type Store struct {
	db *db.DB
}

// NewStore creates a new billing store.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Get returns the subscription for an org, or nil when none exists yet.
func (s *Store) Get(ctx context.Context, orgID string) (*Subscription, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT org_id, plan, status, external_ref, renews_at, updated_at
		FROM subscriptions WHERE org_id = ?`, orgID)

	var sub Subscription
	var plan, status string
	var renewsAt sql.NullString
	var updatedAt string

	err := row.Scan(&sub.OrgID, &plan, &status, &sub.ExternalRef, &renewsAt, &updatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	sub.Plan = Plan(plan)
	sub.Status = SubStatus(status)
	if renewsAt.Valid {
		if t, err := time.Parse(time.DateTime, renewsAt.String); err == nil {
			sub.RenewsAt = &t
		}
	}
	if t, err := time.Parse(time.DateTime, updatedAt); err == nil {
		sub.UpdatedAt = t
	}
	return &sub, nil
}

// EffectivePlan returns the plan the org is entitled to right now.
// Orgs with no subscription row are on the free tier.
func (s *Store) EffectivePlan(ctx context.Context, orgID string) (Plan, error) {
	sub, err := s.Get(ctx, orgID)
	if err != nil {
		return PlanFree, err
	}
	return sub.Effective(), nil
}

// SetPlan upserts the subscription row for an org.
func (s *Store) SetPlan(ctx context.Context, orgID string, plan Plan, status SubStatus, externalRef string, renewsAt *time.Time) error {
	var renews sql.NullString
	if renewsAt != nil {
		renews = sql.NullString{String: renewsAt.UTC().Format(time.DateTime), Valid: true}
	}
	now := time.Now().UTC().Format(time.DateTime)
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO subscriptions (org_id, plan, status, external_ref, renews_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(org_id) DO UPDATE SET
			plan = excluded.plan,
			status = excluded.status,
			external_ref = excluded.external_ref,
			renews_at = excluded.renews_at,
			updated_at = excluded.updated_at`,
		orgID, string(plan), string(status), externalRef, renews, now,
	)
	return err
}
