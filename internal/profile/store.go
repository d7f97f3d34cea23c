package profile

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mydpo/mydpo/internal/db"
)

// Store persists intake profiles as opaque JSON blobs keyed by organization.
type Store struct {
	db *db.DB
}

// NewStore creates a new profile store.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Save upserts an organization's profile, bumping the version on update.
func (s *Store) Save(ctx context.Context, orgID string, p Profile) error {
	answers, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshalling profile: %w", err)
	}
	now := time.Now().UTC().Format(time.DateTime)
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO intake_profiles (org_id, answers, version, updated_at)
		VALUES (?, ?, 1, ?)
		ON CONFLICT(org_id) DO UPDATE SET
			answers = excluded.answers,
			version = intake_profiles.version + 1,
			updated_at = excluded.updated_at`,
		orgID, string(answers), now,
	)
	return err
}

// Get returns an organization's profile. A missing row yields an empty
// profile, not an error: a brand-new organization has answered nothing yet.
func (s *Store) Get(ctx context.Context, orgID string) (*Record, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT org_id, answers, version, updated_at FROM intake_profiles WHERE org_id = ?`, orgID)

	var rec Record
	var answers, updatedAt string
	err := row.Scan(&rec.OrgID, &answers, &rec.Version, &updatedAt)
	if err == sql.ErrNoRows {
		return &Record{OrgID: orgID, Answers: Profile{}}, nil
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(answers), &rec.Answers); err != nil {
		// Unparseable blobs from old schema revisions degrade to an
		// empty profile rather than failing the dashboard.
		rec.Answers = Profile{}
	}
	if t, err := time.Parse(time.DateTime, updatedAt); err == nil {
		rec.UpdatedAt = t
	}
	return &rec, nil
}
